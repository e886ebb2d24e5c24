package renderer

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// thinkBlock matches the reasoning block some models prepend to their answer.
var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThink removes any <think>...</think> block from a model response.
func StripThink(s string) string {
	return strings.TrimSpace(thinkBlock.ReplaceAllString(s, ""))
}

// PlainText strips markdown structure from a model response, leaving the
// bare text Telegram can display without a parse mode. Block boundaries
// become blank lines.
func PlainText(markdown string) string {
	source := []byte(markdown)
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	var blocks []string
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			var b strings.Builder
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				b.Write(line.Value(source))
			}
			blocks = append(blocks, strings.TrimRight(b.String(), "\n"))
			return ast.WalkSkipChildren, nil
		default:
			if n.Type() == ast.TypeBlock && n.FirstChild() != nil && n.FirstChild().Type() == ast.TypeInline {
				blocks = append(blocks, string(textOf(n, source)))
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		// goldmark walks never fail here; fall back to the raw input.
		return strings.TrimSpace(markdown)
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// textOf concatenates the inline text content of a block node.
func textOf(n ast.Node, source []byte) []byte {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.AutoLink:
			b.Write(v.URL(source))
		default:
			b.Write(textOf(c, source))
		}
	}
	return []byte(b.String())
}

// Truncate shortens s to at most n runes, keeping whole lines where it can.
// The report layout puts the account summary first, so truncation never
// loses the leading block.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		return cut[:i]
	}
	return cut
}
