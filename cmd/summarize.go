package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dpetkov/t212/agent"
	"github.com/dpetkov/t212/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type summarizeCmd struct {
	model string
}

func (*summarizeCmd) Name() string     { return "summarize" }
func (*summarizeCmd) Synopsis() string { return "ask the Gemini analyst to comment on the report" }
func (*summarizeCmd) Usage() string {
	return `pfa summarize [-model <model>]

  Sends the latest plain-text report to the Gemini analyst and saves its
  markdown commentary as a dated analysis file in the exports directory.
  Requires GEMINI_API_KEY.
`
}

func (c *summarizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", agent.DefaultModel, "Gemini model to use for the commentary.")
}

func (c *summarizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run is the summarize step, shared with the workflow runner.
func (c *summarizeCmd) run(ctx context.Context) error {
	report, err := os.ReadFile(summaryPath())
	if err != nil {
		return fmt.Errorf("no report to summarize, run analyze first: %w", err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot initialize Gemini client: %w", err)
	}

	analyst := agent.NewAnalyst()
	if c.model != "" {
		analyst.Model = c.model
	}
	if err := analyst.Start(ctx, client); err != nil {
		return err
	}

	commentary, err := analyst.Summarize(ctx, string(report))
	if err != nil {
		return err
	}
	commentary = renderer.StripThink(commentary)

	path := analysisPath(time.Now())
	if err := os.MkdirAll(*exportsDir, 0755); err != nil {
		return fmt.Errorf("cannot create exports directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(commentary), 0644); err != nil {
		return fmt.Errorf("cannot write analysis: %w", err)
	}

	printMarkdown(commentary)
	fmt.Fprintf(os.Stderr, "Analysis saved to %s\n", path)
	return nil
}
