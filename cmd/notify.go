package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dpetkov/t212/renderer"
	"github.com/dpetkov/t212/telegram"
	"github.com/google/subcommands"
)

type notifyCmd struct{}

func (*notifyCmd) Name() string     { return "notify" }
func (*notifyCmd) Synopsis() string { return "deliver the latest analysis to Telegram" }
func (*notifyCmd) Usage() string {
	return `pfa notify

  Sends the newest analysis (or, failing that, the raw report) to the
  configured Telegram chat. Requires BOT_TOKEN and CHAT_ID.
`
}

func (*notifyCmd) SetFlags(_ *flag.FlagSet) {}

func (c *notifyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run is the notify step, shared with the workflow runner.
func (c *notifyCmd) run(ctx context.Context) error {
	token, chatID := os.Getenv("BOT_TOKEN"), os.Getenv("CHAT_ID")
	if token == "" || chatID == "" {
		return fmt.Errorf("BOT_TOKEN and CHAT_ID must be set")
	}

	// Prefer the newest model commentary, fall back to the raw report. The
	// report's layout keeps the account summary first, so the truncation
	// below can never lose it.
	path := latestAnalysis()
	markdown := false
	if path == "" {
		path = summaryPath()
	} else {
		markdown = true
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("nothing to deliver, run analyze first: %w", err)
	}

	text := renderer.StripThink(string(content))
	if markdown {
		text = renderer.PlainText(text)
	}
	text = renderer.Truncate(text, telegram.MaxMessageLength)

	bot := telegram.New(token, chatID)
	username, err := bot.Me(ctx)
	if err != nil {
		return fmt.Errorf("bot connection failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Connected as @%s\n", username)

	id, err := bot.Send(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Delivered %s as message %d\n", path, id)
	return nil
}
