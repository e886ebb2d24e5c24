package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dpetkov/t212"
	"github.com/dpetkov/t212/renderer"
	"github.com/google/subcommands"
)

type analyzeCmd struct {
	offline bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "reconcile the statement into a net-worth report" }
func (*analyzeCmd) Usage() string {
	return `pfa analyze [-offline]

  Reads the combined statement, folds it into cash and positions, values the
  open positions at current market prices and writes the plain-text report to
  the exports directory.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Skip live lookups; value every position at zero.")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run is the analyze step, shared with the workflow runner.
func (c *analyzeCmd) run(ctx context.Context) error {
	records, err := t212.LoadStatement(*statementFile, *reportingCurrency)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Loaded %d transactions from %s\n", len(records), *statementFile)

	ledger := t212.NewLedger(*reportingCurrency)
	ledger.Accumulate(records)
	if skipped := ledger.Skipped(); skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d rows with unsupported actions\n", skipped)
	}

	var quoter t212.Quoter = &t212.YahooQuoter{}
	var converter t212.Converter = &t212.YahooConverter{}
	if c.offline {
		// Empty tables: every lookup fails and valuation degrades to zero
		// prices and fallback rates, by the same path as a network outage.
		quoter = t212.StaticQuoter{}
		converter = t212.StaticConverter{}
	}

	snapshot := t212.NewSnapshot(ctx, ledger, quoter, converter)
	report := t212.NewReport(snapshot, time.Now())
	text := renderer.Summary(report)

	if err := os.MkdirAll(*exportsDir, 0755); err != nil {
		return fmt.Errorf("cannot create exports directory: %w", err)
	}
	if err := os.WriteFile(summaryPath(), []byte(text), 0644); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}

	fmt.Print(text)
	fmt.Fprintf(os.Stderr, "Report saved to %s\n", filepath.Clean(summaryPath()))
	return nil
}
