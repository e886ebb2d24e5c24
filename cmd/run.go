package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

type runCmd struct {
	continueOnFailure bool
	schedule          string
	skipSummarize     bool
	skipNotify        bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run the analyze, summarize and notify workflow" }
func (*runCmd) Usage() string {
	return `pfa run [-continue-on-failure] [-skip-summarize] [-skip-notify] [-schedule <cron spec>]

  Chains the full workflow: analyze the statement, ask the analyst for a
  commentary, deliver it to Telegram. By default the workflow stops at the
  first failed step. With -schedule the workflow repeats on a cron schedule
  (e.g. "0 18 * * 1-5") until interrupted.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.continueOnFailure, "continue-on-failure", false, "Keep going when a step fails.")
	f.BoolVar(&c.skipSummarize, "skip-summarize", false, "Do not call the Gemini analyst.")
	f.BoolVar(&c.skipNotify, "skip-notify", false, "Do not deliver to Telegram.")
	f.StringVar(&c.schedule, "schedule", "", "Cron schedule to repeat the workflow on.")
}

type step struct {
	name string
	run  func(context.Context) error
}

func (c *runCmd) steps() []step {
	steps := []step{{"analyze", (&analyzeCmd{}).run}}
	if !c.skipSummarize {
		steps = append(steps, step{"summarize", (&summarizeCmd{}).run})
	}
	if !c.skipNotify {
		steps = append(steps, step{"notify", (&notifyCmd{}).run})
	}
	return steps
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.schedule == "" {
		if ok := c.runOnce(ctx); !ok {
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(c.schedule, func() { c.runOnce(ctx) }); err != nil {
		fmt.Fprintf(os.Stderr, "invalid schedule %q: %v\n", c.schedule, err)
		return subcommands.ExitUsageError
	}
	fmt.Fprintf(os.Stderr, "Scheduled workflow on %q, waiting...\n", c.schedule)
	scheduler.Run() // blocks until the process is interrupted
	return subcommands.ExitSuccess
}

// runOnce executes the workflow steps in order and reports whether all of
// them succeeded.
func (c *runCmd) runOnce(ctx context.Context) bool {
	start := time.Now()
	allOK := true

	steps := c.steps()
	for i, s := range steps {
		fmt.Fprintf(os.Stderr, "STEP %d/%d: %s\n", i+1, len(steps), s.name)
		stepStart := time.Now()
		err := s.run(ctx)
		elapsed := time.Since(stepStart).Round(time.Millisecond)

		if err != nil {
			allOK = false
			fmt.Fprintf(os.Stderr, "step %s failed after %s: %v\n", s.name, elapsed, err)
			if !c.continueOnFailure {
				fmt.Fprintln(os.Stderr, "stopping workflow")
				break
			}
			continue
		}
		fmt.Fprintf(os.Stderr, "step %s done in %s\n", s.name, elapsed)
	}

	fmt.Fprintf(os.Stderr, "Workflow finished in %s\n", time.Since(start).Round(time.Millisecond))
	return allOK
}
