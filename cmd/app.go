// Package cmd implements the CLI application to analyze a Trading 212
// statement and deliver the resulting report.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Register the subcommands.
// A main package calls Register() to declare them, and Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&analyzeCmd{}, "portfolio")
	c.Register(&summarizeCmd{}, "portfolio")
	c.Register(&notifyCmd{}, "delivery")
	c.Register(&runCmd{}, "workflow")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var statementFile = flag.String("statement-file", "combined_statement.csv", "Path to the Trading 212 combined statement (CSV)")
var exportsDir = flag.String("exports-dir", "exports", "Directory where reports and analyses are written")
var reportingCurrency = flag.String("currency", "EUR", "Reporting currency all figures are normalized to")

// LoadDotEnv loads a .env file when present, so GEMINI_API_KEY, BOT_TOKEN
// and CHAT_ID can live next to the statement instead of in the shell.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: cannot load .env: %v\n", err)
	}
}

// summaryPath is where analyze persists the plain-text report.
func summaryPath() string {
	return filepath.Join(*exportsDir, "portfolio_summary.txt")
}

// analysisPath is where summarize persists the model commentary, dated so
// notify can pick the newest one.
func analysisPath(t time.Time) string {
	return filepath.Join(*exportsDir, "portfolio_analysis_"+t.Format("20060102_150405")+".txt")
}

// latestAnalysis returns the newest dated analysis file, or "" if none exists.
func latestAnalysis() string {
	matches, err := filepath.Glob(filepath.Join(*exportsDir, "portfolio_analysis_*.txt"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	var newest string
	var newestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest, newestMod = m, info.ModTime()
		}
	}
	return newest
}

// printMarkdown renders markdown for the terminal. On any rendering problem
// the raw markdown is printed instead.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
