// Package renderer formats portfolio reports for their three consumers: the
// fixed-layout text file on disk, the terminal, and the Telegram message
// body. It never computes figures, it only lays them out.
package renderer

import (
	"fmt"
	"strings"

	"github.com/dpetkov/t212"
)

const (
	wide   = 80
	narrow = 40
)

// Summary renders the account report in its fixed plain-text layout: the
// account-summary block first, then the per-ticker table, then the
// additional metrics. The leading block carries the whole account state, so
// the report can be truncated anywhere after it without losing the summary.
func Summary(r *t212.Report) string {
	s := r.Snapshot
	var b strings.Builder

	rule := strings.Repeat("=", wide)
	thin := strings.Repeat("-", narrow)
	table := strings.Repeat("-", wide)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "TRADING 212 PORTFOLIO SUMMARY")
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "ACCOUNT SUMMARY")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "Free cash        : %13s\n", s.Cash)
	fmt.Fprintf(&b, "Invested amount  : %13s\n", s.Invested)
	fmt.Fprintf(&b, "Portfolio value  : %13s\n", s.MarketValue)
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "TOTAL ACCOUNT    : %13s\n", s.AccountValue)
	fmt.Fprintf(&b, "Unrealised P&L   : %13s  (%7s)\n", s.PnL, s.PnLPercent.SignedString())
	fmt.Fprintln(&b)

	if len(s.Positions) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		fmt.Fprintln(&b)
		footer(&b, r)
		return b.String()
	}

	fmt.Fprintln(&b, "TICKER SUMMARY")
	fmt.Fprintln(&b, table)
	fmt.Fprintf(&b, "%-8s %9s %9s %11s %10s %12s %11s %8s\n",
		"Ticker", "Shares", "Avg", "Cost", "Price", "Value", "P&L", "P&L %")
	fmt.Fprintln(&b, table)
	for _, p := range s.Positions {
		fmt.Fprintf(&b, "%-8s %9.3f %9.2f %11.2f %10.2f %12.2f %11.2f %8s\n",
			p.Ticker,
			p.Shares.AsFloat(),
			p.AvgCost.AsFloat(),
			p.Cost.AsFloat(),
			p.Price.AsFloat(),
			p.Value.AsFloat(),
			p.PnL.AsFloat(),
			p.PnLPercent.SignedString())
	}
	fmt.Fprintln(&b, table)
	fmt.Fprintf(&b, "%-8s %9s %9s %11.2f %10s %12.2f %11.2f %8s\n",
		"TOTAL", "", "",
		s.Invested.AsFloat(), "",
		s.MarketValue.AsFloat(),
		s.PnL.AsFloat(),
		s.PnLPercent.SignedString())
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "ADDITIONAL METRICS")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "Largest position  : %s (%s)\n", r.Largest.Ticker, r.Largest.Value)
	fmt.Fprintf(&b, "Best performer    : %s (%s)\n", r.Best.Ticker, r.Best.PnLPercent.SignedString())
	fmt.Fprintf(&b, "Worst performer   : %s (%s)\n", r.Worst.Ticker, r.Worst.PnLPercent.SignedString())
	fmt.Fprintf(&b, "Portfolio size    : %d positions\n", len(s.Positions))
	fmt.Fprintf(&b, "Cash allocation   : %.1f%% of total account\n", float64(r.CashAllocation))
	fmt.Fprintln(&b)

	footer(&b, r)
	return b.String()
}

func footer(b *strings.Builder, r *t212.Report) {
	fmt.Fprintf(b, "Report generated on: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(b, "Data source: Trading 212 combined statement")
	fmt.Fprintln(b, strings.Repeat("=", wide))
}
