package t212

import (
	"maps"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// DustThreshold is the share count at or below which a position is treated
// as fully closed and dropped from the snapshot.
var DustThreshold = Q(decimal.NewFromFloat(0.001))

// Position is the accumulated holding of a single ticker: the share count
// and the total cost, in the reporting currency, of the shares still held.
// Cost basis uses the average-cost method: a partial sell removes the same
// fraction of cost as of shares.
type Position struct {
	Ticker string
	Shares Quantity
	Cost   Money
}

// AvgCost returns the cost per share still held, or zero for an empty position.
func (p Position) AvgCost() Money {
	if p.Shares.IsZero() {
		return M(0, p.Cost.Currency())
	}
	return p.Cost.Div(p.Shares)
}

// Ledger folds a statement record sequence into a cash balance and a ticker
// to position mapping. The fold is inherently sequential: the proportional
// cost-basis reduction on sells depends on the share count accumulated so
// far, so records must be applied in chronological order.
type Ledger struct {
	reporting string
	cash      Money
	positions map[string]*Position
	applied   int
	skipped   int
}

// NewLedger creates an empty ledger accumulating in the given reporting currency.
func NewLedger(reportingCurrency string) *Ledger {
	return &Ledger{
		reporting: reportingCurrency,
		cash:      M(0, reportingCurrency),
		positions: make(map[string]*Position),
	}
}

// Accumulate sorts the records chronologically (stable, so same-instant rows
// keep their statement order) and applies them all. It can be called once
// with the whole statement or repeatedly with batches of already-later rows.
func (l *Ledger) Accumulate(records []Record) {
	sorted := slices.Clone(records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	for _, rec := range sorted {
		l.apply(rec)
	}
}

// apply folds a single record into the ledger state. No record is ever an
// error: unknown actions are skipped, and cash-only rules still run when a
// trade row is inconsistent.
func (l *Ledger) apply(rec Record) {
	switch rec.Action {
	case ActionDeposit, ActionWithdrawal, ActionInterest:
		// Withdrawal totals arrive already negative in the statement; the
		// ledger does not re-sign them.
		l.cash = l.cash.Add(rec.Total)

	case ActionBuy:
		cost := rec.Total.Abs().Add(rec.Fee)
		l.cash = l.cash.Sub(cost)

		pos, ok := l.positions[rec.Ticker]
		if !ok {
			pos = &Position{Ticker: rec.Ticker, Shares: Q(0), Cost: M(0, l.reporting)}
			l.positions[rec.Ticker] = pos
		}
		pos.Shares = pos.Shares.Add(rec.Quantity)
		pos.Cost = pos.Cost.Add(cost)

	case ActionSell:
		proceeds := rec.Total.Abs().Sub(rec.Fee)
		l.cash = l.cash.Add(proceeds)

		// Selling a ticker that was never bought updates cash only.
		pos, ok := l.positions[rec.Ticker]
		if !ok {
			break
		}
		remaining := pos.Shares.Sub(rec.Quantity)
		if remaining.IsPositive() {
			// The retained fraction uses the pre-sale share count.
			pos.Cost = pos.Cost.Scale(remaining.Ratio(pos.Shares))
		} else {
			// Oversells may leave a slightly negative share count on
			// inconsistent data; the dust filter surfaces it downstream.
			pos.Cost = M(0, l.reporting)
		}
		pos.Shares = remaining

	default:
		l.skipped++
		return
	}
	l.applied++
}

// Cash returns the accumulated cash balance in the reporting currency.
func (l *Ledger) Cash() Money { return l.cash }

// ReportingCurrency returns the currency every ledger figure is expressed in.
func (l *Ledger) ReportingCurrency() string { return l.reporting }

// Applied returns the number of records that moved the ledger state, and
// Skipped the number ignored because their action was unknown.
func (l *Ledger) Applied() int { return l.applied }
func (l *Ledger) Skipped() int { return l.skipped }

// Position returns the accumulated position for a ticker, before dust
// filtering. The second result is false when the ticker was never bought.
func (l *Ledger) Position(ticker string) (Position, bool) {
	pos, ok := l.positions[ticker]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// OpenPositions returns the surviving positions, dust filtered and sorted by
// ticker for reproducible iteration.
func (l *Ledger) OpenPositions() []Position {
	tickers := slices.Collect(maps.Keys(l.positions))
	slices.Sort(tickers)

	open := make([]Position, 0, len(tickers))
	for _, ticker := range tickers {
		pos := l.positions[ticker]
		if pos.Shares.GreaterThan(DustThreshold) {
			open = append(open, *pos)
		}
	}
	return open
}
