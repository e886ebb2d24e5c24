package t212

import (
	"context"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"
)

// valuationParallelism bounds the concurrent quote lookups. Lookups are
// independent across positions; only the ledger fold itself is sequential.
const valuationParallelism = 4

// ValuedPosition is the read-only projection of a Position enriched with a
// current price, all in the reporting currency.
type ValuedPosition struct {
	Ticker     string
	Shares     Quantity
	AvgCost    Money
	Cost       Money
	Price      Money
	Value      Money
	PnL        Money
	PnLPercent Percent
}

// Snapshot is the write-once view of the whole account at valuation time:
// cash, valued positions sorted by value descending, and the aggregate
// totals. Once built it is never mutated.
type Snapshot struct {
	Currency     string
	Cash         Money
	Positions    []ValuedPosition
	Invested     Money
	MarketValue  Money
	AccountValue Money
	PnL          Money
	PnLPercent   Percent
}

// NewSnapshot values every open position of the ledger through the quoter
// and converter and freezes the result. Valuation never fails: an
// unavailable quote degrades to a zero price in the reporting currency (the
// position then shows a total loss), and a failed FX lookup degrades to the
// static fallback table.
func NewSnapshot(ctx context.Context, ledger *Ledger, quoter Quoter, converter Converter) *Snapshot {
	reporting := ledger.ReportingCurrency()
	open := ledger.OpenPositions()

	valued := make([]ValuedPosition, len(open))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(valuationParallelism)
	for i, pos := range open {
		g.Go(func() error {
			valued[i] = value(ctx, pos, reporting, quoter, converter)
			return nil
		})
	}
	g.Wait() // the workers only record degraded values, never errors

	// Rank by market value descending. The sort is stable so equal values
	// keep the ticker order of the ledger.
	sort.SliceStable(valued, func(i, j int) bool {
		return valued[j].Value.LessThan(valued[i].Value)
	})

	s := &Snapshot{
		Currency:    reporting,
		Cash:        ledger.Cash(),
		Positions:   valued,
		Invested:    M(0, reporting),
		MarketValue: M(0, reporting),
	}
	for _, vp := range valued {
		s.Invested = s.Invested.Add(vp.Cost)
		s.MarketValue = s.MarketValue.Add(vp.Value)
	}
	s.AccountValue = s.Cash.Add(s.MarketValue)
	s.PnL = s.MarketValue.Sub(s.Invested)
	s.PnLPercent = s.PnL.PercentOf(s.Invested)
	return s
}

// value prices a single position, degrading gracefully on adapter failures.
func value(ctx context.Context, pos Position, reporting string, quoter Quoter, converter Converter) ValuedPosition {
	quote, err := quoter.Quote(ctx, pos.Ticker)
	if err != nil {
		log.Printf("quote %s unavailable, valuing at zero: %v", pos.Ticker, err)
		quote = Quote{Currency: reporting} // zero price, shows as a full loss
	}

	price := M(quote.Price, quote.Currency)
	if quote.Currency != reporting {
		rate, err := converter.Rate(ctx, quote.Currency, reporting)
		if err != nil {
			log.Printf("rate %s/%s unavailable, using fallback: %v", quote.Currency, reporting, err)
			rate = FallbackRate(quote.Currency, reporting)
		}
		price = price.Convert(rate, reporting)
	}

	value := price.Mul(pos.Shares)
	pnl := value.Sub(pos.Cost)
	return ValuedPosition{
		Ticker:     pos.Ticker,
		Shares:     pos.Shares,
		AvgCost:    pos.AvgCost(),
		Cost:       pos.Cost,
		Price:      price,
		Value:      value,
		PnL:        pnl,
		PnLPercent: pnl.PercentOf(pos.Cost),
	}
}
