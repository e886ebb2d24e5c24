package t212

import (
	"testing"
)

func TestLedgerScenario(t *testing.T) {
	// Deposit 1000, buy 10 XYZ for 500, buy 5 XYZ for 260, sell 5 XYZ for 300.
	ledger := NewLedger("EUR")
	ledger.Accumulate([]Record{
		rec("2024-01-02 09:00:00", "Deposit", "", 0, 1000, 0),
		rec("2024-01-03 09:00:00", "Market buy", "XYZ", 10, -500, 0),
		rec("2024-01-04 09:00:00", "Market buy", "XYZ", 5, -260, 0),
		rec("2024-01-05 09:00:00", "Market sell", "XYZ", 5, 300, 0),
	})

	if !approx(ledger.Cash(), 540) {
		t.Errorf("cash = %v, want 540", ledger.Cash())
	}
	pos, ok := ledger.Position("XYZ")
	if !ok {
		t.Fatal("XYZ position should exist")
	}
	if !pos.Shares.Equal(Q(10)) {
		t.Errorf("shares = %v, want 10", pos.Shares)
	}
	// (500+260) * 10/15 = 506.67 within rounding.
	if !approx(pos.Cost, 506.67) {
		t.Errorf("cost basis = %v, want 506.67", pos.Cost)
	}
}

func TestLedgerCashConservation(t *testing.T) {
	// Total cash equals the sum of signed cash-affecting amounts, whatever
	// happens at the instrument level.
	records := []Record{
		rec("2024-01-01 09:00:00", "Deposit", "", 0, 2000, 0),
		rec("2024-01-02 09:00:00", "Market buy", "AAA", 3, -330, 1.50),
		rec("2024-01-03 09:00:00", "Interest on cash", "", 0, 2.75, 0),
		rec("2024-01-04 09:00:00", "Withdrawal", "", 0, -150, 0),
		rec("2024-01-05 09:00:00", "Market sell", "AAA", 1, 120, 0.40),
		rec("2024-01-06 09:00:00", "Limit buy", "BBB", 10, -90, 0),
		rec("2024-01-07 09:00:00", "Market sell", "CCC", 2, 40, 0), // never bought
	}
	ledger := NewLedger("EUR")
	ledger.Accumulate(records)

	want := 2000.0 - (330 + 1.50) + 2.75 - 150 + (120 - 0.40) - 90 + 40
	if !approx(ledger.Cash(), want) {
		t.Errorf("cash = %v, want %v", ledger.Cash(), want)
	}
}

func TestLedgerAverageCost(t *testing.T) {
	// After buys only, cost/shares is the amount-weighted average buy cost.
	ledger := NewLedger("EUR")
	ledger.Accumulate([]Record{
		rec("2024-01-01 09:00:00", "Market buy", "AAA", 4, -100, 0),
		rec("2024-01-02 09:00:00", "Market buy", "AAA", 6, -240, 0),
		rec("2024-01-03 09:00:00", "Limit buy", "AAA", 10, -500, 0),
	})
	pos, _ := ledger.Position("AAA")
	if !approx(pos.Cost, 840) {
		t.Errorf("cost basis = %v, want 840", pos.Cost)
	}
	if !approx(pos.AvgCost(), 42) {
		t.Errorf("avg cost = %v, want 42", pos.AvgCost())
	}
}

func TestLedgerProportionalReduction(t *testing.T) {
	// Selling k of n shares multiplies the remaining basis by (n-k)/n.
	ledger := NewLedger("EUR")
	ledger.Accumulate([]Record{
		rec("2024-01-01 09:00:00", "Market buy", "AAA", 8, -800, 0),
		rec("2024-01-02 09:00:00", "Market sell", "AAA", 2, 250, 0),
	})
	pos, _ := ledger.Position("AAA")
	if !pos.Shares.Equal(Q(6)) {
		t.Errorf("shares = %v, want 6", pos.Shares)
	}
	if !approx(pos.Cost, 600) { // 800 * 6/8
		t.Errorf("cost basis = %v, want 600", pos.Cost)
	}
}

func TestLedgerSellAllZeroesBasis(t *testing.T) {
	ledger := NewLedger("EUR")
	ledger.Accumulate([]Record{
		rec("2024-01-01 09:00:00", "Market buy", "AAA", 5, -500, 0),
		rec("2024-01-02 09:00:00", "Market sell", "AAA", 5, 550, 0),
	})
	pos, _ := ledger.Position("AAA")
	if !pos.Cost.IsZero() {
		t.Errorf("cost basis after selling all = %v, want 0", pos.Cost)
	}
	if !pos.Shares.IsZero() {
		t.Errorf("shares after selling all = %v, want 0", pos.Shares)
	}
	if len(ledger.OpenPositions()) != 0 {
		t.Error("a fully closed position must not survive the dust filter")
	}
}

func TestLedgerOversell(t *testing.T) {
	// Overselling on inconsistent data leaves a negative share count which
	// the dust filter drops; it is not silently corrected.
	ledger := NewLedger("EUR")
	ledger.Accumulate([]Record{
		rec("2024-01-01 09:00:00", "Market buy", "AAA", 3, -300, 0),
		rec("2024-01-02 09:00:00", "Market sell", "AAA", 4, 410, 0),
	})
	pos, _ := ledger.Position("AAA")
	if !pos.Shares.Equal(Q(-1)) {
		t.Errorf("shares = %v, want -1", pos.Shares)
	}
	if !pos.Cost.IsZero() {
		t.Errorf("cost basis = %v, want 0", pos.Cost)
	}
	if len(ledger.OpenPositions()) != 0 {
		t.Error("negative positions must not appear in the snapshot")
	}
}

func TestLedgerSellWithoutPosition(t *testing.T) {
	ledger := NewLedger("EUR")
	ledger.Accumulate([]Record{
		rec("2024-01-01 09:00:00", "Deposit", "", 0, 100, 0),
		rec("2024-01-02 09:00:00", "Market sell", "GHOST", 2, 50, 1),
	})
	if !approx(ledger.Cash(), 149) {
		t.Errorf("cash = %v, want 149", ledger.Cash())
	}
	if _, ok := ledger.Position("GHOST"); ok {
		t.Error("selling a never-bought ticker must not create a position")
	}
}

func TestLedgerUnknownActionsSkipped(t *testing.T) {
	ledger := NewLedger("EUR")
	ledger.Accumulate([]Record{
		rec("2024-01-01 09:00:00", "Deposit", "", 0, 100, 0),
		rec("2024-01-02 09:00:00", "Dividend (Ordinary)", "AAA", 0, 3.21, 0),
	})
	if !approx(ledger.Cash(), 100) {
		t.Errorf("cash = %v, want 100 (unknown actions must not move cash)", ledger.Cash())
	}
	if ledger.Skipped() != 1 {
		t.Errorf("skipped = %d, want 1", ledger.Skipped())
	}
	if ledger.Applied() != 1 {
		t.Errorf("applied = %d, want 1", ledger.Applied())
	}
}

func TestLedgerDustFilter(t *testing.T) {
	ledger := NewLedger("EUR")
	ledger.Accumulate([]Record{
		rec("2024-01-01 09:00:00", "Market buy", "AAA", 1, -100, 0),
		rec("2024-01-02 09:00:00", "Market sell", "AAA", 0.9995, 99, 0),
		rec("2024-01-03 09:00:00", "Market buy", "BBB", 0.002, -1, 0),
	})

	open := ledger.OpenPositions()
	if len(open) != 1 || open[0].Ticker != "BBB" {
		t.Fatalf("open positions = %v, want only BBB", open)
	}
	// AAA is down to 0.0005 shares, at or below the threshold.
	if pos, ok := ledger.Position("AAA"); !ok || !pos.Shares.LessThan(DustThreshold) {
		t.Errorf("AAA should remain in the raw map as dust, got %v ok=%v", pos, ok)
	}
}

func TestLedgerAccumulateSortsChronologically(t *testing.T) {
	// The same trades shuffled must produce the same basis: Accumulate
	// re-sorts by timestamp before folding.
	ordered := []Record{
		rec("2024-01-01 09:00:00", "Market buy", "AAA", 10, -500, 0),
		rec("2024-01-02 09:00:00", "Market buy", "AAA", 5, -260, 0),
		rec("2024-01-03 09:00:00", "Market sell", "AAA", 5, 300, 0),
	}
	shuffled := []Record{ordered[2], ordered[0], ordered[1]}

	a, b := NewLedger("EUR"), NewLedger("EUR")
	a.Accumulate(ordered)
	b.Accumulate(shuffled)

	pa, _ := a.Position("AAA")
	pb, _ := b.Position("AAA")
	if !pa.Cost.Equal(pb.Cost) || !pa.Shares.Equal(pb.Shares) {
		t.Errorf("shuffled input diverged: %v vs %v", pa, pb)
	}
}

func TestLedgerInvalidTimestampSortsLast(t *testing.T) {
	// The bad-timestamp buy is applied after the valid sell, so the sell
	// hits an empty book and only moves cash.
	ledger := NewLedger("EUR")
	ledger.Accumulate([]Record{
		rec("garbage", "Market buy", "AAA", 5, -500, 0),
		rec("2024-01-02 09:00:00", "Market sell", "AAA", 5, 550, 0),
	})
	pos, ok := ledger.Position("AAA")
	if !ok {
		t.Fatal("the buy must still be applied")
	}
	if !pos.Shares.Equal(Q(5)) {
		t.Errorf("shares = %v, want 5 (sell ran before the late buy)", pos.Shares)
	}
	if !approx(ledger.Cash(), 50) {
		t.Errorf("cash = %v, want 50", ledger.Cash())
	}
}
