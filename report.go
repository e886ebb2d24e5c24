package t212

import "time"

// Report is the final aggregation over a snapshot: the deterministic ranking
// facts the textual report states beyond the raw figures. Best and Worst use
// P&L percent with ties broken by the first position encountered in the
// value-sorted sequence; Largest is simply the head of that sequence.
type Report struct {
	Snapshot    *Snapshot
	GeneratedAt time.Time

	Largest *ValuedPosition
	Best    *ValuedPosition
	Worst   *ValuedPosition

	// CashAllocation is cash as a percentage of the total account value,
	// zero when the account is empty.
	CashAllocation Percent
}

// NewReport computes the report metrics for a snapshot. The generation time
// is passed in rather than read from the clock so that identical inputs
// produce byte-identical reports.
func NewReport(s *Snapshot, generatedAt time.Time) *Report {
	r := &Report{Snapshot: s, GeneratedAt: generatedAt}

	for i := range s.Positions {
		vp := &s.Positions[i]
		if r.Largest == nil {
			r.Largest, r.Best, r.Worst = vp, vp, vp
			continue
		}
		if vp.PnLPercent > r.Best.PnLPercent {
			r.Best = vp
		}
		if vp.PnLPercent < r.Worst.PnLPercent {
			r.Worst = vp
		}
	}

	if !s.AccountValue.IsZero() {
		r.CashAllocation = s.Cash.PercentOf(s.AccountValue)
	}
	return r
}

// HasPositions reports whether the account holds anything beyond cash.
func (r *Report) HasPositions() bool {
	return len(r.Snapshot.Positions) > 0
}
