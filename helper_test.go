package t212

// EUR is a helper for tests to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for tests to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// rec is a helper for tests to build a statement record.
func rec(when, action, ticker string, quantity, total, fee float64) Record {
	return Record{
		Time:     ParseTimestamp(when),
		Action:   ParseAction(action),
		Ticker:   ticker,
		Quantity: Q(quantity),
		Total:    EUR(total),
		Fee:      EUR(fee),
	}
}

// approx reports whether a money amount agrees with want within a cent.
func approx(a Money, want float64) bool {
	diff := a.AsFloat() - want
	if diff < 0 {
		diff = -diff
	}
	return diff < 0.01
}
