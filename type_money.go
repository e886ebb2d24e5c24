package t212

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a given currency.
// All arithmetic is exact, backed by decimal.Decimal.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the full go-money currency for formatting purposes.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a non-nil currency even for unknown codes
	return *money.New(0, m.cur).Currency()
}

// String renders the value with the currency symbol and grouping, e.g. "€1,234.56".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString is like String but always carries an explicit sign.
func (m Money) SignedString() string {
	if m.value.IsNegative() {
		return m.String()
	}
	return "+" + m.String()
}

func (m Money) Currency() string             { return m.cur }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                   { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money         { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Add(n Money) Money            { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money            { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }
func (m Money) AsFloat() float64             { return m.value.InexactFloat64() }
func (m Money) Amount() decimal.Decimal      { return m.value }

// Div divides the amount by a quantity, e.g. a cost basis by a share count.
func (m Money) Div(q Quantity) Money {
	return Money{value: m.value.Div(q.value), cur: m.cur}
}

// Scale multiplies the amount by a bare ratio, keeping the currency.
func (m Money) Scale(ratio decimal.Decimal) Money {
	return Money{value: m.value.Mul(ratio), cur: m.cur}
}

// Convert returns the amount expressed in another currency at the given rate.
func (m Money) Convert(rate decimal.Decimal, currency string) Money {
	if m.cur == currency {
		return m
	}
	return Money{value: m.value.Mul(rate), cur: currency}
}

// PercentOf returns m as a percentage of the base, or 0 when the base is zero.
// The zero guard matters: a position with zero cost basis reports 0% P&L, not
// an arithmetic error.
func (m Money) PercentOf(base Money) Percent {
	if base.value.IsZero() {
		return 0
	}
	return Percent(m.value.Div(base.value).InexactFloat64() * 100)
}

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}
