package t212

import "fmt"

// Percent is a percentage value, e.g. 5.26 for 5.26%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString always carries an explicit +/- sign.
func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.2f%%", float64(p))
}
