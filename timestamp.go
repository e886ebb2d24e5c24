package t212

import (
	"strings"
	"time"
)

// Statement timestamp layouts. Trading 212 mixes whole-second and
// microsecond precision in the same export.
const (
	timeLayout       = "2006-01-02 15:04:05"
	timeLayoutMicros = "2006-01-02 15:04:05.999999"
)

// permissiveLayouts are tried, in order, when the statement layouts fail.
var permissiveLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// Timestamp is the ordering key of a statement record. A Timestamp that could
// not be parsed is kept (the record still moves cash) but sorts after every
// valid one.
type Timestamp struct {
	t     time.Time
	valid bool
}

// NewTimestamp returns a valid Timestamp for a known instant.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t, valid: true}
}

// ParseTimestamp parses the raw statement time string. The presence of a '.'
// selects the microsecond layout, otherwise the whole-second one; on failure
// a list of permissive layouts is tried before giving up and returning an
// invalid Timestamp. Parsing never returns an error: a bad timestamp is an
// input defect, not a fatal condition.
func ParseTimestamp(raw string) Timestamp {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}
	}

	layout := timeLayout
	if strings.Contains(raw, ".") {
		layout = timeLayoutMicros
	}
	if t, err := time.Parse(layout, raw); err == nil {
		return Timestamp{t: t, valid: true}
	}

	for _, layout := range permissiveLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Timestamp{t: t, valid: true}
		}
	}
	return Timestamp{}
}

// IsValid reports whether the timestamp was successfully parsed.
func (ts Timestamp) IsValid() bool { return ts.valid }

// Time returns the underlying instant. Only meaningful when IsValid.
func (ts Timestamp) Time() time.Time { return ts.t }

// Before defines the chronological order of records: valid timestamps in
// instant order, invalid ones after all valid ones. Ties report false so a
// stable sort preserves the statement order.
func (ts Timestamp) Before(other Timestamp) bool {
	if ts.valid && !other.valid {
		return true
	}
	if !ts.valid {
		return false
	}
	return ts.t.Before(other.t)
}

func (ts Timestamp) String() string {
	if !ts.valid {
		return "invalid"
	}
	return ts.t.Format(timeLayout)
}
