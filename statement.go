package t212

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Action is the semantic meaning of a statement row.
type Action int

const (
	// ActionUnknown marks any row label outside the supported set. Such rows
	// are kept in the record sequence but ignored by the ledger.
	ActionUnknown Action = iota
	ActionDeposit
	ActionWithdrawal
	ActionInterest
	ActionBuy
	ActionSell
)

func (a Action) String() string {
	switch a {
	case ActionDeposit:
		return "deposit"
	case ActionWithdrawal:
		return "withdrawal"
	case ActionInterest:
		return "interest"
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseAction classifies a raw statement action label. The match is exact and
// case-sensitive, per the broker's export vocabulary.
func ParseAction(label string) Action {
	switch label {
	case "Deposit":
		return ActionDeposit
	case "Withdrawal":
		return ActionWithdrawal
	case "Interest on cash":
		return ActionInterest
	case "Market buy", "Limit buy":
		return ActionBuy
	case "Market sell", "Limit sell":
		return ActionSell
	default:
		return ActionUnknown
	}
}

// Record is a single immutable statement row, already classified and with
// numeric fields coerced. Fields that failed coercion are zero and listed in
// Defects so callers can surface the degradation without the ledger having
// to care.
type Record struct {
	Time     Timestamp
	Action   Action
	Ticker   string
	Quantity Quantity
	Total    Money // signed: negative for outflows
	Fee      Money // currency conversion fee, always >= 0
	Defects  []string
}

// ErrEmptyStatement is returned when the source contains no records at all.
// It is the single fatal input condition: everything below a whole-file
// failure degrades per-row instead.
var ErrEmptyStatement = errors.New("statement contains no transactions")

// Statement columns located by header name.
const (
	colTime     = "Time"
	colAction   = "Action"
	colTicker   = "Ticker"
	colQuantity = "Quantity"
	colTotal    = "Total"
	colFee      = "Currency conversion fee"
)

// ReadStatement parses a Trading 212 combined statement from r into records
// expressed in the reporting currency. Malformed rows are skipped with a log
// line, malformed numeric cells coerce to zero; only an unreadable header or
// a statement with no rows at all is an error.
func ReadStatement(r io.Reader, reportingCurrency string) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyStatement
		}
		return nil, fmt.Errorf("cannot read statement header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colTime, colAction} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("statement header is missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("statement line %d: skipping malformed row: %v", line, err)
			continue
		}

		rec := Record{
			Time:   ParseTimestamp(cell(row, colTime)),
			Action: ParseAction(cell(row, colAction)),
			Ticker: cell(row, colTicker),
		}
		if !rec.Time.IsValid() {
			rec.Defects = append(rec.Defects, colTime)
		}

		var ok bool
		var qty, total, fee decimal.Decimal
		if qty, ok = coerce(cell(row, colQuantity)); !ok {
			rec.Defects = append(rec.Defects, colQuantity)
		}
		if total, ok = coerce(cell(row, colTotal)); !ok {
			rec.Defects = append(rec.Defects, colTotal)
		}
		if fee, ok = coerce(cell(row, colFee)); !ok {
			rec.Defects = append(rec.Defects, colFee)
		}
		rec.Quantity = Q(qty)
		rec.Total = M(total, reportingCurrency)
		rec.Fee = M(fee, reportingCurrency)

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyStatement
	}
	return records, nil
}

// LoadStatement reads the statement file from disk.
func LoadStatement(path, reportingCurrency string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open statement %q: %w", path, err)
	}
	defer f.Close()

	records, err := ReadStatement(f, reportingCurrency)
	if err != nil {
		return nil, fmt.Errorf("cannot read statement %q: %w", path, err)
	}
	return records, nil
}

// coerce parses a numeric statement cell. An empty or unparseable cell
// coerces to zero with ok=false, so a single bad cell never aborts the pass.
func coerce(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
