package t212

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseAction(t *testing.T) {
	testCases := []struct {
		label string
		want  Action
	}{
		{"Deposit", ActionDeposit},
		{"Withdrawal", ActionWithdrawal},
		{"Interest on cash", ActionInterest},
		{"Market buy", ActionBuy},
		{"Limit buy", ActionBuy},
		{"Market sell", ActionSell},
		{"Limit sell", ActionSell},
		{"Dividend (Ordinary)", ActionUnknown},
		{"deposit", ActionUnknown}, // case-sensitive
		{"", ActionUnknown},
	}
	for _, tc := range testCases {
		if got := ParseAction(tc.label); got != tc.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

const sampleStatement = `Time,Action,Ticker,Quantity,Total,Currency conversion fee
2024-01-02 09:00:00,Deposit,,,1000.00,
2024-01-03 10:00:00.123456,Market buy,AAPL,2.5,-400.00,0.60
2024-01-04 10:00:00,Market sell,AAPL,1,180.00,0.30
2024-01-05 10:00:00,Interest on cash,,,1.23,
`

func TestReadStatement(t *testing.T) {
	records, err := ReadStatement(strings.NewReader(sampleStatement), "EUR")
	if err != nil {
		t.Fatalf("ReadStatement() error: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	buy := records[1]
	if buy.Action != ActionBuy {
		t.Errorf("record 1 action = %v, want buy", buy.Action)
	}
	if buy.Ticker != "AAPL" {
		t.Errorf("record 1 ticker = %q, want AAPL", buy.Ticker)
	}
	if !buy.Quantity.Equal(Q(2.5)) {
		t.Errorf("record 1 quantity = %v, want 2.5", buy.Quantity)
	}
	if !approx(buy.Total, -400) {
		t.Errorf("record 1 total = %v, want -400", buy.Total)
	}
	if !approx(buy.Fee, 0.60) {
		t.Errorf("record 1 fee = %v, want 0.60", buy.Fee)
	}
	if !buy.Time.IsValid() {
		t.Error("record 1 timestamp should parse")
	}
	if buy.Total.Currency() != "EUR" {
		t.Errorf("record 1 currency = %q, want EUR", buy.Total.Currency())
	}
}

func TestReadStatementCoercionDefects(t *testing.T) {
	src := `Time,Action,Ticker,Quantity,Total,Currency conversion fee
2024-01-02 09:00:00,Market buy,AAPL,abc,not-a-number,
`
	records, err := ReadStatement(strings.NewReader(src), "EUR")
	if err != nil {
		t.Fatalf("ReadStatement() error: %v", err)
	}
	r := records[0]
	if !r.Quantity.IsZero() || !r.Total.IsZero() || !r.Fee.IsZero() {
		t.Errorf("coercion failures must default to zero, got q=%v total=%v fee=%v", r.Quantity, r.Total, r.Fee)
	}
	for _, want := range []string{colQuantity, colTotal, colFee} {
		if !slices.Contains(r.Defects, want) {
			t.Errorf("defects %v should contain %q", r.Defects, want)
		}
	}
}

func TestReadStatementRaggedRows(t *testing.T) {
	// A short row and a row with a stray field must not abort the pass.
	src := `Time,Action,Ticker,Quantity,Total,Currency conversion fee
2024-01-02 09:00:00,Deposit
2024-01-03 09:00:00,Market buy,AAPL,1,-100.00,0.10,extra
`
	records, err := ReadStatement(strings.NewReader(src), "EUR")
	if err != nil {
		t.Fatalf("ReadStatement() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Action != ActionDeposit {
		t.Errorf("short row action = %v, want deposit", records[0].Action)
	}
	if !approx(records[1].Total, -100) {
		t.Errorf("long row total = %v, want -100", records[1].Total)
	}
}

func TestReadStatementEmpty(t *testing.T) {
	if _, err := ReadStatement(strings.NewReader(""), "EUR"); !errors.Is(err, ErrEmptyStatement) {
		t.Errorf("empty input: got %v, want ErrEmptyStatement", err)
	}
	headerOnly := "Time,Action,Ticker,Quantity,Total,Currency conversion fee\n"
	if _, err := ReadStatement(strings.NewReader(headerOnly), "EUR"); !errors.Is(err, ErrEmptyStatement) {
		t.Errorf("header only: got %v, want ErrEmptyStatement", err)
	}
}

func TestReadStatementMissingColumns(t *testing.T) {
	src := "Date,Amount\n2024-01-02,100\n"
	if _, err := ReadStatement(strings.NewReader(src), "EUR"); err == nil {
		t.Error("a statement without Time/Action columns must be rejected")
	}
}

func TestLoadStatementMissingFile(t *testing.T) {
	if _, err := LoadStatement("does/not/exist.csv", "EUR"); err == nil {
		t.Error("a missing statement file is the fatal input condition")
	}
}
