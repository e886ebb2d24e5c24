package t212

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Quote is a current price in the quote currency of the listing venue.
type Quote struct {
	Price    decimal.Decimal
	Currency string
}

// Quoter is the market valuation capability the snapshot depends on. A
// failed lookup is reported as an error; the snapshot degrades it to a zero
// price in the reporting currency rather than aborting the report.
type Quoter interface {
	Quote(ctx context.Context, ticker string) (Quote, error)
}

// tickerMappings maps statement tickers to the symbols the quote provider
// knows. UK-listed instruments need the .L suffix.
var tickerMappings = map[string]string{
	"VUSA": "VUSA.L",
}

// YahooQuoter fetches current prices from the Yahoo Finance chart endpoint.
type YahooQuoter struct {
	// BaseURL overrides the endpoint, for tests.
	BaseURL string
	// Client defaults to a disk-cached client with a bounded timeout.
	Client *http.Client
}

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

func (y *YahooQuoter) client() *http.Client {
	if y.Client != nil {
		return y.Client
	}
	return cachedClient()
}

func (y *YahooQuoter) base() string {
	if y.BaseURL != "" {
		return y.BaseURL
	}
	return yahooChartURL
}

// Quote implements Quoter against the chart meta block, which carries both
// the regular market price and the quote currency.
func (y *YahooQuoter) Quote(ctx context.Context, ticker string) (Quote, error) {
	symbol := ticker
	if mapped, ok := tickerMappings[ticker]; ok {
		symbol = mapped
	}

	var jobj any
	addr := y.base() + url.PathEscape(symbol) + "?range=1d&interval=1d"
	if err := jwget(ctx, y.client(), addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("cannot fetch quote for %q: %w", ticker, err)
	}

	price, err := jsonFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return Quote{}, fmt.Errorf("cannot read price for %q: %w", ticker, err)
	}
	currency, err := jsonString(jobj, "$.chart.result[0].meta.currency")
	if err != nil {
		return Quote{}, fmt.Errorf("cannot read currency for %q: %w", ticker, err)
	}

	q := Quote{Price: decimal.NewFromFloat(price), Currency: currency}
	// London quotes come back in pence.
	if currency == "GBp" || currency == "GBX" {
		q.Price = q.Price.Div(decimal.NewFromInt(100))
		q.Currency = "GBP"
	}
	return q, nil
}

// StaticQuoter serves quotes from a fixed table. Tickers absent from the
// table report an error, like a live provider would. It is the deterministic
// variant used in tests and offline runs.
type StaticQuoter map[string]Quote

func (s StaticQuoter) Quote(_ context.Context, ticker string) (Quote, error) {
	q, ok := s[ticker]
	if !ok {
		return Quote{}, fmt.Errorf("no quote for %q", ticker)
	}
	return q, nil
}

// jsonFloat extracts a float value from parsed JSON at a jsonpath.
func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, err
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%q is not a number: %v", path, jval)
	}
	return val, nil
}

// jsonString extracts a string value from parsed JSON at a jsonpath.
func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", err
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q is not a string: %v", path, jval)
	}
	return val, nil
}
