package t212

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// Converter is the FX capability the snapshot depends on: the multiplier
// turning one unit of from into units of to. Implementations may fail; the
// snapshot then falls back to FallbackRate so valuation always completes.
type Converter interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// fallbackRates are documented approximate rates into EUR, used when the
// live lookup is unavailable.
var fallbackRates = map[string]float64{
	"USD": 0.92,
	"GBP": 1.17,
}

// FallbackRate returns the static approximate rate for a currency pair.
// Identity for matching currencies, 1 for pairs outside the table: a wrong
// but finite number keeps the report generable, and the degradation stays
// visible in the figures.
func FallbackRate(from, to string) decimal.Decimal {
	if from == to {
		return decimal.NewFromInt(1)
	}
	if to == "EUR" {
		if rate, ok := fallbackRates[from]; ok {
			return decimal.NewFromFloat(rate)
		}
	}
	if from == "EUR" {
		if rate, ok := fallbackRates[to]; ok {
			return decimal.NewFromInt(1).Div(decimal.NewFromFloat(rate))
		}
	}
	return decimal.NewFromInt(1)
}

// YahooConverter resolves FX rates from the Yahoo Finance chart endpoint
// using the FROMTO=X pair symbols.
type YahooConverter struct {
	BaseURL string
	Client  *http.Client
}

func (y *YahooConverter) client() *http.Client {
	if y.Client != nil {
		return y.Client
	}
	return cachedClient()
}

func (y *YahooConverter) base() string {
	if y.BaseURL != "" {
		return y.BaseURL
	}
	return yahooChartURL
}

// Rate implements Converter. Identity pairs never hit the network.
func (y *YahooConverter) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	symbol := from + to + "=X"
	var jobj any
	addr := y.base() + url.PathEscape(symbol) + "?range=1d&interval=1d"
	if err := jwget(ctx, y.client(), addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("cannot fetch rate %s/%s: %w", from, to, err)
	}
	rate, err := jsonFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot read rate %s/%s: %w", from, to, err)
	}
	if rate == 0 {
		return decimal.Zero, fmt.Errorf("empty rate for %s/%s", from, to)
	}
	return decimal.NewFromFloat(rate), nil
}

// StaticConverter serves rates from a fixed from→to→rate table, identity on
// matching currencies. The deterministic variant used in tests.
type StaticConverter map[string]map[string]decimal.Decimal

func (s StaticConverter) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if rates, ok := s[from]; ok {
		if rate, ok := rates[to]; ok {
			return rate, nil
		}
	}
	return decimal.Zero, fmt.Errorf("no rate for %s/%s", from, to)
}
