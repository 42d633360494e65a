// Package alphavantage fetches daily prices from Alpha Vantage
// (https://www.alphavantage.co).
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/rentability"
	"github.com/etnz/rentability/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the Alpha Vantage query endpoint.
const DefaultBaseURL = "https://www.alphavantage.co/query"

// compactDays is the calendar span covered by a compact response (100 trading days).
const compactDays = 140

// Client is a rentability.PriceSource backed by TIME_SERIES_DAILY.
//
// Alpha Vantage answers a rate limited request with a 200 and a note instead
// of prices. The note is returned as a *LimitError; the request is not retried.
type Client struct {
	APIKey string
	// Suffix is appended to ledger symbols, like ".SAO" for the Brazilian exchange.
	Suffix     string
	HTTPClient *http.Client // http.DefaultClient when nil
	BaseURL    string       // DefaultBaseURL when empty
}

// LimitError is the message Alpha Vantage sends in place of data when the
// API key is over its quota.
type LimitError struct {
	Note string
}

func (e *LimitError) Error() string { return "alpha vantage refused the request: " + e.Note }

// Ticker returns the Alpha Vantage symbol of a ledger symbol.
func (c *Client) Ticker(symbol string) string { return symbol + c.Suffix }

// DailyPrices implements rentability.PriceSource. The opening price of each
// trading day is stamped at rentability.MarketClose.
func (c *Client) DailyPrices(ctx context.Context, symbol string, from, to date.Date) (rentability.Series, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("missing Alpha Vantage API key")
	}
	doc, err := c.query(ctx, c.Ticker(symbol), outputSize(from))
	if err != nil {
		return nil, fmt.Errorf("could not fetch %s prices: %w", c.Ticker(symbol), err)
	}
	open, err := parseDaily(doc, date.NewRange(from, to))
	if err != nil {
		return nil, fmt.Errorf("could not read %s prices: %w", c.Ticker(symbol), err)
	}
	return rentability.Daily(open), nil
}

func outputSize(from date.Date) string {
	if date.Today().Sub(from) > compactDays {
		return "full"
	}
	return "compact"
}

// query returns the decoded JSON document of a TIME_SERIES_DAILY request.
func (c *Client) query(ctx context.Context, ticker, size string) (any, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	q := url.Values{
		"function":   {"TIME_SERIES_DAILY"},
		"symbol":     {ticker},
		"outputsize": {size},
		"apikey":     {c.APIKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	log.Debug().Str("symbol", ticker).Str("size", size).Str("status", resp.Status).Msg("alphavantage")
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseDaily extracts the opening prices within r out of a TIME_SERIES_DAILY document:
//
//	{
//	    "Meta Data": {...},
//	    "Time Series (Daily)": {
//	        "2025-01-07": {"1. open": "37.9800", "2. high": "38.2000", ...},
//	        ...
//	    }
//	}
func parseDaily(doc any, r date.Range) (map[date.Date]decimal.Decimal, error) {
	for _, path := range []string{`$.Note`, `$.Information`, `$["Error Message"]`} {
		if note, err := jsonpath.Get(path, doc); err == nil {
			if s, ok := note.(string); ok && s != "" {
				return nil, &LimitError{Note: s}
			}
		}
	}

	jval, err := jsonpath.Get(`$["Time Series (Daily)"]`, doc)
	if err != nil {
		return nil, fmt.Errorf("no daily time series: %w", err)
	}
	series, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("daily time series is not an object: %T", jval)
	}

	open := make(map[date.Date]decimal.Decimal)
	for day, fields := range series {
		on, err := date.Parse(day)
		if err != nil {
			return nil, err
		}
		if !r.Contains(on) {
			continue
		}
		jopen, err := jsonpath.Get(`$["1. open"]`, fields)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", day, err)
		}
		s, ok := jopen.(string)
		if !ok {
			return nil, fmt.Errorf("%s: open price is not a string: %v", day, jopen)
		}
		price, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid open price: %w", day, err)
		}
		open[on] = price
	}
	return open, nil
}
