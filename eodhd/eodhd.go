// Package eodhd fetches daily prices from EOD Historical Data (https://eodhd.com).
package eodhd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/date"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com/api"

// Client is a rentability.PriceSource backed by the EODHD end of day API.
type Client struct {
	APIKey string
	// Suffix is appended to ledger symbols to build EODHD tickers, like ".SA"
	// for the Brazilian exchange.
	Suffix string
	// HTTPClient defaults to a client caching responses on disk for the day.
	HTTPClient *http.Client
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
}

// Ticker returns the EODHD ticker of a ledger symbol.
func (c *Client) Ticker(symbol string) string { return symbol + c.Suffix }

func (c *Client) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return newDailyCachingClient()
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

// DailyPrices implements rentability.PriceSource. Each trading day yields a
// sample of its opening price stamped at rentability.MarketClose.
func (c *Client) DailyPrices(ctx context.Context, symbol string, from, to date.Date) (rentability.Series, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("missing EODHD API key")
	}
	open, err := fetchPrices(ctx, c.client(), c.baseURL(), c.APIKey, c.Ticker(symbol), from, to)
	if err != nil {
		return nil, err
	}
	return rentability.Daily(open), nil
}
