package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
)

// fetchPrices returns the daily open prices of an EODHD ticker
// ("SYMBOL.EXCHANGECODE") between from and to, both included.
func fetchPrices(ctx context.Context, client *http.Client, base, apiKey, ticker string, from, to date.Date) (map[date.Date]decimal.Decimal, error) {
	// https://eodhd.com/api/eod/NVD.F?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", base, url.PathEscape(ticker), url.QueryEscape(apiKey), from, to)
	type Info struct {
		Date  date.Date       `json:"date"`
		Open  decimal.Decimal `json:"open"`
		Close decimal.Decimal `json:"close"`
	}

	content := make([]Info, 0)
	if err := jwget(ctx, client, addr, &content); err != nil {
		return nil, fmt.Errorf("could not fetch %s prices: %w", ticker, err)
	}

	open := make(map[date.Date]decimal.Decimal, len(content))
	for _, info := range content {
		open[info.Date] = info.Open
	}
	return open, nil
}

// SearchResult is an item of the EODHD search API response.
type SearchResult struct {
	Code              string    `json:"Code"`
	Exchange          string    `json:"Exchange"`
	Name              string    `json:"Name"`
	Type              string    `json:"Type"`
	Country           string    `json:"Country"`
	Currency          string    `json:"Currency"`
	ISIN              string    `json:"ISIN"`
	PreviousClose     float64   `json:"previousClose"`
	PreviousCloseDate date.Date `json:"previousCloseDate"`
}

// Ticker returns the EODHD ticker of the result.
func (r SearchResult) Ticker() string { return r.Code + "." + r.Exchange }

// fetchSearch looks securities up by name, code or ISIN.
func fetchSearch(ctx context.Context, client *http.Client, base, apiKey, term string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/search/%s?api_token=%s&fmt=json", base, url.PathEscape(term), url.QueryEscape(apiKey))

	var results []SearchResult
	if err := jwget(ctx, client, addr, &results); err != nil {
		return nil, err
	}
	return results, nil
}
