package rentability

import (
	"context"
	"slices"
	"time"

	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
)

// Sample is a price observation.
type Sample struct {
	At   time.Time
	Open decimal.Decimal
}

// Series is a chronological list of price samples for one symbol.
type Series []Sample

// PriceSource provides daily prices.
//
// DailyPrices returns the samples of symbol for every trading day in
// [from, to]. Daily samples are stamped at MarketClose.
type PriceSource interface {
	DailyPrices(ctx context.Context, symbol string, from, to date.Date) (Series, error)
}

// AtClose keeps one sample per day, the one taken at MarketClose.
func (s Series) AtClose() *date.History[decimal.Decimal] {
	h := new(date.History[decimal.Decimal])
	for _, sample := range s {
		if sample.At.Hour() != MarketClose {
			continue
		}
		h.Append(date.Of(sample.At), sample.Open)
	}
	return h
}

// Daily builds a series of daily samples from day/price pairs.
func Daily(prices map[date.Date]decimal.Decimal) Series {
	s := make(Series, 0, len(prices))
	for on, p := range prices {
		s = append(s, Sample{At: on.At(MarketClose), Open: p})
	}
	slices.SortFunc(s, func(a, b Sample) int { return a.At.Compare(b.At) })
	return s
}

// StaticSource is an in-memory PriceSource.
type StaticSource map[string]Series

// DailyPrices implements PriceSource.
func (s StaticSource) DailyPrices(_ context.Context, symbol string, from, to date.Date) (Series, error) {
	r := date.NewRange(from, to)
	var out Series
	for _, sample := range s[symbol] {
		if r.Contains(date.Of(sample.At)) {
			out = append(out, sample)
		}
	}
	return out, nil
}
