package pricestore

import (
	"context"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/date"
	"github.com/rs/zerolog/log"
)

// Cached is a read-through rentability.PriceSource: ranges already fetched
// are served from the Store, the others are fetched from Source and stored.
type Cached struct {
	Store  *Store
	Source rentability.PriceSource
	// Today returns the current day, date.Today when nil.
	Today func() date.Date
}

func (c *Cached) today() date.Date {
	if c.Today != nil {
		return c.Today()
	}
	return date.Today()
}

// DailyPrices implements rentability.PriceSource.
func (c *Cached) DailyPrices(ctx context.Context, symbol string, from, to date.Date) (rentability.Series, error) {
	cov, ok, err := c.Store.Coverage(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if ok && cov.Contains(from) && cov.Contains(to) {
		log.Debug().Str("symbol", symbol).Stringer("range", date.NewRange(from, to)).Msg("prices from cache")
		return c.Store.Range(ctx, symbol, from, to)
	}

	// Fetch the whole span so that the coverage stays a single range.
	want := date.NewRange(from, to)
	if ok {
		if cov.From.Before(want.From) {
			want.From = cov.From
		}
		if cov.To.After(want.To) {
			want.To = cov.To
		}
	}
	series, err := c.Source.DailyPrices(ctx, symbol, want.From, want.To)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("symbol", symbol).Stringer("range", want).Int("days", want.Days()).Int("samples", len(series)).Msg("prices fetched")
	if err := c.Store.Put(ctx, symbol, series); err != nil {
		return nil, err
	}
	if covered, ok := fetched(want, series, c.today()); ok {
		if err := c.Store.SetCoverage(ctx, symbol, covered); err != nil {
			return nil, err
		}
	}
	return c.Store.Range(ctx, symbol, from, to)
}

// fetched returns the part of want that is final once series was fetched.
// Today's price may not be published yet, so today and later days count only
// when a sample was returned for them.
func fetched(want date.Range, series rentability.Series, today date.Date) (date.Range, bool) {
	if want.To.Before(today) {
		return want, true
	}
	end := today.Add(-1)
	if n := len(series); n > 0 {
		if last := date.Of(series[n-1].At); !last.Before(today) {
			end = last
		}
	}
	if end.Before(want.From) {
		return date.Range{}, false
	}
	want.To = end
	return want, true
}
