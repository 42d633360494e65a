package rentability

import (
	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
)

// day parses a day-first date, panics on error.
func day(s string) date.Date {
	d, err := date.ParseDayFirst(s)
	if err != nil {
		panic(err)
	}
	return d
}

// dec parses a decimal, panics on error.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// flat returns daily samples at price for every day in [from, to].
func flat(from, to date.Date, price string) map[date.Date]decimal.Decimal {
	prices := make(map[date.Date]decimal.Decimal)
	for d := from; !d.After(to); d = d.Add(1) {
		prices[d] = dec(price)
	}
	return prices
}
