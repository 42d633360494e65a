package rentability

import (
	"errors"
	"fmt"

	"github.com/etnz/rentability/date"
)

// ErrEmptyPortfolio is returned when a portfolio has no order at all, so no
// history can be resolved.
var ErrEmptyPortfolio = errors.New("portfolio has no order")

// UnknownSymbolError reports a symbol that is not part of the portfolio.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q", e.Symbol)
}

// NoPriceDataError reports that no price sample was found for the symbol
// used as the valuation calendar.
type NoPriceDataError struct {
	Symbol string
	Range  date.Range
}

func (e *NoPriceDataError) Error() string {
	return fmt.Sprintf("no price data for %s in %v", e.Symbol, e.Range)
}

// MissingPriceError reports a held symbol without a price on a valuation day.
type MissingPriceError struct {
	Symbol string
	Date   date.Date
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("missing %s price on %v", e.Symbol, e.Date)
}
