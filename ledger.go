package rentability

import (
	"time"

	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
)

// HeldQuantity returns the net quantity of symbol held at instant.
//
// An order counts only if its execution instant (its day at MarketClose) is
// strictly before instant. The result may be negative if the ledger sells
// more than it bought; this is not validated.
func (p Portfolio) HeldQuantity(symbol string, instant time.Time) (int64, error) {
	h, ok := p[symbol]
	if !ok {
		return 0, &UnknownSymbolError{Symbol: symbol}
	}
	var qty int64
	for on, orders := range h.Orders {
		if !on.At(MarketClose).Before(instant) {
			continue
		}
		for _, o := range orders {
			qty += o.Signed()
		}
	}
	return qty, nil
}

// OrdersOn returns the orders of symbol executed on a given day, nil if none.
func (p Portfolio) OrdersOn(symbol string, on date.Date) []Order {
	h, ok := p[symbol]
	if !ok {
		return nil
	}
	return h.Orders[on]
}

// CashFlow returns the net money contributed by all the orders executed on a
// given day, across symbols. Buys add, sells subtract.
func (p Portfolio) CashFlow(on date.Date) decimal.Decimal {
	flow := decimal.Zero
	for _, h := range p {
		for _, o := range h.Orders[on] {
			flow = flow.Add(o.CashFlow())
		}
	}
	return flow
}

// EarliestOrder returns the day of the oldest order in the portfolio and the
// symbol it belongs to.
//
// Ties are broken by symbol lexical order. It returns ErrEmptyPortfolio if
// there is no order at all.
func (p Portfolio) EarliestOrder() (on date.Date, symbol string, err error) {
	found := false
	for _, s := range p.Symbols() {
		for d := range p[s].Orders {
			if !found || d.Before(on) {
				on, symbol, found = d, s, true
			}
		}
	}
	if !found {
		return date.Date{}, "", ErrEmptyPortfolio
	}
	return on, symbol, nil
}
