package rentability

import (
	"maps"
	"slices"

	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
)

// MarketClose is the hour of the daily market close. Orders are deemed
// executed at that hour, and the portfolio is valued at that hour.
const MarketClose = 18

// Order is a single buy or sell execution.
//
// Quantity and Price are always positive, the direction is carried by Buy.
type Order struct {
	Quantity int64
	Price    decimal.Decimal
	Owner    string // passed through, never interpreted
	Buy      bool
}

// Buy returns a buy order.
func Buy(quantity int64, price decimal.Decimal) Order {
	return Order{Quantity: quantity, Price: price, Buy: true}
}

// Sell returns a sell order.
func Sell(quantity int64, price decimal.Decimal) Order {
	return Order{Quantity: quantity, Price: price}
}

// Signed returns the quantity change of this order: positive for a buy,
// negative for a sell.
func (o Order) Signed() int64 {
	if o.Buy {
		return o.Quantity
	}
	return -o.Quantity
}

// CashFlow returns the money put into the portfolio by this order. It is
// negative for a sell.
func (o Order) CashFlow() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(o.Signed()))
}

// Holding is the order ledger of a single symbol.
//
// Orders are indexed by execution day. Within a day, the slice order is the
// execution order.
type Holding struct {
	Orders map[date.Date][]Order
}

// NewHolding creates an empty holding.
func NewHolding() *Holding { return &Holding{Orders: make(map[date.Date][]Order)} }

// Add appends an order executed on a given day.
func (h *Holding) Add(on date.Date, o Order) {
	if h.Orders == nil {
		h.Orders = make(map[date.Date][]Order)
	}
	h.Orders[on] = append(h.Orders[on], o)
}

// Dates returns the days with at least one order, in chronological order.
func (h *Holding) Dates() []date.Date {
	return slices.SortedFunc(maps.Keys(h.Orders), compareDates)
}

// Portfolio maps a symbol to its holding.
type Portfolio map[string]*Holding

// NewPortfolio creates an empty portfolio.
func NewPortfolio() Portfolio { return make(Portfolio) }

// Add records an order for symbol executed on a given day.
func (p Portfolio) Add(symbol string, on date.Date, o Order) {
	h, ok := p[symbol]
	if !ok {
		h = NewHolding()
		p[symbol] = h
	}
	h.Add(on, o)
}

// Symbols returns the portfolio symbols in lexical order.
func (p Portfolio) Symbols() []string { return slices.Sorted(maps.Keys(p)) }

func compareDates(a, b date.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
