package rentability

import (
	"context"
	"fmt"

	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
)

// Engine computes the returns of a portfolio over a window.
type Engine struct {
	Source PriceSource
	// Today returns the current day, date.Today when nil.
	Today func() date.Date
}

// Request describes the window to compute.
type Request struct {
	Window Window
	// Owned ignores Window and uses the whole history since the earliest order.
	Owned bool
}

// Point is the valuation of the portfolio on a trading day.
type Point struct {
	Date  date.Date
	Worth decimal.Decimal // market value of the positions held
	Net   decimal.Decimal // net capital contributed through orders
	Ratio decimal.Decimal // Worth/Net, 1 when Net is zero
	// Delta is Worth-Net. It is only defined (HasDelta) when Net is not zero.
	Delta    decimal.Decimal
	HasDelta bool
}

// Percent returns the return of the point as a percentage, 0 for a ratio of 1.
func (pt Point) Percent() Percent {
	return Percent(pt.Ratio.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// Dated is a value attached to a day.
type Dated struct {
	Date  date.Date
	Value decimal.Decimal
}

// Returns is the result of a computation.
type Returns struct {
	Resolution Resolution
	Points     []Point
}

// Dates returns the valuation days.
func (r *Returns) Dates() []date.Date {
	out := make([]date.Date, len(r.Points))
	for i, pt := range r.Points {
		out[i] = pt.Date
	}
	return out
}

// Ratios returns the return ratio of each valuation day, aligned with Dates.
func (r *Returns) Ratios() []decimal.Decimal {
	out := make([]decimal.Decimal, len(r.Points))
	for i, pt := range r.Points {
		out[i] = pt.Ratio
	}
	return out
}

// Deltas returns the monetary profit or loss of the valuation days where some
// capital was contributed. Days without net contribution are skipped, so the
// result is not aligned with Dates; each value carries its own day.
func (r *Returns) Deltas() []Dated {
	out := make([]Dated, 0, len(r.Points))
	for _, pt := range r.Points {
		if pt.HasDelta {
			out = append(out, Dated{Date: pt.Date, Value: pt.Delta})
		}
	}
	return out
}

// Last returns the most recent point, and false if there is none.
func (r *Returns) Last() (Point, bool) {
	if len(r.Points) == 0 {
		return Point{}, false
	}
	return r.Points[len(r.Points)-1], true
}

func (e *Engine) today() date.Date {
	if e.Today != nil {
		return e.Today()
	}
	return date.Today()
}

// Compute values the portfolio on every trading day of the requested window.
//
// The trading days are the ones priced for the symbol of the earliest order.
// All the symbols are expected to share that calendar.
func (e *Engine) Compute(ctx context.Context, p Portfolio, req Request) (*Returns, error) {
	res, err := Resolve(p, req.Window, req.Owned, e.today())
	if err != nil {
		return nil, err
	}

	prices := make(map[string]*date.History[decimal.Decimal], len(p))
	for _, symbol := range p.Symbols() {
		series, err := e.Source.DailyPrices(ctx, symbol, res.Range.From, res.Range.To)
		if err != nil {
			return nil, fmt.Errorf("could not get %s prices: %w", symbol, err)
		}
		prices[symbol] = series.AtClose()
	}

	calendar := prices[res.Oldest]
	if calendar.Len() == 0 {
		return nil, &NoPriceDataError{Symbol: res.Oldest, Range: res.Range}
	}

	points, err := valuate(p, prices, calendar.Days())
	if err != nil {
		return nil, err
	}
	return &Returns{Resolution: res, Points: points}, nil
}

// valuate folds the valuation days in chronological order.
//
// The net contribution starts equal to the worth of the first day, so the
// first day shows no profit. Then the cash flow of the orders executed between
// two valuation days is added on the later one: that is when their quantities
// enter the holdings.
func valuate(p Portfolio, prices map[string]*date.History[decimal.Decimal], days []date.Date) ([]Point, error) {
	points := make([]Point, 0, len(days))
	var net decimal.Decimal
	for i, on := range days {
		worth, err := worthOn(p, prices, on)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			net = worth
		} else {
			for d := days[i-1]; d.Before(on); d = d.Add(1) {
				net = net.Add(p.CashFlow(d))
			}
		}

		pt := Point{Date: on, Worth: worth, Net: net, Ratio: decimal.NewFromInt(1)}
		if !net.IsZero() {
			pt.Ratio = worth.Div(net)
			pt.Delta = worth.Sub(net)
			pt.HasDelta = true
		}
		points = append(points, pt)
	}
	return points, nil
}

// worthOn returns the market value of the positions held at the close of day on.
func worthOn(p Portfolio, prices map[string]*date.History[decimal.Decimal], on date.Date) (decimal.Decimal, error) {
	instant := on.At(MarketClose)
	worth := decimal.Zero
	for _, symbol := range p.Symbols() {
		qty, err := p.HeldQuantity(symbol, instant)
		if err != nil {
			return decimal.Zero, err
		}
		if qty == 0 {
			continue
		}
		price, ok := prices[symbol].Get(on)
		if !ok {
			return decimal.Zero, &MissingPriceError{Symbol: symbol, Date: on}
		}
		worth = worth.Add(price.Mul(decimal.NewFromInt(qty)))
	}
	return worth, nil
}
