package cmd

import (
	"errors"
	"flag"

	"github.com/etnz/rentability"
)

// windowFlags are the flags selecting the valuation window.
type windowFlags struct {
	years, months, days int
	window              string
	owned, first        bool
}

func (w *windowFlags) SetFlags(f *flag.FlagSet) {
	f.IntVar(&w.years, "y", 0, "Number of years in the window")
	f.IntVar(&w.months, "m", 0, "Number of months in the window (30 days each)")
	f.IntVar(&w.days, "d", 0, "Number of days in the window")
	f.StringVar(&w.window, "w", "", "Compact window like 1y6m, instead of -y -m -d")
	f.BoolVar(&w.owned, "owned", false, "Use the whole history since the first order")
	f.BoolVar(&w.first, "first", false, "Include the first, partial, month in the monthly profits")
}

// request returns the engine request. Without any window, the whole
// history is used.
func (w *windowFlags) request() (rentability.Request, error) {
	if w.years < 0 || w.months < 0 || w.days < 0 {
		return rentability.Request{}, errors.New("window counts must not be negative")
	}
	win := rentability.Window{Years: w.years, Months: w.months, Days: w.days}
	if w.window != "" {
		if !win.IsZero() {
			return rentability.Request{}, errors.New("-w cannot be combined with -y, -m or -d")
		}
		var err error
		if win, err = rentability.ParseWindow(w.window); err != nil {
			return rentability.Request{}, err
		}
	}
	return rentability.Request{Window: win, Owned: w.owned || win.IsZero()}, nil
}

// includeFirst reports whether the first partial month is part of the monthly profits.
// The whole history always includes it.
func (w *windowFlags) includeFirst(req rentability.Request) bool {
	return w.first || req.Owned
}
