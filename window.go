package rentability

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/rentability/date"
)

// Window is a requested duration, counted backward from today.
//
// Years are 365 days and months 30 days; it is not calendar accurate.
type Window struct {
	Years, Months, Days int
}

// Span returns the window length in days.
func (w Window) Span() int { return w.Years*365 + w.Months*30 + w.Days }

// IsZero reports whether no duration was requested at all.
func (w Window) IsZero() bool { return w == Window{} }

func (w Window) String() string {
	return fmt.Sprintf("%d year(s), %d month(s), %d day(s)", w.Years, w.Months, w.Days)
}

// ParseWindow parses a compact window like "1y", "6m", "1y2m15d" or "90d".
func ParseWindow(s string) (Window, error) {
	var w Window
	rest := strings.ToLower(strings.TrimSpace(s))
	if rest == "" {
		return w, fmt.Errorf("empty window")
	}
	for rest != "" {
		i := strings.IndexAny(rest, "ymd")
		if i <= 0 {
			return Window{}, fmt.Errorf("invalid window %q want a form like 1y2m3d", s)
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil || n < 0 {
			return Window{}, fmt.Errorf("invalid window %q: %q is not a count", s, rest[:i])
		}
		switch rest[i] {
		case 'y':
			w.Years += n
		case 'm':
			w.Months += n
		case 'd':
			w.Days += n
		}
		rest = rest[i+1:]
	}
	return w, nil
}

// Resolution is the window actually used for a computation.
type Resolution struct {
	Requested Window
	Resolved  Window
	// FullHistory is set when the window was ignored in favor of the whole
	// history since the earliest order.
	FullHistory bool
	// Clamped is set when the requested window reached before the earliest
	// order and was shortened. Notice then holds a message for the user.
	Clamped bool
	Notice  string

	Range  date.Range // valuation days requested from the price sources
	Oldest string     // symbol of the earliest order, its prices give the valuation calendar
}

// Resolve turns a requested window into the range of days to value.
//
// Nobody has returns before owning any stock: a window longer than the
// history since the earliest order is shortened to that history. When owned
// is set, the window is ignored and the full history is used.
func Resolve(p Portfolio, w Window, owned bool, today date.Date) (Resolution, error) {
	oldest, symbol, err := p.EarliestOrder()
	if err != nil {
		return Resolution{}, err
	}
	available := today.Sub(oldest)

	res := Resolution{
		Requested: w,
		Resolved:  w,
		Oldest:    symbol,
	}
	if w.Span() > available {
		res.Resolved = Window{Days: available}
		res.Clamped = true
		res.Notice = fmt.Sprintf("no stock was held %d days ago, showing returns since the first order on %v", w.Span(), oldest)
	}
	if owned {
		res.Resolved = Window{Days: available}
		res.FullHistory = true
		res.Range = date.NewRange(oldest, today)
		return res, nil
	}
	res.Range = date.NewRange(today.Add(-res.Resolved.Span()), today)
	return res, nil
}
