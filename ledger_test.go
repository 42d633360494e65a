package rentability

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/rentability/date"
)

func samplePortfolio() Portfolio {
	p := NewPortfolio()
	p.Add("X", day("01/03/2020"), Buy(10, dec("100")))
	p.Add("X", day("10/03/2020"), Buy(5, dec("110")))
	p.Add("X", day("10/03/2020"), Sell(3, dec("111")))
	p.Add("Y", day("15/01/2021"), Buy(7, dec("20")))
	return p
}

func TestHeldQuantity(t *testing.T) {
	p := samplePortfolio()
	testCases := []struct {
		name    string
		symbol  string
		instant time.Time
		want    int64
	}{
		{"before first order", "X", day("28/02/2020").At(MarketClose), 0},
		{"at the first order close", "X", day("01/03/2020").At(MarketClose), 0},
		{"just after the first order close", "X", day("01/03/2020").At(MarketClose).Add(time.Second), 10},
		{"next day close", "X", day("02/03/2020").At(MarketClose), 10},
		{"same day buy and sell", "X", day("11/03/2020").At(MarketClose), 12},
		{"long after", "X", day("01/01/2030").At(MarketClose), 12},
		{"other symbol", "Y", day("16/01/2021").At(MarketClose), 7},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.HeldQuantity(tc.symbol, tc.instant)
			if err != nil {
				t.Fatalf("HeldQuantity(%q, %v) unexpected error: %v", tc.symbol, tc.instant, err)
			}
			if got != tc.want {
				t.Errorf("HeldQuantity(%q, %v) = %d want %d", tc.symbol, tc.instant, got, tc.want)
			}
		})
	}
}

// TestHeldQuantityPiecewiseConstant checks that the quantity only changes right after an order day.
func TestHeldQuantityPiecewiseConstant(t *testing.T) {
	p := samplePortfolio()
	orderDays := map[date.Date]bool{day("01/03/2020"): true, day("10/03/2020"): true}
	prev, _ := p.HeldQuantity("X", day("25/02/2020").At(MarketClose))
	for d := day("26/02/2020"); d.Before(day("31/03/2020")); d = d.Add(1) {
		got, _ := p.HeldQuantity("X", d.At(MarketClose))
		if got != prev && !orderDays[d.Add(-1)] {
			t.Errorf("HeldQuantity(X) changed from %d to %d on %v without an order on the previous day", prev, got, d)
		}
		prev = got
	}
}

func TestHeldQuantityNegative(t *testing.T) {
	p := NewPortfolio()
	p.Add("X", day("01/03/2020"), Sell(4, dec("10")))
	got, err := p.HeldQuantity("X", day("02/03/2020").At(MarketClose))
	if err != nil {
		t.Fatalf("HeldQuantity() unexpected error: %v", err)
	}
	if got != -4 {
		t.Errorf("HeldQuantity() = %d want -4", got)
	}
}

func TestHeldQuantityUnknownSymbol(t *testing.T) {
	_, err := samplePortfolio().HeldQuantity("Z", time.Now())
	var unknown *UnknownSymbolError
	if !errors.As(err, &unknown) {
		t.Fatalf("HeldQuantity(Z) error = %v want UnknownSymbolError", err)
	}
	if unknown.Symbol != "Z" {
		t.Errorf("UnknownSymbolError.Symbol = %q want %q", unknown.Symbol, "Z")
	}
}

func TestOrdersOn(t *testing.T) {
	p := samplePortfolio()
	got := p.OrdersOn("X", day("10/03/2020"))
	if len(got) != 2 || !got[0].Buy || got[1].Buy {
		t.Errorf("OrdersOn(X, 10/03/2020) = %v want a buy then a sell", got)
	}
	if got := p.OrdersOn("X", day("11/03/2020")); got != nil {
		t.Errorf("OrdersOn(X, 11/03/2020) = %v want nil", got)
	}
	if got := p.OrdersOn("Z", day("10/03/2020")); got != nil {
		t.Errorf("OrdersOn(Z, 10/03/2020) = %v want nil", got)
	}
}

func TestCashFlow(t *testing.T) {
	p := samplePortfolio()
	// 5*110 - 3*111
	if got, want := p.CashFlow(day("10/03/2020")), dec("217"); !got.Equal(want) {
		t.Errorf("CashFlow(10/03/2020) = %v want %v", got, want)
	}
	if got := p.CashFlow(day("11/03/2020")); !got.IsZero() {
		t.Errorf("CashFlow(11/03/2020) = %v want 0", got)
	}
}

func TestEarliestOrder(t *testing.T) {
	on, symbol, err := samplePortfolio().EarliestOrder()
	if err != nil {
		t.Fatalf("EarliestOrder() unexpected error: %v", err)
	}
	if on != day("01/03/2020") || symbol != "X" {
		t.Errorf("EarliestOrder() = %v, %q want %v, %q", on, symbol, day("01/03/2020"), "X")
	}
}

func TestEarliestOrderTie(t *testing.T) {
	p := NewPortfolio()
	p.Add("B", day("01/03/2020"), Buy(1, dec("1")))
	p.Add("A", day("01/03/2020"), Buy(1, dec("1")))
	for range 10 {
		if _, symbol, _ := p.EarliestOrder(); symbol != "A" {
			t.Fatalf("EarliestOrder() symbol = %q want %q", symbol, "A")
		}
	}
}

func TestEarliestOrderEmpty(t *testing.T) {
	p := NewPortfolio()
	p["X"] = NewHolding()
	if _, _, err := p.EarliestOrder(); !errors.Is(err, ErrEmptyPortfolio) {
		t.Errorf("EarliestOrder() error = %v want %v", err, ErrEmptyPortfolio)
	}
}
