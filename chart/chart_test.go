package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
)

var pngMagic = []byte("\x89PNG")

func TestTitle(t *testing.T) {
	testCases := []struct {
		window rentability.Window
		points int
		want   string
	}{
		{rentability.Window{Years: 1, Months: 2, Days: 3}, 400, "Portfolio return over\n1 year(s), 2 month(s), 3 day(s)"},
		{rentability.Window{}, 42, "Portfolio return over\n0 year(s), 0 month(s), 42 day(s)"},
	}
	for _, tc := range testCases {
		if got := Title(tc.window, tc.points); got != tc.want {
			t.Errorf("Title(%v, %d) = %q want %q", tc.window, tc.points, got, tc.want)
		}
	}
}

func TestLine(t *testing.T) {
	d := date.New(2025, time.January, 6)
	testCases := []struct {
		name   string
		ratios []string
	}{
		{"varying", []string{"1", "1.05", "0.98"}},
		{"flat", []string{"1", "1", "1"}},
		{"single day", []string{"1"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ratios := make([]decimal.Decimal, len(tc.ratios))
			dates := make([]date.Date, len(tc.ratios))
			for i, r := range tc.ratios {
				ratios[i] = decimal.RequireFromString(r)
				dates[i] = d.Add(i)
			}
			var buf bytes.Buffer
			if err := Line(&buf, ratios, dates, rentability.Window{Days: len(dates)}); err != nil {
				t.Fatalf("Line() unexpected error: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
				t.Errorf("Line() did not write a PNG")
			}
		})
	}

	if err := Line(new(bytes.Buffer), nil, nil, rentability.Window{}); !errors.Is(err, ErrNoData) {
		t.Errorf("Line() without points error = %v want %v", err, ErrNoData)
	}
}

func TestBars(t *testing.T) {
	buckets := []rentability.Bucket{
		{Label: "Dez", Value: decimal.RequireFromString("-120.5")},
		{Label: "Jan/25", Value: decimal.RequireFromString("300")},
	}
	var buf bytes.Buffer
	if err := Bars(&buf, buckets, "BRL"); err != nil {
		t.Fatalf("Bars() unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Errorf("Bars() did not write a PNG")
	}
	if err := Bars(new(bytes.Buffer), nil, "BRL"); !errors.Is(err, ErrNoData) {
		t.Errorf("Bars() without buckets error = %v want %v", err, ErrNoData)
	}
}

func TestSaveFigures(t *testing.T) {
	d := date.New(2025, time.January, 6)
	r := &rentability.Returns{Points: []rentability.Point{
		{Date: d, Ratio: decimal.NewFromInt(1)},
		{Date: d.Add(1), Ratio: decimal.RequireFromString("1.1")},
	}}
	buckets := []rentability.Bucket{{Label: "Jan", Value: decimal.NewFromInt(10)}}
	dir := filepath.Join(t.TempDir(), "Figures")

	// twice: the second run overwrites
	for i := 0; i < 2; i++ {
		if err := SaveFigures(dir, r, buckets, "BRL"); err != nil {
			t.Fatalf("SaveFigures() unexpected error: %v", err)
		}
	}
	for _, name := range []string{LineFile, BarsFile} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("could not read %s: %v", name, err)
		}
		if !bytes.HasPrefix(content, pngMagic) {
			t.Errorf("%s is not a PNG", name)
		}
	}
}
