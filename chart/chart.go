// Package chart draws the return figures as PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Figure file names, written in the figures directory.
const (
	LineFile = "rentability.png"
	BarsFile = "bars.png"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("nothing to draw")

// Colour scheme.
var (
	lineColor   = drawing.ColorFromHex("22d1ee")
	axisColor   = drawing.ColorFromHex("278ea5")
	zeroColor   = drawing.ColorFromHex("1f4287")
	background  = drawing.ColorFromHex("071e3d")
	canvasColor = drawing.ColorFromHex("0b3060")
	textColor   = drawing.ColorWhite
)

const width, height = 800, 400

func axisStyle() chart.Style {
	return chart.Style{StrokeColor: axisColor, FontColor: textColor}
}

// Title returns the title of the line chart. The requested window is shown;
// when none was requested, the number of plotted days replaces the days.
func Title(window rentability.Window, points int) string {
	days := window.Days
	if window.IsZero() {
		days = points
	}
	return fmt.Sprintf("Portfolio return over\n%d year(s), %d month(s), %d day(s)", window.Years, window.Months, days)
}

// Line draws the return of each day, as a percentage, with a zero line.
func Line(w io.Writer, ratios []decimal.Decimal, dates []date.Date, window rentability.Window) error {
	if len(ratios) == 0 || len(ratios) != len(dates) {
		return fmt.Errorf("%w: %d ratios for %d dates", ErrNoData, len(ratios), len(dates))
	}
	xs := make([]time.Time, len(dates))
	ys := make([]float64, len(ratios))
	for i := range ratios {
		xs[i] = dates[i].At(rentability.MarketClose)
		ys[i] = ratios[i].Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}
	first, last := xs[0], xs[len(xs)-1]

	graph := chart.Chart{
		Title:      Title(window, len(dates)),
		TitleStyle: chart.Style{FontColor: textColor, FontSize: 14},
		Width:      width,
		Height:     height,
		Background: chart.Style{FillColor: background, Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		Canvas:     chart.Style{FillColor: canvasColor},
		XAxis: chart.XAxis{
			Style:          axisStyle(),
			ValueFormatter: chart.TimeValueFormatterWithFormat(date.DayFirstShortFormat),
			Range:          xRange(first, last),
		},
		YAxis: chart.YAxis{
			Name:           "Return",
			NameStyle:      chart.Style{FontColor: textColor},
			Style:          axisStyle(),
			ValueFormatter: func(v any) string { return fmt.Sprintf("%.1f%%", v) },
			Range:          yRange(ys),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "zero",
				Style:   chart.Style{StrokeColor: zeroColor, StrokeWidth: 1},
				XValues: []time.Time{first, last},
				YValues: []float64{0, 0},
			},
			chart.TimeSeries{
				Name:    "return",
				Style:   chart.Style{StrokeColor: lineColor, StrokeWidth: 2},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

// Bars draws one bar per month with the profit or loss in currency.
func Bars(w io.Writer, buckets []rentability.Bucket, currency string) error {
	if len(buckets) == 0 {
		return fmt.Errorf("%w: no month to plot", ErrNoData)
	}
	bars := make([]chart.Value, len(buckets))
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = b.Value.InexactFloat64()
		bars[i] = chart.Value{
			Label: b.Label,
			Value: values[i],
			Style: chart.Style{FillColor: lineColor, StrokeColor: lineColor},
		}
	}

	graph := chart.BarChart{
		Title:        fmt.Sprintf("Profit in %s", currency),
		TitleStyle:   chart.Style{FontColor: textColor, FontSize: 14},
		Width:        width,
		Height:       height,
		Background:   chart.Style{FillColor: background, Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		Canvas:       chart.Style{FillColor: canvasColor},
		XAxis:        axisStyle(),
		BarWidth:     barWidth(len(bars)),
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Style: axisStyle(),
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return rentability.M(decimal.NewFromFloat(f), currency).String()
				}
				return ""
			},
			Range: yRange(append(values, 0)),
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

// SaveFigures writes the line and bar charts into dir, created if needed.
// Existing figures are overwritten. Bars are skipped when there is no month.
func SaveFigures(dir string, r *rentability.Returns, buckets []rentability.Bucket, currency string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create figures directory: %w", err)
	}
	if err := save(filepath.Join(dir, LineFile), func(w io.Writer) error {
		return Line(w, r.Ratios(), r.Dates(), r.Resolution.Requested)
	}); err != nil {
		return err
	}
	if len(buckets) == 0 {
		return nil
	}
	return save(filepath.Join(dir, BarsFile), func(w io.Writer) error {
		return Bars(w, buckets, currency)
	})
}

func save(path string, draw func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := draw(f); err != nil {
		return fmt.Errorf("could not draw %s: %w", filepath.Base(path), err)
	}
	return nil
}

// xRange widens a single day so that the axis is never empty.
func xRange(first, last time.Time) chart.Range {
	if first.Equal(last) {
		first, last = first.AddDate(0, 0, -1), last.AddDate(0, 0, 1)
	}
	return &chart.ContinuousRange{Min: chart.TimeToFloat64(first), Max: chart.TimeToFloat64(last)}
}

// yRange spans values with some margin. A flat series gets a unit range.
func yRange(values []float64) chart.Range {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	if lo == hi {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	margin := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - margin, Max: hi + margin}
}

func barWidth(n int) int {
	if w := (width - 100) / (2 * n); w < 40 {
		return max(w, 4)
	}
	return 40
}
