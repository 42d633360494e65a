package rentability

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
)

// MonthLabels names the months of the year. Index 0 is the fallback used for
// an invalid month.
type MonthLabels [13]string

// PortugueseMonths are the Brazilian Portuguese month abbreviations.
var PortugueseMonths = MonthLabels{"???", "Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// EnglishMonths are the English month abbreviations.
var EnglishMonths = MonthLabels{"???", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// LabelsFor returns the month labels of a locale ("pt", "en"). Unknown
// locales get PortugueseMonths.
func LabelsFor(locale string) MonthLabels {
	switch strings.ToLower(locale) {
	case "en", "en_us", "en-us", "en_gb", "en-gb":
		return EnglishMonths
	default:
		return PortugueseMonths
	}
}

// Month returns the label of m.
func (l MonthLabels) Month(m time.Month) string {
	if m < time.January || m > time.December {
		return l[0]
	}
	return l[m]
}

// MonthYear returns the label of the month of d followed by its two-digit year, like "Jan/21".
func (l MonthLabels) MonthYear(d date.Date) string {
	return fmt.Sprintf("%s/%02d", l.Month(d.Month()), d.Year()%100)
}

// Bucket is the profit or loss of a calendar month.
type Bucket struct {
	Label string
	Value decimal.Decimal
}

// MonthlyDeltas collapses a daily profit and loss series into one bucket per month.
//
// The series is scanned from the most recent day backward. A month is closed
// when a day of another month is met: its bucket is the difference between the
// running anchor and the value of its oldest day, which then becomes the
// anchor. Closing a month across a year boundary labels it with its year too.
// The oldest month is never closed this way; includeFirstPartialMonth adds it,
// unless a bucket already has its label.
//
// Buckets are returned in chronological order.
func MonthlyDeltas(deltas []Dated, includeFirstPartialMonth bool, labels MonthLabels) []Bucket {
	if len(deltas) == 0 {
		return nil
	}
	recent := slices.Clone(deltas)
	slices.Reverse(recent)

	var buckets []Bucket
	anchor := recent[0].Value
	month, year := recent[0].Date.Month(), recent[0].Date.Year()
	for i, d := range recent {
		switch {
		case d.Date.Year() != year:
			prev := recent[i-1]
			buckets = append(buckets, Bucket{Label: labels.MonthYear(prev.Date), Value: anchor.Sub(prev.Value)})
			month, year = d.Date.Month(), d.Date.Year()
			anchor = prev.Value
		case d.Date.Month() != month:
			prev := recent[i-1]
			buckets = append(buckets, Bucket{Label: labels.Month(prev.Date.Month()), Value: anchor.Sub(prev.Value)})
			month = d.Date.Month()
			anchor = prev.Value
		}
	}

	if includeFirstPartialMonth {
		oldest := recent[len(recent)-1]
		label := labels.Month(oldest.Date.Month())
		if !slices.ContainsFunc(buckets, func(b Bucket) bool { return b.Label == label }) {
			buckets = append(buckets, Bucket{Label: label, Value: anchor.Sub(oldest.Value)})
		}
	}

	slices.Reverse(buckets)
	return buckets
}
