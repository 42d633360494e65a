package rentability

import (
	"testing"
	"time"

	"github.com/etnz/rentability/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// series builds a dated series from day-first dates and values.
func series(pairs ...string) []Dated {
	out := make([]Dated, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Dated{Date: day(pairs[i]), Value: dec(pairs[i+1])})
	}
	return out
}

func TestMonthlyDeltas(t *testing.T) {
	// Jan 5 to Feb 3, the value grows by one every day.
	var janFeb []Dated
	for d, v := date.New(2025, time.January, 5), 0; !d.After(date.New(2025, time.February, 3)); d, v = d.Add(1), v+1 {
		janFeb = append(janFeb, Dated{Date: d, Value: decimal.NewFromInt(int64(v))})
	}

	testCases := []struct {
		name   string
		deltas []Dated
		first  bool
		labels MonthLabels
		want   []Bucket
	}{
		{
			name:   "empty",
			deltas: nil,
			want:   nil,
		},
		{
			name:   "single month is never closed",
			deltas: series("01/03/2025", "1", "15/03/2025", "5"),
			want:   nil,
		},
		{
			name:   "month change",
			deltas: janFeb,
			labels: PortugueseMonths,
			want:   []Bucket{{"Fev", dec("2")}},
		},
		{
			name:   "month change with first partial month",
			deltas: janFeb,
			first:  true,
			labels: PortugueseMonths,
			want:   []Bucket{{"Jan", dec("27")}, {"Fev", dec("2")}},
		},
		{
			name:   "year change",
			deltas: series("30/12/2024", "0", "31/12/2024", "1", "02/01/2025", "2", "03/01/2025", "5"),
			labels: PortugueseMonths,
			want:   []Bucket{{"Jan/25", dec("3")}},
		},
		{
			name:   "year change with first partial month",
			deltas: series("30/12/2024", "0", "31/12/2024", "1", "02/01/2025", "2", "03/01/2025", "5"),
			first:  true,
			labels: PortugueseMonths,
			want:   []Bucket{{"Dez", dec("2")}, {"Jan/25", dec("3")}},
		},
		{
			name: "several months in english",
			deltas: series(
				"30/03/2025", "0", "31/03/2025", "1",
				"01/04/2025", "2", "30/04/2025", "5",
				"01/05/2025", "6", "02/05/2025", "10"),
			labels: EnglishMonths,
			want:   []Bucket{{"Apr", dec("4")}, {"May", dec("4")}},
		},
		{
			name: "first partial month label already present",
			deltas: series(
				"15/03/2024", "0", "31/12/2024", "1",
				"02/01/2025", "2", "03/03/2025", "3", "01/04/2025", "4"),
			first:  true,
			labels: PortugueseMonths,
			want:   []Bucket{{"Dez", dec("1")}, {"Jan/25", dec("1")}, {"Mar", dec("1")}, {"Abr", dec("0")}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MonthlyDeltas(tc.deltas, tc.first, tc.labels)
			if diff := cmp.Diff(tc.want, got, decimalEqual); diff != "" {
				t.Errorf("MonthlyDeltas() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLabelsFor(t *testing.T) {
	if got := LabelsFor("en").Month(time.February); got != "Feb" {
		t.Errorf("LabelsFor(en).Month(February) = %q want %q", got, "Feb")
	}
	if got := LabelsFor("pt").Month(time.February); got != "Fev" {
		t.Errorf("LabelsFor(pt).Month(February) = %q want %q", got, "Fev")
	}
	if got := LabelsFor("pt").Month(time.Month(13)); got != "???" {
		t.Errorf("Month(13) = %q want the fallback", got)
	}
	if got := PortugueseMonths.MonthYear(date.New(2021, 1, 3)); got != "Jan/21" {
		t.Errorf("MonthYear() = %q want %q", got, "Jan/21")
	}
}
