package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/config"
	"github.com/etnz/rentability/date"
	"github.com/etnz/rentability/pricestore"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// setup writes a configuration and a ledger in a temp dir, serves flat
// prices since 20 days ago and captures the reports.
func setup(t *testing.T) (dir string, out *strings.Builder) {
	t.Helper()
	dir = t.TempDir()
	today := date.Today()
	ledger := "symbol,date,quantity,price,owner,buy\n" +
		"X," + today.Add(-10).Format(date.DayFirstFormat) + ",10,100,ana,True\n"
	if err := os.WriteFile(filepath.Join(dir, "portfolio.csv"), []byte(ledger), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := "ledger = \"" + filepath.ToSlash(filepath.Join(dir, "portfolio.csv")) + "\"\n" +
		"currency = \"USD\"\n" +
		"figures = \"" + filepath.ToSlash(filepath.Join(dir, "Figures")) + "\"\n" +
		"[prices]\ncache = \"\"\n"
	if err := os.WriteFile(filepath.Join(dir, "rentab.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	prices := make(map[date.Date]decimal.Decimal)
	for d := today.Add(-20); !d.After(today); d = d.Add(1) {
		prices[d] = decimal.NewFromInt(100)
	}
	prices[today] = decimal.NewFromInt(110)

	oldConfig, oldLedger, oldSource, oldStdout := *configPath, *ledgerPath, newSource, stdout
	t.Cleanup(func() { *configPath, *ledgerPath, newSource, stdout = oldConfig, oldLedger, oldSource, oldStdout })

	*configPath = filepath.Join(dir, "rentab.toml")
	*ledgerPath = ""
	newSource = func(*config.Config) (rentability.PriceSource, func() error, error) {
		return rentability.StaticSource{"X": rentability.Daily(prices)}, func() error { return nil }, nil
	}
	out = new(strings.Builder)
	stdout = out
	return dir, out
}

func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("could not parse %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestReturnsCmd(t *testing.T) {
	dir, out := setup(t)
	if got := execute(t, &returnsCmd{}, "-owned", "-html"); got != subcommands.ExitSuccess {
		t.Fatalf("returns exit status = %v want success", got)
	}
	if !strings.Contains(out.String(), "Portfolio Returns") || !strings.Contains(out.String(), "10.00%") {
		t.Errorf("returns output =\n%s\nwant the report with a 10%% return", out.String())
	}
	for _, name := range []string{"rentability.png", "report.html"} {
		if _, err := os.Stat(filepath.Join(dir, "Figures", name)); err != nil {
			t.Errorf("%s not saved: %v", name, err)
		}
	}
}

func TestReturnsCmdUsage(t *testing.T) {
	setup(t)
	if got := execute(t, &returnsCmd{}, "-y", "1", "-w", "6m"); got != subcommands.ExitUsageError {
		t.Errorf("returns -y -w exit status = %v want usage error", got)
	}
}

func TestMonthlyCmd(t *testing.T) {
	_, out := setup(t)
	if got := execute(t, &monthlyCmd{}, "-d", "5"); got != subcommands.ExitSuccess {
		t.Fatalf("monthly exit status = %v want success", got)
	}
	if !strings.Contains(out.String(), "Monthly Profit") {
		t.Errorf("monthly output =\n%s", out.String())
	}
}

func TestHeldCmd(t *testing.T) {
	_, out := setup(t)
	if got := execute(t, &heldCmd{}, "-s", "X"); got != subcommands.ExitSuccess {
		t.Fatalf("held exit status = %v want success", got)
	}
	if !strings.HasSuffix(out.String(), "X 10\n") {
		t.Errorf("held output = %q want 10 X held", out.String())
	}
	if got := execute(t, &heldCmd{}, "-s", "Y"); got != subcommands.ExitFailure {
		t.Errorf("held of an unknown symbol exit status = %v want failure", got)
	}
	if got := execute(t, &heldCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("held without symbol exit status = %v want usage error", got)
	}
}

func TestOldestCmd(t *testing.T) {
	_, out := setup(t)
	if got := execute(t, &oldestCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("oldest exit status = %v want success", got)
	}
	want := date.Today().Add(-10).Format(date.DayFirstFormat) + " X\n"
	if out.String() != want {
		t.Errorf("oldest output = %q want %q", out.String(), want)
	}
}

func TestFetchCmd(t *testing.T) {
	_, out := setup(t)
	if got := execute(t, &fetchCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("fetch exit status = %v want success", got)
	}
	if out.String() != "X 11 days\n" {
		t.Errorf("fetch output = %q want %q", out.String(), "X 11 days\n")
	}
}

func TestFetchCmdCache(t *testing.T) {
	dir, out := setup(t)
	path := filepath.Join(dir, "cache", "prices.db")
	static := newSource
	newSource = func(cfg *config.Config) (rentability.PriceSource, func() error, error) {
		src, _, _ := static(cfg)
		store, err := pricestore.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return &pricestore.Cached{Store: store, Source: src}, store.Close, nil
	}
	if got := execute(t, &fetchCmd{}); got != subcommands.ExitSuccess {
		t.Fatalf("fetch exit status = %v want success", got)
	}
	if out.String() != "X 11 days\n" {
		t.Errorf("fetch output = %q want %q", out.String(), "X 11 days\n")
	}

	store, err := pricestore.Open(path)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	defer store.Close()
	symbols, err := store.Symbols(context.Background())
	if err != nil || len(symbols) != 1 || symbols[0] != "X" {
		t.Errorf("cached symbols = %v, %v want [X]", symbols, err)
	}
}

func TestWindowFlags(t *testing.T) {
	testCases := []struct {
		args  []string
		want  rentability.Request
		first bool
		err   bool
	}{
		{args: nil, want: rentability.Request{Owned: true}, first: true},
		{args: []string{"-y", "1", "-d", "3"}, want: rentability.Request{Window: rentability.Window{Years: 1, Days: 3}}},
		{args: []string{"-w", "6m", "-first"}, want: rentability.Request{Window: rentability.Window{Months: 6}}, first: true},
		{args: []string{"-m", "2", "-owned"}, want: rentability.Request{Window: rentability.Window{Months: 2}, Owned: true}, first: true},
		{args: []string{"-d", "-1"}, err: true},
		{args: []string{"-w", "six"}, err: true},
	}
	for _, tc := range testCases {
		var w windowFlags
		f := flag.NewFlagSet("test", flag.ContinueOnError)
		w.SetFlags(f)
		if err := f.Parse(tc.args); err != nil {
			t.Fatalf("Parse(%v) unexpected error: %v", tc.args, err)
		}
		got, err := w.request()
		if (err != nil) != tc.err {
			t.Errorf("request(%v) error = %v want error %v", tc.args, err, tc.err)
			continue
		}
		if err != nil {
			continue
		}
		if got != tc.want {
			t.Errorf("request(%v) = %+v want %+v", tc.args, got, tc.want)
		}
		if first := w.includeFirst(got); first != tc.first {
			t.Errorf("includeFirst(%v) = %v want %v", tc.args, first, tc.first)
		}
	}
}

func TestTopicCmd(t *testing.T) {
	_, out := setup(t)
	if got := execute(t, &topicCmd{}, "ledger"); got != subcommands.ExitSuccess {
		t.Fatalf("topic exit status = %v want success", got)
	}
	if !strings.Contains(out.String(), "Ledger") {
		t.Errorf("topic output =\n%s\nwant the ledger topic", out.String())
	}
	if got := execute(t, &topicCmd{}, "nope"); got != subcommands.ExitFailure {
		t.Errorf("topic nope exit status = %v want failure", got)
	}
}
