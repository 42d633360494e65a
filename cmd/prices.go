package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/rentability/date"
	"github.com/etnz/rentability/eodhd"
	"github.com/etnz/rentability/pricestore"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch the prices of every symbol into the cache" }
func (*fetchCmd) Usage() string {
	return `rentab fetch

  Fetches the daily prices of every symbol of the ledger, since the first
  order, into the price cache. Later reports then work offline.
`
}

func (*fetchCmd) SetFlags(*flag.FlagSet) {}

func (*fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return fail(err)
	}
	defer s.Close()
	if s.cfg.Prices.Cache == "" {
		log.Warn().Msg("the price cache is disabled, prices are fetched but not kept")
	}

	oldest, _, err := s.ledger.EarliestOrder()
	if err != nil {
		return fail(err)
	}
	today := date.Today()
	var errs error
	for _, symbol := range s.ledger.Symbols() {
		series, err := s.engine.Source.DailyPrices(ctx, symbol, oldest, today)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", symbol, err))
			continue
		}
		fmt.Fprintf(stdout, "%s %d days\n", symbol, len(series))
	}
	if errs != nil {
		return fail(errs)
	}
	if cached, ok := s.engine.Source.(*pricestore.Cached); ok {
		symbols, err := cached.Store.Symbols(ctx)
		if err != nil {
			return fail(err)
		}
		log.Info().Strs("symbols", symbols).Str("path", s.cfg.Prices.Cache).Msg("prices cached")
	}
	return subcommands.ExitSuccess
}

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search EODHD tickers" }
func (*searchCmd) Usage() string {
	return `rentab search <term>...

  Searches securities by name, code or ISIN on EODHD, to find the suffix
  of the ledger symbols.
`
}

func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (*searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing search term")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	c := &eodhd.Client{APIKey: cfg.EODHDKey}
	results, err := c.Search(ctx, strings.Join(f.Args(), " "))
	if err != nil {
		return fail(err)
	}
	for _, r := range results {
		fmt.Fprintf(stdout, "%-16s %-4s %s\n", r.Ticker(), r.Currency, r.Name)
	}
	return subcommands.ExitSuccess
}
