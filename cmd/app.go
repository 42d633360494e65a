// Package cmd implements the rentab command line: one subcommand per report.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/alphavantage"
	"github.com/etnz/rentability/config"
	"github.com/etnz/rentability/eodhd"
	"github.com/etnz/rentability/pricestore"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configPath = flag.String("config", config.DefaultPath, "Path to the TOML configuration file")
	ledgerPath = flag.String("l", "", "Path to the ledger file (CSV or JSONL), overrides the configuration")
	Verbose    = flag.Bool("v", false, "Log debug messages, like every price request")
)

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// Commands lists the subcommands by group.
var Commands = map[string][]subcommands.Command{
	"returns": {&returnsCmd{}, &monthlyCmd{}, &commentCmd{}},
	"ledger":  {&heldCmd{}, &oldestCmd{}},
	"prices":  {&fetchCmd{}, &searchCmd{}},
	"help":    {&topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// SetupLogger installs a console logger on stderr.
func SetupLogger(verbose bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// loadConfig reads the configuration, applying the command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *ledgerPath != "" {
		cfg.Ledger = *ledgerPath
	}
	return cfg, nil
}

// decodeLedger loads the configured ledger.
func decodeLedger(cfg *config.Config) (rentability.Portfolio, error) {
	p, err := rentability.LoadLedger(cfg.Ledger)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("ledger", cfg.Ledger).Int("symbols", len(p)).Msg("ledger loaded")
	return p, nil
}

// newSource builds the configured price source, behind the SQLite cache if
// enabled. The returned function releases it.
var newSource = func(cfg *config.Config) (rentability.PriceSource, func() error, error) {
	var src rentability.PriceSource
	switch cfg.Prices.Provider {
	case config.ProviderEODHD:
		src = &eodhd.Client{APIKey: cfg.APIKey(), Suffix: cfg.Prices.Suffix}
	default:
		src = &alphavantage.Client{APIKey: cfg.APIKey(), Suffix: cfg.Prices.Suffix}
	}
	if cfg.Prices.Cache == "" {
		return src, func() error { return nil }, nil
	}
	store, err := pricestore.Open(cfg.Prices.Cache)
	if err != nil {
		return nil, nil, err
	}
	return &pricestore.Cached{Store: store, Source: src}, store.Close, nil
}

// session bundles what the report commands need.
type session struct {
	cfg    *config.Config
	ledger rentability.Portfolio
	engine *rentability.Engine
	close  func() error
}

func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ledger, err := decodeLedger(cfg)
	if err != nil {
		return nil, err
	}
	src, closer, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, ledger: ledger, engine: &rentability.Engine{Source: src}, close: closer}, nil
}

func (s *session) Close() {
	if err := s.close(); err != nil {
		log.Warn().Err(err).Msg("could not close the price store")
	}
}

// compute runs the engine and logs the window notice.
func (s *session) compute(ctx context.Context, req rentability.Request) (*rentability.Returns, error) {
	r, err := s.engine.Compute(ctx, s.ledger, req)
	if err != nil {
		return nil, err
	}
	if r.Resolution.Notice != "" {
		log.Info().Msg(r.Resolution.Notice)
	}
	return r, nil
}

// fail reports err and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
