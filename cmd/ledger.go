package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/date"
	"github.com/google/subcommands"
)

type heldCmd struct {
	symbol string
	on     string
}

func (*heldCmd) Name() string     { return "held" }
func (*heldCmd) Synopsis() string { return "display the quantity of a symbol held on a day" }
func (*heldCmd) Usage() string {
	return `rentab held -s <symbol> [-on <date>]

  Displays the quantity held at the market close of a day. Orders count
  from the close of the day they were executed.
`
}

func (c *heldCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol")
	f.StringVar(&c.on, "on", date.Today().String(), "Day, as DD/MM/YYYY or YYYY-MM-DD")
}

func (c *heldCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required")
		return subcommands.ExitUsageError
	}
	on, err := date.ParseAny(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	ledger, err := decodeLedger(cfg)
	if err != nil {
		return fail(err)
	}
	qty, err := ledger.HeldQuantity(c.symbol, on.At(rentability.MarketClose))
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "%s %s %d\n", on.Format(date.DayFirstFormat), c.symbol, qty)
	return subcommands.ExitSuccess
}

type oldestCmd struct{}

func (*oldestCmd) Name() string     { return "oldest" }
func (*oldestCmd) Synopsis() string { return "display the first order of the ledger" }
func (*oldestCmd) Usage() string {
	return `rentab oldest

  Displays the day and symbol of the earliest order. The prices of that
  symbol give the trading days of every report.
`
}

func (*oldestCmd) SetFlags(*flag.FlagSet) {}

func (*oldestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	ledger, err := decodeLedger(cfg)
	if err != nil {
		return fail(err)
	}
	on, symbol, err := ledger.EarliestOrder()
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "%s %s\n", on.Format(date.DayFirstFormat), symbol)
	return subcommands.ExitSuccess
}
