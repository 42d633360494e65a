package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/renderer"
	"github.com/google/subcommands"
)

type monthlyCmd struct {
	window windowFlags
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the profit of each month" }
func (*monthlyCmd) Usage() string {
	return `rentab monthly [-y <years>] [-m <months>] [-d <days>] [-owned] [-first]

  Displays the profit, in the configured currency, of each month of the window.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) { c.window.SetFlags(f) }

func (c *monthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, err := c.window.request()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := openSession()
	if err != nil {
		return fail(err)
	}
	defer s.Close()

	r, err := s.compute(ctx, req)
	if err != nil {
		return fail(err)
	}
	buckets := rentability.MonthlyDeltas(r.Deltas(), c.window.includeFirst(req), rentability.LabelsFor(s.cfg.Locale))
	printMarkdown(renderer.Buckets(buckets, s.cfg.Currency))
	return subcommands.ExitSuccess
}
