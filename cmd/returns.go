package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/chart"
	"github.com/etnz/rentability/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type returnsCmd struct {
	window windowFlags
	save   bool
	html   bool
	daily  bool
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "display the portfolio returns over a window" }
func (*returnsCmd) Usage() string {
	return `rentab returns [-y <years>] [-m <months>] [-d <days>] [-owned] [-first] [-save] [-html] [-daily]

  Values the portfolio on every trading day of the window and displays its
  return and the profit of each month. A window reaching before the first
  order is shortened to the history since that order.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	c.window.SetFlags(f)
	f.BoolVar(&c.save, "save", false, "Save the line and bar charts in the figures directory")
	f.BoolVar(&c.html, "html", false, "Save an HTML report with the charts in the figures directory")
	f.BoolVar(&c.daily, "daily", false, "Add the valuation of every day to the report")
}

func (c *returnsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	labels := rentability.LabelsFor(s.cfg.Locale)
	buckets := rentability.MonthlyDeltas(r.Deltas(), c.window.includeFirst(req), labels)
	md := renderer.Report(r, buckets, renderer.Options{Currency: s.cfg.Currency, Daily: c.daily})

	if c.save || c.html {
		if err := chart.SaveFigures(s.cfg.Figures, r, buckets, s.cfg.Currency); err != nil {
			return fail(err)
		}
		log.Info().Str("dir", s.cfg.Figures).Msg("figures saved")
	}
	if c.html {
		figures := []string{chart.LineFile}
		if len(buckets) > 0 {
			figures = append(figures, chart.BarsFile)
		}
		page, err := renderer.HTML(md, renderer.Page{Lang: s.cfg.Locale, Title: "Portfolio Returns", Figures: figures})
		if err != nil {
			return fail(err)
		}
		path := filepath.Join(s.cfg.Figures, "report.html")
		if err := os.WriteFile(path, page, 0o644); err != nil {
			return fail(err)
		}
		log.Info().Str("path", path).Msg("report saved")
	}

	printMarkdown(md)
	return subcommands.ExitSuccess
}
