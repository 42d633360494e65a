package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/agent"
	"github.com/etnz/rentability/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type commentCmd struct {
	window      windowFlags
	interactive bool
}

func (*commentCmd) Name() string     { return "comment" }
func (*commentCmd) Synopsis() string { return "ask Gemini to comment the returns report" }
func (*commentCmd) Usage() string {
	return `rentab comment [-y <years>] [-m <months>] [-d <days>] [-owned] [-first] [-i]

  Sends the returns report to Gemini and prints its commentary. The
  GEMINI_API_KEY environment variable holds the API key.
`
}

func (c *commentCmd) SetFlags(f *flag.FlagSet) {
	c.window.SetFlags(f)
	f.BoolVar(&c.interactive, "i", false, "Keep the conversation open for follow-up questions")
}

func (c *commentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	report := func(ctx context.Context, req rentability.Request, first bool) (string, error) {
		r, err := s.compute(ctx, req)
		if err != nil {
			return "", err
		}
		buckets := rentability.MonthlyDeltas(r.Deltas(), first, rentability.LabelsFor(s.cfg.Locale))
		return renderer.Report(r, buckets, renderer.Options{Currency: s.cfg.Currency}), nil
	}
	md, err := report(ctx, req, c.window.includeFirst(req))
	if err != nil {
		return fail(err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: s.cfg.GeminiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return fail(fmt.Errorf("could not initialize Gemini's client: %w", err))
	}
	tool := agent.ReturnsTool{Compute: func(ctx context.Context, window string) (string, error) {
		w, err := rentability.ParseWindow(window)
		if err != nil {
			return "", err
		}
		return report(ctx, rentability.Request{Window: w}, false)
	}}
	session := agent.New(stdout, os.Stdin, agent.NewAnalyst(tool))
	if err := session.Start(ctx, client); err != nil {
		return fail(err)
	}
	comment, err := session.Comment(ctx, md)
	if err != nil {
		return fail(err)
	}
	printMarkdown(comment)

	if c.interactive {
		if err := session.Run(ctx); err != nil {
			return fail(err)
		}
	}
	return subcommands.ExitSuccess
}
