// Command rentab reports the returns of a stock portfolio.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/rentability/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// windowFlags completes the flags shared by the report commands.
var windowFlags = map[string]complete.Predictor{
	"y":     predict.Something,
	"m":     predict.Something,
	"d":     predict.Something,
	"w":     predict.Set{"1y", "6m", "3m", "1m", "30d"},
	"owned": predict.Nothing,
	"first": predict.Nothing,
}

func with(flags map[string]complete.Predictor, extra ...string) map[string]complete.Predictor {
	out := make(map[string]complete.Predictor, len(flags)+len(extra))
	for k, v := range flags {
		out[k] = v
	}
	for _, k := range extra {
		out[k] = predict.Nothing
	}
	return out
}

var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"config": predict.Files("*.toml"),
		"l":      predict.Or(predict.Files("*.csv"), predict.Files("*.jsonl")),
		"v":      predict.Nothing,
	},
	Sub: map[string]*complete.Command{
		"returns": {Flags: with(windowFlags, "save", "html", "daily")},
		"monthly": {Flags: windowFlags},
		"comment": {Flags: with(windowFlags, "i")},
		"held":    {Flags: map[string]complete.Predictor{"s": predict.Something, "on": predict.Something}},
		"oldest":  {},
		"fetch":   {},
		"search":  {Args: predict.Something},
		"topic":   {Args: predict.Set{"readme", "ledger", "returns", "monthly", "config", "*"}},
		"help":    {},
	},
}

func main() {
	// Answers shell completion requests, and exits, when COMP_LINE is set.
	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.SetupLogger(*cmd.Verbose)
	os.Exit(int(commander.Execute(context.Background())))
}
