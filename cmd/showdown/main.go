package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate a set of cards"`
	Compare  CompareCmd       `cmd:"" help:"Settle a showdown on a complete board"`
	Simulate SimulateCmd      `cmd:"" help:"Estimate equity by Monte Carlo runouts"`
	Verify   VerifyCmd        `cmd:"" help:"Cross-check the evaluator against a reference implementation"`
	Deck     DeckCmd          `cmd:"" help:"Print the deck order"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("showdown"),
		kong.Description("Texas Hold'em hand evaluator and equity calculator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
