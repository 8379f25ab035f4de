package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Serve    ServeCmd         `cmd:"" help:"Run the classify/estimate WebSocket service"`
	Classify ClassifyCmd      `cmd:"" help:"Classify a five-card hand or a two-card holding"`
	Odds     OddsCmd          `cmd:"" help:"Estimate win/tie odds for specific hands against each other"`
	Chart    ChartCmd         `cmd:"" help:"Rank all 169 starting holdings by estimated equity"`
	Explore  ExploreCmd       `cmd:"" help:"Launch the interactive equity explorer"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("poker-game"),
		kong.Description("Poker hand classification and Monte Carlo equity estimation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
