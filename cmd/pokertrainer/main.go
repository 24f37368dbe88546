package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	LogLevel string           `help:"Log level (debug|info|warn|error)" default:"warn" env:"POKERTRAINER_LOG_LEVEL"`
	JSONLogs bool             `name:"json-logs" help:"Write structured JSON logs" env:"POKERTRAINER_JSON_LOGS"`
	NoColor  bool             `name:"no-color" help:"Disable colored output" env:"NO_COLOR"`

	Simulate SimulateCmd `cmd:"" help:"Run AI-only sessions and report how each personality did"`
	Evaluate EvaluateCmd `cmd:"" help:"Score hole cards against a board"`
}

func main() {
	// a missing .env is fine; values from it only feed the env tags below
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokertrainer"),
		kong.Description("Texas Hold'em training engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
