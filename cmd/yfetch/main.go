// Command yfetch fetches market data from Yahoo Finance and prints it as JSON.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(subcommands.HelpCommand(), "")
	commander.Register(&quoteCmd{}, "")
	commander.Register(&historyCmd{}, "")
	commander.Register(&dividendsCmd{}, "")
	commander.Register(&splitsCmd{}, "")
	commander.Register(&searchCmd{}, "")
	commander.Register(&fxCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
