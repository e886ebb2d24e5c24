package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/dpetkov/t212/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.LoadDotEnv()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
