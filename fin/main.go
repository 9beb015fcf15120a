// Command fin tracks personal finances: wallets, incomes, expenses,
// recurring transactions and transfers.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fintrack/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests and exits, when the shell asks for them.
	cmd.Completion(cmd.Commands()).Complete("fin")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if flag.NArg() > 0 && !registered(commander, flag.Arg(0)) {
		if found, code := cmd.RunExtension(flag.Arg(0), flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// registered reports whether name is a command of c.
func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == name {
			found = true
		}
	})
	return found
}
