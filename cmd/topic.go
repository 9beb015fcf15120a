package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fintrack/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the user manual" }
func (*topicCmd) Usage() string {
	return `fin topic [-l] [<topic>...]

  Prints the manual topics one after the other, "*" standing for all of
  them. Without topic, prints the manual index.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "Only print the topic names.")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		names, err := docs.Names()
		if err != nil {
			return fail(err)
		}
		for _, name := range names {
			fmt.Fprintln(stdout, name)
		}
		return subcommands.ExitSuccess
	}
	doc, err := docs.Read(f.Args()...)
	if err != nil {
		return fail(err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
