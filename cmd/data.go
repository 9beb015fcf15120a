package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/logger"
	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger with a JSON backup" }
func (*importCmd) Usage() string {
	return `fin import <backup.json | ->

  Replaces the whole ledger with a backup written by "fin export". The
  backup must hold incomes, expenses, categories, wallets and transfers,
  even empty. Nothing is imported if any record is invalid.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		name, err := oneArg(f, "backup file")
		if err != nil {
			return err
		}
		var r io.Reader = os.Stdin
		if name != "-" {
			file, err := os.Open(name)
			if err != nil {
				return err
			}
			defer file.Close()
			r = file
		}
		if err := s.ledger.ImportBackup(r); err != nil {
			return err
		}
		snap := s.ledger.Snapshot()
		logger.Get().Infow("backup imported", "file", name, "incomes", len(snap.Incomes), "expenses", len(snap.Expenses))
		fmt.Fprintf(stdout, "Imported %d incomes, %d expenses, %d wallets, %d categories and %d transfers\n",
			len(snap.Incomes), len(snap.Expenses), len(snap.Wallets), len(snap.Categories), len(snap.Transfers))
		return nil
	})
}

type exportCmd struct {
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the ledger as a JSON backup or CSV" }
func (*exportCmd) Usage() string {
	return `fin export [-format json|csv] [-o <file>]

  Writes the whole ledger as a JSON backup, or the transactions as CSV.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "json", "Export format, json or csv.")
	f.StringVar(&c.output, "o", "", "Output file, stdout by default.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		if c.format != "json" && c.format != "csv" {
			return usagef("invalid -format %q: must be json or csv", c.format)
		}
		w := stdout
		if c.output != "" {
			file, err := os.Create(c.output)
			if err != nil {
				return err
			}
			defer file.Close()
			w = file
		}
		if c.format == "csv" {
			txs := s.ledger.Transactions()
			fintrack.SortByDate(txs)
			return fintrack.ExportCSV(w, txs)
		}
		return fintrack.EncodeBackup(w, s.ledger.Snapshot())
	})
}

type clearCmd struct {
	force bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "erase every transaction, wallet and category" }
func (*clearCmd) Usage() string {
	return `fin clear -force

  Erases the ledger back to the default wallet and categories.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Confirm the ledger must be erased.")
}

func (c *clearCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		if !c.force {
			return usagef("clearing the ledger requires -force")
		}
		if err := s.ledger.Reset(); err != nil {
			return err
		}
		logger.Get().Infow("ledger cleared", "key", s.cfg.StorageKey)
		fmt.Fprintln(stdout, "Ledger cleared")
		return nil
	})
}
