package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

// txFlags are the editable fields of a transaction.
type txFlags struct {
	typ, name, value, date, category, wallet, description string
	settled                                               bool
}

func (t *txFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.typ, "type", string(fintrack.Expense), "Type of the transaction, income or expense.")
	f.StringVar(&t.name, "name", "", "Name of the transaction.")
	f.StringVar(&t.value, "value", "", "Amount of the transaction, like 1234.56 or 1.234,56.")
	f.StringVar(&t.date, "d", "", "Date of the transaction, today by default. See the user manual for supported date formats.")
	f.StringVar(&t.category, "c", "", "Category value of the transaction.")
	f.StringVar(&t.wallet, "w", fintrack.DefaultWalletID, "Wallet id of the transaction.")
	f.StringVar(&t.description, "desc", "", "Description of the transaction.")
	f.BoolVar(&t.settled, "settled", false, "The transaction already happened and changes the wallet balance.")
}

// apply copies the flags set on the command line into tx.
func (t *txFlags) apply(tx *fintrack.Transaction, set map[string]bool) error {
	if set["type"] {
		tx.Type = fintrack.TransactionType(t.typ)
	}
	if set["name"] {
		tx.Name = t.name
	}
	if set["value"] {
		v, err := parseMoney("value", t.value)
		if err != nil {
			return err
		}
		tx.Value = v
	}
	if set["d"] {
		d, err := parseDate("d", t.date)
		if err != nil {
			return err
		}
		tx.Date = d
	}
	if set["c"] {
		tx.Category = t.category
	}
	if set["w"] {
		tx.WalletID = t.wallet
	}
	if set["desc"] {
		tx.Description = t.description
	}
	if set["settled"] {
		tx.IsEffectuated = t.settled
	}
	return nil
}

type addCmd struct {
	txFlags
	repeat string
	count  int
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an income or an expense" }
func (*addCmd) Usage() string {
	return `fin add [-type income|expense] -name <name> -value <amount> [-d <date>] [-c <category>] [-w <wallet-id>] [-desc <text>] [-settled] [-repeat <recurrence> -n <count>]

  Adds a transaction. A pending transaction is planned and does not change
  the wallet balance until it is effectuated.

  With -repeat (daily, weekly, biweekly, monthly, yearly) and -n (2 to 60),
  the transaction is repeated n times from its date. Only the first
  occurrence takes the -settled flag, the others are pending.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.SetFlags(f)
	f.StringVar(&c.repeat, "repeat", "", "Recurrence of the transaction: daily, weekly, biweekly, monthly or yearly.")
	f.IntVar(&c.count, "n", 0, "Number of occurrences of a repeated transaction.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		if (c.repeat == "") != (c.count == 0) {
			return usagef("-repeat and -n must be used together")
		}
		tx := fintrack.Transaction{
			Type:          fintrack.TransactionType(c.typ),
			WalletID:      c.wallet,
			IsEffectuated: c.settled,
		}
		if err := c.apply(&tx, visited(f)); err != nil {
			return err
		}
		if c.repeat != "" {
			tx.IsRecurring = true
			tx.RecurrenceType = fintrack.RecurrenceType(c.repeat)
			tx.RecurrenceCount = c.count
		}
		added, err := s.ledger.AddTransaction(tx)
		if err != nil {
			return err
		}
		for _, tx := range added {
			fmt.Fprintf(stdout, "Added %s [%s]\n", renderer.Transaction(tx, s.ledger), tx.ID)
		}
		return nil
	})
}

type editCmd struct {
	txFlags
	all bool
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a transaction" }
func (*editCmd) Usage() string {
	return `fin edit [-name <name>] [-value <amount>] [-d <date>] [-c <category>] [-w <wallet-id>] [-desc <text>] [-settled=true|false] [-all] <transaction-id>

  Changes the fields given on the command line. The type of a transaction
  cannot change.

  With -all, every occurrence of a repeated transaction receives the new
  fields, except its date.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.SetFlags(f)
	f.BoolVar(&c.all, "all", false, "Edit every occurrence of a repeated transaction.")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		id, err := oneArg(f, "transaction id")
		if err != nil {
			return err
		}
		tx, ok := s.ledger.Transaction(id)
		if !ok {
			return fintrack.WithMessage(fintrack.ErrTransactionNotFound, fmt.Sprintf("transaction %q not found", id))
		}
		if err := c.apply(&tx, visited(f)); err != nil {
			return err
		}
		if err := s.ledger.UpdateTransaction(tx, c.all); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Transaction %s updated\n", id)
		return nil
	})
}

type deleteCmd struct {
	all bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a transaction" }
func (*deleteCmd) Usage() string {
	return `fin delete [-all] <transaction-id>

  Deletes a transaction, restoring the wallet balance if it was settled.
  With -all, every occurrence of a repeated transaction is deleted.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Delete every occurrence of a repeated transaction.")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		id, err := oneArg(f, "transaction id")
		if err != nil {
			return err
		}
		if err := s.ledger.DeleteTransaction(id, c.all); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Transaction %s deleted\n", id)
		return nil
	})
}

type effectuateCmd struct {
	undo bool
	all  bool
}

func (*effectuateCmd) Name() string     { return "effectuate" }
func (*effectuateCmd) Synopsis() string { return "mark a transaction as settled" }
func (*effectuateCmd) Usage() string {
	return `fin effectuate [-undo] [-all] <transaction-id>

  Marks a planned transaction as settled, applying it to its wallet balance.
  -undo marks it pending again. With -all, every occurrence of a repeated
  transaction changes.
`
}

func (c *effectuateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.undo, "undo", false, "Mark the transaction as pending instead.")
	f.BoolVar(&c.all, "all", false, "Apply to every occurrence of a repeated transaction.")
}

func (c *effectuateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		id, err := oneArg(f, "transaction id")
		if err != nil {
			return err
		}
		if err := s.ledger.EffectuateTransaction(id, !c.undo, c.all); err != nil {
			return err
		}
		status := "settled"
		if c.undo {
			status = "pending"
		}
		fmt.Fprintf(stdout, "Transaction %s %s\n", id, status)
		return nil
	})
}
