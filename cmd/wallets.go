package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

// visited returns the names of the flags set on the command line.
func visited(f *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return set
}

// parseMoney parses a flag value, the empty string being zero.
func parseMoney(name, value string) (fintrack.Money, error) {
	if value == "" {
		return fintrack.Money{}, nil
	}
	m, err := fintrack.ParseMoney(value)
	if err != nil {
		return fintrack.Money{}, usagef("invalid -%s: %v", name, err)
	}
	return m, nil
}

// parseDate parses a flag value, the empty string being the zero date.
func parseDate(name, value string) (date.Date, error) {
	if value == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(value)
	if err != nil {
		return date.Date{}, usagef("invalid -%s: %v", name, err)
	}
	return d, nil
}

// oneArg returns the single positional argument of a command.
func oneArg(f *flag.FlagSet, what string) (string, error) {
	if f.NArg() != 1 {
		return "", usagef("expected exactly one %s, got %d arguments", what, f.NArg())
	}
	return f.Arg(0), nil
}

type walletsCmd struct{}

func (*walletsCmd) Name() string     { return "wallets" }
func (*walletsCmd) Synopsis() string { return "list wallets and their balances" }
func (*walletsCmd) Usage() string {
	return `fin wallets

  Lists every wallet with its balance and the progress toward its goal.
`
}
func (*walletsCmd) SetFlags(*flag.FlagSet) {}

func (*walletsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		printMarkdown(renderer.WalletsMarkdown(s.ledger.Wallets(), s.ledger.Currency()))
		return nil
	})
}

// walletFlags are the editable fields of a wallet.
type walletFlags struct {
	name, description, balance, color, icon, goal string
}

func (w *walletFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&w.name, "name", "", "Name of the wallet.")
	f.StringVar(&w.description, "desc", "", "Description of the wallet.")
	f.StringVar(&w.balance, "balance", "", "Balance of the wallet, like 1234.56 or 1.234,56.")
	f.StringVar(&w.color, "color", "", "Color of the wallet, like #3b82f6.")
	f.StringVar(&w.icon, "icon", "", "Icon name of the wallet.")
	f.StringVar(&w.goal, "goal", "", "Target balance of the wallet, 0 to remove it.")
}

// apply copies the flags set on the command line into w.
func (wf *walletFlags) apply(w *fintrack.Wallet, set map[string]bool) error {
	if set["name"] {
		w.Name = wf.name
	}
	if set["desc"] {
		w.Description = wf.description
	}
	if set["color"] {
		w.Color = wf.color
	}
	if set["icon"] {
		w.Icon = wf.icon
	}
	if set["balance"] {
		b, err := parseMoney("balance", wf.balance)
		if err != nil {
			return err
		}
		w.Balance = b
	}
	if set["goal"] {
		g, err := parseMoney("goal", wf.goal)
		if err != nil {
			return err
		}
		w.Goal = nil
		if !g.IsZero() {
			w.Goal = &fintrack.Goal{Value: g}
		}
	}
	return nil
}

type walletAddCmd struct {
	walletFlags
	id string
}

func (*walletAddCmd) Name() string     { return "wallet-add" }
func (*walletAddCmd) Synopsis() string { return "add a wallet" }
func (*walletAddCmd) Usage() string {
	return `fin wallet-add -name <name> [-id <id>] [-balance <amount>] [-goal <amount>] [-desc <text>] [-color <#rrggbb>] [-icon <icon>]

  Adds a wallet. Its id is generated unless -id is given.
`
}

func (c *walletAddCmd) SetFlags(f *flag.FlagSet) {
	c.walletFlags.SetFlags(f)
	f.StringVar(&c.id, "id", "", "Id of the wallet, generated by default.")
}

func (c *walletAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		w := fintrack.Wallet{ID: c.id}
		if err := c.apply(&w, visited(f)); err != nil {
			return err
		}
		added, err := s.ledger.AddWallet(w)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wallet %q added with id %s\n", added.Name, added.ID)
		return nil
	})
}

type walletEditCmd struct {
	walletFlags
	record bool
}

func (*walletEditCmd) Name() string     { return "wallet-edit" }
func (*walletEditCmd) Synopsis() string { return "edit a wallet" }
func (*walletEditCmd) Usage() string {
	return `fin wallet-edit [-name <name>] [-balance <amount> [-record]] [-goal <amount>] [-desc <text>] [-color <#rrggbb>] [-icon <icon>] <wallet-id>

  Changes the fields given on the command line. A new -balance silently
  corrects the wallet, unless -record adds a settled adjustment transaction
  for the difference.
`
}

func (c *walletEditCmd) SetFlags(f *flag.FlagSet) {
	c.walletFlags.SetFlags(f)
	f.BoolVar(&c.record, "record", false, "Record a balance change as an adjustment transaction.")
}

func (c *walletEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		id, err := oneArg(f, "wallet id")
		if err != nil {
			return err
		}
		w, ok := s.ledger.Wallet(id)
		if !ok {
			return fintrack.WithMessage(fintrack.ErrWalletNotFound, fmt.Sprintf("wallet %q not found", id))
		}
		set := visited(f)
		if c.record && set["balance"] {
			target, err := parseMoney("balance", c.balance)
			if err != nil {
				return err
			}
			tx, needed, err := s.ledger.BalanceAdjustment(id, target)
			if err != nil {
				return err
			}
			if needed {
				if _, err := s.ledger.AddTransaction(tx); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "Recorded %s\n", renderer.Transaction(tx, s.ledger))
			}
			delete(set, "balance")
			if w, ok = s.ledger.Wallet(id); !ok {
				return fmt.Errorf("wallet %q vanished", id)
			}
		}
		if err := c.apply(&w, set); err != nil {
			return err
		}
		if err := s.ledger.UpdateWallet(w); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wallet %s updated\n", id)
		return nil
	})
}

type walletDeleteCmd struct{}

func (*walletDeleteCmd) Name() string     { return "wallet-delete" }
func (*walletDeleteCmd) Synopsis() string { return "delete an unused wallet" }
func (*walletDeleteCmd) Usage() string {
	return `fin wallet-delete <wallet-id>

  Deletes a wallet. A wallet still referenced by transactions cannot be deleted.
`
}
func (*walletDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*walletDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		id, err := oneArg(f, "wallet id")
		if err != nil {
			return err
		}
		if err := s.ledger.DeleteWallet(id); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wallet %s deleted\n", id)
		return nil
	})
}

type transferCmd struct {
	from, to, amount, description, date string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two wallets" }
func (*transferCmd) Usage() string {
	return `fin transfer -from <wallet-id> -to <wallet-id> -amount <amount> [-desc <text>] [-d <date>]

  Moves money between wallets, recording a settled expense on the source
  and a settled income on the destination.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source wallet id.")
	f.StringVar(&c.to, "to", "", "Destination wallet id.")
	f.StringVar(&c.amount, "amount", "", "Amount to move.")
	f.StringVar(&c.description, "desc", "", "Description of the transfer.")
	f.StringVar(&c.date, "d", "", "Date of the transfer, today by default.")
}

func (c *transferCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		amount, err := parseMoney("amount", c.amount)
		if err != nil {
			return err
		}
		on, err := parseDate("d", c.date)
		if err != nil {
			return err
		}
		t, err := s.ledger.Transfer(fintrack.WalletTransfer{
			FromWalletID: c.from,
			ToWalletID:   c.to,
			Amount:       amount,
			Description:  c.description,
			Date:         on,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Transferred %s from %s to %s (%s)\n",
			t.Amount.Format(s.ledger.Currency()), s.ledger.WalletName(t.FromWalletID), s.ledger.WalletName(t.ToWalletID), t.ID)
		return nil
	})
}
