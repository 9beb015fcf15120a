package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type goalCmd struct {
	set        string
	clear      bool
	contribute string
	by         string
	frequency  string
}

func (*goalCmd) Name() string     { return "goal" }
func (*goalCmd) Synopsis() string { return "show or simulate the goal of a wallet" }
func (*goalCmd) Usage() string {
	return `fin goal [-set <amount> | -clear] [-contribute <amount>] [-by <date> [-f <frequency>]] <wallet-id>

  Shows the progress of a wallet toward its goal.

  -contribute simulates how many contributions of that amount reach the goal.
  -by simulates the contribution needed every period of -f to reach the goal
  by that date. Frequencies: daily, biweekly, monthly, quarterly, semiannually, yearly.
`
}

func (c *goalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.set, "set", "", "Set the goal of the wallet to this amount.")
	f.BoolVar(&c.clear, "clear", false, "Remove the goal of the wallet.")
	f.StringVar(&c.contribute, "contribute", "", "Simulate regular contributions of this amount.")
	f.StringVar(&c.by, "by", "", "Simulate reaching the goal by this date.")
	f.StringVar(&c.frequency, "f", string(fintrack.FreqMonthly), "Frequency of the contributions simulated by -by.")
}

func (c *goalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		id, err := oneArg(f, "wallet id")
		if err != nil {
			return err
		}
		if c.set != "" && c.clear {
			return usagef("-set and -clear cannot be used together")
		}
		w, ok := s.ledger.Wallet(id)
		if !ok {
			return fintrack.WithMessage(fintrack.ErrWalletNotFound, fmt.Sprintf("wallet %q not found", id))
		}

		if c.set != "" || c.clear {
			w.Goal = nil
			if c.set != "" {
				v, err := parseMoney("set", c.set)
				if err != nil {
					return err
				}
				w.Goal = &fintrack.Goal{Value: v}
			}
			if err := s.ledger.UpdateWallet(w); err != nil {
				return err
			}
		}

		p, ok := fintrack.ProgressOf(w)
		if !ok {
			fmt.Fprintf(stdout, "Wallet %s has no goal\n", w.Name)
			return nil
		}
		g := &renderer.Goal{Wallet: w, Progress: p, Currency: s.ledger.Currency()}
		if c.contribute != "" {
			amount, err := parseMoney("contribute", c.contribute)
			if err != nil {
				return err
			}
			n, err := fintrack.SimulateTime(p, amount)
			if err != nil {
				return err
			}
			g.Contribution, g.Periods = amount, n
		}
		if c.by != "" {
			target, err := parseDate("by", c.by)
			if err != nil {
				return err
			}
			freq, err := fintrack.ParseFrequency(c.frequency)
			if err != nil {
				return usagef("invalid -f: %v", err)
			}
			needed, err := fintrack.SimulateContribution(p, freq, s.ledger.Today(), target)
			if err != nil {
				return err
			}
			g.Target, g.Frequency, g.Needed = target, freq, needed
		}
		printMarkdown(renderer.GoalMarkdown(g))
		return nil
	})
}
