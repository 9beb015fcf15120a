package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

// filterFlags select transactions.
type filterFlags struct {
	period, start, end       string
	typ, category, wallet, q string
	status                   string
}

func (p *filterFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.period, "p", "", "Predefined period around -d (day, week, biweekly, month, quarter, year).")
	f.StringVar(&p.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&p.end, "d", "", "The end date for the range, today by default.")
	f.StringVar(&p.typ, "type", "", "Only incomes or expenses.")
	f.StringVar(&p.category, "c", "", "Comma separated category values.")
	f.StringVar(&p.wallet, "w", "", "Comma separated wallet ids.")
	f.StringVar(&p.q, "q", "", "Only transactions whose name contains this text.")
	f.StringVar(&p.status, "status", "", "Only pending or settled transactions.")
}

// filter returns the filter selected by the flags. Without any date flag
// every date is selected.
func (p *filterFlags) filter(today date.Date) (fintrack.Filter, error) {
	var flt fintrack.Filter
	if p.period != "" || p.start != "" || p.end != "" {
		end := today
		if p.end != "" {
			d, err := parseDate("d", p.end)
			if err != nil {
				return flt, err
			}
			end = d
		}
		switch {
		case p.start != "":
			start, err := parseDate("s", p.start)
			if err != nil {
				return flt, err
			}
			flt.From, flt.To = start, end
		case p.period != "":
			period, err := date.ParsePeriod(p.period)
			if err != nil {
				return flt, usagef("invalid -p: %v", err)
			}
			r := date.NewRange(end, period)
			flt.From, flt.To = r.From, r.To
		default:
			flt.To = end
		}
	}
	switch p.typ {
	case "":
	case string(fintrack.Income), string(fintrack.Expense):
		flt.Type = fintrack.TransactionType(p.typ)
	default:
		return flt, usagef("invalid -type %q: must be income or expense", p.typ)
	}
	if p.category != "" {
		flt.Categories = strings.Split(p.category, ",")
	}
	if p.wallet != "" {
		flt.WalletIDs = strings.Split(p.wallet, ",")
	}
	flt.Search = p.q
	switch p.status {
	case "":
	case "pending", "settled":
		settled := p.status == "settled"
		flt.Effectuated = &settled
	default:
		return flt, usagef("invalid -status %q: must be pending or settled", p.status)
	}
	return flt, nil
}

type txCmd struct {
	filterFlags
	head int
	tail int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `fin tx [-p <period> | -s <start_date>] [-d <end_date>] [-type income|expense] [-c <categories>] [-w <wallets>] [-q <text>] [-status pending|settled] [-head <n>] [-tail <n>]

  Lists transactions, oldest first, with options for filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	p.filterFlags.SetFlags(f)
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		if p.head > 0 && p.tail > 0 {
			return usagef("-head and -tail flags cannot be used together")
		}
		flt, err := p.filter(s.ledger.Today())
		if err != nil {
			return err
		}
		transactions := flt.Apply(s.ledger.Transactions())
		if p.head > 0 && len(transactions) > p.head {
			transactions = transactions[:p.head]
		}
		if p.tail > 0 && len(transactions) > p.tail {
			transactions = transactions[len(transactions)-p.tail:]
		}
		printMarkdown(renderer.TransactionsMarkdown("Transactions", transactions, s.ledger))
		return nil
	})
}

type pendingCmd struct {
	filterFlags
}

func (*pendingCmd) Name() string     { return "pending" }
func (*pendingCmd) Synopsis() string { return "list planned transactions not yet settled" }
func (*pendingCmd) Usage() string {
	return `fin pending [-p <period> | -s <start_date>] [-d <end_date>] [-type income|expense] [-c <categories>] [-w <wallets>] [-q <text>]

  Lists the pending transactions and the totals of pending and settled ones.
`
}

func (p *pendingCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		p.status = ""
		flt, err := p.filter(s.ledger.Today())
		if err != nil {
			return err
		}
		e := fintrack.ComputeEffectuation(flt.Apply(s.ledger.Transactions()))
		printMarkdown(renderer.EffectuationMarkdown(e, s.ledger))
		return nil
	})
}

type summaryCmd struct {
	period string
	date   string
	by     string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display incomes and expenses over a period" }
func (*summaryCmd) Usage() string {
	return `fin summary [-p <period>] [-d <date>] [-by <period>]

  Displays the totals of the period containing the date, broken down by
  smaller periods (-by), by expense category and by wallet.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "month", "Period of the summary (day, week, biweekly, month, quarter, year).")
	f.StringVar(&c.date, "d", "", "Date within the period, today by default. See the user manual for supported date formats.")
	f.StringVar(&c.by, "by", "", "Breakdown period, one step shorter than -p by default.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		period, err := date.ParsePeriod(c.period)
		if err != nil {
			return usagef("invalid -p: %v", err)
		}
		by := breakdown(period)
		if c.by != "" {
			if by, err = date.ParsePeriod(c.by); err != nil {
				return usagef("invalid -by: %v", err)
			}
		}
		on := s.ledger.Today()
		if c.date != "" {
			if on, err = parseDate("d", c.date); err != nil {
				return err
			}
		}

		r := date.NewRange(on, period)
		txs := fintrack.Filter{From: r.From, To: r.To}.Apply(s.ledger.Transactions())
		expenses := fintrack.Filter{Type: fintrack.Expense}.Apply(txs)
		printMarkdown(renderer.SummaryMarkdown(&renderer.Summary{
			Range:      r,
			Period:     by,
			Totals:     fintrack.ComputeTotals(txs),
			Periods:    fintrack.BalanceByPeriod(txs, by),
			Categories: fintrack.GroupByCategory(expenses, s.ledger.Categories()),
			Wallets:    fintrack.GroupByWallet(txs, s.ledger.Wallets()),
			Currency:   s.ledger.Currency(),
		}))
		return nil
	})
}

// breakdown returns the period used to break p down.
func breakdown(p date.Period) date.Period {
	switch p {
	case date.Yearly:
		return date.Monthly
	case date.Quarterly:
		return date.Monthly
	case date.Monthly:
		return date.Weekly
	default:
		return date.Daily
	}
}
