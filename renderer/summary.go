package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	md "github.com/nao1215/markdown"
)

// Summary is the content of a summary report over a range of dates.
type Summary struct {
	Range      date.Range
	Period     date.Period // bucket of Periods
	Totals     fintrack.Totals
	Periods    []fintrack.PeriodTotals
	Categories []fintrack.CategoryTotal // expenses only
	Wallets    []fintrack.WalletTotal
	Currency   string
}

// SummaryMarkdown renders a summary report.
func SummaryMarkdown(s *Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	cur := s.Currency

	doc.H1(fmt.Sprintf("Summary from %s to %s", s.Range.From, s.Range.To))
	writeTable(doc, md.TableSet{
		Header: []string{md.Bold("Balance"), md.Bold(s.Totals.Balance.SignedFormat(cur))},
		Rows: [][]string{
			{"Income", s.Totals.Income.Format(cur)},
			{"Expense", s.Totals.Expense.Format(cur)},
		},
	})

	if len(s.Periods) > 0 {
		doc.H2(fmt.Sprintf("Balance per period (%s)", s.Period))
		table := md.TableSet{
			Header: []string{"Period", "Income", "Expense", "Balance", "Accumulated"},
			Rows:   [][]string{},
		}
		for _, p := range s.Periods {
			table.Rows = append(table.Rows, []string{
				p.Key,
				p.Income.Format(cur),
				p.Expense.Format(cur),
				p.Balance.SignedFormat(cur),
				p.Accumulated.SignedFormat(cur),
			})
		}
		writeTable(doc, table)
	}

	if len(s.Categories) > 0 {
		doc.H2("Expenses by category")
		table := md.TableSet{
			Header: []string{"Category", "Total", "Share"},
			Rows:   [][]string{},
		}
		for _, c := range s.Categories {
			table.Rows = append(table.Rows, []string{
				c.Label,
				c.Total.Format(cur),
				c.Total.Ratio(s.Totals.Expense).StringFixed(1) + "%",
			})
		}
		writeTable(doc, table)
	}

	if len(s.Wallets) > 0 {
		doc.H2("By wallet")
		table := md.TableSet{
			Header: []string{"Wallet", "Income", "Expense", "Balance"},
			Rows:   [][]string{},
		}
		for _, w := range s.Wallets {
			table.Rows = append(table.Rows, []string{
				w.Name,
				w.Income.Format(cur),
				w.Expense.Format(cur),
				w.Balance.SignedFormat(cur),
			})
		}
		writeTable(doc, table)
	}
	return doc.String()
}
