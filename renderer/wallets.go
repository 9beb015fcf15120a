package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fintrack"
	md "github.com/nao1215/markdown"
)

// WalletsMarkdown renders the wallets, their balances and goals.
func WalletsMarkdown(wallets []fintrack.Wallet, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Wallets")

	table := md.TableSet{
		Header: []string{"ID", "Name", "Balance", "Goal", "Progress"},
		Rows:   [][]string{},
	}
	var total fintrack.Money
	for _, w := range wallets {
		name := w.Name
		if w.IsDefault {
			name = md.Bold(name)
		}
		goal, progress := "", ""
		if p, ok := fintrack.ProgressOf(w); ok {
			goal = p.Goal.Format(currency)
			progress = p.Percent.StringFixed(1) + "%"
		}
		table.Rows = append(table.Rows, []string{w.ID, name, w.Balance.Format(currency), goal, progress})
		total = total.Add(w.Balance)
	}
	writeTable(doc, table)
	doc.PlainText(fmt.Sprintf("Total balance: %s", md.Bold(total.Format(currency))))
	return doc.String()
}

// CategoriesMarkdown renders the categories, incomes first.
func CategoriesMarkdown(categories []fintrack.Category) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Categories")
	for _, typ := range []fintrack.TransactionType{fintrack.Income, fintrack.Expense} {
		table := md.TableSet{
			Header: []string{"ID", "Value", "Label", "Color"},
			Rows:   [][]string{},
		}
		for _, c := range categories {
			if c.Type != typ {
				continue
			}
			label := c.Label
			if c.IsDefault {
				label += " (default)"
			}
			table.Rows = append(table.Rows, []string{c.ID, c.Value, label, c.Color})
		}
		if len(table.Rows) == 0 {
			continue
		}
		if typ == fintrack.Income {
			doc.H2("Income")
		} else {
			doc.H2("Expense")
		}
		writeTable(doc, table)
	}
	return doc.String()
}
