package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/fintrack"
	md "github.com/nao1215/markdown"
)

// Transaction renders a transaction to a one line string.
func Transaction(tx fintrack.Transaction, l Labels) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s on %s (%s, %s)",
		tx.Date, tx.Name, signed(tx).SignedFormat(l.Currency()),
		l.WalletName(tx.WalletID), l.CategoryLabel(tx.Category), status(tx))
	if tx.IsRecurring {
		fmt.Fprintf(&b, ", repeats %s x%d", tx.RecurrenceType, tx.RecurrenceCount)
	}
	return b.String()
}

// TransactionsMarkdown renders transactions as a table followed by their totals.
func TransactionsMarkdown(title string, txs []fintrack.Transaction, l Labels) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)
	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}

	cur := l.Currency()
	table := md.TableSet{
		Header: []string{"Date", "ID", "Name", "Category", "Wallet", "Amount", "Status", "Recurrence"},
		Rows:   [][]string{},
	}
	for _, tx := range txs {
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			tx.ID,
			tx.Name,
			l.CategoryLabel(tx.Category),
			l.WalletName(tx.WalletID),
			signed(tx).SignedFormat(cur),
			status(tx),
			recurrence(tx),
		})
	}
	writeTable(doc, table)

	t := fintrack.ComputeTotals(txs)
	writeTable(doc, md.TableSet{
		Header: []string{md.Bold("Balance"), md.Bold(t.Balance.SignedFormat(cur))},
		Rows: [][]string{
			{"Income", t.Income.Format(cur)},
			{"Expense", t.Expense.Format(cur)},
		},
	})
	return doc.String()
}

// recurrence describes the place of tx in its recurrence group.
func recurrence(tx fintrack.Transaction) string {
	switch {
	case tx.IsRecurring:
		return fmt.Sprintf("%s x%d", tx.RecurrenceType, tx.RecurrenceCount)
	case tx.IsPartOfRecurrence:
		return "of " + tx.RecurrenceGroupID
	case tx.TransferID != "":
		return "transfer " + tx.TransferID
	default:
		return ""
	}
}

// EffectuationMarkdown renders the pending and settled transactions.
func EffectuationMarkdown(e fintrack.Effectuation, l Labels) string {
	var b strings.Builder
	cur := l.Currency()
	ConditionalBlock(&b, func(w io.Writer) bool {
		doc := md.NewMarkdown(w)
		doc.H2("Pending")
		items := make([]string, 0, len(e.Pending))
		for _, tx := range e.Pending {
			items = append(items, Transaction(tx, l))
		}
		doc.BulletList(items...)
		doc.PlainText(fmt.Sprintf("Pending balance: %s", e.PendingTotals.Balance.SignedFormat(cur)))
		doc.Build()
		return len(e.Pending) > 0
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		doc := md.NewMarkdown(w)
		doc.H2("Settled")
		doc.PlainText(fmt.Sprintf("%d settled transactions, balance %s", len(e.Settled), e.SettledTotals.Balance.SignedFormat(cur)))
		doc.Build()
		return len(e.Settled) > 0
	})
	if b.Len() == 0 {
		return "Nothing planned or settled.\n"
	}
	return b.String()
}
