package fintrack

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/fintrack/date"
)

// Totals sums incomes and expenses.
type Totals struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"` // Income - Expense
}

func (t Totals) add(tx Transaction) Totals {
	switch tx.Type {
	case Income:
		t.Income = t.Income.Add(tx.Value)
	case Expense:
		t.Expense = t.Expense.Add(tx.Value)
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// ComputeTotals sums the transactions, settled or not.
func ComputeTotals(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		t = t.add(tx)
	}
	return t
}

// PeriodTotals are the totals of the transactions dated within a period.
type PeriodTotals struct {
	Key   string     `json:"key"`
	Range date.Range `json:"-"`
	Totals
	// Accumulated is the running balance up to the end of the period.
	Accumulated Money `json:"accumulated"`
}

// GroupByPeriod buckets transactions by the period of their date, oldest
// period first. Only periods holding transactions are returned.
func GroupByPeriod(txs []Transaction, p date.Period) []PeriodTotals {
	buckets := make(map[string]*PeriodTotals)
	for _, tx := range txs {
		r := date.NewRange(tx.Date, p)
		key := r.Identifier()
		b, ok := buckets[key]
		if !ok {
			b = &PeriodTotals{Key: key, Range: r}
			buckets[key] = b
		}
		b.Totals = b.Totals.add(tx)
	}
	out := make([]PeriodTotals, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b PeriodTotals) int { return a.Range.From.Compare(b.Range.From) })
	return out
}

// BalanceByPeriod is GroupByPeriod with the running balance filled.
func BalanceByPeriod(txs []Transaction, p date.Period) []PeriodTotals {
	out := GroupByPeriod(txs, p)
	var acc Money
	for i := range out {
		acc = acc.Add(out[i].Balance)
		out[i].Accumulated = acc
	}
	return out
}

// CategoryTotal is the total of the transactions of one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Color    string `json:"color,omitempty"`
	Total    Money  `json:"total"`
}

// GroupByCategory sums transaction values by category, largest first.
//
// Categories unknown to categories are labelled with their raw value, and
// categories with a zero total are omitted.
func GroupByCategory(txs []Transaction, categories []Category) []CategoryTotal {
	totals := make(map[string]Money)
	for _, tx := range txs {
		totals[tx.Category] = totals[tx.Category].Add(tx.Value)
	}
	out := make([]CategoryTotal, 0, len(totals))
	for value, total := range totals {
		if !total.IsPositive() {
			continue
		}
		ct := CategoryTotal{Category: value, Label: value, Total: total}
		if i := slices.IndexFunc(categories, func(c Category) bool { return c.Value == value }); i >= 0 {
			ct.Label = categories[i].Label
			ct.Color = categories[i].Color
		}
		out = append(out, ct)
	}
	slices.SortFunc(out, func(a, b CategoryTotal) int {
		return cmp.Or(b.Total.Cmp(a.Total), cmp.Compare(a.Label, b.Label))
	})
	return out
}

// WalletTotal are the totals of the transactions of one wallet.
type WalletTotal struct {
	WalletID string `json:"walletId"`
	Name     string `json:"name"`
	Totals
}

// GroupByWallet sums transactions by wallet, in the order of wallets, then
// the unknown wallets by id, named "Unknown wallet".
func GroupByWallet(txs []Transaction, wallets []Wallet) []WalletTotal {
	totals := make(map[string]Totals)
	for _, tx := range txs {
		totals[tx.WalletID] = totals[tx.WalletID].add(tx)
	}
	out := make([]WalletTotal, 0, len(totals))
	for _, w := range wallets {
		if t, ok := totals[w.ID]; ok {
			out = append(out, WalletTotal{WalletID: w.ID, Name: w.Name, Totals: t})
			delete(totals, w.ID)
		}
	}
	var unknown []WalletTotal
	for id, t := range totals {
		unknown = append(unknown, WalletTotal{WalletID: id, Name: UnknownWallet, Totals: t})
	}
	slices.SortFunc(unknown, func(a, b WalletTotal) int { return cmp.Compare(a.WalletID, b.WalletID) })
	return append(out, unknown...)
}

// Filter selects transactions. Zero fields select everything.
type Filter struct {
	From, To    date.Date       // inclusive bounds
	Type        TransactionType // income or expense
	Categories  []string        // category values
	WalletIDs   []string
	Search      string // case insensitive match on the name
	Effectuated *bool
}

// Match reports whether tx is selected by f.
func (f Filter) Match(tx Transaction) bool {
	switch {
	case !f.From.IsZero() && tx.Date.Before(f.From):
		return false
	case !f.To.IsZero() && tx.Date.After(f.To):
		return false
	case f.Type != "" && tx.Type != f.Type:
		return false
	case len(f.Categories) > 0 && !slices.Contains(f.Categories, tx.Category):
		return false
	case len(f.WalletIDs) > 0 && !slices.Contains(f.WalletIDs, tx.WalletID):
		return false
	case f.Search != "" && !strings.Contains(strings.ToLower(tx.Name), strings.ToLower(f.Search)):
		return false
	case f.Effectuated != nil && tx.IsEffectuated != *f.Effectuated:
		return false
	}
	return true
}

// Apply returns the transactions selected by f, sorted by date then id.
func (f Filter) Apply(txs []Transaction) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	SortByDate(out)
	return out
}

// SortByDate sorts transactions chronologically, ties broken by id.
func SortByDate(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		return cmp.Or(a.Date.Compare(b.Date), cmp.Compare(a.ID, b.ID))
	})
}

// Effectuation splits transactions between pending and settled ones.
type Effectuation struct {
	Pending, Settled             []Transaction
	PendingTotals, SettledTotals Totals
}

// ComputeEffectuation returns the effectuation view of the transactions.
func ComputeEffectuation(txs []Transaction) Effectuation {
	var e Effectuation
	for _, tx := range txs {
		if tx.IsEffectuated {
			e.Settled = append(e.Settled, tx)
		} else {
			e.Pending = append(e.Pending, tx)
		}
	}
	SortByDate(e.Pending)
	SortByDate(e.Settled)
	e.PendingTotals = ComputeTotals(e.Pending)
	e.SettledTotals = ComputeTotals(e.Settled)
	return e
}
