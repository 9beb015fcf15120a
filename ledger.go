package fintrack

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/etnz/fintrack/date"
	"github.com/google/uuid"
)

// Snapshot is the complete state of a ledger.
type Snapshot struct {
	Incomes    []Transaction    `json:"incomes"`
	Expenses   []Transaction    `json:"expenses"`
	Categories []Category       `json:"categories"`
	Wallets    []Wallet         `json:"wallets"`
	Transfers  []WalletTransfer `json:"transfers"`
}

// clone returns a deep copy of s.
func (s Snapshot) clone() Snapshot {
	c := Snapshot{
		Incomes:    make([]Transaction, len(s.Incomes)),
		Expenses:   make([]Transaction, len(s.Expenses)),
		Categories: slices.Clone(s.Categories),
		Wallets:    make([]Wallet, len(s.Wallets)),
		Transfers:  slices.Clone(s.Transfers),
	}
	for i, tx := range s.Incomes {
		c.Incomes[i] = tx.clone()
	}
	for i, tx := range s.Expenses {
		c.Expenses[i] = tx.clone()
	}
	for i, w := range s.Wallets {
		c.Wallets[i] = w.clone()
	}
	if c.Categories == nil {
		c.Categories = []Category{}
	}
	if c.Transfers == nil {
		c.Transfers = []WalletTransfer{}
	}
	return c
}

// collection returns the collection holding transactions of type t, or nil.
func (s *Snapshot) collection(t TransactionType) *[]Transaction {
	switch t {
	case Income:
		return &s.Incomes
	case Expense:
		return &s.Expenses
	default:
		return nil
	}
}

// ChangeFunc is called with the new state after every successful change.
type ChangeFunc func(Snapshot) error

// Ledger holds wallets, categories, transactions and transfers, and keeps
// every wallet balance consistent with its settled transactions.
//
// Every operation either fully succeeds or leaves the ledger unchanged.
// A Ledger is not safe for concurrent use.
type Ledger struct {
	state    Snapshot
	now      func() time.Time
	newID    func() string
	currency string
	hooks    []ChangeFunc
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used for timestamps and default dates.
func WithClock(now func() time.Time) Option { return func(l *Ledger) { l.now = now } }

// WithIDGenerator sets the generator of missing ids.
func WithIDGenerator(newID func() string) Option { return func(l *Ledger) { l.newID = newID } }

// WithCurrency sets the currency used to display amounts.
func WithCurrency(code string) Option { return func(l *Ledger) { l.currency = code } }

// OnChange registers fn to be called after every committed change, in
// registration order.
//
// A failing hook does not roll the change back: the operation returns the
// hook error while the ledger keeps the new state.
func OnChange(fn ChangeFunc) Option { return func(l *Ledger) { l.hooks = append(l.hooks, fn) } }

// NewLedger creates a ledger holding the default categories and wallets.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		now:      time.Now,
		newID:    uuid.NewString,
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.state = l.seed()
	return l
}

func (l *Ledger) seed() Snapshot {
	return Snapshot{
		Incomes:    []Transaction{},
		Expenses:   []Transaction{},
		Categories: DefaultCategories(),
		Wallets:    DefaultWallets(l.now()),
		Transfers:  []WalletTransfer{},
	}
}

// commit replaces the state with next and notifies the hooks.
func (l *Ledger) commit(next Snapshot) error {
	l.state = next
	var errs []error
	for _, hook := range l.hooks {
		if err := hook(l.state.clone()); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("change committed but not propagated: %w", err)
	}
	return nil
}

// Currency returns the display currency of the ledger.
func (l *Ledger) Currency() string { return l.currency }

// Today returns the current date according to the ledger clock.
func (l *Ledger) Today() date.Date { return date.Of(l.now()) }

// Snapshot returns a copy of the full ledger state.
func (l *Ledger) Snapshot() Snapshot { return l.state.clone() }

// Incomes returns a copy of the income transactions.
func (l *Ledger) Incomes() []Transaction { return l.state.clone().Incomes }

// Expenses returns a copy of the expense transactions.
func (l *Ledger) Expenses() []Transaction { return l.state.clone().Expenses }

// Transactions returns a copy of every transaction, incomes first.
func (l *Ledger) Transactions() []Transaction {
	s := l.state.clone()
	return append(s.Incomes, s.Expenses...)
}

// Categories returns a copy of the categories.
func (l *Ledger) Categories() []Category { return slices.Clone(l.state.Categories) }

// Wallets returns a copy of the wallets.
func (l *Ledger) Wallets() []Wallet { return l.state.clone().Wallets }

// Transfers returns a copy of the wallet transfers.
func (l *Ledger) Transfers() []WalletTransfer { return slices.Clone(l.state.Transfers) }

// Transaction returns the transaction with this id in any collection.
func (l *Ledger) Transaction(id string) (Transaction, bool) {
	if tx, _, ok := l.state.find(id); ok {
		return tx.clone(), true
	}
	return Transaction{}, false
}

// Wallet returns the wallet with this id.
func (l *Ledger) Wallet(id string) (Wallet, bool) {
	i := l.state.wallet(id)
	if i < 0 {
		return Wallet{}, false
	}
	return l.state.Wallets[i].clone(), true
}

// WalletName returns the name of the wallet, or "Unknown wallet" when it does not exist.
func (l *Ledger) WalletName(id string) string {
	if w, ok := l.Wallet(id); ok {
		return w.Name
	}
	return UnknownWallet
}

// UnknownWallet is the name displayed for a dangling wallet reference.
const UnknownWallet = "Unknown wallet"

// Category returns the category referenced by value.
func (l *Ledger) Category(value string) (Category, bool) {
	i := slices.IndexFunc(l.state.Categories, func(c Category) bool { return c.Value == value })
	if i < 0 {
		return Category{}, false
	}
	return l.state.Categories[i], true
}

// CategoryLabel returns the label of the category referenced by value, or
// value itself when no such category exists.
func (l *Ledger) CategoryLabel(value string) string {
	if c, ok := l.Category(value); ok {
		return c.Label
	}
	return value
}

// Group returns every member of the recurrence group, in collection order.
func (l *Ledger) Group(groupID string) []Transaction {
	var members []Transaction
	for _, tx := range l.Transactions() {
		if IsMemberOf(tx, groupID) {
			members = append(members, tx)
		}
	}
	return members
}

// WalletTransactions returns every transaction referencing the wallet.
func (l *Ledger) WalletTransactions(walletID string) []Transaction {
	var txs []Transaction
	for _, tx := range l.Transactions() {
		if tx.WalletID == walletID {
			txs = append(txs, tx)
		}
	}
	return txs
}

// find returns the transaction with this id, and the collection holding it.
func (s *Snapshot) find(id string) (Transaction, TransactionType, bool) {
	if i := indexOf(s.Incomes, id); i >= 0 {
		return s.Incomes[i], Income, true
	}
	if i := indexOf(s.Expenses, id); i >= 0 {
		return s.Expenses[i], Expense, true
	}
	return Transaction{}, "", false
}

// wallet returns the index of the wallet with this id, or -1.
func (s *Snapshot) wallet(id string) int {
	return slices.IndexFunc(s.Wallets, func(w Wallet) bool { return w.ID == id })
}

// inUse reports whether a transaction id is already taken.
func (s *Snapshot) inUse(id string) bool {
	_, _, ok := s.find(id)
	return ok
}

func indexOf(txs []Transaction, id string) int {
	return slices.IndexFunc(txs, func(tx Transaction) bool { return tx.ID == id })
}
