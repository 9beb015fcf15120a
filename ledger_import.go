package fintrack

import (
	"fmt"
	"io"
)

// Import replaces the whole ledger state with s.
//
// Missing transactions and transfers are empty, missing categories and
// wallets are the defaults. Every record is checked first: on any error
// nothing is imported. Wallet balances are taken as is.
func (l *Ledger) Import(s Snapshot) error {
	next, err := l.prepare(s)
	if err != nil {
		return err
	}
	return l.commit(next)
}

// Restore is Import without notifying the change hooks, for a state read
// back from where those hooks saved it.
func (l *Ledger) Restore(s Snapshot) error {
	next, err := l.prepare(s)
	if err != nil {
		return err
	}
	l.state = next
	return nil
}

// ImportBackup decodes a backup from r and imports it.
func (l *Ledger) ImportBackup(r io.Reader) error {
	s, err := DecodeBackup(r)
	if err != nil {
		return err
	}
	return l.Import(s)
}

// Reset empties the ledger back to its default categories and wallets.
func (l *Ledger) Reset() error { return l.commit(l.seed()) }

// prepare returns a checked copy of s with missing collections defaulted.
func (l *Ledger) prepare(s Snapshot) (Snapshot, error) {
	next := s.clone()
	if s.Categories == nil {
		next.Categories = DefaultCategories()
	}
	if s.Wallets == nil {
		next.Wallets = DefaultWallets(l.now())
	}
	if err := checkSnapshot(next); err != nil {
		return Snapshot{}, err
	}
	return next, nil
}

func checkSnapshot(s Snapshot) error {
	ids := make(map[string]bool)
	for name, coll := range map[TransactionType][]Transaction{Income: s.Incomes, Expense: s.Expenses} {
		for _, tx := range coll {
			if tx.Type != name {
				return WithMessage(ErrInvalidBackup, fmt.Sprintf("invalid backup: transaction %q of type %q in %ss", tx.ID, tx.Type, name))
			}
			if err := ValidateTransaction(tx); err != nil {
				return Wrap(ErrInvalidBackup, err)
			}
			if ids[tx.ID] {
				return WithMessage(ErrInvalidBackup, fmt.Sprintf("invalid backup: duplicate transaction id %q", tx.ID))
			}
			ids[tx.ID] = true
		}
	}
	wallets := make(map[string]bool)
	for _, w := range s.Wallets {
		if err := ValidateWallet(w); err != nil {
			return Wrap(ErrInvalidBackup, err)
		}
		if wallets[w.ID] {
			return WithMessage(ErrInvalidBackup, fmt.Sprintf("invalid backup: duplicate wallet id %q", w.ID))
		}
		wallets[w.ID] = true
	}
	values := make(map[string]bool)
	for _, c := range s.Categories {
		if err := ValidateCategory(c); err != nil {
			return Wrap(ErrInvalidBackup, err)
		}
		if values[c.Value] {
			return WithMessage(ErrInvalidBackup, fmt.Sprintf("invalid backup: duplicate category %q", c.Value))
		}
		values[c.Value] = true
	}
	for _, t := range s.Transfers {
		if err := check(ErrInvalidBackup, t); err != nil {
			return err
		}
	}
	return nil
}
