package fintrack

import (
	"fmt"
	"slices"
	"time"
)

// AddWallet adds a wallet and returns it as stored.
//
// A missing id is generated and createdAt is now. The balance given is the
// opening balance of the wallet. An id still referenced by transactions,
// left over by an import, is refused: their settled effect was never applied.
func (l *Ledger) AddWallet(w Wallet) (Wallet, error) {
	if w.ID == "" {
		w.ID = l.newID()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = l.now()
	}
	if err := ValidateWallet(w); err != nil {
		return Wallet{}, err
	}
	next := l.state.clone()
	if next.wallet(w.ID) >= 0 {
		return Wallet{}, WithMessage(ErrDuplicateWallet, fmt.Sprintf("wallet %q already exists", w.ID))
	}
	if n := l.references(w.ID); n > 0 {
		return Wallet{}, WithMessage(ErrWalletInUse, fmt.Sprintf("wallet id %q is referenced by %d transaction(s)", w.ID, n))
	}
	next.Wallets = append(next.Wallets, w.clone())
	return w, l.commit(next)
}

// UpdateWallet replaces every mutable field of the wallet with w's,
// including its balance. createdAt is kept.
//
// A balance change is taken as a manual correction: no transaction records
// it, see BalanceAdjustment for that.
func (l *Ledger) UpdateWallet(w Wallet) error {
	next := l.state.clone()
	i := next.wallet(w.ID)
	if i < 0 {
		return WithMessage(ErrWalletNotFound, fmt.Sprintf("wallet %q not found", w.ID))
	}
	w.CreatedAt = next.Wallets[i].CreatedAt
	if err := ValidateWallet(w); err != nil {
		return err
	}
	next.Wallets[i] = w.clone()
	return l.commit(next)
}

// DeleteWallet removes a wallet that no transaction references.
// Deleting an unknown wallet does nothing.
func (l *Ledger) DeleteWallet(id string) error {
	if l.state.wallet(id) < 0 {
		return nil
	}
	if n := l.references(id); n > 0 {
		return WithMessage(ErrWalletInUse, fmt.Sprintf("wallet %q is used by %d transaction(s)", id, n))
	}
	next := l.state.clone()
	next.Wallets = slices.DeleteFunc(next.Wallets, func(w Wallet) bool { return w.ID == id })
	return l.commit(next)
}

// references counts the transactions made on a wallet.
func (l *Ledger) references(walletID string) int {
	n := 0
	for _, tx := range l.Transactions() {
		if tx.WalletID == walletID {
			n++
		}
	}
	return n
}

// AddCategory adds a category and returns it as stored. A missing id is generated.
func (l *Ledger) AddCategory(c Category) (Category, error) {
	if c.ID == "" {
		c.ID = l.newID()
	}
	if err := ValidateCategory(c); err != nil {
		return Category{}, err
	}
	next := l.state.clone()
	for _, existing := range next.Categories {
		if existing.ID == c.ID || existing.Value == c.Value {
			return Category{}, WithMessage(ErrDuplicateCategory, fmt.Sprintf("category %q already exists", c.Value))
		}
	}
	next.Categories = append(next.Categories, c)
	return c, l.commit(next)
}

// UpdateCategory replaces the category having c's id. Whether it is a
// default category cannot change.
//
// Transactions reference categories by value: renaming the value leaves
// them pointing to the former one.
func (l *Ledger) UpdateCategory(c Category) error {
	next := l.state.clone()
	i := slices.IndexFunc(next.Categories, func(x Category) bool { return x.ID == c.ID })
	if i < 0 {
		return WithMessage(ErrCategoryNotFound, fmt.Sprintf("category %q not found", c.ID))
	}
	if err := ValidateCategory(c); err != nil {
		return err
	}
	for j, existing := range next.Categories {
		if j != i && existing.Value == c.Value {
			return WithMessage(ErrDuplicateCategory, fmt.Sprintf("category %q already exists", c.Value))
		}
	}
	c.IsDefault = next.Categories[i].IsDefault
	next.Categories[i] = c
	return l.commit(next)
}

// DeleteCategory removes a category. Default categories cannot be deleted,
// deleting an unknown category does nothing. Transactions referencing it
// are left unchanged.
func (l *Ledger) DeleteCategory(id string) error {
	i := slices.IndexFunc(l.state.Categories, func(c Category) bool { return c.ID == id })
	if i < 0 {
		return nil
	}
	if l.state.Categories[i].IsDefault {
		return WithMessage(ErrDefaultCategory, fmt.Sprintf("category %q is a default category", l.state.Categories[i].Value))
	}
	next := l.state.clone()
	next.Categories = slices.Delete(next.Categories, i, i+1)
	return l.commit(next)
}

// Transfer moves an amount between two wallets and returns the recorded transfer.
//
// The source wallet must hold at least the amount. The transfer is recorded
// together with a settled expense "transfer-out-<id>" on the source wallet
// and a settled income "transfer-in-<id>" on the destination, both sharing
// the transfer id. A missing id is generated, a missing date is today.
func (l *Ledger) Transfer(t WalletTransfer) (WalletTransfer, error) {
	now := l.now()
	if t.ID == "" {
		t.ID = l.newID()
	}
	if t.Date.IsZero() {
		t.Date = l.Today()
	}
	t.CreatedAt = now
	if err := ValidateTransfer(t); err != nil {
		return WalletTransfer{}, err
	}

	next := l.state.clone()
	fi, ti := next.wallet(t.FromWalletID), next.wallet(t.ToWalletID)
	if fi < 0 || ti < 0 {
		missing := t.FromWalletID
		if fi >= 0 {
			missing = t.ToWalletID
		}
		return WalletTransfer{}, WithMessage(ErrUnknownWallet, fmt.Sprintf("wallet %q does not exist", missing))
	}
	from, to := next.Wallets[fi], next.Wallets[ti]
	if from.Balance.LessThan(t.Amount) {
		return WalletTransfer{}, WithMessage(ErrInsufficientBalance,
			fmt.Sprintf("wallet %q holds %s, cannot transfer %s", from.Name, from.Balance.Format(l.currency), t.Amount.Format(l.currency)))
	}

	out := transferLeg(t, Expense, "transfer-out-", "Transfer to "+to.Name, from.ID, now)
	in := transferLeg(t, Income, "transfer-in-", "Transfer from "+from.Name, to.ID, now)
	for _, tx := range []Transaction{out, in} {
		if next.inUse(tx.ID) {
			return WalletTransfer{}, WithMessage(ErrDuplicateID, fmt.Sprintf("transaction id %q already in use", tx.ID))
		}
	}
	next.Transfers = append(next.Transfers, t)
	next.Expenses = append(next.Expenses, out)
	next.Incomes = append(next.Incomes, in)
	next.Wallets = ApplyDeltas(next.Wallets,
		Delta{WalletID: out.WalletID, Amount: EffectOf(out)},
		Delta{WalletID: in.WalletID, Amount: EffectOf(in)},
	)
	return t, l.commit(next)
}

func transferLeg(t WalletTransfer, typ TransactionType, prefix, name, walletID string, now time.Time) Transaction {
	desc := t.Description
	if desc == "" {
		desc = name
	}
	at := now
	return Transaction{
		ID:            prefix + t.ID,
		Type:          typ,
		Name:          name,
		Value:         t.Amount,
		Date:          t.Date,
		Category:      TransferCategory,
		WalletID:      walletID,
		Description:   desc,
		IsEffectuated: true,
		EffectuatedAt: &at,
		TransferID:    t.ID,
		CreatedAt:     now,
	}
}
