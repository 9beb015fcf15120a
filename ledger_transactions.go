package fintrack

import (
	"fmt"
	"slices"
	"time"
)

// AddTransaction adds a transaction, expanded into all its instances when it
// is a recurring template, and returns the instances actually stored.
//
// A missing id is generated, a missing date is today and createdAt is now.
// The wallet must exist. Settled instances change its balance.
func (l *Ledger) AddTransaction(tx Transaction) ([]Transaction, error) {
	now := l.now()
	if tx.ID == "" {
		tx.ID = l.newID()
	}
	if tx.Date.IsZero() {
		tx.Date = l.Today()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx = settle(tx, tx.IsEffectuated, tx.EffectuatedAt, now)
	if err := ValidateTransaction(tx); err != nil {
		return nil, err
	}
	if l.state.wallet(tx.WalletID) < 0 {
		return nil, WithMessage(ErrWalletNotFound, fmt.Sprintf("wallet %q not found", tx.WalletID))
	}

	instances := Expand(tx)
	next := l.state.clone()
	coll := next.collection(tx.Type)
	for _, inst := range instances {
		if next.inUse(inst.ID) {
			return nil, WithMessage(ErrDuplicateID, fmt.Sprintf("transaction id %q already in use", inst.ID))
		}
		*coll = append(*coll, inst)
		next.Wallets, _ = ApplyDelta(next.Wallets, inst.WalletID, EffectOf(inst))
	}
	if err := l.commit(next); err != nil {
		return instances, err
	}
	return instances, nil
}

// UpdateTransaction replaces the stored transaction having tx's id.
//
// The type of a transaction cannot change. createdAt is kept, and so is a
// missing date. With updateAll, every member of the stored transaction's
// recurrence group receives the submitted fields, except those identifying
// it within the group: id, date, recurrence settings, createdAt and
// transferId. The wallet must exist. Balances are reconciled member by member.
func (l *Ledger) UpdateTransaction(tx Transaction, updateAll bool) error {
	next := l.state.clone()
	coll := next.collection(tx.Type)
	if coll == nil {
		return WithMessage(ErrInvalidTransaction, fmt.Sprintf("invalid transaction type %q", tx.Type))
	}
	i := indexOf(*coll, tx.ID)
	if i < 0 {
		if _, t, ok := next.find(tx.ID); ok {
			return WithMessage(ErrTypeChange, fmt.Sprintf("transaction %q is an %s, it cannot become an %s", tx.ID, t, tx.Type))
		}
		return WithMessage(ErrTransactionNotFound, fmt.Sprintf("transaction %q not found", tx.ID))
	}
	stored := (*coll)[i]
	if tx.Date.IsZero() {
		tx.Date = stored.Date
	}
	tx.CreatedAt = stored.CreatedAt
	if err := ValidateTransaction(tx); err != nil {
		return err
	}
	if next.wallet(tx.WalletID) < 0 {
		return WithMessage(ErrWalletNotFound, fmt.Sprintf("wallet %q not found", tx.WalletID))
	}

	now := l.now()
	if !updateAll || !inGroup(stored) {
		updated := settleFrom(tx, stored, now)
		(*coll)[i] = updated
		next.Wallets = ApplyDeltas(next.Wallets, Reconcile(stored, updated)...)
		return l.commit(next)
	}

	group := GroupIDOf(stored)
	for j, member := range *coll {
		if !IsMemberOf(member, group) {
			continue
		}
		updated := tx
		updated.ID = member.ID
		updated.Date = member.Date
		updated.IsRecurring = member.IsRecurring
		updated.RecurrenceType = member.RecurrenceType
		updated.RecurrenceCount = member.RecurrenceCount
		updated.IsPartOfRecurrence = member.IsPartOfRecurrence
		updated.RecurrenceGroupID = member.RecurrenceGroupID
		updated.CreatedAt = member.CreatedAt
		updated.TransferID = member.TransferID
		updated.EffectuatedAt = member.EffectuatedAt
		updated = settleFrom(updated, member, now)
		(*coll)[j] = updated
		next.Wallets = ApplyDeltas(next.Wallets, Reconcile(member, updated)...)
	}
	return l.commit(next)
}

// DeleteTransaction removes a transaction, reversing its effect if it was
// settled. Deleting an unknown id does nothing.
//
// With deleteAll, and when the transaction takes part in a recurrence, every
// member of its group is removed, each settled member reversed individually.
func (l *Ledger) DeleteTransaction(id string, deleteAll bool) error {
	stored, _, ok := l.state.find(id)
	if !ok {
		return nil
	}
	match := func(tx Transaction) bool { return tx.ID == id }
	if deleteAll && inGroup(stored) {
		group := GroupIDOf(stored)
		match = func(tx Transaction) bool { return IsMemberOf(tx, group) }
	}

	next := l.state.clone()
	for _, coll := range []*[]Transaction{&next.Incomes, &next.Expenses} {
		for _, tx := range *coll {
			if match(tx) {
				next.Wallets, _ = ApplyDelta(next.Wallets, tx.WalletID, EffectOf(tx).Neg())
			}
		}
		*coll = slices.DeleteFunc(*coll, match)
	}
	return l.commit(next)
}

// EffectuateTransaction settles or unsettles a transaction, changing its
// wallet balance accordingly. Setting the current status again does nothing.
//
// With updateAll, and when the transaction takes part in a recurrence, the
// same status is applied to every member of its group.
func (l *Ledger) EffectuateTransaction(id string, effectuated bool, updateAll bool) error {
	stored, _, ok := l.state.find(id)
	if !ok {
		return WithMessage(ErrTransactionNotFound, fmt.Sprintf("transaction %q not found", id))
	}
	match := func(tx Transaction) bool { return tx.ID == id }
	if updateAll && inGroup(stored) {
		group := GroupIDOf(stored)
		match = func(tx Transaction) bool { return IsMemberOf(tx, group) }
	}

	now := l.now()
	next := l.state.clone()
	changed := false
	for _, coll := range []*[]Transaction{&next.Incomes, &next.Expenses} {
		for i, tx := range *coll {
			if !match(tx) || tx.IsEffectuated == effectuated {
				continue
			}
			updated := tx.effectuate(effectuated, now)
			(*coll)[i] = updated
			next.Wallets = ApplyDeltas(next.Wallets, Reconcile(tx, updated)...)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return l.commit(next)
}

// BalanceAdjustment returns a settled transaction bringing the wallet balance
// to target, ready to be added. ok is false when the balance is already there.
//
// It records a manual correction as a regular transaction, whereas
// UpdateWallet changes the balance without a trace.
func (l *Ledger) BalanceAdjustment(walletID string, target Money) (tx Transaction, ok bool, err error) {
	w, found := l.Wallet(walletID)
	if !found {
		return Transaction{}, false, WithMessage(ErrWalletNotFound, fmt.Sprintf("wallet %q not found", walletID))
	}
	diff := target.Sub(w.Balance)
	if diff.IsZero() {
		return Transaction{}, false, nil
	}
	tx = Transaction{
		Type:          Income,
		Name:          "Balance adjustment",
		Value:         diff,
		Date:          l.Today(),
		Category:      "other_income",
		WalletID:      walletID,
		Description:   fmt.Sprintf("Balance of %s set to %s", w.Name, target.Format(l.currency)),
		IsEffectuated: true,
	}
	if diff.IsNegative() {
		tx.Type = Expense
		tx.Value = diff.Neg()
		tx.Category = "other_expense"
	}
	return tx, true, nil
}

// settle returns tx with the given status, stamping at when none is set.
func settle(tx Transaction, on bool, at *time.Time, now time.Time) Transaction {
	if !on {
		tx.IsEffectuated = false
		tx.EffectuatedAt = nil
		return tx
	}
	tx.IsEffectuated = true
	if at == nil {
		at = &now
	}
	t := *at
	tx.EffectuatedAt = &t
	return tx
}

// settleFrom returns updated with a settlement timestamp consistent with the
// previous version of the transaction: kept while it stays settled, stamped
// now when it becomes settled, cleared when it is not.
func settleFrom(updated, previous Transaction, now time.Time) Transaction {
	at := updated.EffectuatedAt
	if at == nil && previous.IsEffectuated {
		at = previous.EffectuatedAt
	}
	return settle(updated, updated.IsEffectuated, at, now)
}
