package fintrack

import "slices"

// EffectOf returns the signed amount tx contributes to its wallet balance:
// its value when it is a settled income, minus its value when it is a
// settled expense, zero otherwise.
func EffectOf(tx Transaction) Money {
	if !tx.IsEffectuated {
		return Money{}
	}
	switch tx.Type {
	case Income:
		return tx.Value
	case Expense:
		return tx.Value.Neg()
	default:
		return Money{}
	}
}

// SettledBalance returns the sum of the effects of txs.
func SettledBalance(txs []Transaction) Money {
	var sum Money
	for _, tx := range txs {
		sum = sum.Add(EffectOf(tx))
	}
	return sum
}

// Delta is a signed balance change on a wallet.
type Delta struct {
	WalletID string
	Amount   Money
}

// ApplyDelta returns a copy of wallets where the wallet walletID has its
// balance changed by delta.
//
// Wallets are soft references: when walletID is unknown the copy is
// unchanged and found is false.
func ApplyDelta(wallets []Wallet, walletID string, delta Money) (next []Wallet, found bool) {
	next = slices.Clone(wallets)
	for i, w := range next {
		if w.ID == walletID {
			w.Balance = w.Balance.Add(delta)
			next[i] = w
			return next, true
		}
	}
	return next, false
}

// Reconcile returns the balance changes needed when old is replaced by new:
// the effect of old is reversed on its wallet, the effect of new applied on
// its own. Changes on a same wallet are merged and zero changes dropped.
func Reconcile(old, new Transaction) []Delta {
	before, after := EffectOf(old), EffectOf(new)
	if old.WalletID == new.WalletID {
		if net := after.Sub(before); !net.IsZero() {
			return []Delta{{WalletID: new.WalletID, Amount: net}}
		}
		return nil
	}
	var deltas []Delta
	if !before.IsZero() {
		deltas = append(deltas, Delta{WalletID: old.WalletID, Amount: before.Neg()})
	}
	if !after.IsZero() {
		deltas = append(deltas, Delta{WalletID: new.WalletID, Amount: after})
	}
	return deltas
}

// ApplyDeltas applies every delta in order, unknown wallets are skipped.
func ApplyDeltas(wallets []Wallet, deltas ...Delta) []Wallet {
	next := slices.Clone(wallets)
	for _, d := range deltas {
		next, _ = ApplyDelta(next, d.WalletID, d.Amount)
	}
	return next
}
