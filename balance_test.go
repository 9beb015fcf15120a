package fintrack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEffectOf(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want Money
	}{
		{"pending income", Transaction{Type: Income, Value: M(10)}, M(0)},
		{"settled income", Transaction{Type: Income, Value: M(10), IsEffectuated: true}, M(10)},
		{"settled expense", Transaction{Type: Expense, Value: M(10), IsEffectuated: true}, M(-10)},
		{"pending expense", Transaction{Type: Expense, Value: M(10)}, M(0)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EffectOf(tc.tx); !got.Equal(tc.want) {
				t.Errorf("EffectOf() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSettledBalance(t *testing.T) {
	txs := []Transaction{
		{Type: Income, Value: M(100), IsEffectuated: true},
		{Type: Expense, Value: M(30), IsEffectuated: true},
		{Type: Expense, Value: M(500)},
	}
	if got := SettledBalance(txs); !got.Equal(M(70)) {
		t.Errorf("SettledBalance() = %v, want 70", got)
	}
}

func TestApplyDelta(t *testing.T) {
	wallets := []Wallet{{ID: "a", Balance: M(100)}, {ID: "b", Balance: M(5)}}

	next, found := ApplyDelta(wallets, "b", M(-7.5))
	if !found {
		t.Fatalf("ApplyDelta() found = false, want true")
	}
	if !next[1].Balance.Equal(M(-2.5)) || !next[0].Balance.Equal(M(100)) {
		t.Errorf("ApplyDelta() = %v, want a=100 b=-2.5", next)
	}
	if !wallets[1].Balance.Equal(M(5)) {
		t.Errorf("ApplyDelta() modified its input")
	}

	next, found = ApplyDelta(wallets, "ghost", M(1))
	if found {
		t.Errorf("ApplyDelta() found = true for an unknown wallet")
	}
	if len(next) != 2 || !next[0].Balance.Equal(M(100)) || !next[1].Balance.Equal(M(5)) {
		t.Errorf("ApplyDelta() = %v, want an unchanged copy", next)
	}
}

func TestReconcile(t *testing.T) {
	settled := func(typ TransactionType, wallet string, v float64) Transaction {
		return Transaction{Type: typ, WalletID: wallet, Value: M(v), IsEffectuated: true}
	}
	pending := func(typ TransactionType, wallet string, v float64) Transaction {
		return Transaction{Type: typ, WalletID: wallet, Value: M(v)}
	}
	testCases := []struct {
		name     string
		old, new Transaction
		want     []Delta
	}{
		{"value change", settled(Expense, "a", 200), settled(Expense, "a", 300), []Delta{{"a", M(-100)}}},
		{"pending to settled", pending(Income, "a", 50), settled(Income, "a", 50), []Delta{{"a", M(50)}}},
		{"settled to pending", settled(Income, "a", 50), pending(Income, "a", 50), []Delta{{"a", M(-50)}}},
		{"wallet move", settled(Expense, "a", 20), settled(Expense, "b", 30), []Delta{{"a", M(20)}, {"b", M(-30)}}},
		{"pending move", pending(Expense, "a", 20), pending(Expense, "b", 30), nil},
		{"no change", settled(Income, "a", 1), settled(Income, "a", 1), nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reconcile(tc.old, tc.new)
			if diff := cmp.Diff(tc.want, got, cmp.Comparer(Money.Equal)); diff != "" {
				t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
