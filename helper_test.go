package fintrack

import (
	"fmt"
	"testing"
	"time"

	"github.com/etnz/fintrack/date"
	"github.com/google/go-cmp/cmp"
)

// cmpOpts compares ledger records by value.
var cmpOpts = []cmp.Option{cmp.Comparer(Money.Equal), cmp.AllowUnexported(date.Date{})}

// testNow is the fixed clock of test ledgers.
var testNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

// newTestLedger returns a ledger with a fixed clock and sequential ids
// "id1", "id2"..., plus a "savings" wallet next to the default one.
func newTestLedger(t *testing.T, opts ...Option) *Ledger {
	t.Helper()
	n := 0
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id%d", n) }),
	}
	l := NewLedger(append(base, opts...)...)
	if _, err := l.AddWallet(Wallet{ID: "savings", Name: "Savings"}); err != nil {
		t.Fatalf("AddWallet() error = %v", err)
	}
	return l
}

// balanceOf returns the balance of a wallet, failing the test if it does not exist.
func balanceOf(t *testing.T, l *Ledger, walletID string) Money {
	t.Helper()
	w, ok := l.Wallet(walletID)
	if !ok {
		t.Fatalf("wallet %q not found", walletID)
	}
	return w.Balance
}

// assertBalance checks the balance of a wallet.
func assertBalance(t *testing.T, l *Ledger, walletID string, want float64) {
	t.Helper()
	if got := balanceOf(t, l, walletID); !got.Equal(M(want)) {
		t.Errorf("balance of %q = %v, want %v", walletID, got, M(want))
	}
}

// assertConsistent checks that every wallet balance equals its opening
// balance plus the effect of its settled transactions.
func assertConsistent(t *testing.T, l *Ledger, opening map[string]Money) {
	t.Helper()
	sums := make(map[string]Money)
	for _, tx := range l.Transactions() {
		sums[tx.WalletID] = sums[tx.WalletID].Add(EffectOf(tx))
	}
	for _, w := range l.Wallets() {
		if want := opening[w.ID].Add(sums[w.ID]); !w.Balance.Equal(want) {
			t.Errorf("balance of %q = %v, want %v", w.ID, w.Balance, want)
		}
	}
}

func expense(id string, value float64, on string) Transaction {
	return Transaction{ID: id, Type: Expense, Name: id, Value: M(value), Date: date.MustParse(on), Category: "food", WalletID: DefaultWalletID}
}

func income(id string, value float64, on string) Transaction {
	return Transaction{ID: id, Type: Income, Name: id, Value: M(value), Date: date.MustParse(on), Category: "salary", WalletID: DefaultWalletID}
}
