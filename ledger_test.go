package fintrack

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/etnz/fintrack/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestNewLedger(t *testing.T) {
	l := NewLedger()
	if got := len(l.Categories()); got != 15 {
		t.Errorf("len(Categories()) = %d, want 15", got)
	}
	if got := l.Wallets(); len(got) != 1 || got[0].ID != DefaultWalletID || !got[0].IsDefault {
		t.Errorf("Wallets() = %v, want the default wallet", got)
	}
	if len(l.Transactions()) != 0 || len(l.Transfers()) != 0 {
		t.Errorf("NewLedger() is not empty")
	}
}

// TestLedger_ExpenseLifecycle follows a settled expense through an edit, an
// unsettlement and a deletion.
func TestLedger_ExpenseLifecycle(t *testing.T) {
	l := newTestLedger(t)
	w, _ := l.Wallet(DefaultWalletID)
	w.Balance = M(1000)
	if err := l.UpdateWallet(w); err != nil {
		t.Fatalf("UpdateWallet() error = %v", err)
	}

	tx := expense("e1", 200, "2024-03-01")
	tx.IsEffectuated = true
	if _, err := l.AddTransaction(tx); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, 800)

	tx.Value = M(300)
	if err := l.UpdateTransaction(tx, false); err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, 700)

	if err := l.EffectuateTransaction("e1", false, false); err != nil {
		t.Fatalf("EffectuateTransaction() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, 1000)
	if got, _ := l.Transaction("e1"); got.EffectuatedAt != nil {
		t.Errorf("effectuatedAt = %v, want nil", got.EffectuatedAt)
	}

	if err := l.DeleteTransaction("e1", false); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, 1000)
}

func TestLedger_AddRecurring(t *testing.T) {
	l := newTestLedger(t)
	tx := income("inc", 500, "2024-01-01")
	tx.IsRecurring = true
	tx.RecurrenceType = RecurMonthly
	tx.RecurrenceCount = 3
	tx.IsEffectuated = true

	got, err := l.AddTransaction(tx)
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	if len(got) != 3 || len(l.Incomes()) != 3 {
		t.Fatalf("AddTransaction() stored %d instances, want 3", len(l.Incomes()))
	}
	want := []struct{ id, date string }{{"inc", "2024-01-01"}, {"inc-1", "2024-02-01"}, {"inc-2", "2024-03-01"}}
	for i, w := range want {
		stored, ok := l.Transaction(w.id)
		if !ok {
			t.Fatalf("instance %q not stored", w.id)
		}
		if stored.Date.String() != w.date || stored.RecurrenceGroupID != "inc" {
			t.Errorf("instance %d = %s on %s in %q, want %s on %s in %q", i, stored.ID, stored.Date, stored.RecurrenceGroupID, w.id, w.date, "inc")
		}
	}
	// only the first instance inherits the settlement.
	assertBalance(t, l, DefaultWalletID, 500)
	if got := len(l.Group("inc")); got != 3 {
		t.Errorf("len(Group()) = %d, want 3", got)
	}
}

func TestLedger_AddDefaults(t *testing.T) {
	l := newTestLedger(t)
	got, err := l.AddTransaction(Transaction{Type: Expense, Value: M(12), WalletID: DefaultWalletID, IsEffectuated: true})
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	tx := got[0]
	if tx.ID == "" {
		t.Errorf("id not generated")
	}
	if tx.Date != date.Of(testNow) {
		t.Errorf("date = %v, want %v", tx.Date, date.Of(testNow))
	}
	if !tx.CreatedAt.Equal(testNow) {
		t.Errorf("createdAt = %v, want %v", tx.CreatedAt, testNow)
	}
	if tx.EffectuatedAt == nil || !tx.EffectuatedAt.Equal(testNow) {
		t.Errorf("effectuatedAt = %v, want %v", tx.EffectuatedAt, testNow)
	}
}

func TestLedger_AddErrors(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want *Error
	}{
		{"negative value", Transaction{ID: "x", Type: Expense, Value: M(-1), WalletID: DefaultWalletID}, ErrInvalidTransaction},
		{"transfer type", Transaction{ID: "x", Type: Transfer, Value: M(1), WalletID: DefaultWalletID}, ErrInvalidTransaction},
		{"missing wallet", Transaction{ID: "x", Type: Expense, Value: M(1)}, ErrInvalidTransaction},
		{"count too large", Transaction{ID: "x", Type: Expense, Value: M(1), WalletID: DefaultWalletID, IsRecurring: true, RecurrenceType: RecurDaily, RecurrenceCount: 61}, ErrInvalidTransaction},
		{"unknown recurrence", Transaction{ID: "x", Type: Expense, Value: M(1), WalletID: DefaultWalletID, IsRecurring: true, RecurrenceType: "hourly", RecurrenceCount: 3}, ErrInvalidTransaction},
		{"duplicate id", expense("taken", 1, "2024-01-01"), ErrDuplicateID},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(t)
			if _, err := l.AddTransaction(expense("taken", 5, "2024-01-01")); err != nil {
				t.Fatalf("AddTransaction() error = %v", err)
			}
			before := l.Snapshot()
			_, err := l.AddTransaction(tc.tx)
			if !errors.Is(err, tc.want) {
				t.Fatalf("AddTransaction() error = %v, want %v", err, tc.want)
			}
			if diff := cmp.Diff(before, l.Snapshot(), cmpOpts...); diff != "" {
				t.Errorf("failed AddTransaction() changed the ledger (-before +after):\n%s", diff)
			}
		})
	}
}

func TestLedger_AddRecurringCollision(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.AddTransaction(expense("rent-2", 5, "2024-01-01")); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	tx := expense("rent", 900, "2024-01-05")
	tx.IsRecurring, tx.RecurrenceType, tx.RecurrenceCount = true, RecurMonthly, 4
	if _, err := l.AddTransaction(tx); !errors.Is(err, ErrConflict) {
		t.Fatalf("AddTransaction() error = %v, want a conflict", err)
	}
	if got := len(l.Expenses()); got != 1 {
		t.Errorf("len(Expenses()) = %d, want 1", got)
	}
}

func TestLedger_UpdateErrors(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.AddTransaction(expense("e", 5, "2024-01-01")); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}

	changed := income("e", 5, "2024-01-01")
	if err := l.UpdateTransaction(changed, false); !errors.Is(err, ErrTypeChange) || KindOf(err) != Validation {
		t.Errorf("UpdateTransaction() error = %v, want %v", err, ErrTypeChange)
	}
	if err := l.UpdateTransaction(expense("ghost", 1, "2024-01-01"), false); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTransaction() error = %v, want not found", err)
	}
}

func TestLedger_UpdateKeepsCreatedAt(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.AddTransaction(expense("e", 5, "2024-01-01")); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	tx := expense("e", 6, "2024-01-01")
	tx.Date = date.Date{}
	tx.CreatedAt = testNow.AddDate(1, 0, 0)
	if err := l.UpdateTransaction(tx, false); err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}
	got, _ := l.Transaction("e")
	if !got.CreatedAt.Equal(testNow) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, testNow)
	}
	if got.Date.String() != "2024-01-01" {
		t.Errorf("date = %v, want the stored date", got.Date)
	}
}

func TestLedger_UpdateAll(t *testing.T) {
	l := newTestLedger(t)
	tx := expense("sub", 10, "2024-01-15")
	tx.IsRecurring, tx.RecurrenceType, tx.RecurrenceCount = true, RecurMonthly, 3
	if _, err := l.AddTransaction(tx); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	if err := l.EffectuateTransaction("sub-1", true, false); err != nil {
		t.Fatalf("EffectuateTransaction() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, -10)

	// edit the second instance for the whole group: new value, moved to savings.
	edit, _ := l.Transaction("sub-1")
	edit.Value = M(15)
	edit.WalletID = "savings"
	edit.Name = "Streaming"
	if err := l.UpdateTransaction(edit, true); err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}

	wantDates := map[string]string{"sub": "2024-01-15", "sub-1": "2024-02-15", "sub-2": "2024-03-15"}
	for id, on := range wantDates {
		got, _ := l.Transaction(id)
		if got.Date.String() != on || got.Name != "Streaming" || !got.Value.Equal(M(15)) || got.WalletID != "savings" {
			t.Errorf("member %q = %+v, want moved to savings for 15 on %s", id, got, on)
		}
		if got.RecurrenceGroupID != "sub" {
			t.Errorf("member %q group = %q, want %q", id, got.RecurrenceGroupID, "sub")
		}
	}
	// edit was settled: every member is now settled on savings.
	assertBalance(t, l, DefaultWalletID, 0)
	assertBalance(t, l, "savings", -45)
	assertConsistent(t, l, nil)
}

func TestLedger_DeleteAll(t *testing.T) {
	l := newTestLedger(t)
	tx := income("pay", 100, "2024-01-01")
	tx.IsRecurring, tx.RecurrenceType, tx.RecurrenceCount = true, RecurWeekly, 4
	tx.IsEffectuated = true
	if _, err := l.AddTransaction(tx); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	if err := l.EffectuateTransaction("pay-2", true, false); err != nil {
		t.Fatalf("EffectuateTransaction() error = %v", err)
	}
	if _, err := l.AddTransaction(income("other", 7, "2024-01-01")); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, 200)

	if err := l.DeleteTransaction("pay-3", true); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if got := len(l.Incomes()); got != 1 {
		t.Errorf("len(Incomes()) = %d, want 1", got)
	}
	assertBalance(t, l, DefaultWalletID, 0)
}

func TestLedger_DeleteIdempotent(t *testing.T) {
	l := newTestLedger(t)
	tx := expense("e", 5, "2024-01-01")
	tx.IsEffectuated = true
	if _, err := l.AddTransaction(tx); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	for range 2 {
		if err := l.DeleteTransaction("e", false); err != nil {
			t.Fatalf("DeleteTransaction() error = %v", err)
		}
		assertBalance(t, l, DefaultWalletID, 0)
	}
	if err := l.DeleteTransaction("never", true); err != nil {
		t.Errorf("DeleteTransaction() of an unknown id error = %v, want nil", err)
	}
}

func TestLedger_Effectuate(t *testing.T) {
	l := newTestLedger(t)
	tx := expense("bill", 30, "2024-01-10")
	tx.IsRecurring, tx.RecurrenceType, tx.RecurrenceCount = true, RecurMonthly, 3
	if _, err := l.AddTransaction(tx); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}

	if err := l.EffectuateTransaction("ghost", true, false); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("EffectuateTransaction() error = %v, want %v", err, ErrTransactionNotFound)
	}

	if err := l.EffectuateTransaction("bill-1", true, false); err != nil {
		t.Fatalf("EffectuateTransaction() error = %v", err)
	}
	// settling twice changes nothing.
	if err := l.EffectuateTransaction("bill-1", true, false); err != nil {
		t.Fatalf("EffectuateTransaction() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, -30)

	if err := l.EffectuateTransaction("bill", true, true); err != nil {
		t.Fatalf("EffectuateTransaction() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, -90)
	for _, m := range l.Group("bill") {
		if !m.IsEffectuated || m.EffectuatedAt == nil {
			t.Errorf("member %q is not settled", m.ID)
		}
	}

	if err := l.EffectuateTransaction("bill-2", false, true); err != nil {
		t.Fatalf("EffectuateTransaction() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, 0)
}

// TestLedger_DeleteWalletInUse deletes a wallet once its last transaction moved away.
func TestLedger_DeleteWalletInUse(t *testing.T) {
	l := newTestLedger(t)
	tx := expense("e", 5, "2024-01-01")
	tx.WalletID = "savings"
	if _, err := l.AddTransaction(tx); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}

	err := l.DeleteWallet("savings")
	if !errors.Is(err, ErrWalletInUse) || KindOf(err) != Conflict {
		t.Fatalf("DeleteWallet() error = %v, want %v", err, ErrWalletInUse)
	}
	if _, ok := l.Wallet("savings"); !ok {
		t.Fatalf("DeleteWallet() removed a wallet in use")
	}

	tx.WalletID = DefaultWalletID
	if err := l.UpdateTransaction(tx, false); err != nil {
		t.Fatalf("UpdateTransaction() error = %v", err)
	}
	if err := l.DeleteWallet("savings"); err != nil {
		t.Fatalf("DeleteWallet() error = %v", err)
	}
	if _, ok := l.Wallet("savings"); ok {
		t.Errorf("wallet still exists after DeleteWallet()")
	}
	if err := l.DeleteWallet("savings"); err != nil {
		t.Errorf("DeleteWallet() of an unknown wallet error = %v, want nil", err)
	}
}

// TestLedger_UnknownWallet refuses transactions on a wallet that does not
// exist, and a wallet whose id is already used by imported transactions.
func TestLedger_UnknownWallet(t *testing.T) {
	l := newTestLedger(t)
	tx := expense("e", 100, "2024-01-01")
	tx.IsEffectuated = true
	tx.WalletID = "ghost"
	if _, err := l.AddTransaction(tx); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("AddTransaction() error = %v, want %v", err, ErrWalletNotFound)
	}
	if _, ok := l.Transaction("e"); ok {
		t.Errorf("AddTransaction() stored a transaction on an unknown wallet")
	}

	tx.WalletID = DefaultWalletID
	if _, err := l.AddTransaction(tx); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	moved := tx
	moved.WalletID = "ghost"
	for _, all := range []bool{false, true} {
		if err := l.UpdateTransaction(moved, all); !errors.Is(err, ErrWalletNotFound) {
			t.Errorf("UpdateTransaction(all=%v) error = %v, want %v", all, err, ErrWalletNotFound)
		}
	}
	assertBalance(t, l, DefaultWalletID, -100)

	// An import can leave settled transactions on a missing wallet.
	tx.WalletID = "ghost"
	if err := l.Import(Snapshot{Expenses: []Transaction{tx}}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	_, err := l.AddWallet(Wallet{ID: "ghost", Name: "Ghost"})
	if !errors.Is(err, ErrWalletInUse) || KindOf(err) != Conflict {
		t.Errorf("AddWallet() error = %v, want %v", err, ErrWalletInUse)
	}
	if _, ok := l.Wallet("ghost"); ok {
		t.Fatalf("AddWallet() created a wallet referenced by imported transactions")
	}
	if err := l.DeleteTransaction("e", false); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if _, err := l.AddWallet(Wallet{ID: "ghost", Name: "Ghost"}); err != nil {
		t.Fatalf("AddWallet() error = %v", err)
	}
	assertConsistent(t, l, nil)
}

func TestLedger_Wallets(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.AddWallet(Wallet{ID: "savings", Name: "Again"}); !errors.Is(err, ErrDuplicateWallet) {
		t.Errorf("AddWallet() error = %v, want %v", err, ErrDuplicateWallet)
	}
	if _, err := l.AddWallet(Wallet{Name: "Bad", Color: "blue"}); !errors.Is(err, ErrInvalidWallet) {
		t.Errorf("AddWallet() error = %v, want %v", err, ErrInvalidWallet)
	}
	if err := l.UpdateWallet(Wallet{ID: "ghost", Name: "Ghost"}); !errors.Is(err, ErrWalletNotFound) {
		t.Errorf("UpdateWallet() error = %v, want %v", err, ErrWalletNotFound)
	}

	w, err := l.AddWallet(Wallet{Name: "Trip", Balance: M(50), Goal: &Goal{Value: M(2000)}})
	if err != nil {
		t.Fatalf("AddWallet() error = %v", err)
	}
	if w.ID == "" || !w.CreatedAt.Equal(testNow) {
		t.Errorf("AddWallet() = %+v, want a generated id created now", w)
	}
	if got := l.WalletName(w.ID); got != "Trip" {
		t.Errorf("WalletName() = %q, want %q", got, "Trip")
	}
	if got := l.WalletName("ghost"); got != UnknownWallet {
		t.Errorf("WalletName() = %q, want %q", got, UnknownWallet)
	}

	// reads are copies.
	got, _ := l.Wallet(w.ID)
	got.Goal.Value = M(1)
	if again, _ := l.Wallet(w.ID); !again.Goal.Value.Equal(M(2000)) {
		t.Errorf("Wallet() returned shared state")
	}
}

func TestLedger_BalanceAdjustment(t *testing.T) {
	l := newTestLedger(t)
	tx, ok, err := l.BalanceAdjustment(DefaultWalletID, M(-40))
	if err != nil || !ok {
		t.Fatalf("BalanceAdjustment() = %v, %v", ok, err)
	}
	if tx.Type != Expense || !tx.Value.Equal(M(40)) || !tx.IsEffectuated {
		t.Errorf("BalanceAdjustment() = %+v, want a settled expense of 40", tx)
	}
	if _, err := l.AddTransaction(tx); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, -40)

	if _, ok, _ := l.BalanceAdjustment(DefaultWalletID, M(-40)); ok {
		t.Errorf("BalanceAdjustment() ok = true for the current balance")
	}
	if _, _, err := l.BalanceAdjustment("ghost", M(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("BalanceAdjustment() error = %v, want not found", err)
	}
}

func TestLedger_Categories(t *testing.T) {
	l := newTestLedger(t)
	c, err := l.AddCategory(Category{Type: Expense, Value: "pets", Label: "Pets", Color: "#abc"})
	if err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}
	if _, err := l.AddCategory(Category{Type: Expense, Value: "pets", Label: "Again"}); !errors.Is(err, ErrDuplicateCategory) {
		t.Errorf("AddCategory() error = %v, want %v", err, ErrDuplicateCategory)
	}
	if _, err := l.AddCategory(Category{Type: Transfer, Value: "x", Label: "X"}); !errors.Is(err, ErrValidation) {
		t.Errorf("AddCategory() error = %v, want a validation error", err)
	}

	c.Label = "Animals"
	c.IsDefault = true
	if err := l.UpdateCategory(c); err != nil {
		t.Fatalf("UpdateCategory() error = %v", err)
	}
	if got := l.CategoryLabel("pets"); got != "Animals" {
		t.Errorf("CategoryLabel() = %q, want %q", got, "Animals")
	}
	if got := l.CategoryLabel("nope"); got != "nope" {
		t.Errorf("CategoryLabel() = %q, want the raw value", got)
	}
	if err := l.UpdateCategory(Category{ID: "ghost", Type: Expense, Value: "g", Label: "G"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("UpdateCategory() error = %v, want %v", err, ErrCategoryNotFound)
	}

	if err := l.DeleteCategory("1"); !errors.Is(err, ErrDefaultCategory) {
		t.Errorf("DeleteCategory() error = %v, want %v", err, ErrDefaultCategory)
	}
	if err := l.DeleteCategory(c.ID); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}
	if _, ok := l.Category("pets"); ok {
		t.Errorf("category still exists after DeleteCategory()")
	}
	if err := l.DeleteCategory("ghost"); err != nil {
		t.Errorf("DeleteCategory() of an unknown category error = %v, want nil", err)
	}
}

func TestLedger_Transfer(t *testing.T) {
	l := newTestLedger(t)
	w, _ := l.Wallet(DefaultWalletID)
	w.Balance = M(100)
	if err := l.UpdateWallet(w); err != nil {
		t.Fatalf("UpdateWallet() error = %v", err)
	}

	tr, err := l.Transfer(WalletTransfer{FromWalletID: DefaultWalletID, ToWalletID: "savings", Amount: M(60)})
	if err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, 40)
	assertBalance(t, l, "savings", 60)

	out, ok := l.Transaction("transfer-out-" + tr.ID)
	if !ok || out.Type != Expense || out.WalletID != DefaultWalletID || out.TransferID != tr.ID || !out.IsEffectuated {
		t.Errorf("outgoing leg = %+v", out)
	}
	in, ok := l.Transaction("transfer-in-" + tr.ID)
	if !ok || in.Type != Income || in.WalletID != "savings" || in.Category != TransferCategory || in.Name != "Transfer from Main" {
		t.Errorf("incoming leg = %+v", in)
	}
	if got := l.Transfers(); len(got) != 1 || got[0].ID != tr.ID || !got[0].CreatedAt.Equal(testNow) {
		t.Errorf("Transfers() = %v", got)
	}

	// and back again.
	if _, err := l.Transfer(WalletTransfer{FromWalletID: "savings", ToWalletID: DefaultWalletID, Amount: M(60)}); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	assertBalance(t, l, DefaultWalletID, 100)
	assertBalance(t, l, "savings", 0)
	assertConsistent(t, l, map[string]Money{DefaultWalletID: M(100)})
}

// TestLedger_TransferLegs edits and deletes one leg of a transfer: only the
// wallet of that leg changes.
func TestLedger_TransferLegs(t *testing.T) {
	testCases := []struct {
		name          string
		leg           string
		change        func(l *Ledger, tx Transaction) error
		wantDefault   float64
		wantSavings   float64
		wantRemaining int
	}{
		{"delete incoming", "transfer-in-", func(l *Ledger, tx Transaction) error { return l.DeleteTransaction(tx.ID, true) }, 40, 0, 1},
		{"delete outgoing", "transfer-out-", func(l *Ledger, tx Transaction) error { return l.DeleteTransaction(tx.ID, true) }, 100, 60, 1},
		{"edit incoming value", "transfer-in-", func(l *Ledger, tx Transaction) error {
			tx.Value = M(50)
			return l.UpdateTransaction(tx, true)
		}, 40, 50, 2},
		{"edit outgoing value", "transfer-out-", func(l *Ledger, tx Transaction) error {
			tx.Value = M(70)
			return l.UpdateTransaction(tx, false)
		}, 30, 60, 2},
		{"unsettle incoming", "transfer-in-", func(l *Ledger, tx Transaction) error {
			return l.EffectuateTransaction(tx.ID, false, true)
		}, 40, 0, 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(t)
			w, _ := l.Wallet(DefaultWalletID)
			w.Balance = M(100)
			if err := l.UpdateWallet(w); err != nil {
				t.Fatalf("UpdateWallet() error = %v", err)
			}
			tr, err := l.Transfer(WalletTransfer{FromWalletID: DefaultWalletID, ToWalletID: "savings", Amount: M(60)})
			if err != nil {
				t.Fatalf("Transfer() error = %v", err)
			}
			tx, ok := l.Transaction(tc.leg + tr.ID)
			if !ok {
				t.Fatalf("leg %s%s not found", tc.leg, tr.ID)
			}

			if err := tc.change(l, tx); err != nil {
				t.Fatalf("change error = %v", err)
			}
			assertBalance(t, l, DefaultWalletID, tc.wantDefault)
			assertBalance(t, l, "savings", tc.wantSavings)
			if got := len(l.Transactions()); got != tc.wantRemaining {
				t.Errorf("len(Transactions()) = %d, want %d", got, tc.wantRemaining)
			}
			assertConsistent(t, l, map[string]Money{DefaultWalletID: M(100)})
		})
	}
}

func TestLedger_TransferErrors(t *testing.T) {
	testCases := []struct {
		name string
		tr   WalletTransfer
		want *Error
	}{
		{"zero amount", WalletTransfer{FromWalletID: DefaultWalletID, ToWalletID: "savings"}, ErrInvalidAmount},
		{"negative amount", WalletTransfer{FromWalletID: DefaultWalletID, ToWalletID: "savings", Amount: M(-1)}, ErrInvalidAmount},
		{"same wallet", WalletTransfer{FromWalletID: "savings", ToWalletID: "savings", Amount: M(1)}, ErrSameWalletTransfer},
		{"missing source", WalletTransfer{ToWalletID: "savings", Amount: M(1)}, ErrInvalidTransfer},
		{"unknown wallet", WalletTransfer{FromWalletID: DefaultWalletID, ToWalletID: "ghost", Amount: M(1)}, ErrUnknownWallet},
		{"insufficient", WalletTransfer{FromWalletID: DefaultWalletID, ToWalletID: "savings", Amount: M(10.01)}, ErrInsufficientBalance},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger(t)
			w, _ := l.Wallet(DefaultWalletID)
			w.Balance = M(10)
			if err := l.UpdateWallet(w); err != nil {
				t.Fatalf("UpdateWallet() error = %v", err)
			}
			before := l.Snapshot()
			_, err := l.Transfer(tc.tr)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Transfer() error = %v, want %v", err, tc.want)
			}
			if KindOf(err) != tc.want.Kind {
				t.Errorf("Transfer() error kind = %v, want %v", KindOf(err), tc.want.Kind)
			}
			if diff := cmp.Diff(before, l.Snapshot(), cmpOpts...); diff != "" {
				t.Errorf("failed Transfer() changed the ledger (-before +after):\n%s", diff)
			}
		})
	}
}

func TestLedger_ImportReset(t *testing.T) {
	l := newTestLedger(t)
	tx := income("i", 10, "2024-01-01")
	if err := l.Import(Snapshot{Incomes: []Transaction{tx}}); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	s := l.Snapshot()
	if len(s.Incomes) != 1 || len(s.Expenses) != 0 || len(s.Categories) != 15 || len(s.Wallets) != 1 || s.Transfers == nil {
		t.Errorf("Import() = %+v, want defaults for missing collections", s)
	}

	bad := Snapshot{Incomes: []Transaction{tx, expense("e", 1, "2024-01-01")}}
	if err := l.Import(bad); !errors.Is(err, ErrInvalidBackup) {
		t.Errorf("Import() error = %v, want %v", err, ErrInvalidBackup)
	}
	if diff := cmp.Diff(s, l.Snapshot(), cmpOpts...); diff != "" {
		t.Errorf("failed Import() changed the ledger (-before +after):\n%s", diff)
	}

	if err := l.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if len(l.Transactions()) != 0 || len(l.Wallets()) != 1 || len(l.Categories()) != 15 {
		t.Errorf("Reset() did not restore the defaults")
	}
}

func TestLedger_OnChange(t *testing.T) {
	var calls []Snapshot
	fail := errors.New("disk full")
	var hookErr error
	l := newTestLedger(t, OnChange(func(s Snapshot) error {
		calls = append(calls, s)
		return hookErr
	}))
	calls = nil

	if _, err := l.AddTransaction(expense("e", 1, "2024-01-01")); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	if len(calls) != 1 || len(calls[0].Expenses) != 1 {
		t.Fatalf("hook calls = %d, want 1 with the new state", len(calls))
	}
	// failed operations are not notified.
	if _, err := l.AddTransaction(expense("e", 1, "2024-01-01")); err == nil {
		t.Fatalf("AddTransaction() error = nil, want a conflict")
	}
	if len(calls) != 1 {
		t.Errorf("hook calls = %d, want 1", len(calls))
	}

	hookErr = fail
	err := l.DeleteTransaction("e", false)
	if !errors.Is(err, fail) {
		t.Errorf("DeleteTransaction() error = %v, want %v", err, fail)
	}
	if _, ok := l.Transaction("e"); ok {
		t.Errorf("a failing hook rolled the change back")
	}
}

func TestLedger_Restore(t *testing.T) {
	calls := 0
	l := newTestLedger(t, OnChange(func(Snapshot) error { calls++; return nil }))
	calls = 0

	s := Snapshot{Expenses: []Transaction{expense("e", 5, "2024-01-01")}}
	if err := l.Restore(s); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if calls != 0 {
		t.Errorf("hook calls = %d, want 0", calls)
	}
	if got := len(l.Expenses()); got != 1 {
		t.Errorf("len(Expenses()) = %d, want 1", got)
	}
	if got := len(l.Categories()); got != len(DefaultCategories()) {
		t.Errorf("len(Categories()) = %d, want the defaults", got)
	}

	bad := Snapshot{Incomes: []Transaction{expense("x", 1, "2024-01-01")}}
	if err := l.Restore(bad); !errors.Is(err, ErrInvalidBackup) {
		t.Errorf("Restore() error = %v, want %v", err, ErrInvalidBackup)
	}
	if _, ok := l.Transaction("e"); !ok {
		t.Errorf("a failed Restore changed the ledger")
	}
}

// TestLedger_RandomOperations checks the balance invariant after every step
// of random operation sequences.
func TestLedger_RandomOperations(t *testing.T) {
	for seed := range uint64(20) {
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			r := rand.New(rand.NewPCG(seed, 42))
			l := newTestLedger(t)
			opening := map[string]Money{DefaultWalletID: M(500)}
			w, _ := l.Wallet(DefaultWalletID)
			w.Balance = M(500)
			if err := l.UpdateWallet(w); err != nil {
				t.Fatalf("UpdateWallet() error = %v", err)
			}
			wallets := []string{DefaultWalletID, "savings"}
			pick := func() string {
				txs := l.Transactions()
				if len(txs) == 0 || r.IntN(10) == 0 {
					return "missing"
				}
				return txs[r.IntN(len(txs))].ID
			}

			for step := range 200 {
				switch r.IntN(6) {
				case 0, 1:
					tx := Transaction{
						Type:          []TransactionType{Income, Expense}[r.IntN(2)],
						Value:         M(decimal.New(int64(r.IntN(10000)), -2)),
						Date:          date.New(2024, 1, 1).Add(r.IntN(365)),
						WalletID:      wallets[r.IntN(len(wallets))],
						IsEffectuated: r.IntN(2) == 0,
					}
					if r.IntN(3) == 0 {
						tx.IsRecurring = true
						tx.RecurrenceType = RecurrenceTypes[r.IntN(len(RecurrenceTypes))]
						tx.RecurrenceCount = 2 + r.IntN(5)
					}
					if _, err := l.AddTransaction(tx); err != nil {
						t.Fatalf("step %d: AddTransaction() error = %v", step, err)
					}
				case 2:
					if tx, ok := l.Transaction(pick()); ok {
						tx.Value = tx.Value.Add(M(1))
						tx.WalletID = wallets[r.IntN(len(wallets))]
						tx.IsEffectuated = r.IntN(2) == 0
						if err := l.UpdateTransaction(tx, r.IntN(2) == 0); err != nil {
							t.Fatalf("step %d: UpdateTransaction() error = %v", step, err)
						}
					}
				case 3:
					_ = l.DeleteTransaction(pick(), r.IntN(2) == 0)
				case 4:
					_ = l.EffectuateTransaction(pick(), r.IntN(2) == 0, r.IntN(2) == 0)
				case 5:
					from, to := wallets[r.IntN(2)], wallets[r.IntN(2)]
					_, _ = l.Transfer(WalletTransfer{FromWalletID: from, ToWalletID: to, Amount: M(r.IntN(300))})
				}
				assertConsistent(t, l, opening)
				if t.Failed() {
					t.Fatalf("balance invariant broken at step %d", step)
				}
			}
		})
	}
}
