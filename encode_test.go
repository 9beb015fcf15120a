package fintrack

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBackupRoundTrip(t *testing.T) {
	l := newTestLedger(t)
	tx := expense("rent", 900, "2024-01-05")
	tx.IsRecurring, tx.RecurrenceType, tx.RecurrenceCount = true, RecurMonthly, 2
	tx.IsEffectuated = true
	tx.Value = M("900.125")
	if _, err := l.AddTransaction(tx); err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	if _, err := l.Transfer(WalletTransfer{FromWalletID: DefaultWalletID, ToWalletID: "savings", Amount: M(0.5)}); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Transfer() error = %v, want %v", err, ErrInsufficientBalance)
	}
	if _, err := l.Transfer(WalletTransfer{FromWalletID: "savings", ToWalletID: DefaultWalletID, Amount: M(0.5)}); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Transfer() error = %v, want %v", err, ErrInsufficientBalance)
	}
	w, _ := l.Wallet("savings")
	w.Balance = M(100)
	w.Goal = &Goal{Value: M(1000)}
	if err := l.UpdateWallet(w); err != nil {
		t.Fatalf("UpdateWallet() error = %v", err)
	}
	if _, err := l.Transfer(WalletTransfer{FromWalletID: "savings", ToWalletID: DefaultWalletID, Amount: M(40), Description: "refill"}); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeBackup(&buf, l.Snapshot()); err != nil {
		t.Fatalf("EncodeBackup() error = %v", err)
	}
	if !strings.Contains(buf.String(), "{\n  \"incomes\": [\n    {") {
		t.Errorf("EncodeBackup() is not indented with two spaces:\n%s", buf.String())
	}

	got, err := DecodeBackup(&buf)
	if err != nil {
		t.Fatalf("DecodeBackup() error = %v", err)
	}
	if diff := cmp.Diff(l.Snapshot(), got, cmpOpts...); diff != "" {
		t.Errorf("backup round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBackup_Strict(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"not json", `{`},
		{"missing transfers", `{"incomes":[],"expenses":[],"categories":[],"wallets":[]}`},
		{"null wallets", `{"incomes":[],"expenses":[],"categories":[],"wallets":null,"transfers":[]}`},
		{"not a list", `{"incomes":{},"expenses":[],"categories":[],"wallets":[],"transfers":[]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBackup(strings.NewReader(tc.in))
			if !errors.Is(err, ErrInvalidBackup) || KindOf(err) != Validation {
				t.Errorf("DecodeBackup() error = %v, want %v", err, ErrInvalidBackup)
			}
		})
	}
}

func TestDecodeSnapshot_Lenient(t *testing.T) {
	in := `{"incomes":[{"id":"a","type":"income","name":"Pay","value":"10.50","date":"2024-02-01T00:00:00.000Z","category":"salary","walletId":"default","isEffectuated":false,"recurrenceCount":"3"}]}`
	s, err := DecodeSnapshot([]byte(in))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if len(s.Incomes) != 1 || s.Wallets != nil {
		t.Fatalf("DecodeSnapshot() = %+v", s)
	}
	tx := s.Incomes[0]
	if !tx.Value.Equal(M(10.5)) || tx.Date.String() != "2024-02-01" || tx.RecurrenceCount != 3 {
		t.Errorf("DecodeSnapshot() transaction = %+v", tx)
	}
}

func TestLedger_ImportBackup(t *testing.T) {
	l := newTestLedger(t)
	in := `{"incomes":[],"expenses":[],"categories":[],"wallets":[{"id":"w","name":"W","balance":12.3,"createdAt":"2024-01-01T00:00:00Z"}],"transfers":[]}`
	if err := l.ImportBackup(strings.NewReader(in)); err != nil {
		t.Fatalf("ImportBackup() error = %v", err)
	}
	if got := len(l.Categories()); got != 0 {
		t.Errorf("len(Categories()) = %d, want 0: an empty list is not a missing one", got)
	}
	assertBalance(t, l, "w", 12.3)

	if err := l.ImportBackup(strings.NewReader(`{"incomes":[]}`)); !errors.Is(err, ErrInvalidBackup) {
		t.Errorf("ImportBackup() error = %v, want %v", err, ErrInvalidBackup)
	}
	assertBalance(t, l, "w", 12.3)
}
