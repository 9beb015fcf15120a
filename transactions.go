package fintrack

import (
	"encoding/json"
	"time"

	"github.com/etnz/fintrack/date"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
	// Transfer only tags the category of transfer-generated transactions, it
	// is never a valid transaction type.
	Transfer TransactionType = "transfer"
)

// TransferCategory is the category value of transactions generated by a transfer.
const TransferCategory = "transfer"

// RecurrenceType is the spacing between instances of a recurring transaction.
type RecurrenceType string

const (
	RecurDaily    RecurrenceType = "daily"
	RecurWeekly   RecurrenceType = "weekly"
	RecurBiweekly RecurrenceType = "biweekly"
	RecurMonthly  RecurrenceType = "monthly"
	RecurYearly   RecurrenceType = "yearly"
)

// RecurrenceTypes lists the valid recurrence types.
var RecurrenceTypes = []RecurrenceType{RecurDaily, RecurWeekly, RecurBiweekly, RecurMonthly, RecurYearly}

// Recurrence count bounds.
const (
	MinRecurrenceCount = 2
	MaxRecurrenceCount = 60
)

// Transaction is a planned or settled movement of money on one wallet.
type Transaction struct {
	ID          string          `json:"id" validate:"required"`
	Type        TransactionType `json:"type" validate:"oneof=income expense"`
	Name        string          `json:"name"`
	Value       Money           `json:"value" validate:"gte=0"`
	Date        date.Date       `json:"date"`
	Category    string          `json:"category"`
	WalletID    string          `json:"walletId" validate:"required"`
	Description string          `json:"description"`

	IsEffectuated bool       `json:"isEffectuated"`
	EffectuatedAt *time.Time `json:"effectuatedAt"`

	IsRecurring        bool           `json:"isRecurring"`
	RecurrenceType     RecurrenceType `json:"recurrenceType" validate:"omitempty,oneof=daily weekly biweekly monthly yearly"`
	RecurrenceCount    int            `json:"recurrenceCount" validate:"omitempty,min=2,max=60"`
	IsPartOfRecurrence bool           `json:"isPartOfRecurrence"`
	RecurrenceGroupID  string         `json:"recurrenceGroupId"`

	TransferID string    `json:"transferId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// GroupID returns the recurrence group of tx: its group id, or its own id
// when it is a template or a standalone transaction.
func (tx Transaction) GroupID() string { return GroupIDOf(tx) }

// IsTransfer reports whether tx was generated by a wallet transfer.
func (tx Transaction) IsTransfer() bool { return tx.TransferID != "" || tx.Category == TransferCategory }

// MarshalJSON writes the transaction with its fields in a stable order, omitting empty optional ones.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	var o jsonObject
	o.Field("id", tx.ID).
		Field("type", tx.Type).
		Field("name", tx.Name).
		Field("value", tx.Value).
		Field("date", tx.Date).
		Field("category", tx.Category).
		Field("walletId", tx.WalletID).
		OmitEmpty("description", tx.Description).
		Field("isEffectuated", tx.IsEffectuated).
		OmitEmpty("effectuatedAt", tx.EffectuatedAt).
		OmitEmpty("isRecurring", tx.IsRecurring).
		OmitEmpty("recurrenceType", tx.RecurrenceType).
		OmitEmpty("recurrenceCount", tx.RecurrenceCount).
		OmitEmpty("isPartOfRecurrence", tx.IsPartOfRecurrence).
		OmitEmpty("recurrenceGroupId", tx.RecurrenceGroupID).
		OmitEmpty("transferId", tx.TransferID).
		Field("createdAt", tx.CreatedAt)
	return o.MarshalJSON()
}

// UnmarshalJSON reads a transaction, tolerating "recurrenceCount" written as a string.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	aux := struct {
		*plain
		RecurrenceCount json.Number `json:"recurrenceCount"`
	}{plain: (*plain)(tx)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	tx.RecurrenceCount = 0
	if aux.RecurrenceCount != "" {
		n, err := aux.RecurrenceCount.Int64()
		if err != nil {
			return err
		}
		tx.RecurrenceCount = int(n)
	}
	return nil
}

// effectuate returns tx with its settlement flag set, stamping or clearing effectuatedAt.
func (tx Transaction) effectuate(on bool, now time.Time) Transaction {
	tx.IsEffectuated = on
	if on {
		t := now
		tx.EffectuatedAt = &t
	} else {
		tx.EffectuatedAt = nil
	}
	return tx
}

// clone returns a deep copy of tx.
func (tx Transaction) clone() Transaction {
	if tx.EffectuatedAt != nil {
		t := *tx.EffectuatedAt
		tx.EffectuatedAt = &t
	}
	return tx
}

// Wallet is an account holding a balance.
type Wallet struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	Balance     Money     `json:"balance"`
	Color       string    `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon        string    `json:"icon,omitempty"`
	IsDefault   bool      `json:"isDefault,omitempty"`
	Goal        *Goal     `json:"goal,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Goal is a target balance of a wallet.
type Goal struct {
	Value Money `json:"value" validate:"gt=0"`
}

func (w Wallet) clone() Wallet {
	if w.Goal != nil {
		g := *w.Goal
		w.Goal = &g
	}
	return w
}

// Category classifies transactions, referenced by its Value.
type Category struct {
	ID        string          `json:"id" validate:"required"`
	Type      TransactionType `json:"type" validate:"oneof=income expense"`
	Value     string          `json:"value" validate:"required"`
	Label     string          `json:"label" validate:"required"`
	Color     string          `json:"color,omitempty" validate:"omitempty,hexcolor"`
	IsDefault bool            `json:"isDefault,omitempty"`
}

// WalletTransfer records a movement of money between two wallets.
type WalletTransfer struct {
	ID           string    `json:"id" validate:"required"`
	FromWalletID string    `json:"fromWalletId" validate:"required"`
	ToWalletID   string    `json:"toWalletId" validate:"required"`
	Amount       Money     `json:"amount" validate:"gt=0"`
	Description  string    `json:"description,omitempty"`
	Date         date.Date `json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
}
