package fintrack

import (
	"slices"
	"time"
)

// DefaultWalletID is the id of the wallet created on a fresh ledger.
const DefaultWalletID = "default"

var defaultCategories = []Category{
	{ID: "1", Type: Income, Value: "salary", Label: "Salary", Color: "#10b981", IsDefault: true},
	{ID: "2", Type: Income, Value: "freelance", Label: "Freelance", Color: "#3b82f6", IsDefault: true},
	{ID: "3", Type: Income, Value: "investments", Label: "Investments", Color: "#8b5cf6", IsDefault: true},
	{ID: "4", Type: Income, Value: "rental", Label: "Rental", Color: "#f59e0b", IsDefault: true},
	{ID: "5", Type: Income, Value: "other_income", Label: "Other income", Color: "#6b7280", IsDefault: true},
	{ID: "6", Type: Expense, Value: "housing", Label: "Housing", Color: "#ef4444", IsDefault: true},
	{ID: "7", Type: Expense, Value: "food", Label: "Food", Color: "#f97316", IsDefault: true},
	{ID: "8", Type: Expense, Value: "transportation", Label: "Transportation", Color: "#84cc16", IsDefault: true},
	{ID: "9", Type: Expense, Value: "utilities", Label: "Utilities", Color: "#06b6d4", IsDefault: true},
	{ID: "10", Type: Expense, Value: "entertainment", Label: "Entertainment", Color: "#8b5cf6", IsDefault: true},
	{ID: "11", Type: Expense, Value: "health", Label: "Health", Color: "#ec4899", IsDefault: true},
	{ID: "12", Type: Expense, Value: "education", Label: "Education", Color: "#0ea5e9", IsDefault: true},
	{ID: "13", Type: Expense, Value: "shopping", Label: "Shopping", Color: "#d946ef", IsDefault: true},
	{ID: "14", Type: Expense, Value: "debt", Label: "Debt", Color: "#dc2626", IsDefault: true},
	{ID: "15", Type: Expense, Value: "other_expense", Label: "Other expense", Color: "#6b7280", IsDefault: true},
}

// DefaultCategories returns the seed categories of a fresh ledger.
func DefaultCategories() []Category { return slices.Clone(defaultCategories) }

// DefaultWallets returns the seed wallets of a fresh ledger, created at now.
func DefaultWallets(now time.Time) []Wallet {
	return []Wallet{{
		ID:        DefaultWalletID,
		Name:      "Main",
		Color:     "#3b82f6",
		Icon:      "wallet",
		IsDefault: true,
		CreatedAt: now,
	}}
}
