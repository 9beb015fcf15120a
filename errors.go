package fintrack

import "errors"

// Kind classifies ledger errors.
type Kind int

const (
	// Validation means the input is malformed and can never succeed as is.
	Validation Kind = iota + 1
	// Conflict means the input is well formed but clashes with the current state.
	Conflict
	// NotFound means the target of the operation does not exist.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is the error returned by every ledger operation.
type Error struct {
	Kind     Kind
	Code     string
	Message  string
	Internal error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *Error) Unwrap() error { return e.Internal }

// Is matches errors with the same code, and the kind sentinels against any
// error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code == "" {
		return t.Kind == e.Kind
	}
	return t.Code == e.Code
}

// Wrap creates a new Error with the same kind, code and message that wraps an internal error.
func Wrap(sentinel *Error, internal error) *Error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: sentinel.Message, Internal: internal}
}

// WithMessage creates a new Error with a custom message.
func WithMessage(sentinel *Error, message string) *Error {
	return &Error{Kind: sentinel.Kind, Code: sentinel.Code, Message: message, Internal: sentinel.Internal}
}

// KindOf returns the kind of err, or 0 if err is not a ledger error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Kind sentinels, errors.Is(err, ErrConflict) holds for every conflict.
var (
	ErrValidation = &Error{Kind: Validation, Message: "invalid input"}
	ErrConflict   = &Error{Kind: Conflict, Message: "conflict"}
	ErrNotFound   = &Error{Kind: NotFound, Message: "not found"}
)

// Transaction errors.
var (
	ErrInvalidTransaction  = &Error{Kind: Validation, Code: "INVALID_TRANSACTION", Message: "invalid transaction"}
	ErrTypeChange          = &Error{Kind: Validation, Code: "TYPE_CHANGE", Message: "transaction type cannot change"}
	ErrDuplicateID         = &Error{Kind: Conflict, Code: "DUPLICATE_ID", Message: "id already in use"}
	ErrTransactionNotFound = &Error{Kind: NotFound, Code: "TRANSACTION_NOT_FOUND", Message: "transaction not found"}
)

// Category errors.
var (
	ErrInvalidCategory   = &Error{Kind: Validation, Code: "INVALID_CATEGORY", Message: "invalid category"}
	ErrDuplicateCategory = &Error{Kind: Conflict, Code: "DUPLICATE_CATEGORY", Message: "category already exists"}
	ErrDefaultCategory   = &Error{Kind: Conflict, Code: "DEFAULT_CATEGORY", Message: "default categories cannot be deleted"}
	ErrCategoryNotFound  = &Error{Kind: NotFound, Code: "CATEGORY_NOT_FOUND", Message: "category not found"}
)

// Wallet errors.
var (
	ErrInvalidWallet   = &Error{Kind: Validation, Code: "INVALID_WALLET", Message: "invalid wallet"}
	ErrDuplicateWallet = &Error{Kind: Conflict, Code: "DUPLICATE_WALLET", Message: "wallet already exists"}
	ErrWalletInUse     = &Error{Kind: Conflict, Code: "WALLET_IN_USE", Message: "wallet is used by existing transactions"}
	ErrWalletNotFound  = &Error{Kind: NotFound, Code: "WALLET_NOT_FOUND", Message: "wallet not found"}
)

// Transfer errors.
var (
	ErrInvalidTransfer     = &Error{Kind: Validation, Code: "INVALID_TRANSFER", Message: "invalid transfer"}
	ErrInvalidAmount       = &Error{Kind: Validation, Code: "INVALID_AMOUNT", Message: "transfer amount must be positive"}
	ErrSameWalletTransfer  = &Error{Kind: Validation, Code: "SAME_WALLET_TRANSFER", Message: "cannot transfer to the same wallet"}
	ErrUnknownWallet       = &Error{Kind: Conflict, Code: "UNKNOWN_WALLET", Message: "transfer wallet does not exist"}
	ErrInsufficientBalance = &Error{Kind: Conflict, Code: "INSUFFICIENT_BALANCE", Message: "insufficient wallet balance"}
)

// Backup errors.
var (
	ErrInvalidBackup = &Error{Kind: Validation, Code: "INVALID_BACKUP", Message: "invalid backup"}
)

// Goal simulation errors.
var (
	ErrInvalidSimulation = &Error{Kind: Validation, Code: "INVALID_SIMULATION", Message: "invalid simulation"}
)
