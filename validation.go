package fintrack

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks the struct tags of ledger records.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names, so that messages match the data files.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// amounts are compared as numbers by gte/gt.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Interface().(Money).value.InexactFloat64()
	}, Money{})
	return v
}

// check validates v and wraps failures into sentinel.
func check(sentinel *Error, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Wrap(sentinel, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return WithMessage(sentinel, fmt.Sprintf("%s: %s", sentinel.Message, strings.Join(msgs, "; ")))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must not be negative", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be positive", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s must be between %d and %d", fe.Field(), MinRecurrenceCount, MaxRecurrenceCount)
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// ValidateTransaction checks a transaction before it enters the ledger.
//
// A recurring transaction missing its type or count is valid, it is simply
// not expanded.
func ValidateTransaction(tx Transaction) error { return check(ErrInvalidTransaction, tx) }

// ValidateWallet checks a wallet before it enters the ledger.
func ValidateWallet(w Wallet) error { return check(ErrInvalidWallet, w) }

// ValidateCategory checks a category before it enters the ledger.
func ValidateCategory(c Category) error { return check(ErrInvalidCategory, c) }

// ValidateTransfer checks the shape of a transfer, independently of wallet balances.
func ValidateTransfer(t WalletTransfer) error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.FromWalletID == t.ToWalletID {
		return ErrSameWalletTransfer
	}
	return check(ErrInvalidTransfer, t)
}
