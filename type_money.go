package fintrack

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used to display amounts when none is configured.
const DefaultCurrency = "BRL"

// Money represents a monetary value in major units.
//
// Amounts are exact decimals, a ledger holds a single currency which is only
// needed to display them.
type Money struct {
	value decimal.Decimal
}

// M returns the Money for value.
func M[T float64 | int | int64 | string | decimal.Decimal](value T) Money {
	switch v := any(value).(type) {
	case float64:
		return Money{decimal.NewFromFloat(v)}
	case int:
		return Money{decimal.NewFromInt(int64(v))}
	case int64:
		return Money{decimal.NewFromInt(v)}
	case string:
		return Money{decimal.RequireFromString(v)}
	case decimal.Decimal:
		return Money{v}
	}
	panic("unreachable")
}

// ParseMoney parses an amount typed by a user.
//
// Both "1234.56" and "1.234,56" are accepted, with or without a currency
// symbol: the rightmost separator is the decimal one. A lone comma is
// always a decimal separator.
func ParseMoney(s string) (Money, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		}
		return -1
	}, s)
	if clean == "" {
		return Money{}, fmt.Errorf("invalid amount %q", s)
	}
	dot, comma := strings.LastIndex(clean, "."), strings.LastIndex(clean, ",")
	switch {
	case comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case dot > comma && comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	}
	v, err := decimal.NewFromString(clean)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{v}, nil
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// String returns the plain decimal representation, with at least two decimals.
func (m Money) String() string {
	if m.value.Exponent() >= -2 {
		return m.value.StringFixed(2)
	}
	return m.value.String()
}

// Format returns the amount formatted in the given currency, like "R$1.234,56".
//
// Unknown currency codes are formatted with two decimals and the code as suffix.
func (m Money) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedFormat is like Format with an explicit sign, 0 is represented as "-".
func (m Money) SignedFormat(currency string) string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.Format(currency)
	}
	return m.Format(currency)
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Cmp(n Money) int                 { return m.value.Cmp(n.value) }
func (m Money) Neg() Money                      { return Money{m.value.Neg()} }
func (m Money) Abs() Money                      { return Money{m.value.Abs()} }
func (m Money) Add(n Money) Money               { return Money{m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{m.value.Sub(n.value)} }
func (m Money) MulInt(n int) Money              { return Money{m.value.Mul(decimal.NewFromInt(int64(n)))} }

// DivInt divides m in n parts, rounded to the cent.
func (m Money) DivInt(n int) Money {
	return Money{m.value.DivRound(decimal.NewFromInt(int64(n)), 2)}
}

// Ratio returns m/n as a percentage, 0 when n is zero.
func (m Money) Ratio(n Money) decimal.Decimal {
	if n.value.IsZero() {
		return decimal.Zero
	}
	return m.value.Div(n.value).Mul(decimal.NewFromInt(100))
}

// Sum returns the total of the amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MarshalJSON writes the amount as a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.value.String()), nil }

// UnmarshalJSON reads an amount from a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Money{}
		return nil
	}
	if err := m.value.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	return nil
}
