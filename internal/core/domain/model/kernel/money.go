package kernel

import (
	"database/sql/driver"
	"fmt"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. Unlike decimal.Decimal.String it keeps
// the scale it was written with, so "10.00" times 2 renders as "20.00".
//
// Money has no currency; the order carries one currency for all its lines.
type Money struct {
	d decimal.Decimal
}

// Zero is the additive identity with scale 0.
var Zero = Money{d: decimal.Zero}

// NewMoney parses a decimal string such as "10.00".
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return Money{d: d}, nil
}

// MustNewMoney is NewMoney for literals in tests and fixtures.
func MustNewMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + other. The result keeps the larger of the two scales.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

// MulQuantity multiplies by a whole quantity without changing scale.
func (m Money) MulQuantity(qty int) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(int64(qty)))}
}

// IsPositive reports whether m is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// String renders in plain notation with the value's own scale.
func (m Money) String() string {
	if exp := m.d.Exponent(); exp < 0 {
		return m.d.StringFixed(-exp)
	}
	return m.d.StringFixed(0)
}

// MarshalJSON encodes as a JSON string to keep clients away from floats.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts a JSON string or a bare JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return errs.NewValueIsRequiredError("amount")
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := NewMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value stores Money in a numeric column as text, which postgres parses exactly.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan reads numeric columns returned as string or []byte.
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("scan money: %w", err)
	}
	m.d = d
	return nil
}
