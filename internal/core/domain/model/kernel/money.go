package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is the currency used for all monetary amounts in the
// engine. The platform settles partner shops in a single currency, so Money
// does not carry per-instance currency conversion logic.
var DefaultCurrency = currency.INR

// Money is a value object for monetary amounts. It wraps decimal.Decimal so
// that settlement arithmetic never loses cents to floating point rounding.
//
// The zero value represents zero money and is valid; negative amounts are
// rejected on construction.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount.
// Returns an error if the amount is negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount),
		)
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromFloat creates a Money from a float64 amount, rounding to two
// decimal places. Convenience constructor for values arriving from JSON.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount).Round(2))
}

// MustMoney creates a Money and panics on a negative amount.
// Intended for constants and test fixtures only.
func MustMoney(amount decimal.Decimal) Money {
	m, err := NewMoney(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a Money representing zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul returns the amount multiplied by a non-negative integer factor.
// Used to compute line item subtotals from unit prices.
func (m Money) Mul(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two Money values represent the same amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Float64 returns the amount as a float64 for serialization boundaries.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String formats the amount with its currency code, e.g. "INR 50".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", DefaultCurrency, m.amount)
}
