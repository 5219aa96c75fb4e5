package kernel

import (
	"fmt"

	"checkcore/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// MoneyPlaces is the persisted scale of every currency amount.
	MoneyPlaces int32 = 2

	// RatePlaces is the persisted scale of tax rates (0.082500).
	RatePlaces int32 = 6

	// QuantityPlaces allows fractional quantities produced by share splits.
	QuantityPlaces int32 = 4
)

// PaymentTolerance is the underpayment a check may carry and still close.
var PaymentTolerance = decimal.New(5, -2)

// RoundMoney rounds half away from zero to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(RatePlaces)
}

func RoundQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Round(QuantityPlaces)
}

// ParseMoney parses a decimal string such as "12.50" and rounds it to cents.
// Negative amounts are rejected; callers that accept credits model them explicitly.
func ParseMoney(paramName, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%q is not a decimal amount", s))
	}
	if err = ValidateNonNegativeMoney(paramName, d); err != nil {
		return decimal.Zero, err
	}
	return RoundMoney(d), nil
}

// ValidateNonNegativeMoney rejects amounts below zero.
func ValidateNonNegativeMoney(paramName string, d decimal.Decimal) error {
	if d.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is negative", d.String()))
	}
	return nil
}

// ValidatePositiveMoney rejects zero and negative amounts.
func ValidatePositiveMoney(paramName string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is not greater than 0", d.String()))
	}
	return nil
}

// ValidateRate accepts rates in [0, 1].
func ValidateRate(paramName string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return errs.NewValueIsOutOfRangeError(paramName, rate.String(), "0", "1")
	}
	return nil
}

// FormatMoney renders an amount with exactly two decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyPlaces)
}
