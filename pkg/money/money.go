// Package money converts between decimal amounts at the API edge and the
// int64 minor units stored everywhere else.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrPrecision = errors.New("amount has more than two decimal places")

// ToMinor converts a decimal amount like 50.00 into minor units (5000).
// Amounts with more than two decimal places are rejected rather than rounded.
func ToMinor(d decimal.Decimal) (int64, error) {
	scaled := d.Shift(2)
	if !scaled.IsInteger() {
		return 0, ErrPrecision
	}
	return scaled.IntPart(), nil
}

// FromMinor converts minor units back into a two-decimal amount.
func FromMinor(n int64) decimal.Decimal {
	return decimal.New(n, -2)
}
