// Package money represents amounts as integer cents to keep catalog prices
// and bill totals free of floating-point drift.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Parse converts a decimal string such as "12.50" into cents.
// More than two fractional digits is an error.
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("money: parse %q: %w", s, err)
	}
	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("money: %q has more than two decimal places", s)
	}
	return cents.IntPart(), nil
}

// Format renders cents as a plain two-decimal string, e.g. 1250 -> "12.50".
func Format(cents int64) string {
	return decimal.NewFromInt(cents).Div(hundred).StringFixed(2)
}

// ApplyRateBPS multiplies cents by a basis-point rate, rounding half away
// from zero. Used for the flat tax rate.
func ApplyRateBPS(cents int64, bps int64) int64 {
	if bps == 0 || cents == 0 {
		return 0
	}
	return decimal.NewFromInt(cents).
		Mul(decimal.NewFromInt(bps)).
		Div(decimal.NewFromInt(10000)).
		Round(0).
		IntPart()
}
