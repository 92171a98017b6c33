// Package amountutils normalizes the amount strings found in statement
// exports, which carry currency symbols, thousands separators and trailing
// markers like "CR" around the numeric value.
package amountutils

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// nonNumeric matches every rune that is not a digit, a decimal point or a
// minus sign. Stripping these is the whole of the amount cleanup: no
// currency-specific handling beyond it.
var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// Strip removes every non-numeric rune from a raw amount string.
// "1,234.56 CR" becomes "1234.56" and "$(45.50)" becomes "45.50".
func Strip(amountStr string) string {
	return nonNumeric.ReplaceAllString(amountStr, "")
}

// Parse strips a raw amount string and parses the remainder as a decimal.
// The second return value is false when the stripped string is empty or not
// a number.
func Parse(amountStr string) (decimal.Decimal, bool) {
	stripped := Strip(amountStr)
	if stripped == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(stripped)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// Format renders an amount with two decimal places for display and export.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
