// Package core holds the expense data model, its validation rules, and the
// error taxonomy shared by the service and both presentation adapters.
//
// Monetary amounts are exact decimals throughout; floating point is never
// used for money.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount reports an amount string that could not be parsed.
var ErrInvalidAmount = fmt.Errorf("invalid amount")

// ParseAmount parses a monetary amount from its decimal string form, as
// submitted in form fields and query parameters. Both dot (12.34) and comma
// (12,34) decimal separators are accepted. The parsed value keeps its scale,
// so "10.005" stays three decimal places and is caught later by
// ValidateRules.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// AmountToCents converts a validated amount to integer cents for storage.
// Validation guarantees at most two decimal places, so the conversion is
// exact for stored records.
func AmountToCents(d decimal.Decimal) int64 {
	return d.Shift(2).IntPart()
}

// AmountFromCents is the inverse of AmountToCents.
func AmountFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
