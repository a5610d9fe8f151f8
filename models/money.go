package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an external decimal amount cannot be
// parsed or carries more than two fractional digits.
var ErrInvalidAmount = errors.New("invalid decimal amount")

var centsFactor = decimal.NewFromInt(100)

// ParseCents converts an external decimal amount string ("37.42") to integer
// minor units. External amounts carry at most two fractional digits; anything
// finer-grained than a cent is rejected rather than silently rounded.
//
// All ledger math downstream is integer-only, so this is the single place
// where decimal representation enters the money path.
func ParseCents(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}

	cents := d.Mul(centsFactor)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: more than two fractional digits", ErrInvalidAmount)
	}

	return cents.IntPart(), nil
}

// FormatCents converts integer minor units back to the canonical external
// decimal string with exactly two fractional digits ("204600" → "2046.00").
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(centsFactor).StringFixed(2)
}
