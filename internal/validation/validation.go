// Package validation turns raw form text into typed values. Each parser
// returns either a value or an *apperror.ValidationError naming the field.
package validation

import (
	"strconv"
	"strings"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/shopspring/decimal"
)

// Required trims s and rejects an empty result.
func Required(field, s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", apperror.Validation(field, "is required")
	}
	return v, nil
}

// Optional trims s; blank input maps to nil.
func Optional(s string) *string {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	return &v
}

// Money parses a non-negative decimal amount.
func Money(field, s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return decimal.Zero, apperror.Validation(field, "is required")
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, apperror.Validation(field, "must be a number")
	}
	if err := NonNegative(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func NonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return apperror.Validation(field, "must not be negative")
	}
	return nil
}

// Quantity parses a non-negative integer. Blank input is zero.
func Quantity(field, s string) (int, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperror.Validation(field, "must be a whole number")
	}
	if n < 0 {
		return 0, apperror.Validation(field, "must not be negative")
	}
	return n, nil
}

// ID parses a positive record id.
func ID(field, s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, apperror.Validation(field, "must be a positive id")
	}
	return n, nil
}
