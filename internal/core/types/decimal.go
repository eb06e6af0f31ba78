// Package types provides common value types and parsing helpers.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// LineTotal returns qty × price.
func LineTotal(qty int64, price Money) Money {
	return price.Mul(decimal.NewFromInt(qty))
}

// ParseMoney parses a non-negative amount. Accepts "12.50", "12", " 3 ".
func ParseMoney(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q is negative", raw)
	}
	return d, nil
}

// ParseQuantity parses a non-negative whole number of units.
// "7.0" is accepted, "7.5" is not.
func ParseQuantity(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty quantity")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("quantity %q is negative", raw)
		}
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse quantity %q: %w", raw, err)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("quantity %q is not a whole number", raw)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("quantity %q is negative", raw)
	}
	return d.IntPart(), nil
}

// Number is a JSON value that may arrive as a number or as a numeric string.
// HTML forms post strings, scripts post numbers; both are accepted.
// A JSON null or a missing key leaves Set false.
type Number struct {
	Raw string
	Set bool
}

// NumberOf builds a set Number, mostly for tests and internal callers.
func NumberOf(raw string) Number {
	return Number{Raw: raw, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = Number{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*n = Number{Raw: str, Set: true}
		return nil
	}
	*n = Number{Raw: s, Set: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Raw)
}
