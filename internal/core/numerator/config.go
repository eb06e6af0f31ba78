// Package numerator provides domain contracts for sequential business codes.
package numerator

import (
	"fmt"
	"strings"
)

// DefaultPadWidth is the minimum width of the numeric part of a code.
const DefaultPadWidth = 3

// Config describes one code series.
type Config struct {
	// Prefix is prepended verbatim, separator included (e.g. "CL-SHI-").
	Prefix string

	// PadWidth is the minimum number width (default 3).
	PadWidth int
}

// DefaultConfig returns a series with the default pad width.
func DefaultConfig(prefix string) Config {
	return Config{Prefix: prefix, PadWidth: DefaultPadWidth}
}

// Format renders prefix + zero-padded number. Numbers wider than PadWidth
// are printed in full.
func (c Config) Format(n int64) string {
	pad := c.PadWidth
	if pad <= 0 {
		pad = DefaultPadWidth
	}
	return fmt.Sprintf("%s%0*d", c.Prefix, pad, n)
}

// ParseSuffix extracts the number following the prefix in code.
// Matching is case-insensitive. ok is false when code does not belong to the
// series or the suffix is not a plain number.
func (c Config) ParseSuffix(code string) (n int64, ok bool) {
	if len(code) <= len(c.Prefix) || !strings.EqualFold(code[:len(c.Prefix)], c.Prefix) {
		return 0, false
	}
	for _, r := range code[len(c.Prefix):] {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	if _, err := fmt.Sscanf(code[len(c.Prefix):], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
