// Package textfmt renders keys and digit sequences the way the command line
// prints them, and parses digit sequences typed back in.
package textfmt

import (
	"fmt"
	"strings"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
)

// FormatDigits renders digits as a bracketed, comma separated list, for
// example "[72, 105]".
func FormatDigits(digits []bigint.Int) string {
	parts := make([]string, len(digits))
	for i, d := range digits {
		parts[i] = d.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatPair renders a key as "(a, b)".
func FormatPair(a, b bigint.Int) string {
	return fmt.Sprintf("(%s, %s)", a, b)
}

// ParseDigits is the inverse of FormatDigits. Brackets are optional and
// digits may be separated by commas, whitespace or both. Each digit accepts
// the syntax of bigint.Parse with base 0.
func ParseDigits(s string) ([]bigint.Int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	digits := make([]bigint.Int, 0, len(fields))
	for i, f := range fields {
		d, err := bigint.Parse(f, 0)
		if err != nil {
			return nil, fmt.Errorf("digit %d: %w", i, err)
		}
		digits = append(digits, d)
	}
	return digits, nil
}
