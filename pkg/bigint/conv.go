package bigint

import (
	"fmt"
	"strconv"
	"strings"
)

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// Parse interprets s as an integer in the given base, with an optional
// leading sign. Base 0 selects the base from a "0x", "0o" or "0b" prefix and
// falls back to decimal; otherwise base must be between 2 and 36.
func Parse(s string, base int) (Int, error) {
	orig := s
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	if base == 0 {
		base = 10
		if len(s) > 2 && s[0] == '0' {
			switch s[1] {
			case 'x', 'X':
				base, s = 16, s[2:]
			case 'o', 'O':
				base, s = 8, s[2:]
			case 'b', 'B':
				base, s = 2, s[2:]
			}
		}
	}
	if base < 2 || base > len(digitChars) {
		return zero, fmt.Errorf("%w: base %d out of range", ErrSyntax, base)
	}
	if s == "" {
		return zero, fmt.Errorf("%w: %q", ErrSyntax, orig)
	}

	var abs nat
	for _, c := range strings.ToLower(s) {
		d := strings.IndexRune(digitChars, c)
		if d < 0 || d >= base {
			return zero, fmt.Errorf("%w: %q", ErrSyntax, orig)
		}
		abs = abs.mulAddWord(uint32(base), uint32(d))
	}
	return makeInt(neg, abs), nil
}

// MustParse is like Parse in base 0 but panics on error. It is intended for
// constants and tests.
func MustParse(s string) Int {
	x, err := Parse(s, 0)
	if err != nil {
		panic(err)
	}
	return x
}

// Text returns x formatted in the given base, 2 through 36.
func (x Int) Text(base int) string {
	if base < 2 || base > len(digitChars) {
		panic("bigint: invalid base " + strconv.Itoa(base))
	}
	if x.IsZero() {
		return "0"
	}

	// Peel off chunks of the largest power of base that fits in a limb, then
	// format each chunk with strconv.
	chunk, width := uint32(base), 1
	for uint64(chunk)*uint64(base) < limbBase {
		chunk *= uint32(base)
		width++
	}

	var parts []string
	rest := x.abs
	for len(rest) > 0 {
		var r uint32
		rest, r = rest.divWord(chunk)
		parts = append(parts, strconv.FormatUint(uint64(r), base))
	}

	var sb strings.Builder
	if x.neg {
		sb.WriteByte('-')
	}
	sb.WriteString(parts[len(parts)-1])
	for i := len(parts) - 2; i >= 0; i-- {
		sb.WriteString(strings.Repeat("0", width-len(parts[i])))
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// String returns the decimal representation of x.
func (x Int) String() string { return x.Text(10) }

// MarshalText implements encoding.TextMarshaler using the decimal form.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the same
// input as Parse with base 0.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(strings.TrimSpace(string(text)), 0)
	if err != nil {
		return err
	}
	*x = v
	return nil
}
