// Package basen converts integers to and from digit sequences in an
// arbitrary base, most significant digit first. Besides the usual bases >= 2
// it gives defined results for base 1 (unary) and for bases below 1 (no
// digits at all).
package basen

import (
	"errors"
	"fmt"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
)

// MaxUnaryDigits bounds the length of a base-1 expansion.
const MaxUnaryDigits = 1 << 24

var (
	// ErrUnaryTooLong is returned when a base-1 expansion would need more
	// than MaxUnaryDigits digits.
	ErrUnaryTooLong = errors.New("unary expansion too long")
	// ErrNegative is returned when asked to expand a negative value.
	ErrNegative = errors.New("cannot expand a negative value")
)

// ToBase returns the digits of x in the given base.
//
//   - base >= 2: the positional expansion, with 0 encoded as [0].
//   - base == 1: x zero digits.
//   - base < 1: no digits.
func ToBase(x, base bigint.Int) ([]bigint.Int, error) {
	switch {
	case base.Sign() <= 0:
		return []bigint.Int{}, nil
	case x.Sign() < 0:
		return nil, fmt.Errorf("%w: %s", ErrNegative, x)
	case base.IsOne():
		return unary(x)
	}

	if x.IsZero() {
		return []bigint.Int{bigint.Zero()}, nil
	}

	var digits []bigint.Int
	for !x.IsZero() {
		var rem bigint.Int
		var err error
		if x, rem, err = x.DivMod(base); err != nil {
			return nil, err
		}
		digits = append(digits, rem)
	}

	// Digits were produced least significant first.
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return digits, nil
}

func unary(x bigint.Int) ([]bigint.Int, error) {
	if !x.IsUint64() || x.Uint64() > MaxUnaryDigits {
		return nil, fmt.Errorf("%w: %d bits exceeds the %d digit limit", ErrUnaryTooLong, x.BitLen(), MaxUnaryDigits)
	}
	// The zero Int is 0, so a fresh slice is already all zero digits.
	return make([]bigint.Int, x.Uint64()), nil
}

// FromBase evaluates digits, most significant first, in the given base. For
// bases below 1 the result is always 0.
func FromBase(digits []bigint.Int, base bigint.Int) bigint.Int {
	if base.Sign() <= 0 {
		return bigint.Zero()
	}
	acc := bigint.Zero()
	for _, d := range digits {
		acc = acc.Mul(base).Add(d)
	}
	return acc
}
