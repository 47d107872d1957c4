// Package modular implements the modular arithmetic RSA is built on:
// square-and-multiply exponentiation, the extended Euclidean algorithm and
// modular inverses, all over bigint.Int.
package modular

import (
	"errors"
	"fmt"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
)

var (
	// ErrInvalidModulus is returned when the modulus is zero or negative.
	ErrInvalidModulus = errors.New("modulus must be positive")
	// ErrNegativeExponent is returned by ModPow for a negative exponent.
	ErrNegativeExponent = errors.New("exponent must not be negative")
	// ErrNoInverse is matched by every *NoInverseError.
	ErrNoInverse = errors.New("no modular inverse")
)

// NoInverseError reports that E has no inverse modulo Phi because they share
// the factor GCD.
type NoInverseError struct {
	E   bigint.Int
	Phi bigint.Int
	GCD bigint.Int
}

func (e *NoInverseError) Error() string {
	return fmt.Sprintf("no modular inverse of %s modulo %s: gcd is %s", e.E, e.Phi, e.GCD)
}

// Is makes errors.Is(err, ErrNoInverse) true for a *NoInverseError.
func (e *NoInverseError) Is(target error) bool {
	return target == ErrNoInverse
}

// ModPow returns base^exponent mod modulus in the range [0, modulus).
//
// The exponent is scanned from its most significant bit, squaring for every
// bit and multiplying by base for every set bit, with a reduction after each
// step so intermediate values stay below modulus^2.
func ModPow(base, exponent, modulus bigint.Int) (bigint.Int, error) {
	if modulus.Sign() <= 0 {
		return bigint.Zero(), fmt.Errorf("%w: got %s", ErrInvalidModulus, modulus)
	}
	if exponent.Sign() < 0 {
		return bigint.Zero(), fmt.Errorf("%w: got %s", ErrNegativeExponent, exponent)
	}
	if modulus.IsOne() {
		return bigint.Zero(), nil
	}

	b, err := base.Mod(modulus)
	if err != nil {
		return bigint.Zero(), err
	}

	result := bigint.One()
	for i := exponent.BitLen() - 1; i >= 0; i-- {
		if result, err = result.Mul(result).Mod(modulus); err != nil {
			return bigint.Zero(), err
		}
		if exponent.Bit(i) == 1 {
			if result, err = result.Mul(b).Mod(modulus); err != nil {
				return bigint.Zero(), err
			}
		}
	}
	return result, nil
}

// ExtendedGCD returns g = gcd(a, b) together with Bézout coefficients x and y
// such that a*x + b*y = g. g is never negative; gcd(0, 0) is 0.
func ExtendedGCD(a, b bigint.Int) (g, x, y bigint.Int) {
	oldR, r := a, b
	oldS, s := bigint.One(), bigint.Zero()
	oldT, t := bigint.Zero(), bigint.One()

	for !r.IsZero() {
		// r is non-zero so QuoRem cannot fail.
		q, rem, _ := oldR.QuoRem(r)
		oldR, r = r, rem
		oldS, s = s, oldS.Sub(q.Mul(s))
		oldT, t = t, oldT.Sub(q.Mul(t))
	}

	if oldR.Sign() < 0 {
		return oldR.Neg(), oldS.Neg(), oldT.Neg()
	}
	return oldR, oldS, oldT
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b bigint.Int) bigint.Int {
	g, _, _ := ExtendedGCD(a, b)
	return g
}

// ModInverse returns d in [0, phi) with e*d ≡ 1 (mod phi). It fails with a
// *NoInverseError when gcd(e, phi) != 1.
func ModInverse(e, phi bigint.Int) (bigint.Int, error) {
	if phi.Sign() <= 0 {
		return bigint.Zero(), fmt.Errorf("%w: got %s", ErrInvalidModulus, phi)
	}

	reduced, err := e.Mod(phi)
	if err != nil {
		return bigint.Zero(), err
	}
	g, x, _ := ExtendedGCD(reduced, phi)
	if !g.IsOne() {
		return bigint.Zero(), &NoInverseError{E: e, Phi: phi, GCD: g}
	}

	// The Bézout coefficient may be negative; bring it into [0, phi).
	return x.Mod(phi)
}
