// Package bigint implements arbitrary-precision signed integers with value
// semantics. An Int is never modified after construction: every operation
// returns a new Int, so values can be shared and compared freely.
//
// The package exists so that the RSA arithmetic in this repository is built
// from first principles; it deliberately does not use math/big.
package bigint

import (
	"errors"
	"math"
)

var (
	// ErrDivisionByZero is returned by QuoRem, DivMod and Mod for a zero divisor.
	ErrDivisionByZero = errors.New("bigint: division by zero")
	// ErrSyntax is returned by Parse for malformed input.
	ErrSyntax = errors.New("bigint: invalid syntax")
)

// Int is an arbitrary-precision integer. The zero value is 0.
type Int struct {
	neg bool
	abs nat
}

var (
	zero = Int{}
	one  = Int{abs: nat{1}}
)

// Zero returns 0.
func Zero() Int { return zero }

// One returns 1.
func One() Int { return one }

// NewInt returns an Int holding v.
func NewInt(v int64) Int {
	if v >= 0 {
		return Int{abs: natFromUint64(uint64(v))}
	}
	// -v overflows for math.MinInt64, so negate in unsigned arithmetic.
	return Int{neg: true, abs: natFromUint64(uint64(^v) + 1)}
}

// NewUint returns an Int holding v.
func NewUint(v uint64) Int {
	return Int{abs: natFromUint64(v)}
}

// FromBytes interprets buf as an unsigned big-endian integer.
func FromBytes(buf []byte) Int {
	return makeInt(false, natFromBytes(buf))
}

func makeInt(neg bool, abs nat) Int {
	if len(abs) == 0 {
		return zero
	}
	return Int{neg: neg, abs: abs}
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Int) Sign() int {
	switch {
	case len(x.abs) == 0:
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsZero reports whether x == 0.
func (x Int) IsZero() bool { return len(x.abs) == 0 }

// IsOne reports whether x == 1.
func (x Int) IsOne() bool { return !x.neg && len(x.abs) == 1 && x.abs[0] == 1 }

// IsOdd reports whether x is odd.
func (x Int) IsOdd() bool { return len(x.abs) > 0 && x.abs[0]&1 == 1 }

// Neg returns -x.
func (x Int) Neg() Int { return makeInt(!x.neg, x.abs) }

// Abs returns |x|.
func (x Int) Abs() Int { return makeInt(false, x.abs) }

// Cmp returns -1, 0 or +1 as x is less than, equal to or greater than y.
func (x Int) Cmp(y Int) int {
	switch {
	case x.neg == y.neg:
		r := x.abs.cmp(y.abs)
		if x.neg {
			r = -r
		}
		return r
	case x.neg:
		return -1
	}
	return 1
}

// CmpAbs compares |x| and |y|.
func (x Int) CmpAbs(y Int) int { return x.abs.cmp(y.abs) }

// Equal reports whether x == y.
func (x Int) Equal(y Int) bool { return x.Cmp(y) == 0 }

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if x.neg == y.neg {
		return makeInt(x.neg, x.abs.add(y.abs))
	}
	// Signs differ: subtract the smaller magnitude from the larger one.
	if x.abs.cmp(y.abs) >= 0 {
		return makeInt(x.neg, x.abs.sub(y.abs))
	}
	return makeInt(y.neg, y.abs.sub(x.abs))
}

// Sub returns x - y. The result is negative when y > x.
func (x Int) Sub(y Int) Int { return x.Add(y.Neg()) }

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	return makeInt(x.neg != y.neg, x.abs.mul(y.abs))
}

// QuoRem returns the truncated quotient and remainder of x / y, following
// Go's / and % operators: q is rounded toward zero and r has the sign of x.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	if y.IsZero() {
		return zero, zero, ErrDivisionByZero
	}
	qa, ra := x.abs.div(y.abs)
	return makeInt(x.neg != y.neg, qa), makeInt(x.neg, ra), nil
}

// DivMod returns the Euclidean quotient and modulus of x / y, such that
// x = q*y + m with 0 <= m < |y|.
func (x Int) DivMod(y Int) (q, m Int, err error) {
	q, m, err = x.QuoRem(y)
	if err != nil {
		return zero, zero, err
	}
	if m.neg {
		if y.neg {
			q = q.Add(one)
			m = m.Sub(y)
		} else {
			q = q.Sub(one)
			m = m.Add(y)
		}
	}
	return q, m, nil
}

// Mod returns x modulo y in the range [0, |y|).
func (x Int) Mod(y Int) (Int, error) {
	_, m, err := x.DivMod(y)
	return m, err
}

// BitLen returns the length of |x| in bits. The bit length of 0 is 0.
func (x Int) BitLen() int { return x.abs.bitLen() }

// Bit returns bit i of |x|.
func (x Int) Bit(i int) uint {
	if i < 0 {
		return 0
	}
	return x.abs.bit(uint(i))
}

// Lsh returns x << n, preserving the sign.
func (x Int) Lsh(n uint) Int { return makeInt(x.neg, x.abs.shl(n)) }

// Rsh returns x >> n applied to the magnitude, so negative values round
// toward zero.
func (x Int) Rsh(n uint) Int { return makeInt(x.neg, x.abs.shr(n)) }

// Bytes returns the minimal big-endian encoding of |x|, ceil(BitLen/8)
// bytes long. The encoding of 0 is empty.
func (x Int) Bytes() []byte { return x.abs.bytes() }

// FillBytes writes |x| big-endian into buf, zero-padding on the left, and
// returns buf. It panics if |x| does not fit.
func (x Int) FillBytes(buf []byte) []byte {
	b := x.abs.bytes()
	if len(b) > len(buf) {
		panic("bigint: buffer too small to fit value")
	}
	for i := range buf {
		buf[i] = 0
	}
	copy(buf[len(buf)-len(b):], b)
	return buf
}

// IsUint64 reports whether x can be represented as a uint64.
func (x Int) IsUint64() bool { return !x.neg && len(x.abs) <= 2 }

// Uint64 returns the low 64 bits of |x|.
func (x Int) Uint64() uint64 {
	var v uint64
	if len(x.abs) > 0 {
		v = uint64(x.abs[0])
	}
	if len(x.abs) > 1 {
		v |= uint64(x.abs[1]) << limbBits
	}
	return v
}

// IsInt64 reports whether x can be represented as an int64.
func (x Int) IsInt64() bool {
	if len(x.abs) > 2 {
		return false
	}
	u := x.Uint64()
	if x.neg {
		return u <= 1<<63
	}
	return u <= math.MaxInt64
}

// Int64 returns x as an int64. The result is undefined if !x.IsInt64().
func (x Int) Int64() int64 {
	u := x.Uint64()
	if x.neg {
		return int64(^u + 1)
	}
	return int64(u)
}
