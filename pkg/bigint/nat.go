package bigint

import (
	"math/bits"
)

// nat is an unsigned magnitude stored as little-endian 32-bit limbs. A
// normalised nat has no high zero limbs; zero is the empty nat. Functions in
// this file never modify their arguments.
type nat []uint32

const (
	limbBits = 32
	limbBase = 1 << limbBits
	limbMask = limbBase - 1
)

func (x nat) norm() nat {
	i := len(x)
	for i > 0 && x[i-1] == 0 {
		i--
	}
	return x[:i]
}

func (x nat) clone() nat {
	if len(x) == 0 {
		return nil
	}
	z := make(nat, len(x))
	copy(z, x)
	return z
}

func natFromUint64(v uint64) nat {
	if v == 0 {
		return nil
	}
	if v < limbBase {
		return nat{uint32(v)}
	}
	return nat{uint32(v), uint32(v >> limbBits)}
}

func (x nat) cmp(y nat) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (x nat) add(y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(nat, len(x)+1)
	var c uint64
	for i := range x {
		s := uint64(x[i]) + c
		if i < len(y) {
			s += uint64(y[i])
		}
		z[i] = uint32(s)
		c = s >> limbBits
	}
	z[len(x)] = uint32(c)
	return z.norm()
}

// sub returns x - y and requires x >= y.
func (x nat) sub(y nat) nat {
	z := make(nat, len(x))
	var borrow uint64
	for i := range x {
		d := uint64(x[i]) - borrow
		if i < len(y) {
			d -= uint64(y[i])
		}
		z[i] = uint32(d)
		// d wrapped around if the subtraction borrowed
		borrow = (d >> limbBits) & 1
	}
	if borrow != 0 {
		panic("bigint: nat subtraction underflow")
	}
	return z.norm()
}

func (x nat) mul(y nat) nat {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	z := make(nat, len(x)+len(y))
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		var c uint64
		for j, yj := range y {
			t := uint64(xi)*uint64(yj) + uint64(z[i+j]) + c
			z[i+j] = uint32(t)
			c = t >> limbBits
		}
		z[i+len(y)] = uint32(c)
	}
	return z.norm()
}

// mulAddWord returns x*m + a.
func (x nat) mulAddWord(m, a uint32) nat {
	z := make(nat, len(x)+1)
	c := uint64(a)
	for i, xi := range x {
		t := uint64(xi)*uint64(m) + c
		z[i] = uint32(t)
		c = t >> limbBits
	}
	z[len(x)] = uint32(c)
	return z.norm()
}

// divWord returns x / y and x % y for a single-limb divisor y != 0.
func (x nat) divWord(y uint32) (nat, uint32) {
	q := make(nat, len(x))
	var r uint64
	for i := len(x) - 1; i >= 0; i-- {
		cur := r<<limbBits | uint64(x[i])
		q[i] = uint32(cur / uint64(y))
		r = cur % uint64(y)
	}
	return q.norm(), uint32(r)
}

// div returns u / v and u % v for v != 0, using Knuth's Algorithm D
// (TAOCP vol. 2, 4.3.1) in the form given by Hacker's Delight.
func (u nat) div(v nat) (q, r nat) {
	if len(v) == 0 {
		panic("bigint: division by zero")
	}
	if u.cmp(v) < 0 {
		return nil, u.clone()
	}
	if len(v) == 1 {
		qw, rw := u.divWord(v[0])
		return qw, natFromUint64(uint64(rw))
	}

	// Normalise so that the divisor's top limb has its high bit set.
	s := uint(bits.LeadingZeros32(v[len(v)-1]))
	n := len(v)
	m := len(u) - n

	vn := make(nat, n)
	for i := n - 1; i > 0; i-- {
		vn[i] = v[i]<<s | v[i-1]>>(limbBits-s)
	}
	vn[0] = v[0] << s

	un := make(nat, len(u)+1)
	un[len(u)] = u[len(u)-1] >> (limbBits - s)
	for i := len(u) - 1; i > 0; i-- {
		un[i] = u[i]<<s | u[i-1]>>(limbBits-s)
	}
	un[0] = u[0] << s

	q = make(nat, m+1)
	vTop := uint64(vn[n-1])
	vNext := uint64(vn[n-2])
	for j := m; j >= 0; j-- {
		num := uint64(un[j+n])<<limbBits | uint64(un[j+n-1])
		qhat := num / vTop
		rhat := num % vTop
		for qhat >= limbBase || qhat*vNext > (rhat<<limbBits|uint64(un[j+n-2])) {
			qhat--
			rhat += vTop
			if rhat >= limbBase {
				break
			}
		}

		// un[j:j+n+1] -= qhat * vn
		var k int64
		for i := 0; i < n; i++ {
			p := qhat * uint64(vn[i])
			t := int64(un[i+j]) - k - int64(p&limbMask)
			un[i+j] = uint32(t)
			k = int64(p>>limbBits) - (t >> limbBits)
		}
		t := int64(un[j+n]) - k
		un[j+n] = uint32(t)

		q[j] = uint32(qhat)
		if t < 0 {
			// qhat was one too large: add the divisor back.
			q[j]--
			var c uint64
			for i := 0; i < n; i++ {
				sum := uint64(un[i+j]) + uint64(vn[i]) + c
				un[i+j] = uint32(sum)
				c = sum >> limbBits
			}
			un[j+n] += uint32(c)
		}
	}

	r = make(nat, n)
	for i := 0; i < n-1; i++ {
		r[i] = un[i]>>s | un[i+1]<<(limbBits-s)
	}
	r[n-1] = un[n-1] >> s
	return q.norm(), r.norm()
}

func (x nat) bitLen() int {
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*limbBits + bits.Len32(x[len(x)-1])
}

func (x nat) bit(i uint) uint {
	w := i / limbBits
	if w >= uint(len(x)) {
		return 0
	}
	return uint(x[w]>>(i%limbBits)) & 1
}

func (x nat) shl(s uint) nat {
	if len(x) == 0 {
		return nil
	}
	words, sh := int(s/limbBits), s%limbBits
	z := make(nat, len(x)+words+1)
	for i := len(x) - 1; i >= 0; i-- {
		z[i+words+1] |= x[i] >> (limbBits - sh)
		z[i+words] = x[i] << sh
	}
	return z.norm()
}

func (x nat) shr(s uint) nat {
	words, sh := int(s/limbBits), s%limbBits
	if words >= len(x) {
		return nil
	}
	z := make(nat, len(x)-words)
	for i := range z {
		z[i] = x[i+words] >> sh
		if i+words+1 < len(x) {
			z[i] |= x[i+words+1] << (limbBits - sh)
		}
	}
	return z.norm()
}

// bytes returns the minimal big-endian encoding of x.
func (x nat) bytes() []byte {
	n := (x.bitLen() + 7) / 8
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[n-1-i] = byte(x[i/4] >> (8 * uint(i%4)))
	}
	return buf
}

func natFromBytes(buf []byte) nat {
	z := make(nat, (len(buf)+3)/4)
	for i := 0; i < len(buf); i++ {
		b := buf[len(buf)-1-i]
		z[i/4] |= uint32(b) << (8 * uint(i%4))
	}
	return z.norm()
}
