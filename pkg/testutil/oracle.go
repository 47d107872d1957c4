package testutil

import (
	"math/big"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
)

// ToBig converts x to a math/big value, used as a reference implementation
// when checking arithmetic.
func ToBig(x bigint.Int) *big.Int {
	b, ok := new(big.Int).SetString(x.String(), 10)
	if !ok {
		panic("testutil: cannot convert " + x.String())
	}
	return b
}

// FromBig is the inverse of ToBig.
func FromBig(b *big.Int) bigint.Int {
	return bigint.MustParse(b.String())
}
