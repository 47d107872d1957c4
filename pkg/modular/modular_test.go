package modular_test

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/modular"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/testutil"
)

func TestModPow(t *testing.T) {
	tests := []struct {
		name                    string
		base, exponent, modulus int64
		want                    int64
	}{
		{name: "small", base: 4, exponent: 13, modulus: 497, want: 445},
		{name: "zero exponent", base: 7, exponent: 0, modulus: 13, want: 1},
		{name: "zero exponent modulus one", base: 7, exponent: 0, modulus: 1, want: 0},
		{name: "modulus one", base: 123, exponent: 456, modulus: 1, want: 0},
		{name: "zero base", base: 0, exponent: 5, modulus: 7, want: 0},
		{name: "negative base is reduced first", base: -2, exponent: 3, modulus: 5, want: 2},
		{name: "base larger than modulus", base: 100, exponent: 2, modulus: 7, want: 4},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := modular.ModPow(bigint.NewInt(test.base), bigint.NewInt(test.exponent), bigint.NewInt(test.modulus))
			require.NoError(t, err)
			assert.Equal(t, test.want, got.Int64())
		})
	}
}

func TestModPowAgreesWithMathBig(t *testing.T) {
	r := testutil.SeededReader(7)
	buf := make([]byte, 48)
	for i := 0; i < 50; i++ {
		_, _ = r.Read(buf)
		base := new(big.Int).SetBytes(buf[:24])
		exponent := new(big.Int).SetBytes(buf[24:36])
		modulus := new(big.Int).SetBytes(buf[36:])
		if modulus.Sign() == 0 {
			continue
		}

		got, err := modular.ModPow(testutil.FromBig(base), testutil.FromBig(exponent), testutil.FromBig(modulus))
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).Exp(base, exponent, modulus).String(), got.String())
	}
}

func TestModPowRejectsInvalidArguments(t *testing.T) {
	_, err := modular.ModPow(bigint.NewInt(2), bigint.NewInt(3), bigint.Zero())
	assert.ErrorIs(t, err, modular.ErrInvalidModulus)

	_, err = modular.ModPow(bigint.NewInt(2), bigint.NewInt(3), bigint.NewInt(-5))
	assert.ErrorIs(t, err, modular.ErrInvalidModulus)

	_, err = modular.ModPow(bigint.NewInt(2), bigint.NewInt(-1), bigint.NewInt(5))
	assert.ErrorIs(t, err, modular.ErrNegativeExponent)
}

func TestExtendedGCD(t *testing.T) {
	tests := []struct {
		a, b, g int64
	}{
		{240, 46, 2},
		{46, 240, 2},
		{17, 5, 1},
		{0, 9, 9},
		{9, 0, 9},
		{0, 0, 0},
		{-12, 18, 6},
		{12, -18, 6},
		{-12, -18, 6},
	}
	for _, test := range tests {
		a, b := bigint.NewInt(test.a), bigint.NewInt(test.b)
		g, x, y := modular.ExtendedGCD(a, b)
		assert.Equal(t, test.g, g.Int64(), "gcd(%d, %d)", test.a, test.b)
		assert.True(t, a.Mul(x).Add(b.Mul(y)).Equal(g), "bezout identity for (%d, %d)", test.a, test.b)
		assert.True(t, modular.GCD(a, b).Equal(g))
	}
}

func TestModInverse(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		phi := bigint.NewInt(rng.Int64N(1_000_000) + 2)
		e := bigint.NewInt(rng.Int64N(10_000_000))
		if !modular.GCD(e, phi).IsOne() {
			continue
		}

		d, err := modular.ModInverse(e, phi)
		require.NoError(t, err)
		assert.True(t, d.Sign() >= 0 && d.Cmp(phi) < 0, "%s out of range", d)

		product, err := e.Mul(d).Mod(phi)
		require.NoError(t, err)
		assert.True(t, product.IsOne(), "%s * %s mod %s = %s", e, d, phi, product)
	}

	d, err := modular.ModInverse(bigint.NewInt(65537), bigint.NewInt(3120))
	require.NoError(t, err)
	assert.Equal(t, int64(2753), d.Int64())
}

func TestModInverseFailures(t *testing.T) {
	_, err := modular.ModInverse(bigint.NewInt(6), bigint.NewInt(9))
	require.Error(t, err)
	assert.ErrorIs(t, err, modular.ErrNoInverse)

	var noInverse *modular.NoInverseError
	require.True(t, errors.As(err, &noInverse))
	assert.Equal(t, int64(3), noInverse.GCD.Int64())
	assert.Equal(t, int64(6), noInverse.E.Int64())
	assert.EqualError(t, err, "no modular inverse of 6 modulo 9: gcd is 3")

	_, err = modular.ModInverse(bigint.NewInt(3), bigint.Zero())
	assert.ErrorIs(t, err, modular.ErrInvalidModulus)
}
