package rsa

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/modular"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/testutil"
)

func seededGenerator(seed uint64) *Generator {
	return &Generator{Rand: testutil.SeededReader(seed)}
}

func TestGenerateKeysInvariants(t *testing.T) {
	for _, bits := range []int{16, 17, 24, 32, 64, 128, 256} {
		pub, priv, err := seededGenerator(uint64(bits)).GenerateKeys(t.Context(), bits)
		require.NoError(t, err, "bits = %d", bits)

		assert.True(t, pub.N.Equal(priv.N), "bits = %d: moduli differ", bits)
		assert.True(t, priv.P.Mul(priv.Q).Equal(priv.N), "bits = %d: n != p*q", bits)
		assert.False(t, priv.P.Equal(priv.Q), "bits = %d: p == q", bits)
		assert.Equal(t, bits/2, priv.P.BitLen())
		assert.Equal(t, bits-bits/2, priv.Q.BitLen())
		assert.Contains(t, []int{bits - 1, bits}, priv.N.BitLen())

		phi := priv.Totient()
		assert.True(t, modular.GCD(pub.E, phi).IsOne())
		assert.True(t, pub.E.Cmp(bigint.NewInt(DefaultPublicExponent)) >= 0)
		assert.True(t, pub.E.IsOdd())

		ed, err := pub.E.Mul(priv.D).Mod(phi)
		require.NoError(t, err)
		assert.True(t, ed.IsOne(), "bits = %d: e*d mod phi = %s", bits, ed)
	}
}

func TestGenerateKeysIsDeterministicForASeededSource(t *testing.T) {
	pub1, priv1, err := seededGenerator(99).GenerateKeys(t.Context(), 64)
	require.NoError(t, err)
	pub2, priv2, err := seededGenerator(99).GenerateKeys(t.Context(), 64)
	require.NoError(t, err)

	assert.True(t, pub1.N.Equal(pub2.N))
	assert.True(t, priv1.D.Equal(priv2.D))
}

func TestGenerateKeysDegenerateSizes(t *testing.T) {
	t.Run("zero bits disables encryption", func(t *testing.T) {
		pub, priv, err := GenerateKeys(0)
		require.NoError(t, err)
		for _, x := range []bigint.Int{pub.E, pub.N, priv.D, priv.N, priv.P, priv.Q} {
			assert.True(t, x.IsZero())
		}
	})

	t.Run("one bit uses placeholder primes", func(t *testing.T) {
		pub, priv, err := GenerateKeys(1)
		require.NoError(t, err)
		assert.Equal(t, "65537", pub.E.String())
		assert.True(t, pub.N.IsOne())
		assert.True(t, priv.N.IsOne())
		assert.True(t, priv.D.IsZero())
		assert.True(t, priv.P.IsOne())
		assert.True(t, priv.Q.IsOne())
		assert.True(t, priv.Totient().IsZero())
	})

	t.Run("small sizes use 2-bit primes", func(t *testing.T) {
		for _, bits := range []int{2, 3, 4, 5} {
			_, priv, err := seededGenerator(1).GenerateKeys(t.Context(), bits)
			require.NoError(t, err, "bits = %d", bits)
			assert.GreaterOrEqual(t, priv.P.BitLen(), 2)
			assert.GreaterOrEqual(t, priv.Q.BitLen(), 2)
			assert.True(t, priv.P.Mul(priv.Q).Equal(priv.N))
		}
	})
}

func TestGenerateKeysRejectsInvalidSizes(t *testing.T) {
	tests := []struct {
		name    string
		gen     *Generator
		bits    int
		wantMax int
	}{
		{name: "negative", gen: &Generator{}, bits: -1, wantMax: MaxKeyBits},
		{name: "above the default maximum", gen: &Generator{}, bits: MaxKeyBits + 1, wantMax: MaxKeyBits},
		{name: "above a configured maximum", gen: &Generator{MaxBits: 64}, bits: 65, wantMax: 64},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := test.gen.GenerateKeys(t.Context(), test.bits)
			require.ErrorIs(t, err, ErrInvalidBitLength)

			var invalid *InvalidBitLengthError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, test.bits, invalid.Bits)
			assert.Equal(t, test.wantMax, invalid.Max)
		})
	}
}

func TestGenerateKeysHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, _, err := seededGenerator(1).GenerateKeys(ctx, 64)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChooseExponent(t *testing.T) {
	assert.Equal(t, "65537", chooseExponent(bigint.NewInt(3120)).String())
	// 65537 divides phi, so the search moves on to the next odd value.
	assert.Equal(t, "65539", chooseExponent(bigint.NewInt(2*65537)).String())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, PublicKey{E: bigint.NewInt(3), N: bigint.NewInt(33)}.Validate())
	assert.NoError(t, PrivateKey{}.Validate())

	err := PublicKey{E: bigint.NewInt(-3), N: bigint.NewInt(-33)}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "public exponent e cannot be negative, got -3")
	assert.Contains(t, err.Error(), "modulus n cannot be negative, got -33")

	err = PrivateKey{D: bigint.NewInt(-7), N: bigint.NewInt(33)}.Validate()
	assert.ErrorContains(t, err, "private exponent d cannot be negative")
}

func TestPublic(t *testing.T) {
	priv := PrivateKey{D: bigint.NewInt(7), N: bigint.NewInt(33)}
	pub := priv.Public(bigint.NewInt(3))
	assert.Equal(t, "3", pub.E.String())
	assert.Equal(t, "33", pub.N.String())
}
