package rsa

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/modular"
)

func printableASCII(seed, length int) string {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		sb.WriteByte(byte(' ' + (seed*31+i*17)%95))
	}
	return sb.String()
}

func TestRoundTrip(t *testing.T) {
	for _, bits := range []int{16, 17, 24, 32, 64, 128} {
		pub, priv, err := seededGenerator(uint64(1000+bits)).GenerateKeys(t.Context(), bits)
		require.NoError(t, err)

		for length := 1; length <= 50; length++ {
			message := printableASCII(bits, length)
			ciphertext, err := Encrypt(message, pub)
			require.NoError(t, err)

			for _, c := range ciphertext {
				assert.True(t, c.Sign() >= 0 && c.Cmp(pub.N) < 0)
			}

			plaintext, err := Decrypt(ciphertext, priv)
			require.NoError(t, err)
			assert.Equal(t, message, plaintext, "bits = %d", bits)
		}
	}
}

func TestRoundTripHiWith16BitKeys(t *testing.T) {
	pub, priv, err := seededGenerator(16).GenerateKeys(t.Context(), 16)
	require.NoError(t, err)
	assert.Equal(t, 8, priv.P.BitLen())
	assert.Equal(t, 8, priv.Q.BitLen())

	ciphertext, err := Encrypt("Hi", pub)
	require.NoError(t, err)
	plaintext, err := Decrypt(ciphertext, priv)
	require.NoError(t, err)
	assert.Equal(t, "Hi", plaintext)
}

func TestKnownKey(t *testing.T) {
	// p = 61, q = 53
	e, d, n := bigint.NewInt(17), bigint.NewInt(2753), bigint.NewInt(3233)

	ciphertext, err := EncryptRaw("A", e, n)
	require.NoError(t, err)
	require.Len(t, ciphertext, 1)
	want, err := modular.ModPow(bigint.NewInt(65), e, n)
	require.NoError(t, err)
	assert.True(t, want.Equal(ciphertext[0]))

	plaintext, err := DecryptRaw(ciphertext, d, n)
	require.NoError(t, err)
	assert.Equal(t, "A", plaintext)
}

func TestEmptyMessage(t *testing.T) {
	e, d, n := bigint.NewInt(17), bigint.NewInt(2753), bigint.NewInt(3233)

	ciphertext, err := EncryptRaw("", e, n)
	require.NoError(t, err)
	require.Len(t, ciphertext, 1)
	assert.True(t, ciphertext[0].IsZero())

	plaintext, err := DecryptRaw(ciphertext, d, n)
	require.NoError(t, err)
	assert.Equal(t, "", plaintext)
}

func TestIdentityTransform(t *testing.T) {
	pub, priv, err := GenerateKeys(0)
	require.NoError(t, err)

	message := "Hello, World!"
	ciphertext, err := Encrypt(message, pub)
	require.NoError(t, err)
	require.Len(t, ciphertext, len(message))
	for i, c := range ciphertext {
		assert.Equal(t, int64(message[i]), c.Int64())
	}

	plaintext, err := Decrypt(ciphertext, priv)
	require.NoError(t, err)
	assert.Equal(t, message, plaintext)
}

func TestIdentityTransformNonASCII(t *testing.T) {
	zero := bigint.Zero()

	ciphertext, err := EncryptRaw("é☃", zero, zero)
	require.NoError(t, err)
	require.Len(t, ciphertext, 2)
	assert.Equal(t, int64(0xe9), ciphertext[0].Int64())
	assert.Equal(t, int64(0x2603), ciphertext[1].Int64())

	// A lone 0xe9 byte is not valid UTF-8.
	plaintext, err := DecryptRaw(ciphertext[:1], zero, zero)
	require.NoError(t, err)
	assert.Equal(t, "�", plaintext)

	_, err = DecryptRaw(ciphertext, zero, zero)
	assert.ErrorIs(t, err, ErrDigitOutOfByteRange)

	_, err = DecryptRaw([]bigint.Int{bigint.NewInt(-1)}, zero, zero)
	assert.ErrorIs(t, err, ErrDigitOutOfByteRange)
}

func TestModulusOne(t *testing.T) {
	pub, priv, err := GenerateKeys(1)
	require.NoError(t, err)

	ciphertext, err := Encrypt("Hi", pub)
	require.NoError(t, err)
	// "Hi" is 18537, written in unary.
	assert.Len(t, ciphertext, 18537)

	plaintext, err := Decrypt(ciphertext, priv)
	require.NoError(t, err)
	assert.Equal(t, "", plaintext)
}

func TestNegativeModulus(t *testing.T) {
	e, d, n := bigint.NewInt(3), bigint.NewInt(7), bigint.NewInt(-33)

	ciphertext, err := EncryptRaw("Hi", e, n)
	require.NoError(t, err)
	assert.Empty(t, ciphertext)

	plaintext, err := DecryptRaw(ciphertext, d, n)
	require.NoError(t, err)
	assert.Equal(t, "", plaintext)

	_, err = DecryptRaw([]bigint.Int{bigint.One()}, d, n)
	assert.ErrorIs(t, err, modular.ErrInvalidModulus)
}

func TestNegativeExponent(t *testing.T) {
	_, err := EncryptRaw("Hi", bigint.NewInt(-3), bigint.NewInt(3233))
	assert.ErrorIs(t, err, modular.ErrNegativeExponent)
}

func TestInvalidUTF8IsRepaired(t *testing.T) {
	e, d, n := bigint.NewInt(17), bigint.NewInt(2753), bigint.NewInt(3233)

	ciphertext, err := EncryptRaw("a\xffb", e, n)
	require.NoError(t, err)
	plaintext, err := DecryptRaw(ciphertext, d, n)
	require.NoError(t, err)
	assert.Equal(t, "a�b", plaintext)

	// With the wrong private exponent the bytes are garbage, but decoding
	// still succeeds.
	_, err = DecryptRaw(ciphertext, bigint.NewInt(3), n)
	assert.NoError(t, err)
}

func TestTransformFor(t *testing.T) {
	assert.IsType(t, identityTransform{}, transformFor(bigint.Zero()))
	assert.IsType(t, standardTransform{}, transformFor(bigint.NewInt(3233)))
	assert.IsType(t, standardTransform{}, transformFor(bigint.NewInt(-1)))
}
