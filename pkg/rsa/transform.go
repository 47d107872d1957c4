package rsa

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/basen"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/modular"
)

// ErrDigitOutOfByteRange is returned when decrypting with a zero modulus and
// a ciphertext digit is not a byte value.
var ErrDigitOutOfByteRange = errors.New("digit is not a byte value")

// transform is one of the two ways a key can act on a message. The zero
// modulus gets its own variant so that the arithmetic path never divides by
// zero.
type transform interface {
	encrypt(message string, exponent bigint.Int) ([]bigint.Int, error)
	decrypt(ciphertext []bigint.Int, exponent bigint.Int) (string, error)
}

func transformFor(n bigint.Int) transform {
	if n.IsZero() {
		return identityTransform{}
	}
	return standardTransform{n: n}
}

// Encrypt encrypts message with the public key and returns the ciphertext
// digits, most significant first.
func Encrypt(message string, pub PublicKey) ([]bigint.Int, error) {
	return EncryptRaw(message, pub.E, pub.N)
}

// EncryptRaw is Encrypt with the key given as its components.
func EncryptRaw(message string, e, n bigint.Int) ([]bigint.Int, error) {
	return transformFor(n).encrypt(message, e)
}

// Decrypt recovers the message from ciphertext digits with the private key.
// Bytes that are not valid UTF-8 are replaced with U+FFFD.
func Decrypt(ciphertext []bigint.Int, priv PrivateKey) (string, error) {
	return DecryptRaw(ciphertext, priv.D, priv.N)
}

// DecryptRaw is Decrypt with the key given as its components.
func DecryptRaw(ciphertext []bigint.Int, d, n bigint.Int) (string, error) {
	return transformFor(n).decrypt(ciphertext, d)
}

// identityTransform is the "no encryption" mode selected by n == 0.
type identityTransform struct{}

// encrypt returns the code points of message; the exponent is ignored.
func (identityTransform) encrypt(message string, _ bigint.Int) ([]bigint.Int, error) {
	message = repairUTF8(message)
	out := make([]bigint.Int, 0, utf8.RuneCountInString(message))
	for _, r := range message {
		out = append(out, bigint.NewInt(int64(r)))
	}
	return out, nil
}

// decrypt reads every digit as one byte and decodes the bytes as UTF-8.
func (identityTransform) decrypt(ciphertext []bigint.Int, _ bigint.Int) (string, error) {
	buf := make([]byte, len(ciphertext))
	for i, c := range ciphertext {
		if c.Sign() < 0 || c.Cmp(bigint.NewInt(255)) > 0 {
			return "", fmt.Errorf("%w: digit %d is %s", ErrDigitOutOfByteRange, i, c)
		}
		buf[i] = byte(c.Uint64())
	}
	return decodeUTF8(buf), nil
}

// standardTransform applies textbook RSA digit by digit in base n.
type standardTransform struct {
	n bigint.Int
}

func (t standardTransform) encrypt(message string, e bigint.Int) ([]bigint.Int, error) {
	msg := bigint.FromBytes([]byte(repairUTF8(message)))

	// Every digit is below n, which keeps it inside RSA's domain.
	digits, err := basen.ToBase(msg, t.n)
	if err != nil {
		return nil, fmt.Errorf("failed to expand message in base %s: %w", t.n, err)
	}

	out := make([]bigint.Int, len(digits))
	for i, d := range digits {
		if out[i], err = modular.ModPow(d, e, t.n); err != nil {
			return nil, fmt.Errorf("failed to encrypt digit %d: %w", i, err)
		}
	}
	return out, nil
}

func (t standardTransform) decrypt(ciphertext []bigint.Int, d bigint.Int) (string, error) {
	digits := make([]bigint.Int, len(ciphertext))
	for i, c := range ciphertext {
		var err error
		if digits[i], err = modular.ModPow(c, d, t.n); err != nil {
			return "", fmt.Errorf("failed to decrypt digit %d: %w", i, err)
		}
	}

	// A recovered 0 has no bytes and decodes to the empty string.
	msg := basen.FromBase(digits, t.n)
	return decodeUTF8(msg.Bytes()), nil
}

// repairUTF8 replaces ill-formed UTF-8 in s with U+FFFD.
func repairUTF8(s string) string {
	out, err := unicode.UTF8.NewEncoder().String(s)
	if err != nil {
		return string([]rune(s))
	}
	return out
}

// decodeUTF8 decodes b as UTF-8, replacing invalid sequences with U+FFFD.
func decodeUTF8(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string([]rune(string(b)))
	}
	return string(out)
}
