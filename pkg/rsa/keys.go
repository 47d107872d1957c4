package rsa

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"k8s.io/klog/v2"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/logs"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/modular"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/prime"
)

const (
	// MaxKeyBits is the largest key size GenerateKeys accepts by default.
	MaxKeyBits = 16384

	// DefaultPublicExponent is where the search for a public exponent starts.
	DefaultPublicExponent = 65537

	// distinctPrimeAttempts bounds how often the second prime is redrawn
	// when it collides with the first.
	distinctPrimeAttempts = 64
)

// ErrInvalidBitLength is matched by every *InvalidBitLengthError.
var ErrInvalidBitLength = errors.New("invalid key bit length")

// InvalidBitLengthError reports a requested key size outside [0, Max].
type InvalidBitLengthError struct {
	Bits int
	Max  int
}

func (e *InvalidBitLengthError) Error() string {
	return fmt.Sprintf("invalid key size %d: must be between 0 and %d bits", e.Bits, e.Max)
}

// Is makes errors.Is(err, ErrInvalidBitLength) true.
func (e *InvalidBitLengthError) Is(target error) bool {
	return target == ErrInvalidBitLength
}

// PublicKey is the public half of a key pair. A zero N disables encryption.
type PublicKey struct {
	E bigint.Int
	N bigint.Int
}

// PrivateKey is the private half of a key pair. P and Q are the primes N was
// built from when the key was generated here; they are zero for keys supplied
// from elsewhere and for the zero-bit key.
type PrivateKey struct {
	D bigint.Int
	N bigint.Int
	P bigint.Int
	Q bigint.Int
}

// Public returns the public key matching k given the exponent e.
func (k PrivateKey) Public(e bigint.Int) PublicKey {
	return PublicKey{E: e, N: k.N}
}

// Totient returns (P-1)(Q-1), or 0 when the primes are unknown or
// degenerate.
func (k PrivateKey) Totient() bigint.Int {
	if k.P.Cmp(bigint.One()) <= 0 || k.Q.Cmp(bigint.One()) <= 0 {
		return bigint.Zero()
	}
	return k.P.Sub(bigint.One()).Mul(k.Q.Sub(bigint.One()))
}

// Validate checks that every component of the key is non-negative.
func (k PublicKey) Validate() error {
	var result *multierror.Error

	if k.E.Sign() < 0 {
		result = multierror.Append(result, fmt.Errorf("public exponent e cannot be negative, got %s", k.E))
	}

	if k.N.Sign() < 0 {
		result = multierror.Append(result, fmt.Errorf("modulus n cannot be negative, got %s", k.N))
	}

	return result.ErrorOrNil()
}

// Validate checks that every component of the key is non-negative.
func (k PrivateKey) Validate() error {
	var result *multierror.Error

	if k.D.Sign() < 0 {
		result = multierror.Append(result, fmt.Errorf("private exponent d cannot be negative, got %s", k.D))
	}

	if k.N.Sign() < 0 {
		result = multierror.Append(result, fmt.Errorf("modulus n cannot be negative, got %s", k.N))
	}

	return result.ErrorOrNil()
}

// Generator creates key pairs.
type Generator struct {
	// Rand is the entropy source for prime candidates and primality
	// witnesses. Defaults to crypto/rand.Reader.
	Rand io.Reader
	// Rounds is the number of Miller-Rabin rounds per candidate. Defaults to
	// prime.DefaultRounds.
	Rounds int
	// MaxBits is the largest accepted key size. Defaults to MaxKeyBits.
	MaxBits int
}

// DefaultGenerator is used by GenerateKeys.
var DefaultGenerator = &Generator{}

// GenerateKeys creates a key pair of the requested total size with
// DefaultGenerator.
func GenerateKeys(bits int) (PublicKey, PrivateKey, error) {
	return DefaultGenerator.GenerateKeys(context.Background(), bits)
}

// GenerateKeys creates a key pair whose modulus is the product of a
// floor(bits/2)-bit prime and a (bits - floor(bits/2))-bit prime, each at
// least 2 bits. The public exponent is the smallest odd value from 65537
// upward that is coprime to the totient.
//
// Two sizes are degenerate: 0 bits returns an all-zero pair, which turns
// encryption into the identity transform, and 1 bit returns N = 1 with
// E = 65537 and D = 0.
func (g *Generator) GenerateKeys(ctx context.Context, bits int) (PublicKey, PrivateKey, error) {
	log := klog.FromContext(ctx).WithName("keygen")

	maxBits := g.MaxBits
	if maxBits <= 0 {
		maxBits = MaxKeyBits
	}
	if bits < 0 || bits > maxBits {
		return PublicKey{}, PrivateKey{}, &InvalidBitLengthError{Bits: bits, Max: maxBits}
	}

	switch {
	case bits == 0:
		log.V(logs.Debug).Info("zero-bit key requested; encryption will be disabled")
		return PublicKey{}, PrivateKey{}, nil
	case bits < 2:
		log.V(logs.Debug).Info("key size below 2 bits; using placeholder primes", "bits", bits)
		n := bigint.One()
		return PublicKey{E: bigint.NewInt(DefaultPublicExponent), N: n},
			PrivateKey{D: bigint.Zero(), N: n, P: bigint.One(), Q: bigint.One()},
			nil
	}

	pBits := max(2, bits/2)
	qBits := max(2, bits-bits/2)

	p, err := prime.Generate(ctx, g.random(), pBits, g.Rounds)
	if err != nil {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("failed to generate prime p: %w", err)
	}
	log.V(logs.Trace).Info("generated prime", "name", "p", "bits", pBits)

	q, err := g.distinctPrime(ctx, qBits, p)
	if err != nil {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("failed to generate prime q: %w", err)
	}
	log.V(logs.Trace).Info("generated prime", "name", "q", "bits", qBits)

	n := p.Mul(q)
	phi := p.Sub(bigint.One()).Mul(q.Sub(bigint.One()))

	e := chooseExponent(phi)
	d, err := modular.ModInverse(e, phi)
	if err != nil {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("failed to derive private exponent: %w", err)
	}

	log.V(logs.Debug).Info("generated key pair", "bits", bits, "modulusBits", n.BitLen(), "e", e.String())
	return PublicKey{E: e, N: n}, PrivateKey{D: d, N: n, P: p, Q: q}, nil
}

// distinctPrime draws a prime of the given size that differs from other.
// With p == q the totient formula is wrong and decryption breaks, so q is
// redrawn; sizes with a single candidate prime (2 bits) keep the collision.
func (g *Generator) distinctPrime(ctx context.Context, bits int, other bigint.Int) (bigint.Int, error) {
	var q bigint.Int
	var err error
	for i := 0; i < distinctPrimeAttempts; i++ {
		q, err = prime.Generate(ctx, g.random(), bits, g.Rounds)
		if err != nil || !q.Equal(other) || bits <= 2 {
			return q, err
		}
	}
	return q, nil
}

// chooseExponent returns the smallest odd e >= DefaultPublicExponent with
// gcd(e, phi) == 1. phi must be positive.
func chooseExponent(phi bigint.Int) bigint.Int {
	two := bigint.NewInt(2)
	e := bigint.NewInt(DefaultPublicExponent)
	for !modular.GCD(e, phi).IsOne() {
		e = e.Add(two)
	}
	return e
}

func (g *Generator) random() io.Reader {
	if g.Rand == nil {
		return rand.Reader
	}
	return g.Rand
}
