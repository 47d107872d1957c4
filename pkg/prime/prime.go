// Package prime provides Miller-Rabin probabilistic primality testing and
// random prime generation over bigint.Int.
package prime

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/bigint"
	"github.com/mono-c-glitch/Absolute-RSA-System/pkg/modular"
)

// DefaultRounds is the number of Miller-Rabin rounds used when a caller asks
// for zero or fewer. The false-positive probability is at most 4^-rounds.
const DefaultRounds = 20

var (
	// ErrTooFewBits is returned by Generate for bit lengths below 2.
	ErrTooFewBits = errors.New("prime bit length must be at least 2")
	// ErrAttemptsExhausted is returned when Generate gives up without
	// finding a prime.
	ErrAttemptsExhausted = errors.New("no prime found within the attempt limit")
)

var smallPrimes = []int64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97,
}

// Values below this bound that survive trial division are prime.
var trialDivisionBound = bigint.NewInt(101 * 101)

// IsProbablePrime reports whether n is prime with an error probability of
// at most 4^-rounds, drawing witnesses from crypto/rand. It returns false
// if the random source fails.
func IsProbablePrime(n bigint.Int, rounds int) bool {
	ok, err := IsProbablePrimeRand(rand.Reader, n, rounds)
	return err == nil && ok
}

// IsProbablePrimeRand is IsProbablePrime with an explicit source of
// witnesses.
func IsProbablePrimeRand(random io.Reader, n bigint.Int, rounds int) (bool, error) {
	if n.Cmp(bigint.NewInt(2)) < 0 {
		return false, nil
	}
	for _, p := range smallPrimes {
		bp := bigint.NewInt(p)
		if n.Equal(bp) {
			return true, nil
		}
		if m, _ := n.Mod(bp); m.IsZero() {
			return false, nil
		}
	}
	if n.Cmp(trialDivisionBound) < 0 {
		return true, nil
	}

	if rounds <= 0 {
		rounds = DefaultRounds
	}

	// n-1 = d * 2^s with d odd
	nMinusOne := n.Sub(bigint.One())
	d, s := nMinusOne, 0
	for !d.IsOdd() {
		d = d.Rsh(1)
		s++
	}

	// Witnesses are drawn uniformly from [2, n-2].
	witnessRange := n.Sub(bigint.NewInt(3))
	for i := 0; i < rounds; i++ {
		a, err := RandomBelow(random, witnessRange)
		if err != nil {
			return false, err
		}
		a = a.Add(bigint.NewInt(2))

		composite, err := millerRabinWitness(a, d, s, n, nMinusOne)
		if err != nil {
			return false, err
		}
		if composite {
			return false, nil
		}
	}
	return true, nil
}

// millerRabinWitness reports whether a proves n composite.
func millerRabinWitness(a, d bigint.Int, s int, n, nMinusOne bigint.Int) (bool, error) {
	x, err := modular.ModPow(a, d, n)
	if err != nil {
		return false, err
	}
	if x.IsOne() || x.Equal(nMinusOne) {
		return false, nil
	}
	for r := 1; r < s; r++ {
		if x, err = x.Mul(x).Mod(n); err != nil {
			return false, err
		}
		if x.Equal(nMinusOne) {
			return false, nil
		}
	}
	return true, nil
}

// RandomBelow returns a uniformly random value in [0, limit) by rejection
// sampling. limit must be positive.
func RandomBelow(random io.Reader, limit bigint.Int) (bigint.Int, error) {
	if limit.Sign() <= 0 {
		return bigint.Zero(), fmt.Errorf("random limit must be positive, got %s", limit)
	}
	k := limit.BitLen()
	buf := make([]byte, (k+7)/8)
	for {
		if _, err := io.ReadFull(random, buf); err != nil {
			return bigint.Zero(), fmt.Errorf("failed to read random bytes: %w", err)
		}
		if k%8 != 0 {
			buf[0] &= byte(1<<uint(k%8)) - 1
		}
		x := bigint.FromBytes(buf)
		if x.Cmp(limit) < 0 {
			return x, nil
		}
	}
}

// MaxAttempts is the number of candidates Generate tries for a given bit
// length. A random odd candidate is prime with probability about
// 2/ln(2^bits), so this leaves a wide margin.
func MaxAttempts(bits int) int {
	return 100*bits + 1000
}

// Generate returns a random probable prime of exactly the given bit length:
// candidates are odd with the top bit set, and are retried until one passes
// rounds of Miller-Rabin.
func Generate(ctx context.Context, random io.Reader, bits, rounds int) (bigint.Int, error) {
	if bits < 2 {
		return bigint.Zero(), fmt.Errorf("%w: got %d", ErrTooFewBits, bits)
	}

	buf := make([]byte, (bits+7)/8)
	for attempt := 0; attempt < MaxAttempts(bits); attempt++ {
		if err := ctx.Err(); err != nil {
			return bigint.Zero(), err
		}

		if _, err := io.ReadFull(random, buf); err != nil {
			return bigint.Zero(), fmt.Errorf("failed to read random bytes: %w", err)
		}
		if bits%8 != 0 {
			buf[0] &= byte(1<<uint(bits%8)) - 1
		}
		buf[0] |= 1 << uint((bits-1)%8)
		buf[len(buf)-1] |= 1

		candidate := bigint.FromBytes(buf)
		ok, err := IsProbablePrimeRand(random, candidate, rounds)
		if err != nil {
			return bigint.Zero(), err
		}
		if ok {
			return candidate, nil
		}
	}
	return bigint.Zero(), fmt.Errorf("%w: %d bits after %d attempts", ErrAttemptsExhausted, bits, MaxAttempts(bits))
}
