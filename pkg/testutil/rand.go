package testutil

import (
	"io"
	"math/rand/v2"
)

// SeededReader returns a deterministic stream of bytes, so that prime and key
// generation can be reproduced in tests. It must never be used outside tests.
func SeededReader(seed uint64) io.Reader {
	var key [32]byte
	for i := range 8 {
		key[i] = byte(seed >> (8 * i))
	}
	return rand.NewChaCha8(key)
}
