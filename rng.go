package bignum

import (
	"crypto/rand"
	"io"
	"sync"
)

// sharedRNG is the process-wide cryptographically strong source used
// by any operation that needs randomness (random-bit-length
// construction, probable-prime generation, Miller-Rabin witnesses) and
// was not handed an explicit io.Reader. Lazily built on first use;
// safe for concurrent callers, since sync.OnceValue runs the
// initializer exactly once and every caller sees its result.
var sharedRNG = sync.OnceValue(func() io.Reader {
	return rand.Reader
})

func rngOrDefault(r io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return sharedRNG()
}
