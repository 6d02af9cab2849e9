package mag

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var knownPrimes = []uint64{2, 3, 5, 7, 11, 13, 97, 104729, 1000000007}
var knownComposites = []uint64{0, 1, 4, 6, 8, 9, 15, 100, 1000000008}

func TestIsProbablePrimeKnownValues(t *testing.T) {
	for _, p := range knownPrimes {
		require.True(t, IsProbablePrime(FromUint64(p), 20, rand.Reader), "%d should be prime", p)
	}
	for _, c := range knownComposites {
		require.False(t, IsProbablePrime(FromUint64(c), 20, rand.Reader), "%d should be composite", c)
	}
}

func TestIsProbablePrimeCertaintyZero(t *testing.T) {
	require.True(t, IsProbablePrime(FromUint64(4), 0, rand.Reader))
}

func TestRandomPrimeSmall(t *testing.T) {
	for _, bits := range []int{16, 32, 64, 90} {
		p := RandomPrime(bits, rand.Reader)
		require.Equal(t, bits, BitLen(p))
		require.True(t, new(big.Int).SetBytes(ToBigEndianBytes(p)).ProbablyPrime(40))
	}
}

func TestNextProbablePrime(t *testing.T) {
	n := FromUint64(100)
	p := NextProbablePrime(n, rand.Reader)
	require.True(t, Cmp(p, n) > 0)
	require.True(t, new(big.Int).SetBytes(ToBigEndianBytes(p)).ProbablyPrime(40))
	require.Equal(t, uint64(101), p.Uint64())
}

func TestMersenneM20(t *testing.T) {
	// 2^4253 - 1 (Mersenne M20) is a well-known prime.
	m := ShiftLeftBits(FromWord(1), 4253)
	m = SubWord(m, 1)
	require.True(t, IsProbablePrime(m, 100, rand.Reader))
}
