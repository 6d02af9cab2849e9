package mag

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModPowOddModulus(t *testing.T) {
	rnd := rand.New(rand.NewSource(20))
	for i := 0; i < 20; i++ {
		base := randomMagN(rnd, 1+rnd.Intn(8))
		exp := FromUint64(uint64(rnd.Intn(1 << 20)))
		m := randomMagN(rnd, 1+rnd.Intn(8))
		m = SetBit(m, 0, 1) // force odd
		if m.IsZero() {
			m = FromWord(3)
		}

		got := ModPow(base, exp, m)
		want := new(big.Int).Exp(toBig(base), toBig(exp), toBig(m))
		require.Equal(t, want, toBig(got), "i=%d", i)
	}
}

func TestModPowEvenModulus(t *testing.T) {
	rnd := rand.New(rand.NewSource(21))
	for i := 0; i < 20; i++ {
		base := randomMagN(rnd, 1+rnd.Intn(8))
		exp := FromUint64(uint64(rnd.Intn(1 << 16)))
		oddPart := Or(randomMagN(rnd, 1+rnd.Intn(4)), oddOrOne(rnd))
		m := ShiftLeftBits(oddPart, uint(1+rnd.Intn(5)))
		if m.IsZero() {
			m = FromWord(4)
		}

		got := ModPow(base, exp, m)
		want := new(big.Int).Exp(toBig(base), toBig(exp), toBig(m))
		require.Equal(t, want, toBig(got), "i=%d", i)
	}
}

func oddOrOne(rnd *rand.Rand) Mag {
	v := randomMagN(rnd, 1)
	return SetBit(v, 0, 1)
}

func TestModInverse(t *testing.T) {
	rnd := rand.New(rand.NewSource(22))
	for i := 0; i < 20; i++ {
		m := randomMagN(rnd, 1+rnd.Intn(6))
		m = SetBit(m, 0, 1)
		if Cmp(m, FromWord(2)) < 0 {
			m = FromWord(7)
		}
		a := randomMagN(rnd, 1+rnd.Intn(6))
		_, r := DivMod(a, m)
		inv, ok := ModInverse(r, m)
		bigGCD := new(big.Int).GCD(nil, nil, toBig(r), toBig(m))
		if bigGCD.Cmp(big.NewInt(1)) != 0 {
			require.False(t, ok)
			continue
		}
		require.True(t, ok)
		product := modOf(mulAuto(r, inv), m)
		require.Equal(t, 0, Cmp(product, FromWord(1)), "i=%d", i)
	}
}
