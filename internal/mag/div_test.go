package mag

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDivModAgreesWithMathBig(t *testing.T) {
	rnd := rand.New(rand.NewSource(10))
	for _, n := range sizesCrossingThresholds {
		for _, m := range []int{1, 2, 10, 49, 50} {
			u := randomMagN(rnd, n)
			v := randomMagN(rnd, m)
			if v.IsZero() {
				continue
			}
			q, r := DivMod(u, v)
			require.Equal(t, 0, Cmp(Add(Mul(q, v), r), u), "n=%d m=%d", n, m)
			require.True(t, Cmp(r, v) < 0, "remainder must be < divisor")

			wantQ, wantR := new(big.Int).QuoRem(toBig(u), toBig(v), new(big.Int))
			require.Equal(t, wantQ.String(), toBig(q).String(), "n=%d m=%d", n, m)
			require.Equal(t, wantR.String(), toBig(r).String(), "n=%d m=%d", n, m)
		}
	}
}

func TestDivEnginesAgree(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	u := randomMagN(rnd, 200)
	v := randomMagN(rnd, 60)
	if v.IsZero() {
		v = FromWord(1)
	}

	qSchool, rSchool := DivModSchoolbook(u, v)
	qBZ, rBZ := burnikelZieglerDivMod(u, v)
	qBar, rBar := barrettDivMod(u, v)

	require.Equal(t, 0, Cmp(qSchool, qBZ))
	require.Equal(t, 0, Cmp(rSchool, rBZ))
	require.Equal(t, 0, Cmp(qSchool, qBar))
	require.Equal(t, 0, Cmp(rSchool, rBar))
}

func TestDivSmallerThanDivisor(t *testing.T) {
	u := FromWord(3)
	v := FromWord(10)
	q, r := DivMod(u, v)
	require.Nil(t, q)
	require.Equal(t, 0, Cmp(u, r))
}

func TestDivByZeroPanics(t *testing.T) {
	require.Panics(t, func() {
		DivMod(FromWord(1), nil)
	})
}

func TestGCD(t *testing.T) {
	rnd := rand.New(rand.NewSource(12))
	for _, n := range []int{1, 10, 90} {
		a := randomMagN(rnd, n)
		b := randomMagN(rnd, n)
		got := GCD(a, b)
		want := new(big.Int).GCD(nil, nil, toBig(a), toBig(b))
		require.Equal(t, want, toBig(got), "n=%d", n)
	}
	require.True(t, GCD(nil, nil).IsZero())
}

func TestSqrt(t *testing.T) {
	rnd := rand.New(rand.NewSource(13))
	for _, n := range []int{1, 10, 90} {
		x := randomMagN(rnd, n)
		got := Sqrt(x)
		want := new(big.Int).Sqrt(toBig(x))
		require.Equal(t, want, toBig(got), "n=%d", n)
	}
}
