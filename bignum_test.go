package bignum

import (
	"math/big"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func randBig(rnd *rand.Rand, bits int, negative bool) (*BigInt, *big.Int) {
	raw := new(big.Int).Rand(rnd, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	if negative && rnd.Intn(2) == 0 {
		raw.Neg(raw)
	}
	sign := 1
	if raw.Sign() < 0 {
		sign = -1
	}
	bi, err := FromSignAndMagnitude(sign, new(big.Int).Abs(raw).Bytes())
	if err != nil {
		panic(err)
	}
	return bi, raw
}

func TestRingLaws(t *testing.T) {
	rnd := rand.New(rand.NewSource(100))
	for i := 0; i < 30; i++ {
		a, aBig := randBig(rnd, 64, true)
		b, bBig := randBig(rnd, 64, true)
		c, _ := randBig(rnd, 64, true)

		require.Equal(t, a.Add(b).Add(c).ToString(10), a.Add(b.Add(c)).ToString(10))
		require.Equal(t, a.Add(b).ToString(10), b.Add(a).ToString(10))
		require.Equal(t, a.Mul(b.Add(c)).ToString(10), a.Mul(b).Add(a.Mul(c)).ToString(10))
		require.Equal(t, a.Mul(b).ToString(10), b.Mul(a).ToString(10))
		require.True(t, a.Mul(ZERO).IsZero())
		require.Equal(t, a.ToString(10), a.Mul(ONE).ToString(10))

		want := new(big.Int).Add(aBig, bBig)
		require.Equal(t, want.String(), a.Add(b).ToString(10))
	}
}

func TestDivModContract(t *testing.T) {
	rnd := rand.New(rand.NewSource(101))
	for i := 0; i < 30; i++ {
		a, aBig := randBig(rnd, 80, true)
		b, bBig := randBig(rnd, 40, true)
		if b.IsZero() {
			continue
		}
		q, r, err := a.DivMod(b)
		require.NoError(t, err)
		require.Equal(t, a.ToString(10), q.Mul(b).Add(r).ToString(10))
		require.True(t, r.Abs().Cmp(b.Abs()) < 0)
		if !r.IsZero() {
			require.Equal(t, a.Sign(), r.Sign())
		}

		wantQ, wantR := new(big.Int).QuoRem(aBig, bBig, new(big.Int))
		require.Equal(t, wantQ.String(), q.ToString(10))
		require.Equal(t, wantR.String(), r.ToString(10))
	}
}

func TestDivisionByZero(t *testing.T) {
	_, _, err := ONE.DivMod(ZERO)
	require.ErrorIs(t, err, ErrDomain)
}

func TestModAlwaysNonNegative(t *testing.T) {
	rnd := rand.New(rand.NewSource(102))
	for i := 0; i < 20; i++ {
		a, _ := randBig(rnd, 70, true)
		m, _ := randBig(rnd, 20, false)
		if m.IsZero() {
			continue
		}
		r, err := a.Mod(m)
		require.NoError(t, err)
		require.True(t, r.Sign() >= 0)
		require.True(t, r.Cmp(m) < 0)
	}
}

func TestModPowMatchesPowThenMod(t *testing.T) {
	rnd := rand.New(rand.NewSource(103))
	for i := 0; i < 10; i++ {
		base, _ := randBig(rnd, 16, false)
		e := rnd.Intn(20)
		m, _ := randBig(rnd, 16, false)
		if m.IsZero() {
			continue
		}
		expB, _ := FromString(strconv.Itoa(e), 10)
		got, err := base.ModPow(expB, m)
		require.NoError(t, err)

		powed, err := base.Pow(e)
		require.NoError(t, err)
		want, err := powed.Mod(m)
		require.NoError(t, err)
		require.Equal(t, want.ToString(10), got.ToString(10))
	}
}

func TestShiftLaws(t *testing.T) {
	rnd := rand.New(rand.NewSource(104))
	for i := 0; i < 20; i++ {
		a, aBig := randBig(rnd, 60, true)
		n := rnd.Intn(40)

		left, err := a.ShiftLeft(n)
		require.NoError(t, err)
		want := new(big.Int).Lsh(aBig, uint(n))
		require.Equal(t, want.String(), left.ToString(10))

		right, err := a.ShiftRight(n)
		require.NoError(t, err)
		// math/big's Int.Rsh is floor division by 2^n for negative
		// values, matching our round-toward-negative-infinity contract.
		require.Equal(t, new(big.Int).Rsh(aBig, uint(n)).String(), right.ToString(10))
	}
}

func TestArithmeticRightShiftOfMinusOne(t *testing.T) {
	minusOne := ONE.Negate()
	got, err := minusOne.ShiftRight(1)
	require.NoError(t, err)
	require.Equal(t, "-1", got.ToString(10))
}

func TestBitwiseAgainstMathBig(t *testing.T) {
	rnd := rand.New(rand.NewSource(105))
	for i := 0; i < 20; i++ {
		a, aBig := randBig(rnd, 50, true)
		b, bBig := randBig(rnd, 50, true)

		require.Equal(t, new(big.Int).And(aBig, bBig).String(), a.And(b).ToString(10))
		require.Equal(t, new(big.Int).Or(aBig, bBig).String(), a.Or(b).ToString(10))
		require.Equal(t, new(big.Int).Xor(aBig, bBig).String(), a.Xor(b).ToString(10))
		require.Equal(t, new(big.Int).Not(aBig).String(), a.Not().ToString(10))
	}
}

func TestSetClearFlipBit(t *testing.T) {
	rnd := rand.New(rand.NewSource(106))
	a, aBig := randBig(rnd, 40, true)
	for _, i := range []int{0, 5, 39, 50} {
		set, err := a.SetBit(i)
		require.NoError(t, err)
		require.Equal(t, new(big.Int).SetBit(aBig, i, 1).String(), set.ToString(10))

		cleared, err := a.ClearBit(i)
		require.NoError(t, err)
		require.Equal(t, new(big.Int).SetBit(aBig, i, 0).String(), cleared.ToString(10))

		flipped, err := a.FlipBit(i)
		require.NoError(t, err)
		require.Equal(t, new(big.Int).SetBit(aBig, i, aBig.Bit(i)^1).String(), flipped.ToString(10))
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(107))
	for i := 0; i < 20; i++ {
		a, _ := randBig(rnd, 90, true)
		back, err := FromBytes(a.ToByteArray())
		require.NoError(t, err)
		require.Equal(t, a.ToString(10), back.ToString(10))

		for _, radix := range []int{2, 10, 16, 36} {
			s := a.ToString(radix)
			parsed, err := FromString(s, radix)
			require.NoError(t, err)
			require.Equal(t, a.ToString(10), parsed.ToString(10))
		}
	}
}

func TestZeroStringAndBytes(t *testing.T) {
	require.Equal(t, "0", ZERO.ToString(10))
	require.Equal(t, 0, ZERO.Sign())
	require.Equal(t, []byte{0}, ZERO.ToByteArray())
}

func TestFromStringErrors(t *testing.T) {
	_, err := FromString("", 10)
	require.ErrorIs(t, err, ErrFormat)

	_, err = FromString("12", 1)
	require.ErrorIs(t, err, ErrFormat)

	_, err = FromString("12a", 10)
	require.ErrorIs(t, err, ErrFormat)
}

func TestExactConversionRanges(t *testing.T) {
	huge, err := FromString("999999999999999999999999", 10)
	require.NoError(t, err)
	_, err = huge.LongValueExact()
	require.ErrorIs(t, err, ErrOutOfRange)

	v, err := ONE.LongValueExact()
	require.NoError(t, err)
	require.Equal(t, int64(1), v)
}

func TestGCDAndModInverse(t *testing.T) {
	a, err := FromString("240", 10)
	require.NoError(t, err)
	b, err := FromString("46", 10)
	require.NoError(t, err)
	require.Equal(t, "2", a.GCD(b).ToString(10))

	m, err := FromString("26", 10)
	require.NoError(t, err)
	x, err := FromString("3", 10)
	require.NoError(t, err)
	inv, err := x.ModInverse(m)
	require.NoError(t, err)
	require.Equal(t, "9", inv.ToString(10))

	notInv, err := FromString("2", 10)
	require.NoError(t, err)
	_, err = notInv.ModInverse(m)
	require.ErrorIs(t, err, ErrNotInvertible)
}

func TestDecimalDivisionScenario(t *testing.T) {
	tenTo100 := ONE
	ten, _ := FromString("10", 10)
	for i := 0; i < 100; i++ {
		tenTo100 = tenTo100.Mul(ten)
	}
	seven, _ := FromString("7", 10)
	q, r, err := tenTo100.DivMod(seven)
	require.NoError(t, err)
	require.Equal(t, tenTo100.ToString(10), q.Mul(seven).Add(r).ToString(10))
	require.Equal(t, "4", r.ToString(10))
}

func TestConcatenatedShiftScenario(t *testing.T) {
	v, err := FromString("ffffffffffffffffffffffffffffffff", 16)
	require.NoError(t, err)
	got := v.Add(ONE)
	want, err := ONE.ShiftLeft(128)
	require.NoError(t, err)
	require.Equal(t, want.ToString(10), got.ToString(10))
}
