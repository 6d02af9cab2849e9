package bignum

import (
	"math"

	"github.com/markkurossi/bignum/internal/mag"
)

// ShiftLeft returns x<<n. A negative n shifts right instead. Fails
// with ErrDomain for n == math.MinInt32 (negating the distance would
// overflow).
func (x *BigInt) ShiftLeft(n int) (*BigInt, error) {
	if n == math.MinInt32 {
		return nil, domainErrorf("shift distance is math.MinInt32")
	}
	if n < 0 {
		return x.ShiftRight(-n)
	}
	if x.IsZero() || n == 0 {
		return x, nil
	}
	return newBigInt(x.sign, mag.ShiftLeftBits(x.mag, uint(n))), nil
}

// ShiftRight returns x>>n, rounding toward negative infinity for
// negative x (i.e. floor(x / 2^n)). A negative n shifts left instead.
// Fails with ErrDomain for n == math.MinInt32.
func (x *BigInt) ShiftRight(n int) (*BigInt, error) {
	if n == math.MinInt32 {
		return nil, domainErrorf("shift distance is math.MinInt32")
	}
	if n < 0 {
		return x.ShiftLeft(-n)
	}
	if x.IsZero() || n == 0 {
		return x, nil
	}
	if x.sign > 0 {
		return newBigInt(1, mag.ShiftRightBits(x.mag, uint(n))), nil
	}

	// Negative: arithmetic right shift rounds toward -infinity, which
	// for a sign-magnitude value means rounding the magnitude's shift
	// *up* whenever any one-bit was shifted off.
	shiftedOff := mag.ShiftedOffBits(x.mag, uint(n))
	m := mag.ShiftRightBits(x.mag, uint(n))
	if shiftedOff {
		m = mag.AddWord(m, 1)
	}
	if m.IsZero() {
		return ZERO, nil
	}
	return newBigInt(-1, m), nil
}

// TestBit reports whether bit i of x's infinite two's-complement
// representation is set. Fails with ErrDomain for a negative bit
// index.
func (x *BigInt) TestBit(i int) (bool, error) {
	if i < 0 {
		return false, domainErrorf("negative bit index %d", i)
	}
	limb := x.getLimb(i / 32)
	return (limb>>(uint(i)%32))&1 == 1, nil
}

// bitOp applies an operation limb-by-limb over the virtual infinite
// two's-complement representations of x and y, then re-derives a
// sign-magnitude BigInt from the resulting limb sequence (negative
// iff the implied sign bit, i.e. the limb beyond both operands'
// significant limbs, is set).
func bitOp(x, y *BigInt, op func(a, b uint32) uint32) *BigInt {
	n := max(len(x.mag), len(y.mag)) + 1
	limbs := make(mag.Mag, n)
	for i := 0; i < n; i++ {
		limbs[i] = mag.Word(op(x.getLimb(i), y.getLimb(i)))
	}
	negative := limbs[n-1]&0x80000000 != 0
	if !negative {
		return newBigInt(1, trimMag(limbs))
	}
	for i := range limbs {
		limbs[i] = ^limbs[i]
	}
	return newBigInt(-1, mag.AddWord(trimMag(limbs), 1))
}

// trimMag strips high zero limbs, since mag.Mag's own normalization
// helper is unexported and this package only ever builds raw limb
// slices in this one bit-operation code path.
func trimMag(limbs mag.Mag) mag.Mag {
	n := len(limbs)
	for n > 0 && limbs[n-1] == 0 {
		n--
	}
	return limbs[:n]
}

// And returns the bitwise AND of x and y under infinite sign
// extension.
func (x *BigInt) And(y *BigInt) *BigInt {
	return bitOp(x, y, func(a, b uint32) uint32 { return a & b })
}

// Or returns the bitwise OR of x and y under infinite sign extension.
func (x *BigInt) Or(y *BigInt) *BigInt {
	return bitOp(x, y, func(a, b uint32) uint32 { return a | b })
}

// Xor returns the bitwise XOR of x and y under infinite sign
// extension.
func (x *BigInt) Xor(y *BigInt) *BigInt {
	return bitOp(x, y, func(a, b uint32) uint32 { return a ^ b })
}

// AndNot returns x &^ y under infinite sign extension.
func (x *BigInt) AndNot(y *BigInt) *BigInt {
	return bitOp(x, y, func(a, b uint32) uint32 { return a &^ b })
}

// Not returns the bitwise complement of x, ^x == -x-1.
func (x *BigInt) Not() *BigInt {
	return x.Negate().Sub(ONE)
}

// SetBit returns x with bit i set (in the two's-complement view).
// Fails with ErrDomain for a negative bit index.
func (x *BigInt) SetBit(i int) (*BigInt, error) {
	return x.bitMutate(i, func(b bool) bool { return true })
}

// ClearBit returns x with bit i cleared (in the two's-complement
// view). Fails with ErrDomain for a negative bit index.
func (x *BigInt) ClearBit(i int) (*BigInt, error) {
	return x.bitMutate(i, func(b bool) bool { return false })
}

// FlipBit returns x with bit i flipped (in the two's-complement
// view). Fails with ErrDomain for a negative bit index.
func (x *BigInt) FlipBit(i int) (*BigInt, error) {
	return x.bitMutate(i, func(b bool) bool { return !b })
}

func (x *BigInt) bitMutate(i int, newVal func(bool) bool) (*BigInt, error) {
	if i < 0 {
		return nil, domainErrorf("negative bit index %d", i)
	}
	cur, err := x.TestBit(i)
	if err != nil {
		return nil, err
	}
	want := newVal(cur)
	if want == cur {
		return x, nil
	}
	mask, _ := ONE.ShiftLeft(i)
	if want {
		return x.Or(mask), nil
	}
	return x.AndNot(mask), nil
}
