package bignum

import (
	"sync/atomic"

	"github.com/markkurossi/bignum/internal/mag"
)

// BigInt is an immutable arbitrary-precision signed integer.
//
// Internally it is sign-magnitude: sign is one of {-1, 0, +1} and mag
// is the absolute value's minimal-form magnitude (empty iff sign==0;
// there is no negative zero). Constructed values are never mutated;
// the lazily-computed fields below are written at most once and
// published through atomic.Int64 so a concurrent reader never
// observes a partially-initialized cache.
type BigInt struct {
	sign int
	mag  mag.Mag

	bitLen      atomic.Int64 // 0 = not yet computed, else value+1
	bitCnt      atomic.Int64
	lowestSetBt atomic.Int64
}

// cache sentinel: 0 means "not yet computed" for all three lazy
// fields, so every cached value is stored as (real value + 1).
const notComputed = 0

// Sign returns -1, 0, or +1 according to whether x is negative, zero,
// or positive.
func (x *BigInt) Sign() int {
	if x == nil {
		return 0
	}
	return x.sign
}

// IsZero reports whether x is the additive identity.
func (x *BigInt) IsZero() bool {
	return x.Sign() == 0
}

func newBigInt(sign int, m mag.Mag) *BigInt {
	if m.IsZero() {
		return &BigInt{sign: 0}
	}
	return &BigInt{sign: sign, mag: m}
}

// ZERO, ONE, and TEN are shared immutable constants; no other values
// are pooled.
var (
	ZERO = newBigInt(0, nil)
	ONE  = newBigInt(1, mag.FromWord(1))
	TEN  = newBigInt(1, mag.FromWord(10))
)

// BitLen returns the number of bits in the minimal two's-complement
// representation of x, excluding the sign bit (0 for x==0).
func (x *BigInt) BitLen() int {
	if cached := x.bitLen.Load(); cached != notComputed {
		return int(cached - 1)
	}
	v := mag.BitLen(x.mag)
	if x.sign < 0 {
		v = mag.BitLen(mag.SubWord(x.mag, 1))
	}
	x.bitLen.CompareAndSwap(notComputed, int64(v)+1)
	return v
}

// BitCount returns the number of set bits in the two's-complement
// representation of x: for x>=0 this is the population count of the
// magnitude; for x<0 it is the number of zero bits of (|x|-1) within
// that value's own bit length.
func (x *BigInt) BitCount() int {
	if cached := x.bitCnt.Load(); cached != notComputed {
		return int(cached - 1)
	}
	var v int
	if x.sign >= 0 {
		v = mag.BitCount(x.mag)
	} else {
		v = bitCountNegative(x.mag)
	}
	x.bitCnt.CompareAndSwap(notComputed, int64(v)+1)
	return v
}

// bitCountNegative counts the zero bits of (|x|-1) within its own bit
// length: that is exactly the population count of x's two's-complement
// form when x is negative.
func bitCountNegative(m mag.Mag) int {
	m1 := mag.SubWord(m, 1)
	n := mag.BitLen(m1)
	return n - mag.BitCount(m1)
}

// LowestSetBit returns the index of the rightmost one-bit in x's
// two's-complement representation, or -1 for x==0.
func (x *BigInt) LowestSetBit() int {
	if x.IsZero() {
		return -1
	}
	if cached := x.lowestSetBt.Load(); cached != notComputed {
		return int(cached - 1)
	}
	v := int(mag.TrailingZeroBits(x.mag))
	x.lowestSetBt.CompareAndSwap(notComputed, int64(v)+1)
	return v
}

// getLimb returns the i-th 32-bit limb (little-endian, limb 0 is
// least significant) of x's infinite-width two's-complement
// representation. This is the "firstNonzeroIntNum" projection: for
// x>=0 it is simply the magnitude's limb i (zero-extended); for x<0
// limbs below the lowest nonzero magnitude limb are copied as-is and
// limbs from that point up are bitwise-complemented, which is exactly
// what negating a sign-magnitude value into two's-complement does one
// limb at a time.
func (x *BigInt) getLimb(i int) uint32 {
	if i < 0 {
		return 0
	}
	if x.sign >= 0 {
		if i >= len(x.mag) {
			return 0
		}
		return uint32(x.mag[i])
	}

	firstNonzero := -1
	for j, w := range x.mag {
		if w != 0 {
			firstNonzero = j
			break
		}
	}
	if firstNonzero == -1 {
		return 0
	}
	if i < firstNonzero {
		return 0
	}
	if i == firstNonzero {
		return uint32(-x.mag[i])
	}
	if i >= len(x.mag) {
		return 0xFFFFFFFF
	}
	return ^uint32(x.mag[i])
}
