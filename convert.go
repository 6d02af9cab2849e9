package bignum

import (
	"math"
	"strconv"
	"strings"

	"github.com/markkurossi/bignum/internal/mag"
)

// ToByteArray returns the minimum-length big-endian two's-complement
// encoding of x, always at least one byte long with at least one sign
// bit of headroom.
func (x *BigInt) ToByteArray() []byte {
	if x.IsZero() {
		return []byte{0}
	}
	if x.sign > 0 {
		b := mag.ToBigEndianBytes(x.mag)
		if len(b) == 0 || b[0]&0x80 != 0 {
			return append([]byte{0}, b...)
		}
		return b
	}

	// Negative: magnitude-1, complement, left-pad to a byte boundary
	// with a leading sign byte when the top bit of the complement
	// would otherwise read as positive.
	m1 := mag.SubWord(x.mag, 1)
	b := mag.ToBigEndianBytes(m1)
	nbytes := (mag.BitLen(m1) + 8) / 8
	if nbytes < 1 {
		nbytes = 1
	}
	out := make([]byte, nbytes)
	offset := nbytes - len(b)
	copy(out[offset:], b)
	for i := range out {
		out[i] = ^out[i]
	}
	return out
}

// largestRadixChunk returns, for a given radix, the largest power of
// radix that fits in a 64-bit word along with the digit count of that
// chunk, so ToString can convert in per-chunk groups instead of
// per-digit.
func largestRadixChunk(radix int) (chunkValue uint64, digitsPerChunk int) {
	chunkValue = 1
	r := uint64(radix)
	for {
		next := chunkValue * r
		if next/r != chunkValue {
			return chunkValue, digitsPerChunk
		}
		chunkValue = next
		digitsPerChunk++
	}
}

// ToString renders x in the given radix, defaulting to 10 when radix
// is outside [2,36]. Conversion proceeds by repeated division by the
// largest power of radix fitting a 64-bit word, emitting one chunk per
// division and left-padding every chunk but the most significant to
// the fixed per-chunk digit width.
func (x *BigInt) ToString(radix int) string {
	if radix < 2 || radix > 36 {
		radix = 10
	}
	if x.IsZero() {
		return "0"
	}

	chunkValue, digitsPerChunk := largestRadixChunk(radix)
	chunkMag := mag.FromUint64(chunkValue)

	var chunks []uint64
	m := x.mag
	for !m.IsZero() {
		var q, r mag.Mag
		q, r = mag.DivMod(m, chunkMag)
		chunks = append(chunks, r.Uint64())
		m = q
	}

	var sb strings.Builder
	if x.sign < 0 {
		sb.WriteByte('-')
	}
	for i := len(chunks) - 1; i >= 0; i-- {
		s := strconv.FormatUint(chunks[i], radix)
		if i != len(chunks)-1 {
			for len(s) < digitsPerChunk {
				s = "0" + s
			}
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// String implements fmt.Stringer, rendering x in base 10.
func (x *BigInt) String() string {
	return x.ToString(10)
}

// IntValue returns the low 32 bits of x's two's-complement
// representation, possibly sign-flipping truncation.
func (x *BigInt) IntValue() int32 {
	return int32(x.getLimb(0))
}

// LongValue returns the low 64 bits of x's two's-complement
// representation, possibly sign-flipping truncation.
func (x *BigInt) LongValue() int64 {
	lo := uint64(x.getLimb(0))
	hi := uint64(x.getLimb(1))
	return int64(hi<<32 | lo)
}

// IntValueExact returns the int32 value of x, failing with
// ErrOutOfRange when x does not fit.
func (x *BigInt) IntValueExact() (int32, error) {
	v := x.LongValue()
	if v < math.MinInt32 || v > math.MaxInt32 || x.BitLen() > 31 {
		return 0, outOfRangeErrorf("%s does not fit in int32", x.ToString(10))
	}
	return int32(v), nil
}

// LongValueExact returns the int64 value of x, failing with
// ErrOutOfRange when x does not fit.
func (x *BigInt) LongValueExact() (int64, error) {
	if x.BitLen() > 63 {
		return 0, outOfRangeErrorf("%s does not fit in int64", x.ToString(10))
	}
	return x.LongValue(), nil
}

// ShortValueExact returns the int16 value of x, failing with
// ErrOutOfRange when x does not fit.
func (x *BigInt) ShortValueExact() (int16, error) {
	v := x.LongValue()
	if v < math.MinInt16 || v > math.MaxInt16 || x.BitLen() > 15 {
		return 0, outOfRangeErrorf("%s does not fit in int16", x.ToString(10))
	}
	return int16(v), nil
}

// ByteValueExact returns the int8 value of x, failing with
// ErrOutOfRange when x does not fit.
func (x *BigInt) ByteValueExact() (int8, error) {
	v := x.LongValue()
	if v < math.MinInt8 || v > math.MaxInt8 || x.BitLen() > 7 {
		return 0, outOfRangeErrorf("%s does not fit in int8", x.ToString(10))
	}
	return int8(v), nil
}

// FloatValue converts x via a decimal round-trip; values outside the
// float32 range collapse to +/-Inf.
func (x *BigInt) FloatValue() float32 {
	f, _ := strconv.ParseFloat(x.ToString(10), 32)
	return float32(f)
}

// DoubleValue converts x via a decimal round-trip; values outside the
// float64 range collapse to +/-Inf.
func (x *BigInt) DoubleValue() float64 {
	f, _ := strconv.ParseFloat(x.ToString(10), 64)
	return f
}
