package bignum

import (
	"io"
	"strings"

	"github.com/markkurossi/bignum/internal/mag"
)

// FromBytes constructs a BigInt from its minimum-length big-endian
// two's-complement encoding. An empty slice fails with ErrFormat.
func FromBytes(b []byte) (*BigInt, error) {
	if len(b) == 0 {
		return nil, formatErrorf("empty byte array")
	}
	negative := b[0]&0x80 != 0
	if !negative {
		return newBigInt(1, mag.FromBigEndianBytes(b)), nil
	}

	// Two's-complement negative: magnitude is -(x) = ~x + 1.
	complement := make([]byte, len(b))
	for i, by := range b {
		complement[i] = ^by
	}
	m := mag.AddWord(mag.FromBigEndianBytes(complement), 1)
	return newBigInt(-1, m), nil
}

// FromSignAndMagnitude constructs a BigInt from an explicit sign
// ({-1,0,+1}) and a big-endian unsigned magnitude byte array. sign==0
// requires an all-zero magnitude.
func FromSignAndMagnitude(sign int, magnitude []byte) (*BigInt, error) {
	if sign < -1 || sign > 1 {
		return nil, formatErrorf("invalid sign %d", sign)
	}
	m := mag.FromBigEndianBytes(magnitude)
	if sign == 0 && !m.IsZero() {
		return nil, formatErrorf("sign 0 with nonzero magnitude")
	}
	if m.IsZero() {
		return ZERO, nil
	}
	return newBigInt(sign, m), nil
}

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// FromString parses s in the given radix (2..36). A leading '+' or
// '-' sets the sign; it is only valid at position 0. Fails with
// ErrFormat on empty input, an out-of-range radix, or an illegal
// digit for the radix.
func FromString(s string, radix int) (*BigInt, error) {
	if radix < 2 || radix > 36 {
		return nil, formatErrorf("radix %d out of range [2,36]", radix)
	}
	if len(s) == 0 {
		return nil, formatErrorf("empty string")
	}

	sign := 1
	body := s
	switch s[0] {
	case '-':
		sign = -1
		body = s[1:]
	case '+':
		body = s[1:]
	}
	if len(body) == 0 {
		return nil, formatErrorf("no digits after sign")
	}
	if strings.ContainsAny(body, "+-") {
		return nil, formatErrorf("embedded sign character")
	}

	result := mag.Mag(nil)
	r := mag.FromUint64(uint64(radix))
	for _, c := range body {
		d := -1
		if c < 128 {
			d = strings.IndexByte(digits, byte(toLowerASCII(c)))
		}
		if d < 0 || d >= radix {
			return nil, formatErrorf("illegal digit %q for radix %d", c, radix)
		}
		result = mag.Add(mag.Mul(result, r), mag.FromUint64(uint64(d)))
	}
	if result.IsZero() {
		return ZERO, nil
	}
	return newBigInt(sign, result), nil
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}

// FromRandomBits returns a non-negative random value with the given
// bit length, drawn from r (or the shared RNG when r is nil).
func FromRandomBits(bitLen int, r io.Reader) (*BigInt, error) {
	if bitLen < 0 {
		return nil, domainErrorf("negative bit length %d", bitLen)
	}
	if bitLen == 0 {
		return ZERO, nil
	}
	reader := rngOrDefault(r)
	nbytes := (bitLen + 7) / 8
	buf := make([]byte, nbytes)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return nil, err
	}
	excess := uint(nbytes*8 - bitLen)
	if excess > 0 {
		buf[0] &= byte(0xFF >> excess)
	}
	return newBigInt(1, mag.FromBigEndianBytes(buf)), nil
}

// ProbablePrime returns a random probable prime of the given bit
// length, drawn from r (or the shared RNG when r is nil) and verified
// to at least the requested certainty: certainty is the number of
// Miller-Rabin rounds run against each candidate, raised as needed to
// meet the bit-length table's safety floor but never lowered below it.
// Fails with ErrDomain when bitLength < 2.
func ProbablePrime(bitLength, certainty int, r io.Reader) (*BigInt, error) {
	if bitLength < 2 {
		return nil, domainErrorf("prime bit length %d < 2", bitLength)
	}
	reader := rngOrDefault(r)
	return newBigInt(1, mag.RandomPrimeCertainty(bitLength, certainty, reader)), nil
}
