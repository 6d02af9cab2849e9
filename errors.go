package bignum

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by this package's operations. Callers should
// use errors.Is to test for a specific kind.
var (
	// ErrDomain is returned when an argument violates a mathematical
	// precondition: division by zero, mod with a non-positive modulus,
	// a negative Pow exponent, a negative bit address, a bitLength < 2
	// prime request, or a shift distance of math.MinInt32.
	ErrDomain = errors.New("bignum: domain error")

	// ErrFormat is returned when text or byte input cannot be parsed:
	// empty input, an embedded sign character, an illegal digit, a
	// radix outside [2,36], or a sign/magnitude mismatch.
	ErrFormat = errors.New("bignum: format error")

	// ErrNotInvertible is returned by ModInverse when gcd(value, m) != 1.
	ErrNotInvertible = errors.New("bignum: value has no modular inverse")

	// ErrOutOfRange is returned by the exact-conversion accessors when
	// the value does not fit in the requested width.
	ErrOutOfRange = errors.New("bignum: value out of range")
)

func domainErrorf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, ErrDomain)...)
}

func formatErrorf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, ErrFormat)...)
}

func outOfRangeErrorf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, ErrOutOfRange)...)
}

func notInvertibleErrorf(format string, a ...any) error {
	return fmt.Errorf(format+": %w", append(a, ErrNotInvertible)...)
}
