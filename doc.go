// Package bignum implements immutable arbitrary-precision signed
// integers: the full arithmetic surface (add, subtract, multiply,
// divide-with-remainder, exponentiation, modular arithmetic including
// modular exponentiation and modular inverse, greatest common divisor,
// bitwise and shift operations, primality testing and prime
// generation, radix conversion) over a sign-magnitude representation.
//
// A BigInt behaves as if stored in infinite-width two's-complement:
// bitwise operators sign-extend the shorter operand, and there is no
// "unsigned right shift". Every BigInt, once constructed, is never
// observed to change; the heavy lifting (multiplication/squaring/
// division algorithm selection, Montgomery modular exponentiation,
// Miller-Rabin/Lucas-Lehmer primality) lives in the internal/mag
// kernel this package is a facade over.
//
// Construction goes through FromBytes, FromSignAndMagnitude,
// FromString, FromRandomBits, or ProbablePrime; ZERO, ONE, and TEN are
// shared constants. No method on *BigInt modifies its receiver or its
// arguments; a method may return one of them as its result when the
// value is unchanged, and there is no in-place variant anywhere in
// this package.
package bignum
