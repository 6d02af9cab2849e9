package bignum

import "github.com/markkurossi/bignum/internal/mag"

// Add returns x+y.
func (x *BigInt) Add(y *BigInt) *BigInt {
	if x.sign == y.sign {
		return newBigInt(x.sign, mag.Add(x.mag, y.mag))
	}
	if x.IsZero() {
		return y
	}
	if y.IsZero() {
		return x
	}
	switch mag.Cmp(x.mag, y.mag) {
	case 0:
		return ZERO
	case 1:
		return newBigInt(x.sign, mag.Sub(x.mag, y.mag))
	default:
		return newBigInt(y.sign, mag.Sub(y.mag, x.mag))
	}
}

// Cmp returns -1, 0, or +1 according to whether x is less than, equal
// to, or greater than y.
func (x *BigInt) Cmp(y *BigInt) int {
	switch {
	case x.sign != y.sign:
		if x.sign < y.sign {
			return -1
		}
		return 1
	case x.sign == 0:
		return 0
	case x.sign > 0:
		return mag.Cmp(x.mag, y.mag)
	default:
		return mag.Cmp(y.mag, x.mag)
	}
}

// Negate returns -x.
func (x *BigInt) Negate() *BigInt {
	if x.IsZero() {
		return ZERO
	}
	return newBigInt(-x.sign, x.mag)
}

// Abs returns |x|.
func (x *BigInt) Abs() *BigInt {
	if x.sign < 0 {
		return x.Negate()
	}
	return x
}

// Sub returns x-y.
func (x *BigInt) Sub(y *BigInt) *BigInt {
	return x.Add(y.Negate())
}

// Mul returns x*y.
func (x *BigInt) Mul(y *BigInt) *BigInt {
	if x.IsZero() || y.IsZero() {
		return ZERO
	}
	return newBigInt(x.sign*y.sign, mag.Mul(x.mag, y.mag))
}

// Square returns x*x.
func (x *BigInt) Square() *BigInt {
	if x.IsZero() {
		return ZERO
	}
	return newBigInt(1, mag.Square(x.mag))
}

// DivMod returns x/y truncated toward zero and x%y, with
// sign(remainder) in {0, sign(x)}. Fails with ErrDomain when y is
// zero.
func (x *BigInt) DivMod(y *BigInt) (q, r *BigInt, err error) {
	if y.IsZero() {
		return nil, nil, domainErrorf("division by zero")
	}
	if x.IsZero() {
		return ZERO, ZERO, nil
	}
	qm, rm := mag.DivMod(x.mag, y.mag)
	return newBigInt(x.sign*y.sign, qm), newBigInt(x.sign, rm), nil
}

// Div returns x/y truncated toward zero.
func (x *BigInt) Div(y *BigInt) (*BigInt, error) {
	q, _, err := x.DivMod(y)
	return q, err
}

// Rem returns the truncating remainder of x/y (sign follows x).
func (x *BigInt) Rem(y *BigInt) (*BigInt, error) {
	_, r, err := x.DivMod(y)
	return r, err
}

// Mod returns x reduced into [0, m); requires m > 0.
func (x *BigInt) Mod(m *BigInt) (*BigInt, error) {
	if m.sign <= 0 {
		return nil, domainErrorf("modulus must be positive")
	}
	r, err := x.Rem(m)
	if err != nil {
		return nil, err
	}
	if r.sign < 0 {
		return r.Add(m), nil
	}
	return r, nil
}

// Pow returns x^n. Requires n >= 0.
func (x *BigInt) Pow(n int) (*BigInt, error) {
	if n < 0 {
		return nil, domainErrorf("negative exponent %d", n)
	}
	if n == 0 {
		return ONE, nil
	}
	if x.IsZero() {
		return ZERO, nil
	}
	resultSign := 1
	if x.sign < 0 && n%2 == 1 {
		resultSign = -1
	}
	result := mag.FromWord(1)
	base := x.mag
	e := uint(n)
	for e > 0 {
		if e&1 == 1 {
			result = mag.Mul(result, base)
		}
		e >>= 1
		if e > 0 {
			base = mag.Square(base)
		}
	}
	return newBigInt(resultSign, result), nil
}

// ModPow returns x^e mod m. Requires m > 0. A negative e is permitted
// when x is invertible mod m: the result is computed for |e| and then
// inverted.
func (x *BigInt) ModPow(e, m *BigInt) (*BigInt, error) {
	if m.sign <= 0 {
		return nil, domainErrorf("modulus must be positive")
	}
	if mag.Cmp(m.mag, mag.FromWord(1)) == 0 {
		return ZERO, nil
	}

	base, err := x.Mod(m)
	if err != nil {
		return nil, err
	}
	if e.sign < 0 {
		inv, err := base.ModInverse(m)
		if err != nil {
			return nil, err
		}
		return inv.ModPow(e.Negate(), m)
	}
	if e.IsZero() {
		return ONE, nil
	}
	return newBigInt(1, mag.ModPow(base.mag, e.mag, m.mag)), nil
}

// GCD returns the non-negative greatest common divisor of x and y;
// gcd(0,0) = 0 by convention.
func (x *BigInt) GCD(y *BigInt) *BigInt {
	if x.IsZero() && y.IsZero() {
		return ZERO
	}
	return newBigInt(1, mag.GCD(x.mag, y.mag))
}

// ModInverse returns x's multiplicative inverse modulo m. Fails with
// ErrNotInvertible when gcd(x, m) != 1.
func (x *BigInt) ModInverse(m *BigInt) (*BigInt, error) {
	xm, err := x.Mod(m)
	if err != nil {
		return nil, err
	}
	inv, ok := mag.ModInverse(xm.mag, m.mag)
	if !ok {
		return nil, notInvertibleErrorf("%s has no inverse mod %s", x.ToString(10), m.ToString(10))
	}
	return newBigInt(1, inv), nil
}

// Sqrt returns floor(sqrt(x)). Requires x >= 0.
func (x *BigInt) Sqrt() (*BigInt, error) {
	if x.sign < 0 {
		return nil, domainErrorf("square root of negative value")
	}
	if x.IsZero() {
		return ZERO, nil
	}
	return newBigInt(1, mag.Sqrt(x.mag)), nil
}

// IsProbablePrime reports whether x is probably prime at the given
// certainty (certainty <= 0 trivially returns true).
func (x *BigInt) IsProbablePrime(certainty int) bool {
	return mag.IsProbablePrime(x.mag, certainty, sharedRNG())
}

// NextProbablePrime returns the smallest probable prime strictly
// greater than x.
func (x *BigInt) NextProbablePrime() *BigInt {
	if x.sign <= 0 {
		return newBigInt(1, mag.NextProbablePrime(nil, sharedRNG()))
	}
	return newBigInt(1, mag.NextProbablePrime(x.mag, sharedRNG()))
}
