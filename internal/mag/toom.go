package mag

// Toom-Cook-3 multiplication (spec.md §4.3): split each operand into
// three limb-pieces, evaluate both operand-polynomials at {0, 1, -1,
// 2, infinity}, multiply the five point-values componentwise, and
// interpolate the product polynomial's coefficients back out using
// Bodrato's scheme: two exact halvings and one exact division by 3.

// signedMag is an intermediate value that may be negative during
// Toom-Cook-3's evaluation/interpolation steps even though every
// operand and every final coefficient is non-negative.
type signedMag struct {
	m   Mag
	neg bool
}

func sOf(m Mag) signedMag { return signedMag{m: m} }

func (s signedMag) negate() signedMag {
	if s.m.IsZero() {
		return s
	}
	return signedMag{m: s.m, neg: !s.neg}
}

func sAdd(a, b signedMag) signedMag {
	if a.m.IsZero() {
		return b
	}
	if b.m.IsZero() {
		return a
	}
	if a.neg == b.neg {
		return signedMag{m: Add(a.m, b.m), neg: a.neg}
	}
	switch Cmp(a.m, b.m) {
	case 0:
		return signedMag{}
	case 1:
		return signedMag{m: Sub(a.m, b.m), neg: a.neg}
	default:
		return signedMag{m: Sub(b.m, a.m), neg: b.neg}
	}
}

func sSub(a, b signedMag) signedMag {
	return sAdd(a, b.negate())
}

func sMul(a, b signedMag) signedMag {
	if a.m.IsZero() || b.m.IsZero() {
		return signedMag{}
	}
	return signedMag{m: mulAuto(a.m, b.m), neg: a.neg != b.neg}
}

func sShl(a signedMag, n uint) signedMag {
	if a.m.IsZero() {
		return a
	}
	return signedMag{m: ShiftLeftBits(a.m, n), neg: a.neg}
}

// sHalf performs an exact division by 2; the caller guarantees a.m's
// low bit is 0.
func sHalf(a signedMag) signedMag {
	if a.m.IsZero() {
		return a
	}
	return signedMag{m: ShiftRightBits(a.m, 1), neg: a.neg}
}

// toomInv3 is the multiplicative inverse of 3 modulo 2^32, used by the
// borrow-propagating exact-division-by-3 routine below.
const toomInv3 Word = 0xAAAAAAAB

// exactDivBy3 divides x (an unsigned magnitude known to be an exact
// multiple of 3) by 3, using the classical multiply-by-modular-inverse
// technique with a propagated borrow (Warren, "Hacker's Delight",
// exact division by small odd constants).
func exactDivBy3(x Mag) Mag {
	if x.IsZero() {
		return nil
	}
	q := make(Mag, len(x))
	var borrow int64
	for i, xi := range x {
		t := int64(xi) - borrow
		tw := Word(uint64(t))
		qi := tw * toomInv3
		q[i] = qi
		borrow = (int64(qi)*3 - t) >> 32
	}
	return Mag(q).norm()
}

// sDiv3 performs the exact division of a signedMag by 3.
func sDiv3(a signedMag) signedMag {
	if a.m.IsZero() {
		return a
	}
	return signedMag{m: exactDivBy3(a.m), neg: a.neg}
}

// toMag converts a signedMag known to be non-negative back to a Mag;
// it panics if the interpolation produced a negative "non-negative"
// coefficient, which would indicate an algorithmic bug, not an input
// the caller could have avoided.
func (s signedMag) toMag() Mag {
	if s.neg && !s.m.IsZero() {
		panic("mag: toom-cook interpolation produced a negative coefficient")
	}
	return s.m
}

// splitThree splits v into three limb-pieces of width k (the top piece
// may be shorter than k, or empty, if v is shorter than 2k).
func splitThree(v Mag, k int) (p0, p1, p2 Mag) {
	n := len(v)
	e0 := min(k, n)
	p0 = Mag(v[:e0]).Clone().norm()
	s1, e1 := min(k, n), min(2*k, n)
	if s1 < e1 {
		p1 = Mag(v[s1:e1]).Clone().norm()
	}
	s2 := min(2*k, n)
	if s2 < n {
		p2 = Mag(v[s2:n]).Clone().norm()
	}
	return
}

// toomCook3Mul multiplies x and y via Toom-Cook-3.
func toomCook3Mul(x, y Mag) Mag {
	n := max(len(x), len(y))
	k := (n + 2) / 3
	if k == 0 {
		return schoolbookMul(x, y)
	}

	x0, x1, x2 := splitThree(x, k)
	y0, y1, y2 := splitThree(y, k)

	sx0, sx1, sx2 := sOf(x0), sOf(x1), sOf(x2)
	sy0, sy1, sy2 := sOf(y0), sOf(y1), sOf(y2)

	// evaluation points: 0, 1, -1, 2, infinity
	p0, q0 := sx0, sy0
	p1 := sAdd(sAdd(sx0, sx1), sx2)
	q1 := sAdd(sAdd(sy0, sy1), sy2)
	pm1 := sSub(sAdd(sx0, sx2), sx1)
	qm1 := sSub(sAdd(sy0, sy2), sy1)
	p2 := sAdd(sAdd(sx0, sShl(sx1, 1)), sShl(sx2, 2))
	q2 := sAdd(sAdd(sy0, sShl(sy1, 1)), sShl(sy2, 2))
	pinf, qinf := sx2, sy2

	v0 := sMul(p0, q0)
	v1 := sMul(p1, q1)
	vm1 := sMul(pm1, qm1)
	v2 := sMul(p2, q2)
	vinf := sMul(pinf, qinf)

	c0 := v0
	c4 := vinf

	a := sSub(sSub(v1, c0), c4)
	b := sSub(sSub(vm1, c0), c4)
	cc := sSub(sSub(v2, c0), sShl(c4, 4))

	c2 := sHalf(sAdd(a, b))
	d := sSub(a, c2)
	e := sHalf(sSub(cc, sShl(c2, 2)))
	c3 := sDiv3(sSub(e, d))
	c1 := sSub(d, c3)

	shift := uint(k) * wordBits
	result := c0.toMag()
	result = Add(result, ShiftLeftBits(c1.toMag(), shift))
	result = Add(result, ShiftLeftBits(c2.toMag(), 2*shift))
	result = Add(result, ShiftLeftBits(c3.toMag(), 3*shift))
	result = Add(result, ShiftLeftBits(c4.toMag(), 4*shift))
	return result
}
