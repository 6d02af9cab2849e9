package mag

// MulEngine: dispatch among grade-school, Karatsuba, Toom-Cook-3 and
// Schönhage–Strassen multiplication, by operand size (spec.md §4.3).

// Mul returns x*y, respecting ForceMul for differential testing.
func Mul(x, y Mag) Mag {
	if ForceMul == AlgoAuto {
		return mulAuto(x, y)
	}
	return mulForced(ForceMul, x, y)
}

// mulAuto is the normal size-based dispatcher; it is also what every
// kernel's internal recursive sub-multiplications call, so a forced
// top-level algorithm doesn't recursively force itself on every
// sub-problem.
func mulAuto(x, y Mag) Mag {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	if len(x) == 1 {
		return MulByLimb(y, x[0])
	}
	if len(y) == 1 {
		return MulByLimb(x, y[0])
	}

	minLen := len(x)
	if len(y) < minLen {
		minLen = len(y)
	}

	switch {
	case minLen < KaratsubaThreshold:
		return schoolbookMul(x, y)
	case minLen < ToomCookThreshold:
		return karatsubaMul(x, y)
	default:
		bx, by := BitLen(x), BitLen(y)
		if useSS(SSMulRanges, bx) && useSS(SSMulRanges, by) {
			return ssMul(x, y)
		}
		return toomCook3Mul(x, y)
	}
}

// mulForced multiplies using exactly the named algorithm, used by
// differential tests to confirm every kernel agrees. Degenerate cases
// (a single-limb operand) are still special-cased since every kernel
// below assumes at least one piece per side.
func mulForced(algo Algo, x, y Mag) Mag {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	switch algo {
	case AlgoSchoolbook:
		return schoolbookMul(x, y)
	case AlgoKaratsuba:
		if len(x) == 1 {
			return MulByLimb(y, x[0])
		}
		if len(y) == 1 {
			return MulByLimb(x, y[0])
		}
		return karatsubaMul(x, y)
	case AlgoToomCook3:
		if len(x) == 1 {
			return MulByLimb(y, x[0])
		}
		if len(y) == 1 {
			return MulByLimb(x, y[0])
		}
		return toomCook3Mul(x, y)
	case AlgoSchonhageStrassen:
		if len(x) == 1 {
			return MulByLimb(y, x[0])
		}
		if len(y) == 1 {
			return MulByLimb(x, y[0])
		}
		return ssMul(x, y)
	default:
		return mulAuto(x, y)
	}
}

// schoolbookMul is the O(n*m) grade-school multiply: z[i+j] += x[i]*y[j].
// Each row's carry-out lands one limb above the row's window, which is
// the top limb of the next row's window, so rows must accumulate into
// z rather than overwrite it.
func schoolbookMul(x, y Mag) Mag {
	z := make(Mag, len(x)+len(y))
	for i, yi := range y {
		if yi == 0 {
			continue
		}
		z[i+len(x)] += mulAddVWW(z[i:i+len(x)], x, yi, 0)
	}
	return z.norm()
}

// karatsubaAdd performs z[0:n+n/2] += x[0:n] in place without
// allocating. karatsubaMul does not call it.
func karatsubaAdd(z, x Mag, n int) {
	c := addVV(z[:n], z[:n], x)
	if c != 0 {
		addVW(z[n:n+n/2], z[n:n+n/2], c)
	}
}

func karatsubaSub(z, x Mag, n int) {
	c := subVV(z[:n], z[:n], x)
	if c != 0 {
		subVW(z[n:n+n/2], z[n:n+n/2], c)
	}
}

// karatsubaMul multiplies x and y (arbitrary, possibly unequal
// lengths) via the standard high/low split (spec.md §4.3): split each
// operand at half := ceil(max/2) limbs, compute p2=xh*yh, p0=xl*yl,
// p1=|xh-xl|*|yh-yl|, and combine p2*B^2 + (p0+p2 ∓ p1)*B + p0, adding
// p1 when (xh-xl) and (yh-yl) differ in sign and subtracting it
// otherwise.
func karatsubaMul(x, y Mag) Mag {
	n := len(x)
	if len(y) > n {
		n = len(y)
	}
	half := (n + 1) / 2
	if half == 0 || half >= len(x) && half >= len(y) {
		return schoolbookMul(x, y)
	}

	xl, xh := splitAt(x, half)
	yl, yh := splitAt(y, half)

	p0 := mulAuto(xl, yl) // low*low
	p2 := mulAuto(xh, yh) // high*high

	xs, xNeg := absDiff(xh, xl)
	ys, yNeg := absDiff(yh, yl)
	p1 := mulAuto(xs, ys)
	p1Neg := xNeg != yNeg

	// middle term m = xh*yl + xl*yh = p2 + p0 - p1Neg ? ... ; derive via
	// m = p0 + p2 - sign(p1)*p1  where p1 = |xh-xl|*|yh-yl|
	mid := Add(p0, p2)
	var cross Mag
	if p1Neg {
		cross = Add(mid, p1)
	} else {
		if Cmp(mid, p1) >= 0 {
			cross = Sub(mid, p1)
		} else {
			cross = Sub(p1, mid)
		}
	}

	shift := uint(half) * wordBits
	result := ShiftLeftBits(p2, 2*shift)
	result = Add(result, ShiftLeftBits(cross, shift))
	result = Add(result, p0)
	return result
}

// splitAt splits x into (low, high) at limb index k: x = high*B^k + low.
func splitAt(x Mag, k int) (lo, hi Mag) {
	if k >= len(x) {
		return x.Clone(), nil
	}
	lo = Mag(x[:k]).Clone().norm()
	hi = Mag(x[k:]).Clone().norm()
	return lo, hi
}

// absDiff returns |a-b| and whether the true difference a-b is negative.
func absDiff(a, b Mag) (Mag, bool) {
	switch Cmp(a, b) {
	case 0:
		return nil, false
	case 1:
		return Sub(a, b), false
	default:
		return Sub(b, a), true
	}
}
