package mag

// Squaring dispatch mirroring MulEngine (spec.md §4.3): schoolbook
// squaring exploits the diagonal/off-diagonal split to halve the
// number of word products relative to a general multiply; Karatsuba
// squaring exploits x*x having no sign to track (xl+xh)^2-p0-p2 needs
// no absolute-value bookkeeping, unlike karatsubaMul's cross term.

// Square returns x*x, respecting ForceSquare for differential testing.
func Square(x Mag) Mag {
	if ForceSquare == AlgoAuto {
		return squareAuto(x)
	}
	return squareForced(ForceSquare, x)
}

func squareAuto(x Mag) Mag {
	n := len(x)
	if n == 0 {
		return nil
	}
	if n == 1 {
		hi, lo := mulWW(x[0], x[0])
		return Mag{lo, hi}.norm()
	}
	switch {
	case n < KaratsubaThreshold:
		return schoolbookSquare(x)
	case n < ToomCookThreshold:
		return karatsubaSquare(x)
	default:
		if useSS(SSSquareRanges, BitLen(x)) {
			return ssSquare(x)
		}
		return toomCook3Mul(x, x)
	}
}

func squareForced(algo Algo, x Mag) Mag {
	if len(x) == 0 {
		return nil
	}
	if len(x) == 1 {
		hi, lo := mulWW(x[0], x[0])
		return Mag{lo, hi}.norm()
	}
	switch algo {
	case AlgoSchoolbook:
		return schoolbookSquare(x)
	case AlgoKaratsuba:
		return karatsubaSquare(x)
	case AlgoToomCook3:
		return toomCook3Mul(x, x)
	case AlgoSchonhageStrassen:
		return ssSquare(x)
	default:
		return squareAuto(x)
	}
}

// schoolbookSquare computes x*x by summing the off-diagonal products
// once, doubling, and adding the diagonal (each x[i]*x[i] term lands
// in its own pair of limb slots, so the diagonal needs no carry
// propagation between terms).
func schoolbookSquare(x Mag) Mag {
	n := len(x)
	if n == 0 {
		return nil
	}
	// Each row's window off[pos:pos+rowLen] overlaps the next row's
	// window, so mulAddVWW must accumulate into off rather than
	// overwrite it; the carry-out is added in turn via addVW.
	off := make(Mag, 2*n)
	for i := 0; i < n-1; i++ {
		if x[i] == 0 {
			continue
		}
		rowLen := n - 1 - i
		pos := 2*i + 1
		c := mulAddVWW(off[pos:pos+rowLen], x[i+1:], x[i], 0)
		if c != 0 {
			addVW(off[pos+rowLen:], off[pos+rowLen:], c)
		}
	}
	doubled := ShiftLeftBits(Mag(off).norm(), 1)

	diag := make(Mag, 2*n)
	for i, xi := range x {
		hi, lo := mulWW(xi, xi)
		diag[2*i] = lo
		diag[2*i+1] = hi
	}
	return Add(doubled, Mag(diag).norm())
}

// karatsubaSquare splits x at half := ceil(n/2) limbs and computes
// xl^2, xh^2 and (xl+xh)^2, recombining the middle cross term as
// (xl+xh)^2 - xl^2 - xh^2 — always non-negative, unlike the general
// multiply's |xh-xl|*|yh-yl| cross term.
func karatsubaSquare(x Mag) Mag {
	n := len(x)
	half := (n + 1) / 2
	if half == 0 || half >= n {
		return schoolbookSquare(x)
	}
	xl, xh := splitAt(x, half)

	p0 := squareAuto(xl)
	p2 := squareAuto(xh)
	mid := squareAuto(Add(xl, xh))
	cross := Sub(mid, Add(p0, p2))

	shift := uint(half) * wordBits
	result := ShiftLeftBits(p2, 2*shift)
	result = Add(result, ShiftLeftBits(cross, shift))
	result = Add(result, p0)
	return result
}
