package mag

import "math/bits"

// MutableMag is a scratch buffer used by Knuth Algorithm D division:
// an over-allocated backing array plus a logical
// length, so the D1 normalization shift and the successive quotient-
// digit subtractions never reallocate mid-operation. It is created at
// the start of a single division call and discarded before that
// call returns; it never escapes to a caller.
type MutableMag struct {
	buf    []Word
	length int
}

// newScratch allocates a MutableMag with n logical words (and n usable
// words of capacity for callers that need one extra overflow limb,
// pass n+1).
func newScratch(n int) *MutableMag {
	return &MutableMag{buf: make([]Word, n), length: n}
}

// words returns the logical window.
func (m *MutableMag) words() []Word {
	return m.buf[:m.length]
}

// Mag freezes the scratch buffer's current contents into a normalized
// Mag, copying so the scratch buffer remains independently reusable.
func (m *MutableMag) Mag() Mag {
	return Mag(m.words()).Clone().norm()
}

// ---------- DivEngine's schoolbook base case: Knuth Algorithm D ----------

// DivW divides x by the single word y, returning quotient and
// remainder. Requires y != 0.
func DivW(x Mag, y Word) (q Mag, r Word) {
	switch {
	case y == 0:
		panic("mag: division by zero")
	case y == 1:
		return x.Clone(), 0
	case len(x) == 0:
		return nil, 0
	}
	z := make(Mag, len(x))
	r = divWVW(z, 0, x, y)
	return z.norm(), r
}

// DivModSchoolbook computes q, r = u/v, u%v via Knuth's Algorithm D
// (Volume 2, section 4.3.1), the base case for both direct dispatch
// (small operands) and the recursive dividers' own base case. Requires
// v != 0; u and v are unsigned magnitudes.
func DivModSchoolbook(u, v Mag) (q, r Mag) {
	if len(v) == 0 {
		panic("mag: division by zero")
	}
	if Cmp(u, v) < 0 {
		return nil, u.Clone()
	}
	if len(v) == 1 {
		qq, rr := DivW(u, v[0])
		return qq, FromWord(rr)
	}
	return divLarge(u, v)
}

// greaterThan reports whether (x1<<32 + x2) > (y1<<32 + y2).
func greaterThan(x1, x2, y1, y2 Word) bool {
	return x1 > y1 || (x1 == y1 && x2 > y2)
}

// divLarge implements Algorithm D for len(v) >= 2, len(u) >= len(v).
func divLarge(uIn, v Mag) (q, r Mag) {
	n := len(v)
	m := len(uIn) - n

	shift := uint(bits.LeadingZeros32(v[n-1]))
	vv := v
	if shift > 0 {
		vv = make(Mag, n)
		shlVU(vv, v, shift)
	}

	u := newScratch(len(uIn) + 1)
	u.buf[len(uIn)] = shlVU(u.buf[:len(uIn)], uIn, shift)

	qbuf := make(Mag, m+1)
	qhatv := make(Mag, n+1)

	vn1 := vv[n-1]
	var vn2 Word
	if n >= 2 {
		vn2 = vv[n-2]
	}

	for j := m; j >= 0; j-- {
		var qhat, rhat Word
		top := u.buf[j+n]
		if top == vn1 {
			qhat = wordMax
		} else {
			qhat, rhat = divWW(top, u.buf[j+n-1], vn1)
			for {
				hi, lo := mulWW(qhat, vn2)
				var ujn2 Word
				if j+n-2 >= 0 {
					ujn2 = u.buf[j+n-2]
				}
				if !greaterThan(hi, lo, rhat, ujn2) {
					break
				}
				qhat--
				prevRhat := rhat
				rhat += vn1
				if rhat < prevRhat {
					break
				}
			}
		}

		// qhatv is a single scratch buffer reused across iterations;
		// mulAddVWW now accumulates into its destination, so the stale
		// digits from the previous iteration must be cleared first.
		clear(qhatv[:n])
		qhatv[n] = mulAddVWW(qhatv[:n], vv, qhat, 0)
		c := subVV(u.buf[j:j+n+1], u.buf[j:j+n+1], qhatv)
		if c != 0 {
			c2 := addVV(u.buf[j:j+n], u.buf[j:j+n], vv)
			u.buf[j+n] += c2
			qhat--
		}
		qbuf[j] = qhat
	}

	q = Mag(qbuf).norm()
	shrVU(u.buf, u.buf, shift)
	r = Mag(u.buf).norm()
	return q, r
}

// ---------- hybrid binary/Euclidean GCD ----------

// gcdEuclidThreshold is the limb count at which the binary-GCD loop
// hands off to plain Euclidean (mod-based) reduction to finish, per
// spec.md §4.2's "binary GCD until the operands shrink to a threshold,
// then ... simple Euclidean reduction to completion."
const gcdEuclidThreshold = 4

// GCD returns the non-negative greatest common divisor of x and y
// (both unsigned magnitudes); GCD(0,0) = 0 by convention.
func GCD(x, y Mag) Mag {
	if x.IsZero() {
		return y.Clone()
	}
	if y.IsZero() {
		return x.Clone()
	}

	sx := TrailingZeroBits(x)
	sy := TrailingZeroBits(y)
	shift := sx
	if sy < shift {
		shift = sy
	}
	x = ShiftRightBits(x, sx)
	y = ShiftRightBits(y, sy)

	for {
		if len(x) <= gcdEuclidThreshold && len(y) <= gcdEuclidThreshold {
			return ShiftLeftBits(euclidGCD(x, y), shift)
		}
		if Cmp(x, y) > 0 {
			x, y = y, x
		}
		y = Sub(y, x)
		if y.IsZero() {
			return ShiftLeftBits(x, shift)
		}
		y = ShiftRightBits(y, TrailingZeroBits(y))
	}
}

// euclidGCD finishes a GCD computation by plain Euclidean reduction
// once both operands are small.
func euclidGCD(x, y Mag) Mag {
	for !y.IsZero() {
		_, r := DivModSchoolbook(x, y)
		x, y = y, r
	}
	return x
}
