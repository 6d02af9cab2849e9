package mag

// Burnikel–Ziegler recursive division (spec.md §4.4): a divide-and-
// conquer divisor-normalization scheme that turns one n-limb-divisor
// division into a constant number of (n/2)-limb-divisor divisions,
// bottoming out in schoolbook (Knuth D) once the block size is small.
//
// Throughout, a "block width n" is threaded explicitly as a parameter
// rather than re-derived from len(Mag): a normalized Mag drops leading
// zero limbs, so a block that happens to have a zero top limb must
// still be treated as n limbs wide by its caller.

// burnikelZieglerThreshold is the block limb-width below which the
// recursion bottoms out into schoolbook division.
var burnikelZieglerThreshold = 20

// padTo zero-extends x to exactly limbs words without normalizing
// (callers need a value at a known nominal width).
func padTo(x Mag, limbs int) Mag {
	if len(x) >= limbs {
		return x.Clone()
	}
	z := make(Mag, limbs)
	copy(z, x)
	return z
}

// splitBlocks splits x into count blocks of blockLimbs each, least
// significant first (blocks[0] is the low block).
func splitBlocks(x Mag, blockLimbs, count int) []Mag {
	x = padTo(x, blockLimbs*count)
	blocks := make([]Mag, count)
	for i := 0; i < count; i++ {
		blocks[i] = Mag(x[i*blockLimbs : (i+1)*blockLimbs]).Clone().norm()
	}
	return blocks
}

func allOnes(n int) Mag {
	z := make(Mag, n)
	for i := range z {
		z[i] = wordMax
	}
	return Mag(z).norm()
}

// burnikelZieglerDivMod divides the positive a by the positive b.
func burnikelZieglerDivMod(a, b Mag) (q, r Mag) {
	s := len(b)
	m := 1
	for m*burnikelZieglerThreshold <= s {
		m <<= 1
	}
	n := m * ((s + m - 1) / m)

	sigma := 0
	if need := n * wordBits; need > BitLen(b) {
		sigma = need - BitLen(b)
	}
	as := ShiftLeftBits(a, uint(sigma))
	bs := padTo(ShiftLeftBits(b, uint(sigma)), n)

	t := BitLen(as)/(n*wordBits) + 1
	if t < 2 {
		t = 2
	}
	blocks := splitBlocks(as, n, t)

	rem := Add(ShiftLeftBits(blocks[t-1], uint(n*wordBits)), blocks[t-2])
	qi, ri := divide2n1n(rem, bs, n)
	qParts := []Mag{qi}
	rem = ri
	for i := t - 3; i >= 0; i-- {
		combined := Add(ShiftLeftBits(rem, uint(n*wordBits)), blocks[i])
		qi, ri = divide2n1n(combined, bs, n)
		qParts = append(qParts, qi)
		rem = ri
	}

	for _, part := range qParts {
		q = Add(ShiftLeftBits(q, uint(n*wordBits)), part)
	}
	r = ShiftRightBits(rem, uint(sigma))
	return q, r
}

// divide2n1n divides a (nominally 2n limbs) by b (nominally n limbs).
func divide2n1n(a, b Mag, n int) (q, r Mag) {
	if n%2 != 0 || n < burnikelZieglerThreshold {
		return DivModSchoolbook(a, b)
	}
	h := n / 2
	blocks := splitBlocks(a, h, 4)
	a4, a3, a2, a1 := blocks[0], blocks[1], blocks[2], blocks[3]

	a123 := Add(Add(ShiftLeftBits(a1, uint(2*h*wordBits)), ShiftLeftBits(a2, uint(h*wordBits))), a3)
	q1, r1 := divide3n2n(a123, b, n)

	r1a4 := Add(ShiftLeftBits(r1, uint(h*wordBits)), a4)
	q2, r2 := divide3n2n(r1a4, b, n)

	q = Add(ShiftLeftBits(q1, uint(h*wordBits)), q2)
	return q, r2
}

// divide3n2n divides a (nominally 3n/2 limbs) by b (nominally n limbs).
func divide3n2n(a, b Mag, n int) (q, r Mag) {
	h := n / 2
	blocksA := splitBlocks(a, h, 3)
	a3, a2, a1 := blocksA[0], blocksA[1], blocksA[2]
	blocksB := splitBlocks(b, h, 2)
	b2, b1 := blocksB[0], blocksB[1]

	a12 := Add(ShiftLeftBits(a1, uint(h*wordBits)), a2)

	var qq, rr1 Mag
	if Cmp(a1, b1) < 0 {
		qq, rr1 = divide2n1n(a12, b1, h)
	} else {
		qq = allOnes(h)
		rr1 = Add(Sub(a12, ShiftLeftBits(b1, uint(h*wordBits))), b1)
	}

	rem := Add(ShiftLeftBits(rr1, uint(h*wordBits)), a3)
	qb2 := mulAuto(qq, b2)
	for Cmp(rem, qb2) < 0 {
		rem = Add(rem, b)
		qq = Sub(qq, FromWord(1))
	}
	rem = Sub(rem, qb2)
	return qq, rem
}
