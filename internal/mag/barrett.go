package mag

// Barrett division with a Newton-iterated fixed-point reciprocal
// (spec.md §4.4): compute μ ≈ 2^(2k)/b once (k = bit length of b) via
// repeated precision doubling seeded from a short schoolbook division,
// then turn each division by b into a multiply by μ plus a bounded
// ±b correction. For dividends wider than 2k bits, μ is reused across
// successive k-bit chunks sliced from the top.

// newtonReciprocal returns floor(2^k / b), computed by doubling the
// working precision from a small schoolbook-seeded estimate via the
// fixed-point Newton step z' = z*2^(newP-p+1) - (b*z^2) >> (2p-newP).
// The seed is floor(2^p / b) for p = bitlen(b)+32, each step grows the
// exponent to 2p-bitlen(b), and each step's result is corrected to the
// exact floor(2^newP / b) before the next one.
func newtonReciprocal(b Mag, k int) Mag {
	bl := BitLen(b)
	p := bl + 32
	if p > k {
		p = k
	}
	z := directReciprocal(b, p)
	for p < k {
		newP := 2*p - bl
		if newP > k {
			newP = k
		}
		z = refineReciprocal(b, z, p, newP)
		p = newP
		one := ShiftLeftBits(FromWord(1), uint(p))
		for Cmp(mulAuto(z, b), one) > 0 {
			z = SubWord(z, 1)
		}
		for Cmp(mulAuto(AddWord(z, 1), b), one) <= 0 {
			z = AddWord(z, 1)
		}
	}
	return z
}

func directReciprocal(b Mag, p int) Mag {
	num := ShiftLeftBits(FromWord(1), uint(p))
	q, _ := divAuto(num, b)
	return q
}

func refineReciprocal(b, z Mag, p, newP int) Mag {
	delta := newP - p
	bzSq := mulAuto(b, Square(z))
	term2 := ShiftRightBits(bzSq, uint(2*p-newP))
	term1 := ShiftLeftBits(z, uint(delta+1))
	if Cmp(term1, term2) <= 0 {
		return directReciprocal(b, newP)
	}
	return Sub(term1, term2)
}

// barrettDivMod divides positive a by positive b via Barrett reduction.
func barrettDivMod(a, b Mag) (q, r Mag) {
	k := BitLen(b)
	mu := newtonReciprocal(b, 2*k)
	if BitLen(a) <= 2*k {
		return barrettStep(a, b, mu, k)
	}
	return barrettChunked(a, b, mu, k)
}

// barrettStep computes a/b, a%b for a dividend known to fit within 2k
// bits (k = BitLen(b)), given a precomputed reciprocal of precision 2k.
func barrettStep(a, b, mu Mag, k int) (q, r Mag) {
	qEst := ShiftRightBits(mulAuto(a, mu), uint(2*k))
	for {
		qb := mulAuto(qEst, b)
		if Cmp(a, qb) < 0 {
			qEst = SubWord(qEst, 1)
			continue
		}
		r := Sub(a, qb)
		if Cmp(r, b) >= 0 {
			qEst = AddWord(qEst, 1)
			continue
		}
		return qEst, r
	}
}

// barrettChunked handles dividends wider than 2k bits by sweeping
// k-bit chunks from the most significant end, reusing mu at every
// step (so each step's working value — the prior remainder prefixed
// to the next chunk — stays within barrettStep's 2k-bit assumption).
func barrettChunked(a, b, mu Mag, k int) (q, r Mag) {
	total := BitLen(a)
	nChunks := (total + k - 1) / k

	var rem Mag
	var qParts []Mag
	for i := nChunks - 1; i >= 0; i-- {
		width := k
		if i*k+k > total {
			width = total - i*k
		}
		chunk := lowBits(ShiftRightBits(a, uint(i*k)), uint(width))
		combined := Add(ShiftLeftBits(rem, uint(width)), chunk)
		qi, ri := barrettStep(combined, b, mu, k)
		qParts = append(qParts, qi)
		rem = ri
	}
	for _, part := range qParts {
		q = Add(ShiftLeftBits(q, uint(k)), part)
	}
	return q, rem
}
