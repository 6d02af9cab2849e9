package mag

import "io"

// PrimeEngine: Miller-Rabin and Lucas-Lehmer probable-primality tests,
// small-prime trial division, BitSieve-based candidate sieving, and
// prime generation (spec.md §4.6).

// smallPrimes holds the odd primes up to 41, generated once at package
// init via a plain sieve of Eratosthenes rather than hand-typed.
var smallPrimes = sieveUpTo(41)[1:]

// smallPrimeProduct is the product of smallPrimes, used to trial-divide
// a small-bit-length candidate against all of them in a single DivMod.
var smallPrimeProduct = func() Mag {
	p := FromWord(1)
	for _, sp := range smallPrimes {
		p = MulByLimb(p, Word(sp))
	}
	return p
}()

func sieveUpTo(limit int) []int {
	composite := make([]bool, limit+1)
	var primes []int
	for n := 2; n <= limit; n++ {
		if composite[n] {
			continue
		}
		primes = append(primes, n)
		for m := n * n; m <= limit; m += n {
			composite[m] = true
		}
	}
	return primes
}

func randomMag(bitLen int, r io.Reader) Mag {
	if bitLen <= 0 {
		return nil
	}
	nbytes := (bitLen + 7) / 8
	buf := make([]byte, nbytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		panic("mag: random source failed: " + err.Error())
	}
	excess := uint(nbytes*8 - bitLen)
	if excess > 0 {
		buf[0] &= byte(0xFF >> excess)
	}
	return FromBigEndianBytes(buf)
}

// millerRabinRound runs one Miller-Rabin round against odd n>2 using witness
// b drawn from r. Returns false (composite) or true (probably prime).
func millerRabinRound(n, nMinus1 Mag, a uint, m Mag, r io.Reader) bool {
	var b Mag
	for {
		b = randomMag(BitLen(n), r)
		if Cmp(b, FromWord(1)) > 0 && Cmp(b, n) < 0 {
			break
		}
	}
	z := ModPow(b, m, n)
	if Cmp(z, FromWord(1)) == 0 || Cmp(z, nMinus1) == 0 {
		return true
	}
	for i := uint(1); i < a; i++ {
		z = ModPow(z, FromWord(2), n)
		if Cmp(z, nMinus1) == 0 {
			return true
		}
		if Cmp(z, FromWord(1)) == 0 {
			return false
		}
	}
	return false
}

// jacobi computes the Jacobi symbol (a/n) for odd positive n, via the
// standard reciprocity-based reduction loop.
func jacobi(a signedMag, n Mag) int {
	result := 1
	nn := n.Clone()
	aa := sOf(modOf(a.m, nn))
	if a.neg {
		aa = sSub(sOf(nn), aa)
	}
	av := aa.m
	for !av.IsZero() {
		for av[0]&1 == 0 {
			av = ShiftRightBits(av, 1)
			r8 := nn[0] & 7
			if r8 == 3 || r8 == 5 {
				result = -result
			}
		}
		av, nn = nn, av
		if av[0]&3 == 3 && nn[0]&3 == 3 {
			result = -result
		}
		av = modOf(av, nn)
	}
	if Cmp(nn, FromWord(1)) == 0 {
		return result
	}
	return 0
}

// LucasLehmer runs the strong Lucas probable-prime test for odd n,
// finding the first D in 5,-7,9,-11,... with Jacobi(D,n) = -1 and
// checking that the (n+1)-th Lucas U-term vanishes mod n.
func LucasLehmer(n Mag) bool {
	d := int64(5)
	var D signedMag
	for {
		D = sOf(FromUint64(uint64(absInt64(d))))
		if d < 0 {
			D.neg = true
		}
		j := jacobi(D, n)
		if j == -1 {
			break
		}
		if j == 0 && Cmp(D.m, n) != 0 {
			return false
		}
		if d > 0 {
			d = -(d + 2)
		} else {
			d = -d + 2
		}
	}

	nPlus1 := AddWord(n, 1)
	bits := BitLen(nPlus1)

	// Lucas U/V recurrence via double-and-add, tracking (U,V) mod n.
	u := FromWord(0)
	v := FromWord(2)
	for i := bits - 1; i >= 0; i-- {
		// Double (P=1): U2 = U*V mod n, V2 = (V^2 + D*U^2)/2 mod n,
		// which equals V^2 - 2*Q^k with Q=(1-D)/4.
		u2 := modOf(mulAuto(u, v), n)
		v2 := sModHalf(sAdd(sOf(Square(v)), sMul(D, sOf(Square(u)))), n)
		u, v = u2, v2
		if Bit(nPlus1, uint(i)) == 1 {
			// Add one step: U' = (U + V)/2, V' = (D*U + V)/2, both
			// mod n with an n-correction before the halving.
			un := sModHalf(sAdd(sOf(u), sOf(v)), n)
			vn := sModHalf(sAdd(sMul(D, sOf(u)), sOf(v)), n)
			u, v = un, vn
		}
	}
	return u.IsZero()
}

// sModHalf computes (s/2) mod n for a signed value s, by first
// reducing into [0,n) then halving (adding n first when the
// representative is odd, matching spec's half-step rule).
func sModHalf(s signedMag, n Mag) Mag {
	red := modOf(s.m, n)
	if s.neg && !red.IsZero() {
		red = Sub(n, red)
	}
	if len(red) > 0 && red[0]&1 == 1 {
		red = Add(red, n)
	}
	return ShiftRightBits(red, 1)
}

func absInt64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// primeRounds returns the Miller-Rabin round count for a candidate of
// the given bit length, per spec.md's table.
func primeRounds(bits int) int {
	switch {
	case bits < 100:
		return 50
	case bits < 256:
		return 27
	case bits < 512:
		return 15
	case bits < 768:
		return 8
	case bits < 1024:
		return 4
	default:
		return 2
	}
}

// primeCheck runs exactly `rounds` Miller-Rabin rounds against n, plus,
// for candidates >= 100 bits, one Lucas-Lehmer test.
func primeCheck(n Mag, rounds int, r io.Reader) bool {
	nMinus1 := SubWord(n, 1)
	a := TrailingZeroBits(nMinus1)
	m := ShiftRightBits(nMinus1, a)
	for i := 0; i < rounds; i++ {
		if !millerRabinRound(n, nMinus1, a, m, r) {
			return false
		}
	}
	if BitLen(n) >= 100 {
		if !LucasLehmer(n) {
			return false
		}
	}
	return true
}

// PrimeToCertainty runs the bit-length-scaled battery of Miller-Rabin
// rounds plus, for candidates >= 100 bits, one Lucas-Lehmer test.
func PrimeToCertainty(n Mag, r io.Reader) bool {
	return primeCheck(n, primeRounds(BitLen(n)), r)
}

// certaintyRounds returns the larger of the bit-length table's safety
// floor and a caller-requested certainty, so an explicit certainty can
// only raise the round count used by generation, never weaken it below
// the table.
func certaintyRounds(bitLen, certainty int) int {
	rounds := primeRounds(bitLen)
	if certainty > rounds {
		return certainty
	}
	return rounds
}

// IsProbablePrime reports whether n (taken as a non-negative magnitude)
// is probably prime at the given certainty; certainty <= 0 trivially
// returns true.
func IsProbablePrime(n Mag, certainty int, r io.Reader) bool {
	if certainty <= 0 {
		return true
	}
	if n.IsZero() || Cmp(n, FromWord(1)) == 0 {
		return false
	}
	if Cmp(n, FromWord(2)) == 0 {
		return true
	}
	if n[0]&1 == 0 {
		return false
	}
	return PrimeToCertainty(n, r)
}

const smallPrimeBitThreshold = 95

// RandomPrime generates a random probable prime of exactly bitLen bits,
// verified to the bit-length table's default round count.
func RandomPrime(bitLen int, r io.Reader) Mag {
	return randomPrimeRounds(bitLen, primeRounds(bitLen), r)
}

// RandomPrimeCertainty generates a random probable prime of exactly
// bitLen bits, verified to at least the requested certainty (rounds of
// Miller-Rabin): the caller-supplied certainty raises the round count
// used against each candidate but never lowers it below the bit-length
// table's safety floor.
func RandomPrimeCertainty(bitLen, certainty int, r io.Reader) Mag {
	return randomPrimeRounds(bitLen, certaintyRounds(bitLen, certainty), r)
}

func randomPrimeRounds(bitLen, rounds int, r io.Reader) Mag {
	if bitLen < smallPrimeBitThreshold {
		return randomSmallPrime(bitLen, rounds, r)
	}
	return randomLargePrime(bitLen, rounds, r)
}

func randomSmallPrime(bitLen, rounds int, r io.Reader) Mag {
	for {
		cand := randomMag(bitLen, r)
		cand = SetBit(cand, uint(bitLen-1), 1)
		cand = SetBit(cand, 0, 1)
		_, rem := DivMod(cand, smallPrimeProduct)
		if bitLen > 6 && hasSmallFactor(rem) {
			continue
		}
		if primeCheck(cand, rounds, r) {
			return cand
		}
	}
}

func hasSmallFactor(rem Mag) bool {
	for _, p := range smallPrimes {
		pw := FromWord(Word(p))
		_, r := DivMod(rem, pw)
		if r.IsZero() {
			return true
		}
	}
	return false
}

// randomLargePrime implements the BitSieve-based candidate search: a
// random even base with the top bit set, a sieve of small-prime
// multiples advanced window-by-window until a survivor passes
// `rounds` Miller-Rabin rounds.
func randomLargePrime(bitLen, rounds int, r io.Reader) Mag {
	sieveLen := (bitLen / 20) * 64
	if sieveLen < 64 {
		sieveLen = 64
	}
	base := randomMag(bitLen, r)
	base = SetBit(base, uint(bitLen-1), 1)
	base = SetBit(base, 0, 0)
	for {
		sieve := newBitSieve(base, sieveLen)
		sieve.sieveSmallPrimes()
		if cand, ok := sieve.firstSurvivor(); ok {
			if primeCheck(cand, rounds, r) {
				return cand
			}
		}
		base = AddWord(base, uint32(2*sieveLen))
	}
}

// NextProbablePrime returns the smallest probable prime strictly
// greater than n, using the same small/large split and sieve strategy
// as RandomPrime.
func NextProbablePrime(n Mag, r io.Reader) Mag {
	bitLen := BitLen(n)
	if bitLen < smallPrimeBitThreshold {
		if Cmp(n, FromWord(2)) < 0 {
			return FromWord(2)
		}
		for _, p := range smallPrimes {
			if Cmp(FromWord(Word(p)), n) > 0 {
				return FromWord(Word(p))
			}
		}
		cand := AddWord(n, 1)
		if cand[0]&1 == 0 {
			cand = AddWord(cand, 1)
		}
		for {
			_, rem := DivMod(cand, smallPrimeProduct)
			if !hasSmallFactor(rem) && PrimeToCertainty(cand, r) {
				return cand
			}
			cand = AddWord(cand, 2)
		}
	}

	sieveLen := (bitLen / 20) * 64
	if sieveLen < 64 {
		sieveLen = 64
	}
	base := n.Clone()
	if base[0]&1 == 1 {
		base = AddWord(base, 1)
	}
	for {
		sieve := newBitSieve(base, sieveLen)
		sieve.sieveSmallPrimes()
		for k, composite := range sieve.bits {
			if composite {
				continue
			}
			cand := AddWord(base, uint32(2*k+1))
			if PrimeToCertainty(cand, r) {
				return cand
			}
		}
		base = AddWord(base, uint32(2*sieveLen))
	}
}

// BitSieve marks composite offsets from an even base: bit i (0-based)
// represents the odd candidate base+2i+1.
type BitSieve struct {
	base Mag
	bits []bool
}

func newBitSieve(base Mag, length int) *BitSieve {
	return &BitSieve{base: base, bits: make([]bool, length)}
}

// sieveSmallPrimes marks every multiple of each small prime within the
// sieve's window of odd candidates base+1, base+3, ..., base+2*len-1.
func (s *BitSieve) sieveSmallPrimes() {
	for _, p := range smallPrimes {
		pm := FromWord(Word(p))
		_, rem := DivMod(s.base, pm)
		r := int(rem.Uint64())
		// first odd offset k (0-indexed) with (base+2k+1) % p == 0
		var start int
		if r == 0 {
			start = (p - 1) / 2
		} else {
			d := p - r
			if d%2 == 0 {
				d += p
			}
			start = (d - 1) / 2
		}
		for k := start; k < len(s.bits); k += p {
			s.bits[k] = true
		}
	}
}

func (s *BitSieve) firstSurvivor() (Mag, bool) {
	for k, composite := range s.bits {
		if composite {
			continue
		}
		return AddWord(s.base, uint32(2*k+1)), true
	}
	return nil, false
}
