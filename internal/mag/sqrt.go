package mag

// Sqrt returns floor(sqrt(x)) via Newton's method: starting from a
// value known to be too large, repeat z = (z + x/z)/2 until the
// sequence stops decreasing. For x one less than a perfect square the
// sequence oscillates between the true answer and one more than it;
// otherwise it converges and stays.
func Sqrt(x Mag) Mag {
	if Cmp(x, FromWord(1)) <= 0 {
		return x.Clone()
	}

	z1 := ShiftLeftBits(FromWord(1), uint(BitLen(x)/2+1))
	for {
		q, _ := DivMod(x, z1)
		z2 := ShiftRightBits(Add(q, z1), 1)
		if Cmp(z2, z1) >= 0 {
			return z1
		}
		z1 = z2
	}
}
