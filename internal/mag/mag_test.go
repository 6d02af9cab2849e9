package mag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromUint64RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 2, 0xFFFFFFFF, 0x100000000, 0xFFFFFFFFFFFFFFFF} {
		m := FromUint64(v)
		require.Equal(t, v, m.Uint64())
	}
}

func TestBigEndianBytesRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01},
		{0xFF},
		{0x01, 0x00},
		{0xDE, 0xAD, 0xBE, 0xEF, 0x01},
	}
	for _, b := range cases {
		m := FromBigEndianBytes(b)
		got := ToBigEndianBytes(m)
		// Minimal-length re-encoding: strip leading zero bytes from b
		// before comparing (empty/zero collapses to nil).
		trimmed := b
		for len(trimmed) > 0 && trimmed[0] == 0 {
			trimmed = trimmed[1:]
		}
		if len(trimmed) == 0 {
			require.Nil(t, got)
		} else {
			require.Equal(t, trimmed, got)
		}
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	a := FromUint64(123456789012345)
	b := FromUint64(987654321)
	sum := Add(a, b)
	back := Sub(sum, b)
	require.Equal(t, 0, Cmp(a, back))
}

func TestShiftRoundTrip(t *testing.T) {
	a := FromUint64(0x1234567890ABCDEF)
	shifted := ShiftLeftBits(a, 37)
	back := ShiftRightBits(shifted, 37)
	require.Equal(t, 0, Cmp(a, back))
}

func TestBitOps(t *testing.T) {
	a := FromUint64(0xF0F0)
	require.Equal(t, uint(1), Bit(a, 4))
	require.Equal(t, uint(0), Bit(a, 0))

	b := SetBit(FromUint64(0), 5, 1)
	require.Equal(t, uint64(32), b.Uint64())
}

func TestCmp(t *testing.T) {
	require.Equal(t, 0, Cmp(nil, nil))
	require.Equal(t, -1, Cmp(FromWord(1), FromWord(2)))
	require.Equal(t, 1, Cmp(FromWord(2), FromWord(1)))
}
