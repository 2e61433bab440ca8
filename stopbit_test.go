package bytekit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStopBitGolden300(t *testing.T) {
	b := NewElastic(8)
	defer b.Release()

	require.NoError(t, b.WriteStopBit(300))
	got, err := b.ToSlice()
	require.NoError(t, err)
	require.Equal(t, []byte{0xAC, 0x02}, got)

	v, err := b.ReadStopBit()
	require.NoError(t, err)
	require.Equal(t, int64(300), v)
}

func TestStopBitNegativeFraming(t *testing.T) {
	b := NewElastic(8)
	defer b.Release()

	require.NoError(t, b.WriteStopBit(-1))
	got, err := b.ToSlice()
	require.NoError(t, err)
	require.Equal(t, []byte{0x80, 0x00}, got)

	v, err := b.ReadStopBit()
	require.NoError(t, err)
	require.Equal(t, int64(-1), v)

	b.Clear()
	require.NoError(t, b.WriteStopBit(-300))
	got, err = b.ToSlice()
	require.NoError(t, err)
	require.Equal(t, []byte{0xAB, 0x82, 0x00}, got)
}

func TestStopBitRoundTrip(t *testing.T) {
	values := []int64{
		0, 1, 127, 128, 129, 255, 256, 300, 16383, 16384,
		-1, -2, -127, -128, -129, -300, -16384,
		math.MaxInt64, math.MinInt64, math.MaxInt64 - 1, math.MinInt64 + 1,
		1 << 32, -(1 << 32), 1<<56 - 1, 1 << 56,
	}
	b := NewElastic(16)
	defer b.Release()

	for _, want := range values {
		b.Clear()
		require.NoError(t, b.WriteStopBit(want))
		require.Equal(t, int64(StopBitLength(want)), b.WritePosition(),
			"StopBitLength(%d) must match encoded size", want)

		got, err := b.ReadStopBit()
		require.NoError(t, err, "value %d", want)
		require.Equal(t, want, got)
		require.Equal(t, int64(0), b.ReadRemaining())
	}
}

func TestStopBitSingleByteValues(t *testing.T) {
	b := NewElastic(4)
	defer b.Release()

	for n := int64(0); n < 128; n++ {
		b.Clear()
		require.NoError(t, b.WriteStopBit(n))
		require.Equal(t, int64(1), b.WritePosition())
		v, err := b.ReadStopBit()
		require.NoError(t, err)
		require.Equal(t, n, v)
	}
}

func TestStopBitTooManyStopBits(t *testing.T) {
	raw := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	b := WrapRead(raw)
	_, err := b.ReadStopBit()
	require.ErrorIs(t, err, ErrStopBitOverflow)

	// A nonzero terminal byte shifted past the positive range is also
	// malformed, even without excess continuation bytes.
	b2 := WrapRead([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x7F})
	_, err = b2.ReadStopBit()
	require.ErrorIs(t, err, ErrStopBitOverflow)
}

func TestStopBitTruncated(t *testing.T) {
	b := WrapRead([]byte{0xAC})
	_, err := b.ReadStopBit()
	require.ErrorIs(t, err, ErrBufferUnderflow)
}

func TestStopBitLength(t *testing.T) {
	cases := map[int64]int{
		0:             1,
		127:           1,
		128:           2,
		300:           2,
		16383:         2,
		16384:         3,
		-1:            2,
		-128:          2,
		-129:          3,
		-300:          3,
		math.MaxInt64: 9,
		math.MinInt64: 10,
	}
	for n, want := range cases {
		require.Equal(t, want, StopBitLength(n), "StopBitLength(%d)", n)
	}
}
