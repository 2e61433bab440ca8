package bytekit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bytekit/store"
)

func TestParseInt64(t *testing.T) {
	b := NewElastic(64)
	defer b.Release()

	for _, v := range []int64{0, 1, -1, 42, -300, math.MaxInt64, math.MinInt64} {
		b.Clear()
		require.NoError(t, b.AppendInt64(v))
		got, err := b.ParseInt64()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, int64(0), b.ReadRemaining())
	}
}

func TestParseInt64StopsAtNonDigit(t *testing.T) {
	b := NewElastic(64)
	defer b.Release()
	require.NoError(t, b.WriteString("123,456"))

	v, err := b.ParseInt64()
	require.NoError(t, err)
	require.Equal(t, int64(123), v)

	// the separator is left for the caller
	c, err := b.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(','), c)

	v, err = b.ParseInt64()
	require.NoError(t, err)
	require.Equal(t, int64(456), v)
}

func TestParseUint64(t *testing.T) {
	b := NewElastic(64)
	defer b.Release()
	require.NoError(t, b.AppendUint64(math.MaxUint64))

	v, err := b.ParseUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), v)
}

func TestParseNoDigits(t *testing.T) {
	b := NewElastic(64)
	defer b.Release()
	require.NoError(t, b.WriteString("abc"))

	_, err := b.ParseInt64()
	require.ErrorIs(t, err, ErrMalformedNumber)
}

func TestParseFloat64(t *testing.T) {
	values := []float64{0.5, -2.25, 0.3, 3.14159, 42.0, 1e300, 1e-300,
		math.MaxFloat64, math.SmallestNonzeroFloat64}

	b := NewElastic(64)
	defer b.Release()
	for _, v := range values {
		b.Clear()
		require.NoError(t, b.AppendFloat64(v))
		got, err := b.ParseFloat64()
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(v), math.Float64bits(got), "value %v", v)
	}
}

func TestParseFloat64Specials(t *testing.T) {
	b := NewElastic(64)
	defer b.Release()

	require.NoError(t, b.WriteString("NaN Infinity -Infinity"))

	v, err := b.ParseFloat64()
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))

	b.SkipWhitespace()
	v, err = b.ParseFloat64()
	require.NoError(t, err)
	require.True(t, math.IsInf(v, 1))

	b.SkipWhitespace()
	v, err = b.ParseFloat64()
	require.NoError(t, err)
	require.True(t, math.IsInf(v, -1))
}

func TestParseFloat64Malformed(t *testing.T) {
	b := NewElastic(64)
	defer b.Release()
	require.NoError(t, b.WriteString("x1.5"))

	_, err := b.ParseFloat64()
	require.ErrorIs(t, err, ErrMalformedNumber)
	// cursor restored so the caller can recover
	require.Equal(t, int64(0), b.ReadPosition())
}

func TestSkipWhitespace(t *testing.T) {
	b := NewElastic(64)
	defer b.Release()
	require.NoError(t, b.WriteString("  \t\r\n  7"))

	b.SkipWhitespace()
	v, err := b.ParseInt64()
	require.NoError(t, err)
	require.Equal(t, int64(7), v)

	// safe at the frontier
	b.SkipWhitespace()
	require.Equal(t, int64(0), b.ReadRemaining())
}

func TestParseStopsAtSafeLimit(t *testing.T) {
	// A store whose safe limit sits below the readable region, the shape
	// a mapped window clipped to the real file length produces. Digits
	// past the limit must read as end of input, not be dereferenced.
	data := []byte("12345678NaN")
	st := store.WrapDirect(data, 8, nil)
	b := &Bytes{st: st, writePos: int64(len(data)), limit: int64(len(data)), maxCap: int64(len(data))}
	defer b.Release()

	v, err := b.ParseUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(12345678), v)
	require.Equal(t, int64(8), b.ReadPosition())

	// consumeWord is bounded the same way: "NaN" straddles the limit.
	_, err = b.ParseFloat64()
	require.ErrorIs(t, err, ErrMalformedNumber)
	require.Equal(t, int64(8), b.ReadPosition())
}
