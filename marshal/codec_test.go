package marshal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bytekit"
)

type sample struct {
	Flag    bool
	Count   int64
	Small   int32
	Ratio   float64
	Ratio32 float32
	Name    string
	Raw     []byte
	Scores  []int64
	Inner   inner
	Link    *inner

	hidden int // unexported, never on the wire
}

type inner struct {
	ID   int64
	Note string
}

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec()
	b := bytekit.NewElastic(32)
	defer b.Release()

	in := sample{
		Flag:    true,
		Count:   -300,
		Small:   127,
		Ratio:   0.5,
		Ratio32: 1.25,
		Name:    "héllo",
		Raw:     []byte{0x00, 0xFF, 0x10},
		Scores:  []int64{1, 128, -1},
		Inner:   inner{ID: 7, Note: "nested"},
		Link:    &inner{ID: 9, Note: ""},
		hidden:  42,
	}
	require.NoError(t, c.Encode(b, &in))

	var out sample
	require.NoError(t, c.Decode(b, &out))

	require.Equal(t, 0, out.hidden)
	out.hidden = in.hidden
	require.Equal(t, in, out)
	require.Equal(t, int64(0), b.ReadRemaining())
}

func TestCodecNilPointerField(t *testing.T) {
	c := NewCodec()
	b := bytekit.NewElastic(32)
	defer b.Release()

	in := sample{Name: "x"}
	require.NoError(t, c.Encode(b, &in))

	var out sample
	require.NoError(t, c.Decode(b, &out))
	require.Nil(t, out.Link)
	require.Equal(t, "x", out.Name)
}

func TestCodecPlanCacheReused(t *testing.T) {
	c := NewCodec()
	b := bytekit.NewElastic(32)
	defer b.Release()

	require.NoError(t, c.Encode(b, &inner{ID: 1}))
	require.NoError(t, c.Encode(b, &inner{ID: 2}))

	c.mu.RLock()
	n := len(c.plans)
	c.mu.RUnlock()
	require.Equal(t, 1, n)
}

func TestCodecDecodeTargets(t *testing.T) {
	c := NewCodec()
	b := bytekit.NewElastic(8)
	defer b.Release()

	require.ErrorIs(t, c.Decode(b, inner{}), ErrNotPointer)
	var p *inner
	require.ErrorIs(t, c.Decode(b, p), ErrNotPointer)
	var n int
	require.ErrorIs(t, c.Decode(b, &n), ErrNotPointer)
}

func TestCodecUnsupportedType(t *testing.T) {
	type bad struct {
		M map[string]int
	}
	c := NewCodec()
	b := bytekit.NewElastic(8)
	defer b.Release()

	err := c.Encode(b, &bad{})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestCodecEmptyValues(t *testing.T) {
	c := NewCodec()
	b := bytekit.NewElastic(8)
	defer b.Release()

	var in sample
	require.NoError(t, c.Encode(b, &in))

	var out sample
	require.NoError(t, c.Decode(b, &out))
	require.Equal(t, in, out)
}

type arrayed struct {
	Key    [4]byte
	Counts [3]int64
	Rows   []inner
}

func TestCodecArrays(t *testing.T) {
	c := NewCodec()
	b := bytekit.NewElastic(32)
	defer b.Release()

	in := arrayed{
		Key:    [4]byte{0xDE, 0xAD, 0xBE, 0xEF},
		Counts: [3]int64{1, -300, 1 << 40},
		Rows: []inner{
			{ID: 1, Note: "a"},
			{ID: 2, Note: "b"},
		},
	}
	require.NoError(t, c.Encode(b, &in))

	var out arrayed
	require.NoError(t, c.Decode(b, &out))
	require.Equal(t, in, out)
}

func TestCodecByteArrayWidth(t *testing.T) {
	c := NewCodec()
	b := bytekit.NewElastic(32)
	defer b.Release()

	// Array lengths live in the type, so a [4]byte is exactly four bytes
	// on the wire.
	in := struct{ Key [4]byte }{Key: [4]byte{1, 2, 3, 4}}
	require.NoError(t, c.Encode(b, &in))
	require.Equal(t, int64(4), b.WritePosition())
}

func TestCodecSliceOfStructs(t *testing.T) {
	c := NewCodec()
	b := bytekit.NewElastic(32)
	defer b.Release()

	in := struct{ Rows []inner }{
		Rows: []inner{{ID: 10, Note: "x"}, {ID: 20, Note: ""}, {ID: -1, Note: "z"}},
	}
	require.NoError(t, c.Encode(b, &in))

	var out struct{ Rows []inner }
	require.NoError(t, c.Decode(b, &out))
	require.Equal(t, in.Rows, out.Rows)
}

// packedPoint writes its own compact layout instead of the reflective
// one.
type packedPoint struct {
	X, Y int8
}

func (p *packedPoint) WriteMarshallable(b *bytekit.Bytes) error {
	if err := b.WriteI8(p.X); err != nil {
		return err
	}
	return b.WriteI8(p.Y)
}

func (p *packedPoint) ReadMarshallable(b *bytekit.Bytes) error {
	x, err := b.ReadI8()
	if err != nil {
		return err
	}
	y, err := b.ReadI8()
	if err != nil {
		return err
	}
	p.X, p.Y = x, y
	return nil
}

func TestCodecMarshallableField(t *testing.T) {
	type shape struct {
		Name   string
		Origin packedPoint
	}

	c := NewCodec()
	b := bytekit.NewElastic(32)
	defer b.Release()

	in := shape{Name: "dot", Origin: packedPoint{X: -3, Y: 7}}
	require.NoError(t, c.Encode(b, &in))

	var out shape
	require.NoError(t, c.Decode(b, &out))
	require.Equal(t, in, out)
	require.Equal(t, int64(0), b.ReadRemaining())
}

func TestCodecMarshallableFieldByValue(t *testing.T) {
	type shape struct {
		Origin packedPoint
	}

	c := NewCodec()
	b := bytekit.NewElastic(16)
	defer b.Release()

	// Encoding a non-pointer struct leaves fields unaddressable; the
	// codec must still reach the pointer-receiver methods.
	require.NoError(t, c.Encode(b, shape{Origin: packedPoint{X: 1, Y: 2}}))

	var out shape
	require.NoError(t, c.Decode(b, &out))
	require.Equal(t, packedPoint{X: 1, Y: 2}, out.Origin)
}

func TestCodecMarshallableSliceElements(t *testing.T) {
	type path struct {
		Points []packedPoint
	}

	c := NewCodec()
	b := bytekit.NewElastic(32)
	defer b.Release()

	in := path{Points: []packedPoint{{1, 2}, {-1, -2}, {0, 0}}}
	require.NoError(t, c.Encode(b, &in))

	var out path
	require.NoError(t, c.Decode(b, &out))
	require.Equal(t, in, out)
}
