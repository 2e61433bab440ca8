package bytekit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexDump(t *testing.T) {
	p := []byte("Hello, world! This line runs past sixteen bytes.\x00\x01\xFF")
	out := HexDump(p)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // 51 bytes, 16 per line

	require.True(t, strings.HasPrefix(lines[0], "00000000  "))
	require.True(t, strings.HasPrefix(lines[1], "00000010  "))
	require.Contains(t, lines[0], "48 65 6c 6c 6f")
	require.Contains(t, lines[0], "|Hello, world! Th|")
	// non-printables render as dots
	require.Contains(t, lines[3], ".")

	require.Empty(t, HexDump(nil))
}

func TestBytesDumpLeavesCursors(t *testing.T) {
	b := NewElastic(16)
	defer b.Release()
	require.NoError(t, b.WriteSlice([]byte{0xDE, 0xAD, 0xBE, 0xEF}))

	out := b.Dump()
	require.Contains(t, out, "de ad be ef")
	require.Equal(t, int64(0), b.ReadPosition())
	require.Equal(t, int64(4), b.WritePosition())
}
