//go:build unix

package mapped

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrackerCoalesce(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()
	tr := f.NewTracker()

	// Out-of-order, overlapping and adjacent ranges collapse into
	// page-aligned spans; disjoint ones stay separate.
	tr.Add(20000, 100)
	tr.Add(100, 50)
	tr.Add(4000, 200) // crosses the first page boundary
	tr.Add(4096, 10)  // already covered after alignment

	got := tr.Ranges()
	require.Equal(t, []Range{
		{Off: 0, Len: 8192},
		{Off: 16384, Len: 8192},
	}, got)
	require.Equal(t, 4, tr.Pending())

	tr.Reset()
	require.Equal(t, 0, tr.Pending())
	require.Nil(t, tr.Ranges())
}

func TestTrackerAddIgnoresEmpty(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()
	tr := f.NewTracker()

	tr.Add(0, 0)
	tr.Add(100, -5)
	tr.Add(-1, 10)
	require.Equal(t, 0, tr.Pending())
	require.NoError(t, tr.Flush(context.Background()))
}

func TestTrackerFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dirty.dat")
	f, err := Open(path, WithChunkSize(4096), WithOverlapSize(4096), WithSyncMode(SyncSync))
	require.NoError(t, err)
	defer f.Close()

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	defer c.Release()

	tr := f.NewTracker()
	require.NoError(t, c.WriteU32(100, 0xFACEFEED))
	tr.Add(100, 4)
	require.NoError(t, c.WriteU32(5000, 0xBEEF0001))
	tr.Add(5000, 4)

	require.NoError(t, tr.Flush(context.Background()))
	require.Equal(t, 0, tr.Pending())

	// The flushed bytes are visible through the file system.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, byte(0xED), raw[100])
	require.Equal(t, byte(0x01), raw[5000])
}

func TestTrackerFlushCancelled(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	defer c.Release()

	tr := f.NewTracker()
	tr.Add(0, 64)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, tr.Flush(ctx), context.Canceled)

	// Cancelled work stays tracked for a later flush.
	require.Equal(t, 1, tr.Pending())
	require.NoError(t, tr.Flush(context.Background()))
	require.Equal(t, 0, tr.Pending())
}

func TestTrackerUnmappedRangesSkipped(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()

	// Range over a chunk that was never mapped: nothing to sync, no error.
	tr := f.NewTracker()
	tr.Add(100*4096, 64)
	require.NoError(t, tr.Flush(context.Background()))
	require.Equal(t, 0, tr.Pending())
}

func TestTrackerFlushOverlapTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlap.dat")
	f, err := Open(path, WithChunkSize(4096), WithOverlapSize(4096),
		WithSyncMode(SyncNone))
	require.NoError(t, err)
	defer f.Close()

	// Write into chunk 0's overlap tail, past chunk 1's grid start,
	// without ever mapping chunk 1. The flush must go through the
	// window that wrote the bytes.
	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	require.NoError(t, c.WriteU32(4100, 0x0DDBA11))

	tr := f.NewTracker()
	tr.Add(4100, 4)
	require.NoError(t, tr.Flush(context.Background()))
	require.Equal(t, 0, tr.Pending())
	require.NoError(t, c.Release())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, byte(0x11), raw[4100])
	require.Equal(t, byte(0xBA), raw[4101])
}

func TestSyncUpToCoversOverlapTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uptotail.dat")
	f, err := Open(path, WithChunkSize(4096), WithOverlapSize(4096),
		WithSyncMode(SyncNone))
	require.NoError(t, err)
	defer f.Close()

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	require.NoError(t, c.WriteU32(5000, 0xFEEDC0DE))
	require.NoError(t, f.SyncUpTo(8192))
	require.NoError(t, c.Release())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, byte(0xDE), raw[5000])
}
