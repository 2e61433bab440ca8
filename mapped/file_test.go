//go:build unix

package mapped

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bytekit/store"
)

func openTestFile(t *testing.T, opts ...Option) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.dat")
	base := []Option{
		WithChunkSize(4096),
		WithOverlapSize(4096),
	}
	f, err := Open(path, append(base, opts...)...)
	require.NoError(t, err)
	return f
}

func TestAcquireGrowsFile(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()

	require.Equal(t, int64(0), f.ActualSize())

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	defer c.Release()

	// chunk 0 window: chunkSize + overlapSize, fully backed.
	require.Equal(t, int64(8192), f.ActualSize())
	require.Equal(t, int64(0), c.Index)
	require.Equal(t, int64(0), c.Base)
	require.Equal(t, int64(8192), c.Capacity())
}

func TestWriteRecordSpanningIntoOverlap(t *testing.T) {
	// A fresh 0-byte file with chunkSize=4096, overlapSize=4096 must take
	// a 5000-byte record at position 0: it fits inside chunk 0's 8192-byte
	// window.
	f := openTestFile(t)
	defer f.Close()

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)

	record := make([]byte, 5000)
	for i := range record {
		record[i] = byte(i)
	}
	require.NoError(t, c.WriteAt(0, record))
	require.NoError(t, c.Release())

	// The bytes that landed in the overlap are chunk 1's territory; read
	// them back through chunk 1's own view.
	c1, err := f.AcquireChunk(4096)
	require.NoError(t, err)
	defer c1.Release()

	require.Equal(t, int64(1), c1.Index)
	tail := make([]byte, 5000-4096)
	require.NoError(t, c1.ReadAt(4096-c1.Base, tail))
	require.Equal(t, record[4096:], tail)
}

func TestChunkBoundaryValueBothViews(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()

	c0, err := f.AcquireChunk(0)
	require.NoError(t, err)
	c1, err := f.AcquireChunk(4096)
	require.NoError(t, err)

	// Straddle the chunk 0 / chunk 1 boundary at file position 4092.
	require.NoError(t, c0.WriteU64(4092-c0.Base, 0x1122334455667788))

	v, err := c1.ReadU64(4092 - c1.Base)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1122334455667788), v)

	require.NoError(t, c0.Release())
	require.NoError(t, c1.Release())
}

func TestChunkCaching(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()

	c1, err := f.AcquireChunk(100)
	require.NoError(t, err)
	c2, err := f.AcquireChunk(200)
	require.NoError(t, err)

	// Same chunk, same store, extra reservation.
	require.Same(t, c1.Store, c2.Store)
	require.Equal(t, 2, c1.RefCount())
	require.Equal(t, 1, f.ChunkCount())

	require.NoError(t, c1.Release())
	require.NoError(t, c2.Release())
	require.Equal(t, 0, f.ChunkCount())
}

func TestChunkResurrection(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	require.NoError(t, c.WriteU32(0, 0xFEEDFACE))
	require.NoError(t, c.Release())

	// The window was unmapped; a fresh acquisition maps it again and the
	// data is still there (written through shared mapping).
	c2, err := f.AcquireChunk(0)
	require.NoError(t, err)
	defer c2.Release()

	require.NotSame(t, c.Store, c2.Store)
	v, err := c2.ReadU32(0)
	require.NoError(t, err)
	require.Equal(t, uint32(0xFEEDFACE), v)
}

func TestNegativePosition(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()

	_, err := f.AcquireChunk(-1)
	require.ErrorIs(t, err, ErrNegativePosition)
}

func TestCapacityCap(t *testing.T) {
	f := openTestFile(t, WithCapacity(8192))
	defer f.Close()

	_, err := f.AcquireChunk(8192)
	require.ErrorIs(t, err, ErrBeyondCapacity)

	c, err := f.AcquireChunk(8191)
	require.NoError(t, err)
	require.NoError(t, c.Release())
}

func TestGrowOnly(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()

	c, err := f.AcquireChunk(3 * 4096)
	require.NoError(t, err)
	size := f.ActualSize()
	require.Equal(t, int64(4*4096+4096), size)
	require.NoError(t, c.Release())

	// Acquiring an earlier chunk never shrinks the file.
	c0, err := f.AcquireChunk(0)
	require.NoError(t, err)
	require.Equal(t, size, f.ActualSize())
	require.NoError(t, c0.Release())
}

func TestAlignmentRounding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "align.dat")
	f, err := Open(path, WithChunkSize(5000), WithOverlapSize(100))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, int64(8192), f.ChunkSize())
	require.Equal(t, int64(4096), f.OverlapSize())
}

func TestSyncUpToWatermark(t *testing.T) {
	f := openTestFile(t, WithSyncMode(SyncSync))
	defer f.Close()

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	defer c.Release()

	require.NoError(t, c.WriteU64(0, 1))
	require.NoError(t, f.SyncUpTo(5000))
	require.Equal(t, int64(4096), f.syncLength)

	// Watermark is monotonic: earlier positions are a no-op.
	require.NoError(t, f.SyncUpTo(100))
	require.Equal(t, int64(4096), f.syncLength)

	require.NoError(t, f.SyncUpTo(8192))
	require.Equal(t, int64(8192), f.syncLength)
}

func TestSyncAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.dat")
	f, err := Open(path, WithChunkSize(4096), WithOverlapSize(4096), WithSyncMode(SyncSync))
	require.NoError(t, err)

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	require.NoError(t, c.WriteU32(100, 0xABCD1234))
	require.NoError(t, f.Sync())

	// The write is visible through the file system.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, byte(0x34), raw[100])

	require.NoError(t, c.Release())
	require.NoError(t, f.Close())
	require.ErrorIs(t, f.Close(), ErrClosed)

	_, err = f.AcquireChunk(0)
	require.ErrorIs(t, err, ErrClosed)
}

func TestFileOutlivesCloseWhileChunksLive(t *testing.T) {
	f := openTestFile(t)

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// The chunk keeps the file handle alive; the store remains usable.
	require.NoError(t, c.WriteU8(0, 7))
	v, err := c.ReadU8(0)
	require.NoError(t, err)
	require.Equal(t, uint8(7), v)

	require.NoError(t, c.Release())
}

func TestChunkObserver(t *testing.T) {
	var mu sync.Mutex
	var seen []int64
	f := openTestFile(t, WithChunkObserver(func(chunk int64, took time.Duration) {
		mu.Lock()
		seen = append(seen, chunk)
		mu.Unlock()
	}))
	defer f.Close()

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	c2, err := f.AcquireChunk(5000)
	require.NoError(t, err)

	// Cached acquisitions do not re-notify.
	c3, err := f.AcquireChunk(1)
	require.NoError(t, err)

	require.Equal(t, []int64{0, 1}, seen)

	require.NoError(t, c.Release())
	require.NoError(t, c2.Release())
	require.NoError(t, c3.Release())
}

func TestConcurrentAcquire(t *testing.T) {
	f := openTestFile(t)
	defer f.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				c, err := f.AcquireChunk(n * 4096)
				if err != nil {
					t.Errorf("AcquireChunk: %v", err)
					return
				}
				if err := c.WriteU8(0, byte(n)); err != nil {
					t.Errorf("WriteU8: %v", err)
				}
				if err := c.Release(); err != nil {
					t.Errorf("Release: %v", err)
				}
			}
		}(int64(i % 4))
	}
	wg.Wait()
}

func TestSyncEvery(t *testing.T) {
	f := openTestFile(t, WithSyncMode(SyncSync))
	defer f.Close()

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	defer c.Release()
	require.NoError(t, c.WriteU32(0, 1))

	stop := f.SyncEvery(time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	stop()
	stop() // idempotent
}

func writeFixtureFile(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.dat")
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadOnlyReads(t *testing.T) {
	path := writeFixtureFile(t, 5000)
	f, err := Open(path, WithChunkSize(4096), WithOverlapSize(4096), WithReadOnly())
	require.NoError(t, err)
	defer f.Close()

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	defer c.Release()

	// The window spans both backed pages; reads stop at the real length.
	require.Equal(t, int64(8192), c.Capacity())
	require.Equal(t, int64(5000), c.SafeLimit())

	v, err := c.ReadU8(4999)
	require.NoError(t, err)
	require.Equal(t, byte(4999%256), v)

	_, err = c.ReadU8(5000)
	require.ErrorIs(t, err, store.ErrUnderflow)

	require.ErrorIs(t, c.WriteU8(0, 1), store.ErrReadOnly)
	require.ErrorIs(t, c.Zero(0, 8), store.ErrReadOnly)

	// The file is never grown.
	require.Equal(t, int64(5000), f.ActualSize())
	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(5000), st.Size())
}

func TestReadOnlyWindowClipped(t *testing.T) {
	path := writeFixtureFile(t, 5000)
	f, err := Open(path, WithChunkSize(4096), WithOverlapSize(4096), WithReadOnly())
	require.NoError(t, err)
	defer f.Close()

	// Chunk 1 has 904 real bytes; its window is clipped to the one page
	// the file still backs.
	c, err := f.AcquireChunk(4096)
	require.NoError(t, err)
	defer c.Release()

	require.Equal(t, int64(4096), c.Capacity())
	require.Equal(t, int64(904), c.SafeLimit())

	v, err := c.ReadU8(0)
	require.NoError(t, err)
	require.Equal(t, byte(4096%256), v)

	// Chunks past the end of the file cannot be mapped at all.
	_, err = f.AcquireChunk(8192)
	require.ErrorIs(t, err, ErrBeyondCapacity)
}

func TestReadOnlySyncNoop(t *testing.T) {
	path := writeFixtureFile(t, 4096)
	f, err := Open(path, WithChunkSize(4096), WithOverlapSize(4096), WithSyncMode(SyncSync), WithReadOnly())
	require.NoError(t, err)
	defer f.Close()

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	defer c.Release()

	require.NoError(t, f.Sync())
	require.NoError(t, f.SyncUpTo(4096))
	require.Equal(t, int64(0), f.syncLength)
}

func TestReadOnlyMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.dat")
	_, err := Open(path, WithReadOnly())
	require.Error(t, err)
}

func TestDatasync(t *testing.T) {
	f := openTestFile(t)

	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	require.NoError(t, c.WriteU64(0, 1))
	require.NoError(t, f.Datasync(false))
	require.NoError(t, c.Release())

	require.NoError(t, f.Close())
	require.ErrorIs(t, f.Datasync(false), ErrClosed)
}

func TestDatasyncReadOnly(t *testing.T) {
	path := writeFixtureFile(t, 4096)
	f, err := Open(path, WithChunkSize(4096), WithOverlapSize(4096), WithReadOnly())
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.Datasync(true))
}
