//go:build unix

package mapped

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreFaultAcquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefault.dat")
	f, err := Open(path, WithChunkSize(4096), WithOverlapSize(4096), WithPreFault())
	require.NoError(t, err)
	defer f.Close()

	// A grown window is fully backed, so pre-faulting succeeds and the
	// chunk behaves normally.
	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	defer c.Release()

	require.NoError(t, c.WriteU64(0, 0x1122334455667788))
	v, err := c.ReadU64(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1122334455667788), v)
}

func TestPreFaultReadOnly(t *testing.T) {
	path := writeFixtureFile(t, 5000)
	f, err := Open(path, WithChunkSize(4096), WithOverlapSize(4096), WithReadOnly(), WithPreFault())
	require.NoError(t, err)
	defer f.Close()

	// The clipped read-only window covers only backed pages, so the
	// pre-fault pass finds nothing to complain about.
	c, err := f.AcquireChunk(0)
	require.NoError(t, err)
	defer c.Release()

	v, err := c.ReadU8(0)
	require.NoError(t, err)
	require.Equal(t, byte(0), v)
}

func TestReadThroughPages(t *testing.T) {
	require.NoError(t, readThroughPages(nil, 4096))
	require.NoError(t, readThroughPages(make([]byte, 1), 4096))
	require.NoError(t, readThroughPages(make([]byte, 10000), 4096))
	require.NoError(t, readThroughPages(make([]byte, 4096), 0))
}
