package mapped

import "time"

// SyncMode controls how chunk windows are flushed to the backing file.
type SyncMode int

const (
	// SyncNone never issues msync; the OS writes pages back at its leisure.
	SyncNone SyncMode = iota

	// SyncAsync schedules writeback without waiting for it.
	SyncAsync

	// SyncSync flushes synchronously and waits for completion.
	SyncSync
)

// standardPageSize is the page granularity used for chunk and overlap
// alignment. OS page-size discovery is a caller concern; callers on exotic
// page sizes pass WithPageSize.
const standardPageSize = 4096

const (
	defaultChunkSize   = 64 << 20
	defaultOverlapSize = 1 << 20
)

// Option configures Open.
type Option func(*File)

// WithChunkSize sets the chunk size. The value is rounded up to a whole
// number of pages.
func WithChunkSize(n int64) Option {
	return func(f *File) { f.chunkSize = n }
}

// WithOverlapSize sets the overlap window appended to each chunk. The value
// is rounded up to a whole number of pages. Values spanning a chunk
// boundary must fit within the overlap.
func WithOverlapSize(n int64) Option {
	return func(f *File) { f.overlapSize = n }
}

// WithSyncMode sets the flush discipline applied by Sync, SyncUpTo and the
// final flush before a chunk is unmapped.
func WithSyncMode(m SyncMode) Option {
	return func(f *File) { f.mode = m }
}

// WithPageSize overrides the assumed page size for alignment and watermark
// rounding.
func WithPageSize(n int64) Option {
	return func(f *File) {
		if n > 0 {
			f.pageSize = n
		}
	}
}

// WithCapacity caps the file's virtual size. Acquisitions past the cap fail
// with ErrBeyondCapacity. Zero means unbounded.
func WithCapacity(n int64) Option {
	return func(f *File) { f.capacity = n }
}

// WithReadOnly opens the file for inspection: no creation, no growth,
// windows mapped without write permission and clipped to the real file
// size (reads past it fail the safe-limit check instead of faulting).
// Writes through a chunk store fail with store.ErrReadOnly; Sync and
// SyncUpTo are no-ops.
func WithReadOnly() Option {
	return func(f *File) { f.readOnly = true }
}

// WithPreFault touches every page of each freshly mapped window during
// acquisition, so a window the OS cannot fully back fails AcquireChunk
// with an error instead of faulting on first access. Uses
// MADV_POPULATE_READ where the kernel supports it, a manual read-through
// elsewhere.
func WithPreFault() Option {
	return func(f *File) { f.preFault = true }
}

// WithChunkObserver installs a diagnostics hook invoked after each fresh
// chunk mapping with the chunk index and the time the mapping took.
func WithChunkObserver(fn func(chunk int64, took time.Duration)) Option {
	return func(f *File) { f.observer = fn }
}
