package mapped

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joshuapare/bytekit/internal/refcnt"
	"github.com/joshuapare/bytekit/store"
)

// File maps a backing file as a series of fixed-size, overlapping,
// reference-counted chunk windows. See the package documentation for the
// caching and lifetime model.
type File struct {
	path string
	f    *os.File

	chunkSize   int64
	overlapSize int64
	pageSize    int64
	capacity    int64
	mode        SyncMode
	readOnly    bool
	preFault    bool
	observer    func(chunk int64, took time.Duration)

	// mu guards chunk slots and file growth. Growth must be exclusive:
	// two goroutines extending the file concurrently would race the
	// length, and a mapping taken against the shorter length faults.
	mu       sync.Mutex
	chunks   map[int64]*chunkSlot
	fileSize int64

	syncMu     sync.Mutex
	syncLength int64

	refs   *refcnt.Counter
	closed bool
}

// chunkSlot caches a chunk store without holding a reservation on it. gen
// increments every time the slot is repopulated, so diagnostics can tell a
// resurrected chunk from the original.
type chunkSlot struct {
	store *store.Store
	gen   uint64
}

// Chunk is a reference-counted view of one mapped window. Offsets within
// the embedded store are window-relative: file position p lives at store
// offset p - Base. Release the embedded store when done.
type Chunk struct {
	*store.Store
	Index int64
	Base  int64
}

// Open opens (creating if necessary) the file at path for chunked mapping.
func Open(path string, opts ...Option) (*File, error) {
	f := &File{
		path:        path,
		chunkSize:   defaultChunkSize,
		overlapSize: defaultOverlapSize,
		pageSize:    standardPageSize,
		mode:        SyncNone,
		chunks:      make(map[int64]*chunkSlot),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.chunkSize = alignUp(f.chunkSize, f.pageSize)
	f.overlapSize = alignUp(f.overlapSize, f.pageSize)
	if f.chunkSize <= 0 {
		return nil, fmt.Errorf("mapped: invalid chunk size %d", f.chunkSize)
	}

	flags := os.O_RDWR | os.O_CREATE
	if f.readOnly {
		flags = os.O_RDONLY
	}
	osf, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mapped: open %s: %w", path, err)
	}
	st, err := osf.Stat()
	if err != nil {
		_ = osf.Close()
		return nil, fmt.Errorf("mapped: stat %s: %w", path, err)
	}
	f.f = osf
	f.fileSize = st.Size()
	f.refs = refcnt.New(func() {
		_ = osf.Close()
	})
	return f, nil
}

func alignUp(n, page int64) int64 {
	if page <= 0 || n <= 0 {
		return n
	}
	rem := n % page
	if rem == 0 {
		return n
	}
	return n + page - rem
}

// ChunkSize returns the effective (page-aligned) chunk size.
func (f *File) ChunkSize() int64 { return f.chunkSize }

// OverlapSize returns the effective (page-aligned) overlap size.
func (f *File) OverlapSize() int64 { return f.overlapSize }

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// ActualSize returns the current length of the backing file.
func (f *File) ActualSize() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fileSize
}

// ChunkCount returns the number of chunk windows currently cached live.
func (f *File) ChunkCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.chunks {
		if s.store != nil {
			n++
		}
	}
	return n
}

// AcquireChunk returns a reserved chunk window covering position. The
// caller owns one reservation on the returned store and must release it.
// The file is grown as needed so the whole window is backed.
func (f *File) AcquireChunk(position int64) (Chunk, error) {
	if position < 0 {
		return Chunk{}, fmt.Errorf("%w: %d", ErrNegativePosition, position)
	}
	if f.capacity > 0 && position >= f.capacity {
		return Chunk{}, fmt.Errorf("%w: position %d, capacity %d", ErrBeyondCapacity, position, f.capacity)
	}
	index := position / f.chunkSize

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return Chunk{}, ErrClosed
	}

	// Cached and still alive? TryReserve loses against a concurrent final
	// release, in which case the chunk is rebuilt below.
	if slot, ok := f.chunks[index]; ok && slot.store != nil && slot.store.TryReserve() {
		return Chunk{Store: slot.store, Index: index, Base: index * f.chunkSize}, nil
	}

	st, err := f.mapChunkLocked(index)
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{Store: st, Index: index, Base: index * f.chunkSize}, nil
}

// mapChunkLocked grows the file if needed, maps the chunk window and caches
// it. Called with f.mu held. The returned store carries the caller's
// reservation.
func (f *File) mapChunkLocked(index int64) (*store.Store, error) {
	start := time.Now()

	base := index * f.chunkSize
	windowLen := f.chunkSize + f.overlapSize
	safeLimit := windowLen
	if f.readOnly {
		// No growth: clip the window to whole mapped pages of the real
		// file, and reads to its real length.
		avail := f.fileSize - base
		if avail <= 0 {
			return nil, fmt.Errorf("%w: chunk %d starts at %d, file is %d bytes",
				ErrBeyondCapacity, index, base, f.fileSize)
		}
		windowLen = min64(windowLen, alignUp(avail, f.pageSize))
		safeLimit = min64(avail, windowLen)
	} else if need := base + windowLen; f.fileSize < need {
		// Grow-only; the file never shrinks.
		if err := f.f.Truncate(need); err != nil {
			return nil, fmt.Errorf("mapped: grow %s to %d: %w", f.path, need, err)
		}
		f.fileSize = need
	}

	data, err := mapRegion(int(f.f.Fd()), base, int(windowLen), f.readOnly)
	if err != nil {
		return nil, fmt.Errorf("mapped: map chunk %d of %s: %w", index, f.path, err)
	}
	if f.preFault {
		if err := preFaultRegion(data, f.pageSize); err != nil {
			_ = unmapRegion(data)
			return nil, fmt.Errorf("mapped: chunk %d of %s: %w", index, f.path, err)
		}
	}

	// The chunk holds the file open until its window is gone.
	if err := f.refs.Reserve(); err != nil {
		_ = unmapRegion(data)
		return nil, ErrClosed
	}

	var st *store.Store
	onRelease := func() { f.releaseChunk(index, st, data) }
	if f.readOnly {
		st = store.WrapDirectReadOnly(data, safeLimit, onRelease)
	} else {
		st = store.WrapDirect(data, safeLimit, onRelease)
	}
	f.chunks[index] = &chunkSlot{store: st, gen: f.slotGen(index) + 1}

	if f.observer != nil {
		f.observer(index, time.Since(start))
	}
	return st, nil
}

func (f *File) slotGen(index int64) uint64 {
	if slot, ok := f.chunks[index]; ok {
		return slot.gen
	}
	return 0
}

// releaseChunk runs when a chunk store's reference count hits zero: final
// sync per mode, tombstone the cache slot, unmap, drop the file reference.
func (f *File) releaseChunk(index int64, st *store.Store, data []byte) {
	if f.mode != SyncNone && !f.readOnly {
		_ = syncRegion(data, f.mode == SyncSync)
	}

	f.mu.Lock()
	if slot, ok := f.chunks[index]; ok && slot.store == st {
		slot.store = nil
	}
	f.mu.Unlock()

	_ = unmapRegion(data)
	_ = f.refs.Release()
}

// Sync flushes every live chunk window per the file's SyncMode. A file in
// SyncNone mode flushes synchronously: an explicit Sync call is a request
// for durability.
func (f *File) Sync() error {
	if f.readOnly {
		return nil
	}
	f.mu.Lock()
	live := f.liveStoresLocked()
	f.mu.Unlock()

	defer f.releaseStores(live)

	sync := f.mode != SyncAsync
	for _, st := range live {
		data, err := st.Slice(0, st.Capacity())
		if err != nil {
			continue
		}
		if err := syncRegion(data, sync); err != nil {
			return fmt.Errorf("mapped: sync %s: %w", f.path, err)
		}
	}
	return nil
}

// SyncUpTo flushes completed pages below position that were not covered by
// a previous call. The watermark only moves forward; positions at or below
// it are a no-op.
func (f *File) SyncUpTo(position int64) error {
	if f.readOnly {
		return nil
	}
	f.syncMu.Lock()
	defer f.syncMu.Unlock()

	end := position - position%f.pageSize
	if end <= f.syncLength {
		return nil
	}
	from := f.syncLength

	// Reserve under the lock, release only after it is dropped: a final
	// release runs the unmap callback, which takes f.mu itself.
	f.mu.Lock()
	type span struct {
		data []byte
		st   *store.Store
	}
	var spans []span
	var reserved []*store.Store
	for index, slot := range f.chunks {
		if slot.store == nil || !slot.store.TryReserve() {
			continue
		}
		reserved = append(reserved, slot.store)
		base := index * f.chunkSize
		// Intersect [from, end) with the chunk's whole window, overlap
		// included: the overlap tail may have been written through this
		// window while the next chunk was never mapped, so each window
		// flushes every page it can address. Pages shared with a live
		// neighbor get msynced twice, which is harmless.
		lo, hi := max64(from, base), min64(end, base+slot.store.Capacity())
		if lo >= hi {
			continue
		}
		data, err := slot.store.Slice(lo-base, hi-lo)
		if err != nil {
			continue
		}
		spans = append(spans, span{data: data, st: slot.store})
	}
	f.mu.Unlock()
	defer f.releaseStores(reserved)

	sync := f.mode != SyncAsync
	for _, sp := range spans {
		if err := syncRegion(sp.data, sync); err != nil {
			return fmt.Errorf("mapped: sync up to %d: %w", position, err)
		}
	}
	f.syncLength = end
	return nil
}

// Datasync pushes the backing file descriptor to stable storage, covering
// the metadata msync does not (the new file length after growth, and on
// some platforms the drive cache). full requests power-loss durability
// where the platform distinguishes it (F_FULLFSYNC on macOS); elsewhere it
// changes nothing. Read-only files have nothing to push.
func (f *File) Datasync(full bool) error {
	if f.readOnly {
		return nil
	}
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	fd := int(f.f.Fd())
	f.mu.Unlock()

	if err := fdatasync(fd, full); err != nil {
		return fmt.Errorf("mapped: datasync %s: %w", f.path, err)
	}
	return nil
}

// SyncEvery starts periodic best-effort syncing of live chunks at the given
// interval, returning a stop function. Intended for long-lived writers that
// want bounded data loss without explicit sync calls.
func (f *File) SyncEvery(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				_ = f.Sync()
			case <-done:
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

func (f *File) liveStoresLocked() []*store.Store {
	var live []*store.Store
	for _, slot := range f.chunks {
		if slot.store != nil && slot.store.TryReserve() {
			live = append(live, slot.store)
		}
	}
	return live
}

func (f *File) releaseStores(stores []*store.Store) {
	for _, st := range stores {
		_ = st.Release()
	}
}

// Close drops the owner's reference to the file. The OS file closes once
// every outstanding chunk is released as well. Close is idempotent per
// File; a second call reports the double release.
func (f *File) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.closed = true
	f.mu.Unlock()

	return f.refs.Release()
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
