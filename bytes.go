package bytekit

import (
	"fmt"
	"math"

	"github.com/joshuapare/bytekit/store"
)

// Bytes is a dual-cursor view over a reference-counted store.
//
// Invariant, at all times:
//
//	start <= readPosition <= writePosition <= writeLimit <= capacity
//
// The read limit is the write position: a reader never sees past the write
// frontier. An elastic view grows its backing store on overflow, up to its
// maximum capacity; the growth reallocates, copies and swaps the store
// reference in place, so raw slices taken from the old store must not be
// held across writes.
//
// Bytes is not safe for concurrent use.
type Bytes struct {
	st *store.Store

	readPos  int64
	writePos int64
	limit    int64 // writeLimit within the current store

	elastic bool
	maxCap  int64
	direct  bool // grow with native stores rather than heap
}

const defaultElasticMax = math.MaxInt64

// NewFixed returns a heap-backed buffer of fixed capacity.
func NewFixed(capacity int64) *Bytes {
	st := store.NewHeap(capacity)
	return &Bytes{st: st, limit: st.Capacity(), maxCap: st.Capacity()}
}

// NewElastic returns a heap-backed buffer that grows on demand.
func NewElastic(initialCapacity int64) *Bytes {
	return NewElasticCapped(initialCapacity, defaultElasticMax)
}

// NewElasticCapped returns a heap-backed elastic buffer that refuses to
// grow past maxCapacity.
func NewElasticCapped(initialCapacity, maxCapacity int64) *Bytes {
	if initialCapacity > maxCapacity {
		initialCapacity = maxCapacity
	}
	st := store.NewHeap(initialCapacity)
	return &Bytes{st: st, limit: st.Capacity(), elastic: true, maxCap: maxCapacity}
}

// NewDirect returns a buffer over native memory of fixed capacity.
func NewDirect(capacity int64) (*Bytes, error) {
	st, err := store.NewNative(capacity)
	if err != nil {
		return nil, err
	}
	return &Bytes{st: st, limit: st.Capacity(), maxCap: st.Capacity(), direct: true}, nil
}

// NewElasticDirect returns an elastic buffer over native memory.
func NewElasticDirect(initialCapacity int64) (*Bytes, error) {
	st, err := store.NewNative(initialCapacity)
	if err != nil {
		return nil, err
	}
	return &Bytes{st: st, limit: st.Capacity(), elastic: true, maxCap: defaultElasticMax, direct: true}, nil
}

// WrapRead wraps b for reading: the write position starts at len(b), so
// the whole slice is readable.
func WrapRead(b []byte) *Bytes {
	st := store.Wrap(b)
	return &Bytes{st: st, writePos: int64(len(b)), limit: st.Capacity(), maxCap: st.Capacity()}
}

// WrapWrite wraps b for writing from offset zero.
func WrapWrite(b []byte) *Bytes {
	st := store.Wrap(b)
	return &Bytes{st: st, limit: st.Capacity(), maxCap: st.Capacity()}
}

// FromStore builds a fixed view over st, taking a reservation. The write
// limit is the store's capacity and both cursors start at the store's
// start offset.
func FromStore(st *store.Store) (*Bytes, error) {
	if err := st.Reserve(); err != nil {
		return nil, err
	}
	return &Bytes{
		st:       st,
		readPos:  st.Start(),
		writePos: st.Start(),
		limit:    st.Capacity(),
		maxCap:   st.Capacity(),
	}, nil
}

// Store exposes the backing store. The pointer changes when an elastic
// buffer grows.
func (b *Bytes) Store() *store.Store { return b.st }

// Release drops the view's reservation on its store. The view must not be
// used afterwards.
func (b *Bytes) Release() error { return b.st.Release() }

// Start returns the first valid offset.
func (b *Bytes) Start() int64 { return b.st.Start() }

// Capacity returns the current real capacity of the backing store.
func (b *Bytes) Capacity() int64 { return b.st.Capacity() }

// MaxCapacity returns the capacity ceiling (equal to Capacity for
// non-elastic views).
func (b *Bytes) MaxCapacity() int64 { return b.maxCap }

// SafeLimit returns the store's guaranteed-readable limit.
func (b *Bytes) SafeLimit() int64 { return b.st.SafeLimit() }

// IsElastic reports whether writes past the current capacity grow the
// backing store.
func (b *Bytes) IsElastic() bool { return b.elastic }

// ReadPosition returns the read cursor.
func (b *Bytes) ReadPosition() int64 { return b.readPos }

// WritePosition returns the write cursor.
func (b *Bytes) WritePosition() int64 { return b.writePos }

// ReadLimit returns the read frontier, which is always the write position.
func (b *Bytes) ReadLimit() int64 { return b.writePos }

// WriteLimit returns the write cursor ceiling within the current store.
// For an elastic view this moves as the store grows.
func (b *Bytes) WriteLimit() int64 {
	if b.elastic {
		return b.maxCap
	}
	return b.limit
}

// ReadRemaining returns the number of unread bytes.
func (b *Bytes) ReadRemaining() int64 { return b.writePos - b.readPos }

// WriteRemaining returns the room left before the write limit.
func (b *Bytes) WriteRemaining() int64 { return b.WriteLimit() - b.writePos }

// SetReadPosition moves the read cursor; it must stay within
// [start, writePosition].
func (b *Bytes) SetReadPosition(p int64) error {
	if p < b.st.Start() || p > b.writePos {
		return fmt.Errorf("%w: read position %d outside [%d, %d]",
			ErrInvalidPosition, p, b.st.Start(), b.writePos)
	}
	b.readPos = p
	return nil
}

// SetWritePosition moves the write cursor; it must stay within
// [readPosition, writeLimit].
func (b *Bytes) SetWritePosition(p int64) error {
	if p < b.readPos || p > b.limit {
		return fmt.Errorf("%w: write position %d outside [%d, %d]",
			ErrInvalidPosition, p, b.readPos, b.limit)
	}
	b.writePos = p
	return nil
}

// Clear resets both cursors to the start. The store's contents are left
// untouched.
func (b *Bytes) Clear() {
	b.readPos = b.st.Start()
	b.writePos = b.st.Start()
}

// Skip advances the read cursor by n.
func (b *Bytes) Skip(n int64) error {
	if n < 0 || b.readPos+n > b.writePos {
		return fmt.Errorf("%w: skip %d with %d readable", ErrBufferUnderflow, n, b.ReadRemaining())
	}
	b.readPos += n
	return nil
}

// EnsureCapacity guarantees room for n more bytes at the write cursor,
// growing an elastic store if needed. Mandatory before using the unchecked
// view.
func (b *Bytes) EnsureCapacity(n int64) error {
	_, err := b.prepareWrite(n)
	return err
}

// prepareWrite checks (and for elastic views provides) room for size bytes
// at the write cursor. Returns the write offset without advancing.
func (b *Bytes) prepareWrite(size int64) (int64, error) {
	if !b.st.Live() {
		return 0, store.ErrReleased
	}
	end := b.writePos + size
	if end <= b.limit && end <= b.st.Capacity() {
		return b.writePos, nil
	}
	if !b.elastic {
		return 0, fmt.Errorf("%w: need %d bytes at %d, limit %d",
			ErrBufferOverflow, size, b.writePos, b.limit)
	}
	if end > b.maxCap {
		return 0, fmt.Errorf("%w: need %d bytes at %d, max capacity %d",
			ErrCapacityExceeded, size, b.writePos, b.maxCap)
	}
	if err := b.grow(end); err != nil {
		return 0, err
	}
	return b.writePos, nil
}

// grow reallocates the backing store to hold at least need bytes, copies
// the live region and swaps the store reference.
func (b *Bytes) grow(need int64) error {
	newCap := b.st.Capacity()
	if newCap < 16 {
		newCap = 16
	}
	for newCap < need {
		newCap *= 2
		if newCap <= 0 { // overflow
			newCap = b.maxCap
			break
		}
	}
	if newCap > b.maxCap {
		newCap = b.maxCap
	}

	var next *store.Store
	if b.direct {
		st, err := store.NewNative(newCap)
		if err != nil {
			return err
		}
		next = st
	} else {
		next = store.NewHeap(newCap)
	}

	old, err := b.st.Slice(0, b.st.Capacity())
	if err != nil {
		_ = next.Release()
		return err
	}
	if err := next.WriteAt(0, old); err != nil {
		_ = next.Release()
		return err
	}

	prev := b.st
	b.st = next
	b.limit = next.Capacity()
	return prev.Release()
}

// writeOffsetPositionMoved returns the current write offset and advances
// the cursor by size, growing first when needed.
func (b *Bytes) writeOffsetPositionMoved(size int64) (int64, error) {
	off, err := b.prepareWrite(size)
	if err != nil {
		return 0, err
	}
	b.writePos += size
	return off, nil
}

// readOffsetPositionMoved returns the current read offset and advances the
// cursor by size.
func (b *Bytes) readOffsetPositionMoved(size int64) (int64, error) {
	if !b.st.Live() {
		return 0, store.ErrReleased
	}
	if b.readPos+size > b.writePos {
		return 0, fmt.Errorf("%w: need %d bytes, %d readable",
			ErrBufferUnderflow, size, b.ReadRemaining())
	}
	if b.readPos+size > b.st.SafeLimit() {
		return 0, fmt.Errorf("%w: read past safe limit %d",
			ErrBufferUnderflow, b.st.SafeLimit())
	}
	off := b.readPos
	b.readPos += size
	return off, nil
}

// Compact shifts the unread region [readPosition, writePosition) down to
// the start and rewinds both cursors. Calling it twice without an
// intervening write is a no-op.
func (b *Bytes) Compact() error {
	start := b.st.Start()
	if b.readPos == start {
		return nil
	}
	n := b.ReadRemaining()
	if n > 0 {
		if err := b.st.Move(b.readPos, start, n); err != nil {
			return err
		}
	}
	b.readPos = start
	b.writePos = start + n
	return nil
}

// Unwrite removes n written-but-unread bytes at fromOffset, shifting any
// later bytes left and retracting the write position. Supports retracting
// a speculative write.
func (b *Bytes) Unwrite(fromOffset, n int64) error {
	if n < 0 || fromOffset < b.st.Start() || fromOffset+n > b.writePos {
		return fmt.Errorf("%w: unwrite [%d, %d) with write position %d",
			ErrInvalidPosition, fromOffset, fromOffset+n, b.writePos)
	}
	tail := b.writePos - (fromOffset + n)
	if tail > 0 {
		if err := b.st.Move(fromOffset+n, fromOffset, tail); err != nil {
			return err
		}
	}
	b.writePos -= n
	if b.readPos > b.writePos {
		b.readPos = b.writePos
	}
	return nil
}

// Window returns a fixed sub-view over [off, off+n) of the written region.
// The window shares the store (taking its own reservation) and starts
// ready to read; it must be released and must not outlive the parent's
// store swap (keep elastic parents quiet while windows are live).
func (b *Bytes) Window(off, n int64) (*Bytes, error) {
	if off < b.st.Start() || n < 0 || off+n > b.writePos {
		return nil, fmt.Errorf("%w: window [%d, %d) with write position %d",
			ErrInvalidPosition, off, off+n, b.writePos)
	}
	if err := b.st.Reserve(); err != nil {
		return nil, err
	}
	return &Bytes{
		st:       b.st,
		readPos:  off,
		writePos: off + n,
		limit:    off + n,
		maxCap:   off + n,
	}, nil
}

// ToSlice copies the readable region out into a fresh slice.
func (b *Bytes) ToSlice() ([]byte, error) {
	out := make([]byte, b.ReadRemaining())
	if err := b.st.ReadAt(b.readPos, out); err != nil {
		return nil, err
	}
	return out, nil
}
