package store

import (
	"fmt"

	"github.com/joshuapare/bytekit/internal/buf"
	"github.com/joshuapare/bytekit/internal/refcnt"
)

// Store owns a contiguous memory region. See the package documentation for
// the bounds and lifetime contract.
type Store struct {
	data      []byte
	start     int64
	safeLimit int64
	capacity  int64
	direct    bool
	readOnly  bool
	refs      *refcnt.Counter
}

// NewHeap allocates a zeroed heap-backed store of the given capacity.
func NewHeap(capacity int64) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return Wrap(make([]byte, capacity))
}

// Wrap builds a store over an existing slice. The store reads and writes
// the caller's memory; the caller must not resize b while the store lives.
func Wrap(b []byte) *Store {
	s := &Store{
		data:      b,
		start:     0,
		safeLimit: int64(len(b)),
		capacity:  int64(len(b)),
	}
	s.refs = refcnt.New(nil)
	return s
}

// WrapDirect builds a store over memory the caller obtained outside the Go
// heap (an anonymous or file mapping). safeLimit bounds reads; it may be
// less than len(b) when the tail of the region is not guaranteed readable.
// onRelease runs when the last reference is dropped and is responsible for
// unmapping or freeing the memory.
func WrapDirect(b []byte, safeLimit int64, onRelease func()) *Store {
	if safeLimit < 0 || safeLimit > int64(len(b)) {
		safeLimit = int64(len(b))
	}
	s := &Store{
		data:      b,
		start:     0,
		safeLimit: safeLimit,
		capacity:  int64(len(b)),
		direct:    true,
	}
	s.refs = refcnt.New(onRelease)
	return s
}

// WrapDirectReadOnly is WrapDirect for memory mapped without write
// permission. Checked writes fail with ErrReadOnly instead of faulting;
// unchecked writes remain the caller's problem.
func WrapDirectReadOnly(b []byte, safeLimit int64, onRelease func()) *Store {
	s := WrapDirect(b, safeLimit, onRelease)
	s.readOnly = true
	return s
}

// Start returns the first valid offset.
func (s *Store) Start() int64 { return s.start }

// Capacity returns the nominal size of the region.
func (s *Store) Capacity() int64 { return s.capacity }

// SafeLimit returns the offset up to which reads are guaranteed safe.
func (s *Store) SafeLimit() int64 { return s.safeLimit }

// IsDirect reports whether the region lives outside the Go heap.
func (s *Store) IsDirect() bool { return s.direct }

// Reserve takes a reference. Every cursor view or cache retaining the
// store must hold its own reservation.
func (s *Store) Reserve() error {
	if err := s.refs.Reserve(); err != nil {
		return fmt.Errorf("%w: %v", ErrReleased, err)
	}
	return nil
}

// TryReserve attempts to take a reference, returning false when the store
// is already released. Used by caches racing against the final release.
func (s *Store) TryReserve() bool { return s.refs.TryReserve() }

// Release drops one reference. The backing memory is freed when the count
// reaches zero; releasing more times than reserved is reported as an error.
func (s *Store) Release() error { return s.refs.Release() }

// RefCount returns the current reservation count (diagnostics only).
func (s *Store) RefCount() int { return s.refs.Count() }

// Live reports whether the store still holds at least one reservation.
// Cursor views check it before going through the unchecked accessors, so
// use after release fails with ErrReleased instead of touching memory
// that may already be unmapped.
func (s *Store) Live() bool { return !s.refs.Released() }

// checkLive guards checked operations against use after release.
func (s *Store) checkLive() error {
	if s.refs.Released() {
		return ErrReleased
	}
	return nil
}

func (s *Store) checkRead(off, n int64) error {
	if err := s.checkLive(); err != nil {
		return err
	}
	if _, err := buf.CheckRange(s.start, s.safeLimit, off, n); err != nil {
		return fmt.Errorf("%w: %v", ErrUnderflow, err)
	}
	return nil
}

func (s *Store) checkWrite(off, n int64) error {
	if err := s.checkLive(); err != nil {
		return err
	}
	if s.readOnly {
		return ErrReadOnly
	}
	if _, err := buf.CheckRange(s.start, s.capacity, off, n); err != nil {
		return fmt.Errorf("%w: %v", ErrOverflow, err)
	}
	return nil
}

// ReadU8 reads the byte at off.
func (s *Store) ReadU8(off int64) (uint8, error) {
	if err := s.checkRead(off, 1); err != nil {
		return 0, err
	}
	return s.data[off], nil
}

// ReadU16 reads a little-endian uint16 at off.
func (s *Store) ReadU16(off int64) (uint16, error) {
	if err := s.checkRead(off, 2); err != nil {
		return 0, err
	}
	return buf.U16(s.data[off:]), nil
}

// ReadU32 reads a little-endian uint32 at off.
func (s *Store) ReadU32(off int64) (uint32, error) {
	if err := s.checkRead(off, 4); err != nil {
		return 0, err
	}
	return buf.U32(s.data[off:]), nil
}

// ReadU64 reads a little-endian uint64 at off.
func (s *Store) ReadU64(off int64) (uint64, error) {
	if err := s.checkRead(off, 8); err != nil {
		return 0, err
	}
	return buf.U64(s.data[off:]), nil
}

// ReadF32 reads a little-endian float32 at off.
func (s *Store) ReadF32(off int64) (float32, error) {
	if err := s.checkRead(off, 4); err != nil {
		return 0, err
	}
	return buf.F32(s.data[off:]), nil
}

// ReadF64 reads a little-endian float64 at off.
func (s *Store) ReadF64(off int64) (float64, error) {
	if err := s.checkRead(off, 8); err != nil {
		return 0, err
	}
	return buf.F64(s.data[off:]), nil
}

// ReadAt copies len(p) bytes starting at off into p.
func (s *Store) ReadAt(off int64, p []byte) error {
	if err := s.checkRead(off, int64(len(p))); err != nil {
		return err
	}
	copy(p, s.data[off:])
	return nil
}

// WriteU8 writes v at off.
func (s *Store) WriteU8(off int64, v uint8) error {
	if err := s.checkWrite(off, 1); err != nil {
		return err
	}
	s.data[off] = v
	return nil
}

// WriteU16 writes v at off in little-endian order.
func (s *Store) WriteU16(off int64, v uint16) error {
	if err := s.checkWrite(off, 2); err != nil {
		return err
	}
	buf.PutU16(s.data[off:], v)
	return nil
}

// WriteU32 writes v at off in little-endian order.
func (s *Store) WriteU32(off int64, v uint32) error {
	if err := s.checkWrite(off, 4); err != nil {
		return err
	}
	buf.PutU32(s.data[off:], v)
	return nil
}

// WriteU64 writes v at off in little-endian order.
func (s *Store) WriteU64(off int64, v uint64) error {
	if err := s.checkWrite(off, 8); err != nil {
		return err
	}
	buf.PutU64(s.data[off:], v)
	return nil
}

// WriteF32 writes v at off in little-endian order.
func (s *Store) WriteF32(off int64, v float32) error {
	if err := s.checkWrite(off, 4); err != nil {
		return err
	}
	buf.PutF32(s.data[off:], v)
	return nil
}

// WriteF64 writes v at off in little-endian order.
func (s *Store) WriteF64(off int64, v float64) error {
	if err := s.checkWrite(off, 8); err != nil {
		return err
	}
	buf.PutF64(s.data[off:], v)
	return nil
}

// WriteAt copies p into the store starting at off.
func (s *Store) WriteAt(off int64, p []byte) error {
	if err := s.checkWrite(off, int64(len(p))); err != nil {
		return err
	}
	copy(s.data[off:], p)
	return nil
}

// Slice returns a zero-copy window over [off, off+n). The window aliases
// the store's memory and is valid only while the caller holds a
// reservation.
func (s *Store) Slice(off, n int64) ([]byte, error) {
	if err := s.checkLive(); err != nil {
		return nil, err
	}
	p, ok := buf.Slice(s.data, off, n)
	if !ok {
		return nil, fmt.Errorf("%w: slice [%d, %d)", ErrUnderflow, off, off+n)
	}
	return p, nil
}

// Move relocates n bytes from offset from to offset to within the store.
// Overlapping ranges are handled like memmove.
func (s *Store) Move(from, to, n int64) error {
	if err := s.checkRead(from, n); err != nil {
		return err
	}
	if err := s.checkWrite(to, n); err != nil {
		return err
	}
	// copy is specified to handle overlap.
	copy(s.data[to:to+n], s.data[from:from+n])
	return nil
}

// CopyTo copies n bytes from offset srcOff of s to offset dstOff of dst.
// Both stores must be live; the stores may be the same (use Move for
// overlapping ranges within one store).
func (s *Store) CopyTo(dst *Store, srcOff, dstOff, n int64) error {
	if err := s.checkRead(srcOff, n); err != nil {
		return err
	}
	if err := dst.checkWrite(dstOff, n); err != nil {
		return err
	}
	copy(dst.data[dstOff:dstOff+n], s.data[srcOff:srcOff+n])
	return nil
}

// Zero fills [from, to) with zero bytes.
func (s *Store) Zero(from, to int64) error {
	if to < from {
		return fmt.Errorf("%w: zero range [%d, %d)", ErrOverflow, from, to)
	}
	if err := s.checkWrite(from, to-from); err != nil {
		return err
	}
	clear(s.data[from:to])
	return nil
}
