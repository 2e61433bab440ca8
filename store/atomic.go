package store

import (
	"sync/atomic"
	"unsafe"
)

// Volatile, ordered and compare-and-swap access for cross-goroutine and
// cross-process coordination over shared mappings.
//
// Go's atomic loads are acquire loads and atomic stores are release stores,
// which matches the volatile-read / ordered-write contract: a volatile read
// observes everything written before the matching release store, and an
// ordered write publishes earlier plain writes without a full fence. The
// compare-and-swap operations compile to a single hardware CAS on the
// backing address.
//
// Offsets must be naturally aligned (4 bytes for 32-bit operands, 8 for
// 64-bit). The backing mappings are page-aligned, so an aligned offset
// yields an aligned address.

func (s *Store) checkAtomic(off, size int64) error {
	if err := s.checkWrite(off, size); err != nil {
		return err
	}
	if off%size != 0 {
		return ErrMisaligned
	}
	return nil
}

func (s *Store) checkAtomicRead(off, size int64) error {
	if err := s.checkRead(off, size); err != nil {
		return err
	}
	if off%size != 0 {
		return ErrMisaligned
	}
	return nil
}

func (s *Store) u32ptr(off int64) *uint32 {
	return (*uint32)(unsafe.Pointer(&s.data[off]))
}

func (s *Store) u64ptr(off int64) *uint64 {
	return (*uint64)(unsafe.Pointer(&s.data[off]))
}

func (s *Store) i64ptr(off int64) *int64 {
	return (*int64)(unsafe.Pointer(&s.data[off]))
}

// ReadVolatileU32 performs an acquire load of the uint32 at off.
func (s *Store) ReadVolatileU32(off int64) (uint32, error) {
	if err := s.checkAtomicRead(off, 4); err != nil {
		return 0, err
	}
	return atomic.LoadUint32(s.u32ptr(off)), nil
}

// ReadVolatileU64 performs an acquire load of the uint64 at off.
func (s *Store) ReadVolatileU64(off int64) (uint64, error) {
	if err := s.checkAtomicRead(off, 8); err != nil {
		return 0, err
	}
	return atomic.LoadUint64(s.u64ptr(off)), nil
}

// WriteVolatileU32 performs a release store of v at off.
func (s *Store) WriteVolatileU32(off int64, v uint32) error {
	if err := s.checkAtomic(off, 4); err != nil {
		return err
	}
	atomic.StoreUint32(s.u32ptr(off), v)
	return nil
}

// WriteVolatileU64 performs a release store of v at off.
func (s *Store) WriteVolatileU64(off int64, v uint64) error {
	if err := s.checkAtomic(off, 8); err != nil {
		return err
	}
	atomic.StoreUint64(s.u64ptr(off), v)
	return nil
}

// WriteOrderedU32 publishes v at off with store-release ordering. Earlier
// plain writes are visible to any reader that acquires this value.
func (s *Store) WriteOrderedU32(off int64, v uint32) error {
	return s.WriteVolatileU32(off, v)
}

// WriteOrderedU64 publishes v at off with store-release ordering.
func (s *Store) WriteOrderedU64(off int64, v uint64) error {
	return s.WriteVolatileU64(off, v)
}

// CompareAndSwapU32 atomically replaces the uint32 at off with new if it
// currently equals old. Reports whether the swap happened.
func (s *Store) CompareAndSwapU32(off int64, old, new uint32) (bool, error) {
	if err := s.checkAtomic(off, 4); err != nil {
		return false, err
	}
	return atomic.CompareAndSwapUint32(s.u32ptr(off), old, new), nil
}

// CompareAndSwapU64 atomically replaces the uint64 at off with new if it
// currently equals old. Reports whether the swap happened.
func (s *Store) CompareAndSwapU64(off int64, old, new uint64) (bool, error) {
	if err := s.checkAtomic(off, 8); err != nil {
		return false, err
	}
	return atomic.CompareAndSwapUint64(s.u64ptr(off), old, new), nil
}

// AddI32 atomically adds delta to the int32 at off and returns the result.
func (s *Store) AddI32(off int64, delta int32) (int32, error) {
	if err := s.checkAtomic(off, 4); err != nil {
		return 0, err
	}
	return atomic.AddInt32((*int32)(unsafe.Pointer(&s.data[off])), delta), nil
}

// AddI64 atomically adds delta to the int64 at off and returns the result.
func (s *Store) AddI64(off int64, delta int64) (int64, error) {
	if err := s.checkAtomic(off, 8); err != nil {
		return 0, err
	}
	return atomic.AddInt64(s.i64ptr(off), delta), nil
}

// WriteMaxI64 lock-free max: raises the int64 at off to v unless it is
// already greater or equal. Returns the value left in memory.
func (s *Store) WriteMaxI64(off int64, v int64) (int64, error) {
	if err := s.checkAtomic(off, 8); err != nil {
		return 0, err
	}
	p := s.i64ptr(off)
	for {
		cur := atomic.LoadInt64(p)
		if cur >= v {
			return cur, nil
		}
		if atomic.CompareAndSwapInt64(p, cur, v) {
			return v, nil
		}
	}
}
