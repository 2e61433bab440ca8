package store

import "github.com/joshuapare/bytekit/internal/buf"

// Unchecked accessors. These skip bounds, liveness and alignment checks
// entirely; out-of-range offsets corrupt memory or panic. Callers must
// guarantee capacity externally, normally via Bytes.EnsureCapacity, and
// must hold a live reservation for the duration of the access.

// U8 reads the byte at off without bounds checks.
func (s *Store) U8(off int64) uint8 { return s.data[off] }

// U16 reads a little-endian uint16 at off without bounds checks.
func (s *Store) U16(off int64) uint16 { return buf.U16(s.data[off:]) }

// U32 reads a little-endian uint32 at off without bounds checks.
func (s *Store) U32(off int64) uint32 { return buf.U32(s.data[off:]) }

// U64 reads a little-endian uint64 at off without bounds checks.
func (s *Store) U64(off int64) uint64 { return buf.U64(s.data[off:]) }

// F32 reads a little-endian float32 at off without bounds checks.
func (s *Store) F32(off int64) float32 { return buf.F32(s.data[off:]) }

// F64 reads a little-endian float64 at off without bounds checks.
func (s *Store) F64(off int64) float64 { return buf.F64(s.data[off:]) }

// PutU8 writes v at off without bounds checks.
func (s *Store) PutU8(off int64, v uint8) { s.data[off] = v }

// PutU16 writes v at off without bounds checks.
func (s *Store) PutU16(off int64, v uint16) { buf.PutU16(s.data[off:], v) }

// PutU32 writes v at off without bounds checks.
func (s *Store) PutU32(off int64, v uint32) { buf.PutU32(s.data[off:], v) }

// PutU64 writes v at off without bounds checks.
func (s *Store) PutU64(off int64, v uint64) { buf.PutU64(s.data[off:], v) }

// PutF32 writes v at off without bounds checks.
func (s *Store) PutF32(off int64, v float32) { buf.PutF32(s.data[off:], v) }

// PutF64 writes v at off without bounds checks.
func (s *Store) PutF64(off int64, v float64) { buf.PutF64(s.data[off:], v) }

// Put copies p to off without bounds checks.
func (s *Store) Put(off int64, p []byte) { copy(s.data[off:], p) }

// Get copies len(p) bytes from off into p without bounds checks.
func (s *Store) Get(off int64, p []byte) { copy(p, s.data[off:]) }
