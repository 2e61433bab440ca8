// Package buf contains bounds arithmetic and endian-safe access routines
// shared by the store and cursor layers. All multi-byte values are
// little-endian, the wire order of every format this library serves.
package buf

import (
	"encoding/binary"
	"math"
)

// U16 reads a little-endian uint16 from b. The caller guarantees len(b) >= 2.
func U16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// U32 reads a little-endian uint32 from b. The caller guarantees len(b) >= 4.
func U32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// U64 reads a little-endian uint64 from b. The caller guarantees len(b) >= 8.
func U64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

// PutU16 writes v to b in little-endian order. The caller guarantees len(b) >= 2.
func PutU16(b []byte, v uint16) {
	binary.LittleEndian.PutUint16(b, v)
}

// PutU32 writes v to b in little-endian order. The caller guarantees len(b) >= 4.
func PutU32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}

// PutU64 writes v to b in little-endian order. The caller guarantees len(b) >= 8.
func PutU64(b []byte, v uint64) {
	binary.LittleEndian.PutUint64(b, v)
}

// F32 reads a little-endian float32 from b.
func F32(b []byte) float32 {
	return math.Float32frombits(U32(b))
}

// F64 reads a little-endian float64 from b.
func F64(b []byte) float64 {
	return math.Float64frombits(U64(b))
}

// PutF32 writes v to b in little-endian order.
func PutF32(b []byte, v float32) {
	PutU32(b, math.Float32bits(v))
}

// PutF64 writes v to b in little-endian order.
func PutF64(b []byte, v float64) {
	PutU64(b, math.Float64bits(v))
}
