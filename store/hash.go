package store

import "github.com/joshuapare/bytekit/internal/buf"

// Hash multipliers. Both odd; fixed forever, serialized data depends on
// stable hash values across implementations.
const (
	hashM0 int64 = 0x855dd4db
	hashM1 int64 = 0x6d0f27bd
)

// ByteCheckSum returns the unsigned byte sum over [from, to), modulo 256.
func (s *Store) ByteCheckSum(from, to int64) (uint8, error) {
	if to < from {
		from, to = to, from
	}
	if err := s.checkRead(from, to-from); err != nil {
		return 0, err
	}
	var sum uint32
	for _, b := range s.data[from:to] {
		sum += uint32(b)
	}
	return uint8(sum), nil
}

// FastHash hashes n bytes starting at off with the library's multiplicative
// hash. The result is stable across implementations and platforms.
func (s *Store) FastHash(off, n int64) (int32, error) {
	if err := s.checkRead(off, n); err != nil {
		return 0, err
	}
	return FastHashBytes(s.data[off : off+n]), nil
}

// FastHashBytes is the multiplicative hash over a raw slice: 32-bit
// little-endian groups folded with hashM1, up to three tail bytes folded
// as a final group, then a hashM0 finalizer with a high-half xor.
func FastHashBytes(b []byte) int32 {
	var h int64
	i := 0
	for ; i+4 <= len(b); i += 4 {
		h = h*hashM1 + int64(int32(buf.U32(b[i:])))
	}
	if i < len(b) {
		var tail int64
		shift := 0
		for ; i < len(b); i++ {
			tail |= int64(b[i]) << shift
			shift += 8
		}
		h = h*hashM1 + tail
	}
	h *= hashM0
	h ^= h >> 32
	return int32(h)
}
