package bytekit

import "bytes"

// Content comparison and scanning over the readable region. None of
// these move the cursors.

// ContentEquals reports whether the readable regions of b and other hold
// the same bytes.
func (b *Bytes) ContentEquals(other *Bytes) bool {
	if b.ReadRemaining() != other.ReadRemaining() {
		return false
	}
	ap, err := b.readableSlice()
	if err != nil {
		return false
	}
	bp, err := other.readableSlice()
	if err != nil {
		return false
	}
	return bytes.Equal(ap, bp)
}

// EqualSlice reports whether the readable region equals p.
func (b *Bytes) EqualSlice(p []byte) bool {
	if b.ReadRemaining() != int64(len(p)) {
		return false
	}
	rp, err := b.readableSlice()
	if err != nil {
		return false
	}
	return bytes.Equal(rp, p)
}

// IndexOf returns the offset (relative to the read cursor) of the first
// occurrence of c in the readable region, or -1.
func (b *Bytes) IndexOf(c byte) int64 {
	p, err := b.readableSlice()
	if err != nil {
		return -1
	}
	return int64(bytes.IndexByte(p, c))
}

// IndexOfSlice returns the offset (relative to the read cursor) of the
// first occurrence of sep in the readable region, or -1.
func (b *Bytes) IndexOfSlice(sep []byte) int64 {
	p, err := b.readableSlice()
	if err != nil {
		return -1
	}
	return int64(bytes.Index(p, sep))
}

// readableSlice returns the zero-copy view of [readPos, writePos).
func (b *Bytes) readableSlice() ([]byte, error) {
	return b.st.Slice(b.readPos, b.ReadRemaining())
}
