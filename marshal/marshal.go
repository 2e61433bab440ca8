package marshal

import (
	"fmt"
	"math"

	"github.com/joshuapare/bytekit"
)

// Marshallable is implemented by types that encode themselves against a
// Bytes cursor. WriteMarshallable appends at the write cursor;
// ReadMarshallable consumes from the read cursor. Implementations must
// read exactly what they wrote.
type Marshallable interface {
	WriteMarshallable(b *bytekit.Bytes) error
	ReadMarshallable(b *bytekit.Bytes) error
}

// WriteLength16 writes m prefixed by a 16-bit little-endian byte length.
// The prefix is patched in place after the record body is written, so m
// does not need to know its own size. Records over 65535 bytes fail with
// ErrTooLarge and the cursor is rewound to where it started.
func WriteLength16(b *bytekit.Bytes, m Marshallable) error {
	frameStart := b.WritePosition()
	if err := b.WriteU16(0); err != nil {
		return err
	}
	if err := m.WriteMarshallable(b); err != nil {
		return err
	}
	n := b.WritePosition() - frameStart - 2
	if n > math.MaxUint16 {
		// rewind; the partial record is abandoned
		if rerr := b.SetWritePosition(frameStart); rerr != nil {
			return rerr
		}
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, n)
	}
	// Patch through the store: elastic growth may have swapped the
	// backing store since the placeholder was written, so resolve it now.
	return b.Store().WriteU16(frameStart, uint16(n))
}

// ReadLength16 reads a 16-bit length prefix and decodes m from exactly
// that many bytes. The read cursor always lands just past the frame,
// even if m reads fewer bytes than the frame declares.
func ReadLength16(b *bytekit.Bytes, m Marshallable) error {
	n, err := b.ReadU16()
	if err != nil {
		return err
	}
	if int64(n) > b.ReadRemaining() {
		return bytekit.ErrBufferUnderflow
	}
	w, err := b.Window(b.ReadPosition(), int64(n))
	if err != nil {
		return err
	}
	defer w.Release()
	if err := m.ReadMarshallable(w); err != nil {
		return err
	}
	return b.Skip(int64(n))
}

// SkipLength16 reads a 16-bit length prefix and advances the read cursor
// past the framed record without decoding it.
func SkipLength16(b *bytekit.Bytes) error {
	n, err := b.ReadU16()
	if err != nil {
		return err
	}
	return b.Skip(int64(n))
}
