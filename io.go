package bytekit

import (
	"errors"
	"io"
)

// Standard library io adapters. Read drains the readable region and Write
// appends at the write cursor, so a Bytes can sit directly behind
// io.Copy, bufio, or any encoder that takes an io.Writer.

// Read implements io.Reader over the readable region. It returns io.EOF
// once the read cursor reaches the write frontier.
func (b *Bytes) Read(p []byte) (int, error) {
	n := b.ReadRemaining()
	if n == 0 {
		return 0, io.EOF
	}
	if int64(len(p)) < n {
		n = int64(len(p))
	}
	if err := b.ReadSlice(p[:n]); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Write implements io.Writer at the write cursor.
func (b *Bytes) Write(p []byte) (int, error) {
	if err := b.WriteSlice(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadByte implements io.ByteReader. Exhaustion maps to io.EOF rather
// than the buffer underflow sentinel, per the interface contract.
func (b *Bytes) ReadByte() (byte, error) {
	v, err := b.ReadU8()
	if errors.Is(err, ErrBufferUnderflow) {
		return 0, io.EOF
	}
	return v, err
}

// WriteByte implements io.ByteWriter.
func (b *Bytes) WriteByte(c byte) error { return b.WriteU8(c) }

// WriteTo implements io.WriterTo, draining the readable region into w.
func (b *Bytes) WriteTo(w io.Writer) (int64, error) {
	p, err := b.ToSlice()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(p)
	if err != nil {
		return int64(n), err
	}
	if err := b.Skip(int64(n)); err != nil {
		return int64(n), err
	}
	return int64(n), nil
}

// ReadFrom implements io.ReaderFrom, appending everything r produces at
// the write cursor. The buffer must be elastic or have room for the
// stream.
func (b *Bytes) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	var scratch [32 * 1024]byte
	for {
		n, err := r.Read(scratch[:])
		if n > 0 {
			if werr := b.WriteSlice(scratch[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
