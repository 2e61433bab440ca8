package bytekit

// Typed cursor reads and writes. All multi-byte values are little-endian.
// Every operation advances its cursor on success and leaves it unmoved on
// failure.

// WriteU8 writes one byte at the write cursor.
func (b *Bytes) WriteU8(v uint8) error {
	off, err := b.writeOffsetPositionMoved(1)
	if err != nil {
		return err
	}
	b.st.PutU8(off, v)
	return nil
}

// WriteI8 writes a signed byte at the write cursor.
func (b *Bytes) WriteI8(v int8) error { return b.WriteU8(uint8(v)) }

// WriteU16 writes a uint16 at the write cursor.
func (b *Bytes) WriteU16(v uint16) error {
	off, err := b.writeOffsetPositionMoved(2)
	if err != nil {
		return err
	}
	b.st.PutU16(off, v)
	return nil
}

// WriteI16 writes an int16 at the write cursor.
func (b *Bytes) WriteI16(v int16) error { return b.WriteU16(uint16(v)) }

// WriteU32 writes a uint32 at the write cursor.
func (b *Bytes) WriteU32(v uint32) error {
	off, err := b.writeOffsetPositionMoved(4)
	if err != nil {
		return err
	}
	b.st.PutU32(off, v)
	return nil
}

// WriteI32 writes an int32 at the write cursor.
func (b *Bytes) WriteI32(v int32) error { return b.WriteU32(uint32(v)) }

// WriteU64 writes a uint64 at the write cursor.
func (b *Bytes) WriteU64(v uint64) error {
	off, err := b.writeOffsetPositionMoved(8)
	if err != nil {
		return err
	}
	b.st.PutU64(off, v)
	return nil
}

// WriteI64 writes an int64 at the write cursor.
func (b *Bytes) WriteI64(v int64) error { return b.WriteU64(uint64(v)) }

// WriteF32 writes a float32 at the write cursor.
func (b *Bytes) WriteF32(v float32) error {
	off, err := b.writeOffsetPositionMoved(4)
	if err != nil {
		return err
	}
	b.st.PutF32(off, v)
	return nil
}

// WriteF64 writes a float64 at the write cursor.
func (b *Bytes) WriteF64(v float64) error {
	off, err := b.writeOffsetPositionMoved(8)
	if err != nil {
		return err
	}
	b.st.PutF64(off, v)
	return nil
}

// WriteBool writes a bool as one byte.
func (b *Bytes) WriteBool(v bool) error {
	if v {
		return b.WriteU8(1)
	}
	return b.WriteU8(0)
}

// WriteSlice writes p at the write cursor.
func (b *Bytes) WriteSlice(p []byte) error {
	off, err := b.writeOffsetPositionMoved(int64(len(p)))
	if err != nil {
		return err
	}
	b.st.Put(off, p)
	return nil
}

// WriteString writes the raw bytes of s (no length prefix; see WriteUTF8
// for the length-prefixed wire form).
func (b *Bytes) WriteString(s string) error {
	off, err := b.writeOffsetPositionMoved(int64(len(s)))
	if err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		b.st.PutU8(off+int64(i), s[i])
	}
	return nil
}

// ReadU8 reads one byte at the read cursor.
func (b *Bytes) ReadU8() (uint8, error) {
	off, err := b.readOffsetPositionMoved(1)
	if err != nil {
		return 0, err
	}
	return b.st.U8(off), nil
}

// ReadI8 reads a signed byte at the read cursor.
func (b *Bytes) ReadI8() (int8, error) {
	v, err := b.ReadU8()
	return int8(v), err
}

// ReadU16 reads a uint16 at the read cursor.
func (b *Bytes) ReadU16() (uint16, error) {
	off, err := b.readOffsetPositionMoved(2)
	if err != nil {
		return 0, err
	}
	return b.st.U16(off), nil
}

// ReadI16 reads an int16 at the read cursor.
func (b *Bytes) ReadI16() (int16, error) {
	v, err := b.ReadU16()
	return int16(v), err
}

// ReadU32 reads a uint32 at the read cursor.
func (b *Bytes) ReadU32() (uint32, error) {
	off, err := b.readOffsetPositionMoved(4)
	if err != nil {
		return 0, err
	}
	return b.st.U32(off), nil
}

// ReadI32 reads an int32 at the read cursor.
func (b *Bytes) ReadI32() (int32, error) {
	v, err := b.ReadU32()
	return int32(v), err
}

// ReadU64 reads a uint64 at the read cursor.
func (b *Bytes) ReadU64() (uint64, error) {
	off, err := b.readOffsetPositionMoved(8)
	if err != nil {
		return 0, err
	}
	return b.st.U64(off), nil
}

// ReadI64 reads an int64 at the read cursor.
func (b *Bytes) ReadI64() (int64, error) {
	v, err := b.ReadU64()
	return int64(v), err
}

// ReadF32 reads a float32 at the read cursor.
func (b *Bytes) ReadF32() (float32, error) {
	off, err := b.readOffsetPositionMoved(4)
	if err != nil {
		return 0, err
	}
	return b.st.F32(off), nil
}

// ReadF64 reads a float64 at the read cursor.
func (b *Bytes) ReadF64() (float64, error) {
	off, err := b.readOffsetPositionMoved(8)
	if err != nil {
		return 0, err
	}
	return b.st.F64(off), nil
}

// ReadBool reads a bool written by WriteBool.
func (b *Bytes) ReadBool() (bool, error) {
	v, err := b.ReadU8()
	return v != 0, err
}

// ReadSlice fills p from the read cursor.
func (b *Bytes) ReadSlice(p []byte) error {
	off, err := b.readOffsetPositionMoved(int64(len(p)))
	if err != nil {
		return err
	}
	b.st.Get(off, p)
	return nil
}

// ReadBytes reads n bytes into a fresh slice.
func (b *Bytes) ReadBytes(n int64) ([]byte, error) {
	if n < 0 {
		return nil, ErrBufferUnderflow
	}
	p := make([]byte, n)
	if err := b.ReadSlice(p); err != nil {
		return nil, err
	}
	return p, nil
}
