package bytekit

// Unchecked is the fast-path view over a Bytes: no bounds checks, no
// elastic growth, no errors. The caller must pre-reserve capacity with
// EnsureCapacity and must not read past the write frontier; violations are
// undefined behavior (memory corruption or panics), the price of the
// throughput.
//
// The view aliases the parent's cursors, so checked and unchecked calls
// can be mixed as long as the capacity guarantee holds across the
// unchecked stretch.
type Unchecked struct {
	b *Bytes
}

// Unchecked returns the fast-path view of b.
func (b *Bytes) Unchecked() *Unchecked { return &Unchecked{b: b} }

// WriteU8 writes one byte without any checks.
func (u *Unchecked) WriteU8(v uint8) {
	u.b.st.PutU8(u.b.writePos, v)
	u.b.writePos++
}

// WriteU16 writes a uint16 without any checks.
func (u *Unchecked) WriteU16(v uint16) {
	u.b.st.PutU16(u.b.writePos, v)
	u.b.writePos += 2
}

// WriteU32 writes a uint32 without any checks.
func (u *Unchecked) WriteU32(v uint32) {
	u.b.st.PutU32(u.b.writePos, v)
	u.b.writePos += 4
}

// WriteU64 writes a uint64 without any checks.
func (u *Unchecked) WriteU64(v uint64) {
	u.b.st.PutU64(u.b.writePos, v)
	u.b.writePos += 8
}

// WriteI64 writes an int64 without any checks.
func (u *Unchecked) WriteI64(v int64) { u.WriteU64(uint64(v)) }

// WriteF64 writes a float64 without any checks.
func (u *Unchecked) WriteF64(v float64) {
	u.b.st.PutF64(u.b.writePos, v)
	u.b.writePos += 8
}

// WriteSlice writes p without any checks.
func (u *Unchecked) WriteSlice(p []byte) {
	u.b.st.Put(u.b.writePos, p)
	u.b.writePos += int64(len(p))
}

// ReadU8 reads one byte without any checks.
func (u *Unchecked) ReadU8() uint8 {
	v := u.b.st.U8(u.b.readPos)
	u.b.readPos++
	return v
}

// ReadU16 reads a uint16 without any checks.
func (u *Unchecked) ReadU16() uint16 {
	v := u.b.st.U16(u.b.readPos)
	u.b.readPos += 2
	return v
}

// ReadU32 reads a uint32 without any checks.
func (u *Unchecked) ReadU32() uint32 {
	v := u.b.st.U32(u.b.readPos)
	u.b.readPos += 4
	return v
}

// ReadU64 reads a uint64 without any checks.
func (u *Unchecked) ReadU64() uint64 {
	v := u.b.st.U64(u.b.readPos)
	u.b.readPos += 8
	return v
}

// ReadI64 reads an int64 without any checks.
func (u *Unchecked) ReadI64() int64 { return int64(u.ReadU64()) }

// ReadF64 reads a float64 without any checks.
func (u *Unchecked) ReadF64() float64 {
	v := u.b.st.F64(u.b.readPos)
	u.b.readPos += 8
	return v
}
