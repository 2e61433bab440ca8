package bytekit

// Stop-bit variable-length integer codec.
//
// Non-negative values < 128 occupy one byte. Larger values emit 7-bit
// groups, least significant first, each with the high (continuation) bit
// set except the terminal group. Negative values are one's-complemented
// first; every group of the complement carries the continuation bit and a
// terminal 0x00 byte marks the sign. The framing is a wire format shared
// with other implementations and must not drift:
//
//	  300 -> AC 02
//	   -1 -> 80 00
//	 -300 -> AB 82 00

// WriteStopBit encodes n at the write cursor.
func (b *Bytes) WriteStopBit(n int64) error {
	if n >= 0 && n < 0x80 {
		return b.WriteU8(uint8(n))
	}
	if err := b.EnsureCapacity(int64(StopBitLength(n))); err != nil {
		return err
	}
	u := b.Unchecked()
	if n >= 0 {
		v := uint64(n)
		for v >= 0x80 {
			u.WriteU8(uint8(v) | 0x80)
			v >>= 7
		}
		u.WriteU8(uint8(v))
		return nil
	}
	c := uint64(^n)
	for {
		u.WriteU8(uint8(c) | 0x80)
		c >>= 7
		if c == 0 {
			break
		}
	}
	u.WriteU8(0)
	return nil
}

// ReadStopBit decodes a stop-bit integer at the read cursor. A sequence
// whose accumulated shift exceeds the 64-bit range fails with
// ErrStopBitOverflow; the cursor is left after the bytes consumed so far.
func (b *Bytes) ReadStopBit() (int64, error) {
	var v uint64
	shift := uint(0)
	for {
		x, err := b.ReadU8()
		if err != nil {
			return 0, err
		}
		if x < 0x80 {
			if x == 0 && shift > 0 {
				return int64(^v), nil
			}
			if shift > 56 {
				return 0, ErrStopBitOverflow
			}
			return int64(v | uint64(x)<<shift), nil
		}
		v |= uint64(x&0x7F) << shift
		shift += 7
		if shift > 63 {
			return 0, ErrStopBitOverflow
		}
	}
}

// StopBitLength returns the exact number of bytes WriteStopBit produces
// for n, for pre-sizing length-prefixed fields without double-encoding.
func StopBitLength(n int64) int {
	if n >= 0 {
		v := uint64(n)
		length := 1
		for v >= 0x80 {
			v >>= 7
			length++
		}
		return length
	}
	c := uint64(^n)
	length := 1 // terminal sign byte
	for {
		length++
		c >>= 7
		if c == 0 {
			return length
		}
	}
}
