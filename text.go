package bytekit

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length-prefixed text codec. The wire form is a stop-bit byte length
// followed by that many UTF-8 bytes; an absent (null) string is the
// stop-bit value -1 with no bytes. Encoding and decoding walk code points
// manually against the cursor, no intermediate buffers.

const nullMarker = -1

// UTF8Length returns the encoded byte length of s. Invalid bytes in s
// count as the replacement character, mirroring what WriteUTF8 emits.
func UTF8Length(s string) int64 {
	var n int64
	for _, r := range s {
		switch {
		case r < 0x80:
			n++
		case r < 0x800:
			n += 2
		case r < 0x10000:
			n += 3
		default:
			n += 4
		}
	}
	return n
}

// WriteUTF8 writes s with a stop-bit length prefix.
func (b *Bytes) WriteUTF8(s string) error {
	n := UTF8Length(s)
	if err := b.WriteStopBit(n); err != nil {
		return err
	}
	if err := b.EnsureCapacity(n); err != nil {
		return err
	}
	u := b.Unchecked()
	for _, r := range s {
		switch {
		case r < 0x80:
			u.WriteU8(uint8(r))
		case r < 0x800:
			u.WriteU8(uint8(0xC0 | r>>6))
			u.WriteU8(uint8(0x80 | r&0x3F))
		case r < 0x10000:
			u.WriteU8(uint8(0xE0 | r>>12))
			u.WriteU8(uint8(0x80 | r>>6&0x3F))
			u.WriteU8(uint8(0x80 | r&0x3F))
		default:
			u.WriteU8(uint8(0xF0 | r>>18))
			u.WriteU8(uint8(0x80 | r>>12&0x3F))
			u.WriteU8(uint8(0x80 | r>>6&0x3F))
			u.WriteU8(uint8(0x80 | r&0x3F))
		}
	}
	return nil
}

// WriteUTF8Nullable writes s, encoding nil as the null marker.
func (b *Bytes) WriteUTF8Nullable(s *string) error {
	if s == nil {
		return b.WriteStopBit(nullMarker)
	}
	return b.WriteUTF8(*s)
}

// ReadUTF8 reads a length-prefixed UTF-8 string. A null marker decodes as
// the empty string; use ReadUTF8Nullable to distinguish.
func (b *Bytes) ReadUTF8() (string, error) {
	s, err := b.ReadUTF8Nullable()
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

// ReadUTF8Nullable reads a length-prefixed UTF-8 string, returning nil for
// the null marker. Malformed sequences fail with ErrMalformedUTF8.
func (b *Bytes) ReadUTF8Nullable() (*string, error) {
	n, err := b.ReadStopBit()
	if err != nil {
		return nil, err
	}
	if n == nullMarker {
		return nil, nil
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrMalformedUTF8, n)
	}
	var sb strings.Builder
	sb.Grow(int(n))

	remaining := n
	cont := func() (int32, error) {
		x, err := b.ReadU8()
		if err != nil {
			return 0, err
		}
		remaining--
		if x&0xC0 != 0x80 {
			return 0, fmt.Errorf("%w: continuation byte %#02x", ErrMalformedUTF8, x)
		}
		return int32(x & 0x3F), nil
	}

	for remaining > 0 {
		x, err := b.ReadU8()
		if err != nil {
			return nil, err
		}
		remaining--
		var r int32
		var need int64
		switch {
		case x < 0x80:
			sb.WriteByte(x)
			continue
		case x&0xE0 == 0xC0:
			r, need = int32(x&0x1F), 1
		case x&0xF0 == 0xE0:
			r, need = int32(x&0x0F), 2
		case x&0xF8 == 0xF0:
			r, need = int32(x&0x07), 3
		default:
			return nil, fmt.Errorf("%w: leading byte %#02x", ErrMalformedUTF8, x)
		}
		if need > remaining {
			return nil, fmt.Errorf("%w: truncated sequence", ErrMalformedUTF8)
		}
		for ; need > 0; need-- {
			c, err := cont()
			if err != nil {
				return nil, err
			}
			r = r<<6 | c
		}
		if r > utf8.MaxRune {
			return nil, fmt.Errorf("%w: code point %#x out of range", ErrMalformedUTF8, r)
		}
		sb.WriteRune(rune(r))
	}
	s := sb.String()
	return &s, nil
}

// Write8Bit writes s as Latin-1 with a stop-bit length prefix. Code points
// above 255 are truncated to '?'.
func (b *Bytes) Write8Bit(s string) error {
	var n int64
	for range s {
		n++
	}
	if err := b.WriteStopBit(n); err != nil {
		return err
	}
	if err := b.EnsureCapacity(n); err != nil {
		return err
	}
	u := b.Unchecked()
	for _, r := range s {
		if r > 0xFF {
			u.WriteU8('?')
			continue
		}
		u.WriteU8(uint8(r))
	}
	return nil
}

// Write8BitNullable writes s as Latin-1, encoding nil as the null marker.
func (b *Bytes) Write8BitNullable(s *string) error {
	if s == nil {
		return b.WriteStopBit(nullMarker)
	}
	return b.Write8Bit(*s)
}

// Read8Bit reads a length-prefixed Latin-1 string written by Write8Bit. A
// null marker decodes as the empty string; use Read8BitNullable to
// distinguish.
func (b *Bytes) Read8Bit() (string, error) {
	s, err := b.Read8BitNullable()
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

// Read8BitNullable reads a length-prefixed Latin-1 string, returning nil
// for the null marker.
func (b *Bytes) Read8BitNullable() (*string, error) {
	n, err := b.ReadStopBit()
	if err != nil {
		return nil, err
	}
	if n == nullMarker {
		return nil, nil
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrMalformedUTF8, n)
	}
	var sb strings.Builder
	sb.Grow(int(n))
	for i := int64(0); i < n; i++ {
		x, err := b.ReadU8()
		if err != nil {
			return nil, err
		}
		sb.WriteRune(rune(x))
	}
	s := sb.String()
	return &s, nil
}
