package bytekit

import (
	"fmt"
	"strconv"
)

// ASCII numeric parsing at the read cursor, the inverse of the Append
// family. Parsers consume digits up to the first non-matching byte and
// leave the cursor on it; a field with no digits at all is a format
// error.

// ParseInt64 parses an optionally signed decimal integer.
func (b *Bytes) ParseInt64() (int64, error) {
	neg := false
	if c, ok := b.peek(); ok && (c == '-' || c == '+') {
		neg = c == '-'
		b.readPos++
	}
	u, _, err := b.parseDigits()
	if err != nil {
		return 0, err
	}
	if neg {
		return -int64(u), nil
	}
	return int64(u), nil
}

// ParseUint64 parses an unsigned decimal integer.
func (b *Bytes) ParseUint64() (uint64, error) {
	u, _, err := b.parseDigits()
	return u, err
}

// ParseFloat64 parses a decimal floating point value as rendered by
// AppendFloat64, including NaN, Infinity and -Infinity.
func (b *Bytes) ParseFloat64() (float64, error) {
	start := b.readPos
	if c, ok := b.peek(); ok && (c == '-' || c == '+') {
		b.readPos++
	}
	if b.consumeWord("NaN") || b.consumeWord("Infinity") {
		s, err := b.textSince(start)
		if err != nil {
			return 0, err
		}
		return strconv.ParseFloat(s, 64)
	}

	b.skipDigits()
	if c, ok := b.peek(); ok && c == '.' {
		b.readPos++
		b.skipDigits()
	}
	if c, ok := b.peek(); ok && (c == 'e' || c == 'E') {
		b.readPos++
		if c, ok := b.peek(); ok && (c == '-' || c == '+') {
			b.readPos++
		}
		b.skipDigits()
	}

	s, err := b.textSince(start)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		b.readPos = start
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedNumber, s)
	}
	return v, nil
}

// SkipWhitespace advances the read cursor past spaces, tabs and line
// breaks.
func (b *Bytes) SkipWhitespace() {
	for {
		c, ok := b.peek()
		if !ok || (c != ' ' && c != '\t' && c != '\r' && c != '\n') {
			return
		}
		b.readPos++
	}
}

// peek returns the byte at the read cursor without consuming it. Bytes
// past the store's safe limit, or on a released store, read as absent.
func (b *Bytes) peek() (byte, bool) {
	if b.readPos >= b.writePos || b.readPos >= b.st.SafeLimit() || !b.st.Live() {
		return 0, false
	}
	return b.st.U8(b.readPos), true
}

func (b *Bytes) parseDigits() (uint64, int, error) {
	var u uint64
	digits := 0
	for {
		c, ok := b.peek()
		if !ok || c < '0' || c > '9' {
			break
		}
		u = u*10 + uint64(c-'0')
		digits++
		b.readPos++
	}
	if digits == 0 {
		return 0, 0, fmt.Errorf("%w: no digits at read position", ErrMalformedNumber)
	}
	return u, digits, nil
}

func (b *Bytes) skipDigits() {
	for {
		c, ok := b.peek()
		if !ok || c < '0' || c > '9' {
			return
		}
		b.readPos++
	}
}

// consumeWord advances past word if it appears verbatim at the read
// cursor.
func (b *Bytes) consumeWord(word string) bool {
	if b.ReadRemaining() < int64(len(word)) ||
		b.readPos+int64(len(word)) > b.st.SafeLimit() || !b.st.Live() {
		return false
	}
	for i := 0; i < len(word); i++ {
		if b.st.U8(b.readPos+int64(i)) != word[i] {
			return false
		}
	}
	b.readPos += int64(len(word))
	return true
}

func (b *Bytes) textSince(start int64) (string, error) {
	if b.readPos == start {
		return "", fmt.Errorf("%w: no number at read position", ErrMalformedNumber)
	}
	p := make([]byte, b.readPos-start)
	if err := b.st.ReadAt(start, p); err != nil {
		return "", err
	}
	return string(p), nil
}
