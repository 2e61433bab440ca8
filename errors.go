package bytekit

import "errors"

var (
	// ErrBufferOverflow indicates a write past the write limit of a
	// non-elastic buffer.
	ErrBufferOverflow = errors.New("bytekit: write beyond limit of non-elastic buffer")

	// ErrBufferUnderflow indicates a read past the read limit (the write
	// frontier) or the store's safe limit.
	ErrBufferUnderflow = errors.New("bytekit: read beyond limit")

	// ErrCapacityExceeded indicates an elastic buffer hit its absolute
	// maximum capacity. Distinct from ErrBufferOverflow: the buffer was
	// willing to grow but may not.
	ErrCapacityExceeded = errors.New("bytekit: maximum capacity exceeded")

	// ErrStopBitOverflow indicates a malformed stop-bit sequence with too
	// many continuation bytes. Data corruption, not a usage error.
	ErrStopBitOverflow = errors.New("bytekit: too many stop bits")

	// ErrMalformedNumber indicates non-numeric text where the ASCII
	// parsers expected a number.
	ErrMalformedNumber = errors.New("bytekit: malformed number")

	// ErrMalformedUTF8 indicates invalid UTF-8 in a length-prefixed text
	// field. Data corruption, not a usage error.
	ErrMalformedUTF8 = errors.New("bytekit: malformed UTF-8 sequence")

	// ErrInvalidPosition indicates a cursor move that would break the
	// ordering start <= readPosition <= writePosition <= writeLimit.
	ErrInvalidPosition = errors.New("bytekit: invalid cursor position")
)
