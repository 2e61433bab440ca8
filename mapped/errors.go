package mapped

import "errors"

var (
	// ErrNegativePosition indicates a chunk acquisition at a negative file
	// position. This is a usage error, not an I/O condition.
	ErrNegativePosition = errors.New("mapped: negative position")

	// ErrClosed indicates an operation on a closed file.
	ErrClosed = errors.New("mapped: file closed")

	// ErrBeyondCapacity indicates an acquisition past the file's configured
	// virtual capacity.
	ErrBeyondCapacity = errors.New("mapped: position beyond capacity")

	// ErrUnsupported indicates the platform has no memory mapping support.
	ErrUnsupported = errors.New("mapped: memory mapping not supported on this platform")
)
