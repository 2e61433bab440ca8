package store

import "errors"

var (
	// ErrUnderflow indicates a read outside [start, safeLimit).
	ErrUnderflow = errors.New("store: read beyond safe limit")

	// ErrOverflow indicates a write outside [start, capacity).
	ErrOverflow = errors.New("store: write beyond capacity")

	// ErrReadOnly indicates a write to a store over memory mapped without
	// write permission.
	ErrReadOnly = errors.New("store: write to read-only store")

	// ErrMisaligned indicates an atomic operation on an offset that is not
	// naturally aligned for its operand size.
	ErrMisaligned = errors.New("store: misaligned atomic access")

	// ErrReleased indicates an operation on a store whose reference count
	// already reached zero. This is a use-after-release programming error.
	ErrReleased = errors.New("store: use after release")
)
