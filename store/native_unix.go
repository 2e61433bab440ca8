//go:build unix

package store

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// NewNative allocates capacity bytes outside the Go heap via an anonymous
// private mapping. The memory is zeroed by the OS and unmapped when the
// last reference is released.
func NewNative(capacity int64) (*Store, error) {
	if capacity <= 0 {
		return Wrap(nil), nil
	}
	if capacity > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("store: native region too large (%d bytes)", capacity)
	}
	data, err := unix.Mmap(-1, 0, int(capacity),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("store: anonymous mmap failed: %w", err)
	}
	return WrapDirect(data, int64(len(data)), func() {
		// Release callback; the refcount layer guarantees a single call.
		_ = unix.Munmap(data)
	}), nil
}
