//go:build !unix

package store

// NewNative falls back to a heap allocation on platforms without anonymous
// mappings. The store still reports direct=false so callers can tell.
func NewNative(capacity int64) (*Store, error) {
	return NewHeap(capacity), nil
}
