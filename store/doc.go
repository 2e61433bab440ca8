// Package store implements the ownership unit of the library: a
// reference-counted contiguous memory region with typed, bounds-checked
// access at absolute byte offsets.
//
// A Store may be backed by an ordinary heap slice (NewHeap, Wrap), by an
// anonymous mapping outside the Go heap (NewNative), or by a window of a
// memory-mapped file (package mapped). Whatever the backing, the contract
// is the same:
//
//   - reads must land in [Start, SafeLimit)
//   - writes must land in [Start, Capacity)
//   - the backing memory is freed only when the reference count reaches
//     zero, and never while any cursor view retains a reservation
//
// The checked Read*/Write* methods return an error on any bounds violation.
// The unchecked single-word accessors (U8, PutU64, ...) skip every check in
// the name of throughput; callers own the capacity guarantee, typically via
// Bytes.EnsureCapacity one layer up.
//
// The volatile, ordered and compare-and-swap operations in atomic.go are
// safe for concurrent use from multiple goroutines or processes sharing the
// same mapping, provided offsets are naturally aligned. Everything else is
// safe concurrently only on disjoint offset ranges.
package store
