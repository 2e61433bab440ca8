// Package bytekit provides zero-copy, cursor-based access to byte buffers
// backed by heap memory, native (off-heap) memory, or memory-mapped file
// chunks.
//
// The central type is Bytes, a view over a reference-counted store with two
// independent cursor pairs: a read position bounded by the write position
// (the read limit always tracks the write frontier), and a write position
// bounded by the write limit. Elastic views grow their backing store
// transparently on overflow; fixed views fail with ErrBufferOverflow.
//
// On top of the cursor sit the binary codec primitives every wire format in
// this family shares: stop-bit variable-length integers, length-prefixed
// UTF-8 and Latin-1 text, and ASCII numeric rendering with an exact
// round-trip double formatter.
//
// A Bytes view is not safe for concurrent use; share the underlying store,
// not the cursor. See package store for the cross-thread primitives and
// package mapped for chunked file mapping.
package bytekit
