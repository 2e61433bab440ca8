// Package refcnt implements atomic reference counting for shared memory
// resources.
//
// A Counter starts with one reservation held by its creator. Every view or
// cache that retains the resource takes its own reservation with Reserve
// (or TryReserve when racing against concurrent release), and drops it with
// Release. When the count transitions to zero the release callback runs
// exactly once; any reserve or release after that point is a programming
// error and is reported, never ignored.
package refcnt

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrReleased indicates a reserve was attempted after the count reached zero.
	ErrReleased = errors.New("refcnt: resource already released")

	// ErrDoubleRelease indicates more releases than reservations.
	ErrDoubleRelease = errors.New("refcnt: release without matching reserve")
)

// Counter tracks live references to a shared resource.
//
// The zero value is not usable; construct with New.
type Counter struct {
	refs     atomic.Int64
	released atomic.Bool
	onZero   func()
}

// New returns a Counter holding one reservation for the creator.
// onZero runs exactly once, on the goroutine that drops the final
// reservation. It may be nil.
func New(onZero func()) *Counter {
	c := &Counter{onZero: onZero}
	c.refs.Store(1)
	return c
}

// Count returns the current number of reservations. Intended for tests and
// diagnostics; the value may be stale by the time the caller sees it.
func (c *Counter) Count() int {
	n := c.refs.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Reserve takes an additional reservation. It fails with ErrReleased when
// the count already reached zero: the resource is gone and must not be
// resurrected.
func (c *Counter) Reserve() error {
	if c.TryReserve() {
		return nil
	}
	return ErrReleased
}

// TryReserve attempts to take a reservation, returning false instead of an
// error when the resource is already released. Used for racy cache lookups:
// the loser of a release race simply builds a fresh resource.
func (c *Counter) TryReserve() bool {
	for {
		n := c.refs.Load()
		if n <= 0 {
			return false
		}
		if c.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release drops one reservation. When the count transitions to zero the
// release callback runs before Release returns. Releasing more times than
// reserved returns ErrDoubleRelease.
func (c *Counter) Release() error {
	for {
		n := c.refs.Load()
		if n <= 0 {
			return fmt.Errorf("%w (count=%d)", ErrDoubleRelease, n)
		}
		if !c.refs.CompareAndSwap(n, n-1) {
			continue
		}
		if n == 1 {
			// Final reservation. CompareAndSwap guarantees a single winner,
			// the Bool is belt and braces against misuse via Count poking.
			if c.released.CompareAndSwap(false, true) && c.onZero != nil {
				c.onZero()
			}
		}
		return nil
	}
}

// Released reports whether the count has reached zero.
func (c *Counter) Released() bool {
	return c.released.Load()
}
