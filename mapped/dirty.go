package mapped

import (
	"context"
	"fmt"
	"sort"

	"github.com/joshuapare/bytekit/store"
)

// rangeCapacity is the pre-allocated range slice capacity, enough for
// typical write bursts without reallocating.
const rangeCapacity = 64

// Range is a dirty byte range in absolute file offsets.
type Range struct {
	Off int64
	Len int64
}

// Tracker accumulates dirty byte ranges for a mapped file and flushes them
// as coalesced, page-aligned msync spans. Recording a range is a slice
// append; all alignment, sorting and merging happens at flush time.
//
// Not safe for concurrent use. Writers that share a file should each carry
// their own tracker or serialize access to one.
type Tracker struct {
	f      *File
	ranges []Range
}

// NewTracker returns a dirty-range tracker flushing through f.
func (f *File) NewTracker() *Tracker {
	return &Tracker{
		f:      f,
		ranges: make([]Range, 0, rangeCapacity),
	}
}

// Add records [off, off+n) as dirty. Empty or negative ranges are ignored.
func (t *Tracker) Add(off, n int64) {
	if off < 0 || n <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{Off: off, Len: n})
}

// Reset discards all tracked ranges without flushing, for abandoned work.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Pending reports how many raw ranges are tracked.
func (t *Tracker) Pending() int { return len(t.ranges) }

// Ranges returns the coalesced, page-aligned ranges a Flush would sync.
func (t *Tracker) Ranges() []Range {
	return t.coalesce()
}

// Flush syncs every tracked range through the chunk windows that cover it,
// then clears the tracker. Ranges over chunks that are not currently
// mapped are skipped: their pages were already written through a mapping
// that has since been released, and the release path synced them.
//
// ctx is checked between spans; a cancelled flush leaves the remaining
// ranges tracked so a later Flush can finish the work.
func (t *Tracker) Flush(ctx context.Context) error {
	if len(t.ranges) == 0 {
		return nil
	}
	if t.f.readOnly {
		t.ranges = t.ranges[:0]
		return nil
	}

	merged := t.coalesce()
	sync := t.f.mode != SyncAsync

	for i, r := range merged {
		if err := ctx.Err(); err != nil {
			t.rekeep(merged[i:])
			return err
		}
		if err := t.flushRange(r, sync); err != nil {
			t.rekeep(merged[i:])
			return err
		}
	}
	t.ranges = t.ranges[:0]
	return nil
}

// flushRange msyncs one coalesced range through every live chunk whose
// mapped window intersects it, overlap included, so writes that landed in
// a window's overlap tail are flushed even when the neighboring chunk was
// never mapped.
func (t *Tracker) flushRange(r Range, sync bool) error {
	f := t.f

	f.mu.Lock()
	var spans [][]byte
	var reserved []*store.Store
	for index, slot := range f.chunks {
		if slot.store == nil || !slot.store.TryReserve() {
			continue
		}
		reserved = append(reserved, slot.store)
		base := index * f.chunkSize
		lo, hi := max64(r.Off, base), min64(r.Off+r.Len, base+slot.store.Capacity())
		if lo >= hi {
			continue
		}
		data, err := slot.store.Slice(lo-base, hi-lo)
		if err != nil {
			continue
		}
		spans = append(spans, data)
	}
	f.mu.Unlock()
	defer f.releaseStores(reserved)

	for _, data := range spans {
		if err := syncRegion(data, sync); err != nil {
			return fmt.Errorf("mapped: flush range [%d, %d): %w", r.Off, r.Off+r.Len, err)
		}
	}
	return nil
}

// rekeep replaces the tracked ranges with the (already coalesced) tail a
// failed or cancelled flush did not get to.
func (t *Tracker) rekeep(rest []Range) {
	t.ranges = t.ranges[:0]
	t.ranges = append(t.ranges, rest...)
}

// coalesce page-aligns all ranges, sorts them and merges any that overlap
// or touch, returning the minimal set of msync spans.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}
	page := t.f.pageSize

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / page) * page
		end := alignUp(r.Off+r.Len, page)
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool { return aligned[i].Off < aligned[j].Off })

	merged := make([]Range, 0, len(aligned))
	cur := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= cur.Off+cur.Len {
			if end := next.Off + next.Len; end > cur.Off+cur.Len {
				cur.Len = end - cur.Off
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	return append(merged, cur)
}
