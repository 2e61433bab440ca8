package mapped

import (
	"fmt"

	"github.com/joshuapare/bytekit/store"
)

// Advice is an access-pattern hint for Advise.
type Advice int

const (
	// AdviseNormal resets the kernel's readahead to its default.
	AdviseNormal Advice = iota
	// AdviseSequential requests aggressive readahead for a forward scan.
	AdviseSequential
	// AdviseRandom disables readahead for point lookups.
	AdviseRandom
	// AdviseWillNeed asks the kernel to start paging the range in now.
	AdviseWillNeed
	// AdviseDontNeed tells the kernel the range will not be touched soon;
	// pages may be evicted and will be refetched from the file on next
	// access.
	AdviseDontNeed
)

func (a Advice) String() string {
	switch a {
	case AdviseNormal:
		return "normal"
	case AdviseSequential:
		return "sequential"
	case AdviseRandom:
		return "random"
	case AdviseWillNeed:
		return "willneed"
	case AdviseDontNeed:
		return "dontneed"
	}
	return fmt.Sprintf("advice(%d)", int(a))
}

// Advise applies an access-pattern hint to the pages of [position,
// position+length) that are covered by live chunk windows. Unmapped
// chunks are skipped: a hint is about resident mappings, and mapping a
// chunk just to hint at it would defeat the point. The hinted span is
// widened down to a page boundary, as the kernel requires.
func (f *File) Advise(position, length int64, advice Advice) error {
	if position < 0 {
		return fmt.Errorf("%w: %d", ErrNegativePosition, position)
	}
	if advice < AdviseNormal || advice > AdviseDontNeed {
		return fmt.Errorf("mapped: unknown advice %d", int(advice))
	}
	if length <= 0 {
		return nil
	}
	end := position + length

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	var spans [][]byte
	var reserved []*store.Store
	for index, slot := range f.chunks {
		if slot.store == nil || !slot.store.TryReserve() {
			continue
		}
		reserved = append(reserved, slot.store)
		base := index * f.chunkSize
		lo, hi := max64(position, base), min64(end, base+f.chunkSize)
		if lo >= hi {
			continue
		}
		// madvise wants a page-aligned start; the mapping base is
		// page-aligned, so align the in-window offset.
		off := (lo - base) / f.pageSize * f.pageSize
		data, err := slot.store.Slice(off, hi-base-off)
		if err != nil {
			continue
		}
		spans = append(spans, data)
	}
	f.mu.Unlock()
	defer f.releaseStores(reserved)

	for _, data := range spans {
		if err := madviseRegion(data, advice); err != nil {
			return fmt.Errorf("mapped: advise %s %s: %w", advice, f.path, err)
		}
	}
	return nil
}
