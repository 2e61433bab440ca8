package bytekit

import "sync"

// Pool recycles elastic Bytes buffers across encode/decode cycles to cut
// allocation churn on hot serialization paths. Buffers come back cleared,
// with whatever capacity their previous use grew them to.
//
// A Pool never caps how large a borrowed buffer may grow, but buffers that
// grew past maxRetained are dropped on Put instead of being retained, so a
// single oversized record cannot pin memory for the pool's lifetime.
type Pool struct {
	pool        sync.Pool
	initial     int64
	maxRetained int64
}

const (
	defaultPoolInitial  = 4 * 1024
	defaultPoolRetained = 1024 * 1024
)

// NewPool returns a pool handing out elastic buffers of at least initial
// capacity. initial <= 0 selects a small default; maxRetained <= 0 selects
// a default retention cap.
func NewPool(initial, maxRetained int64) *Pool {
	p := &Pool{initial: initial, maxRetained: maxRetained}
	if p.initial <= 0 {
		p.initial = defaultPoolInitial
	}
	if p.maxRetained <= 0 {
		p.maxRetained = defaultPoolRetained
	}
	p.pool.New = func() any {
		return NewElastic(p.initial)
	}
	return p
}

// Get borrows a cleared elastic buffer from the pool.
func (p *Pool) Get() *Bytes {
	b := p.pool.Get().(*Bytes)
	b.Clear()
	return b
}

// Put returns b to the pool. Buffers that grew past the retention cap are
// released instead, letting their backing memory go.
func (p *Pool) Put(b *Bytes) {
	if b == nil {
		return
	}
	if b.Capacity() > p.maxRetained {
		_ = b.Release()
		return
	}
	p.pool.Put(b)
}
