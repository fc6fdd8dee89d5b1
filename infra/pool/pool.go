// Package pool is a typed wrapper over sync.Pool.
package pool

import "sync"

// Pool hands out reusable *T. Objects must be reset by the caller.
type Pool[T any] struct {
	p sync.Pool
}

func New[T any](ctor func() *T) *Pool[T] {
	pl := &Pool[T]{}
	pl.p.New = func() any { return ctor() }
	return pl
}

func (p *Pool[T]) Get() *T {
	return p.p.Get().(*T)
}

func (p *Pool[T]) Put(v *T) {
	p.p.Put(v)
}

// Buffers pools byte slices. Slices that grew past max are dropped
// instead of being kept alive.
type Buffers struct {
	pool *Pool[[]byte]
	max  int
}

func NewBuffers(size, max int) *Buffers {
	return &Buffers{
		pool: New(func() *[]byte {
			b := make([]byte, 0, size)
			return &b
		}),
		max: max,
	}
}

// Get returns an empty buffer.
func (b *Buffers) Get() *[]byte {
	buf := b.pool.Get()
	*buf = (*buf)[:0]
	return buf
}

func (b *Buffers) Put(buf *[]byte) {
	if cap(*buf) > b.max {
		return
	}
	b.pool.Put(buf)
}
