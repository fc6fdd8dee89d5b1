package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct{ n int }

func TestPool(t *testing.T) {
	built := 0
	p := New(func() *item {
		built++
		return &item{}
	})

	v := p.Get()
	require.NotNil(t, v)
	require.Equal(t, 1, built)
	v.n = 7
	p.Put(v)

	// sync.Pool may drop entries at any time; either way Get never fails
	require.NotNil(t, p.Get())
}

func TestBuffersAreReset(t *testing.T) {
	b := NewBuffers(16, 64)

	buf := b.Get()
	require.Empty(t, *buf)
	require.GreaterOrEqual(t, cap(*buf), 16)
	*buf = append(*buf, "dirty"...)
	b.Put(buf)

	require.Empty(t, *b.Get())
}

func TestBuffersDropOversized(t *testing.T) {
	b := NewBuffers(16, 64)
	big := make([]byte, 0, 1024)
	b.Put(&big)

	for i := 0; i < 10; i++ {
		require.LessOrEqual(t, cap(*b.Get()), 64)
	}
}
