package pool_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/ozwaldorf/xq/internal/pool"
	"github.com/stretchr/testify/require"
)

func TestByteSlice(t *testing.T) {
	p := pool.ByteSlice()
	require.Same(t, p, pool.ByteSlice(), "pool is shared")

	b := p.Get()
	require.Empty(t, b)
	require.GreaterOrEqual(t, cap(b), 64)

	b = append(b, `{"a":1}`...)
	p.Put(b)

	b = p.Get()
	require.Empty(t, b, "Put() resets the length")

	big := p.GetCapacity(4096)
	require.Empty(t, big)
	require.GreaterOrEqual(t, cap(big), 4096)
	p.Put(big)
	p.Put(b)
}

func TestByteSliceConcurrent(t *testing.T) {
	const workers = 16
	const size = 256

	p := pool.ByteSlice()
	out := make([]string, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func() {
			defer wg.Done()
			b := p.GetCapacity(size)
			defer p.Put(b)
			for range size {
				b = append(b, byte('a'+i))
			}
			out[i] = string(b)
		}()
	}
	wg.Wait()

	for i, s := range out {
		require.Equal(t, strings.Repeat(string(rune('a'+i)), size), s, "worker %d", i)
	}
}
