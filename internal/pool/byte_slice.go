// Package pool holds sync.Pool wrappers for buffers reused while encoding
// output.
package pool

import "sync"

const defaultByteSliceCapacity = 64

type ByteSlicePool struct {
	pool sync.Pool
}

var byteSlicePool = &ByteSlicePool{
	pool: sync.Pool{
		New: func() any {
			b := make([]byte, 0, defaultByteSliceCapacity)
			return &b
		},
	},
}

// ByteSlice returns the shared byte slice pool.
func ByteSlice() *ByteSlicePool {
	return byteSlicePool
}

// Get returns an empty slice with at least 64 bytes of capacity.
func (p *ByteSlicePool) Get() []byte {
	return (*(p.pool.Get().(*[]byte)))[:0]
}

// GetCapacity returns an empty slice with at least n bytes of capacity.
func (p *ByteSlicePool) GetCapacity(n int) []byte {
	b := p.Get()
	if cap(b) < n {
		p.Put(b)
		b = make([]byte, 0, n)
	}
	return b
}

func (p *ByteSlicePool) Put(b []byte) {
	b = b[:0]
	p.pool.Put(&b)
}
