// Package pool provides pooled byte buffers and typed scratch slices.
package pool

import "sync"

// SlicePool recycles slices of T.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool creates an empty SlicePool.
func NewSlicePool[T any]() *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any { return &[]T{} },
		},
	}
}

// Get returns a zeroed slice of length size and a cleanup function that
// returns it to the pool. The slice must not be used after cleanup.
//
// Example:
//
//	block, cleanup := p.Get(64)
//	defer cleanup()
func (p *SlicePool[T]) Get(size int) ([]T, func()) {
	ptr, _ := p.pool.Get().(*[]T)
	slice := *ptr
	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
		clear(slice)
	}
	*ptr = slice

	return slice, func() { p.pool.Put(ptr) }
}

var chunkBuffers = NewSlicePool[byte]()

// GetChunkBuffer returns a zeroed buffer of size bytes for one chunk of a
// stream compressed in parallel, and a cleanup function that recycles it.
func GetChunkBuffer(size int) ([]byte, func()) {
	return chunkBuffers.Get(size)
}
