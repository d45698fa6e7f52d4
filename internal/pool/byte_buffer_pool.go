package pool

import "sync"

// Default sizes of pooled envelope buffers.
const (
	BlobBufferDefaultSize  = 1024 * 64       // 64KiB
	BlobBufferMaxThreshold = 1024 * 1024 * 8 // 8MiB
)

// ByteBuffer is a growable byte slice used to assemble blob envelopes.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of bytes in the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Grow makes room for n more bytes without reallocating on the next append.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := max(n, cap(bb.B)/4, BlobBufferDefaultSize)
	buf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(buf, bb.B)
	bb.B = buf
}

// Write appends data to the buffer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool recycles ByteBuffers, dropping ones that grew past maxThreshold.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given default capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var blobDefaultPool = NewByteBufferPool(BlobBufferDefaultSize, BlobBufferMaxThreshold)

// GetBlobBuffer retrieves a ByteBuffer from the default blob pool.
func GetBlobBuffer() *ByteBuffer {
	return blobDefaultPool.Get()
}

// PutBlobBuffer returns a ByteBuffer to the default blob pool.
func PutBlobBuffer(bb *ByteBuffer) {
	blobDefaultPool.Put(bb)
}
