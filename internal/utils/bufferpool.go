package utils

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

// BufferPool recycles the buffers that render the models://available markdown,
// tool payload JSON and the ordered comparison result object.
type BufferPool struct {
	pool *bytebufferpool.Pool
}

var (
	renderPool     *BufferPool
	renderPoolOnce sync.Once
)

// NewBufferPool creates an empty pool; bytebufferpool calibrates buffer sizes as rendering proceeds
func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: &bytebufferpool.Pool{},
	}
}

// Get hands out a reset buffer for one rendering pass
func (bp *BufferPool) Get() *bytebufferpool.ByteBuffer {
	return bp.pool.Get()
}

// Put returns a buffer once its bytes have been copied out with Detach or String
func (bp *BufferPool) Put(buf *bytebufferpool.ByteBuffer) {
	bp.pool.Put(buf)
}

// Global returns the pool shared by resource and payload rendering
func Global() *BufferPool {
	renderPoolOnce.Do(func() {
		renderPool = NewBufferPool()
	})
	return renderPool
}

// Get takes a buffer from the shared rendering pool
func Get() *bytebufferpool.ByteBuffer {
	return Global().Get()
}

// Put returns a buffer to the shared rendering pool
func Put(buf *bytebufferpool.ByteBuffer) {
	Global().Put(buf)
}

// Detach copies the rendered bytes so the buffer can go back to the pool
func Detach(buf *bytebufferpool.ByteBuffer) []byte {
	return append([]byte(nil), buf.B...)
}
