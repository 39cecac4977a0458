package morph

import "sync"

// byteBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type byteBuffer struct {
	data []uint8
}

// Temporary buffer pool for the row pass of separable filters.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		// Start with a full-resolution page so steady-state runs never grow.
		return &byteBuffer{data: make([]uint8, 2048*2048)}
	},
}

// getTempBuffer retrieves a temporary buffer from the pool.
// The buffer is guaranteed to have at least width*height elements. Its
// contents are undefined; the row pass overwrites every cell before the
// column pass reads it.
func getTempBuffer(width, height int) []uint8 {
	size := width * height
	wrapper := tempBufferPool.Get().(*byteBuffer)

	if len(wrapper.data) < size {
		// Need larger buffer - return old one and allocate new
		tempBufferPool.Put(wrapper)
		return make([]uint8, size)
	}

	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []uint8) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 64*1024*1024 {
		tempBufferPool.Put(&byteBuffer{data: buf[:cap(buf)]})
	}
}
