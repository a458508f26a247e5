package main

import "sync"

// BytePool is a sync.Pool wrapper for the read buffers each connection
// grows as it accumulates pipelined bytes. Each connection takes one
// buffer when it starts and returns it when it ends, so pooling avoids a
// fresh allocation for every new connection.
type BytePool struct {
	pool sync.Pool
}

func NewBytePool() *BytePool {
	return &BytePool{
		pool: sync.Pool{
			New: func() any {
				buf := make([]byte, 4096)
				return &buf
			},
		},
	}
}

// Get returns a buffer with at least the requested capacity. Its length is
// zero; callers append into it.
func (bp *BytePool) Get(size int) []byte {
	buf := *bp.pool.Get().(*[]byte)
	if cap(buf) < size {
		buf = make([]byte, 0, size)
	}
	return buf[:0]
}

func (bp *BytePool) Put(buf []byte) {
	if cap(buf) > 1<<20 { // don't pool very large buffers
		return
	}
	buf = buf[:0]
	bp.pool.Put(&buf)
}
