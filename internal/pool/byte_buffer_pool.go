// Package pool provides pooled byte buffers for record assembly.
package pool

import "sync"

const (
	// RecordBufferDefaultSize is the initial capacity of pooled buffers,
	// sized for typical records (header plus a small payload).
	RecordBufferDefaultSize = 512

	// RecordBufferMaxThreshold caps the capacity of buffers returned to
	// the pool; one oversized record must not pin its buffer forever.
	RecordBufferMaxThreshold = 1024 * 64
)

// ByteBuffer is a reusable append buffer. The zero value is not usable;
// obtain instances from GetRecordBuffer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer while keeping its allocation for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

var recordBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, RecordBufferDefaultSize)}
	},
}

// GetRecordBuffer obtains an empty buffer from the pool.
func GetRecordBuffer() *ByteBuffer {
	bb, _ := recordBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutRecordBuffer returns a buffer to the pool. Buffers grown past
// RecordBufferMaxThreshold are dropped instead.
func PutRecordBuffer(bb *ByteBuffer) {
	if cap(bb.B) > RecordBufferMaxThreshold {
		return
	}
	recordBufferPool.Put(bb)
}
