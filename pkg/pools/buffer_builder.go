package pools

import (
	"encoding/binary"
	"math"
	"sync"
)

// MaxPooledBytes bounds the capacity of buffers returned to the pool.
const MaxPooledBytes = 1 << 20

var bytePool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 4096)
		return &b
	},
}

// BufferBuilder builds a byte slice from pooled storage. Integers are
// written as varints and floats as little-endian IEEE 754.
type BufferBuilder struct {
	buf []byte
}

// NewBufferBuilder creates a new buffer builder with at least the given
// initial capacity.
func NewBufferBuilder(initialCap int) *BufferBuilder {
	bp, ok := bytePool.Get().(*[]byte)
	if !ok || cap(*bp) < initialCap {
		return &BufferBuilder{buf: make([]byte, 0, initialCap)}
	}
	return &BufferBuilder{buf: (*bp)[:0]}
}

// Write appends bytes to the buffer.
func (b *BufferBuilder) Write(p []byte) {
	b.buf = append(b.buf, p...)
}

// WriteByte appends a single byte.
func (b *BufferBuilder) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// WriteString appends a string.
func (b *BufferBuilder) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// WriteUvarint appends v as an unsigned varint.
func (b *BufferBuilder) WriteUvarint(v uint64) {
	b.buf = binary.AppendUvarint(b.buf, v)
}

// WriteFloat64 appends f in little-endian order.
func (b *BufferBuilder) WriteFloat64(f float64) {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, math.Float64bits(f))
}

// Bytes returns the built buffer. The slice is only valid until Release.
func (b *BufferBuilder) Bytes() []byte {
	return b.buf
}

// Len returns the current length of the buffer.
func (b *BufferBuilder) Len() int {
	return len(b.buf)
}

// Reset resets the buffer for reuse.
func (b *BufferBuilder) Reset() {
	b.buf = b.buf[:0]
}

// Release returns the buffer to the pool. After Release, the builder should not be used.
func (b *BufferBuilder) Release() {
	if b.buf != nil && cap(b.buf) <= MaxPooledBytes {
		buf := b.buf[:0]
		bytePool.Put(&buf)
	}
	b.buf = nil
}
