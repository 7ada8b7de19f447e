package pools

import "sync"

// CountBuffer accumulates a weight per label in a dense array. Only the
// labels touched since the last Reset are visited when clearing or
// searching, so one buffer sized for the whole graph can be reused for
// every vertex.
type CountBuffer struct {
	counts  []float64
	touched []int
}

// NewCountBuffer creates a buffer for labels 0..size-1.
func NewCountBuffer(size int) *CountBuffer {
	return &CountBuffer{
		counts:  make([]float64, size),
		touched: make([]int, 0, 16),
	}
}

// Size returns the number of labels the buffer can hold.
func (b *CountBuffer) Size() int { return len(b.counts) }

// Add adds w to the tally of label. w must be positive.
func (b *CountBuffer) Add(label int, w float64) {
	if b.counts[label] == 0 {
		b.touched = append(b.touched, label)
	}
	b.counts[label] += w
}

// Count returns the current tally of label.
func (b *CountBuffer) Count(label int) float64 { return b.counts[label] }

// Touched returns the labels with a non-zero tally in insertion order. The
// slice is only valid until the next Add or Reset.
func (b *CountBuffer) Touched() []int { return b.touched }

// Max returns the label with the largest tally, preferring the numerically
// largest label on ties. ok is false when nothing was added.
func (b *CountBuffer) Max() (label int, count float64, ok bool) {
	for _, l := range b.touched {
		c := b.counts[l]
		if !ok || c > count || (c == count && l > label) {
			label, count, ok = l, c, true
		}
	}
	return label, count, ok
}

// Ties appends every label whose tally equals the maximum to dst.
func (b *CountBuffer) Ties(dst []int) []int {
	_, best, ok := b.Max()
	if !ok {
		return dst
	}
	for _, l := range b.touched {
		if b.counts[l] == best {
			dst = append(dst, l)
		}
	}
	return dst
}

// Reset clears every touched tally.
func (b *CountBuffer) Reset() {
	for _, l := range b.touched {
		b.counts[l] = 0
	}
	b.touched = b.touched[:0]
}

// CountBufferPool pools CountBuffers across engine runs.
type CountBufferPool struct {
	pool sync.Pool
}

// NewCountBufferPool creates an empty pool.
func NewCountBufferPool() *CountBufferPool {
	return &CountBufferPool{}
}

// Get returns a cleared buffer holding at least size labels.
func (p *CountBufferPool) Get(size int) *CountBuffer {
	b, ok := p.pool.Get().(*CountBuffer)
	if !ok || len(b.counts) < size {
		return NewCountBuffer(size)
	}
	return b
}

// Put clears b and returns it to the pool.
func (p *CountBufferPool) Put(b *CountBuffer) {
	if b == nil || len(b.counts) > MaxPooledLabels {
		return // Don't pool very large buffers
	}
	b.Reset()
	p.pool.Put(b)
}

// MaxPooledLabels bounds the size of buffers kept in a pool.
const MaxPooledLabels = 1 << 22

var defaultCountBufferPool = NewCountBufferPool()

// GetCountBuffer returns a buffer from the default pool.
func GetCountBuffer(size int) *CountBuffer {
	return defaultCountBufferPool.Get(size)
}

// PutCountBuffer returns a buffer to the default pool.
func PutCountBuffer(b *CountBuffer) {
	defaultCountBufferPool.Put(b)
}
