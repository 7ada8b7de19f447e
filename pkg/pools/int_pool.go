package pools

import (
	"sync"
)

// Size classes for pooled int slices
const (
	SmallInts  = 16
	MediumInts = 256
	LargeInts  = 4096
)

// IntPool pools int slices used for tie lists and label scratch space.
type IntPool struct {
	small  sync.Pool // <= SmallInts elements
	medium sync.Pool // <= MediumInts elements
	large  sync.Pool // <= LargeInts elements
}

// NewIntPool creates a new int slice pool.
func NewIntPool() *IntPool {
	p := &IntPool{}
	p.small.New = newInts(SmallInts)
	p.medium.New = newInts(MediumInts)
	p.large.New = newInts(LargeInts)
	return p
}

func newInts(capacity int) func() any {
	return func() any {
		s := make([]int, 0, capacity)
		return &s
	}
}

func (p *IntPool) class(size int) *sync.Pool {
	switch {
	case size <= SmallInts:
		return &p.small
	case size <= MediumInts:
		return &p.medium
	case size <= LargeInts:
		return &p.large
	default:
		return nil
	}
}

// Get returns an empty int slice with at least the requested capacity.
func (p *IntPool) Get(size int) []int {
	pool := p.class(size)
	if pool == nil {
		return make([]int, 0, size)
	}
	sp, ok := pool.Get().(*[]int)
	if !ok || cap(*sp) < size {
		return make([]int, 0, size)
	}
	return (*sp)[:0]
}

// Put returns an int slice to the pool. Slices above LargeInts are dropped.
func (p *IntPool) Put(s []int) {
	c := cap(s)

	// A slice goes back to the largest class it can fully serve
	var pool *sync.Pool
	switch {
	case c > LargeInts:
		return // Don't pool very large slices
	case c == LargeInts:
		pool = &p.large
	case c >= MediumInts:
		pool = &p.medium
	case c >= SmallInts:
		pool = &p.small
	default:
		return
	}

	s = s[:0]
	pool.Put(&s)
}

var defaultIntPool = NewIntPool()

// GetInts returns an int slice from the default pool.
func GetInts(size int) []int {
	return defaultIntPool.Get(size)
}

// PutInts returns an int slice to the default pool.
func PutInts(s []int) {
	defaultIntPool.Put(s)
}
