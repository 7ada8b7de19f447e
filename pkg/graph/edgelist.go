package graph

import (
	"errors"
	"fmt"
	"sort"
)

// FromEdges builds a graph with n vertices from an edge slice. Edges with
// a zero Weight are added unweighted.
func FromEdges(n int, kind Kind, edges []Edge) (*Adjacency, error) {
	g, err := New(n, kind)
	if err != nil {
		return nil, err
	}

	for _, e := range edges {
		if e.Weight == 0 {
			err = g.AddEdge(e.U, e.V)
		} else {
			err = g.AddWeightedEdge(e.U, e.V, e.Weight)
		}
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// SortedEdgeList is a flat arc list ordered lexicographically by
// (source, target). Undirected edges appear in both orientations so that
// every vertex's neighborhood is one contiguous run, located by Run(v).
type SortedEdgeList struct {
	N        int
	Directed bool
	Src      []int32
	Dst      []int32
	W        []float64 // nil when unweighted
	offsets  []int     // offsets[v] = first index with Src == v; len N+2
}

// ErrUnsortedEdges is returned when a supplied arc list is out of order.
var ErrUnsortedEdges = errors.New("edge list is not sorted by (source, target)")

// NewSortedEdgeList derives the sorted arc list of g. When weighted is false
// the W column is omitted and every arc counts as 1.
func NewSortedEdgeList(g Graph, weighted bool) *SortedEdgeList {
	n := g.Order()
	arcs := 0
	for v := 1; v <= n; v++ {
		arcs += g.Degree(v)
	}

	l := &SortedEdgeList{
		N:        n,
		Directed: g.Directed(),
		Src:      make([]int32, 0, arcs),
		Dst:      make([]int32, 0, arcs),
	}
	if weighted {
		l.W = make([]float64, 0, arcs)
	}

	// Neighbor lists are ascending, so visiting sources in order yields
	// lexicographic order without a sort.
	for u := 1; u <= n; u++ {
		for _, v := range g.Neighbors(u) {
			l.Src = append(l.Src, int32(u))
			l.Dst = append(l.Dst, int32(v))
			if weighted {
				l.W = append(l.W, g.Weight(u, v))
			}
		}
	}
	l.index()
	return l
}

// NewSortedEdgeListFromArcs wraps pre-built parallel arc columns. The
// columns must already be sorted by (src, dst).
func NewSortedEdgeListFromArcs(n int, directed bool, src, dst []int32, w []float64) (*SortedEdgeList, error) {
	if len(src) != len(dst) || (w != nil && len(w) != len(src)) {
		return nil, fmt.Errorf("column length mismatch: src=%d dst=%d w=%d", len(src), len(dst), len(w))
	}
	for i := range src {
		if src[i] < 1 || int(src[i]) > n || dst[i] < 1 || int(dst[i]) > n {
			return nil, fmt.Errorf("arc %d (%d,%d): %w", i, src[i], dst[i], ErrInvalidVertex)
		}
		if i > 0 && (src[i] < src[i-1] || (src[i] == src[i-1] && dst[i] <= dst[i-1])) {
			return nil, fmt.Errorf("arc %d: %w", i, ErrUnsortedEdges)
		}
	}

	l := &SortedEdgeList{N: n, Directed: directed, Src: src, Dst: dst, W: w}
	l.index()
	return l, nil
}

func (l *SortedEdgeList) index() {
	l.offsets = make([]int, l.N+2)
	for v := 1; v <= l.N+1; v++ {
		l.offsets[v] = sort.Search(len(l.Src), func(i int) bool { return int(l.Src[i]) >= v })
	}
}

// Len returns the number of arcs.
func (l *SortedEdgeList) Len() int { return len(l.Src) }

// Weighted reports whether the list carries a weight column.
func (l *SortedEdgeList) Weighted() bool { return l.W != nil }

// Weight returns the weight of arc i (1 when unweighted).
func (l *SortedEdgeList) Weight(i int) float64 {
	if l.W == nil {
		return 1
	}
	return l.W[i]
}

// Run returns the half-open index range of arcs leaving v.
func (l *SortedEdgeList) Run(v int) (start, end int) {
	if v < 1 || v > l.N {
		return 0, 0
	}
	return l.offsets[v], l.offsets[v+1]
}

// Graph rebuilds an adjacency graph from the arc list.
func (l *SortedEdgeList) Graph() (*Adjacency, error) {
	kind := Undirected
	if l.Directed {
		kind = Directed
	}

	g, err := New(l.N, kind)
	if err != nil {
		return nil, err
	}
	for i := range l.Src {
		u, v := int(l.Src[i]), int(l.Dst[i])
		if !l.Directed && v < u {
			continue
		}
		if l.W != nil {
			err = g.AddWeightedEdge(u, v, l.W[i])
		} else {
			err = g.AddEdge(u, v)
		}
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}
