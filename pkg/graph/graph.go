// Package graph provides the read-only graph contract consumed by the
// community detection and ranking engines, and a dense adjacency-list
// implementation of it.
//
// Vertices are the dense integers 1..n. Edges are unordered pairs for
// undirected graphs and ordered pairs for directed graphs, optionally
// carrying a positive weight. Self-loops and multi-edges are not modeled.
package graph

import (
	"math"
	"sort"
)

// Kind selects edge orientation.
type Kind int

const (
	// Undirected graphs store each edge once and report it from both endpoints
	Undirected Kind = iota
	// Directed graphs store arcs; Neighbors reports out-neighbors only
	Directed
)

// String returns the string representation of a graph kind
func (k Kind) String() string {
	switch k {
	case Undirected:
		return "undirected"
	case Directed:
		return "directed"
	default:
		return "unknown"
	}
}

// Graph is the contract every engine reads through. Implementations must
// not mutate state in read methods so a graph can be shared by concurrent
// readers. Returned slices belong to the graph and must not be modified.
type Graph interface {
	// Order returns the number of vertices n
	Order() int
	// Size returns the number of edges; an undirected edge counts once
	Size() int
	// Directed reports whether edges are ordered pairs
	Directed() bool
	// Weighted reports whether any edge carries an explicit weight
	Weighted() bool
	// Vertices returns 1..n in ascending order
	Vertices() []int
	// Neighbors returns the out-neighbors of v in ascending order
	Neighbors(v int) []int
	// InNeighbors returns the in-neighbors of v in ascending order
	InNeighbors(v int) []int
	// Edges returns every edge once (U < V for undirected graphs)
	Edges() []Edge
	// Degree returns the out-degree of v
	Degree(v int) int
	// HasEdge reports whether the edge (or arc) u→v exists
	HasEdge(u, v int) bool
	// Weight returns the weight of u→v, 1 for unweighted edges and 0 when absent
	Weight(u, v int) float64
}

// Edge is a single edge with its weight.
type Edge struct {
	U      int
	V      int
	Weight float64
}

type edgeKey struct {
	u, v int
}

// Adjacency is a dense adjacency-list graph over vertices 1..n.
// Neighbor lists are kept sorted so set intersections and scans are
// deterministic.
type Adjacency struct {
	kind    Kind
	out     [][]int // out[v] ascending; index 0 unused
	in      [][]int // directed graphs only
	weights map[edgeKey]float64
	size    int
}

// New creates a graph with n vertices and no edges.
func New(n int, kind Kind) (*Adjacency, error) {
	if n < 0 {
		return nil, ErrVertexCount
	}

	g := &Adjacency{
		kind: kind,
		out:  make([][]int, n+1),
	}
	if kind == Directed {
		g.in = make([][]int, n+1)
	}
	return g, nil
}

// AddEdge adds an unweighted edge. Adding an existing edge is a no-op.
func (g *Adjacency) AddEdge(u, v int) error {
	return g.addEdge("AddEdge", u, v, 0, false)
}

// AddWeightedEdge adds an edge with an explicit weight. Adding an existing
// edge replaces its weight.
func (g *Adjacency) AddWeightedEdge(u, v int, w float64) error {
	return g.addEdge("AddWeightedEdge", u, v, w, true)
}

func (g *Adjacency) addEdge(op string, u, v int, w float64, weighted bool) error {
	n := g.Order()
	if u < 1 || u > n || v < 1 || v > n {
		return edgeError(op, u, v, ErrInvalidVertex)
	}
	if u == v {
		return edgeError(op, u, v, ErrSelfLoop)
	}
	if weighted && (w <= 0 || math.IsNaN(w) || math.IsInf(w, 0)) {
		return edgeError(op, u, v, ErrInvalidWeight)
	}

	var inserted bool
	g.out[u], inserted = insertSorted(g.out[u], v)
	if g.kind == Directed {
		g.in[v], _ = insertSorted(g.in[v], u)
	} else {
		g.out[v], _ = insertSorted(g.out[v], u)
	}
	if inserted {
		g.size++
	}

	if weighted {
		if g.weights == nil {
			g.weights = make(map[edgeKey]float64)
		}
		g.weights[g.key(u, v)] = w
	}
	return nil
}

func (g *Adjacency) key(u, v int) edgeKey {
	if g.kind == Undirected && u > v {
		u, v = v, u
	}
	return edgeKey{u: u, v: v}
}

// insertSorted inserts x into the ascending slice s unless already present.
func insertSorted(s []int, x int) ([]int, bool) {
	i := sort.SearchInts(s, x)
	if i < len(s) && s[i] == x {
		return s, false
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = x
	return s, true
}

func (g *Adjacency) valid(v int) bool {
	return v >= 1 && v < len(g.out)
}

// Order returns the number of vertices.
func (g *Adjacency) Order() int { return len(g.out) - 1 }

// Size returns the number of edges.
func (g *Adjacency) Size() int { return g.size }

// Directed reports whether the graph is directed.
func (g *Adjacency) Directed() bool { return g.kind == Directed }

// Weighted reports whether any edge was added with an explicit weight.
func (g *Adjacency) Weighted() bool { return len(g.weights) > 0 }

// Kind returns the orientation of the graph.
func (g *Adjacency) Kind() Kind { return g.kind }

// Vertices returns 1..n.
func (g *Adjacency) Vertices() []int {
	vs := make([]int, g.Order())
	for i := range vs {
		vs[i] = i + 1
	}
	return vs
}

// Neighbors returns the out-neighbors of v.
func (g *Adjacency) Neighbors(v int) []int {
	if !g.valid(v) {
		return nil
	}
	return g.out[v]
}

// InNeighbors returns the in-neighbors of v.
func (g *Adjacency) InNeighbors(v int) []int {
	if !g.valid(v) {
		return nil
	}
	if g.kind == Directed {
		return g.in[v]
	}
	return g.out[v]
}

// Degree returns the out-degree of v.
func (g *Adjacency) Degree(v int) int {
	return len(g.Neighbors(v))
}

// HasEdge reports whether u→v exists.
func (g *Adjacency) HasEdge(u, v int) bool {
	ns := g.Neighbors(u)
	i := sort.SearchInts(ns, v)
	return i < len(ns) && ns[i] == v
}

// Weight returns the weight of u→v.
func (g *Adjacency) Weight(u, v int) float64 {
	if !g.HasEdge(u, v) {
		return 0
	}
	if w, ok := g.weights[g.key(u, v)]; ok {
		return w
	}
	return 1
}

// Edges returns every edge once, ordered by (U, V).
func (g *Adjacency) Edges() []Edge {
	edges := make([]Edge, 0, g.size)
	for u := 1; u < len(g.out); u++ {
		for _, v := range g.out[u] {
			if g.kind == Undirected && v < u {
				continue
			}
			edges = append(edges, Edge{U: u, V: v, Weight: g.Weight(u, v)})
		}
	}
	return edges
}

// Symmetric returns an undirected view of g. Undirected graphs are returned
// as-is; directed graphs are copied with every arc turned into an edge.
// Weights of antiparallel arcs are summed.
func Symmetric(g Graph) Graph {
	if !g.Directed() {
		return g
	}

	sym, _ := New(g.Order(), Undirected)
	for _, e := range g.Edges() {
		if g.Weighted() {
			w := e.Weight
			if sym.HasEdge(e.U, e.V) {
				w += sym.Weight(e.U, e.V)
			}
			_ = sym.AddWeightedEdge(e.U, e.V, w)
			continue
		}
		_ = sym.AddEdge(e.U, e.V)
	}
	return sym
}
