// Package generate builds synthetic and reference graphs for tests,
// benchmarks and demos.
package generate

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

// ErrInvalidParameter is returned for non-positive sizes or probabilities
// outside [0, 1].
var ErrInvalidParameter = errors.New("invalid generator parameter")

// Complete returns the complete undirected graph on n vertices.
func Complete(n int) (*graph.Adjacency, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrInvalidParameter, n)
	}
	g, err := graph.New(n, graph.Undirected)
	if err != nil {
		return nil, err
	}
	addClique(g, 1, n)
	return g, nil
}

// CliqueChain returns blocks cliques of size vertices each, where the last
// vertex of every clique is joined to the first vertex of the next. Block b
// (0-based) holds vertices b*size+1 .. (b+1)*size.
func CliqueChain(blocks, size int) (*graph.Adjacency, error) {
	if blocks < 1 || size < 1 {
		return nil, fmt.Errorf("%w: blocks=%d size=%d", ErrInvalidParameter, blocks, size)
	}
	g, err := graph.New(blocks*size, graph.Undirected)
	if err != nil {
		return nil, err
	}
	for b := 0; b < blocks; b++ {
		addClique(g, b*size+1, size)
		if b > 0 {
			_ = g.AddEdge(b*size, b*size+1)
		}
	}
	return g, nil
}

// StochasticBlock draws a planted-partition graph: blocks groups of size
// vertices, with each pair inside a group joined with probability pIn and
// each pair across groups with probability pOut. Block membership is the
// same as in CliqueChain.
func StochasticBlock(blocks, size int, pIn, pOut float64, rng *rand.Rand) (*graph.Adjacency, error) {
	if blocks < 1 || size < 1 {
		return nil, fmt.Errorf("%w: blocks=%d size=%d", ErrInvalidParameter, blocks, size)
	}
	if !validProbability(pIn) || !validProbability(pOut) {
		return nil, fmt.Errorf("%w: pIn=%g pOut=%g", ErrInvalidParameter, pIn, pOut)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	n := blocks * size
	g, err := graph.New(n, graph.Undirected)
	if err != nil {
		return nil, err
	}
	for u := 1; u <= n; u++ {
		for v := u + 1; v <= n; v++ {
			p := pOut
			if Block(u, size) == Block(v, size) {
				p = pIn
			}
			if rng.Float64() < p {
				_ = g.AddEdge(u, v)
			}
		}
	}
	return g, nil
}

// Block returns the 0-based block of vertex v in CliqueChain and
// StochasticBlock graphs built with the given block size.
func Block(v, size int) int {
	return (v - 1) / size
}

// PlantedLabels returns the block of every vertex as a 1-based label slice,
// labels[v-1] for vertex v.
func PlantedLabels(blocks, size int) []int {
	labels := make([]int, blocks*size)
	for i := range labels {
		labels[i] = Block(i+1, size) + 1
	}
	return labels
}

func addClique(g *graph.Adjacency, first, size int) {
	for u := first; u < first+size; u++ {
		for v := u + 1; v < first+size; v++ {
			_ = g.AddEdge(u, v)
		}
	}
}

func validProbability(p float64) bool {
	return p >= 0 && p <= 1
}
