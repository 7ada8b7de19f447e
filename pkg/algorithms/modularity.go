package algorithms

import "github.com/RandyRDavila/graphcommunities/pkg/graph"

// Evaluator scores a partition. Louvain calls through this interface so an
// incremental implementation can replace full recomputation.
type Evaluator interface {
	Modularity(g graph.Graph, p *Partition) (float64, error)
}

// NewmanGirvan is the default Evaluator. It recomputes modularity from
// scratch on every call.
type NewmanGirvan struct{}

// Modularity implements Evaluator.
func (NewmanGirvan) Modularity(g graph.Graph, p *Partition) (float64, error) {
	return Modularity(g, p)
}

// Modularity returns the Newman–Girvan modularity of p on g:
//
//	Q = (1/2m) Σ_ij [A_ij − k_i·k_j/2m] δ(c_i, c_j)
//
// For directed graphs the Leicht–Newman form
// Q = (1/m) Σ_ij [A_ij − k_i^out·k_j^in/m] δ(c_i, c_j) is used.
// It fails on edgeless graphs, where Q is undefined, and on partitions
// that leave any vertex unassigned.
func Modularity(g graph.Graph, p *Partition) (float64, error) {
	if p.Len() != g.Order() {
		return 0, precondition("Modularity", ErrPartitionSize)
	}
	if g.Size() == 0 {
		return 0, precondition("Modularity", ErrEmptyGraph)
	}
	if err := p.Complete(); err != nil {
		return 0, err
	}
	return modularity(g, p.labels), nil
}

// modularity assumes a complete labeling of a graph with at least one edge.
func modularity(g graph.Graph, labels []int) float64 {
	n := g.Order()
	dense := make([]int, n)
	k := denseLabels(labels, dense)

	inner := make([]float64, k)
	degOut := make([]float64, k)
	degIn := degOut
	if g.Directed() {
		degIn = make([]float64, k)
	}

	for u := 1; u <= n; u++ {
		cu := dense[u-1]
		for _, v := range g.Neighbors(u) {
			if dense[v-1] == cu {
				inner[cu]++
			}
		}
		degOut[cu] += float64(g.Degree(u))
		if g.Directed() {
			degIn[cu] += float64(len(g.InNeighbors(u)))
		}
	}

	m := float64(g.Size())
	q := 0.0
	if g.Directed() {
		for c := 0; c < k; c++ {
			q += inner[c]/m - degOut[c]*degIn[c]/(m*m)
		}
		return q
	}

	m2 := 2 * m
	for c := 0; c < k; c++ {
		// inner counts each undirected edge from both endpoints
		q += inner[c]/m2 - (degOut[c]/m2)*(degOut[c]/m2)
	}
	return q
}

// denseLabels maps arbitrary community ids to 0..k-1 in order of first
// appearance, writing the result into dst, and returns k.
func denseLabels(labels, dst []int) int {
	n := len(labels)
	maxLabel, negative := 0, false
	for _, c := range labels {
		if c > maxLabel {
			maxLabel = c
		}
		if c < 0 {
			negative = true
		}
	}

	if !negative && maxLabel <= 4*n {
		ids := make([]int, maxLabel+1)
		for i := range ids {
			ids[i] = -1
		}
		k := 0
		for i, c := range labels {
			if ids[c] < 0 {
				ids[c] = k
				k++
			}
			dst[i] = ids[c]
		}
		return k
	}

	ids := make(map[int]int)
	for i, c := range labels {
		id, ok := ids[c]
		if !ok {
			id = len(ids)
			ids[c] = id
		}
		dst[i] = id
	}
	return len(ids)
}
