package algorithms

import (
	"container/heap"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

// PageRankResult contains PageRank scores for all nodes
type PageRankResult struct {
	Scores     []float64    // Scores[v-1] is the score of vertex v; sums to 1
	Iterations int          // Number of iterations performed
	Converged  bool         // Whether algorithm converged
	TopNodes   []RankedNode // Top N nodes by score
}

// RankedNode represents a vertex with its rank
type RankedNode struct {
	Vertex int
	Score  float64
}

// PageRank computes PageRank scores by power iteration.
//
// Every score starts at 1/n. Each iteration sets
// score'[i] = (1−d) + d·Σ_{j→i} w_ji·score[j]/out[j] from the previous
// scores, where out[j] is the total out-weight of j (its out-degree when
// unweighted). Undirected edges act as arcs in both directions and
// dangling vertices contribute nothing. Iteration stops when no score moves
// by tolerance or more, or at the iteration cap, and the vector is then
// normalized to sum to 1.
func PageRank(g graph.Graph, opts PageRankOptions) (*PageRankResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := g.Order()
	if n == 0 {
		return &PageRankResult{
			Scores:    []float64{},
			Converged: true,
		}, nil
	}

	el := graph.NewSortedEdgeList(g, opts.Weighted)

	// Out-weights are resolved once so the loop is identical for every
	// graph variant
	outWeight := make([]float64, n+1)
	for v := 1; v <= n; v++ {
		start, end := el.Run(v)
		for i := start; i < end; i++ {
			outWeight[v] += el.Weight(i)
		}
	}

	scores := make([]float64, n+1)
	initialScore := 1.0 / float64(n)
	for v := 1; v <= n; v++ {
		scores[v] = initialScore
	}
	newScores := make([]float64, n+1)

	d := opts.DampingFactor
	limit := maxIterations(opts.MaxIterations)
	converged := false
	iterations := 0

	for iterations < limit {
		iterations++

		for v := 1; v <= n; v++ {
			newScores[v] = 1 - d
		}
		for j := 1; j <= n; j++ {
			if outWeight[j] == 0 {
				continue
			}
			share := d * scores[j] / outWeight[j]
			start, end := el.Run(j)
			for i := start; i < end; i++ {
				newScores[el.Dst[i]] += share * el.Weight(i)
			}
		}

		maxDiff := floats.Distance(newScores[1:], scores[1:], math.Inf(1))
		scores, newScores = newScores, scores
		if maxDiff < opts.Tolerance {
			converged = true
			break
		}
	}

	result := scores[1:]
	if sum := floats.Sum(result); sum > 0 {
		floats.Scale(1/sum, result)
	}

	return &PageRankResult{
		Scores:     result,
		Iterations: iterations,
		Converged:  converged,
		TopNodes:   findTopNodes(result, opts.TopN),
	}, nil
}

// rankedNodeHeap implements a min-heap for RankedNode by score.
// Keeping at most N elements with the minimum at the root finds the top N
// in O(n log N). Among equal scores the larger vertex sits closer to the
// root so it is evicted first.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int           { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool { return rankedLess(h[i], h[j]) }
func (h rankedNodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// findTopNodes returns the n highest scores in descending order, breaking
// ties by the smaller vertex.
func findTopNodes(scores []float64, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for i, score := range scores {
		rn := RankedNode{Vertex: i + 1, Score: score}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if rankedLess(h[0], rn) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	// Popping yields ascending order
	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}
	return result
}

// rankedLess orders by score, then puts the larger vertex first.
func rankedLess(a, b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Vertex > b.Vertex
}

// GetTopNodesByPageRank returns top N nodes by PageRank score
func (pr *PageRankResult) GetTopNodesByPageRank(n int) []RankedNode {
	if n > len(pr.TopNodes) {
		return pr.TopNodes
	}
	return pr.TopNodes[:n]
}

// GetNodeRank returns the PageRank score for a specific vertex, or 0 when
// the vertex is out of range.
func (pr *PageRankResult) GetNodeRank(v int) float64 {
	if v < 1 || v > len(pr.Scores) {
		return 0
	}
	return pr.Scores[v-1]
}
