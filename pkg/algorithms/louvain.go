package algorithms

import "github.com/RandyRDavila/graphcommunities/pkg/graph"

// Louvain detects communities by alternating a local move phase with graph
// aggregation until a round improves modularity by less than the threshold.
//
// Each local phase starts from singleton communities on the working graph
// and sweeps the vertices once in ascending order. A vertex tries every
// distinct neighboring community, recomputing global modularity through the
// evaluator for each candidate, and keeps the first strictly best move.
// Aggregation collapses each community into one vertex, joining two
// aggregate vertices when any member edge crosses between them. Edge
// multiplicities are not carried over. Round-local remaps are kept and
// composed to label the original vertices.
//
// Directed graphs are optimized on their undirected view. A round that
// lowers the modularity of the composed partition on the original graph is
// discarded, so the result is never worse than singletons.
func Louvain(g graph.Graph, opts LouvainOptions) (*CommunityDetectionResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	eval := opts.Evaluator
	if eval == nil {
		eval = NewmanGirvan{}
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultLouvainThreshold
	}

	n := g.Order()
	if n <= 1 {
		result := newCommunityResult(g, Singletons(n), nil)
		result.Converged = true
		return result, nil
	}

	base := graph.Symmetric(g)
	if base.Size() == 0 {
		return nil, precondition("Louvain", ErrEmptyGraph)
	}

	assignment := Singletons(n)
	bestQ, err := eval.Modularity(base, assignment)
	if err != nil {
		return nil, err
	}

	work := base
	remaps := make([][]int, 0)
	rounds := 0

	for {
		rounds++

		local, err := louvainLocalPhase(work, eval)
		if err != nil {
			return nil, err
		}
		k := compact(local)
		remaps = append(remaps, local)

		composed := PartitionFromLabels(composeRemaps(n, remaps))
		q, err := eval.Modularity(base, composed)
		if err != nil {
			return nil, err
		}

		gain := q - bestQ
		if gain < 0 {
			break
		}
		assignment, bestQ = composed, q

		if gain < threshold || k == work.Order() || k == 1 {
			break
		}

		next := aggregate(work, local, k)
		if next.Size() == 0 {
			break
		}
		work = next
	}

	result := newCommunityResult(g, assignment, nil)
	result.Iterations = rounds
	result.Converged = true
	return result, nil
}

// louvainLocalPhase runs one sweep over w and returns the label of every
// vertex (labels are vertex ids of w, not yet compacted).
func louvainLocalPhase(w graph.Graph, eval Evaluator) ([]int, error) {
	nw := w.Order()
	p := Singletons(nw)
	labels := p.labels

	current, err := eval.Modularity(w, p)
	if err != nil {
		return nil, err
	}

	// tried[c] == v marks community c as already evaluated for vertex v
	tried := make([]int, nw+1)

	for v := 1; v <= nw; v++ {
		own := labels[v-1]
		best, bestQ := own, current
		tried[own] = v

		for _, u := range w.Neighbors(v) {
			c := labels[u-1]
			if tried[c] == v {
				continue
			}
			tried[c] = v

			labels[v-1] = c
			q, err := eval.Modularity(w, p)
			if err != nil {
				return nil, err
			}
			if q > bestQ {
				best, bestQ = c, q
			}
		}

		labels[v-1] = best
		current = bestQ
	}
	return labels, nil
}

// composeRemaps maps each original vertex through every round's remap in
// order.
func composeRemaps(n int, remaps [][]int) []int {
	labels := make([]int, n)
	for v := range labels {
		labels[v] = v + 1
	}
	for _, remap := range remaps {
		for v, c := range labels {
			labels[v] = remap[c-1]
		}
	}
	return labels
}

// aggregate builds the unweighted community graph of w under labels.
func aggregate(w graph.Graph, labels []int, k int) *graph.Adjacency {
	agg, _ := graph.New(k, graph.Undirected)
	for _, e := range w.Edges() {
		a, b := labels[e.U-1], labels[e.V-1]
		if a != b {
			_ = agg.AddEdge(a, b)
		}
	}
	return agg
}
