package algorithms

import (
	"github.com/RandyRDavila/graphcommunities/pkg/graph"
	"github.com/RandyRDavila/graphcommunities/pkg/pools"
)

// BulkLabelPropagation runs synchronous label propagation over the sorted
// edge list of g.
//
// Each vertex's arcs are one contiguous run of the list, so a sweep is a
// single linear scan. Neighbor labels are tallied in a pooled dense buffer
// (edge weights are summed instead when opts.Weighted is set) and the
// numerically largest label wins ties, which makes the result
// deterministic. Undirected graphs contribute both orientations of every
// edge; directed graphs contribute out-arcs only. Vertices with no arcs
// keep their label.
func BulkLabelPropagation(g graph.Graph, opts BulkLabelPropagationOptions) (*CommunityDetectionResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	el := graph.NewSortedEdgeList(g, opts.Weighted)
	result := bulkPropagate(el, maxIterations(opts.MaxIterations))

	community := newCommunityResult(g, result.partition, nil)
	community.Iterations = result.iterations
	community.Converged = result.converged
	return community, nil
}

// BulkLabelPropagationEdges runs the bulk engine on an already sorted arc
// list, such as one loaded from a binary edge file. The weight column is
// used when present and opts.Weighted is set.
func BulkLabelPropagationEdges(el *graph.SortedEdgeList, opts BulkLabelPropagationOptions) (*CommunityDetectionResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	g, err := el.Graph()
	if err != nil {
		return nil, err
	}
	if !opts.Weighted && el.Weighted() {
		el, err = graph.NewSortedEdgeListFromArcs(el.N, el.Directed, el.Src, el.Dst, nil)
		if err != nil {
			return nil, err
		}
	}
	result := bulkPropagate(el, maxIterations(opts.MaxIterations))

	community := newCommunityResult(g, result.partition, nil)
	community.Iterations = result.iterations
	community.Converged = result.converged
	return community, nil
}

type bulkResult struct {
	partition  *Partition
	iterations int
	converged  bool
}

func bulkPropagate(el *graph.SortedEdgeList, limit int) bulkResult {
	n := el.N

	labels := make([]int, n+1) // labels[v], index 0 unused
	for v := 1; v <= n; v++ {
		labels[v] = v
	}
	next := make([]int, n+1)

	counts := pools.GetCountBuffer(n + 1)
	defer pools.PutCountBuffer(counts)

	iterations, converged := 0, false
	for iterations < limit {
		iterations++
		copy(next, labels)

		changed := false
		for v := 1; v <= n; v++ {
			start, end := el.Run(v)
			if start == end {
				continue
			}

			for i := start; i < end; i++ {
				counts.Add(labels[el.Dst[i]], el.Weight(i))
			}
			label, _, _ := counts.Max()
			counts.Reset()

			if label != labels[v] {
				next[v] = label
				changed = true
			}
		}

		labels, next = next, labels
		if !changed {
			converged = true
			break
		}
	}

	p := PartitionFromLabels(labels[1:])
	compact(p.labels)
	return bulkResult{partition: p, iterations: iterations, converged: converged}
}
