package algorithms

import (
	"math/rand"
	"sort"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
	"github.com/RandyRDavila/graphcommunities/pkg/pools"
)

// LabelPropagation performs label propagation for community detection.
//
// Every vertex starts with its own id as label. Each sweep visits the
// vertices in a random order and moves every vertex with neighbors to the
// most frequent neighboring label, choosing uniformly among tied labels.
// Asynchronous sweeps expose each update immediately; synchronous sweeps
// read only the labels from the start of the sweep. Propagation stops after
// a sweep without changes or at the iteration cap.
//
// Synchronous sweeps also count the vertex's own label, and every vertex
// resolves ties through one random ranking of labels drawn per sweep.
// Vertices that see the same tally then pick the same label, so a clique
// settles on a single label instead of two halves trading labels forever.
//
// Visitation order and tie-breaks draw from opts.Rand, or from a source
// seeded with opts.Seed, so a fixed seed reproduces the partition.
func LabelPropagation(g graph.Graph, opts LabelPropagationOptions) (*CommunityDetectionResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	u := graph.Symmetric(g)
	n := u.Order()

	labels := make([]int, n+1) // labels[v], index 0 unused
	for v := 1; v <= n; v++ {
		labels[v] = v
	}
	next := labels
	var rank []int // rank[label], redrawn every synchronous sweep
	if opts.Synchronous {
		next = make([]int, n+1)
		rank = make([]int, n+1)
	}

	counts := pools.GetCountBuffer(n + 1)
	defer pools.PutCountBuffer(counts)
	ties := pools.GetInts(pools.SmallInts)
	defer func() { pools.PutInts(ties) }()

	limit := maxIterations(opts.MaxIterations)
	iterations, converged := 0, false

	for iterations < limit {
		iterations++
		if opts.Synchronous {
			copy(next, labels)
			for i, r := range rng.Perm(n) {
				rank[i+1] = r
			}
		}

		changed := false
		for _, i := range rng.Perm(n) {
			v := i + 1
			neighbors := u.Neighbors(v)
			if len(neighbors) == 0 {
				continue
			}

			for _, w := range neighbors {
				counts.Add(labels[w], 1)
			}
			if opts.Synchronous {
				counts.Add(labels[v], 1)
			}
			ties = counts.Ties(ties[:0])
			counts.Reset()

			var label int
			if opts.Synchronous {
				label = topRanked(ties, rank)
			} else {
				// Ascending order keeps the draw reproducible for a fixed seed
				sort.Ints(ties)
				label = ties[0]
				if len(ties) > 1 {
					label = ties[rng.Intn(len(ties))]
				}
			}

			if label != labels[v] {
				next[v] = label
				changed = true
			}
		}

		if opts.Synchronous {
			labels, next = next, labels
		}
		if !changed {
			converged = true
			break
		}
	}

	p := PartitionFromLabels(labels[1:])
	compact(p.labels)

	result := newCommunityResult(g, p, nil)
	result.Iterations = iterations
	result.Converged = converged
	return result, nil
}

// topRanked returns the tied label with the highest rank.
func topRanked(ties, rank []int) int {
	best := ties[0]
	for _, label := range ties[1:] {
		if rank[label] > rank[best] {
			best = label
		}
	}
	return best
}
