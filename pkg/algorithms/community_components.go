package algorithms

import "github.com/RandyRDavila/graphcommunities/pkg/graph"

// ConnectedComponents partitions g into the connected components of its
// undirected view, numbered by smallest member. Isolated vertices form
// singleton components.
func ConnectedComponents(g graph.Graph) *CommunityDetectionResult {
	u := graph.Symmetric(g)
	n := u.Order()
	p := NewPartition(n)

	queue := make([]int, 0, n)
	id := 0
	for start := 1; start <= n; start++ {
		if p.labels[start-1] != Unassigned {
			continue
		}

		// BFS from the smallest unvisited vertex
		id++
		p.labels[start-1] = id
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range u.Neighbors(v) {
				if p.labels[w-1] == Unassigned {
					p.labels[w-1] = id
					queue = append(queue, w)
				}
			}
		}
	}

	result := newCommunityResult(g, p, nil)
	result.Iterations = 1
	result.Converged = true
	return result
}
