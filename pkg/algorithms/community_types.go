package algorithms

import "github.com/RandyRDavila/graphcommunities/pkg/graph"

// Community represents a detected community
type Community struct {
	ID      int
	Nodes   []int
	Size    int
	Density float64 // Edge density within community
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Partition   *Partition
	Communities []*Community
	Modularity  float64 // Zero when undefined (edgeless graph or incomplete partition)
	Iterations  int     // Sweeps for label propagation, rounds for Louvain
	Converged   bool
}

// NumCommunities returns the number of communities found
func (r *CommunityDetectionResult) NumCommunities() int {
	return len(r.Communities)
}

// newCommunityResult assembles the community list for p, computing edge
// densities and modularity where defined. Explicit groups (possibly
// overlapping) are numbered 1..k in order; otherwise groups come from p.
func newCommunityResult(g graph.Graph, p *Partition, groups [][]int) *CommunityDetectionResult {
	explicit := groups != nil
	if !explicit {
		groups = p.Groups()
	}

	communities := make([]*Community, 0, len(groups))
	for i, members := range groups {
		id := i + 1
		if !explicit {
			id, _ = p.Community(members[0])
		}
		communities = append(communities, &Community{
			ID:      id,
			Nodes:   members,
			Size:    len(members),
			Density: density(g, members),
		})
	}

	result := &CommunityDetectionResult{
		Partition:   p,
		Communities: communities,
	}
	if q, err := Modularity(g, p); err == nil {
		result.Modularity = q
	}
	return result
}

// density is the fraction of member pairs joined by an edge.
func density(g graph.Graph, members []int) float64 {
	k := len(members)
	if k < 2 {
		return 0
	}

	inside := make(map[int]struct{}, k)
	for _, v := range members {
		inside[v] = struct{}{}
	}

	edges := 0
	for _, v := range members {
		for _, w := range g.Neighbors(v) {
			if _, ok := inside[w]; ok {
				edges++
			}
		}
	}

	// Undirected edges are seen from both ends, which matches counting
	// ordered pairs below.
	return float64(edges) / float64(k*(k-1))
}
