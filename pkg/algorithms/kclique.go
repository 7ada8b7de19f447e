package algorithms

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

// KClique finds k=3 clique percolation communities: triangles sharing an
// edge belong to the same community, and each community is the vertex union
// of one connected component of the triangle overlap graph.
//
// Communities may overlap. Groups in the result list every member, while
// the partition assigns an overlapping vertex the smallest community id
// that contains it. Vertices in no triangle stay Unassigned.
func KClique(g graph.Graph, opts KCliqueOptions) (*CommunityDetectionResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	triangles := Triangles(g)
	p := NewPartition(g.Order())
	if len(triangles) == 0 {
		result := newCommunityResult(g, p, [][]int{})
		result.Converged = true
		return result, nil
	}

	// Index triangles by their edges, then join every pair on a shared edge
	byEdge := make(map[[2]int][]int64)
	overlap := simple.NewUndirectedGraph()
	for i, t := range triangles {
		id := int64(i)
		overlap.AddNode(simple.Node(id))
		for _, e := range [][2]int{{t[0], t[1]}, {t[0], t[2]}, {t[1], t[2]}} {
			for _, other := range byEdge[e] {
				overlap.SetEdge(simple.Edge{F: simple.Node(other), T: simple.Node(id)})
			}
			byEdge[e] = append(byEdge[e], id)
		}
	}

	components := topo.ConnectedComponents(overlap)
	groups := make([][]int, 0, len(components))
	for _, component := range components {
		members := make(map[int]struct{})
		for _, node := range component {
			for _, v := range triangles[node.ID()] {
				members[v] = struct{}{}
			}
		}
		group := make([]int, 0, len(members))
		for v := range members {
			group = append(group, v)
		}
		sort.Ints(group)
		groups = append(groups, group)
	}
	sortGroups(groups)

	// Walk ids from high to low so the smallest id wins on overlap
	for i := len(groups) - 1; i >= 0; i-- {
		for _, v := range groups[i] {
			p.Assign(v, i+1)
		}
	}

	result := newCommunityResult(g, p, groups)
	result.Iterations = 1
	result.Converged = true
	return result, nil
}
