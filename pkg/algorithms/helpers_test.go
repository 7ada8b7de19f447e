package algorithms

import (
	"reflect"
	"testing"

	"github.com/RandyRDavila/graphcommunities/pkg/generate"
	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

func newGraph(t testing.TB, n int, kind graph.Kind, edges ...[2]int) *graph.Adjacency {
	t.Helper()
	g, err := graph.New(n, kind)
	if err != nil {
		t.Fatalf("graph.New(%d) failed: %v", n, err)
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%d, %d) failed: %v", e[0], e[1], err)
		}
	}
	return g
}

// cliqueEdges joins every pair of first..first+k-1
func cliqueEdges(first, k int) [][2]int {
	edges := make([][2]int, 0, k*(k-1)/2)
	for u := first; u < first+k; u++ {
		for v := u + 1; v < first+k; v++ {
			edges = append(edges, [2]int{u, v})
		}
	}
	return edges
}

func triangleGraph(t testing.TB) *graph.Adjacency {
	return newGraph(t, 3, graph.Undirected, [2]int{1, 2}, [2]int{2, 3}, [2]int{1, 3})
}

// bridgedTriangles is 1-2-3 and 4-5-6 joined by (3,4)
func bridgedTriangles(t testing.TB) *graph.Adjacency {
	edges := append(cliqueEdges(1, 3), cliqueEdges(4, 3)...)
	edges = append(edges, [2]int{3, 4})
	return newGraph(t, 6, graph.Undirected, edges...)
}

// twoCliques is two disjoint k-cliques, 1..k and k+1..2k
func twoCliques(t testing.TB, k int) *graph.Adjacency {
	edges := append(cliqueEdges(1, k), cliqueEdges(k+1, k)...)
	return newGraph(t, 2*k, graph.Undirected, edges...)
}

func cliqueChain(t testing.TB, blocks, k int) *graph.Adjacency {
	t.Helper()
	g, err := generate.CliqueChain(blocks, k)
	if err != nil {
		t.Fatalf("CliqueChain(%d, %d) failed: %v", blocks, k, err)
	}
	return g
}

func karateGraph(t testing.TB) *graph.Adjacency {
	return generate.Karate()
}

func assertGroups(t *testing.T, result *CommunityDetectionResult, want [][]int) {
	t.Helper()
	got := make([][]int, 0, len(result.Communities))
	for _, c := range result.Communities {
		got = append(got, c.Nodes)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("communities = %v, want %v", got, want)
	}
}
