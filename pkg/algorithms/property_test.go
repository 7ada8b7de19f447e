package algorithms

import (
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

// randomGraph draws a G(n, p) graph from seed
func randomGraph(t *testing.T, n int, seed int64, kind graph.Kind) *graph.Adjacency {
	rng := rand.New(rand.NewSource(seed))
	g := newGraph(t, n, kind)
	for u := 1; u <= n; u++ {
		for v := 1; v <= n; v++ {
			if u == v || (kind == graph.Undirected && v < u) {
				continue
			}
			if rng.Float64() < 0.2 {
				if err := g.AddEdge(u, v); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	return g
}

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	return parameters
}

// TestCommunityInvariants checks properties that must hold for every graph
func TestCommunityInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	properties := gopter.NewProperties(propertyParameters())

	properties.Property("louvain never does worse than singletons", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomGraph(t, n, seed, graph.Undirected)
			if g.Size() == 0 {
				return true
			}
			result, err := Louvain(g, LouvainOptions{})
			if err != nil {
				return false
			}
			singleton, err := Modularity(g, Singletons(n))
			if err != nil {
				return false
			}
			return result.Modularity >= singleton-1e-12 && result.Partition.Complete() == nil
		},
		gen.IntRange(2, 30),
		gen.Int64(),
	))

	properties.Property("modularity stays within [-1/2, 1]", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomGraph(t, n, seed, graph.Undirected)
			if g.Size() == 0 {
				return true
			}
			result, err := LabelPropagation(g, LabelPropagationOptions{Seed: seed})
			if err != nil {
				return false
			}
			q := result.Modularity
			return q >= -0.5 && q <= 1
		},
		gen.IntRange(2, 30),
		gen.Int64(),
	))

	properties.Property("pagerank is a probability vector", prop.ForAll(
		func(n int, seed int64, directed bool) bool {
			kind := graph.Undirected
			if directed {
				kind = graph.Directed
			}
			result, err := PageRank(randomGraph(t, n, seed, kind), DefaultPageRankOptions())
			if err != nil || len(result.Scores) != n {
				return false
			}
			sum := 0.0
			for _, s := range result.Scores {
				if s < 0 {
					return false
				}
				sum += s
			}
			return math.Abs(sum-1) < 1e-9
		},
		gen.IntRange(1, 30),
		gen.Int64(),
		gen.Bool(),
	))

	properties.Property("bulk propagation labels are dense and repeatable", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomGraph(t, n, seed, graph.Undirected)
			a, err := BulkLabelPropagation(g, DefaultBulkLabelPropagationOptions())
			if err != nil {
				return false
			}
			b, err := BulkLabelPropagation(g, DefaultBulkLabelPropagationOptions())
			if err != nil || !a.Partition.Equal(b.Partition) {
				return false
			}
			k := a.NumCommunities()
			for _, c := range a.Partition.Labels() {
				if c < 1 || c > k {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 30),
		gen.Int64(),
	))

	properties.Property("k-clique members lie on triangles", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomGraph(t, n, seed, graph.Undirected)
			result, err := KClique(g, KCliqueOptions{})
			if err != nil {
				return false
			}
			onTriangle := make(map[int]bool)
			for _, tri := range Triangles(g) {
				for _, v := range tri {
					onTriangle[v] = true
				}
			}
			for _, c := range result.Communities {
				if c.Size < 3 {
					return false
				}
				for _, v := range c.Nodes {
					if !onTriangle[v] {
						return false
					}
				}
			}
			for v := 1; v <= n; v++ {
				_, err := result.Partition.Community(v)
				if (err == nil) != onTriangle[v] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 30),
		gen.Int64(),
	))

	properties.Property("asynchronous propagation splits two cliques", prop.ForAll(
		func(k int, seed int64) bool {
			g := twoCliques(t, k)
			result, err := LabelPropagation(g, LabelPropagationOptions{Seed: seed})
			if err != nil || !result.Converged || result.NumCommunities() != 2 {
				return false
			}
			return result.Communities[0].Size == k && result.Communities[1].Size == k
		},
		gen.IntRange(3, 8),
		gen.Int64(),
	))

	properties.Property("propagation merges a complete graph into one community", prop.ForAll(
		func(n int, seed int64, sync bool) bool {
			g := newGraph(t, n, graph.Undirected, cliqueEdges(1, n)...)
			result, err := LabelPropagation(g, LabelPropagationOptions{Seed: seed, Synchronous: sync})
			return err == nil && result.Converged && result.NumCommunities() == 1
		},
		gen.IntRange(2, 16),
		gen.Int64(),
		gen.Bool(),
	))

	properties.Property("synchronous propagation splits two cliques", prop.ForAll(
		func(k int, seed int64) bool {
			result, err := LabelPropagation(twoCliques(t, k), LabelPropagationOptions{Seed: seed, Synchronous: true})
			if err != nil || !result.Converged || result.NumCommunities() != 2 {
				return false
			}
			return result.Communities[0].Size == k && result.Communities[1].Size == k
		},
		gen.IntRange(2, 12),
		gen.Int64(),
	))

	properties.Property("groups cover every vertex of a complete partition", prop.ForAll(
		func(n int, seed int64) bool {
			g := randomGraph(t, n, seed, graph.Undirected)
			result, err := LabelPropagation(g, LabelPropagationOptions{Seed: seed, Synchronous: true})
			if err != nil {
				return false
			}
			seen := 0
			for _, c := range result.Communities {
				seen += c.Size
			}
			return seen == n
		},
		gen.IntRange(1, 30),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
