package algorithms

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

func TestConnectedComponents(t *testing.T) {
	g := newGraph(t, 7, graph.Undirected,
		[2]int{1, 2}, [2]int{2, 3},
		[2]int{4, 5},
		[2]int{6, 7}, [2]int{5, 6},
	)

	result := ConnectedComponents(g)
	assertGroups(t, result, [][]int{{1, 2, 3}, {4, 5, 6, 7}})
	if result.Communities[1].ID != 2 {
		t.Errorf("second component id = %d, want 2", result.Communities[1].ID)
	}
}

func TestConnectedComponents_DirectedIsWeak(t *testing.T) {
	g := newGraph(t, 4, graph.Directed, [2]int{2, 1}, [2]int{3, 2})

	result := ConnectedComponents(g)
	assertGroups(t, result, [][]int{{1, 2, 3}, {4}})
}

func TestLabelPropagation_TwoCliquesAsync(t *testing.T) {
	for k := 3; k <= 8; k++ {
		g := twoCliques(t, k)
		for seed := int64(1); seed <= 20; seed++ {
			result, err := LabelPropagation(g, LabelPropagationOptions{Seed: seed})
			if err != nil {
				t.Fatalf("k=%d seed=%d: LabelPropagation failed: %v", k, seed, err)
			}
			if !result.Converged {
				t.Errorf("k=%d seed=%d: did not converge", k, seed)
			}
			if result.NumCommunities() != 2 || result.Communities[0].Size != k {
				t.Errorf("k=%d seed=%d: communities = %v", k, seed, result.Partition.Groups())
			}
		}
	}
}

func TestLabelPropagation_TwoCliquesSync(t *testing.T) {
	for k := 3; k <= 8; k++ {
		g := twoCliques(t, k)
		for seed := int64(1); seed <= 50; seed++ {
			result, err := LabelPropagation(g, LabelPropagationOptions{Synchronous: true, Seed: seed})
			if err != nil {
				t.Fatalf("k=%d seed=%d: LabelPropagation failed: %v", k, seed, err)
			}
			if !result.Converged {
				t.Errorf("k=%d seed=%d: did not converge after %d sweeps", k, seed, result.Iterations)
			}
			if result.NumCommunities() != 2 || result.Communities[0].Size != k {
				t.Errorf("k=%d seed=%d: communities = %v", k, seed, result.Partition.Groups())
			}
		}
	}
}

func TestLabelPropagation_CompleteGraph(t *testing.T) {
	for _, sync := range []bool{false, true} {
		for n := 3; n <= 10; n++ {
			g := newGraph(t, n, graph.Undirected, cliqueEdges(1, n)...)
			for seed := int64(1); seed <= 50; seed++ {
				result, err := LabelPropagation(g, LabelPropagationOptions{Synchronous: sync, Seed: seed})
				if err != nil {
					t.Fatalf("sync=%v n=%d seed=%d: LabelPropagation failed: %v", sync, n, seed, err)
				}
				if !result.Converged || result.NumCommunities() != 1 {
					t.Errorf("sync=%v n=%d seed=%d: converged=%v after %d sweeps, communities = %v",
						sync, n, seed, result.Converged, result.Iterations, result.Partition.Groups())
				}
			}
		}
	}
}

func TestLabelPropagation_SyncSettlesInTwoSweeps(t *testing.T) {
	// Every vertex of a clique sees the same tally, so the first sweep
	// agrees on one label and the second confirms it
	result, err := LabelPropagation(twoCliques(t, 4), LabelPropagationOptions{Synchronous: true, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if result.Iterations != 2 || !result.Converged {
		t.Errorf("Iterations = %d, Converged = %v; want 2, true", result.Iterations, result.Converged)
	}
}

func TestLabelPropagation_MatchesBulkOnTwoCliques(t *testing.T) {
	for k := 3; k <= 8; k++ {
		g := twoCliques(t, k)
		bulk, err := BulkLabelPropagation(g, DefaultBulkLabelPropagationOptions())
		if err != nil {
			t.Fatalf("k=%d: BulkLabelPropagation failed: %v", k, err)
		}
		if !bulk.Converged || bulk.NumCommunities() != 2 {
			t.Fatalf("k=%d: bulk communities = %v", k, bulk.Partition.Groups())
		}

		for _, sync := range []bool{false, true} {
			for seed := int64(1); seed <= 20; seed++ {
				ref, err := LabelPropagation(g, LabelPropagationOptions{Synchronous: sync, Seed: seed})
				if err != nil {
					t.Fatalf("k=%d sync=%v seed=%d: LabelPropagation failed: %v", k, sync, seed, err)
				}
				if !ref.Partition.SameGrouping(bulk.Partition) {
					t.Errorf("k=%d sync=%v seed=%d: reference %v, bulk %v",
						k, sync, seed, ref.Partition.Groups(), bulk.Partition.Groups())
				}
			}
		}
	}
}

func TestLabelPropagation_Reproducible(t *testing.T) {
	g := karateGraph(t)

	a, err := LabelPropagation(g, LabelPropagationOptions{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	b, err := LabelPropagation(g, LabelPropagationOptions{Rand: rand.New(rand.NewSource(42))})
	if err != nil {
		t.Fatal(err)
	}

	if !a.Partition.Equal(b.Partition) {
		t.Errorf("same seed produced different partitions: %v vs %v", a.Partition.Labels(), b.Partition.Labels())
	}
	if a.Iterations != b.Iterations {
		t.Errorf("same seed produced %d and %d sweeps", a.Iterations, b.Iterations)
	}
}

func TestLabelPropagation_IsolatedVertices(t *testing.T) {
	g := newGraph(t, 5, graph.Undirected, cliqueEdges(1, 3)...)

	result, err := LabelPropagation(g, DefaultLabelPropagationOptions())
	if err != nil {
		t.Fatal(err)
	}
	assertGroups(t, result, [][]int{{1, 2, 3}, {4}, {5}})
}

func TestLabelPropagation_EdgelessGraph(t *testing.T) {
	result, err := LabelPropagation(newGraph(t, 3, graph.Undirected), LabelPropagationOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.NumCommunities() != 3 || !result.Converged || result.Iterations != 1 {
		t.Errorf("edgeless graph: %d communities, converged=%v, iterations=%d",
			result.NumCommunities(), result.Converged, result.Iterations)
	}
	if result.Modularity != 0 {
		t.Errorf("Modularity = %v, want 0 on an edgeless graph", result.Modularity)
	}
}

func TestLabelPropagation_IterationCap(t *testing.T) {
	result, err := LabelPropagation(karateGraph(t), LabelPropagationOptions{MaxIterations: 1, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if result.Iterations != 1 || result.Converged {
		t.Errorf("Iterations = %d, Converged = %v; want 1, false", result.Iterations, result.Converged)
	}
	if err := result.Partition.Complete(); err != nil {
		t.Errorf("partition incomplete: %v", err)
	}
}

func TestLabelPropagation_InvalidOptions(t *testing.T) {
	_, err := LabelPropagation(triangleGraph(t), LabelPropagationOptions{MaxIterations: -1})
	if !errors.Is(err, ErrInvalidIterations) {
		t.Errorf("error = %v, want ErrInvalidIterations", err)
	}
}
