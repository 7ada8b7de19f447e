package algorithms

import (
	"errors"
	"math"
	"testing"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

func sumScores(scores []float64) float64 {
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum
}

func TestPageRank_Triangle(t *testing.T) {
	result, err := PageRank(triangleGraph(t), DefaultPageRankOptions())
	if err != nil {
		t.Fatalf("PageRank failed: %v", err)
	}

	if !result.Converged {
		t.Errorf("did not converge after %d iterations", result.Iterations)
	}
	for v, s := range result.Scores {
		if math.Abs(s-1.0/3) > 1e-9 {
			t.Errorf("score(%d) = %v, want 1/3", v+1, s)
		}
	}
}

func TestPageRank_Chain(t *testing.T) {
	g := newGraph(t, 3, graph.Directed, [2]int{1, 2}, [2]int{2, 3})

	result, err := PageRank(g, DefaultPageRankOptions())
	if err != nil {
		t.Fatalf("PageRank failed: %v", err)
	}

	a, b, c := result.GetNodeRank(1), result.GetNodeRank(2), result.GetNodeRank(3)
	if !(c > b && b > a) {
		t.Errorf("scores = %v, %v, %v; want increasing along the chain", a, b, c)
	}
	if math.Abs(sumScores(result.Scores)-1) > 1e-9 {
		t.Errorf("scores sum to %v, want 1", sumScores(result.Scores))
	}
}

func TestPageRank_TwoCycle(t *testing.T) {
	g := newGraph(t, 2, graph.Directed, [2]int{1, 2}, [2]int{2, 1})

	result, err := PageRank(g, DefaultPageRankOptions())
	if err != nil {
		t.Fatalf("PageRank failed: %v", err)
	}
	if math.Abs(result.Scores[0]-result.Scores[1]) > 1e-12 {
		t.Errorf("scores = %v, want equal", result.Scores)
	}
}

func TestPageRank_Star(t *testing.T) {
	g := newGraph(t, 5, graph.Undirected, [2]int{1, 2}, [2]int{1, 3}, [2]int{1, 4}, [2]int{1, 5})

	opts := DefaultPageRankOptions()
	opts.TopN = 2
	result, err := PageRank(g, opts)
	if err != nil {
		t.Fatalf("PageRank failed: %v", err)
	}

	if len(result.TopNodes) != 2 {
		t.Fatalf("TopNodes = %v, want 2 entries", result.TopNodes)
	}
	if result.TopNodes[0].Vertex != 1 {
		t.Errorf("top vertex = %d, want the hub", result.TopNodes[0].Vertex)
	}
	// Leaves tie, so the smallest leaf ranks next
	if result.TopNodes[1].Vertex != 2 {
		t.Errorf("second vertex = %d, want 2", result.TopNodes[1].Vertex)
	}
	if got := result.GetTopNodesByPageRank(1); len(got) != 1 || got[0].Vertex != 1 {
		t.Errorf("GetTopNodesByPageRank(1) = %v", got)
	}
	if got := result.GetTopNodesByPageRank(10); len(got) != 2 {
		t.Errorf("GetTopNodesByPageRank(10) = %v, want all reported nodes", got)
	}
}

func TestPageRank_Weighted(t *testing.T) {
	g := newGraph(t, 3, graph.Directed)
	for _, arc := range []struct {
		u, v int
		w    float64
	}{{1, 2, 3}, {1, 3, 1}, {2, 1, 1}, {3, 1, 1}} {
		if err := g.AddWeightedEdge(arc.u, arc.v, arc.w); err != nil {
			t.Fatal(err)
		}
	}

	plain, err := PageRank(g, DefaultPageRankOptions())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(plain.GetNodeRank(2)-plain.GetNodeRank(3)) > 1e-12 {
		t.Errorf("unweighted scores of 2 and 3 differ: %v", plain.Scores)
	}

	opts := DefaultPageRankOptions()
	opts.Weighted = true
	weighted, err := PageRank(g, opts)
	if err != nil {
		t.Fatal(err)
	}
	if weighted.GetNodeRank(2) <= weighted.GetNodeRank(3) {
		t.Errorf("heavier arc should raise vertex 2: %v", weighted.Scores)
	}
}

func TestPageRank_Dangling(t *testing.T) {
	g := newGraph(t, 4, graph.Directed, [2]int{1, 2}, [2]int{1, 3})

	result, err := PageRank(g, DefaultPageRankOptions())
	if err != nil {
		t.Fatal(err)
	}
	for v, s := range result.Scores {
		if s < 0 {
			t.Errorf("score(%d) = %v is negative", v+1, s)
		}
	}
	if math.Abs(sumScores(result.Scores)-1) > 1e-9 {
		t.Errorf("scores sum to %v, want 1", sumScores(result.Scores))
	}
	if result.GetNodeRank(4) != result.GetNodeRank(1) {
		t.Errorf("vertices without in-arcs should tie: %v", result.Scores)
	}
}

func TestPageRank_IterationCap(t *testing.T) {
	opts := DefaultPageRankOptions()
	opts.MaxIterations = 1

	result, err := PageRank(triangleGraph(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.Iterations != 1 || result.Converged {
		t.Errorf("Iterations = %d, Converged = %v; want 1, false", result.Iterations, result.Converged)
	}
}

func TestPageRank_EmptyGraph(t *testing.T) {
	result, err := PageRank(newGraph(t, 0, graph.Undirected), DefaultPageRankOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Scores) != 0 || !result.Converged {
		t.Errorf("empty graph result = %+v", result)
	}
	if result.GetNodeRank(1) != 0 {
		t.Error("GetNodeRank out of range should be 0")
	}
}

func TestPageRank_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		edit func(*PageRankOptions)
		want error
	}{
		{"zero damping", func(o *PageRankOptions) { o.DampingFactor = 0 }, ErrInvalidDamping},
		{"damping one", func(o *PageRankOptions) { o.DampingFactor = 1 }, ErrInvalidDamping},
		{"NaN damping", func(o *PageRankOptions) { o.DampingFactor = math.NaN() }, ErrInvalidDamping},
		{"zero tolerance", func(o *PageRankOptions) { o.Tolerance = 0 }, ErrInvalidTolerance},
		{"negative iterations", func(o *PageRankOptions) { o.MaxIterations = -1 }, ErrInvalidIterations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultPageRankOptions()
			tt.edit(&opts)
			_, err := PageRank(triangleGraph(t), opts)
			if !errors.Is(err, tt.want) || !IsPrecondition(err) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFindTopNodes(t *testing.T) {
	scores := []float64{0.1, 0.4, 0.2, 0.4, 0.05}

	got := findTopNodes(scores, 3)
	want := []RankedNode{{Vertex: 2, Score: 0.4}, {Vertex: 4, Score: 0.4}, {Vertex: 3, Score: 0.2}}
	if len(got) != len(want) {
		t.Fatalf("findTopNodes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("findTopNodes[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if findTopNodes(scores, 0) != nil {
		t.Error("findTopNodes(0) should be nil")
	}
}
