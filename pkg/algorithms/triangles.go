package algorithms

import (
	"sort"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

// Triangle is a 3-clique with vertices in ascending order.
type Triangle [3]int

// Triangles enumerates every triangle of the undirected view of g exactly
// once, ordered lexicographically.
func Triangles(g graph.Graph) []Triangle {
	u := graph.Symmetric(g)
	triangles := make([]Triangle, 0)

	for v := 1; v <= u.Order(); v++ {
		nv := u.Neighbors(v)
		for _, w := range nv {
			if w <= v {
				continue
			}
			// Common neighbors above w, merged from the two sorted lists
			nw := u.Neighbors(w)
			i := sort.SearchInts(nv, w+1)
			j := sort.SearchInts(nw, w+1)
			for i < len(nv) && j < len(nw) {
				switch {
				case nv[i] < nw[j]:
					i++
				case nv[i] > nw[j]:
					j++
				default:
					triangles = append(triangles, Triangle{v, w, nv[i]})
					i++
					j++
				}
			}
		}
	}
	return triangles
}

// TriangleCountResult holds per-vertex triangle participation, the global
// count, local clustering coefficients and the vertices in most triangles.
type TriangleCountResult struct {
	Triangles              []Triangle
	PerVertex              []int // PerVertex[v-1]
	GlobalCount            int
	ClusteringCoefficients []float64 // ClusteringCoefficients[v-1]
	TopNodes               []RankedNode
}

// CountTriangles counts triangles of the undirected view of g. Each
// triangle is counted once per participating vertex, so GlobalCount is
// sum(PerVertex) / 3. Clustering coefficients are computed in the same pass.
func CountTriangles(g graph.Graph) *TriangleCountResult {
	u := graph.Symmetric(g)
	n := u.Order()
	triangles := Triangles(u)

	perVertex := make([]int, n)
	for _, t := range triangles {
		for _, v := range t {
			perVertex[v-1]++
		}
	}

	coefficients := make([]float64, n)
	scores := make([]float64, n)
	for v := 1; v <= n; v++ {
		scores[v-1] = float64(perVertex[v-1])
		k := u.Degree(v)
		if k < 2 {
			continue
		}
		possible := k * (k - 1) / 2
		coefficients[v-1] = float64(perVertex[v-1]) / float64(possible)
	}

	return &TriangleCountResult{
		Triangles:              triangles,
		PerVertex:              perVertex,
		GlobalCount:            len(triangles),
		ClusteringCoefficients: coefficients,
		TopNodes:               findTopNodes(scores, 10),
	}
}

// AverageClusteringCoefficient returns the mean local clustering
// coefficient over all vertices, or 0 for an empty graph.
func AverageClusteringCoefficient(g graph.Graph) float64 {
	result := CountTriangles(g)
	if len(result.ClusteringCoefficients) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range result.ClusteringCoefficients {
		sum += c
	}
	return sum / float64(len(result.ClusteringCoefficients))
}
