package generate

import "github.com/RandyRDavila/graphcommunities/pkg/graph"

// karateEdges lists Zachary's karate club network (34 members, 78
// friendships), vertices numbered 1..34 as in the 1977 paper.
var karateEdges = [][2]int{
	{1, 2}, {1, 3}, {1, 4}, {1, 5}, {1, 6}, {1, 7}, {1, 8}, {1, 9}, {1, 11}, {1, 12},
	{1, 13}, {1, 14}, {1, 18}, {1, 20}, {1, 22}, {1, 32},
	{2, 3}, {2, 4}, {2, 8}, {2, 14}, {2, 18}, {2, 20}, {2, 22}, {2, 31},
	{3, 4}, {3, 8}, {3, 9}, {3, 10}, {3, 14}, {3, 28}, {3, 29}, {3, 33},
	{4, 8}, {4, 13}, {4, 14},
	{5, 7}, {5, 11},
	{6, 7}, {6, 11}, {6, 17},
	{7, 17},
	{9, 31}, {9, 33}, {9, 34},
	{10, 34},
	{14, 34},
	{15, 33}, {15, 34},
	{16, 33}, {16, 34},
	{19, 33}, {19, 34},
	{20, 34},
	{21, 33}, {21, 34},
	{23, 33}, {23, 34},
	{24, 26}, {24, 28}, {24, 30}, {24, 33}, {24, 34},
	{25, 26}, {25, 28}, {25, 32},
	{26, 32},
	{27, 30}, {27, 34},
	{28, 34},
	{29, 32}, {29, 34},
	{30, 33}, {30, 34},
	{31, 33}, {31, 34},
	{32, 33}, {32, 34},
	{33, 34},
}

// karateFactions records which side each member joined after the club
// split: 1 for the instructor (vertex 1), 2 for the administrator (vertex 34).
var karateFactions = []int{
	1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 2, 2, 1,
	1, 2, 1, 2, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
}

// Karate returns Zachary's karate club graph.
func Karate() *graph.Adjacency {
	g, _ := graph.New(34, graph.Undirected)
	for _, e := range karateEdges {
		_ = g.AddEdge(e[0], e[1])
	}
	return g
}

// KarateFactions returns the observed post-split faction of every member,
// factions[v-1] for vertex v.
func KarateFactions() []int {
	out := make([]int, len(karateFactions))
	copy(out, karateFactions)
	return out
}
