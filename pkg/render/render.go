// Package render draws partitions and score vectors for terminals. Colors
// are only emitted when the writer is a terminal that supports them.
package render

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/RandyRDavila/graphcommunities/pkg/algorithms"
	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

// MaxMembers caps how many members are listed per community.
const MaxMembers = 24

var palette = []lipgloss.Color{
	"#FF00FF", "#00FFFF", "#00FF00", "#FFFF00", "#FF8800", "#8888FF", "#FF4444", "#44DDAA",
}

type styles struct {
	title lipgloss.Style
	label []lipgloss.Style
	faint lipgloss.Style
	bar   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	s := styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF00FF")),
		faint: r.NewStyle().Faint(true),
		bar:   r.NewStyle().Foreground(lipgloss.Color("#00FF00")),
	}
	for _, c := range palette {
		s.label = append(s.label, r.NewStyle().Bold(true).Foreground(c))
	}
	return s
}

// Communities writes one line per community of p: its id, size and
// members. It fails with an IncompleteError before writing anything when p
// leaves a vertex unassigned.
func Communities(w io.Writer, g graph.Graph, p *algorithms.Partition) error {
	if err := p.Complete(); err != nil {
		return err
	}

	s := newStyles(w)
	groups := p.Groups()

	title := fmt.Sprintf("%d communities over %d vertices", len(groups), p.Len())
	if q, err := algorithms.Modularity(g, p); err == nil {
		title += fmt.Sprintf(", modularity %.4f", q)
	}
	if _, err := fmt.Fprintln(w, s.title.Render(title)); err != nil {
		return err
	}

	for i, members := range groups {
		id, _ := p.Community(members[0])
		if err := writeGroup(w, s, i, "#"+strconv.Itoa(id), members); err != nil {
			return err
		}
	}
	return nil
}

// Groups writes possibly overlapping groups numbered from 1, as found by
// clique percolation. Vertices outside every group are counted.
func Groups(w io.Writer, n int, groups [][]int) error {
	s := newStyles(w)

	covered := make(map[int]struct{})
	for _, members := range groups {
		for _, v := range members {
			covered[v] = struct{}{}
		}
	}

	title := fmt.Sprintf("%d groups covering %d of %d vertices", len(groups), len(covered), n)
	if _, err := fmt.Fprintln(w, s.title.Render(title)); err != nil {
		return err
	}
	for i, members := range groups {
		if err := writeGroup(w, s, i, "#"+strconv.Itoa(i+1), members); err != nil {
			return err
		}
	}
	return nil
}

func writeGroup(w io.Writer, s styles, i int, label string, members []int) error {
	shown := members
	if len(shown) > MaxMembers {
		shown = shown[:MaxMembers]
	}

	var b strings.Builder
	for j, v := range shown {
		if j > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	if rest := len(members) - len(shown); rest > 0 {
		b.WriteByte(' ')
		b.WriteString(s.faint.Render(fmt.Sprintf("(+%d more)", rest)))
	}

	// Padding goes inside the styled text; lipgloss widths wrap long values
	style := s.label[i%len(s.label)]
	_, err := fmt.Fprintf(w, "%s %-9s %s\n", style.Render(fmt.Sprintf("%-6s", label)), fmt.Sprintf("size %d", len(members)), b.String())
	return err
}

// Structure writes one faint line summarizing the undirected view of g:
// its connected components, triangles and average clustering coefficient.
func Structure(w io.Writer, g graph.Graph) error {
	s := newStyles(w)
	components := algorithms.ConnectedComponents(g).NumCommunities()
	triangles := algorithms.CountTriangles(g).GlobalCount
	line := fmt.Sprintf("%d components, %d triangles, average clustering %.4f",
		components, triangles, algorithms.AverageClusteringCoefficient(g))
	_, err := fmt.Fprintln(w, s.faint.Render(line))
	return err
}

// BarWidth is the width of the longest score bar.
const BarWidth = 30

// Scores writes the ranked vertices with their scores and a bar scaled to
// the first entry. Ranked is expected in descending score order, as
// returned by PageRank.
func Scores(w io.Writer, ranked []algorithms.RankedNode) error {
	s := newStyles(w)

	if _, err := fmt.Fprintln(w, s.title.Render(fmt.Sprintf("top %d vertices", len(ranked)))); err != nil {
		return err
	}
	if len(ranked) == 0 {
		return nil
	}

	top := ranked[0].Score
	for i, node := range ranked {
		width := 0
		if top > 0 {
			width = int(node.Score / top * BarWidth)
		}
		bar := s.bar.Render(strings.Repeat("█", width))
		_, err := fmt.Fprintf(w, "%3d. %-8d %.6f %s\n", i+1, node.Vertex, node.Score, bar)
		if err != nil {
			return err
		}
	}
	return nil
}

// Result renders whatever r holds: overlapping groups for K-Clique followed
// by the Structure line, the partition for the other community engines, or
// ranked vertices for PageRank.
func Result(w io.Writer, g graph.Graph, r *algorithms.Result) error {
	switch {
	case r.Ranking != nil:
		ranked := r.Ranking.TopNodes
		if len(ranked) == 0 {
			ranked = rankAll(r.Ranking.Scores)
		}
		return Scores(w, ranked)
	case r.Communities != nil && r.Kind == algorithms.KindKClique:
		groups := make([][]int, 0, len(r.Communities.Communities))
		for _, c := range r.Communities.Communities {
			groups = append(groups, c.Nodes)
		}
		if err := Groups(w, g.Order(), groups); err != nil {
			return err
		}
		return Structure(w, g)
	case r.Communities != nil:
		return Communities(w, g, r.Communities.Partition)
	default:
		return errors.New("render: empty result")
	}
}

func rankAll(scores []float64) []algorithms.RankedNode {
	ranked := make([]algorithms.RankedNode, len(scores))
	for i, score := range scores {
		ranked[i] = algorithms.RankedNode{Vertex: i + 1, Score: score}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}
