package algorithms

import "sort"

// Unassigned marks a vertex that no community claimed.
const Unassigned = 0

// Partition maps every vertex 1..n to a community id. Ids are positive but
// need not be dense or contiguous. Sparse results (K-Clique) leave some
// vertices Unassigned.
type Partition struct {
	labels []int // labels[v-1]
}

// NewPartition creates a partition over n vertices with nothing assigned.
func NewPartition(n int) *Partition {
	return &Partition{labels: make([]int, n)}
}

// PartitionFromLabels wraps labels, where labels[i] is the community of
// vertex i+1. The slice is copied.
func PartitionFromLabels(labels []int) *Partition {
	p := NewPartition(len(labels))
	copy(p.labels, labels)
	return p
}

// Singletons places every vertex in its own community, numbered by vertex.
func Singletons(n int) *Partition {
	p := NewPartition(n)
	for i := range p.labels {
		p.labels[i] = i + 1
	}
	return p
}

// Len returns the number of vertices covered.
func (p *Partition) Len() int { return len(p.labels) }

// Assign sets the community of v. Out-of-range vertices are ignored.
func (p *Partition) Assign(v, community int) {
	if v >= 1 && v <= len(p.labels) {
		p.labels[v-1] = community
	}
}

// Community returns the community of v.
func (p *Partition) Community(v int) (int, error) {
	if v < 1 || v > len(p.labels) || p.labels[v-1] == Unassigned {
		return Unassigned, &IncompleteError{Vertex: v}
	}
	return p.labels[v-1], nil
}

// Labels returns a copy of the label array (index i holds vertex i+1).
func (p *Partition) Labels() []int {
	out := make([]int, len(p.labels))
	copy(out, p.labels)
	return out
}

// Complete returns an IncompleteError for the first unassigned vertex.
func (p *Partition) Complete() error {
	for i, c := range p.labels {
		if c == Unassigned {
			return &IncompleteError{Vertex: i + 1}
		}
	}
	return nil
}

// Groups returns the members of each community in ascending order, with
// communities ordered by their smallest member. Unassigned vertices are
// skipped.
func (p *Partition) Groups() [][]int {
	index := make(map[int]int)
	groups := make([][]int, 0)
	for i, c := range p.labels {
		if c == Unassigned {
			continue
		}
		g, ok := index[c]
		if !ok {
			g = len(groups)
			index[c] = g
			groups = append(groups, nil)
		}
		// Vertices are visited in ascending order, so groups stay sorted
		groups[g] = append(groups[g], i+1)
	}
	return groups
}

// NumCommunities returns the number of distinct community ids.
func (p *Partition) NumCommunities() int {
	seen := make(map[int]struct{})
	for _, c := range p.labels {
		if c != Unassigned {
			seen[c] = struct{}{}
		}
	}
	return len(seen)
}

// Equal reports whether both partitions assign identical ids.
func (p *Partition) Equal(other *Partition) bool {
	if other == nil || len(p.labels) != len(other.labels) {
		return false
	}
	for i := range p.labels {
		if p.labels[i] != other.labels[i] {
			return false
		}
	}
	return true
}

// SameGrouping reports whether both partitions group vertices identically,
// regardless of the ids used.
func (p *Partition) SameGrouping(other *Partition) bool {
	if other == nil || len(p.labels) != len(other.labels) {
		return false
	}
	a, b := p.Groups(), other.Groups()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// compact renumbers communities 1..k in order of first appearance and
// returns k.
func compact(labels []int) int {
	next := 0
	ids := make(map[int]int)
	for i, c := range labels {
		if c == Unassigned {
			continue
		}
		id, ok := ids[c]
		if !ok {
			next++
			id = next
			ids[c] = id
		}
		labels[i] = id
	}
	return next
}

// sortGroups orders sorted groups lexicographically, which orders them by
// smallest member first.
func sortGroups(groups [][]int) {
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}
