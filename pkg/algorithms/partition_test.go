package algorithms

import (
	"errors"
	"reflect"
	"testing"
)

func TestPartition_AssignAndCommunity(t *testing.T) {
	p := NewPartition(4)
	p.Assign(1, 7)
	p.Assign(2, 7)
	p.Assign(4, 3)
	p.Assign(9, 1) // out of range, ignored

	if c, err := p.Community(2); err != nil || c != 7 {
		t.Errorf("Community(2) = %d, %v; want 7, nil", c, err)
	}

	_, err := p.Community(3)
	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) || incomplete.Vertex != 3 {
		t.Errorf("Community(3) error = %v, want IncompleteError for vertex 3", err)
	}
	if !IsIncomplete(p.Complete()) {
		t.Error("Complete() should report the unassigned vertex")
	}
	if _, err := p.Community(0); !IsIncomplete(err) {
		t.Errorf("Community(0) error = %v, want incomplete", err)
	}
}

func TestPartition_Groups(t *testing.T) {
	p := PartitionFromLabels([]int{5, 2, 5, 0, 2, 9})

	want := [][]int{{1, 3}, {2, 5}, {6}}
	if got := p.Groups(); !reflect.DeepEqual(got, want) {
		t.Errorf("Groups() = %v, want %v", got, want)
	}
	if p.NumCommunities() != 3 {
		t.Errorf("NumCommunities() = %d, want 3", p.NumCommunities())
	}
}

func TestPartition_LabelsAreCopied(t *testing.T) {
	src := []int{1, 1, 2}
	p := PartitionFromLabels(src)
	src[0] = 9

	labels := p.Labels()
	labels[1] = 9

	if c, _ := p.Community(1); c != 1 {
		t.Errorf("Community(1) = %d after mutating the source slice, want 1", c)
	}
	if c, _ := p.Community(2); c != 1 {
		t.Errorf("Community(2) = %d after mutating Labels(), want 1", c)
	}
}

func TestPartition_EqualAndSameGrouping(t *testing.T) {
	a := PartitionFromLabels([]int{1, 1, 2, 2})
	b := PartitionFromLabels([]int{4, 4, 3, 3})
	c := PartitionFromLabels([]int{1, 2, 2, 2})

	if a.Equal(b) {
		t.Error("partitions with different ids should not be Equal")
	}
	if !a.SameGrouping(b) {
		t.Error("partitions with the same groups should have SameGrouping")
	}
	if a.SameGrouping(c) {
		t.Error("different groupings reported as the same")
	}
	if a.Equal(nil) || a.SameGrouping(nil) {
		t.Error("comparison with nil should be false")
	}
	if !a.Equal(PartitionFromLabels([]int{1, 1, 2, 2})) {
		t.Error("identical labels should be Equal")
	}
}

func TestSingletons(t *testing.T) {
	p := Singletons(3)
	if !reflect.DeepEqual(p.Labels(), []int{1, 2, 3}) {
		t.Errorf("Singletons(3) = %v", p.Labels())
	}
	if err := p.Complete(); err != nil {
		t.Errorf("Complete() = %v", err)
	}
}

func TestCompact(t *testing.T) {
	labels := []int{40, 7, 40, 0, 12, 7}
	k := compact(labels)

	if k != 3 {
		t.Errorf("compact returned %d, want 3", k)
	}
	want := []int{1, 2, 1, 0, 3, 2}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("compact labels = %v, want %v", labels, want)
	}
}

func TestSortGroups(t *testing.T) {
	groups := [][]int{{3, 4, 5}, {1, 2, 3}, {1, 2}, {2, 6}}
	sortGroups(groups)

	want := [][]int{{1, 2}, {1, 2, 3}, {2, 6}, {3, 4, 5}}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("sortGroups = %v, want %v", groups, want)
	}
}
