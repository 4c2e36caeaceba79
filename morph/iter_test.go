package morph

import (
	"math"
	"testing"
)

// buildYTree creates a tree with two bifurcations.
//
//	root: (0,0,0) -> (0,1,0)
//	  a: (0,1,0) -> (-1,2,0)
//	  b: (0,1,0) -> (1,2,0)
//	    c: (1,2,0) -> (0,3,0)
//	    d: (1,2,0) -> (2,3,0)
func buildYTree() *Tree {
	t := NewTree(ApicalDendrite, []Point{{}, {Y: 1}})
	t.Root.AddChild(1, []Point{{X: -1, Y: 2}})
	b := t.Root.AddChild(2, []Point{{X: 1, Y: 2}})
	b.AddChild(3, []Point{{X: 0, Y: 3}})
	b.AddChild(4, []Point{{X: 2, Y: 3}})
	return t
}

func sectionIDs(seq func(func(*Section) bool)) []int {
	var ids []int
	for s := range seq {
		ids = append(ids, s.ID)
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddChild_PrependsParentEnd(t *testing.T) {
	tree := buildYTree()
	a := tree.Root.Children[0]
	if len(a.Points) != 2 {
		t.Fatalf("child has %d points, want 2", len(a.Points))
	}
	if a.Points[0] != tree.Root.Points[1] {
		t.Errorf("child starts at %v, want parent end %v", a.Points[0], tree.Root.Points[1])
	}
	if a.Parent != tree.Root {
		t.Error("child parent not set")
	}

	// Points already starting at the parent end are kept as given.
	c := tree.Root.AddChild(9, []Point{{Y: 1}, {Y: 5}})
	if len(c.Points) != 2 {
		t.Errorf("connected child has %d points, want 2", len(c.Points))
	}
}

func TestSections_PreOrder(t *testing.T) {
	tree := buildYTree()
	got := sectionIDs(tree.Sections())
	want := []int{0, 1, 2, 3, 4}
	if !equalInts(got, want) {
		t.Errorf("pre-order = %v, want %v", got, want)
	}
}

func TestSections_PreOrderDiffersFromBreadthFirst(t *testing.T) {
	// root -> (a -> (c), b): pre-order visits c before b.
	tree := NewTree(Axon, []Point{{}, {X: 1}})
	a := tree.Root.AddChild(1, []Point{{X: 2}})
	tree.Root.AddChild(2, []Point{{X: 1, Y: 1}})
	a.AddChild(3, []Point{{X: 3}})

	if got, want := sectionIDs(tree.Sections()), []int{0, 1, 3, 2}; !equalInts(got, want) {
		t.Errorf("pre-order = %v, want %v", got, want)
	}
	if got, want := sectionIDs(tree.SectionsBreadthFirst()), []int{0, 1, 2, 3}; !equalInts(got, want) {
		t.Errorf("breadth-first = %v, want %v", got, want)
	}
}

func TestSections_EarlyStop(t *testing.T) {
	tree := buildYTree()
	n := 0
	for range tree.Sections() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("visited %d sections, want 2", n)
	}
	n = 0
	for range tree.SectionsBreadthFirst() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("visited %d sections, want 1", n)
	}
}

func TestSections_EmptyTree(t *testing.T) {
	tree := &Tree{Type: Axon}
	for range tree.Sections() {
		t.Fatal("rootless tree yielded a section")
	}
	for range tree.SectionsBreadthFirst() {
		t.Fatal("rootless tree yielded a section")
	}
	for range tree.Segments() {
		t.Fatal("rootless tree yielded a segment")
	}
	for range tree.Points() {
		t.Fatal("rootless tree yielded a point")
	}
	var nilTree *Tree
	for range nilTree.Sections() {
		t.Fatal("nil tree yielded a section")
	}
}

func TestSegments(t *testing.T) {
	tree := buildYTree()
	var lengths []float64
	for seg := range tree.Segments() {
		lengths = append(lengths, SegmentLength(seg))
	}
	want := []float64{1, math.Sqrt2, math.Sqrt2, math.Sqrt2, math.Sqrt2}
	if len(lengths) != len(want) {
		t.Fatalf("got %d segments, want %d", len(lengths), len(want))
	}
	for i := range want {
		if math.Abs(lengths[i]-want[i]) > 1e-12 {
			t.Errorf("segment %d length = %v, want %v", i, lengths[i], want[i])
		}
	}
}

func TestBifurcationsAndLeaves(t *testing.T) {
	tree := buildYTree()
	if got, want := sectionIDs(tree.Bifurcations()), []int{0, 2}; !equalInts(got, want) {
		t.Errorf("bifurcations = %v, want %v", got, want)
	}
	if got, want := sectionIDs(tree.Leaves()), []int{1, 3, 4}; !equalInts(got, want) {
		t.Errorf("leaves = %v, want %v", got, want)
	}
}

func TestBifurcations_SkipsMultifurcation(t *testing.T) {
	tree := NewTree(Axon, []Point{{}, {X: 1}})
	tree.Root.AddChild(1, []Point{{X: 2}})
	tree.Root.AddChild(2, []Point{{X: 1, Y: 1}})
	tree.Root.AddChild(3, []Point{{X: 1, Y: -1}})
	for range tree.Bifurcations() {
		t.Fatal("trifurcation reported as bifurcation")
	}
}

func TestPoints_SkipsDuplicatedBranchPoints(t *testing.T) {
	tree := buildYTree()
	n := 0
	for range tree.Points() {
		n++
	}
	// 2 root points + 1 new point per child section.
	if n != 6 {
		t.Errorf("got %d points, want 6", n)
	}
}
