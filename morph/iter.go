package morph

import "iter"

// Segment is the straight edge between two consecutive points of a section.
type Segment struct {
	Section *Section
	// Index is the position of A within Section.Points.
	Index int
	A, B  Point
}

// Sections yields the tree's sections in pre-order.
func (t *Tree) Sections() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		if t == nil || t.Root == nil {
			return
		}
		stack := []*Section{t.Root}
		for len(stack) > 0 {
			s := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(s) {
				return
			}
			for i := len(s.Children) - 1; i >= 0; i-- {
				stack = append(stack, s.Children[i])
			}
		}
	}
}

// SectionsBreadthFirst yields the tree's sections level by level, starting
// at the root.
func (t *Tree) SectionsBreadthFirst() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		if t == nil || t.Root == nil {
			return
		}
		toProcess := []*Section{t.Root}
		for len(toProcess) > 0 {
			var nextLevel []*Section
			for _, s := range toProcess {
				if !yield(s) {
					return
				}
				nextLevel = append(nextLevel, s.Children...)
			}
			toProcess = nextLevel
		}
	}
}

// Segments yields every segment of the tree, section by section in pre-order.
func (t *Tree) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for s := range t.Sections() {
			for i := 0; i+1 < len(s.Points); i++ {
				if !yield(Segment{Section: s, Index: i, A: s.Points[i], B: s.Points[i+1]}) {
					return
				}
			}
		}
	}
}

// Bifurcations yields the sections that end in a bifurcation, i.e. that have
// exactly two children. Multifurcations are not bifurcations.
func (t *Tree) Bifurcations() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		for s := range t.Sections() {
			if len(s.Children) == 2 && !yield(s) {
				return
			}
		}
	}
}

// Leaves yields the terminal sections of the tree.
func (t *Tree) Leaves() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		for s := range t.Sections() {
			if s.IsLeaf() && !yield(s) {
				return
			}
		}
	}
}

// Points yields every distinct point of the tree. The first point of a
// non-root section repeats its parent's last point and is skipped.
func (t *Tree) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for s := range t.Sections() {
			pts := s.Points
			if !s.IsRoot() && len(pts) > 0 {
				pts = pts[1:]
			}
			for _, p := range pts {
				if !yield(p) {
					return
				}
			}
		}
	}
}
