package morph

import "math"

// SectionLength returns the path length along a section's points.
func SectionLength(s *Section) float64 {
	return PathLength(s.Points)
}

// SegmentLength returns the length of a single segment.
func SegmentLength(seg Segment) float64 {
	return Distance(seg.A, seg.B)
}

// SectionStartPathLength returns the path distance from the tree root to the
// first point of s.
func SectionStartPathLength(s *Section) float64 {
	var sum float64
	for p := s.Parent; p != nil; p = p.Parent {
		sum += SectionLength(p)
	}
	return sum
}

// SectionEndPathLength returns the path distance from the tree root to the
// last point of s.
func SectionEndPathLength(s *Section) float64 {
	return SectionStartPathLength(s) + SectionLength(s)
}

// LocalBifurcationAngle returns the angle between the first segments of the
// two child sections of a bifurcation.
// It returns NaN if s does not have exactly two children or a child has
// fewer than two points.
func LocalBifurcationAngle(s *Section) float64 {
	if !isBifurcation(s) {
		return math.NaN()
	}
	c0, c1 := s.Children[0], s.Children[1]
	return Angle3Points(s.Points[len(s.Points)-1], c0.Points[1], c1.Points[1])
}

// RemoteBifurcationAngle returns the angle between the end points of the two
// child sections of a bifurcation, seen from the bifurcation point.
// It returns NaN under the same conditions as LocalBifurcationAngle.
func RemoteBifurcationAngle(s *Section) float64 {
	if !isBifurcation(s) {
		return math.NaN()
	}
	c0, c1 := s.Children[0], s.Children[1]
	return Angle3Points(s.Points[len(s.Points)-1], c0.Points[len(c0.Points)-1], c1.Points[len(c1.Points)-1])
}

func isBifurcation(s *Section) bool {
	if len(s.Children) != 2 || len(s.Points) == 0 {
		return false
	}
	return len(s.Children[0].Points) >= 2 && len(s.Children[1].Points) >= 2
}

// TrunkSectionLength returns the length of the tree's root section, or 0 for
// a tree without sections.
func TrunkSectionLength(t *Tree) float64 {
	if t.Root == nil {
		return 0
	}
	return SectionLength(t.Root)
}

// TrunkOriginRadius returns the radius of the first point of the tree, or 0
// for a tree without points.
func TrunkOriginRadius(t *Tree) float64 {
	if t.Root == nil || len(t.Root.Points) == 0 {
		return 0
	}
	return t.Root.Points[0].R
}
