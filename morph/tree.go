package morph

import "gonum.org/v1/gonum/spatial/r3"

// Point is a sample of a reconstruction: a 3D position and a radius.
type Point struct {
	X, Y, Z float64
	R       float64
}

// Vec returns the position of p.
func (p Point) Vec() r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

// Section is a maximal unbranched run of points within a neurite.
type Section struct {
	// ID is unique within the owning tree.
	ID       int
	Points   []Point
	Parent   *Section
	Children []*Section
}

// AddChild appends a child section with the given points and returns it.
// If the points do not already start at s's last point, that point is
// prepended so the child stays connected to its parent.
func (s *Section) AddChild(id int, points []Point) *Section {
	if n := len(s.Points); n > 0 && (len(points) == 0 || points[0] != s.Points[n-1]) {
		points = append([]Point{s.Points[n-1]}, points...)
	}
	child := &Section{ID: id, Points: points, Parent: s}
	s.Children = append(s.Children, child)
	return child
}

// IsRoot reports whether s has no parent section.
func (s *Section) IsRoot() bool { return s.Parent == nil }

// IsLeaf reports whether s has no child sections.
func (s *Section) IsLeaf() bool { return len(s.Children) == 0 }

// Tree is a single neurite: an axon or dendrite rooted at the soma.
// A Tree with a nil Root has no sections; it still carries a type.
type Tree struct {
	Type TreeType
	Root *Section
}

// NewTree creates a tree of the given type whose root section holds points.
func NewTree(t TreeType, points []Point) *Tree {
	return &Tree{Type: t, Root: &Section{Points: points}}
}

// Neurites returns the tree itself, so a single tree can be used anywhere a
// NeuriteContainer is accepted.
func (t *Tree) Neurites() []*Tree { return []*Tree{t} }

// Neuron is a single reconstructed cell.
type Neuron struct {
	Name  string
	Soma  []Point
	Trees []*Tree
}

// Population is a named collection of neurons.
type Population struct {
	Name    string
	Neurons []*Neuron
}

// NeuriteContainer is implemented by anything exposing a collection of
// neurite trees.
type NeuriteContainer interface {
	Neurites() []*Tree
}

var (
	_ NeuriteContainer = (*Tree)(nil)
	_ NeuriteContainer = (*Neuron)(nil)
	_ NeuriteContainer = (*Population)(nil)
)

// Neurites returns the neuron's neurite trees.
func (n *Neuron) Neurites() []*Tree { return n.Trees }

// Neurites returns the neurites of every neuron in the population, in neuron
// order.
func (p *Population) Neurites() []*Tree {
	var trees []*Tree
	for _, n := range p.Neurons {
		trees = append(trees, n.Trees...)
	}
	return trees
}
