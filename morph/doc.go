// Package morph provides the morphology primitives that feature extraction is
// built on: a section-based neurite tree, neurons and populations, tree type
// classification, traversal iterators, per-element measurements, and an SWC
// reader.
//
// A neurite is a [Tree] of [Section] values. Each section is a maximal
// unbranched run of points; a child section's first point repeats its
// parent's last point, so segment iteration covers the connection between
// parent and child.
//
// Basic usage:
//
//	nrn, err := morph.LoadNeuron("cell.swc")
//	for s := range nrn.Trees[0].Sections() {
//		fmt.Println(s.ID, morph.SectionLength(s))
//	}
//
// Traversal order is pre-order (parent before children, children in the
// order they were attached) unless a function says otherwise.
package morph
