// Package features extracts morphometric feature sequences from neurites,
// neurons and populations.
//
// Every feature takes a [Source], which resolves to a flat list of neurite
// trees, and returns a lazy single-pass sequence of values, one per matching
// tree or tree element:
//
//	lengths, err := features.SectionLengths(features.FromContainer(nrn),
//		features.WithNeuriteType(morph.Axon))
//	for l := range lengths {
//		fmt.Println(l)
//	}
//
// Count features such as [SectionNumber] and [NeuriteNumber] reduce a feature
// sequence to a single integer by draining it once.
//
// Sequences must not be consumed concurrently. A sequence may be ranged over
// more than once, but each pass re-walks the trees.
package features
