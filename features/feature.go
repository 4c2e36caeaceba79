package features

import (
	"iter"

	"github.com/TrevorS/morphstats/morph"
)

// Feature extracts a lazy sequence of values from the neurites of src.
type Feature func(src Source, opts ...Option) (iter.Seq[float64], error)

// CountFeature reduces the neurites of src to a single count.
type CountFeature func(src Source, opts ...Option) (int, error)

// Getter builds a Feature that applies measure to every element yielded by
// elements, over each neurite selected by the NeuriteType option.
func Getter[E any](elements func(*morph.Tree) iter.Seq[E], measure func(E) float64) Feature {
	return func(src Source, opts ...Option) (iter.Seq[float64], error) {
		trees, err := src.Resolve()
		if err != nil {
			return nil, err
		}
		o := applyOptions(opts)
		return iterNeurites(trees, morph.TypeChecker(o.NeuriteType), elements, measure), nil
	}
}

// iterNeurites maps measure over the elements of every tree accepted by
// filter, trees in order and elements in traversal order.
func iterNeurites[E any](trees []*morph.Tree, filter func(*morph.Tree) bool,
	elements func(*morph.Tree) iter.Seq[E], measure func(E) float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, t := range trees {
			if !filter(t) {
				continue
			}
			for e := range elements(t) {
				if !yield(measure(e)) {
					return
				}
			}
		}
	}
}

// Count wraps f into a CountFeature that drains f's sequence exactly once and
// returns the number of values it produced.
func Count(f Feature) CountFeature {
	return func(src Source, opts ...Option) (int, error) {
		seq, err := f(src, opts...)
		if err != nil {
			return 0, err
		}
		return drain(seq), nil
	}
}

// Seq adapts c into a Feature yielding its count as a single value.
func (c CountFeature) Seq() Feature {
	return func(src Source, opts ...Option) (iter.Seq[float64], error) {
		n, err := c(src, opts...)
		if err != nil {
			return nil, err
		}
		return func(yield func(float64) bool) {
			yield(float64(n))
		}, nil
	}
}

func drain[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// self yields the tree itself, for per-neurite measurements.
func self(t *morph.Tree) iter.Seq[*morph.Tree] {
	return func(yield func(*morph.Tree) bool) {
		yield(t)
	}
}
