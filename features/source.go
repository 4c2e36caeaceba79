package features

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/TrevorS/morphstats/morph"
)

// ErrInvalidSource is returned when a Source cannot be resolved to neurite
// trees.
var ErrInvalidSource = errors.New("features: invalid neurite source")

type sourceKind int

const (
	kindInvalid sourceKind = iota
	kindType
	kindContainer
	kindTrees
)

// Source is the input of every feature: a bare tree type tag, a container
// exposing neurites (a tree, neuron or population), or an explicit list of
// trees. The zero Source is invalid.
type Source struct {
	kind      sourceKind
	tag       morph.TreeType
	container morph.NeuriteContainer
	trees     []*morph.Tree
}

// FromType returns a Source standing for a single neurite of type t with no
// sections. Such a source only contributes to per-neurite features: it counts
// as one neurite and has zero sections.
func FromType(t morph.TreeType) Source {
	return Source{kind: kindType, tag: t}
}

// FromContainer returns a Source resolving to c.Neurites().
func FromContainer(c morph.NeuriteContainer) Source {
	return Source{kind: kindContainer, container: c}
}

// FromTrees returns a Source resolving to the given trees.
func FromTrees(trees ...*morph.Tree) Source {
	return Source{kind: kindTrees, trees: trees}
}

// Resolve returns the trees the source stands for, in order.
func (s Source) Resolve() ([]*morph.Tree, error) {
	var trees []*morph.Tree
	switch s.kind {
	case kindType:
		return []*morph.Tree{{Type: s.tag}}, nil
	case kindContainer:
		if isNil(s.container) {
			return nil, fmt.Errorf("%w: nil container", ErrInvalidSource)
		}
		trees = s.container.Neurites()
	case kindTrees:
		trees = s.trees
	default:
		return nil, fmt.Errorf("%w: uninitialized source", ErrInvalidSource)
	}

	for i, t := range trees {
		if t == nil {
			return nil, fmt.Errorf("%w: neurite %d is nil", ErrInvalidSource, i)
		}
	}
	return trees, nil
}

func isNil(c morph.NeuriteContainer) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
