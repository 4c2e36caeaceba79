package morph

import (
	"errors"
	"fmt"
	"strings"
)

// TreeType classifies a neurite. The numeric values of the concrete types
// match the SWC structure identifiers.
type TreeType int

const (
	Undefined      TreeType = 0
	Soma           TreeType = 1
	Axon           TreeType = 2
	BasalDendrite  TreeType = 3
	ApicalDendrite TreeType = 4

	// All is a selector, not a real tree type: it matches every tree.
	All TreeType = 32
)

// ErrUnknownTreeType is returned when parsing an unrecognized type name.
var ErrUnknownTreeType = errors.New("morph: unknown tree type")

var treeTypeNames = map[TreeType]string{
	Undefined:      "undefined",
	Soma:           "soma",
	Axon:           "axon",
	BasalDendrite:  "basal_dendrite",
	ApicalDendrite: "apical_dendrite",
	All:            "all",
}

func (t TreeType) String() string {
	if name, ok := treeTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TreeType(%d)", int(t))
}

// ParseTreeType converts a type name such as "axon" or "basal_dendrite" into
// a TreeType. Matching is case-insensitive and accepts '-' in place of '_'.
// An empty name parses as All.
func ParseTreeType(name string) (TreeType, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if key == "" {
		return All, nil
	}
	for t, n := range treeTypeNames {
		if n == key {
			return t, nil
		}
	}
	return Undefined, fmt.Errorf("%w: %q", ErrUnknownTreeType, name)
}

// MarshalText implements encoding.TextMarshaler.
func (t TreeType) MarshalText() ([]byte, error) {
	if _, ok := treeTypeNames[t]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTreeType, int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TreeType) UnmarshalText(text []byte) error {
	parsed, err := ParseTreeType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// swcTreeType maps an SWC structure identifier to a TreeType. Custom
// identifiers (5 and above) are reported as Undefined.
func swcTreeType(id int) TreeType {
	switch t := TreeType(id); t {
	case Soma, Axon, BasalDendrite, ApicalDendrite:
		return t
	default:
		return Undefined
	}
}

// TypeChecker returns a predicate selecting trees of the given types.
// If any of the types is All, the predicate accepts every tree.
func TypeChecker(types ...TreeType) func(*Tree) bool {
	for _, t := range types {
		if t == All {
			return func(*Tree) bool { return true }
		}
	}
	return func(tree *Tree) bool {
		for _, t := range types {
			if tree.Type == t {
				return true
			}
		}
		return false
	}
}
