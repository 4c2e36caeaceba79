package features

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// ErrUnknownFeature is returned by Lookup for names not in the registry.
var ErrUnknownFeature = errors.New("features: unknown feature")

var registry = map[string]Feature{
	"section_lengths":             SectionLengths,
	"section_number":              SectionNumber.Seq(),
	"segment_lengths":             SegmentLengths,
	"local_bifurcation_angles":    LocalBifurcationAngles,
	"remote_bifurcation_angles":   RemoteBifurcationAngles,
	"neurite_number":              NeuriteNumber.Seq(),
	"per_neurite_section_number":  perNeuriteSectionNumberSeq,
	"section_path_distances":      SectionPathDistances,
	"trunk_section_lengths":       TrunkSectionLengths,
	"trunk_origin_radii":          TrunkOriginRadii,
	"principal_direction_extents": PrincipalDirectionExtents,
}

// Lookup returns the feature registered under name.
func Lookup(name string) (Feature, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
	return f, nil
}

// Names returns the registered feature names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

func perNeuriteSectionNumberSeq(src Source, opts ...Option) (iter.Seq[float64], error) {
	counts, err := PerNeuriteSectionNumber(src, opts...)
	if err != nil {
		return nil, err
	}
	return func(yield func(float64) bool) {
		for n := range counts {
			if !yield(float64(n)) {
				return
			}
		}
	}, nil
}
