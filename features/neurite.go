package features

import (
	"fmt"
	"iter"
	"slices"

	"github.com/TrevorS/morphstats/morph"
)

var (
	// SectionLengths yields the length of every section.
	SectionLengths = Getter((*morph.Tree).Sections, morph.SectionLength)

	// SectionNumber counts sections.
	SectionNumber = Count(Getter((*morph.Tree).Sections, sectionID))

	// SegmentLengths yields the length of every segment.
	SegmentLengths = Getter((*morph.Tree).Segments, morph.SegmentLength)

	// LocalBifurcationAngles yields, for every bifurcation, the angle between
	// the first segments of its two children.
	LocalBifurcationAngles = Getter((*morph.Tree).Bifurcations, morph.LocalBifurcationAngle)

	// RemoteBifurcationAngles yields, for every bifurcation, the angle between
	// the end points of its two children.
	RemoteBifurcationAngles = Getter((*morph.Tree).Bifurcations, morph.RemoteBifurcationAngle)

	// NeuriteNumber counts neurites.
	NeuriteNumber = Count(Getter(self, func(*morph.Tree) float64 { return 1 }))

	// TrunkSectionLengths yields the root section length of every neurite.
	TrunkSectionLengths = Getter(self, morph.TrunkSectionLength)

	// TrunkOriginRadii yields the radius at the origin of every neurite.
	TrunkOriginRadii = Getter(self, morph.TrunkOriginRadius)
)

func sectionID(s *morph.Section) float64 { return float64(s.ID) }

// PerNeuriteSectionNumber yields one section count per neurite of src, in
// neurite order. Every neurite is visited; the NeuriteType option is applied
// inside each count, so a neurite of another type yields 0.
//
// Counts are computed before the sequence is returned: each neurite gets its
// own SectionNumber call, drained once.
func PerNeuriteSectionNumber(src Source, opts ...Option) (iter.Seq[int], error) {
	trees, err := src.Resolve()
	if err != nil {
		return nil, err
	}
	counts := make([]int, 0, len(trees))
	for _, t := range trees {
		n, err := SectionNumber(FromTrees(t), opts...)
		if err != nil {
			return nil, err
		}
		counts = append(counts, n)
	}
	return slices.Values(counts), nil
}

// SectionPathDistances yields, for every section, the path distance from the
// neurite root to the section's last point, or to its first point when the
// UseStartPoint option is set.
func SectionPathDistances(src Source, opts ...Option) (iter.Seq[float64], error) {
	o := applyOptions(opts)
	measure := morph.SectionEndPathLength
	if o.UseStartPoint {
		measure = morph.SectionStartPathLength
	}
	return Getter((*morph.Tree).Sections, measure)(src, opts...)
}

// PrincipalDirectionExtents yields, for every neurite, its extent along the
// principal direction chosen by the Direction option.
//
// Extents are computed before the sequence is returned so that a failed
// principal component analysis is reported as an error.
func PrincipalDirectionExtents(src Source, opts ...Option) (iter.Seq[float64], error) {
	trees, err := src.Resolve()
	if err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	if o.Direction < morph.FirstDirection || o.Direction > morph.ThirdDirection {
		return nil, fmt.Errorf("features: %w: %d", morph.ErrUnknownDirection, int(o.Direction))
	}

	filter := morph.TypeChecker(o.NeuriteType)
	var extents []float64
	for _, t := range trees {
		if !filter(t) {
			continue
		}
		ext, err := morph.PrincipalDirectionExtent(t)
		if err != nil {
			return nil, fmt.Errorf("features: principal direction extents: %w", err)
		}
		extents = append(extents, ext[o.Direction])
	}
	return slices.Values(extents), nil
}
