package features

import "github.com/TrevorS/morphstats/morph"

// Options controls which neurites a feature considers and how some features
// measure them. Start with [DefaultOptions] and apply [Option] values.
type Options struct {
	// NeuriteType selects the neurites to include. Default: morph.All.
	NeuriteType morph.TreeType

	// UseStartPoint makes SectionPathDistances measure to each section's
	// first point instead of its last. Default: false.
	UseStartPoint bool

	// Direction selects the principal direction reported by
	// PrincipalDirectionExtents. Default: morph.FirstDirection.
	Direction morph.Direction
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Options matching every neurite.
func DefaultOptions() Options {
	return Options{
		NeuriteType: morph.All,
		Direction:   morph.FirstDirection,
	}
}

// WithNeuriteType restricts a feature to neurites of type t.
func WithNeuriteType(t morph.TreeType) Option {
	return func(o *Options) { o.NeuriteType = t }
}

// WithStartPoint selects section start points for path distances.
func WithStartPoint(use bool) Option {
	return func(o *Options) { o.UseStartPoint = use }
}

// WithDirection selects the principal direction for extents.
func WithDirection(d morph.Direction) Option {
	return func(o *Options) { o.Direction = d }
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
