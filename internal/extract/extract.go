// Package extract turns a population of neurons into fitted feature
// distributions, following an extraction config.
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/TrevorS/morphstats/features"
	"github.com/TrevorS/morphstats/internal/config"
	"github.com/TrevorS/morphstats/internal/logger"
	"github.com/TrevorS/morphstats/morph"
	"github.com/TrevorS/morphstats/stats"
)

// Distribution is the fitted distribution of one feature over one neurite
// type of a population.
type Distribution struct {
	Feature     string
	NeuriteType morph.TreeType

	// Variant distinguishes configurations of the same feature and neurite
	// type, e.g. "start_point" or a principal direction. Empty otherwise.
	Variant string

	Fit  stats.FitResult
	Dict stats.ParamDict

	// Sample holds the values the fit was computed from.
	Sample []float64
}

// Label names the distribution, e.g. section_lengths/axon or
// section_path_distances/all/start_point.
func (d Distribution) Label() string {
	return d.Feature + "/" + d.Key()
}

// Key identifies the distribution within its feature: the neurite type,
// followed by "/" and the variant when there is one.
func (d Distribution) Key() string {
	if d.Variant == "" {
		return d.NeuriteType.String()
	}
	return d.NeuriteType.String() + "/" + d.Variant
}

// Run extracts and fits every configured feature over pop, in config order.
// A feature with no values for its neurite type, or whose values cannot be
// fitted, is skipped with a warning. Any other error aborts the run.
func Run(pop *morph.Population, cfg *config.Config) ([]Distribution, error) {
	src := features.FromContainer(pop)
	var out []Distribution
	for _, fc := range cfg.Features {
		d, err := runFeature(src, fc)
		switch {
		case err == nil:
			logger.Logger().Info("fitted feature",
				slog.String("feature", d.Label()),
				slog.Int("values", len(d.Sample)),
				slog.String("family", string(d.Fit.Type)),
				slog.Float64("ks", d.Fit.Statistic()),
			)
			out = append(out, d)
		case skippable(err):
			logger.Warnf("%s: skipped: %v", fc.Label(), err)
		default:
			return nil, fmt.Errorf("extract: %s: %w", fc.Label(), err)
		}
	}
	return out, nil
}

func skippable(err error) bool {
	return errors.Is(err, stats.ErrEmptySample) ||
		errors.Is(err, stats.ErrDegenerateSample) ||
		errors.Is(err, stats.ErrNonFiniteSample)
}

func runFeature(src features.Source, fc config.FeatureConfig) (Distribution, error) {
	f, err := features.Lookup(fc.Name)
	if err != nil {
		return Distribution{}, err
	}
	seq, err := f(src,
		features.WithNeuriteType(fc.TreeType()),
		features.WithStartPoint(fc.UseStartPoint),
		features.WithDirection(fc.Direction),
	)
	if err != nil {
		return Distribution{}, err
	}
	sample := slices.Collect(seq)
	logger.Debugf("%s: collected %d values", fc.Label(), len(sample))

	family, err := fc.Family()
	if err != nil {
		return Distribution{}, err
	}
	var fit stats.FitResult
	if fc.Optimal() {
		fit, err = stats.OptimalDistribution(sample)
	} else {
		fit, err = stats.Fit(sample, family)
	}
	if err != nil {
		return Distribution{}, err
	}

	var opts []stats.DictOption
	if fc.MinBound != nil {
		opts = append(opts, stats.WithMinBound(*fc.MinBound))
	}
	if fc.MaxBound != nil {
		opts = append(opts, stats.WithMaxBound(*fc.MaxBound))
	}
	dict, err := stats.ToDict(fit, opts...)
	if err != nil {
		return Distribution{}, err
	}

	return Distribution{
		Feature:     fc.Name,
		NeuriteType: fc.TreeType(),
		Variant:     fc.Variant(),
		Fit:         fit,
		Dict:        dict,
		Sample:      sample,
	}, nil
}
