package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/TrevorS/morphstats/features"
	"github.com/TrevorS/morphstats/internal/logger"
	"github.com/TrevorS/morphstats/morph"
	"github.com/TrevorS/morphstats/stats"
)

// Validate checks the configuration, naming the offending field on error.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("%w: inputs requires at least one path or pattern", ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log_level %q is not debug, info, warn or error", ErrInvalidConfig, c.LogLevel)
	}
	if len(c.Features) == 0 {
		return fmt.Errorf("%w: features requires at least one entry", ErrInvalidConfig)
	}
	seen := make(map[string]int, len(c.Features))
	for i, f := range c.Features {
		if err := f.validate(); err != nil {
			return fmt.Errorf("%w: features[%d]: %w", ErrInvalidConfig, i, err)
		}
		if j, dup := seen[f.Label()]; dup {
			return fmt.Errorf("%w: features[%d]: %s duplicates features[%d]", ErrInvalidConfig, i, f.Label(), j)
		}
		seen[f.Label()] = i
	}
	return c.Output.validate()
}

func (f FeatureConfig) validate() error {
	if _, err := features.Lookup(f.Name); err != nil {
		return fmt.Errorf("name: %w (known: %s)", err, strings.Join(features.Names(), ", "))
	}
	if _, err := morph.ParseTreeType(f.NeuriteType); err != nil {
		return fmt.Errorf("neurite_type: %w", err)
	}
	if _, err := f.Family(); err != nil {
		return fmt.Errorf("distribution: %w", err)
	}
	if f.Direction < morph.FirstDirection || f.Direction > morph.ThirdDirection {
		return fmt.Errorf("direction: %w: %d", morph.ErrUnknownDirection, int(f.Direction))
	}
	if f.MinBound != nil && f.MaxBound != nil && *f.MinBound > *f.MaxBound {
		return fmt.Errorf("min_bound %v exceeds max_bound %v", *f.MinBound, *f.MaxBound)
	}
	return nil
}

func (o OutputConfig) validate() error {
	if !slices.Contains([]string{"json", "yaml"}, strings.ToLower(o.Format)) {
		return fmt.Errorf("%w: output.format %q is not json or yaml", ErrInvalidConfig, o.Format)
	}
	return nil
}

// TreeType returns the parsed neurite type.
func (f FeatureConfig) TreeType() morph.TreeType {
	t, err := morph.ParseTreeType(f.NeuriteType)
	if err != nil {
		return morph.All
	}
	return t
}

// Family returns the family to fit, or "" when the best family should be
// searched for.
func (f FeatureConfig) Family() (stats.Family, error) {
	if strings.EqualFold(strings.TrimSpace(f.Distribution), DistributionOptimal) {
		return "", nil
	}
	fam, err := stats.ParseFamily(f.Distribution)
	if err != nil {
		return "", err
	}
	if fam == "" {
		return "", nil
	}
	return fam, nil
}

// Optimal reports whether the feature fits the best family.
func (f FeatureConfig) Optimal() bool {
	fam, err := f.Family()
	return err == nil && fam == ""
}

// Variant names the options that change what a feature measures:
// "start_point" for section_path_distances measured to section starts, and
// the direction name for principal_direction_extents. Options a feature
// ignores give "".
func (f FeatureConfig) Variant() string {
	switch f.Name {
	case "section_path_distances":
		if f.UseStartPoint {
			return "start_point"
		}
	case "principal_direction_extents":
		return f.Direction.String()
	}
	return ""
}

// Label names the feature, its neurite type and its variant, e.g.
// section_lengths/axon or principal_direction_extents/all/second.
func (f FeatureConfig) Label() string {
	label := f.Name + "/" + f.TreeType().String()
	if v := f.Variant(); v != "" {
		label += "/" + v
	}
	return label
}

// InputFiles expands Inputs into file paths. Patterns are globbed; results
// keep pattern order and duplicates are dropped. A pattern matching nothing
// is logged and skipped; no files at all is an error.
func (c *Config) InputFiles() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, in := range c.Inputs {
		pattern := in
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(c.Dir(), pattern)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: inputs pattern %q: %w", ErrInvalidConfig, in, err)
		}
		if len(matches) == 0 {
			logger.Warnf("input pattern %q matched no files", in)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: inputs matched no files", ErrInvalidConfig)
	}
	return files, nil
}
