// Package config loads the morphstats extraction configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/TrevorS/morphstats/morph"
)

// EnvPrefix prefixes environment overrides, e.g. MORPHSTATS_WORKERS or
// MORPHSTATS_OUTPUT_FORMAT.
const EnvPrefix = "MORPHSTATS"

// DistributionOptimal selects the best fitting family instead of a fixed one.
const DistributionOptimal = "optimal"

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full extraction configuration.
type Config struct {
	// Population names the set of neurons being analysed. Default: the
	// config file name without extension.
	Population string `mapstructure:"population"`

	// Inputs are SWC file paths or glob patterns, relative to the config
	// file's directory unless absolute.
	Inputs []string `mapstructure:"inputs"`

	// Workers bounds concurrent file loading. 0 means one per CPU.
	Workers int `mapstructure:"workers"`

	// LogLevel is debug, info, warn or error. Default: info.
	LogLevel string `mapstructure:"log_level"`

	Features []FeatureConfig `mapstructure:"features"`
	Output   OutputConfig    `mapstructure:"output"`

	// dir is the directory relative inputs are resolved against.
	dir string
}

// FeatureConfig describes one feature to extract and fit.
type FeatureConfig struct {
	// Name is a registered feature name, e.g. section_lengths.
	Name string `mapstructure:"name"`

	// NeuriteType restricts the feature to one tree type. Default: all.
	NeuriteType string `mapstructure:"neurite_type"`

	// Distribution is optimal, norm, expon or uniform. Default: optimal.
	Distribution string `mapstructure:"distribution"`

	MinBound *float64 `mapstructure:"min_bound"`
	MaxBound *float64 `mapstructure:"max_bound"`

	UseStartPoint bool            `mapstructure:"use_start_point"`
	Direction     morph.Direction `mapstructure:"direction"`
}

// OutputConfig controls where results go.
type OutputConfig struct {
	// Format is json or yaml. Default: json.
	Format string `mapstructure:"format"`

	// Path is the output file; empty writes to stdout.
	Path string `mapstructure:"path"`

	// Chart, when set, is the path of an HTML histogram report.
	Chart string `mapstructure:"chart"`

	// Database, when set, is the path of a SQLite results store.
	Database string `mapstructure:"database"`
}

// Load reads the YAML or JSON config at path, applies environment
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("config: path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(abs)
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(abs)
	if cfg.Population == "" {
		cfg.Population = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// Dir returns the directory relative inputs are resolved against.
func (c *Config) Dir() string {
	if c.dir == "" {
		return "."
	}
	return c.dir
}

// SetDir overrides the directory relative inputs are resolved against.
func (c *Config) SetDir(dir string) { c.dir = dir }
