package config

import "github.com/spf13/viper"

const (
	defaultLogLevel     = "info"
	defaultNeuriteType  = "all"
	defaultDistribution = DistributionOptimal
	defaultFormat       = "json"
)

// setDefaults registers every scalar key so environment overrides apply
// even when the file omits it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("population", "")
	v.SetDefault("workers", 0)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("output.format", defaultFormat)
	v.SetDefault("output.path", "")
	v.SetDefault("output.chart", "")
	v.SetDefault("output.database", "")
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Output.Format == "" {
		c.Output.Format = defaultFormat
	}
	for i := range c.Features {
		c.Features[i].applyDefaults()
	}
}

func (f *FeatureConfig) applyDefaults() {
	if f.NeuriteType == "" {
		f.NeuriteType = defaultNeuriteType
	}
	if f.Distribution == "" {
		f.Distribution = defaultDistribution
	}
}
