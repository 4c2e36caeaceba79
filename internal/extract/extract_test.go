package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/TrevorS/morphstats/internal/config"
	"github.com/TrevorS/morphstats/internal/logger"
	"github.com/TrevorS/morphstats/morph"
	"github.com/TrevorS/morphstats/stats"
)

func loadPopulation(t *testing.T) *morph.Population {
	t.Helper()
	pop, err := morph.LoadPopulation(context.Background(), "fixtures", []string{
		filepath.Join("testdata", "simple.swc"),
		filepath.Join("testdata", "y_shape.swc"),
	}, 2)
	require.NoError(t, err)
	return pop
}

func ptr(v float64) *float64 { return &v }

func TestRun(t *testing.T) {
	pop := loadPopulation(t)
	cfg := &config.Config{Features: []config.FeatureConfig{
		{Name: "section_lengths", NeuriteType: "all", Distribution: "optimal"},
		{Name: "segment_lengths", NeuriteType: "axon", Distribution: "uniform", MinBound: ptr(-5)},
		{Name: "section_path_distances", NeuriteType: "all", Distribution: "norm", MinBound: ptr(0), MaxBound: ptr(10)},
	}}

	dists, err := Run(pop, cfg)
	require.NoError(t, err)
	require.Len(t, dists, 3)

	all := dists[0]
	assert.Equal(t, "section_lengths/all", all.Label())
	assert.Len(t, all.Sample, 9)
	assert.Contains(t, stats.Candidates, all.Fit.Type)

	seg := dists[1]
	assert.Equal(t, morph.Axon, seg.NeuriteType)
	assert.Equal(t, stats.Uniform, seg.Fit.Type)
	lo, _ := seg.Dict.Get("min")
	hi, _ := seg.Dict.Get("max")
	assert.Equal(t, 1.0, lo, "uniform min comes from the sample, not the bound")
	assert.InDelta(t, 1.4142135623730951, hi, 1e-12)

	path := dists[2]
	assert.Equal(t, "normal", path.Dict.Type)
	mx, ok := path.Dict.Get("max")
	require.True(t, ok)
	assert.Equal(t, 10.0, mx)
}

func TestRun_SkipsUnfittableSamples(t *testing.T) {
	pop := loadPopulation(t)
	cfg := &config.Config{Features: []config.FeatureConfig{
		{Name: "local_bifurcation_angles", NeuriteType: "basal_dendrite"},
		{Name: "neurite_number", NeuriteType: "all"},
		{Name: "trunk_section_lengths", NeuriteType: "all", Distribution: "expon"},
	}}

	dists, err := Run(pop, cfg)
	require.NoError(t, err)
	require.Len(t, dists, 1)
	assert.Equal(t, "trunk_section_lengths", dists[0].Feature)
	assert.Equal(t, stats.Exponential, dists[0].Fit.Type)
}

func TestRun_UnknownFeatureAborts(t *testing.T) {
	cfg := &config.Config{Features: []config.FeatureConfig{{Name: "soma_radius"}}}
	_, err := Run(loadPopulation(t), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "soma_radius")
}

func TestDocument(t *testing.T) {
	dists := []Distribution{
		{Feature: "section_lengths", NeuriteType: morph.Axon,
			Dict: stats.ParamDict{Type: "exponential", Params: []stats.NamedParam{{Name: "lambda", Value: 0.5}}}},
		{Feature: "section_lengths", NeuriteType: morph.All,
			Dict: stats.ParamDict{Type: "uniform", Params: []stats.NamedParam{{Name: "min", Value: 1}, {Name: "max", Value: 3}}}},
	}
	doc := NewDocument("cells", dists)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf, "json"))
	var decoded struct {
		Population string                               `json:"population"`
		Features   map[string]map[string]map[string]any `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "cells", decoded.Population)
	assert.Equal(t, "exponential", decoded.Features["section_lengths"]["axon"]["type"])
	assert.Equal(t, 3.0, decoded.Features["section_lengths"]["all"]["max"])

	buf.Reset()
	require.NoError(t, doc.Write(&buf, "yaml"))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, "cells", fromYAML["population"])
	assert.Contains(t, buf.String(), "lambda: 0.5")

	assert.Error(t, doc.Write(&buf, "xml"))
}

func TestRun_FeatureVariantsKeptApart(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(nil) })

	pop := loadPopulation(t)
	cfg := &config.Config{Features: []config.FeatureConfig{
		{Name: "section_path_distances", Distribution: "norm"},
		{Name: "section_path_distances", Distribution: "norm", UseStartPoint: true},
	}}

	dists, err := Run(pop, cfg)
	require.NoError(t, err)
	require.Len(t, dists, 2)
	assert.Equal(t, "section_path_distances/all", dists[0].Label())
	assert.Equal(t, "section_path_distances/all/start_point", dists[1].Label())
	assert.NotEqual(t, dists[0].Fit.Params, dists[1].Fit.Params)

	doc := NewDocument("fixtures", dists)
	require.Len(t, doc.Features["section_path_distances"], 2)
	assert.Equal(t, dists[0].Dict, doc.Features["section_path_distances"]["all"])
	assert.Equal(t, dists[1].Dict, doc.Features["section_path_distances"]["all/start_point"])

	assert.Contains(t, logs.String(), "feature=section_path_distances/all/start_point")
	assert.Contains(t, logs.String(), "family=norm")
	assert.Contains(t, logs.String(), "ks=")
}

func TestDistribution_Label(t *testing.T) {
	d := Distribution{Feature: "principal_direction_extents", NeuriteType: morph.BasalDendrite, Variant: "second"}
	assert.Equal(t, "basal_dendrite/second", d.Key())
	assert.Equal(t, "principal_direction_extents/basal_dendrite/second", d.Label())

	d = Distribution{Feature: "section_lengths", NeuriteType: morph.Axon}
	assert.Equal(t, "axon", d.Key())
	assert.Equal(t, "section_lengths/axon", d.Label())
}
