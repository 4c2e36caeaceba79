package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/morphstats/internal/extract"
	"github.com/TrevorS/morphstats/morph"
	"github.com/TrevorS/morphstats/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDistributions() []extract.Distribution {
	return []extract.Distribution{
		{
			Feature:     "section_lengths",
			NeuriteType: morph.Axon,
			Fit:         stats.FitResult{Params: []float64{2.5, 0.1}, Errs: []float64{0.05, 0.8}, Type: stats.Exponential},
			Sample:      []float64{1, 2, 3},
		},
		{
			Feature:     "segment_lengths",
			NeuriteType: morph.All,
			Fit:         stats.FitResult{Params: []float64{1, 0.25}, Errs: []float64{0.02, 0.99}, Type: stats.Normal},
			Sample:      []float64{0.8, 1, 1.2, 1.1},
		},
	}
}

func TestSaveRunAndFits(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.SaveRun(ctx, "cells", sampleDistributions())
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "run id should be a uuid")

	fits, err := s.Fits(ctx, id)
	require.NoError(t, err)
	require.Len(t, fits, 2)

	assert.Equal(t, "section_lengths", fits[0].Feature)
	assert.Equal(t, "axon", fits[0].NeuriteType)
	assert.Equal(t, 3, fits[0].SampleSize)
	assert.True(t, fits[0].Result.Equal(sampleDistributions()[0].Fit))

	assert.Equal(t, "all", fits[1].NeuriteType)
	assert.Equal(t, stats.Normal, fits[1].Result.Type)
	assert.Equal(t, []float64{1, 0.25}, fits[1].Result.Params)
}

func TestRuns(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first, err := s.SaveRun(ctx, "a", sampleDistributions())
	require.NoError(t, err)
	second, err := s.SaveRun(ctx, "b", nil)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	pops := map[string]string{runs[0].ID: runs[0].Population, runs[1].ID: runs[1].Population}
	assert.Equal(t, "a", pops[first])
	assert.Equal(t, "b", pops[second])
	assert.False(t, runs[0].CreatedAt.IsZero())

	fits, err := s.Fits(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, fits)
}

func TestFits_UnknownRun(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Fits(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.db")

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.SaveRun(ctx, "cells", sampleDistributions())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	fits, err := s.Fits(ctx, id)
	require.NoError(t, err)
	assert.Len(t, fits, 2)
}

func TestSaveRun_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	dup := sampleDistributions()
	dup = append(dup, dup[0])
	_, err := s.SaveRun(ctx, "cells", dup)
	require.Error(t, err)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSaveRun_Variants(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	fit := stats.FitResult{Params: []float64{3, 1}, Errs: []float64{0.1, 0.5}, Type: stats.Normal}
	dists := []extract.Distribution{
		{Feature: "section_path_distances", NeuriteType: morph.All, Fit: fit, Sample: []float64{1, 2}},
		{Feature: "section_path_distances", NeuriteType: morph.All, Variant: "start_point", Fit: fit, Sample: []float64{0, 1, 2}},
	}
	id, err := s.SaveRun(ctx, "cells", dists)
	require.NoError(t, err)

	fits, err := s.Fits(ctx, id)
	require.NoError(t, err)
	require.Len(t, fits, 2)
	assert.Equal(t, "", fits[0].Variant)
	assert.Equal(t, "start_point", fits[1].Variant)
	assert.Equal(t, 3, fits[1].SampleSize)
}
