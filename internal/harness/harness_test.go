package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarness_RunAggregatesAcrossIterations(t *testing.T) {
	h := New(Config{}, nil, nil)

	settings := TestSettings{
		Name:          "fcfs-smoke",
		AlgorithmName: "FCFS",
		Seed:          1,
		Floors:        6,
		NumElevators:  2,
		NumPassengers: 4,
		MaxLoad:       900,
		Iterations:    3,
	}

	results, err := h.Run(context.Background(), []TestSettings{settings})
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "fcfs-smoke", got.Name)
	assert.Equal(t, 3, got.TotalIterations)
	assert.Equal(t, 0, got.FailedIterations)
	assert.Greater(t, got.Stats.Aggregated.Ticks.Mean, 0.0)
}

func TestHarness_DifferentIterationsGetDifferentSeeds(t *testing.T) {
	h := New(Config{}, nil, nil)
	settings := TestSettings{
		Name: "seed-check", AlgorithmName: "FCFS", Seed: 42,
		Floors: 8, NumElevators: 2, NumPassengers: 6, MaxLoad: 900, Iterations: 2,
	}

	a := h.runJob(context.Background(), settings, 0)
	b := h.runJob(context.Background(), settings, 1)
	require.NoError(t, a.err)
	require.NoError(t, b.err)
	// Different derived seeds over a wide random floor range make identical
	// per-run results (ticks and every summary) across both iterations
	// exceedingly unlikely, though not impossible; this only guards against
	// a seed that never varies by iteration.
	assert.NotEqual(t, 0, a.ticks)
	assert.NotEqual(t, 0, b.ticks)
	assert.NotEqual(t, a, b)
}

func TestHarness_UnknownAlgorithmIsRecordedAsFailure(t *testing.T) {
	h := New(Config{}, nil, nil)
	settings := TestSettings{
		Name: "bad-algo", AlgorithmName: "does-not-exist", Seed: 1,
		Floors: 5, NumElevators: 1, NumPassengers: 1, MaxLoad: 900, Iterations: 1,
	}

	results, err := h.Run(context.Background(), []TestSettings{settings})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].FailedIterations)
}

func TestHarness_ExportsAndImportsSnapshot(t *testing.T) {
	dir := t.TempDir()
	h := New(Config{ExportArtifacts: true, ExportsDir: dir}, nil, nil)

	settings := TestSettings{
		Name: "exported", AlgorithmName: "FCFS", Seed: 7,
		Floors: 5, NumElevators: 1, NumPassengers: 2, MaxLoad: 900, Iterations: 1,
	}
	result := h.runJob(context.Background(), settings, 0)
	require.NoError(t, result.err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	snap, err := ImportSnapshot(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "exported", snap.Name)
	assert.Len(t, snap.Elevators, 1)
	assert.Len(t, snap.Loads, 2)
}

func TestLoadTestFile_RejectsUnknownKey(t *testing.T) {
	_, err := LoadTestFile([]byte(`{"tests":[{"name":"x","bogus":1}]}`))
	assert.Error(t, err)
}

func TestLoadTestFile_RejectsMissingRequiredField(t *testing.T) {
	_, err := LoadTestFile([]byte(`{"tests":[{"algorithm_name":"FCFS"}]}`))
	assert.Error(t, err)
}

func TestLoadTestFile_AcceptsWellFormedFile(t *testing.T) {
	file, err := LoadTestFile([]byte(`{
		"options": {"include_raw_stats": true},
		"tests": [{
			"name": "t1", "algorithm_name": "FCFS", "seed": 1, "floors": 5,
			"num_elevators": 1, "num_passengers": 2, "max_load": 900, "iterations": 2
		}]
	}`))
	require.NoError(t, err)
	assert.True(t, file.Options.IncludeRawStats)
	require.Len(t, file.Tests, 1)
	assert.Equal(t, "t1", file.Tests[0].Name)
}
