package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/slavakukuyev/elevator-go/internal/domain"
	"github.com/slavakukuyev/elevator-go/internal/stats"
)

// ResultsDatetime formats the current time as the ISO-8601 datetime used in
// results filenames.
func ResultsDatetime() string {
	return time.Now().UTC().Format("2006-01-02T15-04-05Z")
}

// Result is one settings' aggregated outcome, matching the results-file
// record shape: inputs plus aggregated stats and, when enabled, the raw
// per-iteration distributions.
type Result struct {
	Name           string  `json:"name"`
	AlgorithmName  string  `json:"algorithm_name"`
	Seed           uint64  `json:"seed"`
	Speed          float64 `json:"speed"`
	Floors         int     `json:"floors"`
	NumElevators   int     `json:"num_elevators"`
	NumLoads       int     `json:"num_loads"`
	TotalIterations int    `json:"total_iterations"`

	Stats StatsBlock `json:"stats"`

	// FailedIterations counts jobs that ended in a TestTimeout (or other
	// job-level error) and were excluded from Stats; not part of the
	// results-file contract but useful for a human skimming the file.
	FailedIterations int `json:"failed_iterations,omitempty"`
}

// StatsBlock is the aggregated (and optionally raw) statistics for one
// settings' run across all its successful iterations.
type StatsBlock struct {
	Aggregated stats.Combined  `json:"aggregated"`
	Raw        *RawDistributions `json:"raw,omitempty"`
}

// RawDistributions holds the per-iteration numbers Aggregated was built
// from, included only when the harness is configured with IncludeRawStats.
type RawDistributions struct {
	Ticks      []int             `json:"ticks"`
	WaitTime   []stats.Generated `json:"wait_time"`
	TimeInLift []stats.Generated `json:"time_in_lift"`
	Occupancy  []stats.Generated `json:"occupancy"`
}

// aggregate groups results by settings (preserving settingsList's order) and
// reduces each group's successful iterations to one Result.
func (h *Harness) aggregate(settingsList []TestSettings, results []jobResult) []Result {
	byName := make(map[string][]jobResult, len(settingsList))
	for _, r := range results {
		byName[r.settingsName] = append(byName[r.settingsName], r)
	}

	out := make([]Result, 0, len(settingsList))
	for _, s := range settingsList {
		group := byName[s.Name]

		var ticks []int
		var waitTimes, timesInLift, occupancies []stats.Generated
		failed := 0
		for _, r := range group {
			if r.err != nil {
				failed++
				continue
			}
			ticks = append(ticks, r.ticks)
			waitTimes = append(waitTimes, r.waitTime)
			timesInLift = append(timesInLift, r.timeInLift)
			occupancies = append(occupancies, r.occupancy)
		}

		res := Result{
			Name:            s.Name,
			AlgorithmName:   s.AlgorithmName,
			Seed:            s.Seed,
			Speed:           0, // the harness always runs unpaced, driving ticks back-to-back
			Floors:          s.Floors,
			NumElevators:    s.NumElevators,
			NumLoads:        s.NumPassengers + len(s.PrepopulatedLoads),
			TotalIterations: s.Iterations,
			Stats: StatsBlock{
				Aggregated: stats.Combined{
					Ticks:      stats.CombineTicks(ticks),
					WaitTime:   stats.CombineGenerated(waitTimes),
					TimeInLift: stats.CombineGenerated(timesInLift),
					Occupancy:  stats.CombineGenerated(occupancies),
				},
			},
			FailedIterations: failed,
		}
		if h.cfg.IncludeRawStats {
			res.Stats.Raw = &RawDistributions{
				Ticks:      ticks,
				WaitTime:   waitTimes,
				TimeInLift: timesInLift,
				Occupancy:  occupancies,
			}
		}
		out = append(out, res)
	}
	return out
}

// WriteResultsFile marshals results as a JSON array to
// <resultsDir>/<datetime>.json (datetime is caller-supplied so tests and
// callers stay in control of time formatting; see cmd/harness for the
// ISO-8601 convention).
func WriteResultsFile(resultsDir, datetime string, results []Result) (string, error) {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return "", domain.NewIOFailureError("failed to create results directory", err)
	}
	path := filepath.Join(resultsDir, fmt.Sprintf("%s.json", datetime))
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", domain.NewIOFailureError("failed to marshal results", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", domain.NewIOFailureError("failed to write results file", err)
	}
	return path, nil
}
