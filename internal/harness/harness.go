// Package harness runs TestSettings across a pool of worker goroutines, each
// driving its own engine to termination, and aggregates the resulting
// per-iteration statistics into cross-run summaries.
package harness

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/slavakukuyev/elevator-go/internal/algorithms"
	"github.com/slavakukuyev/elevator-go/internal/constants"
	"github.com/slavakukuyev/elevator-go/internal/domain"
	"github.com/slavakukuyev/elevator-go/internal/engine"
	"github.com/slavakukuyev/elevator-go/internal/infra/observability"
	"github.com/slavakukuyev/elevator-go/internal/stats"
	simmetrics "github.com/slavakukuyev/elevator-go/metrics"
	"golang.org/x/sync/errgroup"
)

// Config tunes the harness's own behavior, independent of any one
// TestSettings. Zero values fall back to the package defaults below.
type Config struct {
	MaxWorkerProcesses int // 0 = runtime.NumCPU()-1
	StallTicks         int // 0 = constants.StallTicks
	IncludeRawStats    bool
	ExportArtifacts    bool
	ExportsDir         string
}

// Harness runs batches of TestSettings concurrently.
type Harness struct {
	cfg       Config
	logger    *slog.Logger
	telemetry *observability.TelemetryProvider
}

// New builds a harness from cfg. telemetry may be nil, in which case jobs
// run without span instrumentation.
func New(cfg Config, logger *slog.Logger, telemetry *observability.TelemetryProvider) *Harness {
	if logger == nil {
		logger = slog.Default()
	}
	return &Harness{
		cfg:       cfg,
		logger:    logger.With(slog.String("component", constants.ComponentHarness)),
		telemetry: telemetry,
	}
}

// job is one (settings, iteration) pair ready to run.
type job struct {
	settings TestSettings
	iter     int
}

// jobResult is the outcome of one job: either a completed run's per-run
// statistics, or an error (most commonly a stall timeout).
type jobResult struct {
	settingsName string
	ticks        int
	waitTime     stats.Generated
	timeInLift   stats.Generated
	occupancy    stats.Generated
	err          error
}

func (h *Harness) workerLimit(totalJobs int) int {
	limit := h.cfg.MaxWorkerProcesses
	if limit <= 0 {
		limit = runtime.NumCPU() - 1
	}
	if limit < 1 {
		limit = 1
	}
	if totalJobs > 0 && limit > totalJobs {
		limit = totalJobs
	}
	return limit
}

func (h *Harness) stallTicks() int {
	if h.cfg.StallTicks > 0 {
		return h.cfg.StallTicks
	}
	return constants.StallTicks
}

// Run expands every settings' iterations into jobs, runs them across a
// bounded worker pool, and returns one aggregated Result per settings, in
// the same order as settingsList.
func (h *Harness) Run(ctx context.Context, settingsList []TestSettings) ([]Result, error) {
	var jobs []job
	for _, s := range settingsList {
		for i := 0; i < s.Iterations; i++ {
			jobs = append(jobs, job{settings: s, iter: i})
		}
	}

	limit := h.workerLimit(len(jobs))
	results := make([]jobResult, len(jobs))
	var inFlight int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			atomic.AddInt32(&inFlight, 1)
			simmetrics.SetWorkerPoolUtilization(int(atomic.LoadInt32(&inFlight)), limit)
			results[i] = h.runJob(gctx, j.settings, j.iter)
			atomic.AddInt32(&inFlight, -1)
			simmetrics.SetWorkerPoolUtilization(int(atomic.LoadInt32(&inFlight)), limit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return h.aggregate(settingsList, results), nil
}

// runJob builds one fresh engine from settings and iter's derived seed and
// drives it to termination or stall.
func (h *Harness) runJob(ctx context.Context, settings TestSettings, iter int) jobResult {
	simmetrics.JobStarted(settings.Name)

	if h.telemetry != nil {
		_, span := h.telemetry.StartJobSpan(ctx, settings.Name)
		defer span.End()
	}

	seed := (settings.Seed + uint64(iter)) % (uint64(1) << 32)

	eng := engine.New(settings.Floors, settings.MaxLoad, seed, nil, h.logger)
	algo, err := algorithms.DefaultRegistry.New(settings.AlgorithmName, eng)
	if err != nil {
		return jobResult{settingsName: settings.Name, err: err}
	}
	eng.SetAlgorithm(algo)

	for i := 0; i < settings.NumElevators; i++ {
		floor := domain.NewFloor(1 + eng.Intn(settings.Floors))
		eng.AddElevator(floor)
	}

	for _, ls := range settings.PrepopulatedLoads {
		if _, err := eng.AddLoad(ls.Initial, ls.Destination, ls.Weight); err != nil {
			return jobResult{settingsName: settings.Name, err: err}
		}
	}
	for i := 0; i < settings.NumPassengers; i++ {
		src, dst := randomDistinctFloors(eng, settings.Floors)
		if _, err := eng.AddLoad(src, dst, constants.DefaultPersonWeight); err != nil {
			return jobResult{settingsName: settings.Name, err: err}
		}
	}

	if h.cfg.ExportArtifacts {
		if err := h.exportInitialSnapshot(settings, iter, eng); err != nil {
			h.logger.Warn("failed to export initial snapshot", slog.String("error", err.Error()))
		}
	}

	if settings.InitFunction != nil {
		settings.InitFunction(algo)
	}

	stall := h.stallTicks()
	for !eng.Ended() {
		if _, err := eng.Loop(); err != nil {
			return jobResult{settingsName: settings.Name, err: err}
		}
		if settings.OnTick != nil {
			settings.OnTick(algo)
		}
		if eng.TickCount()-eng.LatestLoadMoveTick() > stall {
			simmetrics.JobTimedOut(settings.Name)
			return jobResult{
				settingsName: settings.Name,
				err: domain.NewTestTimeoutError(
					"no load movement for the configured stall window", nil).
					WithContext("name", settings.Name).
					WithContext("iteration", iter).
					WithContext("tick_count", eng.TickCount()),
			}
		}
	}

	simmetrics.JobCompleted(settings.Name)
	return jobResult{
		settingsName: settings.Name,
		ticks:        eng.TickCount(),
		waitTime:     eng.WaitTimes.Summarize(),
		timeInLift:   eng.TimeInLift.Summarize(),
		occupancy:    eng.Occupancy.Summarize(),
	}
}

// randomDistinctFloors picks two floors in [1, floors] using the engine's
// own RNG, so a job's placement is reproducible from its derived seed alone.
func randomDistinctFloors(eng *engine.Engine, floors int) (domain.Floor, domain.Floor) {
	src := domain.NewFloor(1 + eng.Intn(floors))
	dst := domain.NewFloor(1 + eng.Intn(floors))
	for dst == src {
		dst = domain.NewFloor(1 + eng.Intn(floors))
	}
	return src, dst
}
