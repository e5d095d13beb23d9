// Command harness runs a JSON test configuration file's scenarios and
// writes an aggregated results document.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/slavakukuyev/elevator-go/internal/harness"
	"github.com/slavakukuyev/elevator-go/internal/infra/config"
	"github.com/slavakukuyev/elevator-go/internal/infra/logging"
	"github.com/slavakukuyev/elevator-go/internal/infra/observability"
	"github.com/spf13/cobra"
)

// defaultTestFile is used when no positional argument is given.
const defaultTestFile = "testdata/example_tests.json"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harness [test-file.json]",
		Short: "Run elevator scheduling-policy scenarios and report aggregated statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultTestFile
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd.Context(), path)
		},
	}
	return cmd
}

func run(ctx context.Context, path string) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return err
	}
	logging.InitLogger(cfg.LogLevel)
	logger := logging.OriginSimulation.With(slog.Default(), 0)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading test file %q: %w", path, err)
	}

	file, err := harness.LoadTestFile(data)
	if err != nil {
		return fmt.Errorf("loading test file %q: %w", path, err)
	}

	maxProcesses := cfg.MaxWorkerProcesses
	includeRaw := cfg.IncludeRawStats
	exportArtifacts := cfg.ExportArtifacts
	if file.Options.MaxProcesses != 0 {
		maxProcesses = file.Options.MaxProcesses
	}
	if file.Options.IncludeRawStats {
		includeRaw = true
	}
	if file.Options.ExportArtifacts {
		exportArtifacts = true
	}

	telemetry, err := observability.NewTelemetryProvider(&observability.Config{
		Enabled:     cfg.TracingEnabled,
		ServiceName: "elevator-harness",
		Environment: cfg.Environment,
	}, slog.Default())
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	h := harness.New(harness.Config{
		MaxWorkerProcesses: maxProcesses,
		StallTicks:         cfg.StallTicks,
		IncludeRawStats:    includeRaw,
		ExportArtifacts:    exportArtifacts,
		ExportsDir:         cfg.ExportsDir,
	}, slog.Default(), telemetry)

	logger.Info("starting harness run", slog.Int("test_count", len(file.Tests)))

	results, err := h.Run(ctx, file.Tests)
	if err != nil {
		return fmt.Errorf("running tests: %w", err)
	}

	resultsPath, err := harness.WriteResultsFile(cfg.ResultsDir, harness.ResultsDatetime(), results)
	if err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	logger.Info("harness run complete", slog.String("results_path", resultsPath))
	return nil
}
