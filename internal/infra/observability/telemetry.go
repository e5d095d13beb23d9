// Package observability wires OpenTelemetry tracing and metering into the
// test harness.
package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Config controls whether telemetry is active and how the service identifies
// itself to whatever global TracerProvider/MeterProvider has been installed.
type Config struct {
	Enabled     bool   `env:"OBSERVABILITY_ENABLED" envDefault:"true"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"elevator-simulator"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// TelemetryProvider exposes a tracer and a meter for the harness to
// instrument jobs with. It does not own export: a global
// TracerProvider/MeterProvider (configured by the process embedding this
// module) receives whatever spans and instruments are created here.
type TelemetryProvider struct {
	config *Config
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
}

// NewTelemetryProvider builds a TelemetryProvider. When disabled, the tracer
// and meter are the package-level otel no-op implementations.
func NewTelemetryProvider(cfg *Config, logger *slog.Logger) (*TelemetryProvider, error) {
	tp := &TelemetryProvider{config: cfg, logger: logger}
	if !cfg.Enabled {
		return tp, nil
	}

	tp.tracer = otel.Tracer(cfg.ServiceName)
	tp.meter = otel.Meter(cfg.ServiceName)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("telemetry provider initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment))

	return tp, nil
}

// Tracer returns the tracer to use for spans around harness jobs.
func (tp *TelemetryProvider) Tracer() trace.Tracer {
	if tp.tracer == nil {
		return otel.Tracer("noop")
	}
	return tp.tracer
}

// Meter returns the meter used for OpenTelemetry metric instruments.
func (tp *TelemetryProvider) Meter() metric.Meter {
	if tp.meter == nil {
		return otel.Meter("noop")
	}
	return tp.meter
}

// StartJobSpan starts a span representing one harness job (one scenario
// iteration run to termination).
func (tp *TelemetryProvider) StartJobSpan(ctx context.Context, jobName string) (context.Context, trace.Span) {
	return tp.Tracer().Start(ctx, "harness.run_job", trace.WithAttributes(
		attribute.String("job.name", jobName),
	))
}
