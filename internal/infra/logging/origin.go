package logging

import "log/slog"

// Origin identifies which subsystem produced a log record, matching the
// simulator's four log origins.
type Origin string

const (
	OriginSimulation  Origin = "SIMULATION"
	OriginTest        Origin = "TEST"
	OriginErrorHandler Origin = "ERROR_HANDLER"
	OriginFileHandler  Origin = "FILE_HANDLER"
)

// Attr returns the slog.Attr to attach to a log record so it carries the
// origin and tick dimensions every simulation log record needs.
func (o Origin) Attr(tick int) slog.Attr {
	return slog.Group("record",
		slog.String("origin", string(o)),
		slog.Int("tick", tick),
	)
}

// With returns a child logger pre-bound to this origin and tick, so every
// subsequent record it emits matches the {level, origin, tick, message} shape.
func (o Origin) With(logger *slog.Logger, tick int) *slog.Logger {
	return logger.With(slog.String("origin", string(o)), slog.Int("tick", tick))
}
