package kmeans2d

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with kmeans2d-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithStrategy adds a strategy field to the logger.
func (l *Logger) WithStrategy(strategy Strategy) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", strategy.String()),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a point count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("points", count),
	}
}

// LogRunStart logs the start of a run.
func (l *Logger) LogRunStart(ctx context.Context, maxIterations int, tolerance float64) {
	l.InfoContext(ctx, "run started",
		"max_iterations", maxIterations,
		"tolerance", tolerance,
	)
}

// LogIteration logs a completed iteration.
func (l *Logger) LogIteration(ctx context.Context, iteration int, shift float64, emptyClusters int, converged bool) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"shift", shift,
		"empty_clusters", emptyClusters,
		"converged", converged,
	)
}

// LogRunDone logs the end of a run.
func (l *Logger) LogRunDone(ctx context.Context, outcome Outcome, iterations int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"iterations", iterations,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "run completed",
		"outcome", outcome.String(),
		"iterations", iterations,
		"elapsed", elapsed,
	)
}

// LogLoad logs loading a point set.
func (l *Logger) LogLoad(ctx context.Context, source string, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "points loaded",
			"source", source,
			"points", points,
		)
	}
}
