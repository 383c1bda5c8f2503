package manybody

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with run-specific context.
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
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRunID adds the run ID to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// LogBuild logs the construction of a model component.
func (l *Logger) LogBuild(ctx context.Context, kind, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"kind", kind,
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "build completed",
			"kind", kind,
			"name", name,
		)
	}
}

// LogDiagonalization logs a full diagonalization.
func (l *Logger) LogDiagonalization(ctx context.Context, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "diagonalization failed",
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "diagonalization completed",
			"dimension", dimension,
		)
	}
}

// LogEvolution logs a time evolution run.
func (l *Logger) LogEvolution(ctx context.Context, dimension int, tmax float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "time evolution failed",
			"dimension", dimension,
			"tmax", tmax,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "time evolution completed",
			"dimension", dimension,
			"tmax", tmax,
		)
	}
}

// LogArtifact logs an artifact write.
func (l *Logger) LogArtifact(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "artifact write failed",
			"artifact", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "artifact written",
			"artifact", name,
		)
	}
}
