package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
)

// LogContext holds the run-scoped attributes of one export.
type LogContext struct {
	RunID      string
	ProcessID  string
	Identifier string
	Stage      string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithRunID adds an export run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	lc := extractLogContext(ctx)
	lc.RunID = runID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithProcessID adds the workflow process ID to the context.
func WithProcessID(ctx context.Context, processID string) context.Context {
	lc := extractLogContext(ctx)
	lc.ProcessID = processID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithIdentifier adds the newspaper identifier to the context.
func WithIdentifier(ctx context.Context, identifier string) context.Context {
	lc := extractLogContext(ctx)
	lc.Identifier = identifier
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStage adds a stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := extractLogContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

func extractLogContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

func getLogAttrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	attrs := []slog.Attr{}

	if lc.RunID != "" {
		attrs = append(attrs, logfields.RunID(lc.RunID))
	}
	if lc.ProcessID != "" {
		attrs = append(attrs, logfields.ProcessID(lc.ProcessID))
	}
	if lc.Identifier != "" {
		attrs = append(attrs, logfields.Identifier(lc.Identifier))
	}
	if lc.Stage != "" {
		attrs = append(attrs, logfields.Stage(lc.Stage))
	}
	return attrs
}

// InfoContext logs an info message with context information.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelInfo, msg, append(getLogAttrs(ctx), attrs...)...)
}

// WarnContext logs a warning message with context information.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelWarn, msg, append(getLogAttrs(ctx), attrs...)...)
}

// ErrorContext logs an error message with context information.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelError, msg, append(getLogAttrs(ctx), attrs...)...)
}

// DebugContext logs a debug message with context information.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelDebug, msg, append(getLogAttrs(ctx), attrs...)...)
}

// GetContext returns the structured log context from the provided context.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}
