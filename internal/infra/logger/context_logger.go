package logger

import (
	"context"
	"log/slog"
	"os"
)

type ContextKey string

const (
	// Request-scoped keys, following OpenTelemetry semantic conventions
	// with a 'links.' prefix.
	EntryIDKey      ContextKey = "links.entry.id"
	SubmitURLKey    ContextKey = "links.submit.url"
	ArtifactKindKey ContextKey = "links.artifact.kind"
)

// ContextLogger emits per-request log records enriched with whatever
// business context has been attached to the request context.
type ContextLogger struct {
	logger      *slog.Logger
	serviceName string
}

func NewContextLogger(serviceName string) *ContextLogger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}
	handler := slog.NewJSONHandler(os.Stdout, opts)

	return &ContextLogger{
		logger:      slog.New(handler),
		serviceName: serviceName,
	}
}

// WithContext returns a logger with context values extracted and added as fields
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := cl.logger.With("service", cl.serviceName)

	var fields []any

	if entryID := ctx.Value(EntryIDKey); entryID != nil {
		fields = append(fields, string(EntryIDKey), entryID)
	}
	if submitURL := ctx.Value(SubmitURLKey); submitURL != nil {
		fields = append(fields, string(SubmitURLKey), submitURL)
	}
	if kind := ctx.Value(ArtifactKindKey); kind != nil {
		fields = append(fields, string(ArtifactKindKey), kind)
	}

	if len(fields) > 0 {
		logger = logger.With(fields...)
	}

	return logger
}

// WithEntryID adds the ledger entry ID to context for observability
func WithEntryID(ctx context.Context, entryID string) context.Context {
	return context.WithValue(ctx, EntryIDKey, entryID)
}

// WithSubmitURL adds the submitted URL to context for observability
func WithSubmitURL(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, SubmitURLKey, url)
}

// WithArtifactKind adds the requested artifact kind to context for observability
func WithArtifactKind(ctx context.Context, kind string) context.Context {
	return context.WithValue(ctx, ArtifactKindKey, kind)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN", "warning", "WARNING":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
