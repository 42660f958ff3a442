package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts attrs into the variadic any form slog methods expect.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldResource names the cache resource family (venues, ratings, profile).
	FieldResource = "resource"
	// FieldKey is the cache or entity key involved in an operation.
	FieldKey = "key"
	// FieldVenueID identifies a local venue record.
	FieldVenueID = "venue_id"
	// FieldActorID identifies the anonymous actor.
	FieldActorID = "actor_id"
	// FieldCorrelationID ties workflow log lines to one logical request.
	FieldCorrelationID = "correlation_id"
	// FieldEventType categorizes warnings for downstream filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step after a warning.
	FieldErrorHint = "error_hint"
	// FieldImpact states the user-facing consequence of a degraded operation.
	FieldImpact = "impact"
	// FieldAttempt is the 1-based retry attempt number.
	FieldAttempt = "attempt"
)

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(nopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }
