// Package logging builds the process logger and the audit event sink.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/you/laborhub/domain"
)

// New returns a JSON slog logger at the named level ("debug", "info", "warn", "error")
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps a level name to slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// AuditLogger implements domain.AuditLogger by writing one structured
// record per event. Failed events are logged at warn level.
type AuditLogger struct {
	l *slog.Logger
}

// NewAuditLogger creates an audit sink on top of l
func NewAuditLogger(l *slog.Logger) *AuditLogger {
	return &AuditLogger{l: l.With("audit", true)}
}

// LogEvent implements domain.AuditLogger
func (a *AuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	attrs := []any{
		slog.String("event", string(event.EventType)),
		slog.Uint64("user_id", uint64(event.UserID)),
		slog.Bool("success", event.Success),
		slog.Time("ts", event.Timestamp),
	}
	if event.Phone != "" {
		attrs = append(attrs, slog.String("phone", event.Phone))
	}
	if event.TokenID != "" {
		attrs = append(attrs, slog.String("token_id", event.TokenID))
	}
	if event.ErrorMsg != "" {
		attrs = append(attrs, slog.String("error", event.ErrorMsg))
	}
	for k, v := range event.Metadata {
		attrs = append(attrs, slog.Any(k, v))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	a.l.Log(ctx, level, "audit event", attrs...)
}

var _ domain.AuditLogger = (*AuditLogger)(nil)
