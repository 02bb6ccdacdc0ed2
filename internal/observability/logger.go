// Package observability wires structured logging and Prometheus metrics for
// the bundle generator.
package observability

import (
	"io"
	"log/slog"
)

// NewLogger creates a slog logger writing to w in the requested format
// ("json" or "text") at the given level.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
