package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with a field-oriented helper
type Logger struct {
	*slog.Logger
}

// NewLogger creates a logger writing to stdout.
// Development uses human-readable text at debug level, production uses JSON at info level.
func NewLogger(isDevelopment bool) *Logger {
	return NewLoggerWithWriter(os.Stdout, isDevelopment)
}

// NewLoggerWithWriter creates a logger writing to w
func NewLoggerWithWriter(w io.Writer, isDevelopment bool) *Logger {
	var handler slog.Handler
	if isDevelopment {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewDiscardLogger returns a logger that drops everything. Useful in tests.
func NewDiscardLogger() *Logger {
	return NewLoggerWithWriter(io.Discard, false)
}

// WithFields returns a child logger carrying the given fields
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{Logger: l.Logger.With(args...)}
}
