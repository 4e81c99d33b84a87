package logging

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ContextKey is a type for context keys
type ContextKey string

const (
	// LoggerContextKey is the key for the logger in the request context
	LoggerContextKey ContextKey = "logger"

	actorContextKey ContextKey = "actor"
)

// actor is filled in by the auth gate once the session is verified, so the
// completion line can name the user even though it is written outside the gate.
type actor struct {
	userID string
}

// RequestLogger logs one completion line per request with the matched chi
// route, the response status and size, and the acting user when authenticated.
// Handlers get a request-scoped logger through GetLoggerFromContext.
func RequestLogger(logger *Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger.WithFields(map[string]any{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"remote_ip":  r.RemoteAddr,
			})
			reqLogger.Debug("request started")

			who := &actor{}
			ctx := context.WithValue(WithLogger(r.Context(), reqLogger), actorContextKey, who)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []any{
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					attrs = append(attrs, "route", pattern)
				}
			}
			if who.userID != "" {
				attrs = append(attrs, "user_id", who.userID)
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			reqLogger.Log(r.Context(), level, "request completed", attrs...)
		})
	}
}

// WithUserID records the authenticated user for the current request. The
// request logger's completion line and every later GetLoggerFromContext call
// carry the id.
func WithUserID(ctx context.Context, userID string) context.Context {
	if who, ok := ctx.Value(actorContextKey).(*actor); ok {
		who.userID = userID
	}
	return WithLogger(ctx, GetLoggerFromContext(ctx).WithFields(map[string]any{"user_id": userID}))
}

// WithLogger stores a logger in ctx
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, LoggerContextKey, logger)
}

// GetLoggerFromContext retrieves the logger from the request context
func GetLoggerFromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	return fallback
}

var fallback = NewLogger(true)
