// Package api provides HTTP routing, handlers, and middleware
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/bookingmx/citygraph/internal/api/reqlog"
	"github.com/bookingmx/citygraph/internal/api/requestid"
)

// statusRecorder remembers the status code written through it
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.status = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Logging writes one line per request. Failed requests are logged at warn
// (4xx) or error (5xx) with the error kind reported by the handler.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ctx, entry := reqlog.NewContext(r.Context())

		next.ServeHTTP(rec, r.WithContext(ctx))

		attrs := []any{
			"request_id", requestid.FromContext(ctx),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		}
		if kind, err := entry.Error(); kind != "" {
			attrs = append(attrs, "error_kind", kind, "error", err)
		}

		switch {
		case rec.status >= http.StatusInternalServerError:
			slog.Error("request failed", attrs...)
		case rec.status >= http.StatusBadRequest:
			slog.Warn("request rejected", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	})
}

// Recovery turns a panic into a JSON 500 response
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				panic(p)
			}

			slog.Error("panic recovered",
				"request_id", requestid.FromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"error", p,
				"stack", string(debug.Stack()),
			)
			writeJSONError(w, http.StatusInternalServerError,
				"Internal server error", "The request could not be completed")
		}()
		next.ServeHTTP(w, r)
	})
}

// CORS adds Cross-Origin Resource Sharing headers
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+requestid.Header)
		h.Set("Access-Control-Expose-Headers", requestid.Header)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Timeout bounds handler run time. Late handlers get a JSON 503.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	body, _ := json.Marshal(map[string]string{
		"error":   "Request timeout",
		"message": "The request took longer than " + duration.String(),
	})
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, duration, string(body))
	}
}

// Chain applies multiple middleware in order (first to last)
func Chain(h http.Handler, middleware ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

func writeJSONError(w http.ResponseWriter, status int, summary, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   summary,
		"message": message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
