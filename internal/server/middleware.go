package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/teemow/meetbridge/internal/instrumentation"
)

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Instrumented records request metrics and a handler span for every
// request. Route patterns (not raw paths) are used as the path label to
// keep metric cardinality bounded.
func Instrumented(sc *ServerContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx, span := instrumentation.StartHandlerSpan(r.Context(), r.Method+" "+r.URL.Path)
			defer span.End()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r.WithContext(ctx))

			if metrics := sc.Metrics(); metrics != nil {
				metrics.RecordHTTPRequest(ctx, r.Method, routePattern(r), recorder.status, time.Since(start))
			}
		})
	}
}

// routePattern returns the chi route pattern for the request, falling back
// to the raw path when no pattern matched (404s).
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// CORS allows the inbound webhook to be called from another origin. The
// allowed origin is configurable; the original deployment accepted any.
func CORS(allowOrigin string) func(http.Handler) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
