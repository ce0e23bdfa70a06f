package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// DefaultReadHeaderTimeout bounds time spent reading request headers.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds handler execution including the
	// text-generation call, which dominates intake latency.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the keep-alive idle timeout.
	DefaultIdleTimeout = 120 * time.Second
)

// NewRouter assembles the application routes with their middleware.
func NewRouter(sc *ServerContext, health *HealthChecker) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(Instrumented(sc))

	// The webhook arrives from another origin (the mail-side integration),
	// so the API route carries CORS headers; the browser-facing pages
	// do not need them.
	r.Group(func(r chi.Router) {
		r.Use(CORS(sc.Config().CORSAllowOrigin))
		r.Post("/context", HandleContextIntake(sc))
		// Preflight requests are answered by the CORS middleware; the
		// route only needs to exist for chi to match OPTIONS
		r.Options("/context", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	r.Get("/choose", HandleChoosePage(sc))
	r.Post("/choose", HandleChooseSubmit(sc))

	if health != nil {
		r.Method(http.MethodGet, "/healthz", health.LivenessHandler())
		r.Method(http.MethodGet, "/readyz", health.ReadinessHandler())
		r.Method(http.MethodGet, "/healthz/detailed", health.DetailedHealthHandler())
	}

	return r
}

// WebServer serves the application routes.
type WebServer struct {
	httpServer *http.Server
	addr       string
}

// NewWebServer creates the application HTTP server.
func NewWebServer(addr string, handler http.Handler) *WebServer {
	return &WebServer{
		addr: addr,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			WriteTimeout:      DefaultWriteTimeout,
			IdleTimeout:       DefaultIdleTimeout,
		},
	}
}

// StartWithReadySignal starts the server and closes ready once the
// listener is bound, so callers can confirm startup before proceeding.
func (s *WebServer) StartWithReadySignal(ready chan<- struct{}) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind listener on %s: %w", s.addr, err)
	}

	slog.Info("starting web server", "addr", listener.Addr().String())
	close(ready)
	return s.httpServer.Serve(listener)
}

// Shutdown gracefully shuts down the server.
func (s *WebServer) Shutdown(ctx context.Context) error {
	slog.Info("shutting down web server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *WebServer) Addr() string {
	return s.addr
}
