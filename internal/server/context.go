package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/teemow/meetbridge/internal/config"
	"github.com/teemow/meetbridge/internal/instrumentation"
	"github.com/teemow/meetbridge/internal/llm"
	"github.com/teemow/meetbridge/internal/schedule"
)

// ServerContext holds the process-wide dependencies for the HTTP handlers.
// It is constructed once at startup and injected into every handler; the
// text-generation client is reached only through the llm.Completer
// interface so tests can substitute a stub.
type ServerContext struct {
	ctx       context.Context
	cancel    context.CancelFunc
	config    *config.Config
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
	extractor *schedule.Extractor
	suggester *schedule.Suggester
	mu        sync.RWMutex
	shutdown  bool
}

// NewServerContext creates a new server context around the given completer.
func NewServerContext(ctx context.Context, cfg *config.Config, completer llm.Completer, logger *slog.Logger) *ServerContext {
	if logger == nil {
		logger = slog.Default()
	}
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		config: cfg,
		logger: logger,
	}
	sc.extractor = schedule.NewExtractor(sc.measured(completer, instrumentation.LLMOperationCandidates), logger)
	sc.suggester = schedule.NewSuggester(sc.measured(completer, instrumentation.LLMOperationSubject), logger)
	return sc
}

// measuredCompleter wraps a Completer with a span and a call metric per
// completion. Metrics are looked up per call so wiring them after startup
// still takes effect.
type measuredCompleter struct {
	sc        *ServerContext
	inner     llm.Completer
	operation string
}

func (sc *ServerContext) measured(completer llm.Completer, operation string) llm.Completer {
	return &measuredCompleter{sc: sc, inner: completer, operation: operation}
}

func (m *measuredCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	ctx, span := instrumentation.StartLLMSpan(ctx, m.operation)
	defer span.End()

	text, err := m.inner.Complete(ctx, prompt)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}

	if metrics := m.sc.Metrics(); metrics != nil {
		metrics.RecordLLMRequest(ctx, m.operation, status, time.Since(start))
	}

	return text, err
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the application configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.config
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Extractor returns the candidate extractor.
func (sc *ServerContext) Extractor() *schedule.Extractor {
	return sc.extractor
}

// Suggester returns the subject suggester.
func (sc *ServerContext) Suggester() *schedule.Suggester {
	return sc.suggester
}

// Metrics returns the metrics recorder, which may be nil when
// instrumentation is not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics attaches a metrics recorder to the context.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// IsShutdown returns whether the context has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. It is safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
