// Package instrumentation provides OpenTelemetry-based observability for
// the scheduling service.
//
// It wires up metrics and tracing behind a single Provider:
//
//   - Metrics: HTTP request counts/durations, text-generation call
//     counts/durations, context intakes, and composer redirects. Exported
//     via Prometheus (default), OTLP, or stdout.
//   - Tracing: spans for HTTP handlers and text-generation calls.
//     Exported via OTLP or stdout, disabled by default.
//
// Configuration is environment-driven (OTEL_* and METRICS_* variables);
// see Config for the full list. When instrumentation is disabled the
// Provider degrades to no-ops so callers never need nil checks.
package instrumentation
