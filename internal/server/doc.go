// Package server provides the HTTP surface of the scheduling service.
//
// # Key Components
//
// ServerContext holds the per-process dependencies (configuration, the
// text-generation completer, metrics) and is injected into every handler,
// so nothing is reached through ambient globals and the text-generation
// dependency stays mockable in tests.
//
// The Router wires three application endpoints:
//   - POST /context: receives the inbound meeting-context payload and
//     answers with the candidate list and a selection-page URL
//   - GET /choose: renders the human-facing candidate selection page
//   - POST /choose: validates the chosen slot and redirects the browser
//     into the external calendar composer
//
// HealthChecker serves Kubernetes-style liveness and readiness probes,
// and MetricsServer exposes Prometheus metrics on a dedicated port so
// operational data never shares a listener with user traffic.
package server
