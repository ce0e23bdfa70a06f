package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	attrMethod          = "method"
	attrPath            = "path"
	attrStatus          = "status"
	attrOperation       = "operation"
	attrCandidateSource = "candidate_source"
	attrSubjectSource   = "subject_source"
	attrSenderDomain    = "sender_domain"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Text-generation service metrics
	llmRequestsTotal   metric.Int64Counter
	llmRequestDuration metric.Float64Histogram

	// Scheduling flow metrics
	contextIntakesTotal    metric.Int64Counter
	composerRedirectsTotal metric.Int64Counter

	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// HTTP Metrics
	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	// Text-generation metrics. The upstream call dominates request latency,
	// so buckets skew longer than the HTTP ones.
	m.llmRequestsTotal, err = meter.Int64Counter(
		"llm_requests_total",
		metric.WithDescription("Total number of text-generation service calls"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm_requests_total counter: %w", err)
	}

	m.llmRequestDuration, err = meter.Float64Histogram(
		"llm_request_duration_seconds",
		metric.WithDescription("Text-generation service call duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm_request_duration_seconds histogram: %w", err)
	}

	// Scheduling flow metrics
	m.contextIntakesTotal, err = meter.Int64Counter(
		"context_intakes_total",
		metric.WithDescription("Total number of meeting-context payloads received"),
		metric.WithUnit("{intake}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create context_intakes_total counter: %w", err)
	}

	m.composerRedirectsTotal, err = meter.Int64Counter(
		"composer_redirects_total",
		metric.WithDescription("Total number of redirects into the calendar composer"),
		metric.WithUnit("{redirect}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create composer_redirects_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordLLMRequest records a text-generation service call.
//
// Parameters:
//   - operation: LLMOperationCandidates or LLMOperationSubject
//   - status: StatusSuccess or StatusError
//   - duration: Time taken for the call
func (m *Metrics) RecordLLMRequest(ctx context.Context, operation, status string, duration time.Duration) {
	if m.llmRequestsTotal == nil || m.llmRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.llmRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.llmRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordContextIntake records an accepted meeting-context payload.
//
// Parameters:
//   - candidateSource: CandidateSourceSupplied, CandidateSourceDerived or CandidateSourceNone
//   - subjectSource: SubjectSourceOriginal, SubjectSourceGenerated or SubjectSourceDefault
//   - senderEmail: used only when detailed labels are enabled, reduced to its domain
func (m *Metrics) RecordContextIntake(ctx context.Context, candidateSource, subjectSource, senderEmail string) {
	if m.contextIntakesTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrCandidateSource, candidateSource),
		attribute.String(attrSubjectSource, subjectSource),
	}
	if m.detailedLabels {
		attrs = append(attrs, attribute.String(attrSenderDomain, ExtractUserDomain(senderEmail)))
	}

	m.contextIntakesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordComposerRedirect records an attempted redirect into the calendar
// composer. Status is StatusSuccess for an issued redirect, StatusError
// for a rejected submission.
func (m *Metrics) RecordComposerRedirect(ctx context.Context, status string) {
	if m.composerRedirectsTotal == nil {
		return // Instrumentation not initialized
	}

	m.composerRedirectsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, status),
	))
}

// ExtractUserDomain extracts the domain part from an email address.
// This reduces cardinality by using the domain instead of the full email.
//
// Example:
//
//	ExtractUserDomain("jane@example.com")  // "example.com"
//	ExtractUserDomain("invalid")           // "unknown"
//	ExtractUserDomain("")                  // "unknown"
func ExtractUserDomain(email string) string {
	if email == "" {
		return "unknown"
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}
