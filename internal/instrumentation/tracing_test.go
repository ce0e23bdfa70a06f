package instrumentation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// newRecordingTracer swaps in an always-sampling tracer provider with an
// in-memory exporter for span assertions.
func newRecordingTracer(t *testing.T) (*tracetest.InMemoryExporter, trace.Tracer) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	return exporter, provider.Tracer(TracerName)
}

func TestGetTraceIDWithoutSpan(t *testing.T) {
	assert.Equal(t, "", GetTraceID(context.Background()))
	assert.Equal(t, "", SpanContextString(context.Background()))
}

func TestGetTraceIDWithSpan(t *testing.T) {
	_, tracer := newRecordingTracer(t)

	ctx, span := tracer.Start(context.Background(), "test-op")
	defer span.End()

	traceID := GetTraceID(ctx)
	assert.NotEmpty(t, traceID)
	assert.Contains(t, SpanContextString(ctx), "trace_id="+traceID)
}

func TestSetSpanError(t *testing.T) {
	exporter, tracer := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "failing-op")
	SetSpanError(span, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Len(t, spans[0].Events, 1, "error should be recorded as a span event")
}

func TestSetSpanErrorNilIsNoop(t *testing.T) {
	exporter, tracer := newRecordingTracer(t)

	_, span := tracer.Start(context.Background(), "ok-op")
	SetSpanError(span, nil)
	SetSpanSuccess(span)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Empty(t, spans[0].Events)
}
