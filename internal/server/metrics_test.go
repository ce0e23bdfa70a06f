package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/meetbridge/internal/instrumentation"
)

func TestNewMetricsServerRequiresProvider(t *testing.T) {
	_, err := NewMetricsServer(MetricsServerConfig{Addr: ":9090"})
	assert.Error(t, err)
}

func TestNewMetricsServerRejectsDisabledProvider(t *testing.T) {
	cfg := instrumentation.DefaultConfig()
	cfg.Enabled = false

	provider, err := instrumentation.NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	_, err = NewMetricsServer(MetricsServerConfig{
		Addr:                    ":9090",
		Enabled:                 true,
		InstrumentationProvider: provider,
	})
	assert.Error(t, err)
}

func TestNewMetricsServerDefaultsAddr(t *testing.T) {
	cfg := instrumentation.DefaultConfig()
	cfg.Enabled = true
	cfg.MetricsExporter = instrumentation.ExporterStdout

	provider, err := instrumentation.NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	srv, err := NewMetricsServer(MetricsServerConfig{
		Enabled:                 true,
		InstrumentationProvider: provider,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultMetricsAddr, srv.Addr())
}
