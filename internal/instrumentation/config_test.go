package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "meetbridge", config.ServiceName)
	assert.True(t, config.Enabled)
	assert.Equal(t, ExporterPrometheus, config.MetricsExporter)
	assert.Equal(t, ExporterNone, config.TracingExporter)
	assert.Equal(t, 0.1, config.TraceSamplingRate)
	assert.Equal(t, "/metrics", config.PrometheusEndpoint)
	assert.False(t, config.DetailedLabels)
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "custom-name")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", ExporterStdout)
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

	config := DefaultConfig()

	assert.Equal(t, "custom-name", config.ServiceName)
	assert.False(t, config.Enabled)
	assert.Equal(t, ExporterStdout, config.MetricsExporter)
	assert.Equal(t, 0.5, config.TraceSamplingRate)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "default config is valid",
			mutate:  func(config *Config) {},
			wantErr: false,
		},
		{
			name:    "sampling rate above one",
			mutate:  func(config *Config) { config.TraceSamplingRate = 1.5 },
			wantErr: true,
		},
		{
			name:    "negative sampling rate",
			mutate:  func(config *Config) { config.TraceSamplingRate = -0.1 },
			wantErr: true,
		},
		{
			name:    "invalid metrics exporter",
			mutate:  func(config *Config) { config.MetricsExporter = "statsd" },
			wantErr: true,
		},
		{
			name:    "invalid tracing exporter",
			mutate:  func(config *Config) { config.TracingExporter = "jaeger" },
			wantErr: true,
		},
		{
			name: "otlp tracing without endpoint",
			mutate: func(config *Config) {
				config.TracingExporter = ExporterOTLP
				config.OTLPEndpoint = ""
			},
			wantErr: true,
		},
		{
			name: "otlp metrics with endpoint",
			mutate: func(config *Config) {
				config.MetricsExporter = ExporterOTLP
				config.OTLPEndpoint = "localhost:4318"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
