package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, DefaultComposerBaseURL, cfg.ComposerBaseURL)
	assert.Equal(t, 30*time.Minute, cfg.MeetingDuration())
	assert.Equal(t, 15*time.Second, cfg.LLMTimeout())
	assert.Equal(t, "*", cfg.CORSAllowOrigin)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultListen, cfg.Listen)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
listen: ":9000"
base_url: "https://meet.example.com"
composer_base_url: "https://calendar.example.com/compose"
model: "gpt-4o"
meeting_duration_minutes: 45
llm_timeout_seconds: 5
cors_allow_origin: "https://mail.example.com"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "https://meet.example.com", cfg.BaseURL)
	assert.Equal(t, "https://calendar.example.com/compose", cfg.ComposerBaseURL)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 45*time.Minute, cfg.MeetingDuration())
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout())
	assert.Equal(t, "https://mail.example.com", cfg.CORSAllowOrigin)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [not, a, string"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MEETBRIDGE_LISTEN", ":7777")
	t.Setenv("MEETBRIDGE_BASE_URL", "https://env.example.com")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Listen)
	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9000\"\n"), 0o600))
	t.Setenv("MEETBRIDGE_LISTEN", ":7777")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Listen)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.OpenAIAPIKey = "sk-test"
		return cfg
	}

	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing api key fails fast", func(t *testing.T) {
		cfg := valid()
		cfg.OpenAIAPIKey = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("empty listen", func(t *testing.T) {
		cfg := valid()
		cfg.Listen = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero meeting duration", func(t *testing.T) {
		cfg := valid()
		cfg.MeetingDurationMinutes = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative llm timeout", func(t *testing.T) {
		cfg := valid()
		cfg.LLMTimeoutSeconds = -1
		assert.Error(t, cfg.Validate())
	})
}
