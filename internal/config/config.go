package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when neither the config file nor the environment
// provides a setting.
const (
	DefaultListen                 = ":8080"
	DefaultBaseURL                = "http://localhost:8080"
	DefaultComposerBaseURL        = "https://outlook.office.com/calendar/0/deeplink/compose"
	DefaultModel                  = "gpt-4o-mini"
	DefaultMeetingDurationMinutes = 30
	DefaultLLMTimeoutSeconds      = 15
	DefaultCORSAllowOrigin        = "*"
)

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the web service.
	Listen string `yaml:"listen"`

	// BaseURL is the public base URL used when assembling the selection
	// page URL returned to webhook callers.
	BaseURL string `yaml:"base_url"`

	// ComposerBaseURL is the external calendar composer the selection
	// submission redirects into.
	ComposerBaseURL string `yaml:"composer_base_url"`

	// Model is the chat model used for candidate extraction and subject
	// suggestion.
	Model string `yaml:"model"`

	// MeetingDurationMinutes is the default event length applied to the
	// selected start time.
	MeetingDurationMinutes int `yaml:"meeting_duration_minutes"`

	// LLMTimeoutSeconds bounds a single text-generation call.
	LLMTimeoutSeconds int `yaml:"llm_timeout_seconds"`

	// CORSAllowOrigin is the Access-Control-Allow-Origin value for the
	// webhook endpoint. The inbound webhook arrives from another origin,
	// so this defaults to "*".
	CORSAllowOrigin string `yaml:"cors_allow_origin"`

	// OpenAIAPIKey authenticates against the text-generation service.
	// Deliberately not read from the config file; set OPENAI_API_KEY.
	OpenAIAPIKey string `yaml:"-"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:                 DefaultListen,
		BaseURL:                DefaultBaseURL,
		ComposerBaseURL:        DefaultComposerBaseURL,
		Model:                  DefaultModel,
		MeetingDurationMinutes: DefaultMeetingDurationMinutes,
		LLMTimeoutSeconds:      DefaultLLMTimeoutSeconds,
		CORSAllowOrigin:        DefaultCORSAllowOrigin,
	}
}

// Load builds the effective configuration: defaults, overlaid with the
// YAML file at path (if it exists), overlaid with environment variables.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration.
func (c *Config) applyEnv() {
	setFromEnv(&c.Listen, "MEETBRIDGE_LISTEN")
	setFromEnv(&c.BaseURL, "MEETBRIDGE_BASE_URL")
	setFromEnv(&c.ComposerBaseURL, "MEETBRIDGE_COMPOSER_BASE_URL")
	setFromEnv(&c.Model, "MEETBRIDGE_MODEL")
	setFromEnv(&c.CORSAllowOrigin, "MEETBRIDGE_CORS_ALLOW_ORIGIN")
	setFromEnv(&c.OpenAIAPIKey, "OPENAI_API_KEY")
}

func setFromEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

// Validate checks that the configuration is usable. The API key check
// happens here so a missing credential fails fast at startup with a clear
// diagnostic instead of failing opaquely on first use.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set; the text-generation service requires an API key")
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL must not be empty")
	}
	if c.ComposerBaseURL == "" {
		return fmt.Errorf("composer base URL must not be empty")
	}
	if c.MeetingDurationMinutes <= 0 {
		return fmt.Errorf("meeting duration must be positive, got %d minutes", c.MeetingDurationMinutes)
	}
	if c.LLMTimeoutSeconds <= 0 {
		return fmt.Errorf("llm timeout must be positive, got %d seconds", c.LLMTimeoutSeconds)
	}
	return nil
}

// MeetingDuration returns the default event length as a time.Duration.
func (c *Config) MeetingDuration() time.Duration {
	return time.Duration(c.MeetingDurationMinutes) * time.Minute
}

// LLMTimeout returns the per-call text-generation deadline as a
// time.Duration.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}
