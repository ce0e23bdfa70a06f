package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	t.Run("nil error produces no attribute", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		logger.Info("test message", Err(nil))

		output := buf.String()
		assert.Contains(t, output, "test message")
		assert.NotContains(t, output, "error=")
	})

	t.Run("non-nil error produces error attribute", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		logger.Info("test message", Err(errors.New("boom")))

		output := buf.String()
		assert.Contains(t, output, "error=boom")
	})
}

func TestAnonymizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{name: "regular address", email: "alice@example.com"},
		{name: "unicode address", email: "太郎@example.jp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed := AnonymizeEmail(tt.email)
			assert.True(t, strings.HasPrefix(hashed, "user:"))
			assert.NotContains(t, hashed, tt.email)
			// Same input must hash to the same value for log correlation
			assert.Equal(t, hashed, AnonymizeEmail(tt.email))
		})
	}

	t.Run("empty email", func(t *testing.T) {
		assert.Equal(t, "", AnonymizeEmail(""))
	})
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "valid email", email: "bob@example.org", expected: "example.org"},
		{name: "no at sign", email: "not-an-email", expected: ""},
		{name: "multiple at signs", email: "a@b@c", expected: ""},
		{name: "empty", email: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractDomain(tt.email))
		})
	}
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))
	assert.Equal(t, "[token:6 chars]", SanitizeToken("secret"))
	assert.NotContains(t, SanitizeToken("sk-abcdef"), "sk-abcdef")
}

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithOperation(logger, "context_intake").Info("handled")

	assert.Contains(t, buf.String(), "operation=context_intake")
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Debug("debug msg", "k", "v")
	adapter.Info("info msg")
	adapter.Warn("warn msg")
	adapter.Error("error msg")

	output := buf.String()
	assert.Contains(t, output, "debug msg")
	assert.Contains(t, output, "info msg")
	assert.Contains(t, output, "warn msg")
	assert.Contains(t, output, "error msg")
	assert.Same(t, logger, adapter.Logger())
}

func TestNewSlogAdapterNilLogger(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter.Logger() == nil {
		t.Error("Expected non-nil logger from nil-initialized adapter")
	}
}
