package mailtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text passes through",
			input:    "Let's meet next Wednesday at 3pm.",
			expected: "Let's meet next Wednesday at 3pm.",
		},
		{
			name:     "html tags stripped",
			input:    "<div>Hello <b>there</b></div><br/>",
			expected: "Hello there",
		},
		{
			name:     "leading byte-order marker stripped",
			input:    "\uFEFFお世話になっております。",
			expected: "お世話になっております。",
		},
		{
			name:     "bom inside text stripped",
			input:    "before\uFEFFafter",
			expected: "beforeafter",
		},
		{
			name:     "whitespace trimmed",
			input:    "  \n hello \t ",
			expected: "hello",
		},
		{
			name:     "tags and bom together",
			input:    "\uFEFF<p>15日の15時はいかがでしょうか。</p>\n",
			expected: "15日の15時はいかがでしょうか。",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only markup",
			input:    "<html><body></body></html>",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"<div>body</div>",
		"\uFEFFtext",
		"  padded  ",
		"plain",
		"a < b still fine when no closing bracket",
	}

	for _, input := range inputs {
		once := Sanitize(input)
		twice := Sanitize(once)
		assert.Equal(t, once, twice, "Sanitize must be idempotent for %q", input)
	}
}

func TestSanitizeNoMarkupRemains(t *testing.T) {
	out := Sanitize("<a href=\"http://example.com\">link</a> and <span class='x'>text</span>")
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, ">")
	assert.NotContains(t, out, "\uFEFF")
}
