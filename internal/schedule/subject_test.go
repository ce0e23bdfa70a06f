package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teemow/meetbridge/internal/llm"
)

func TestIsGenericSubject(t *testing.T) {
	tests := []struct {
		subject string
		generic bool
	}{
		{"", true},
		{"確認", true},
		{"ご確認", true},
		{"打ち合わせ", true},
		{"Re:", true},
		{"RE:", true},
		{"(no subject)", true},
		{"Meeting", true},
		{"  確認  ", true},
		{"来週の製品デモの日程調整", false},
		{"Q3 planning session", false},
		{"Re: Q3 planning session", false},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.generic, IsGenericSubject(tt.subject))
		})
	}
}

func TestSuggesterSuggest(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		err      error
		expected string
	}{
		{
			name:     "trimmed completion returned",
			text:     "  製品デモの日程について  ",
			expected: "製品デモの日程について",
		},
		{
			name:     "only first line kept",
			text:     "Demo scheduling\nHere is some explanation the model added.",
			expected: "Demo scheduling",
		},
		{
			name:     "call failure falls back to default",
			err:      &llm.Error{Reason: llm.ReasonTimeout},
			expected: DefaultSubject,
		},
		{
			name:     "blank completion falls back to default",
			text:     "   \n",
			expected: DefaultSubject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &stubCompleter{text: tt.text, err: tt.err}
			suggester := NewSuggester(completer, nil)

			got := suggester.Suggest(context.Background(), "確認", "body text")

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSuggesterPromptCarriesSubjectAndBody(t *testing.T) {
	completer := &stubCompleter{text: "better subject"}
	suggester := NewSuggester(completer, nil)

	suggester.Suggest(context.Background(), "確認", "来週打ち合わせをお願いします")

	assert.Contains(t, completer.lastPrompt, "確認")
	assert.Contains(t, completer.lastPrompt, "来週打ち合わせをお願いします")
}
