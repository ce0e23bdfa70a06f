package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/teemow/meetbridge/internal/llm"
	"github.com/teemow/meetbridge/internal/logging"
)

// DefaultSubject is the fixed fallback used when no better subject can be
// derived. Kept in Japanese to match the email traffic this service was
// built for.
const DefaultSubject = "打ち合わせ"

// genericSubjects are placeholder subjects that carry no information about
// the meeting. A matching inbound subject triggers regeneration.
var genericSubjects = map[string]struct{}{
	"":             {},
	"確認":           {},
	"ご確認":          {},
	"打ち合わせ":        {},
	"ご連絡":          {},
	"re:":          {},
	"(no subject)": {},
	"no subject":   {},
	"meeting":      {},
}

// IsGenericSubject reports whether the subject is empty or one of the
// known placeholder subjects.
func IsGenericSubject(subject string) bool {
	_, ok := genericSubjects[strings.ToLower(strings.TrimSpace(subject))]
	return ok
}

const subjectPrompt = `Write one concise subject line for a meeting invitation, based on the
current subject and the email body below. Answer with the subject line only,
in the same language as the email.

Current subject: %s

Email body:
%s`

// Suggester derives a better subject line for generic inbound subjects.
type Suggester struct {
	completer llm.Completer
	logger    *slog.Logger
}

// NewSuggester creates a Suggester using the given completer.
func NewSuggester(completer llm.Completer, logger *slog.Logger) *Suggester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggester{
		completer: completer,
		logger:    logging.WithOperation(logger, "suggest_subject"),
	}
}

// Suggest asks the text-generation service for a one-line subject
// synthesized from the current subject and the email body. On any failure
// it logs the reason and returns DefaultSubject; the failure never reaches
// the caller.
func (s *Suggester) Suggest(ctx context.Context, subject, body string) string {
	text, err := s.completer.Complete(ctx, fmt.Sprintf(subjectPrompt, subject, body))
	if err != nil {
		s.logger.Warn("subject suggestion failed, using default subject",
			logging.Err(err))
		return DefaultSubject
	}

	// Keep only the first line in case the model ignores the one-line ask
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultSubject
	}
	return text
}
