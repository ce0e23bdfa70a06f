package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/teemow/meetbridge/internal/llm"
	"github.com/teemow/meetbridge/internal/logging"
)

const candidatePrompt = `Extract up to three proposed meeting start times from the email body below.
Answer with the datetimes only, one per line, in ISO-8601 format (YYYY-MM-DDTHH:MM:SS).
Do not add any other text. The email may be written in Japanese.

Email body:
%s`

// Extractor derives candidate meeting times from email free text.
type Extractor struct {
	completer llm.Completer
	logger    *slog.Logger
}

// NewExtractor creates an Extractor using the given completer.
func NewExtractor(completer llm.Completer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		completer: completer,
		logger:    logging.WithOperation(logger, "extract_candidates"),
	}
}

// Candidates asks the text-generation service for candidate meeting times
// and returns the non-empty lines of its answer, trimmed, in order.
//
// A failed call is an expected outcome, not an error: it is logged and an
// empty list is returned. Callers must treat "no candidates" as valid.
func (e *Extractor) Candidates(ctx context.Context, body string) []string {
	text, err := e.completer.Complete(ctx, fmt.Sprintf(candidatePrompt, body))
	if err != nil {
		e.logger.Warn("candidate extraction failed, continuing without candidates",
			logging.Err(err))
		return nil
	}

	return SplitCandidates(text)
}

// SplitCandidates splits completion text into candidate strings: one per
// non-empty line, whitespace trimmed, order preserved. Malformed model
// output is passed through verbatim; validation happens at selection time.
func SplitCandidates(text string) []string {
	var candidates []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			candidates = append(candidates, line)
		}
	}
	return candidates
}
