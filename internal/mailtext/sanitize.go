package mailtext

import (
	"regexp"
	"strings"
)

// Regular expressions for stripping email body artifacts
var (
	// Markup tags like <div>, </p>, <br/> that HTML mail clients leave behind
	tagRegex = regexp.MustCompile(`<[^>]+>`)
)

// Sanitize strips markup tags and byte-order markers from raw email body
// text and trims surrounding whitespace. It is a pure function and
// idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "\uFEFF", "")
	text = tagRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
