package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// candidateOption is one selectable meeting time on the selection page.
type candidateOption struct {
	// Value is the raw ISO-8601 datetime submitted back on selection.
	Value string
	// Label is the human-friendly rendering shown to the user.
	Label string
}

// choosePageData carries the meeting context into the selection template.
type choosePageData struct {
	Subject    string
	From       string
	Body       string
	CC         string
	CCDisplay  string
	Candidates []candidateOption
	Conflicts  []string
}

// renderPage executes the named template into a buffer first so a
// rendering failure surfaces as an error instead of a half-written
// response body.
func renderPage(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
