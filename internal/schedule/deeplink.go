package schedule

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultComposerBaseURL is the external calendar web composer consumed as
// a URL contract: it accepts subject, body, startdt, enddt, to and cc
// query parameters.
const DefaultComposerBaseURL = "https://outlook.office.com/calendar/0/deeplink/compose"

// Query parameter names shared by the intake handler (encoding) and the
// selection page handler (decoding). Every value crosses the URL boundary
// percent-encoded exactly once, via url.Values.
const (
	ParamCandidates = "candidates"
	ParamConflicts  = "conflicts"
	ParamSubject    = "subject"
	ParamBody       = "body"
	ParamFrom       = "from"
	ParamCC         = "cc"
	ParamSelected   = "selected"
)

// ChoosePageURL assembles the selection-page URL carrying the full meeting
// context as query parameters. Candidates and conflicts repeat as
// same-named parameters; order is preserved.
func ChoosePageURL(baseURL string, mc MeetingContext) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/choose"

	values := url.Values{}
	for _, candidate := range mc.Candidates {
		values.Add(ParamCandidates, candidate)
	}
	for _, conflict := range mc.Conflicts {
		values.Add(ParamConflicts, conflict)
	}
	values.Set(ParamSubject, mc.Subject)
	values.Set(ParamBody, mc.Body)
	values.Set(ParamFrom, mc.From)
	values.Set(ParamCC, mc.CC)

	u.RawQuery = values.Encode()
	return u.String(), nil
}

// MeetingContextFromQuery reconstructs a MeetingContext from the selection
// page's query parameters. The transport layer has already decoded the
// values, so this is a plain field mapping.
func MeetingContextFromQuery(query url.Values) MeetingContext {
	return MeetingContext{
		Subject:    query.Get(ParamSubject),
		Body:       query.Get(ParamBody),
		From:       query.Get(ParamFrom),
		CC:         query.Get(ParamCC),
		Candidates: query[ParamCandidates],
		Conflicts:  query[ParamConflicts],
	}
}

// ComposerURL builds the external calendar composer deep link for the
// selected meeting slot.
func ComposerURL(baseURL string, sel Selection, start, end time.Time) string {
	values := url.Values{}
	values.Set("subject", sel.Subject)
	values.Set("body", sel.Body)
	values.Set("startdt", start.Format(TimeLayout))
	values.Set("enddt", end.Format(TimeLayout))
	values.Set("to", strings.Join(Attendees(sel.From, sel.CC), ","))
	values.Set("cc", sel.CC)

	return baseURL + "?" + values.Encode()
}
