package schedule

import (
	"strings"
	"time"
)

// TimeLayout is the ISO-8601 layout (seconds precision, no zone) used for
// candidate times throughout the selection flow.
const TimeLayout = "2006-01-02T15:04:05"

// DefaultMeetingDuration is applied when computing the event end time from
// the selected start time.
const DefaultMeetingDuration = 30 * time.Minute

// MeetingContext is the email-derived context for scheduling one meeting.
// It is constructed once per inbound webhook call, is immutable after
// construction, and is discarded after the response is sent.
type MeetingContext struct {
	Subject    string
	Body       string
	From       string
	CC         string // comma-separated addresses
	Candidates []string
	Conflicts  []string
}

// Selection is the user's choice submitted from the selection page.
type Selection struct {
	Selected string
	Subject  string
	Body     string
	From     string
	CC       string
}

// ParseSelected parses an ISO-8601 candidate datetime submitted by the
// user. Malformed values must be rejected here, before any external
// redirect is built from them.
func ParseSelected(value string) (time.Time, error) {
	return time.Parse(TimeLayout, strings.TrimSpace(value))
}

// Attendees builds the attendee list for the event: the sender followed by
// each comma-separated cc address, with surrounding whitespace removed.
func Attendees(from, cc string) []string {
	var attendees []string
	if from = strings.TrimSpace(from); from != "" {
		attendees = append(attendees, from)
	}
	for _, addr := range strings.Split(cc, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			attendees = append(attendees, addr)
		}
	}
	return attendees
}
