package server

import (
	"net/http"
	"strings"

	"github.com/teemow/meetbridge/internal/instrumentation"
	"github.com/teemow/meetbridge/internal/logging"
	"github.com/teemow/meetbridge/internal/schedule"
)

// displayTimeLayout is the human-friendly candidate rendering on the
// selection page.
const displayTimeLayout = "2006-01-02 (Mon) 15:04"

// HandleChoosePage renders the candidate selection page from the query
// parameters produced by the context intake handler.
func HandleChoosePage(sc *ServerContext) http.HandlerFunc {
	logger := logging.WithHandler(sc.Logger(), "choose_page")

	return func(w http.ResponseWriter, r *http.Request) {
		mc := schedule.MeetingContextFromQuery(r.URL.Query())

		data := choosePageData{
			Subject:   mc.Subject,
			From:      mc.From,
			Body:      mc.Body,
			CC:        mc.CC,
			CCDisplay: strings.Join(schedule.Attendees("", mc.CC), ", "),
			Conflicts: mc.Conflicts,
		}
		for _, candidate := range mc.Candidates {
			data.Candidates = append(data.Candidates, candidateOption{
				Value: candidate,
				Label: formatCandidate(candidate),
			})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderPage(w, "choose.html.tmpl", data); err != nil {
			logger.Error("failed to render selection page", logging.Err(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

// formatCandidate renders an ISO-8601 candidate in a display-friendly
// form. Candidates that do not parse are shown verbatim; validation
// happens on submission, not here.
func formatCandidate(candidate string) string {
	t, err := schedule.ParseSelected(candidate)
	if err != nil {
		return candidate
	}
	return t.Format(displayTimeLayout)
}

// HandleChooseSubmit validates the selected slot and redirects the
// browser into the external calendar composer deep link.
func HandleChooseSubmit(sc *ServerContext) http.HandlerFunc {
	logger := logging.WithHandler(sc.Logger(), "choose_submit")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed form submission", http.StatusBadRequest)
			return
		}

		ctx := r.Context()

		// Reject malformed dates here, before any external redirect is
		// built from them
		start, err := schedule.ParseSelected(r.PostFormValue(schedule.ParamSelected))
		if err != nil {
			logger.Warn("rejecting invalid selected datetime", logging.Err(err))
			if metrics := sc.Metrics(); metrics != nil {
				metrics.RecordComposerRedirect(ctx, instrumentation.StatusError)
			}
			http.Error(w, "selected must be an ISO-8601 datetime (YYYY-MM-DDTHH:MM:SS)", http.StatusBadRequest)
			return
		}
		end := start.Add(sc.Config().MeetingDuration())

		subject := r.PostFormValue(schedule.ParamSubject)
		if subject == "" {
			subject = schedule.DefaultSubject
		}

		sel := schedule.Selection{
			Subject: subject,
			Body:    r.PostFormValue(schedule.ParamBody),
			From:    r.PostFormValue(schedule.ParamFrom),
			CC:      r.PostFormValue(schedule.ParamCC),
		}

		target := schedule.ComposerURL(sc.Config().ComposerBaseURL, sel, start, end)

		if metrics := sc.Metrics(); metrics != nil {
			metrics.RecordComposerRedirect(ctx, instrumentation.StatusSuccess)
		}

		logger.Info("redirecting to calendar composer",
			logging.UserHash(sel.From),
			"start", start.Format(schedule.TimeLayout),
		)

		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}
