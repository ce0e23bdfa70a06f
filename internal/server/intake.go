package server

import (
	"encoding/json"
	"net/http"

	"github.com/teemow/meetbridge/internal/instrumentation"
	"github.com/teemow/meetbridge/internal/logging"
	"github.com/teemow/meetbridge/internal/mailtext"
	"github.com/teemow/meetbridge/internal/schedule"
)

// contextRequest is the inbound webhook payload describing an email and
// optional pre-computed scheduling data.
type contextRequest struct {
	Context struct {
		Email struct {
			Subject string `json:"subject"`
			Body    string `json:"body"`
			From    string `json:"from"`
			CC      string `json:"cc"`
		} `json:"email"`
		Candidates []string `json:"candidates"`
		Conflicts  []string `json:"conflicts"`
	} `json:"context"`
}

// contextResponse acknowledges an accepted context payload.
type contextResponse struct {
	Candidates []string `json:"candidates"`
	UIURL      string   `json:"ui_url"`
}

// errorResponse is the JSON body for client errors on the API surface.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// HandleContextIntake receives the meeting-context payload, derives
// candidates and a subject where needed, and answers with the candidate
// list and the selection-page URL.
//
// Candidate policy: candidates supplied in the payload are preferred and
// passed through in order; only when none are supplied are candidates
// derived from the email body via the text-generation service.
func HandleContextIntake(sc *ServerContext) http.HandlerFunc {
	logger := logging.WithHandler(sc.Logger(), "context_intake")

	return func(w http.ResponseWriter, r *http.Request) {
		var payload contextRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			logger.Warn("rejecting malformed payload", logging.Err(err))
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON payload"})
			return
		}

		email := payload.Context.Email
		body := mailtext.Sanitize(email.Body)
		if body == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "context.email.body is required"})
			return
		}
		if email.From == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "context.email.from is required"})
			return
		}

		ctx := r.Context()

		subject := email.Subject
		subjectSource := instrumentation.SubjectSourceOriginal
		if schedule.IsGenericSubject(subject) {
			subject = sc.Suggester().Suggest(ctx, email.Subject, body)
			subjectSource = instrumentation.SubjectSourceGenerated
			if subject == schedule.DefaultSubject {
				subjectSource = instrumentation.SubjectSourceDefault
			}
		}

		candidates := payload.Context.Candidates
		candidateSource := instrumentation.CandidateSourceSupplied
		if len(candidates) == 0 {
			candidates = sc.Extractor().Candidates(ctx, body)
			candidateSource = instrumentation.CandidateSourceDerived
		}
		if len(candidates) == 0 {
			candidateSource = instrumentation.CandidateSourceNone
		}

		mc := schedule.MeetingContext{
			Subject:    subject,
			Body:       body,
			From:       email.From,
			CC:         email.CC,
			Candidates: candidates,
			Conflicts:  payload.Context.Conflicts,
		}

		uiURL, err := schedule.ChoosePageURL(sc.Config().BaseURL, mc)
		if err != nil {
			logger.Error("failed to assemble selection page URL", logging.Err(err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		if metrics := sc.Metrics(); metrics != nil {
			metrics.RecordContextIntake(ctx, candidateSource, subjectSource, email.From)
		}

		logger.Info("context accepted",
			logging.UserHash(email.From),
			logging.Domain(email.From),
			"candidate_source", candidateSource,
			"subject_source", subjectSource,
			"candidates", len(candidates),
		)

		// The candidates field is always a list in the response, never null
		if candidates == nil {
			candidates = []string{}
		}
		writeJSON(w, http.StatusOK, contextResponse{
			Candidates: candidates,
			UIURL:      uiURL,
		})
	}
}
