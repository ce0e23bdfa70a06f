package llm

import "fmt"

// Reason classifies why a completion attempt failed.
type Reason string

const (
	// ReasonRequest indicates the upstream call itself failed
	// (network error, quota, non-2xx response).
	ReasonRequest Reason = "request_failed"

	// ReasonTimeout indicates the call exceeded its deadline.
	ReasonTimeout Reason = "timeout"

	// ReasonEmptyResponse indicates the service answered but returned
	// no usable completion.
	ReasonEmptyResponse Reason = "empty_response"
)

// Error is a typed failure from the text-generation service.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("llm: %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}
