// Package llm wraps the external text-generation service behind a small
// Completer interface.
//
// The rest of the application depends on the interface, not the concrete
// OpenAI-backed client, so handlers can be tested with a stub completer.
// Failures are reported as *Error values carrying a typed Reason; callers
// are expected to apply their documented fallback (empty candidate list,
// default subject) rather than propagate the failure.
package llm
