// Package schedule contains the meeting-scheduling domain logic.
//
// It models the email-derived meeting context, derives candidate meeting
// times and subject lines with the help of a text-generation service, and
// builds the URLs that carry the context through the selection flow into
// an external calendar composer.
//
// All values are request-scoped; nothing in this package holds state
// across requests.
package schedule
