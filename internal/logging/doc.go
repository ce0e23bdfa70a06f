// Package logging provides structured logging helpers built on log/slog.
//
// It defines canonical attribute keys used across the codebase so that log
// entries stay consistent and greppable, plus helpers for logging errors and
// for anonymizing email addresses before they reach the logs.
package logging
