// Package cmd implements the command-line interface for meetbridge.
//
// This package provides the following commands:
//   - serve: Start the scheduling web service
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
