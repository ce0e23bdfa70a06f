// Package mailtext cleans up free-text email bodies before they are used
// elsewhere in the application.
package mailtext
