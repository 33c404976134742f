// Package log provides structured logging setup for pagetitle.
// It wraps a standard slog handler to redact credential values, such as
// cookies and Authorization headers loaded from the configuration file,
// before they reach the log output.
package log
