// Package report formats lookup results for output.
// It provides human-readable, JSON, and Markdown writers behind a common
// Writer interface so the command layer can pick a format without caring
// about the destination.
package report
