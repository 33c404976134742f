// Package history provides SQLite-based storage for past lookups.
// Each successful run appends a record of the URL, the extracted title,
// and the response details, which the history subcommand can list later.
// The database lives in the XDG data directory and failures to record
// are never fatal to a lookup.
package history
