// Package model defines the data structures shared across the application.
// It contains the lookup result type produced by a fetch and consumed by
// the report writers and the history store.
package model
