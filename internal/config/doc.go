// Package config provides configuration structures and utilities for pagetitle.
// It defines the defaults for fetching, the per-site configuration file
// format, and the data directory used for the lookup history.
package config
