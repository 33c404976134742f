package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the connection timeout for the fetch. 30 seconds is
	// generous enough for slow servers while still failing in bounded time;
	// the original behavior had no timeout at all, which could hang forever.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for any realistic HTML page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies pagetitle in HTTP requests. Using a
	// descriptive User-Agent is good practice and allows operators to
	// identify the tool's traffic in their logs.
	DefaultUserAgent = "pagetitle/1.0 (+https://github.com/nao1215/pagetitle)"

	// AppName is the application name used for XDG directory paths.
	AppName = "pagetitle"
)

// Config holds all configuration options for pagetitle.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
type Config struct {
	// Target is the URL to fetch, taken verbatim from the command line.
	// No validation or normalization is performed on it.
	Target string

	// Timeout is the connection timeout for the HTTP request.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with the request.
	UserAgent string

	// MaxBodySize is the maximum number of response body bytes to read.
	// A value of 0 means use DefaultMaxBodySize.
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .pagetitle in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds site-specific configurations loaded from the
	// config file.
	SiteConfigs *File

	// JSONReport enables JSON output instead of the human-readable line.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output instead of the human-readable
	// line. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is an optional file path to write the output to.
	// Empty means standard output.
	ReportFile string

	// SaveHistory records the lookup in the local history database.
	SaveHistory bool

	// DataDir is the directory holding the history database.
	DataDir string
}

// NewConfig returns a Config populated with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		SaveHistory: true,
		DataDir:     XDGDataDir(),
	}
}

// Validate checks the configuration for invalid values.
// It returns one of the package sentinel errors on failure.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// XDGDataDir returns the XDG-compliant data directory for pagetitle.
// This is where the lookup history database is stored.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
