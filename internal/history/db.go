package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/pagetitle/internal/model"
)

// DB provides SQLite-based storage for lookup history.
// It manages connection pooling and provides methods for recording and
// querying past lookups.
type DB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures DB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ErrNotFound is returned by Open when the database does not exist and
// CreateIfNotExists is false.
var ErrNotFound = errors.New("history database not found")

// Open opens or creates a history DB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, ErrNotFound
// is returned.
func Open(dbDir string, opts Options) (*DB, error) {
	dbPath := filepath.Join(dbDir, "pagetitle.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &DB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *DB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *DB) createTables() error {
	schema := `
	-- Lookup records, one row per run
	CREATE TABLE IF NOT EXISTS lookups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		title TEXT,
		title_found INTEGER NOT NULL DEFAULT 0,
		status_code INTEGER,
		content_type TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_lookups_url ON lookups(url);
	CREATE INDEX IF NOT EXISTS idx_lookups_timestamp ON lookups(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Record represents a stored lookup.
type Record struct {
	// ID is the unique identifier of the lookup in the database.
	ID int64

	// URL is the URL that was fetched.
	URL string

	// Title is the extracted title, empty if none was found.
	Title string

	// TitleFound reports whether a title element was present.
	TitleFound bool

	// StatusCode is the HTTP response status code.
	StatusCode int

	// ContentType is the MIME type of the response.
	ContentType string

	// Timestamp is when the lookup was performed.
	Timestamp time.Time
}

// Save appends a lookup result to the history.
func (hdb *DB) Save(ctx context.Context, result *model.Result) error {
	query := `
	INSERT INTO lookups (url, title, title_found, status_code, content_type, timestamp)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	titleFound := 0
	if result.TitleFound {
		titleFound = 1
	}

	_, err := hdb.db.ExecContext(ctx, query,
		result.URL,
		result.Title,
		titleFound,
		result.StatusCode,
		result.ContentType,
		result.FetchedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to save lookup: %w", err)
	}

	return nil
}

// All returns the most recent lookups, newest first, up to limit.
// A limit of 0 returns all records.
func (hdb *DB) All(ctx context.Context, limit int) ([]Record, error) {
	query := `
	SELECT id, url, title, title_found, status_code, content_type, timestamp
	FROM lookups
	ORDER BY timestamp DESC, id DESC
	`
	args := make([]interface{}, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return hdb.queryRecords(ctx, query, args...)
}

// ForURL returns all lookups for a specific URL, newest first.
func (hdb *DB) ForURL(ctx context.Context, url string) ([]Record, error) {
	query := `
	SELECT id, url, title, title_found, status_code, content_type, timestamp
	FROM lookups
	WHERE url = ?
	ORDER BY timestamp DESC, id DESC
	`

	return hdb.queryRecords(ctx, query, url)
}

// Latest returns the most recent lookup for a URL, or nil if none exists.
func (hdb *DB) Latest(ctx context.Context, url string) (*Record, error) {
	query := `
	SELECT id, url, title, title_found, status_code, content_type, timestamp
	FROM lookups
	WHERE url = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`

	records, err := hdb.queryRecords(ctx, query, url)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// queryRecords runs a lookup query and scans the resulting rows.
func (hdb *DB) queryRecords(ctx context.Context, query string, args ...interface{}) ([]Record, error) {
	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer rows.Close()

	var results []Record
	for rows.Next() {
		var rec Record
		var titleFound int
		var title, contentType sql.NullString
		var timestamp string

		err := rows.Scan(
			&rec.ID,
			&rec.URL,
			&title,
			&titleFound,
			&rec.StatusCode,
			&contentType,
			&timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}

		rec.Title = title.String
		rec.ContentType = contentType.String
		rec.TitleFound = titleFound != 0
		rec.Timestamp = parseTimestamp(timestamp)
		results = append(results, rec)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
