package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"
)

const (
	busyTimeoutMS   = 5000
	maxOpenConns    = 1
	maxIdleConns    = 1
	connMaxLifetime = 5 * time.Minute
)

// Store error taxonomy. Reads degrade to empty results when storage is
// unavailable; writes always surface the failure.
var (
	// ErrStorageUnavailable means no persistent storage backend exists
	// in this process (no database was opened). Callers should treat it
	// as "feature unavailable", not as a retryable I/O fault.
	ErrStorageUnavailable = errors.New("persistent storage unavailable")
	// ErrWriteFailed wraps a genuine I/O error during a write.
	ErrWriteFailed = errors.New("write failed")
	// ErrReadFailed wraps a genuine I/O error during a read.
	ErrReadFailed = errors.New("read failed")
)

// Store wraps the SQLite database holding the diary and avatar
// collections. A single handle is opened by the process entry point
// and shared for the process lifetime.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database and applies pending schema
// migrations. Opening an already-migrated database is a no-op on the
// schema; existing collections and rows are never dropped.
func Open(path string) (*Store, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := configureDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// available reports whether a storage backend is attached. A nil or
// unopened Store behaves as an environment without persistence.
func (s *Store) available() bool {
	return s != nil && s.db != nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	if !s.available() {
		return 0, ErrStorageUnavailable
	}
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, readFailed("schema version", err)
	}
	return version, nil
}

func configureDB(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeoutMS),
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// Tune connection pool for local usage.
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	return nil
}

func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("db path is required")
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String(), nil
}

func writeFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrWriteFailed, err)
}

func readFailed(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrReadFailed, err)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}
