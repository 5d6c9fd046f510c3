package store

import (
	"database/sql"
	"fmt"
	"sort"
)

// Migration represents one additive schema migration step. Each step
// is idempotent: all DDL uses IF NOT EXISTS so re-running a step on a
// database that already has its collections succeeds without touching
// existing data.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// migrations is the ordered list of all schema migrations. Versions
// only ever add collections; downgrades are undefined. The pre-history
// avatar generation that embedded media blobs in the record is
// deprecated with no forward migration, so no detection logic exists
// for it here.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema: diary_entries table",
		SQL: `
CREATE TABLE IF NOT EXISTS diary_entries (
  id TEXT PRIMARY KEY,
  text TEXT NOT NULL,
  image_url TEXT NOT NULL,
  created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_diary_entries_created_at ON diary_entries(created_at);
`,
	},
	{
		Version:     2,
		Description: "avatar descriptor table, reference-based media",
		SQL: `
CREATE TABLE IF NOT EXISTS avatar (
  id TEXT PRIMARY KEY,
  file_url TEXT NOT NULL,
  file_name TEXT NOT NULL,
  media_kind TEXT NOT NULL,
  display_name TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`,
	},
}

const migrationsTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  applied_at TEXT NOT NULL
);
`

// ensureMigrationsTable creates the schema_migrations table if it doesn't exist.
func ensureMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(migrationsTableSQL)
	return err
}

// currentVersion returns the highest applied migration version, or 0 if none.
func currentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// runMigrations applies all pending migrations in order.
func runMigrations(db *sql.DB) error {
	if err := ensureMigrationsTable(db); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	current, err := currentVersion(db)
	if err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	for _, m := range sorted {
		if m.Version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version, applied_at) VALUES (?, datetime('now'))", m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
