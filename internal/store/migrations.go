package store

import (
	"database/sql"
	"fmt"

	"hrconsole/internal/logging"
)

// Schema versions:
// v1: kv table (key, value)
// v2: updated_at column
const CurrentSchemaVersion = 2

// Migration adds a column to an existing table.
type Migration struct {
	Version int
	Table   string
	Column  string
	Def     string
}

var pendingMigrations = []Migration{
	{2, "kv", "updated_at", "DATETIME"},
}

const baseSchema = `
CREATE TABLE IF NOT EXISTS schema_meta (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	version INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value BLOB NOT NULL
);
`

// RunMigrations creates the base schema and applies pending column migrations.
func RunMigrations(db *sql.DB) error {
	timer := logging.StartTimer(logging.CategoryStore, "RunMigrations")
	defer timer.Stop()

	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	version, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range pendingMigrations {
		if m.Version <= version {
			continue
		}
		if columnExists(db, m.Table, m.Column) {
			logging.StoreDebug("Column exists, skipping migration: %s.%s", m.Table, m.Column)
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %s.%s failed: %w", m.Table, m.Column, err)
		}
		logging.Store("Applied migration v%d: %s.%s", m.Version, m.Table, m.Column)
	}

	if _, err := db.Exec(
		"INSERT INTO schema_meta (id, version) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET version = excluded.version",
		CurrentSchemaVersion,
	); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}

// SchemaVersion returns the recorded schema version, 1 for an unversioned database.
func SchemaVersion(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow("SELECT version FROM schema_meta WHERE id = 1").Scan(&v)
	if err == sql.ErrNoRows {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

func columnExists(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			return false
		}
		if name == column {
			return true
		}
	}
	return false
}
