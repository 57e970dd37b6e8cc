package history

import (
	"fmt"
	"strings"

	"sitrep/internal/log"
)

// Migration is one versioned schema change.
type Migration struct {
	ID          int
	Description string
	SQL         string
}

// migrations holds every schema change in order. New changes append
// with the next ID; applied versions are tracked in schema_version.
var migrations = []Migration{
	{
		ID:          1,
		Description: "Sessions and per-country snapshots",
		SQL: `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	save_path TEXT NOT NULL,
	player TEXT NOT NULL,
	game_date TEXT NOT NULL,
	total_countries INTEGER NOT NULL,
	active_countries INTEGER NOT NULL,
	event_count INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshots (
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	tag TEXT NOT NULL,
	stability REAL NOT NULL,
	war_support REAL NOT NULL,
	ruling_party TEXT NOT NULL,
	political_power REAL NOT NULL,
	current_focus TEXT NOT NULL,
	focus_progress REAL NOT NULL,
	completed_focuses INTEGER NOT NULL,
	PRIMARY KEY (session_id, tag)
);`,
	},
	{
		ID:          2,
		Description: "Index snapshots by tag for trend queries",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_snapshots_tag ON snapshots(tag);`,
	},
}

// runMigrations applies every migration past the recorded version.
func (s *Store) runMigrations() error {
	if err := s.ensureSchemaVersionTable(); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	current, err := s.currentSchemaVersion()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.ID <= current {
			continue
		}
		log.Debug("applying history migration", "id", migration.ID, "description", migration.Description)
		if err := s.applyMigration(migration); err != nil {
			return fmt.Errorf("apply migration %d: %w", migration.ID, err)
		}
	}
	return nil
}

func (s *Store) ensureSchemaVersionTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

func (s *Store) currentSchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	return version, err
}

// applyMigration runs one migration and records it, in a transaction.
func (s *Store) applyMigration(migration Migration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range strings.Split(migration.SQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("execute %q: %w", firstLine(stmt), err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, migration.ID); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return tx.Commit()
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
