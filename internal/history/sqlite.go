package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"declutter/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if necessary) a SQLite history database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStore) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS shortcuts (
			key TEXT PRIMARY KEY NOT NULL,
			destination TEXT NOT NULL,
			defined_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS organized_paths (
			id TEXT PRIMARY KEY NOT NULL,
			path TEXT NOT NULL UNIQUE,
			organized_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_organized_paths_path ON organized_paths(path);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the record from the database.
func (s *SQLiteStore) Load() (*Record, error) {
	rec := NewRecord()

	rows, err := s.db.Query(`
		SELECT key, destination
		FROM shortcuts
		ORDER BY defined_at, key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sc model.Shortcut
		if err := rows.Scan(&sc.Key, &sc.Destination); err != nil {
			return nil, err
		}
		rec.SetShortcut(sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT path FROM organized_paths ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		if err := rec.MarkOrganized(path); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Save merges the record into the database in one transaction. Shortcut
// keys upsert; organized paths insert-or-ignore, so repeated saves of the
// same outcome are idempotent.
func (s *SQLiteStore) Save(rec *Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Format(time.RFC3339)

	shortcutStmt, err := tx.Prepare(`
		INSERT INTO shortcuts (key, destination, defined_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET destination = excluded.destination
	`)
	if err != nil {
		return err
	}
	defer shortcutStmt.Close()

	for _, sc := range rec.Shortcuts {
		if _, err := shortcutStmt.Exec(sc.Key, sc.Destination, now); err != nil {
			return err
		}
	}

	pathStmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO organized_paths (id, path, organized_at)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer pathStmt.Close()

	for _, p := range rec.OrganizedPaths() {
		if _, err := pathStmt.Exec(uuid.New().String(), p, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}
