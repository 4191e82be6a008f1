// Package db archives curation sessions and their change logs in SQLite.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ftnpaper/curator/internal/config"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// FileName is the history database file inside the base directory.
const FileName = "history.db"

// Init initializes the SQLite database at baseDir/history.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.ftnpaper.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	// Session snapshots live next to the history.
	editionsDir := filepath.Join(baseDir, "editions")
	if err := os.MkdirAll(editionsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create editions directory: %w", err)
	}
	_ = os.Chmod(editionsDir, 0700)

	dbPath := filepath.Join(baseDir, FileName)
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: sessions and their change log
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS sessions (
		  id            TEXT PRIMARY KEY,
		  source_path   TEXT NOT NULL,
		  output_path   TEXT,
		  front_end     TEXT NOT NULL,
		  started_at    INTEGER NOT NULL,
		  ended_at      INTEGER,
		  change_count  INTEGER NOT NULL DEFAULT 0,
		  saved         INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_started
		ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS changes (
		  session_id  TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		  seq         INTEGER NOT NULL,
		  kind        TEXT NOT NULL,
		  day         INTEGER NOT NULL,
		  story_id    TEXT,
		  message     TEXT NOT NULL,
		  created_at  INTEGER NOT NULL,
		  PRIMARY KEY (session_id, seq)
		);

		CREATE INDEX IF NOT EXISTS idx_changes_kind
		ON changes(kind);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
