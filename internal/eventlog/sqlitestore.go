package eventlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/Mavwarf/favicon/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path, creates
// the schema, and performs one-time migration from history.log if it
// exists in the same directory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT    PRIMARY KEY,
    timestamp   TEXT    NOT NULL,
    source      TEXT    NOT NULL DEFAULT '',
    output_dir  TEXT    NOT NULL DEFAULT '',
    mode        TEXT    NOT NULL DEFAULT '',
    files       INTEGER NOT NULL DEFAULT 0,
    bytes       INTEGER NOT NULL DEFAULT 0,
    status      TEXT    NOT NULL,
    error       TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	logPath := filepath.Join(filepath.Dir(path), paths.LogFileName)
	if _, err := os.Stat(logPath); err == nil {
		if err := s.migrateFromFile(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "eventlog: migration: %v\n", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const insertRun = `INSERT OR IGNORE INTO runs
	(id, timestamp, source, output_dir, mode, files, bytes, status, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (s *SQLiteStore) Log(e Entry) error {
	_, err := s.db.Exec(insertRun,
		e.ID, e.Time.UTC().Format(time.RFC3339), e.Source, e.OutputDir, e.Mode,
		e.Files, e.Bytes, e.Status, e.Error)
	return err
}

const selectRuns = `SELECT id, timestamp, source, output_dir, mode, files, bytes, status, error FROM runs`

func (s *SQLiteStore) Entries(limit int) ([]Entry, error) {
	if limit <= 0 {
		return s.queryEntries(selectRuns + ` ORDER BY rowid`)
	}
	entries, err := s.queryEntries(selectRuns+` ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	return entries, nil
}

func (s *SQLiteStore) EntriesSince(cutoff time.Time) ([]Entry, error) {
	return s.queryEntries(selectRuns+` WHERE timestamp >= ? ORDER BY rowid`, cutoff.UTC().Format(time.RFC3339))
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Source, &e.OutputDir, &e.Mode, &e.Files, &e.Bytes, &e.Status, &e.Error); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			continue
		}
		e.Time = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Clean(days int) (int, error) {
	cutoff := DayCutoff(days).UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`DELETE FROM runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM runs`)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// migrateFromFile imports an existing history.log into the database and
// renames it to history.log.migrated so the import runs once.
func (s *SQLiteStore) migrateFromFile(logPath string) error {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range ParseEntries(string(data)) {
		if _, err := tx.Exec(insertRun,
			e.ID, e.Time.UTC().Format(time.RFC3339), e.Source, e.OutputDir, e.Mode,
			e.Files, e.Bytes, e.Status, e.Error); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return os.Rename(logPath, logPath+".migrated")
}
