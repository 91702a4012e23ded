package eventlog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Mavwarf/favicon/internal/paths"
)

// Store abstracts generation history storage. FileStore keeps a flat log
// file, SQLiteStore a database in the same data directory.
type Store interface {
	// Write
	Log(e Entry) error

	// Read
	Entries(limit int) ([]Entry, error)             // oldest first, last N (0 = all)
	EntriesSince(cutoff time.Time) ([]Entry, error) // entries at or after cutoff

	// Maintenance
	Clean(days int) (int, error) // remove entries older than N days, return removed count
	Clear() error                // delete all data

	// Metadata
	Path() string
	Close() error
}

// Open returns the store selected by kind ("file" or "sqlite") inside dir.
// An empty dir means paths.DataDir().
func Open(kind, dir string) (Store, error) {
	if dir == "" {
		dir = paths.DataDir()
	}
	switch kind {
	case "", "file":
		return NewFileStore(filepath.Join(dir, paths.LogFileName)), nil
	case "sqlite":
		return NewSQLiteStore(filepath.Join(dir, paths.DBFileName))
	default:
		return nil, fmt.Errorf("unknown history storage %q", kind)
	}
}
