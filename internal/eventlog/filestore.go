package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavwarf/favicon/internal/paths"
)

// FileStore implements Store using a flat log file, one line per run.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

func (f *FileStore) Log(e Entry) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = fmt.Fprintln(file, e.Line())
	return err
}

// readAll returns every entry, or nil when the log does not exist yet.
func (f *FileStore) readAll() ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return ParseEntries(string(data)), nil
}

func (f *FileStore) Entries(limit int) ([]Entry, error) {
	entries, err := f.readAll()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func (f *FileStore) EntriesSince(cutoff time.Time) ([]Entry, error) {
	entries, err := f.readAll()
	if err != nil {
		return nil, err
	}
	var filtered []Entry
	for _, e := range entries {
		if !e.Time.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (f *FileStore) Clean(days int) (int, error) {
	entries, err := f.readAll()
	if err != nil || len(entries) == 0 {
		return 0, err
	}

	cutoff := DayCutoff(days)
	var kept []string
	for _, e := range entries {
		if !e.Time.Before(cutoff) {
			kept = append(kept, e.Line())
		}
	}
	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if len(kept) == 0 {
		_ = os.Remove(f.path)
		return removed, nil
	}
	out := strings.Join(kept, "\n") + "\n"
	if err := paths.AtomicWrite(f.path, []byte(out)); err != nil {
		return 0, err
	}
	return removed, nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error {
	return nil
}
