package eventlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Entry is one recorded generation run.
type Entry struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"`
	Source    string    `json:"source"`
	OutputDir string    `json:"output_dir"`
	Mode      string    `json:"mode"`
	Files     int       `json:"files"`
	Bytes     int64     `json:"bytes"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
}

// NewEntry starts an entry with a fresh ID and the current time.
func NewEntry(source, outputDir, mode string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Time:      time.Now().Truncate(time.Second),
		Source:    source,
		OutputDir: outputDir,
		Mode:      mode,
		Status:    StatusOK,
	}
}

// Failed marks the entry as failed with err.
func (e *Entry) Failed(err error) {
	e.Status = StatusError
	e.Error = err.Error()
}

// Line renders the entry as a single log line. Free-text fields are
// %q-quoted so they may contain spaces.
func (e Entry) Line() string {
	line := fmt.Sprintf("%s  id=%s  status=%s  mode=%s  files=%d  bytes=%d  source=%q  output=%q",
		e.Time.Format(time.RFC3339), e.ID, e.Status, e.Mode, e.Files, e.Bytes, e.Source, e.OutputDir)
	if e.Error != "" {
		line += fmt.Sprintf("  error=%q", e.Error)
	}
	return line
}

// ParseEntries parses log content, one entry per line. Blank and
// malformed lines are skipped.
func ParseEntries(content string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(content, "\n") {
		if e, ok := ParseLine(line); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// ParseLine parses a line written by Entry.Line.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	ts, ok := ExtractTimestamp(line)
	if !ok {
		return Entry{}, false
	}
	id := extractField(line, "id")
	if id == "" {
		return Entry{}, false
	}
	files, _ := strconv.Atoi(extractField(line, "files"))
	bytes, _ := strconv.ParseInt(extractField(line, "bytes"), 10, 64)
	return Entry{
		ID:        id,
		Time:      ts,
		Source:    extractQuotedField(line, "source"),
		OutputDir: extractQuotedField(line, "output"),
		Mode:      extractField(line, "mode"),
		Files:     files,
		Bytes:     bytes,
		Status:    extractField(line, "status"),
		Error:     extractQuotedField(line, "error"),
	}, true
}

// ExtractTimestamp parses the RFC3339 timestamp at the start of a log line
// (everything before the first "  " double-space separator). Returns the
// parsed time and true on success, or zero time and false on failure.
func ExtractTimestamp(line string) (time.Time, bool) {
	tsEnd := strings.Index(line, "  ")
	if tsEnd < 0 {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, line[:tsEnd])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// extractField returns the value after "key=" in a space-separated line.
// Returns "" if not found.
func extractField(line, key string) string {
	prefix := key + "="
	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, prefix) {
			return field[len(prefix):]
		}
	}
	return ""
}

// extractQuotedField returns the decoded value of key="..." in line.
func extractQuotedField(line, key string) string {
	marker := "  " + key + "=\""
	idx := strings.Index(line, marker)
	if idx < 0 {
		return ""
	}
	return extractQuoted(line[idx+len(marker)-1:])
}

// extractQuoted extracts a Go %q-encoded string from the start of s.
// It finds the matching closing quote (respecting backslash escapes),
// then uses strconv.Unquote to decode the value. Returns "" on failure.
func extractQuoted(s string) string {
	if len(s) == 0 || s[0] != '"' {
		return ""
	}
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == '"' {
			text, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return ""
			}
			return text
		}
	}
	return ""
}
