package eventlog

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEntryLineRoundTrip(t *testing.T) {
	e := NewEntry("/my project/logo.svg", "/my project/public", "traditional")
	e.Files = 8
	e.Bytes = 123456
	e.Failed(errors.New(`write "icon.png": denied`))

	got, ok := ParseLine(e.Line())
	if !ok {
		t.Fatalf("ParseLine failed for %q", e.Line())
	}
	if !got.Time.Equal(e.Time) {
		t.Errorf("Time = %v, want %v", got.Time, e.Time)
	}
	got.Time = e.Time
	if got != e {
		t.Errorf("got  %+v\nwant %+v", got, e)
	}
}

func TestNewEntry(t *testing.T) {
	a := NewEntry("s", "o", "app-router")
	b := NewEntry("s", "o", "app-router")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs not unique: %q %q", a.ID, b.ID)
	}
	if a.Status != StatusOK || a.Error != "" {
		t.Errorf("entry = %+v", a)
	}
	if a.Time.Nanosecond() != 0 {
		t.Error("time not truncated to seconds")
	}
}

func TestParseEntriesSkipsMalformed(t *testing.T) {
	e := NewEntry("a.svg", "public", "traditional")
	content := strings.Join([]string{
		"",
		"garbage",
		"2026-01-01T00:00:00Z  status=ok",
		e.Line(),
		"",
	}, "\n")
	entries := ParseEntries(content)
	if len(entries) != 1 || entries[0].ID != e.ID {
		t.Errorf("entries = %+v", entries)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open("file", dir)
	if err != nil {
		t.Fatal(err)
	}
	if s.Path() != filepath.Join(dir, "history.log") {
		t.Errorf("file path = %q", s.Path())
	}

	s, err = Open("sqlite", dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Path() != filepath.Join(dir, "history.db") {
		t.Errorf("sqlite path = %q", s.Path())
	}

	if _, err := Open("redis", dir); err == nil {
		t.Error("expected error for unknown storage")
	}
}

func TestSummarizeByDay(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	old := now.AddDate(0, 0, -30)
	entries := []Entry{
		{Time: now, Status: StatusOK, Files: 8, Bytes: 100},
		{Time: now, Status: StatusError},
		{Time: yesterday, Status: StatusOK, Files: 4, Bytes: 50},
		{Time: old, Status: StatusOK, Files: 8, Bytes: 100},
	}

	days := SummarizeByDay(entries, 7)
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	if days[0].Runs != 2 || days[0].Failed != 1 || days[0].Files != 8 || days[0].Bytes != 100 {
		t.Errorf("today = %+v", days[0])
	}
	if days[1].Runs != 1 || days[1].Files != 4 {
		t.Errorf("yesterday = %+v", days[1])
	}
	if all := SummarizeByDay(entries, 0); len(all) != 3 {
		t.Errorf("all days = %d, want 3", len(all))
	}
}
