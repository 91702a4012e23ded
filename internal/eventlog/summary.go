package eventlog

import (
	"sort"
	"time"
)

// DayCutoff returns midnight N days ago (inclusive) in the local timezone.
// For days=1 it returns today at midnight, for days=7 it returns 6 days ago, etc.
func DayCutoff(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}

// DaySummary aggregates the runs of one calendar day.
type DaySummary struct {
	Date   time.Time
	Runs   int
	Failed int
	Files  int
	Bytes  int64
}

// SummarizeByDay groups entries by local calendar date, newest day
// first. Pass days=0 to include all entries.
func SummarizeByDay(entries []Entry, days int) []DaySummary {
	var cutoff time.Time
	if days > 0 {
		cutoff = DayCutoff(days)
	}
	byDate := map[string]*DaySummary{}
	for _, e := range entries {
		local := e.Time.Local()
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
		if days > 0 && day.Before(cutoff) {
			continue
		}
		key := day.Format("2006-01-02")
		s, ok := byDate[key]
		if !ok {
			s = &DaySummary{Date: day}
			byDate[key] = s
		}
		s.Runs++
		if e.Status == StatusError {
			s.Failed++
			continue
		}
		s.Files += e.Files
		s.Bytes += e.Bytes
	}

	out := make([]DaySummary, 0, len(byDate))
	for _, s := range byDate {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
