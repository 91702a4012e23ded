// Package cooldown throttles completion hooks per output directory so a
// burst of regenerations in watch mode notifies once.
package cooldown

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/favicon/internal/paths"
)

// stateTTL bounds how long recorded timestamps are kept.
const stateTTL = 24 * time.Hour

// Active reports whether key fired less than seconds ago. A missing or
// unreadable state file counts as "not on cooldown".
func Active(key string, seconds int) bool {
	return active(statePath(), key, seconds, time.Now())
}

// Record stores the current time for key. Errors are printed to stderr
// and never fatal.
func Record(key string) {
	if err := record(statePath(), key, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cooldown: %v\n", err)
	}
}

func load(path string) map[string]time.Time {
	state := map[string]time.Time{}
	data, err := os.ReadFile(path)
	if err != nil {
		return state
	}
	_ = json.Unmarshal(data, &state) // corrupt state is overwritten
	return state
}

func active(path, key string, seconds int, now time.Time) bool {
	if seconds <= 0 {
		return false
	}
	last, ok := load(path)[key]
	if !ok {
		return false
	}
	return now.Sub(last) < time.Duration(seconds)*time.Second
}

func record(path, key string, now time.Time) error {
	state := load(path)
	for k, t := range state {
		if now.Sub(t) > stateTTL {
			delete(state, k)
		}
	}
	state[key] = now.UTC().Truncate(time.Second)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return paths.AtomicWrite(path, data)
}

func statePath() string {
	return filepath.Join(paths.DataDir(), paths.CooldownFileName)
}
