package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/eventlog"
)

func historyCmd(g globals, args []string) error {
	cfg, err := config.Load(g.configPath, g.root)
	if err != nil {
		return err
	}
	store, err := eventlog.Open(cfg.Storage, "")
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) > 0 {
		switch args[0] {
		case "summary":
			return historySummary(os.Stdout, store, args[1:])
		case "clear":
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Println("History cleared.")
			return nil
		case "clean":
			return historyClean(store, args[1:])
		}
	}

	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("count must be a positive integer")
		}
		count = n
	}

	entries, err := store.Entries(count)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No history yet. Enable it with --log or \"log\": true in config.")
		return nil
	}
	printEntries(os.Stdout, entries)
	return nil
}

func historyClean(store eventlog.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: favicon history clean <days>")
	}
	days, err := strconv.Atoi(args[0])
	if err != nil || days <= 0 {
		return fmt.Errorf("days must be a positive integer")
	}
	n, err := store.Clean(days)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d %s older than %d days.\n", n, plural(n, "entry", "entries"), days)
	return nil
}

func historySummary(w io.Writer, store eventlog.Store, args []string) error {
	days := 7
	if len(args) > 0 {
		if args[0] == "all" {
			days = 0
		} else {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("days must be a positive integer or \"all\"")
			}
			days = n
		}
	}

	entries, err := store.Entries(0)
	if err != nil {
		return err
	}
	groups := eventlog.SummarizeByDay(entries, days)
	if len(groups) == 0 {
		if days == 0 {
			fmt.Fprintln(w, "No activity found.")
		} else {
			fmt.Fprintln(w, "No activity in the last", days, "days.")
		}
		return nil
	}
	renderSummary(w, groups)
	return nil
}

// --- ANSI color helpers (disabled when NO_COLOR is set or stdout is not a terminal) ---

var noColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))

func ansi(code, s string) string {
	if noColor {
		return s
	}
	return code + s + "\033[0m"
}

func bold(s string) string  { return ansi("\033[1m", s) }
func dim(s string) string   { return ansi("\033[2m", s) }
func green(s string) string { return ansi("\033[32m", s) }
func red(s string) string   { return ansi("\033[31m", s) }

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func printEntries(w io.Writer, entries []eventlog.Entry) {
	for _, e := range entries {
		state := green(e.Status)
		if e.Status == eventlog.StatusError {
			state = red(e.Status)
		}
		fmt.Fprintf(w, "%s  %-11s  %s  %s\n",
			dim(e.Time.Local().Format("2006-01-02 15:04:05")), e.Mode, state, filepath.Base(e.Source))
		if e.Status == eventlog.StatusError {
			fmt.Fprintf(w, "    %s\n", e.Error)
			continue
		}
		fmt.Fprintf(w, "    %d files, %s -> %s\n", e.Files, humanize.Bytes(uint64(e.Bytes)), e.OutputDir)
	}
}

// padL pads s to width with spaces on the left.
func padL(s string, width int) string {
	if pad := width - len(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

func renderSummary(w io.Writer, groups []eventlog.DaySummary) {
	fmt.Fprintln(w, bold(fmt.Sprintf("%-12s%s%s%s%s", "Date", padL("Runs", 7), padL("Failed", 9), padL("Files", 9), padL("Size", 11))))
	var runs, failed, files int
	var size int64
	for _, g := range groups {
		fmt.Fprintf(w, "%-12s%s%s%s%s\n", g.Date.Format("2006-01-02"),
			padL(strconv.Itoa(g.Runs), 7), padL(strconv.Itoa(g.Failed), 9),
			padL(strconv.Itoa(g.Files), 9), padL(humanize.Bytes(uint64(g.Bytes)), 11))
		runs += g.Runs
		failed += g.Failed
		files += g.Files
		size += g.Bytes
	}
	fmt.Fprintln(w, strings.Repeat("-", 48))
	fmt.Fprintf(w, "%-12s%s%s%s%s\n", "Total",
		padL(strconv.Itoa(runs), 7), padL(strconv.Itoa(failed), 9),
		padL(strconv.Itoa(files), 9), padL(humanize.Bytes(uint64(size)), 11))
}
