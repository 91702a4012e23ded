package tmpl

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Vars holds the values available to hook message templates.
type Vars struct {
	Mode   string // resolved mode, e.g. "traditional"
	Output string // output directory
	Source string // source image path
	Count  int    // files written
	Bytes  int64  // total bytes written
	Status string // "ok" or "error"
	Error  string
}

// Default messages used when a hook does not set its own.
const (
	DefaultMessage = "{count} icons generated ({mode}) in {output}"
	FailedMessage  = "icon generation failed for {source}: {error}"
)

// DefaultFor returns the default message for a run with status.
func DefaultFor(status string) string {
	if status == "error" {
		return FailedMessage
	}
	return DefaultMessage
}

// Expand replaces template placeholders in s with runtime values.
// {mode} → mode as-is, {Mode} → title-cased; {size} is humanized bytes.
func Expand(s string, v Vars) string {
	r := strings.NewReplacer(
		"{Mode}", TitleCase(v.Mode),
		"{mode}", v.Mode,
		"{output}", v.Output,
		"{source}", v.Source,
		"{count}", strconv.Itoa(v.Count),
		"{size}", humanize.Bytes(uint64(v.Bytes)),
		"{status}", v.Status,
		"{error}", v.Error,
	)
	return r.Replace(s)
}

// TitleCase uppercases the first byte of s.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
