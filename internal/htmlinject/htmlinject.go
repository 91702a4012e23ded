// Package htmlinject adds the favicon <link> tags to a project's HTML
// entry point.
package htmlinject

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Mavwarf/favicon/internal/catalog"
	"github.com/Mavwarf/favicon/internal/paths"
)

var (
	ErrNotFound          = errors.New("html file not found")
	ErrAlreadyIntegrated = errors.New("favicon links already present")
	ErrNoHeadTag         = errors.New("no <head> tag found")
)

// Candidates are the entry points probed under the project root, in order.
var Candidates = []string{
	"index.html",
	"public/index.html",
	"src/index.html",
	"static/index.html",
	"src/app.html",
	"src/layouts/Layout.astro",
	"app.html",
}

// signatures mark a document that already references the icons.
var signatures = []string{"favicon.ico", "apple-touch-icon"}

var headTag = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)

const indent = "    "

// Status is the result of one integration attempt.
type Status int

const (
	Inserted Status = iota
	AlreadyPresent
	NoHeadTag
)

func (s Status) String() string {
	switch s {
	case Inserted:
		return "inserted"
	case AlreadyPresent:
		return "already-present"
	case NoHeadTag:
		return "no-head-tag"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome describes what Integrate did to the file at Path. Markup holds
// the tags for manual insertion when no head tag was found.
type Outcome struct {
	Status Status
	Path   string
	Markup string
}

// FindEntry returns the first existing candidate under root, or
// root/index.html when none exists.
func FindEntry(root string) string {
	for _, c := range Candidates {
		p := filepath.Join(root, filepath.FromSlash(c))
		if paths.Exists(p) && !paths.IsDir(p) {
			return p
		}
	}
	return filepath.Join(root, Candidates[0])
}

// Integrate inserts the link block right after the <head> tag of the HTML
// file at explicitPath, or of the entry point found under root when
// explicitPath is empty. An empty accent uses the default color.
//
// The file is left untouched when it already references the icons
// (ErrAlreadyIntegrated) or has no head tag (ErrNoHeadTag).
func Integrate(root, explicitPath, accent string) (Outcome, error) {
	if accent == "" {
		accent = paths.DefaultAccent
	}
	path := explicitPath
	if path == "" {
		path = FindEntry(root)
	} else {
		path = paths.Abs(root, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Outcome{Path: path}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Outcome{Path: path}, fmt.Errorf("read %s: %w", path, err)
	}
	doc := string(data)

	for _, sig := range signatures {
		if strings.Contains(doc, sig) {
			return Outcome{Status: AlreadyPresent, Path: path}, ErrAlreadyIntegrated
		}
	}

	loc := headTag.FindStringIndex(doc)
	if loc == nil {
		return Outcome{Status: NoHeadTag, Path: path, Markup: catalog.LinkBlock(accent, "")}, ErrNoHeadTag
	}

	updated := doc[:loc[1]] + "\n" + catalog.LinkBlock(accent, indent) + doc[loc[1]:]
	if err := paths.AtomicWrite(path, []byte(updated)); err != nil {
		return Outcome{Path: path}, fmt.Errorf("write %s: %w", path, err)
	}
	return Outcome{Status: Inserted, Path: path}, nil
}
