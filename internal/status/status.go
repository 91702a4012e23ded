// Package status reports which generated icon files a project already has.
package status

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/Mavwarf/favicon/internal/catalog"
	"github.com/Mavwarf/favicon/internal/framework"
	"github.com/Mavwarf/favicon/internal/paths"
	"github.com/Mavwarf/favicon/internal/source"
)

// File is the presence of one expected asset.
type File struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// Report is the status of a project root.
type Report struct {
	Root        string `json:"root"`
	Framework   string `json:"framework"`
	StaticDir   string `json:"static_dir"`
	Files       []File `json:"files"`
	SourceFound bool   `json:"source_found"`
	SourcePath  string `json:"source_path,omitempty"`
}

// Check inspects root. It never fails: unreadable paths count as missing.
func Check(root string) Report {
	p := framework.Inspect(root)
	dir := p.StaticDir()
	r := Report{
		Root:      root,
		Framework: p.Name(),
		StaticDir: dir,
	}
	for _, name := range catalog.TraditionalFiles() {
		path := filepath.Join(dir, name)
		r.Files = append(r.Files, File{Name: name, Path: path, Exists: paths.Exists(path)})
	}
	r.SourcePath, r.SourceFound = source.Find(root)
	return r
}

// Missing returns the names of absent files.
func (r Report) Missing() []string {
	return lo.FilterMap(r.Files, func(f File, _ int) (string, bool) {
		return f.Name, !f.Exists
	})
}

// Complete reports whether every expected file exists.
func (r Report) Complete() bool {
	return len(r.Missing()) == 0
}

// String renders the report for terminals.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Framework:  %s\n", r.Framework)
	fmt.Fprintf(&b, "Static dir: %s\n", r.StaticDir)
	if r.SourceFound {
		fmt.Fprintf(&b, "Source:     %s\n", r.SourcePath)
	} else {
		b.WriteString("Source:     not found (looked for logo.svg, logo.png)\n")
	}
	b.WriteString("\n")
	for _, f := range r.Files {
		mark := "missing"
		if f.Exists {
			mark = "ok"
		}
		fmt.Fprintf(&b, "  %-7s  %s\n", mark, f.Name)
	}
	present := len(r.Files) - len(r.Missing())
	fmt.Fprintf(&b, "\n%d/%d files present\n", present, len(r.Files))
	return b.String()
}
