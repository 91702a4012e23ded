// Package source validates and locates the source image icons are
// generated from.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when the source path cannot be accessed.
	ErrNotFound = errors.New("source image not found")
	// ErrUnsupportedFormat is returned for extensions outside the allow-list.
	ErrUnsupportedFormat = errors.New("unsupported source image format")
)

// Extensions is the allow-list of source extensions (lower case).
var Extensions = []string{".svg", ".png", ".jpg", ".jpeg"}

// ConventionalNames are the files looked for at the project root when no
// source path is given, in order.
var ConventionalNames = []string{"logo.svg", "logo.png"}

// Validate checks that path exists and has a supported extension.
func Validate(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range Extensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions, ", "))
}

// IsVector reports whether path names an SVG file.
func IsVector(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".svg")
}

// Find returns the first conventional source image present under root.
func Find(root string) (string, bool) {
	for _, name := range ConventionalNames {
		p := filepath.Join(root, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}
	return "", false
}
