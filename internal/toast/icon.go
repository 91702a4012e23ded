//go:build windows

package toast

import (
	"bytes"
	"path/filepath"

	"github.com/Mavwarf/favicon/internal/brand"
	"github.com/Mavwarf/favicon/internal/paths"
	"github.com/Mavwarf/favicon/internal/raster"
)

const iconFileName = "toast-icon.png"

// EnsureIcon writes a 64×64 PNG of the app logo to DataDir() if it doesn't
// already exist and returns its absolute path.
func EnsureIcon() (string, error) {
	p := filepath.Join(paths.DataDir(), iconFileName)
	if paths.Exists(p) {
		return p, nil
	}
	img, err := brand.Draw(64)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return p, paths.AtomicWrite(p, buf.Bytes())
}
