// Package brand renders the application's own icon from an embedded SVG.
package brand

import (
	"bytes"
	_ "embed"
	"image"

	"github.com/Mavwarf/favicon/internal/raster"
)

//go:embed logo.svg
var logoSVG []byte

// SVG returns the embedded logo source.
func SVG() []byte {
	return bytes.Clone(logoSVG)
}

// Draw rasterizes the logo at size×size.
func Draw(size int) (image.Image, error) {
	img, err := raster.RasterizeSVG(bytes.NewReader(logoSVG), size)
	if err != nil {
		return nil, err
	}
	return raster.Contain(img, size), nil
}

// ICO renders the logo at size×size wrapped in an ICO container, the
// format Windows tray icons require.
func ICO(size int) ([]byte, error) {
	img, err := Draw(size)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := raster.EncodeICO(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
