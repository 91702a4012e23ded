// Package raster loads icon sources and produces the square bitmaps the
// generator writes.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"

	"github.com/Mavwarf/favicon/internal/source"
)

// Maskable safe-zone proportions.
const (
	safeZoneScale = 0.6
	safeZonePad   = 0.2
)

// Load decodes the source at path. Vector sources are rasterized so that
// their longest side is size pixels.
func Load(path string, size int) (image.Image, error) {
	if source.IsVector(path) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return RasterizeSVG(f, size)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// RasterizeSVG renders the SVG document in r, preserving its aspect ratio,
// with the longest side equal to size.
func RasterizeSVG(r io.Reader, size int) (image.Image, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid raster size %d", size)
	}
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	w, h := size, size
	if vw, vh := icon.ViewBox.W, icon.ViewBox.H; vw > 0 && vh > 0 {
		if vw > vh {
			h = max(1, int(math.Round(float64(size)*vh/vw)))
		} else if vh > vw {
			w = max(1, int(math.Round(float64(size)*vw/vh)))
		}
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	gv := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(w, h, gv)
	icon.Draw(dasher, 1.0)
	return rgba, nil
}

// Contain scales src to fit inside a size×size square, preserving aspect
// ratio, and centers it on a transparent canvas.
func Contain(src image.Image, size int) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	if b.Empty() || size <= 0 {
		return dst
	}
	scale := math.Min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	newW := max(1, int(math.Round(float64(b.Dx())*scale)))
	newH := max(1, int(math.Round(float64(b.Dy())*scale)))

	offX := (size - newW) / 2
	offY := (size - newH) / 2
	dr := image.Rect(offX, offY, offX+newW, offY+newH)
	xdraw.CatmullRom.Scale(dst, dr, src, b, xdraw.Over, nil)
	return dst
}

// SafeZone returns the inner content size and the minimum transparent
// padding on each side for a maskable icon of the given size.
func SafeZone(size int) (inner, pad int) {
	inner = int(math.Round(float64(size) * safeZoneScale))
	pad = int(math.Floor(float64(size) * safeZonePad))
	return inner, pad
}

// Maskable fits src into the maskable safe zone and centers it on a
// transparent size×size canvas.
func Maskable(src image.Image, size int) *image.NRGBA {
	inner, _ := SafeZone(size)
	content := Contain(src, inner)
	canvas := imaging.New(size, size, color.NRGBA{})
	return imaging.PasteCenter(canvas, content)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// EncodeICO writes img as a single-image ICO container.
func EncodeICO(w io.Writer, img image.Image) error {
	return ico.Encode(w, img)
}
