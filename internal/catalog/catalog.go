// Package catalog holds the fixed table of generated icon assets and the
// generation modes they belong to.
package catalog

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Mode is a resolved generation mode.
type Mode int

const (
	// Traditional writes assets to a static directory and needs manual
	// <link> markup.
	Traditional Mode = iota
	// AppRouter writes assets into a framework's convention directory,
	// where the framework links them automatically.
	AppRouter
)

func (m Mode) String() string {
	switch m {
	case Traditional:
		return "traditional"
	case AppRouter:
		return "app-router"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Format is the encoding of a generated asset.
type Format int

const (
	Raster Format = iota
	LegacyIcon
	Vector
)

func (f Format) String() string {
	switch f {
	case Raster:
		return "raster"
	case LegacyIcon:
		return "legacy-icon"
	case Vector:
		return "vector"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Scope lists the modes an asset is generated for.
type Scope int

const (
	ScopeTraditional Scope = iota
	ScopeAppRouter
	ScopeBoth
)

// Includes reports whether assets with this scope belong to mode m.
func (s Scope) Includes(m Mode) bool {
	switch s {
	case ScopeBoth:
		return true
	case ScopeTraditional:
		return m == Traditional
	case ScopeAppRouter:
		return m == AppRouter
	}
	return false
}

// Asset describes one output file.
type Asset struct {
	Filename string
	Size     int // square edge in pixels; 0 for vector assets
	Format   Format
	Scope    Scope

	Maskable   bool // receives safe-zone padding
	Monochrome bool // vector variant recolored with the accent color
	InManifest bool // listed in the web manifest
}

// MediaType returns the MIME type used for the asset in the manifest.
func (a Asset) MediaType() string {
	switch a.Format {
	case LegacyIcon:
		return "image/x-icon"
	case Vector:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// SizeString returns the manifest size string, e.g. "192x192".
func (a Asset) SizeString() string {
	return fmt.Sprintf("%dx%d", a.Size, a.Size)
}

const (
	// ManifestFile is written in traditional mode only.
	ManifestFile = "manifest.webmanifest"
	// VectorCopyFile receives a verbatim copy of a vector source.
	VectorCopyFile = "icon.svg"
	// PinnedTabFile is the monochrome Safari pinned-tab variant.
	PinnedTabFile = "safari-pinned-tab.svg"
)

var assets = []Asset{
	{Filename: "favicon.ico", Size: 32, Format: LegacyIcon, Scope: ScopeBoth},
	{Filename: VectorCopyFile, Format: Vector, Scope: ScopeBoth},
	{Filename: "icon-192.png", Size: 192, Format: Raster, Scope: ScopeTraditional, InManifest: true},
	{Filename: "icon-512.png", Size: 512, Format: Raster, Scope: ScopeTraditional, InManifest: true},
	{Filename: "apple-touch-icon.png", Size: 180, Format: Raster, Scope: ScopeTraditional},
	{Filename: "icon-mask.png", Size: 512, Format: Raster, Scope: ScopeTraditional, Maskable: true, InManifest: true},
	{Filename: PinnedTabFile, Format: Vector, Scope: ScopeTraditional, Monochrome: true},
	{Filename: "apple-icon.png", Size: 180, Format: Raster, Scope: ScopeAppRouter},
	{Filename: "icon.png", Size: 512, Format: Raster, Scope: ScopeAppRouter},
}

// All returns a copy of the full catalog in declaration order.
func All() []Asset {
	out := make([]Asset, len(assets))
	copy(out, assets)
	return out
}

// ForMode returns the assets generated in mode m.
func ForMode(m Mode) []Asset {
	return lo.Filter(assets, func(a Asset, _ int) bool {
		return a.Scope.Includes(m)
	})
}

// Bitmaps returns the raster and legacy-icon assets for mode m, the ones
// produced by resizing the source.
func Bitmaps(m Mode) []Asset {
	return lo.Filter(ForMode(m), func(a Asset, _ int) bool {
		return a.Format != Vector
	})
}

// ManifestAssets returns the assets listed in the web manifest.
func ManifestAssets() []Asset {
	return lo.Filter(assets, func(a Asset, _ int) bool {
		return a.InManifest
	})
}

// Lookup finds an asset by filename.
func Lookup(name string) (Asset, bool) {
	return lo.Find(assets, func(a Asset) bool {
		return strings.EqualFold(a.Filename, name)
	})
}

// TraditionalFiles returns every filename a complete traditional run
// produces, manifest included.
func TraditionalFiles() []string {
	names := lo.Map(ForMode(Traditional), func(a Asset, _ int) string {
		return a.Filename
	})
	return append(names, ManifestFile)
}
