// Package generator turns one source image into the icon set of a
// resolved mode, plus the manifest and integration guide.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/Mavwarf/favicon/internal/catalog"
	"github.com/Mavwarf/favicon/internal/paths"
	"github.com/Mavwarf/favicon/internal/raster"
	"github.com/Mavwarf/favicon/internal/source"
)

// ICOEncoder selects how favicon.ico is produced.
type ICOEncoder string

const (
	// ICORename writes PNG data under the .ico name. Browsers accept it,
	// but it is not a real ICO container.
	ICORename ICOEncoder = "rename"
	// ICOContainer writes a real single-image ICO file.
	ICOContainer ICOEncoder = "container"
)

// ParseICOEncoder parses a config or flag value. Empty means ICORename.
func ParseICOEncoder(s string) (ICOEncoder, error) {
	switch ICOEncoder(strings.ToLower(strings.TrimSpace(s))) {
	case "", ICORename:
		return ICORename, nil
	case ICOContainer:
		return ICOContainer, nil
	default:
		return "", fmt.Errorf("invalid ico encoder %q (expected rename or container)", s)
	}
}

// Request describes one generation run. Paths should be absolute.
type Request struct {
	SourcePath  string
	OutputDir   string
	ProjectRoot string
	AccentColor string
	Mode        catalog.Mode
	ICOEncoder  ICOEncoder
}

// WrittenFile is one file produced in the output directory.
type WrittenFile struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

// Result reports what a run produced.
type Result struct {
	Mode      catalog.Mode
	OutputDir string
	Written   []WrittenFile
	Warnings  []string
	GuidePath string
}

// Names returns the written filenames in catalog order.
func (r *Result) Names() []string {
	return lo.Map(r.Written, func(f WrittenFile, _ int) string { return f.Name })
}

// TotalBytes sums the sizes of all written files.
func (r *Result) TotalBytes() int64 {
	return lo.SumBy(r.Written, func(f WrittenFile) int64 { return f.Bytes })
}

// Summary renders the human-readable report shown by every surface.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generated %d files (%s mode) in %s\n", len(r.Written), r.Mode, r.OutputDir)
	width := 0
	for _, f := range r.Written {
		width = max(width, len(f.Name))
	}
	for _, f := range r.Written {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, f.Name, humanize.Bytes(uint64(f.Bytes)))
	}
	fmt.Fprintf(&b, "Total: %s\n", humanize.Bytes(uint64(r.TotalBytes())))
	if r.GuidePath != "" {
		fmt.Fprintf(&b, "Integration guide: %s\n", r.GuidePath)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}
	return b.String()
}

// Generate validates the source, writes every asset of req.Mode into
// req.OutputDir, then writes the manifest (traditional mode) and the
// integration guide. Assets are rendered concurrently; the first failure
// cancels the rest and is returned as an *AssetError.
func Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := source.Validate(req.SourcePath); err != nil {
		return nil, err
	}
	accent := req.AccentColor
	if accent == "" {
		accent = paths.DefaultAccent
	}
	root := req.ProjectRoot
	if root == "" {
		root = filepath.Dir(req.OutputDir)
	}

	if err := os.MkdirAll(req.OutputDir, paths.DirPerm); err != nil {
		return nil, fmt.Errorf("%w: create output directory: %w", ErrIO, err)
	}

	vector := source.IsVector(req.SourcePath)
	assets := catalog.ForMode(req.Mode)
	largest := lo.Max(lo.Map(catalog.Bitmaps(req.Mode), func(a catalog.Asset, _ int) int { return a.Size }))

	img, err := raster.Load(req.SourcePath, largest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	var svg []byte
	if vector {
		if svg, err = os.ReadFile(req.SourcePath); err != nil {
			return nil, fmt.Errorf("%w: read source: %w", ErrIO, err)
		}
	}

	res := &Result{Mode: req.Mode, OutputDir: req.OutputDir}
	if !vector {
		res.Warnings = append(res.Warnings, vectorWarning(req.Mode))
	}
	if req.ICOEncoder != ICOContainer {
		res.Warnings = append(res.Warnings,
			"favicon.ico holds PNG data under an .ico name; use the container ICO encoder for a real ICO file")
	}

	// One slot per asset keeps catalog order without a lock.
	slots := make([]*WrittenFile, len(assets))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range assets {
		if a.Format == catalog.Vector && !vector {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := render(a, img, svg, accent, req.ICOEncoder)
			if err != nil {
				return &AssetError{Filename: a.Filename, Err: err}
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(req.OutputDir, a.Filename)
			if err := paths.AtomicWrite(path, data); err != nil {
				return &AssetError{Filename: a.Filename, Err: err}
			}
			slots[i] = &WrittenFile{Name: a.Filename, Path: path, Bytes: int64(len(data))}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, f := range slots {
		if f != nil {
			res.Written = append(res.Written, *f)
		}
	}

	if req.Mode == catalog.Traditional {
		f, err := writeManifest(req.OutputDir)
		if err != nil {
			return nil, err
		}
		res.Written = append(res.Written, f)
	}

	guide := filepath.Join(root, paths.GuideFileName)
	if err := paths.AtomicWrite(guide, []byte(Guide(req.Mode, req.OutputDir, accent))); err != nil {
		return nil, &AssetError{Filename: paths.GuideFileName, Err: err}
	}
	res.GuidePath = guide
	return res, nil
}

func render(a catalog.Asset, img image.Image, svg []byte, accent string, enc ICOEncoder) ([]byte, error) {
	switch {
	case a.Format == catalog.Vector && a.Monochrome:
		return Monochrome(svg, accent), nil
	case a.Format == catalog.Vector:
		return svg, nil
	}

	var buf bytes.Buffer
	var err error
	switch {
	case a.Maskable:
		err = raster.EncodePNG(&buf, raster.Maskable(img, a.Size))
	case a.Format == catalog.LegacyIcon && enc == ICOContainer:
		err = raster.EncodeICO(&buf, raster.Contain(img, a.Size))
	default:
		err = raster.EncodePNG(&buf, raster.Contain(img, a.Size))
	}
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

func writeManifest(dir string) (WrittenFile, error) {
	data, err := BuildManifest().encode()
	if err != nil {
		return WrittenFile{}, &AssetError{Filename: catalog.ManifestFile, Err: err}
	}
	path := filepath.Join(dir, catalog.ManifestFile)
	if err := paths.AtomicWrite(path, data); err != nil {
		return WrittenFile{}, &AssetError{Filename: catalog.ManifestFile, Err: err}
	}
	return WrittenFile{Name: catalog.ManifestFile, Path: path, Bytes: int64(len(data))}, nil
}

func vectorWarning(m catalog.Mode) string {
	if m == catalog.Traditional {
		return fmt.Sprintf("source is not an SVG: create %s and %s manually", catalog.VectorCopyFile, catalog.PinnedTabFile)
	}
	return fmt.Sprintf("source is not an SVG: create %s manually", catalog.VectorCopyFile)
}
