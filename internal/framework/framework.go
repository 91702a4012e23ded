// Package framework detects which web framework a project uses by probing
// for its configuration files.
package framework

import (
	"path/filepath"

	"github.com/Mavwarf/favicon/internal/paths"
)

// Descriptor describes a supported framework.
type Descriptor struct {
	Name         string
	ConfigFiles  []string // relative to the project root, probed in order
	StaticDir    string   // relative static-asset directory
	AppRouterDir string   // relative app-router directory; "" if none
}

// HasAppRouterConvention reports whether the framework declares an
// app-router directory at all.
func (d Descriptor) HasAppRouterConvention() bool {
	return d.AppRouterDir != ""
}

// nestedSourceDir is the intermediate directory some layouts keep
// application code under (e.g. src/app).
const nestedSourceDir = "src"

var frameworks = []Descriptor{
	{
		Name:         "Next.js",
		ConfigFiles:  []string{"next.config.js", "next.config.mjs", "next.config.ts"},
		StaticDir:    "public",
		AppRouterDir: "app",
	},
	{
		Name:        "Nuxt",
		ConfigFiles: []string{"nuxt.config.ts", "nuxt.config.js"},
		StaticDir:   "public",
	},
	{
		Name:        "Astro",
		ConfigFiles: []string{"astro.config.mjs", "astro.config.js", "astro.config.ts"},
		StaticDir:   "public",
	},
	{
		Name:        "SvelteKit",
		ConfigFiles: []string{"svelte.config.js", "svelte.config.ts"},
		StaticDir:   "static",
	},
	{
		Name:        "Remix",
		ConfigFiles: []string{"remix.config.js"},
		StaticDir:   "public",
	},
	{
		Name:        "Gatsby",
		ConfigFiles: []string{"gatsby-config.js", "gatsby-config.ts"},
		StaticDir:   "static",
	},
	{
		Name:        "Vite",
		ConfigFiles: []string{"vite.config.ts", "vite.config.js", "vite.config.mjs"},
		StaticDir:   "public",
	},
	{
		Name:        "Angular",
		ConfigFiles: []string{"angular.json"},
		StaticDir:   "public",
	},
}

// Known returns the framework catalog in probe order.
func Known() []Descriptor {
	out := make([]Descriptor, len(frameworks))
	copy(out, frameworks)
	return out
}

// Detect returns the first framework whose configuration file exists
// directly under root. The bool is false when nothing matches.
func Detect(root string) (Descriptor, bool) {
	for _, fw := range frameworks {
		for _, name := range fw.ConfigFiles {
			if paths.Exists(filepath.Join(root, name)) {
				return fw, true
			}
		}
	}
	return Descriptor{}, false
}

// Project is the detection result for one project root. It is computed
// once and passed around so every consumer sees the same answer.
type Project struct {
	Root      string
	Framework Descriptor
	Detected  bool
}

// Inspect runs detection for root.
func Inspect(root string) Project {
	fw, ok := Detect(root)
	return Project{Root: root, Framework: fw, Detected: ok}
}

// Name returns the framework name, or "none".
func (p Project) Name() string {
	if !p.Detected {
		return "none"
	}
	return p.Framework.Name
}

// StaticDir returns the absolute static-asset directory, falling back to
// paths.DefaultStaticDir when no framework was detected.
func (p Project) StaticDir() string {
	dir := paths.DefaultStaticDir
	if p.Detected && p.Framework.StaticDir != "" {
		dir = p.Framework.StaticDir
	}
	return filepath.Join(p.Root, dir)
}

// AppRouterDir returns the absolute app-router directory if the framework
// declares one and it exists, checking root/<dir> before root/src/<dir>.
func (p Project) AppRouterDir() (string, bool) {
	if !p.Detected || !p.Framework.HasAppRouterConvention() {
		return "", false
	}
	for _, candidate := range []string{
		filepath.Join(p.Root, p.Framework.AppRouterDir),
		filepath.Join(p.Root, nestedSourceDir, p.Framework.AppRouterDir),
	} {
		if paths.IsDir(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// HasAppRouter reports whether the app-router directory exists on disk.
func (p Project) HasAppRouter() bool {
	_, ok := p.AppRouterDir()
	return ok
}

// StaticDir is a convenience for Inspect(root).StaticDir().
func StaticDir(root string) string {
	return Inspect(root).StaticDir()
}
