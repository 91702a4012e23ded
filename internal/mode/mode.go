// Package mode resolves the user's requested generation mode into the
// concrete catalog.Mode used for a run.
package mode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Mavwarf/favicon/internal/catalog"
	"github.com/Mavwarf/favicon/internal/framework"
)

// Requested is the user-facing mode choice.
type Requested int

const (
	RequestAuto Requested = iota
	RequestTraditional
	RequestAppRouter
)

func (r Requested) String() string {
	switch r {
	case RequestTraditional:
		return "traditional"
	case RequestAppRouter:
		return "app-router"
	default:
		return "auto"
	}
}

// ParseRequested parses a mode flag value. The empty string means auto.
func ParseRequested(s string) (Requested, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return RequestAuto, nil
	case "traditional":
		return RequestTraditional, nil
	case "app-router", "app", "approuter":
		return RequestAppRouter, nil
	default:
		return RequestAuto, fmt.Errorf("invalid mode %q (expected traditional, app-router or auto)", s)
	}
}

// appRouterDirName is the conventional directory name that marks an
// output directory as an app-router target.
const appRouterDirName = "app"

// Input holds everything resolution depends on.
type Input struct {
	Requested Requested
	// OutputDir is the explicitly supplied output directory, "" if none.
	OutputDir string
	// AppRouterAvailable is true when the detected framework declares an
	// app-router convention and its directory exists.
	AppRouterAvailable bool
}

// Decision is the outcome of Resolve.
type Decision struct {
	Mode catalog.Mode
	// Overridden is set when an explicit mode flag lost to the output
	// directory's path.
	Overridden bool
	Reason     string
}

// Resolve maps in to a concrete mode. It is pure: the same input always
// yields the same decision.
//
// An explicit output directory that is, or sits inside, an "app"
// directory selects app-router mode even when traditional was requested.
func Resolve(in Input) Decision {
	if in.OutputDir != "" && PathSuggestsAppRouter(in.OutputDir) {
		return Decision{
			Mode:       catalog.AppRouter,
			Overridden: in.Requested == RequestTraditional,
			Reason:     fmt.Sprintf("output directory %s is an app-router directory", in.OutputDir),
		}
	}

	switch in.Requested {
	case RequestTraditional:
		return Decision{Mode: catalog.Traditional, Reason: "requested"}
	case RequestAppRouter:
		return Decision{Mode: catalog.AppRouter, Reason: "requested"}
	}

	if in.OutputDir != "" {
		return Decision{Mode: catalog.Traditional, Reason: "output directory is not an app-router directory"}
	}
	if in.AppRouterAvailable {
		return Decision{Mode: catalog.AppRouter, Reason: "app-router directory detected"}
	}
	return Decision{Mode: catalog.Traditional, Reason: "no app-router directory detected"}
}

// PathSuggestsAppRouter reports whether dir is named "app" or has an
// "app" path segment.
func PathSuggestsAppRouter(dir string) bool {
	slashed := "/" + filepath.ToSlash(filepath.Clean(dir)) + "/"
	return strings.Contains(slashed, "/"+appRouterDirName+"/")
}

// Plan is a resolved mode together with the directory assets go to.
type Plan struct {
	Decision
	OutputDir string // absolute
}

// PlanFor resolves mode and output directory for project p. outputDir is
// the explicit directory ("" when not given), relative paths are taken
// from the project root.
func PlanFor(p framework.Project, requested Requested, outputDir string) Plan {
	explicit := ""
	if outputDir != "" {
		explicit = outputDir
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(p.Root, explicit)
		}
	}

	d := Resolve(Input{
		Requested:          requested,
		OutputDir:          projectRelative(p.Root, outputDir),
		AppRouterAvailable: p.HasAppRouter(),
	})

	if explicit != "" {
		return Plan{Decision: d, OutputDir: explicit}
	}
	if d.Mode == catalog.AppRouter {
		if dir, ok := p.AppRouterDir(); ok {
			return Plan{Decision: d, OutputDir: dir}
		}
		return Plan{Decision: d, OutputDir: filepath.Join(p.Root, appRouterDirName)}
	}
	return Plan{Decision: d, OutputDir: p.StaticDir()}
}

// projectRelative returns dir as seen from root, so directories above the
// project never take part in the app-router check. Absolute paths outside
// root are returned unchanged.
func projectRelative(root, dir string) string {
	if dir == "" || !filepath.IsAbs(dir) {
		return dir
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return dir
	}
	return rel
}
