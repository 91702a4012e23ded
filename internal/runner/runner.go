// Package runner performs one complete generation run on behalf of the
// CLI, the MCP server and the dashboard.
package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/eventlog"
	"github.com/Mavwarf/favicon/internal/framework"
	"github.com/Mavwarf/favicon/internal/generator"
	"github.com/Mavwarf/favicon/internal/hooks"
	"github.com/Mavwarf/favicon/internal/mode"
	"github.com/Mavwarf/favicon/internal/source"
)

// ErrNoSource is returned when no source was given and none of the
// conventional names exist in the project root.
var ErrNoSource = errors.New("no source image given and no logo.svg or logo.png in project root")

// Options are the per-run inputs. Empty fields fall back to Config.
type Options struct {
	Root       string // project root, default "."
	Source     string // source image, default source.Find(Root)
	OutputDir  string
	Accent     string
	Mode       string // traditional | app-router | auto
	ICOEncoder string // rename | container

	Config config.Config
	// History overrides Config.Log when non-nil.
	History *bool
}

// Outcome is what a run produced.
type Outcome struct {
	Project framework.Project
	Plan    mode.Plan
	Result  *generator.Result
	Entry   eventlog.Entry
	// Warnings are non-fatal problems from history logging and hooks.
	Warnings []string
}

// Prepared is a validated run that has not generated anything yet.
type Prepared struct {
	Project framework.Project
	Plan    mode.Plan
	Request generator.Request
	opts    Options
}

// Prepare resolves every input once: root, source, mode, output
// directory, accent and ICO encoder.
func Prepare(opts Options) (*Prepared, error) {
	cfg := opts.Config
	root := opts.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	project := framework.Inspect(root)

	src := opts.Source
	if src == "" {
		found, ok := source.Find(root)
		if !ok {
			return nil, ErrNoSource
		}
		src = found
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return nil, err
	}
	if err := source.Validate(src); err != nil {
		return nil, err
	}

	requested, err := mode.ParseRequested(first(opts.Mode, cfg.Mode))
	if err != nil {
		return nil, err
	}
	ico, err := generator.ParseICOEncoder(first(opts.ICOEncoder, cfg.ICOEncoder))
	if err != nil {
		return nil, err
	}
	accent := first(opts.Accent, cfg.AccentColor)
	if accent != "" && !config.ValidColor(accent) {
		return nil, fmt.Errorf("invalid accent color %q", accent)
	}

	plan := mode.PlanFor(project, requested, first(opts.OutputDir, cfg.OutputDir))
	return &Prepared{
		Project: project,
		Plan:    plan,
		Request: generator.Request{
			SourcePath:  src,
			OutputDir:   plan.OutputDir,
			ProjectRoot: root,
			AccentColor: accent,
			Mode:        plan.Mode,
			ICOEncoder:  ico,
		},
		opts: opts,
	}, nil
}

// Notices returns messages about how the run was resolved that surfaces
// should show before generating.
func (p *Prepared) Notices() []string {
	if p.Plan.Overridden {
		return []string{fmt.Sprintf("--mode traditional ignored: %s", p.Plan.Reason)}
	}
	return nil
}

// Run generates the icons, then records history and fires hooks for both
// successful and failed runs. History and hook failures become warnings
// and never fail the run.
func (p *Prepared) Run(ctx context.Context) (*Outcome, error) {
	out := &Outcome{Project: p.Project, Plan: p.Plan}
	entry := eventlog.NewEntry(p.Request.SourcePath, p.Request.OutputDir, p.Plan.Mode.String())

	res, err := generator.Generate(ctx, p.Request)
	if err != nil {
		entry.Failed(err)
	} else {
		entry.Files = len(res.Written)
		entry.Bytes = res.TotalBytes()
		out.Result = res
	}
	out.Entry = entry

	cfg := p.opts.Config
	logHistory := cfg.Log
	if p.opts.History != nil {
		logHistory = *p.opts.History
	}
	if logHistory {
		if werr := record(cfg.Storage, entry); werr != nil {
			out.Warnings = append(out.Warnings, fmt.Sprintf("history: %v", werr))
		}
	}
	if hooks.Enabled(cfg.Hooks) && !hooks.OnCooldown(cfg.Hooks, entry) {
		if herr := hooks.Run(ctx, cfg.Hooks, entry); herr != nil {
			out.Warnings = append(out.Warnings, herr.Error())
		}
	}
	return out, err
}

// Run prepares and runs in one step.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	p, err := Prepare(opts)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx)
}

func record(storage string, e eventlog.Entry) error {
	store, err := eventlog.Open(storage, "")
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Log(e)
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
