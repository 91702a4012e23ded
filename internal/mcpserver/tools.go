package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/generator"
	"github.com/Mavwarf/favicon/internal/htmlinject"
	"github.com/Mavwarf/favicon/internal/runner"
	"github.com/Mavwarf/favicon/internal/status"
)

// GenerateInput is the generate_icons tool input.
type GenerateInput struct {
	SourcePath  string `json:"source_path,omitempty" jsonschema:"path to the source SVG, PNG or JPEG (defaults to logo.svg or logo.png in the project root)"`
	OutputDir   string `json:"output_dir,omitempty" jsonschema:"directory to write icons to (defaults to the framework's static or app directory)"`
	AccentColor string `json:"accent_color,omitempty" jsonschema:"hex color for the Safari pinned tab (default #5bbad5)"`
	Mode        string `json:"mode,omitempty" jsonschema:"traditional, app-router or auto (default auto)"`
	ProjectRoot string `json:"project_root,omitempty" jsonschema:"project root directory"`
	ICOEncoder  string `json:"ico_encoder,omitempty" jsonschema:"rename (PNG data, default) or container (real ICO file)"`
}

// GenerateResult is the generate_icons tool output.
type GenerateResult struct {
	Mode      string                  `json:"mode" jsonschema:"resolved mode"`
	OutputDir string                  `json:"output_dir" jsonschema:"directory the icons were written to"`
	Files     []generator.WrittenFile `json:"files" jsonschema:"files written"`
	Warnings  []string                `json:"warnings,omitempty" jsonschema:"non-fatal problems"`
	GuidePath string                  `json:"guide_path" jsonschema:"path of the integration guide"`
	Summary   string                  `json:"summary" jsonschema:"human-readable summary"`
}

// StatusInput is the check_icon_status tool input.
type StatusInput struct {
	ProjectRoot string `json:"project_root,omitempty" jsonschema:"project root directory"`
}

// HTMLInput is the add_icons_to_html tool input.
type HTMLInput struct {
	ProjectRoot string `json:"project_root,omitempty" jsonschema:"project root directory"`
	HTMLPath    string `json:"html_path,omitempty" jsonschema:"HTML file to edit (defaults to the detected entry point)"`
	AccentColor string `json:"accent_color,omitempty" jsonschema:"hex color for the mask-icon link"`
}

// HTMLResult is the add_icons_to_html tool output.
type HTMLResult struct {
	Status string `json:"status" jsonschema:"inserted, already-present or no-head-tag"`
	Path   string `json:"path" jsonschema:"HTML file that was inspected"`
	Markup string `json:"markup,omitempty" jsonschema:"tags to insert manually when no head tag was found"`
}

// GenerateTool defines the generate_icons tool.
func GenerateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "generate_icons",
		Description: "Generates favicon, PWA, Apple touch, maskable and pinned-tab icons plus a web manifest from one source image.",
	}
}

// StatusTool defines the check_icon_status tool.
func StatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "check_icon_status",
		Description: "Reports which icon files exist in the project's static directory and whether a source logo was found.",
	}
}

// HTMLTool defines the add_icons_to_html tool.
func HTMLTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "add_icons_to_html",
		Description: "Adds the favicon <link> tags to the project's HTML entry point unless they are already present.",
	}
}

func text(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: s}}}
}

type handlers struct {
	cfg Config
}

func (h handlers) root(input string) string {
	switch {
	case input != "":
		return input
	case h.cfg.ProjectRoot != "":
		return h.cfg.ProjectRoot
	default:
		return "."
	}
}

// Generate executes generate_icons.
func (h handlers) Generate(ctx context.Context, _ *mcp.CallToolRequest, in GenerateInput) (*mcp.CallToolResult, GenerateResult, error) {
	root := h.root(in.ProjectRoot)
	cfg, err := config.Load(h.cfg.ConfigPath, root)
	if err != nil {
		return nil, GenerateResult{}, err
	}
	p, err := runner.Prepare(runner.Options{
		Root:       root,
		Source:     in.SourcePath,
		OutputDir:  in.OutputDir,
		Accent:     in.AccentColor,
		Mode:       in.Mode,
		ICOEncoder: in.ICOEncoder,
		Config:     cfg,
	})
	if err != nil {
		return nil, GenerateResult{}, err
	}
	out, err := p.Run(ctx)
	if err != nil {
		return nil, GenerateResult{}, fmt.Errorf("generate icons: %w", err)
	}

	res := out.Result
	warnings := append(append(p.Notices(), res.Warnings...), out.Warnings...)
	result := GenerateResult{
		Mode:      res.Mode.String(),
		OutputDir: res.OutputDir,
		Files:     res.Written,
		Warnings:  warnings,
		GuidePath: res.GuidePath,
		Summary:   res.Summary(),
	}
	return text(result.Summary), result, nil
}

// Status executes check_icon_status.
func (h handlers) Status(_ context.Context, _ *mcp.CallToolRequest, in StatusInput) (*mcp.CallToolResult, status.Report, error) {
	root, err := filepath.Abs(h.root(in.ProjectRoot))
	if err != nil {
		return nil, status.Report{}, err
	}
	report := status.Check(root)
	return text(report.String()), report, nil
}

// HTML executes add_icons_to_html.
func (h handlers) HTML(_ context.Context, _ *mcp.CallToolRequest, in HTMLInput) (*mcp.CallToolResult, HTMLResult, error) {
	root, err := filepath.Abs(h.root(in.ProjectRoot))
	if err != nil {
		return nil, HTMLResult{}, err
	}
	accent := in.AccentColor
	if accent == "" {
		if cfg, err := config.Load(h.cfg.ConfigPath, root); err == nil {
			accent = cfg.AccentColor
		}
	}

	out, err := htmlinject.Integrate(root, in.HTMLPath, accent)
	result := HTMLResult{Status: out.Status.String(), Path: out.Path, Markup: out.Markup}
	switch {
	case err == nil:
		return text("Added favicon links to " + out.Path), result, nil
	case errors.Is(err, htmlinject.ErrAlreadyIntegrated):
		return text(out.Path + " already links the icons"), result, nil
	case errors.Is(err, htmlinject.ErrNoHeadTag):
		return text("No <head> tag in " + out.Path + ". Add these tags manually:\n" + out.Markup), result, nil
	default:
		return nil, HTMLResult{}, err
	}
}
