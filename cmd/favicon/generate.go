package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/term"

	"github.com/Mavwarf/favicon/internal/catalog"
	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/htmlinject"
	"github.com/Mavwarf/favicon/internal/runner"
)

// genFlags are the options shared by generate and watch.
type genFlags struct {
	source     string
	output     string
	color      string
	mode       string
	ico        string
	html       bool
	log        bool
	logChanged bool
}

func parseGenFlags(args []string) (genFlags, error) {
	var f genFlags
	value := func(i int, name string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		return args[i+1], nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		switch a := args[i]; a {
		case "--output", "-o":
			f.output, err = value(i, a)
			i++
		case "--color", "-c":
			f.color, err = value(i, a)
			i++
		case "--mode", "-m":
			f.mode, err = value(i, a)
			i++
		case "--ico":
			f.ico, err = value(i, a)
			i++
		case "--html":
			f.html = true
		case "--log":
			f.log, f.logChanged = true, true
		case "--no-log":
			f.log, f.logChanged = false, true
		default:
			if strings.HasPrefix(a, "-") {
				return f, fmt.Errorf("unknown option %s", a)
			}
			if f.source != "" {
				return f, fmt.Errorf("unexpected argument %q", a)
			}
			f.source = a
		}
		if err != nil {
			return f, err
		}
	}
	return f, nil
}

// prepare loads config, resolves the source and builds a validated run.
func prepare(g globals, f genFlags) (*runner.Prepared, error) {
	cfg, err := config.Load(g.configPath, g.root)
	if err != nil {
		return nil, err
	}
	opts := runner.Options{
		Root:       g.root,
		Source:     f.source,
		OutputDir:  f.output,
		Accent:     f.color,
		Mode:       f.mode,
		ICOEncoder: f.ico,
		Config:     cfg,
	}
	if f.logChanged {
		opts.History = &f.log
	}

	p, err := runner.Prepare(opts)
	if errors.Is(err, runner.ErrNoSource) && term.IsTerminal(int(os.Stdin.Fd())) {
		src, perr := promptSource(os.Stdin, os.Stdout)
		if perr != nil {
			return nil, perr
		}
		opts.Source = src
		p, err = runner.Prepare(opts)
	}
	return p, err
}

// promptSource asks for a source path on an interactive terminal.
func promptSource(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "No logo.svg or logo.png found. Path to source image: ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return "", runner.ErrNoSource
	}
	src := strings.Trim(strings.TrimSpace(scanner.Text()), `"'`)
	if src == "" {
		return "", runner.ErrNoSource
	}
	return src, nil
}

func generateCmd(g globals, args []string) error {
	f, err := parseGenFlags(args)
	if err != nil {
		return err
	}
	p, err := prepare(g, f)
	if err != nil {
		return err
	}
	printNotices(os.Stderr, p.Notices())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runOnce(ctx, os.Stdout, os.Stderr, p, f.html)
}

// runOnce generates, prints the summary and optionally integrates the
// HTML entry point.
func runOnce(ctx context.Context, stdout, stderr io.Writer, p *runner.Prepared, html bool) error {
	out, err := p.Run(ctx)
	if out != nil {
		printNotices(stderr, out.Warnings)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out.Result.Summary())

	if html {
		if p.Plan.Mode != catalog.Traditional {
			fmt.Fprintln(stderr, "warning: --html ignored in app-router mode")
			return nil
		}
		return integrate(stdout, p.Request.ProjectRoot, "", p.Request.AccentColor)
	}
	return nil
}

func printNotices(w io.Writer, notices []string) {
	for _, n := range notices {
		fmt.Fprintf(w, "warning: %s\n", n)
	}
}

// integrate runs the HTML integrator and reports the outcome. An
// already-integrated file is not an error.
func integrate(w io.Writer, root, path, accent string) error {
	out, err := htmlinject.Integrate(root, path, accent)
	switch {
	case err == nil:
		fmt.Fprintf(w, "Added favicon links to %s\n", out.Path)
	case errors.Is(err, htmlinject.ErrAlreadyIntegrated):
		fmt.Fprintf(w, "%s already links the icons\n", out.Path)
	case errors.Is(err, htmlinject.ErrNoHeadTag):
		fmt.Fprintf(w, "No <head> tag in %s. Add these tags manually:\n%s", out.Path, out.Markup)
	default:
		return err
	}
	return nil
}
