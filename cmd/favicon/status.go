package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/status"
)

func statusCmd(g globals, args []string) error {
	asJSON := false
	for _, a := range args {
		switch a {
		case "--json":
			asJSON = true
		default:
			return fmt.Errorf("unknown option %s", a)
		}
	}
	root, err := filepath.Abs(g.root)
	if err != nil {
		return err
	}
	report := status.Check(root)
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printStatus(os.Stdout, report)
	return nil
}

func printStatus(w io.Writer, r status.Report) {
	fmt.Fprintf(w, "Project:    %s\n", r.Root)
	fmt.Fprintf(w, "Framework:  %s\n", r.Framework)
	fmt.Fprintf(w, "Static dir: %s\n", r.StaticDir)
	if r.SourceFound {
		fmt.Fprintf(w, "Source:     %s\n", r.SourcePath)
	} else {
		fmt.Fprintln(w, "Source:     (none found)")
	}
	fmt.Fprintln(w)
	for _, f := range r.Files {
		mark := " "
		if f.Exists {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %s\n", mark, f.Name)
	}
	fmt.Fprintf(w, "\n%s\n", r)
}

func htmlCmd(g globals, args []string) error {
	path := ""
	switch len(args) {
	case 0:
	case 1:
		path = args[0]
	default:
		return fmt.Errorf("expected at most one HTML path")
	}
	cfg, err := config.Load(g.configPath, g.root)
	if err != nil {
		return err
	}
	root, err := filepath.Abs(g.root)
	if err != nil {
		return err
	}
	return integrate(os.Stdout, root, path, cfg.AccentColor)
}
