package main

import (
	"fmt"
	"path/filepath"

	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/paths"
)

func configCmd(g globals, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: favicon config validate | init [path]")
	}
	switch args[0] {
	case "validate":
		return configValidate(g)
	case "init":
		path := filepath.Join(g.root, paths.ConfigFileName)
		if len(args) > 1 {
			path = args[1]
		}
		if err := config.WriteFile(path, config.Default()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	default:
		return fmt.Errorf("unknown config command %q", args[0])
	}
}

func configValidate(g globals) error {
	cfg, err := config.Load(g.configPath, g.root)
	if err != nil {
		return err
	}
	if cfg.Path == "" {
		fmt.Println("No config file found; using defaults.")
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s is invalid:\n%w", cfg.Path, err)
	}
	fmt.Printf("%s is valid.\n", cfg.Path)
	return nil
}
