package main

import (
	"fmt"
	"os"
	"runtime"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// globals are the flags accepted before or after any command.
type globals struct {
	configPath string
	root       string
}

func main() {
	g, args, err := parseGlobals(os.Args[1:])
	if err != nil {
		fatal(err)
	}

	cmd := "generate"
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "generate", "gen":
		err = generateCmd(g, args)
	case "status":
		err = statusCmd(g, args)
	case "html":
		err = htmlCmd(g, args)
	case "watch":
		err = watchCmd(g, args)
	case "history":
		err = historyCmd(g, args)
	case "config":
		err = configCmd(g, args)
	default:
		// "favicon logo.svg" is short for "favicon generate logo.svg".
		err = generateCmd(g, append([]string{cmd}, args...))
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// parseGlobals removes --config and --root from args.
func parseGlobals(args []string) (globals, []string, error) {
	var g globals
	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			if i+1 >= len(args) {
				return g, nil, fmt.Errorf("--config requires a file path")
			}
			g.configPath = args[i+1]
			i++
		case "--root", "-r":
			if i+1 >= len(args) {
				return g, nil, fmt.Errorf("--root requires a directory")
			}
			g.root = args[i+1]
			i++
		default:
			filtered = append(filtered, args[i])
		}
	}
	if g.root == "" {
		g.root = "."
	}
	return g, filtered, nil
}

func printVersion() {
	fmt.Printf("favicon %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("favicon %s - Generate favicon, PWA and Apple touch icons from one logo\n", version)
	fmt.Println(`
Usage:
  favicon [generate] [source] [options]
  favicon status [--json]
  favicon html [path]
  favicon watch [source] [options]
  favicon history [count] | summary [days] | clean <days> | clear
  favicon config validate | init [path]

Generate options:
  --output, -o <dir>       Output directory (default: framework static or app dir)
  --color, -c <hex>        Safari pinned tab color (default: #5bbad5)
  --mode, -m <mode>        traditional, app-router or auto (default: auto)
  --ico <encoder>          rename (PNG data, default) or container (real ICO)
  --html                   Add the <link> tags to the HTML entry point afterwards
  --log                    Record this run in the history

Global options:
  --root, -r <dir>         Project root (default: current directory)
  --config <path>          Path to favicon.config.json or .yaml

Commands:
  generate, gen            Generate all icons (default command)
  status                   Show which icon files exist
  html                     Add the favicon <link> tags to an HTML file
  watch                    Regenerate whenever the source changes
  history                  Show, summarize or clear the generation history
  config                   Validate or create a config file
  version, -V              Show version and build date
  help, -h, --help         Show this help message

Config resolution:
  1. --config <path>                     (explicit)
  2. favicon.config.json in project root
  3. ~/.config/favicon/favicon.config.json (user default)

Examples:
  favicon                          Use logo.svg or logo.png from the project root
  favicon brand/mark.svg -c #ff5500
  favicon -m app-router            Next.js App Router file conventions
  favicon watch logo.svg --html`)
}
