package mcpserver

import (
	"flag"

	"github.com/Mavwarf/favicon/internal/config"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds MCP command configuration.
type Config struct {
	Transport   string `env:"FAVICON_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr    string `env:"FAVICON_MCP_HTTP_ADDR" envDefault:"localhost:8765"`
	ProjectRoot string `env:"FAVICON_PROJECT_ROOT"`
	ConfigPath  string `env:"FAVICON_CONFIG"`
}

// ParseConfig parses environment and flags into a Config. Flags win.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address (for HTTP transport)")
	fs.StringVar(&cfg.ProjectRoot, "root", cfg.ProjectRoot, "default project root for tool calls")
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "path to a favicon config file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
