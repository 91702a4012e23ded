package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Mavwarf/favicon/internal/generator"
	"github.com/Mavwarf/favicon/internal/mode"
	"github.com/Mavwarf/favicon/internal/paths"
)

// Storage backends for the generation history.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// MQTTHook publishes a message after each successful generation.
type MQTTHook struct {
	Broker   string `json:"broker" yaml:"broker"`
	Topic    string `json:"topic" yaml:"topic"`
	ClientID string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	QoS      int    `json:"qos,omitempty" yaml:"qos,omitempty"`
	Retain   bool   `json:"retain,omitempty" yaml:"retain,omitempty"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
}

// WebhookHook POSTs a message after each successful generation.
// Header values may reference environment variables ($VAR).
type WebhookHook struct {
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// ChatHook posts a message to a Slack or Discord incoming webhook.
type ChatHook struct {
	Webhook string `json:"webhook" yaml:"webhook"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// TelegramHook sends a message through the Telegram Bot API.
type TelegramHook struct {
	Token   string `json:"token" yaml:"token"`
	ChatID  string `json:"chat_id" yaml:"chat_id"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// CommandHook runs a shell command with FAVICON_* variables set.
// Timeout is in seconds; nil means 30, 0 means none.
type CommandHook struct {
	Command string `json:"command" yaml:"command"`
	Timeout *int   `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Hooks groups the optional completion hooks.
type Hooks struct {
	MQTT     *MQTTHook     `json:"mqtt,omitempty" yaml:"mqtt,omitempty"`
	Webhook  *WebhookHook  `json:"webhook,omitempty" yaml:"webhook,omitempty"`
	Slack    *ChatHook     `json:"slack,omitempty" yaml:"slack,omitempty"`
	Discord  *ChatHook     `json:"discord,omitempty" yaml:"discord,omitempty"`
	Telegram *TelegramHook `json:"telegram,omitempty" yaml:"telegram,omitempty"`
	Command  *CommandHook  `json:"command,omitempty" yaml:"command,omitempty"`
	// Desktop shows a desktop notification after each run.
	Desktop bool `json:"desktop,omitempty" yaml:"desktop,omitempty"`
	// CooldownSeconds suppresses hooks for an output directory that
	// already fired within this many seconds.
	CooldownSeconds int `json:"cooldown_seconds,omitempty" yaml:"cooldown_seconds,omitempty"`
}

// Config holds project or user settings. Every field can be left out;
// FAVICON_* environment variables override file values.
type Config struct {
	AccentColor string `json:"accent_color,omitempty" yaml:"accent_color,omitempty" env:"FAVICON_ACCENT_COLOR"`
	Mode        string `json:"mode,omitempty" yaml:"mode,omitempty" env:"FAVICON_MODE"`
	OutputDir   string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" env:"FAVICON_OUTPUT_DIR"`
	ICOEncoder  string `json:"ico_encoder,omitempty" yaml:"ico_encoder,omitempty" env:"FAVICON_ICO_ENCODER"`
	Log         bool   `json:"log,omitempty" yaml:"log,omitempty" env:"FAVICON_LOG"`
	Storage     string `json:"storage,omitempty" yaml:"storage,omitempty" env:"FAVICON_STORAGE"`
	Hooks       Hooks  `json:"hooks,omitempty" yaml:"hooks,omitempty"`

	// Path is the file the config was read from, "" for defaults.
	Path string `json:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AccentColor: paths.DefaultAccent,
		Mode:        "auto",
		ICOEncoder:  string(generator.ICORename),
		Storage:     StorageFile,
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Candidates returns the config paths probed for a project, in order.
func Candidates(root string) []string {
	var out []string
	for _, dir := range []string{root, paths.DataDir()} {
		if dir == "" {
			continue
		}
		out = append(out,
			filepath.Join(dir, paths.ConfigFileName),
			filepath.Join(dir, paths.ConfigYAMLName))
	}
	return out
}

// FindPath returns the config file to use: explicitPath if non-empty,
// otherwise the first existing candidate. It returns "" when there is
// none.
func FindPath(explicitPath, root string) string {
	if explicitPath != "" {
		return explicitPath
	}
	for _, p := range Candidates(root) {
		if paths.Exists(p) {
			return p
		}
	}
	return ""
}

// Load reads the config for a project root. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. favicon.config.json / .yaml in root
//  3. favicon.config.json / .yaml in the user data directory
//
// A missing config is not an error; defaults are used. Environment
// overrides are applied last.
func Load(explicitPath, root string) (Config, error) {
	cfg := Default()
	if p := FindPath(explicitPath, root); p != "" {
		var err error
		if cfg, err = ReadFile(p); err != nil {
			return Config{}, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadFile parses a JSON or YAML (.yaml, .yml) config file.
func ReadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// WriteFile stores cfg at path in the format its extension selects.
// An existing file is never overwritten.
func WriteFile(path string, cfg Config) error {
	if paths.Exists(path) {
		return fmt.Errorf("%s already exists", path)
	}
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return paths.AtomicWrite(path, data)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidColor reports whether s is a #rgb, #rrggbb or #rrggbbaa color.
func ValidColor(s string) bool {
	return hexColor.MatchString(s)
}

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	if !ValidColor(c.AccentColor) {
		errs = append(errs, fmt.Errorf("accent_color %q is not a hex color", c.AccentColor))
	}
	if _, err := mode.ParseRequested(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := generator.ParseICOEncoder(c.ICOEncoder); err != nil {
		errs = append(errs, err)
	}
	switch c.Storage {
	case "", StorageFile, StorageSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage %q must be %q or %q", c.Storage, StorageFile, StorageSQLite))
	}
	if m := c.Hooks.MQTT; m != nil {
		if m.Broker == "" {
			errs = append(errs, errors.New("hooks.mqtt.broker is required"))
		}
		if m.Topic == "" {
			errs = append(errs, errors.New("hooks.mqtt.topic is required"))
		}
		if m.QoS < 0 || m.QoS > 2 {
			errs = append(errs, fmt.Errorf("hooks.mqtt.qos %d must be 0, 1 or 2", m.QoS))
		}
	}
	if w := c.Hooks.Webhook; w != nil && !isHTTP(w.URL) {
		errs = append(errs, fmt.Errorf("hooks.webhook.url %q must be an http(s) URL", w.URL))
	}
	if h := c.Hooks.Slack; h != nil && !isHTTP(h.Webhook) {
		errs = append(errs, fmt.Errorf("hooks.slack.webhook %q must be an http(s) URL", h.Webhook))
	}
	if h := c.Hooks.Discord; h != nil && !isHTTP(h.Webhook) {
		errs = append(errs, fmt.Errorf("hooks.discord.webhook %q must be an http(s) URL", h.Webhook))
	}
	if h := c.Hooks.Telegram; h != nil && (h.Token == "" || h.ChatID == "") {
		errs = append(errs, errors.New("hooks.telegram needs token and chat_id"))
	}
	if h := c.Hooks.Command; h != nil {
		if strings.TrimSpace(h.Command) == "" {
			errs = append(errs, errors.New("hooks.command.command is required"))
		}
		if h.Timeout != nil && *h.Timeout < 0 {
			errs = append(errs, fmt.Errorf("hooks.command.timeout %d must not be negative", *h.Timeout))
		}
	}
	if c.Hooks.CooldownSeconds < 0 {
		errs = append(errs, fmt.Errorf("hooks.cooldown_seconds %d must not be negative", c.Hooks.CooldownSeconds))
	}
	return errors.Join(errs...)
}

func isHTTP(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
