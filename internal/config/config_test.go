package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUnmarshalDefaults(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{"log": true}`), &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.AccentColor != "#5bbad5" {
		t.Errorf("AccentColor = %q, want default", cfg.AccentColor)
	}
	if cfg.Mode != "auto" || cfg.ICOEncoder != "rename" || cfg.Storage != StorageFile {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if !cfg.Log {
		t.Error("Log = false, want true")
	}
}

func TestUnmarshalHooks(t *testing.T) {
	data := []byte(`{
		"accent_color": "#000",
		"hooks": {
			"mqtt": {"broker": "tcp://localhost:1883", "topic": "icons/done", "qos": 1},
			"webhook": {"url": "https://example.com/hook", "headers": {"Authorization": "Bearer $TOKEN"}}
		}
	}`)
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.AccentColor != "#000" {
		t.Errorf("AccentColor = %q", cfg.AccentColor)
	}
	if cfg.Hooks.MQTT == nil || cfg.Hooks.MQTT.Topic != "icons/done" || cfg.Hooks.MQTT.QoS != 1 {
		t.Errorf("MQTT = %+v", cfg.Hooks.MQTT)
	}
	if cfg.Hooks.Webhook == nil || cfg.Hooks.Webhook.Headers["Authorization"] != "Bearer $TOKEN" {
		t.Errorf("Webhook = %+v", cfg.Hooks.Webhook)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestReadFileYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "favicon.config.yaml")
	os.WriteFile(p, []byte("accent_color: \"#ff0000\"\nmode: traditional\nhooks:\n  webhook:\n    url: http://localhost/x\n"), 0644)

	cfg, err := ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if cfg.AccentColor != "#ff0000" || cfg.Mode != "traditional" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ICOEncoder != "rename" {
		t.Errorf("ICOEncoder = %q, want default", cfg.ICOEncoder)
	}
	if cfg.Hooks.Webhook == nil || cfg.Hooks.Webhook.URL != "http://localhost/x" {
		t.Errorf("Webhook = %+v", cfg.Hooks.Webhook)
	}
	if cfg.Path != p {
		t.Errorf("Path = %q", cfg.Path)
	}
}

func TestReadFileInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "favicon.config.json")
	os.WriteFile(p, []byte("{not json"), 0644)
	if _, err := ReadFile(p); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("err = %v", err)
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	t.Setenv("APPDATA", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()

	cfg, err := Load("", root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" || cfg.AccentColor != "#5bbad5" {
		t.Errorf("no config: %+v", cfg)
	}

	os.WriteFile(filepath.Join(root, "favicon.config.yaml"), []byte("mode: app-router\n"), 0644)
	cfg, err = Load("", root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "app-router" {
		t.Errorf("yaml in root: Mode = %q", cfg.Mode)
	}

	os.WriteFile(filepath.Join(root, "favicon.config.json"), []byte(`{"mode": "traditional"}`), 0644)
	cfg, err = Load("", root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "traditional" {
		t.Errorf("json wins over yaml: Mode = %q", cfg.Mode)
	}

	explicit := filepath.Join(t.TempDir(), "custom.json")
	os.WriteFile(explicit, []byte(`{"mode": "auto"}`), 0644)
	cfg, err = Load(explicit, root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "auto" || cfg.Path != explicit {
		t.Errorf("explicit: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APPDATA", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, "favicon.config.json"), []byte(`{"accent_color": "#111111", "storage": "file"}`), 0644)
	t.Setenv("FAVICON_ACCENT_COLOR", "#222222")
	t.Setenv("FAVICON_STORAGE", "sqlite")
	t.Setenv("FAVICON_LOG", "true")

	cfg, err := Load("", root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AccentColor != "#222222" || cfg.Storage != StorageSQLite || !cfg.Log {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadEnvInvalidBool(t *testing.T) {
	t.Setenv("APPDATA", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FAVICON_LOG", "maybe")
	if _, err := Load("", t.TempDir()); err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Errorf("err = %v, want parse env error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"short color", func(c *Config) { c.AccentColor = "#abc" }, ""},
		{"bad color", func(c *Config) { c.AccentColor = "blue" }, "accent_color"},
		{"bad mode", func(c *Config) { c.Mode = "pages" }, "invalid mode"},
		{"bad ico", func(c *Config) { c.ICOEncoder = "bmp" }, "ico encoder"},
		{"bad storage", func(c *Config) { c.Storage = "redis" }, "storage"},
		{"mqtt missing topic", func(c *Config) { c.Hooks.MQTT = &MQTTHook{Broker: "tcp://x:1883"} }, "hooks.mqtt.topic"},
		{"mqtt bad qos", func(c *Config) { c.Hooks.MQTT = &MQTTHook{Broker: "b", Topic: "t", QoS: 3} }, "qos"},
		{"webhook bad url", func(c *Config) { c.Hooks.Webhook = &WebhookHook{URL: "ftp://x"} }, "hooks.webhook.url"},
		{"slack bad url", func(c *Config) { c.Hooks.Slack = &ChatHook{Webhook: "hooks.slack.com"} }, "hooks.slack.webhook"},
		{"discord bad url", func(c *Config) { c.Hooks.Discord = &ChatHook{} }, "hooks.discord.webhook"},
		{"telegram missing chat", func(c *Config) { c.Hooks.Telegram = &TelegramHook{Token: "t"} }, "chat_id"},
		{"command empty", func(c *Config) { c.Hooks.Command = &CommandHook{Command: " "} }, "hooks.command.command"},
		{"negative cooldown", func(c *Config) { c.Hooks.CooldownSeconds = -1 }, "cooldown_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.AccentColor = "x"
	cfg.Mode = "y"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if n := len(strings.Split(err.Error(), "\n")); n != 2 {
		t.Errorf("got %d problems, want 2: %v", n, err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"favicon.config.json", "favicon.config.yaml"} {
		p := filepath.Join(dir, name)
		if err := WriteFile(p, Default()); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
		cfg, err := ReadFile(p)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if cfg.AccentColor != "#5bbad5" || cfg.Mode != "auto" {
			t.Errorf("%s: %+v", name, cfg)
		}
		if err := WriteFile(p, Default()); err == nil {
			t.Errorf("%s: overwrite allowed", name)
		}
	}
}
