package hooks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/eventlog"
)

func sampleEntry() eventlog.Entry {
	e := eventlog.NewEntry("/p/logo.svg", "/p/public", "traditional")
	e.Files = 8
	e.Bytes = 4096
	return e
}

func TestEnabled(t *testing.T) {
	if Enabled(config.Hooks{}) {
		t.Error("empty hooks enabled")
	}
	if !Enabled(config.Hooks{Webhook: &config.WebhookHook{URL: "http://x"}}) {
		t.Error("webhook not enabled")
	}
}

func TestRunNoHooks(t *testing.T) {
	if err := Run(context.Background(), config.Hooks{}, sampleEntry()); err != nil {
		t.Errorf("Run: %v", err)
	}
}

func TestRunWebhookCustomMessage(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
	}))
	defer srv.Close()

	h := config.Hooks{Webhook: &config.WebhookHook{URL: srv.URL, Message: "{Mode}: {count} files, {size}"}}
	if err := Run(context.Background(), h, sampleEntry()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if body != "Traditional: 8 files, 4.1 kB" {
		t.Errorf("body = %q", body)
	}
}

func TestRunWebhookJSONPayload(t *testing.T) {
	var got webhookPayload
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	e := sampleEntry()
	if err := Run(context.Background(), config.Hooks{Webhook: &config.WebhookHook{URL: srv.URL}}, e); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q", contentType)
	}
	if got.Run.ID != e.ID || got.Run.Files != 8 {
		t.Errorf("run = %+v", got.Run)
	}
	if got.Message != "8 icons generated (traditional) in /p/public" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestRunReportsErrorsAndRunsOthers(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	h := config.Hooks{
		MQTT:    &config.MQTTHook{Broker: "tcp://127.0.0.1:19999", Topic: "icons"},
		Webhook: &config.WebhookHook{URL: srv.URL},
	}
	err := Run(context.Background(), h, sampleEntry())
	if err == nil || !strings.Contains(err.Error(), "mqtt hook") {
		t.Errorf("err = %v, want mqtt hook error", err)
	}
	if !called {
		t.Error("webhook not called when mqtt failed")
	}
}

func TestRunChatHooks(t *testing.T) {
	var mu sync.Mutex
	bodies := map[string]map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b map[string]string
		json.NewDecoder(r.Body).Decode(&b)
		mu.Lock()
		bodies[r.URL.Path] = b
		mu.Unlock()
	}))
	defer srv.Close()

	h := config.Hooks{
		Slack:   &config.ChatHook{Webhook: srv.URL + "/slack"},
		Discord: &config.ChatHook{Webhook: srv.URL + "/discord", Message: "{count} files"},
	}
	if err := Run(context.Background(), h, sampleEntry()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := bodies["/slack"]["text"]; got != "8 icons generated (traditional) in /p/public" {
		t.Errorf("slack text = %q", got)
	}
	if got := bodies["/discord"]["content"]; got != "8 files" {
		t.Errorf("discord content = %q", got)
	}
}

func TestRunDesktopHook(t *testing.T) {
	var title, msg string
	old := showToast
	showToast = func(t, m string) error {
		title, msg = t, m
		return nil
	}
	defer func() { showToast = old }()

	if !Enabled(config.Hooks{Desktop: true}) {
		t.Fatal("desktop hook not enabled")
	}
	if err := Run(context.Background(), config.Hooks{Desktop: true}, sampleEntry()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if title != "favicon" || !strings.Contains(msg, "8 icons generated") {
		t.Errorf("toast = %q / %q", title, msg)
	}
}

func TestRunCommandHook(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	out := filepath.Join(t.TempDir(), "count")
	h := config.Hooks{Command: &config.CommandHook{Command: `printf '%s' "$FAVICON_COUNT" > ` + out}}
	if err := Run(context.Background(), h, sampleEntry()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if data, _ := os.ReadFile(out); string(data) != "8" {
		t.Errorf("command saw FAVICON_COUNT=%q", data)
	}
}

func TestRunFailedEntry(t *testing.T) {
	var msg string
	old := showToast
	showToast = func(_, m string) error {
		msg = m
		return nil
	}
	defer func() { showToast = old }()

	e := sampleEntry()
	e.Files, e.Bytes = 0, 0
	e.Failed(errors.New("decode failed"))

	h := config.Hooks{Desktop: true}
	var out string
	if runtime.GOOS != "windows" {
		out = filepath.Join(t.TempDir(), "env")
		h.Command = &config.CommandHook{Command: `printf '%s|%s' "$FAVICON_STATUS" "$FAVICON_ERROR" > ` + out}
	}
	if err := Run(context.Background(), h, e); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if msg != "icon generation failed for /p/logo.svg: decode failed" {
		t.Errorf("toast = %q", msg)
	}
	if out != "" {
		if data, _ := os.ReadFile(out); string(data) != "error|decode failed" {
			t.Errorf("command saw %q", data)
		}
	}
}

func TestCooldown(t *testing.T) {
	t.Setenv("APPDATA", t.TempDir())
	old := showToast
	showToast = func(string, string) error { return nil }
	defer func() { showToast = old }()

	h := config.Hooks{Desktop: true, CooldownSeconds: 60}
	e := sampleEntry()
	if OnCooldown(h, e) {
		t.Fatal("on cooldown before any run")
	}
	if err := Run(context.Background(), h, e); err != nil {
		t.Fatal(err)
	}
	if !OnCooldown(h, e) {
		t.Error("expected cooldown after run")
	}
	h.CooldownSeconds = 0
	if OnCooldown(h, e) {
		t.Error("zero cooldown should never be active")
	}
}
