package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/status"
)

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect width="32" height="32" fill="#336699"/></svg>`

func newProject(t *testing.T) (string, http.Handler) {
	t.Helper()
	t.Setenv("APPDATA", t.TempDir())
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, "logo.svg"), []byte(logoSVG), 0644)
	os.WriteFile(filepath.Join(root, "index.html"), []byte("<html>\n<head>\n</head>\n</html>\n"), 0644)
	os.WriteFile(filepath.Join(root, "favicon.config.json"), []byte(`{"log": true}`), 0644)
	return root, NewHandler(Options{Root: root})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
	return v
}

func TestHandleIndex(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handleIndex(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if !strings.Contains(ct, "text/html") {
		t.Fatalf("expected text/html content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "favicon dashboard") {
		t.Fatal("expected HTML to contain 'favicon dashboard'")
	}
}

func TestHandleIndexNotFound(t *testing.T) {
	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	handleIndex(w, req)
	if w.Code != 404 {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGenerateFlow(t *testing.T) {
	root, h := newProject(t)

	before := decode[status.Report](t, do(t, h, "GET", "/api/status", ""))
	if len(before.Missing()) != 8 {
		t.Fatalf("missing before = %v", before.Missing())
	}

	w := do(t, h, "POST", "/api/generate", `{"mode":"traditional","accent_color":"#ff0000"}`)
	if w.Code != 200 {
		t.Fatalf("generate: %d %s", w.Code, w.Body.String())
	}
	gen := decode[generateResponse](t, w)
	if gen.Mode != "traditional" || len(gen.Files) != 8 {
		t.Errorf("generate = %+v", gen)
	}
	pinned, err := os.ReadFile(filepath.Join(root, "public", "safari-pinned-tab.svg"))
	if err != nil || !strings.Contains(string(pinned), `fill="#ff0000"`) {
		t.Errorf("pinned tab = %q, %v", pinned, err)
	}

	after := decode[status.Report](t, do(t, h, "GET", "/api/status", ""))
	if !after.Complete() {
		t.Errorf("missing after = %v", after.Missing())
	}

	icon := do(t, h, "GET", "/icons/icon-192.png", "")
	if icon.Code != 200 || icon.Header().Get("Content-Type") != "image/png" {
		t.Errorf("icon: %d %q", icon.Code, icon.Header().Get("Content-Type"))
	}

	history := decode[[]jsonEntry](t, do(t, h, "GET", "/api/history", ""))
	if len(history) != 1 || history[0].Files != 8 || history[0].Status != "ok" {
		t.Errorf("history = %+v", history)
	}

	days := decode[[]jsonDay](t, do(t, h, "GET", "/api/summary?days=1", ""))
	if len(days) != 1 || days[0].Runs != 1 {
		t.Errorf("summary = %+v", days)
	}
}

func TestGenerateErrors(t *testing.T) {
	_, h := newProject(t)

	tests := []struct {
		name   string
		method string
		body   string
		code   int
	}{
		{"wrong method", "GET", "", http.StatusMethodNotAllowed},
		{"bad json", "POST", "{", http.StatusBadRequest},
		{"bad mode", "POST", `{"mode":"sideways"}`, http.StatusBadRequest},
		{"missing source", "POST", `{"source":"nope.png"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, "/api/generate", tt.body)
			if w.Code != tt.code {
				t.Errorf("code = %d, want %d (%s)", w.Code, tt.code, w.Body.String())
			}
		})
	}
}

func TestHandleHTML(t *testing.T) {
	root, h := newProject(t)

	first := decode[htmlResponse](t, do(t, h, "POST", "/api/html", ""))
	if first.Status != "inserted" {
		t.Errorf("first = %+v", first)
	}
	data, _ := os.ReadFile(filepath.Join(root, "index.html"))
	if !strings.Contains(string(data), `rel="apple-touch-icon"`) {
		t.Errorf("links not inserted:\n%s", data)
	}

	second := decode[htmlResponse](t, do(t, h, "POST", "/api/html", "{}"))
	if second.Status != "already-present" {
		t.Errorf("second = %+v", second)
	}

	missing := do(t, h, "POST", "/api/html", `{"path":"nope.html"}`)
	if missing.Code != http.StatusNotFound {
		t.Errorf("missing file code = %d", missing.Code)
	}
}

func TestHandleIconUnknown(t *testing.T) {
	_, h := newProject(t)
	for _, path := range []string{"/icons/secret.txt", "/icons/icon-192.png"} {
		if w := do(t, h, "GET", path, ""); w.Code != http.StatusNotFound {
			t.Errorf("%s: code = %d", path, w.Code)
		}
	}
}

func TestHistoryInvalidHours(t *testing.T) {
	_, h := newProject(t)
	if w := do(t, h, "GET", "/api/history?hours=abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("code = %d", w.Code)
	}
}

func TestRedactConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Hooks.MQTT = &config.MQTTHook{Broker: "tcp://localhost:1883", Topic: "t", Password: "secret"}
	cfg.Hooks.Webhook = &config.WebhookHook{URL: "http://x", Headers: map[string]string{"Authorization": "Bearer abc"}}
	cfg.Hooks.Slack = &config.ChatHook{Webhook: "https://hooks.slack.com/secret"}
	cfg.Hooks.Telegram = &config.TelegramHook{Token: "bot-token", ChatID: "1"}

	r := redactConfig(cfg)
	if r.Hooks.MQTT.Password != "***" || r.Hooks.Webhook.Headers["Authorization"] != "***" {
		t.Errorf("not redacted: %+v %+v", r.Hooks.MQTT, r.Hooks.Webhook)
	}
	if r.Hooks.Slack.Webhook != "***" || r.Hooks.Telegram.Token != "***" || r.Hooks.Telegram.ChatID != "1" {
		t.Errorf("chat hooks not redacted: %+v %+v", r.Hooks.Slack, r.Hooks.Telegram)
	}
	if r.Hooks.Discord != nil {
		t.Error("absent discord hook should stay nil")
	}
	if cfg.Hooks.Slack.Webhook == "***" || cfg.Hooks.MQTT.Password != "secret" || cfg.Hooks.Webhook.Headers["Authorization"] != "Bearer abc" {
		t.Error("original config was modified")
	}
}

func TestShowEndpoint(t *testing.T) {
	called := false
	h := NewHandler(Options{Root: t.TempDir(), ShowFn: func() { called = true }})
	if w := do(t, h, "POST", "/api/show", ""); w.Code != http.StatusNoContent || !called {
		t.Errorf("code = %d, called = %v", w.Code, called)
	}
	if w := do(t, h, "GET", "/api/show", ""); w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET code = %d", w.Code)
	}
}

func TestURLAndTitle(t *testing.T) {
	if got := URL(8812); got != "http://127.0.0.1:8812" {
		t.Errorf("URL = %q", got)
	}
	root := filepath.Join(t.TempDir(), "shop")
	if got := Title(root); got != "favicon dashboard - shop" {
		t.Errorf("Title = %q", got)
	}
}
