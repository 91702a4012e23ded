// Package dashboard serves a local page for previewing a project's icons,
// running generation and browsing the generation history.
package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Mavwarf/favicon/internal/catalog"
	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/eventlog"
	"github.com/Mavwarf/favicon/internal/framework"
	"github.com/Mavwarf/favicon/internal/htmlinject"
	"github.com/Mavwarf/favicon/internal/httputil"
	"github.com/Mavwarf/favicon/internal/paths"
	"github.com/Mavwarf/favicon/internal/runner"
	"github.com/Mavwarf/favicon/internal/status"
)

//go:embed static/index.html
var staticFS embed.FS

// Options configure the dashboard server.
type Options struct {
	Root       string // project root
	ConfigPath string // explicit config file, "" to search
	Port       int
	Open       bool   // open a browser window once listening
	ShowFn     func() // raises the desktop window, nil outside the app
}

type server struct {
	opts Options
}

type jsonEntry struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Source    string `json:"source"`
	OutputDir string `json:"output_dir"`
	Mode      string `json:"mode"`
	Files     int    `json:"files"`
	Size      string `json:"size"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

func entryToJSON(e eventlog.Entry) jsonEntry {
	return jsonEntry{
		ID:        e.ID,
		Time:      e.Time.Format(time.RFC3339),
		Source:    e.Source,
		OutputDir: e.OutputDir,
		Mode:      e.Mode,
		Files:     e.Files,
		Size:      humanize.Bytes(uint64(e.Bytes)),
		Status:    e.Status,
		Error:     e.Error,
	}
}

type jsonDay struct {
	Date   string `json:"date"`
	Runs   int    `json:"runs"`
	Failed int    `json:"failed"`
	Files  int    `json:"files"`
	Size   string `json:"size"`
}

type generateRequest struct {
	Source     string `json:"source"`
	OutputDir  string `json:"output_dir"`
	Accent     string `json:"accent_color"`
	Mode       string `json:"mode"`
	ICOEncoder string `json:"ico_encoder"`
}

type generateResponse struct {
	Mode      string   `json:"mode"`
	OutputDir string   `json:"output_dir"`
	Files     []string `json:"files"`
	Warnings  []string `json:"warnings,omitempty"`
	Summary   string   `json:"summary"`
}

type htmlRequest struct {
	Path   string `json:"path"`
	Accent string `json:"accent_color"`
}

type htmlResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
	Markup string `json:"markup,omitempty"`
}

// NewHandler returns the dashboard routes.
func NewHandler(opts Options) http.Handler {
	if opts.Root == "" {
		opts.Root = "."
	}
	if abs, err := filepath.Abs(opts.Root); err == nil {
		opts.Root = abs
	}
	s := &server{opts: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/html", s.handleHTML)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/icons/", s.handleIcon)
	if opts.ShowFn != nil {
		mux.HandleFunc("/api/show", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			opts.ShowFn()
			w.WriteHeader(http.StatusNoContent)
		})
	}
	return mux
}

// URL is the address Serve listens on for port.
func URL(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d", port)
}

// Title names the dashboard window after the project root's directory.
func Title(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "favicon dashboard"
	}
	return "favicon dashboard - " + filepath.Base(abs)
}

// Serve listens on 127.0.0.1:Port until ctx is canceled.
func Serve(ctx context.Context, opts Options) error {
	url := URL(opts.Port)
	addr := strings.TrimPrefix(url, "http://")
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx)
	}()

	log.Printf("dashboard: %s", url)

	if opts.Open {
		go openBrowser(url)
	}

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func openBrowser(url string) {
	// Browsers that support --app mode (chromeless window).
	appBrowsers := [][]string{
		{"msedge", "--app=" + url},
		{"chrome", "--app=" + url},
		{"google-chrome", "--app=" + url},
		{"chromium", "--app=" + url},
	}

	for _, b := range appBrowsers {
		if path, err := exec.LookPath(b[0]); err == nil {
			if exec.Command(path, b[1:]...).Start() == nil {
				return
			}
		}
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	cmd.Start()
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *server) config() (config.Config, error) {
	return config.Load(s.opts.ConfigPath, s.opts.Root)
}

func (s *server) openStore() (eventlog.Store, error) {
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	return eventlog.Open(cfg.Storage, "")
}

func (s *server) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.config()
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, redactConfig(cfg))
}

// redactConfig masks hook credentials before the config leaves the process.
func redactConfig(cfg config.Config) config.Config {
	if m := cfg.Hooks.MQTT; m != nil {
		c := *m
		if c.Password != "" {
			c.Password = "***"
		}
		cfg.Hooks.MQTT = &c
	}
	if h := cfg.Hooks.Webhook; h != nil {
		c := *h
		if len(c.Headers) > 0 {
			c.Headers = make(map[string]string, len(h.Headers))
			for k := range h.Headers {
				c.Headers[k] = "***"
			}
		}
		cfg.Hooks.Webhook = &c
	}
	for _, h := range []**config.ChatHook{&cfg.Hooks.Slack, &cfg.Hooks.Discord} {
		if *h != nil {
			c := **h
			c.Webhook = "***"
			*h = &c
		}
	}
	if t := cfg.Hooks.Telegram; t != nil {
		c := *t
		c.Token = "***"
		cfg.Hooks.Telegram = &c
	}
	return cfg
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, status.Check(s.opts.Root))
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	cfg, err := s.config()
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	p, err := runner.Prepare(runner.Options{
		Root:       s.opts.Root,
		Source:     req.Source,
		OutputDir:  req.OutputDir,
		Accent:     req.Accent,
		Mode:       req.Mode,
		ICOEncoder: req.ICOEncoder,
		Config:     cfg,
	})
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := p.Run(r.Context())
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res := out.Result
	warnings := append(append(p.Notices(), res.Warnings...), out.Warnings...)
	httputil.WriteJSON(w, http.StatusOK, generateResponse{
		Mode:      res.Mode.String(),
		OutputDir: res.OutputDir,
		Files:     res.Names(),
		Warnings:  warnings,
		Summary:   res.Summary(),
	})
}

func (s *server) handleHTML(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req htmlRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	accent := req.Accent
	if accent == "" {
		if cfg, err := s.config(); err == nil {
			accent = cfg.AccentColor
		}
	}

	out, err := htmlinject.Integrate(s.opts.Root, req.Path, accent)
	switch {
	case err == nil, errors.Is(err, htmlinject.ErrAlreadyIntegrated), errors.Is(err, htmlinject.ErrNoHeadTag):
		httputil.WriteJSON(w, http.StatusOK, htmlResponse{
			Status: out.Status.String(),
			Path:   out.Path,
			Markup: out.Markup,
		})
	case errors.Is(err, htmlinject.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, err.Error())
	default:
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	store, err := s.openStore()
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer store.Close()

	var entries []eventlog.Entry
	if h := r.URL.Query().Get("hours"); h != "" {
		v, err := strconv.Atoi(h)
		if err != nil || v <= 0 {
			httputil.WriteError(w, http.StatusBadRequest, "invalid hours")
			return
		}
		entries, err = store.EntriesSince(time.Now().Add(-time.Duration(v) * time.Hour))
		if err != nil {
			httputil.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
	} else {
		limit := 50
		if l := r.URL.Query().Get("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v >= 0 {
				limit = v
			}
		}
		entries, err = store.Entries(limit)
		if err != nil {
			httputil.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	out := make([]jsonEntry, len(entries))
	for i, e := range entries {
		out[i] = entryToJSON(e)
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (s *server) handleSummary(w http.ResponseWriter, r *http.Request) {
	days := 7
	if d := r.URL.Query().Get("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v >= 0 {
			days = v
		}
	}
	store, err := s.openStore()
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer store.Close()

	entries, err := store.Entries(0)
	if err != nil {
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	groups := eventlog.SummarizeByDay(entries, days)
	out := make([]jsonDay, len(groups))
	for i, g := range groups {
		out[i] = jsonDay{
			Date:   g.Date.Format("2006-01-02"),
			Runs:   g.Runs,
			Failed: g.Failed,
			Files:  g.Files,
			Size:   humanize.Bytes(uint64(g.Bytes)),
		}
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// handleIcon serves a generated file by catalog name from the static
// directory, or the app directory when the icons live there.
func (s *server) handleIcon(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/icons/")
	if name != catalog.ManifestFile {
		a, ok := catalog.Lookup(name)
		if !ok {
			http.NotFound(w, r)
			return
		}
		name = a.Filename
	}

	p := framework.Inspect(s.opts.Root)
	dirs := []string{p.StaticDir()}
	if dir, ok := p.AppRouterDir(); ok {
		dirs = append(dirs, dir)
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if paths.Exists(path) {
			w.Header().Set("Cache-Control", "no-store")
			http.ServeFile(w, r, path)
			return
		}
	}
	http.NotFound(w, r)
}
