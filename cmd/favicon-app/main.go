package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/Mavwarf/favicon/internal/config"
	"github.com/Mavwarf/favicon/internal/dashboard"
)

func main() {
	configPath := ""
	root := "."
	port := 8812

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		case "--root", "-r":
			if i+1 < len(args) {
				root = args[i+1]
				i++
			}
		case "--port", "-p":
			if i+1 < len(args) {
				fmt.Sscanf(args[i+1], "%d", &port)
				i++
			}
		}
	}

	cfg, err := config.Load(configPath, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "favicon-app: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "favicon-app: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := newApp(root, port, cancel)

	// Start the dashboard HTTP server in the background.
	go func() {
		err := dashboard.Serve(ctx, dashboard.Options{
			Root:       root,
			ConfigPath: configPath,
			Port:       port,
			ShowFn:     app.ShowWindow,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "favicon-app: dashboard: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := waitForServer(port, 3*time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "favicon-app: %v\n", err)
		os.Exit(1)
	}

	go runTray(app)

	// A minimal handler bootstraps the WebView with an empty page.
	// OnStartup then navigates to the real dashboard URL.
	loader := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html><html><body style="background:#111418"></body></html>`))
	})

	err = wails.Run(&options.App{
		Title:     dashboard.Title(root),
		Width:     1100,
		Height:    800,
		MinWidth:  720,
		MinHeight: 560,
		AssetServer: &assetserver.Options{
			Handler: loader,
		},
		BackgroundColour: &options.RGBA{R: 17, G: 20, B: 24, A: 255}, // #111418
		OnStartup:        app.startup,
		OnBeforeClose:    app.beforeClose,
		OnShutdown:       app.shutdown,
		Bind:             []interface{}{app},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "favicon-app: %v\n", err)
		os.Exit(1)
	}
}

// waitForServer polls the dashboard HTTP server until it responds or the
// timeout expires.
func waitForServer(port int, timeout time.Duration) error {
	addr := dashboard.URL(port) + "/"
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(addr)
		if err == nil {
			resp.Body.Close()
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("dashboard server not ready after %s", timeout)
}
