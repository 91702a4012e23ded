package main

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/energye/systray"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/Mavwarf/favicon/internal/dashboard"
)

// App ties the Wails window to the dashboard server and the tray.
type App struct {
	ctx   context.Context
	url   string // dashboard address the window shows
	title string
	ready chan struct{} // closed once startup has run

	stopServer context.CancelFunc
	quitOnce   sync.Once
	quitting   atomic.Bool
}

func newApp(root string, port int, stopServer context.CancelFunc) *App {
	return &App{
		url:        dashboard.URL(port),
		title:      dashboard.Title(root),
		ready:      make(chan struct{}),
		stopServer: stopServer,
	}
}

// startup points the WebView at the dashboard server instead of the
// bootstrap page served by the asset handler.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	wailsRuntime.WindowSetTitle(ctx, a.title)
	wailsRuntime.WindowExecJS(ctx, "window.location.replace("+strconv.Quote(a.url)+");")
	close(a.ready)
}

func (a *App) shutdown(ctx context.Context) {
	a.stopServer()
}

// beforeClose hides the window to the tray. Shift+close quits instead.
func (a *App) beforeClose(ctx context.Context) bool {
	if a.quitting.Load() {
		return false
	}
	if isShiftHeld() {
		a.Quit()
		return false
	}
	wailsRuntime.WindowHide(ctx)
	return true
}

// ShowWindow raises the dashboard window, waiting for startup if needed.
// The dashboard's /api/show endpoint and the tray call it.
func (a *App) ShowWindow() {
	<-a.ready
	wailsRuntime.WindowShow(a.ctx)
	wailsRuntime.WindowUnminimise(a.ctx)
}

// Quit stops the dashboard server, removes the tray icon and ends the
// Wails loop. Safe to call more than once.
func (a *App) Quit() {
	a.quitOnce.Do(func() {
		a.quitting.Store(true)
		a.stopServer()
		systray.Quit()
		select {
		case <-a.ready:
			wailsRuntime.Quit(a.ctx)
		default:
		}
	})
}
