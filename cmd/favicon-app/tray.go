package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/energye/systray"

	"github.com/Mavwarf/favicon/internal/brand"
)

const trayIconSize = 32

// runTray starts the system tray icon. systray.Run blocks until Quit.
func runTray(app *App) {
	// The hidden window systray creates and its message loop must share
	// one OS thread.
	runtime.LockOSThread()
	systray.Run(func() { onTrayReady(app) }, func() {})
}

func onTrayReady(app *App) {
	if icon, err := brand.ICO(trayIconSize); err == nil {
		systray.SetIcon(icon)
	} else {
		fmt.Fprintf(os.Stderr, "warning: tray icon: %v\n", err)
	}
	systray.SetTooltip("favicon")
	systray.SetOnDClick(func(menu systray.IMenu) { app.ShowWindow() })

	mDashboard := systray.AddMenuItem("Open Dashboard", "Show the favicon dashboard window")
	mDashboard.Click(func() { app.ShowWindow() })

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Exit favicon-app")
	mQuit.Click(app.Quit)
}
