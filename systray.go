//go:build !darwin

package main

import (
	"context"
	_ "embed"

	"github.com/getlantern/systray"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// appFromContext recovers the App stored by startup, for tray actions
// that need more than window control.
func appFromContext(ctx context.Context) *App {
	app, _ := ctx.Value(appContextKey).(*App)
	return app
}

// runSystray puts the tray icon up and keeps it until the app quits. The
// systray event loop wants its own goroutine; menu clicks are serviced on
// another one.
func runSystray(ctx context.Context) {
	onReady := func() {
		systray.SetIcon(icon)
		systray.SetTitle("SlideSmith")
		systray.SetTooltip("SlideSmith")

		show := systray.AddMenuItem("Show", "Bring the window to front")
		hide := systray.AddMenuItem("Hide", "Hide the window")
		exports := systray.AddMenuItem("Open export folder", "Open the folder holding generated decks")
		systray.AddSeparator()
		quit := systray.AddMenuItem("Quit", "Quit SlideSmith")

		go func() {
			for {
				select {
				case <-show.ClickedCh:
					wailsRuntime.WindowShow(ctx)
				case <-hide.ClickedCh:
					wailsRuntime.WindowHide(ctx)
				case <-exports.ClickedCh:
					if app := appFromContext(ctx); app != nil {
						app.OpenExportFolder()
					}
				case <-quit.ClickedCh:
					systray.Quit()
					wailsRuntime.Quit(ctx)
				}
			}
		}()
	}

	go systray.Run(onReady, func() {})
}
