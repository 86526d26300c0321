package main

import "context"

// macOS uses the native menu bar instead of a tray icon.
func runSystray(ctx context.Context) {}
