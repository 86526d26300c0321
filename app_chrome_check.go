package main

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/chromedp/chromedp"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// ChromeCheckResult represents the result of Chrome availability check
type ChromeCheckResult struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
	Path      string `json:"path,omitempty"`
}

// CheckChromeAvailability checks if Chrome/Chromium is available for chromedp
func (a *App) CheckChromeAvailability() ChromeCheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Headless,
	)
	defer allocCancel()

	cdpCtx, cdpCancel := chromedp.NewContext(allocCtx)
	defer cdpCancel()

	var title string
	err := chromedp.Run(cdpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.Title(&title),
	)

	if err != nil {
		return ChromeCheckResult{
			Available: false,
			Message:   getChromeInstallMessage(),
		}
	}

	return ChromeCheckResult{
		Available: true,
		Message:   "Chrome/Chromium is available for PDF export",
		Path:      findChromePath(),
	}
}

// CheckChromeOnStartup checks Chrome availability and shows dialog if not available
func (a *App) CheckChromeOnStartup() bool {
	result := a.CheckChromeAvailability()

	if !result.Available {
		a.Log("[CHROME-CHECK] Chrome not available, showing install dialog")

		go func() {
			// Wait a bit for UI to be ready
			time.Sleep(500 * time.Millisecond)

			selection, err := wailsRuntime.MessageDialog(a.ctx, wailsRuntime.MessageDialogOptions{
				Type:          wailsRuntime.QuestionDialog,
				Title:         "Chrome Browser Required",
				Message:       "PDF export requires Chrome browser.\n\nWould you like to download it now?",
				Buttons:       []string{"Download Chrome", "Later"},
				DefaultButton: "Download Chrome",
				CancelButton:  "Later",
			})

			if err == nil && selection == "Download Chrome" {
				a.Log("[CHROME-CHECK] User chose to download Chrome")
				a.OpenURL("https://www.google.com/chrome/")
			} else {
				a.Log("[CHROME-CHECK] User chose to install Chrome later")
			}
		}()

		return false
	}

	a.Log("[CHROME-CHECK] Chrome is available")
	return true
}

// OpenURL opens a URL in the default browser
func (a *App) OpenURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		a.Log("[OPEN-URL] Unsupported platform: " + runtime.GOOS)
		return nil
	}

	err := cmd.Start()
	if err != nil {
		a.Log("[OPEN-URL] Failed to open URL: " + err.Error())
		return err
	}

	a.Log("[OPEN-URL] Opened URL: " + url)
	return nil
}

// OpenExportFolder opens the managed data directory in the system file
// manager so the user can reach generated artifacts directly.
func (a *App) OpenExportFolder() error {
	dir := a.settings.DataDir
	if dir == "" {
		return fmt.Errorf("no data directory configured")
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", dir)
	case "darwin":
		cmd = exec.Command("open", dir)
	case "linux":
		cmd = exec.Command("xdg-open", dir)
	default:
		a.Log("[OPEN-FOLDER] Unsupported platform: " + runtime.GOOS)
		return nil
	}

	if err := cmd.Start(); err != nil {
		a.Log("[OPEN-FOLDER] Failed to open folder: " + err.Error())
		return err
	}
	a.Log("[OPEN-FOLDER] Opened " + dir)
	return nil
}

// getChromeInstallMessage returns platform-specific Chrome installation instructions
func getChromeInstallMessage() string {
	switch runtime.GOOS {
	case "windows":
		return "Chrome browser not detected\n\n" +
			"PDF export requires Chrome or Chromium browser.\n\n" +
			"Installation:\n" +
			"1. Download Chrome: https://www.google.com/chrome/\n" +
			"2. Or Chromium: https://www.chromium.org/\n" +
			"3. Restart the app after installation\n\n" +
			"Note: If Chrome is installed but not detected, ensure it's in the default location."

	case "darwin":
		return "Chrome browser not detected\n\n" +
			"PDF export requires Chrome or Chromium browser.\n\n" +
			"Installation:\n" +
			"1. Using Homebrew: brew install --cask google-chrome\n" +
			"2. Or download from: https://www.google.com/chrome/\n" +
			"3. Restart the app after installation\n\n" +
			"Note: Ensure Chrome is installed at /Applications/Google Chrome.app"

	case "linux":
		return "Chrome browser not detected\n\n" +
			"PDF export requires Chrome or Chromium browser.\n\n" +
			"Installation:\n" +
			"Ubuntu/Debian: sudo apt install chromium-browser\n" +
			"Fedora: sudo dnf install chromium\n" +
			"Arch: sudo pacman -S chromium\n\n" +
			"Or download Chrome: https://www.google.com/chrome/\n\n" +
			"Restart the app after installation."

	default:
		return "Chrome browser not detected. Please install Chrome or Chromium to use PDF export."
	}
}

// findChromePath attempts to find the Chrome executable path
func findChromePath() string {
	var paths []string

	switch runtime.GOOS {
	case "windows":
		paths = []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		}
	case "darwin":
		paths = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	case "linux":
		paths = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	}

	for _, path := range paths {
		if _, err := exec.LookPath(path); err == nil {
			return path
		}
	}

	return ""
}
