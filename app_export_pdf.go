package main

import (
	"fmt"

	"slidesmith/deck"
)

// ExportResult is returned to the frontend after an export attempt.
type ExportResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// ExportPresentationToPdf renders the stored presentation in a headless
// browser and captures it as a 1280x720 PDF in the data directory.
func (a *App) ExportPresentationToPdf(id string) ExportResult {
	p, err := a.LoadPresentation(id)
	if err != nil {
		return ExportResult{Success: false, Message: err.Error()}
	}

	// Resolve before launching a browser so outline/chart mismatches fail
	// cheaply.
	if _, err := deck.ResolveSlides(p.Outline, p.Charts); err != nil {
		return ExportResult{Success: false, Message: err.Error()}
	}

	url, err := a.pageRenderer.URLFor(p.ID)
	if err != nil {
		return ExportResult{Success: false, Message: err.Error()}
	}

	return a.ExportToPdf(url, p.Title)
}

// ExportToPdf captures the given deck page URL as a PDF named after the
// title. Failures are reported back verbatim; there is no automatic
// retry.
func (a *App) ExportToPdf(url, title string) ExportResult {
	if a.chromeExport == nil {
		return ExportResult{Success: false, Message: "export service not initialized"}
	}

	a.activeExports.Add(1)
	defer a.activeExports.Add(-1)

	a.logger.Section("pdf export: " + title)
	a.Log(fmt.Sprintf("[EXPORT-PDF] Starting export of %q from %s", title, url))
	path, err := a.chromeExport.ExportToPdf(a.ctx, url, title)
	if err != nil {
		a.Log(fmt.Sprintf("[EXPORT-PDF] Export failed: %v", err))
		return ExportResult{Success: false, Message: err.Error()}
	}

	a.Log("[EXPORT-PDF] Export written to " + path)
	return ExportResult{Success: true, Message: "Export complete", Path: path}
}
