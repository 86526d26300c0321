package main

import (
	"fmt"

	"slidesmith/deck"
)

// ExportPresentationToPptx generates a native PowerPoint file from the
// stored presentation. No browser is involved.
func (a *App) ExportPresentationToPptx(id string) ExportResult {
	if a.pptExport == nil {
		return ExportResult{Success: false, Message: "pptx export service not initialized"}
	}

	p, err := a.LoadPresentation(id)
	if err != nil {
		return ExportResult{Success: false, Message: err.Error()}
	}

	slides, err := deck.ResolveSlides(p.Outline, p.Charts)
	if err != nil {
		return ExportResult{Success: false, Message: err.Error()}
	}

	a.activeExports.Add(1)
	defer a.activeExports.Add(-1)

	a.logger.Section("pptx export: " + p.Title)
	a.Log(fmt.Sprintf("[EXPORT-PPTX] Generating PowerPoint for %q (%d slides)", p.Title, len(slides)))
	path, err := a.pptExport.ExportToPptx(slides, p.Theme, p.Title)
	if err != nil {
		a.Log(fmt.Sprintf("[EXPORT-PPTX] Export failed: %v", err))
		return ExportResult{Success: false, Message: err.Error()}
	}

	a.Log("[EXPORT-PPTX] Export written to " + path)
	return ExportResult{Success: true, Message: "Export complete", Path: path}
}
