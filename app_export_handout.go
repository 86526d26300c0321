package main

import (
	"fmt"

	"slidesmith/deck"
)

// ExportPresentationHandout generates a printable A4 outline handout for
// the stored presentation.
func (a *App) ExportPresentationHandout(id string) ExportResult {
	if a.handoutExport == nil {
		return ExportResult{Success: false, Message: "handout export service not initialized"}
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

	a.logger.Section("handout export: " + p.Title)
	a.Log(fmt.Sprintf("[EXPORT-HANDOUT] Generating handout for %q (%d slides)", p.Title, len(slides)))
	path, err := a.handoutExport.ExportHandout(slides, p.Title)
	if err != nil {
		a.Log(fmt.Sprintf("[EXPORT-HANDOUT] Export failed: %v", err))
		return ExportResult{Success: false, Message: err.Error()}
	}

	a.Log("[EXPORT-HANDOUT] Export written to " + path)
	return ExportResult{Success: true, Message: "Export complete", Path: path}
}
