package main

import (
	"fmt"

	"slidesmith/database"
	"slidesmith/deck"
	"slidesmith/layouts"
)

// SavePresentation inserts or updates a presentation record.
func (a *App) SavePresentation(p database.Presentation) (database.Presentation, error) {
	if a.presentationService == nil {
		return database.Presentation{}, fmt.Errorf("presentation service not initialized")
	}
	if err := ValidateRequired("title", p.Title); err != nil {
		return database.Presentation{}, err
	}
	if err := ValidateStringLength("title", p.Title, 1, 200); err != nil {
		return database.Presentation{}, err
	}
	for _, chart := range p.Charts {
		if err := chart.Validate(); err != nil {
			return database.Presentation{}, fmt.Errorf("chart %q: %w", chart.ID, err)
		}
	}
	return a.presentationService.Save(p)
}

// LoadPresentation returns the full stored record including outline and
// chart payloads.
func (a *App) LoadPresentation(id string) (*database.Presentation, error) {
	if a.presentationService == nil {
		return nil, fmt.Errorf("presentation service not initialized")
	}
	return a.presentationService.Load(id)
}

// ListPresentations returns summaries of stored presentations, newest
// first. Outline payloads are not included.
func (a *App) ListPresentations() ([]database.Presentation, error) {
	if a.presentationService == nil {
		return nil, fmt.Errorf("presentation service not initialized")
	}
	return a.presentationService.List()
}

// DeletePresentation removes a stored presentation.
func (a *App) DeletePresentation(id string) error {
	if a.presentationService == nil {
		return fmt.Errorf("presentation service not initialized")
	}
	return a.presentationService.Delete(id)
}

// ResolveSlides joins a presentation's outline with its chart dataset
// into render-ready slide models.
func (a *App) ResolveSlides(id string) ([]deck.SlideModel, error) {
	p, err := a.LoadPresentation(id)
	if err != nil {
		return nil, err
	}
	return deck.ResolveSlides(p.Outline, p.Charts)
}

// AssignTemplates returns the template name for each slide of the stored
// presentation, applying its theme's layout group. Ordered groups cycle
// their declared sequence; unordered groups pick per-slide best fit, so
// chart slides land on a chart template when the group carries one.
func (a *App) AssignTemplates(id string) ([]string, error) {
	if a.layoutRegistry == nil {
		return nil, fmt.Errorf("layout registry not initialized")
	}

	p, err := a.LoadPresentation(id)
	if err != nil {
		return nil, err
	}
	slides, err := deck.ResolveSlides(p.Outline, p.Charts)
	if err != nil {
		return nil, err
	}

	var group layouts.LayoutGroup
	if p.Theme.Name != "" {
		group, err = a.layoutRegistry.Group(p.Theme.Name)
	} else {
		group, err = a.layoutRegistry.DefaultGroup()
	}
	if err != nil {
		return nil, err
	}

	return group.TemplatesFor(len(slides), deck.HasChartFlags(slides)), nil
}

// GetLayoutGroups returns the scanned layout catalog.
func (a *App) GetLayoutGroups() ([]layouts.LayoutGroup, error) {
	if a.layoutRegistry == nil {
		return nil, fmt.Errorf("layout registry not initialized")
	}
	return a.layoutRegistry.Groups()
}

// GetLayoutGroup returns one layout group by id.
func (a *App) GetLayoutGroup(id string) (layouts.LayoutGroup, error) {
	if a.layoutRegistry == nil {
		return layouts.LayoutGroup{}, fmt.Errorf("layout registry not initialized")
	}
	return a.layoutRegistry.Group(id)
}

// ListArtifacts returns metadata for every generated export file.
func (a *App) ListArtifacts() ([]database.ArtifactInfo, error) {
	if a.artifactService == nil {
		return nil, fmt.Errorf("artifact service not initialized")
	}
	return a.artifactService.ListArtifacts()
}

// HasArtifacts reports whether any export artifact exists yet.
func (a *App) HasArtifacts() (bool, error) {
	if a.artifactService == nil {
		return false, fmt.Errorf("artifact service not initialized")
	}
	return a.artifactService.HasArtifacts()
}
