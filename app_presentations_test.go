package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"slidesmith/config"
	"slidesmith/database"
	"slidesmith/deck"
)

func newTestAppWithDB(t *testing.T) *App {
	t.Helper()
	app := newTestApp(t)

	db, err := database.InitDB(app.settings.DataDir)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	app.db = db
	app.presentationService = database.NewPresentationService(db)
	app.artifactService = database.NewArtifactService(app.settings.DataDir)
	return app
}

func TestSavePresentation_RequiresTitle(t *testing.T) {
	app := newTestAppWithDB(t)

	_, err := app.SavePresentation(database.Presentation{})
	if err == nil {
		t.Fatal("Expected error for empty title")
	}
}

func TestSavePresentation_RejectsInvalidChart(t *testing.T) {
	app := newTestAppWithDB(t)

	_, err := app.SavePresentation(database.Presentation{
		Title: "Quarterly Review",
		Charts: []deck.ChartConfig{
			{ID: "c1", Type: "sunburst", Series: []deck.Series{
				{Label: "s", Categories: []string{"a"}, Values: []float64{1}},
			}},
		},
	})
	if err == nil {
		t.Fatal("Expected error for unsupported chart type")
	}
}

func TestResolveSlides_JoinsChartsThroughStore(t *testing.T) {
	app := newTestAppWithDB(t)

	saved, err := app.SavePresentation(database.Presentation{
		Title: "Quarterly Review",
		Outline: []deck.OutlineItem{
			{ID: "s1", Title: "Intro", Body: "welcome"},
			{ID: "s2", Title: "Revenue", ChartRefs: []string{"c1"}},
		},
		Charts: []deck.ChartConfig{
			{
				ID:   "c1",
				Type: deck.ChartPie,
				Series: []deck.Series{
					{Label: "revenue", Categories: []string{"q1", "q2"}, Values: []float64{10, 20}},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("SavePresentation failed: %v", err)
	}

	slides, err := app.ResolveSlides(saved.ID)
	if err != nil {
		t.Fatalf("ResolveSlides failed: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("Expected 2 slides, got %d", len(slides))
	}
	if slides[0].Chart != nil {
		t.Error("Expected first slide without chart")
	}
	if slides[1].Chart == nil || slides[1].Chart.ID != "c1" {
		t.Error("Expected second slide joined to chart c1")
	}
}

func writeLayoutGroup(t *testing.T, root, id, settings string, templates ...string) {
	t.Helper()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range templates {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<div class=\"slide\"></div>"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if settings != "" {
		if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(settings), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestAssignTemplates_OrderedGroupCycles(t *testing.T) {
	app := newTestAppWithDB(t)

	writeLayoutGroup(t, app.settings.LayoutsDir, "sequence", `{"ordered": true}`,
		"1-title.html", "2-bullets.html", "3-footer.html")

	outline := make([]deck.OutlineItem, 5)
	for i := range outline {
		outline[i] = deck.OutlineItem{ID: fmt.Sprintf("s%d", i), Title: fmt.Sprintf("Slide %d", i)}
	}
	saved, err := app.SavePresentation(database.Presentation{
		Title:   "Roadmap",
		Outline: outline,
		Theme:   config.Theme{Name: "sequence"},
	})
	if err != nil {
		t.Fatalf("SavePresentation failed: %v", err)
	}

	got, err := app.AssignTemplates(saved.ID)
	if err != nil {
		t.Fatalf("AssignTemplates failed: %v", err)
	}
	want := []string{"1-title", "2-bullets", "3-footer", "1-title", "2-bullets"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d assignments, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Slide %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestAssignTemplates_UnorderedGroupMatchesCharts(t *testing.T) {
	app := newTestAppWithDB(t)

	writeLayoutGroup(t, app.settings.LayoutsDir, "freeform", "",
		"chart-slide.html", "plain-slide.html")

	saved, err := app.SavePresentation(database.Presentation{
		Title: "Quarterly Review",
		Outline: []deck.OutlineItem{
			{ID: "s1", Title: "Intro"},
			{ID: "s2", Title: "Revenue", ChartRefs: []string{"c1"}},
		},
		Charts: []deck.ChartConfig{
			{
				ID:   "c1",
				Type: deck.ChartBar,
				Series: []deck.Series{
					{Label: "revenue", Categories: []string{"q1"}, Values: []float64{10}},
				},
			},
		},
		Theme: config.Theme{Name: "freeform"},
	})
	if err != nil {
		t.Fatalf("SavePresentation failed: %v", err)
	}

	got, err := app.AssignTemplates(saved.ID)
	if err != nil {
		t.Fatalf("AssignTemplates failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 assignments, got %d", len(got))
	}
	if got[0] != "plain-slide" {
		t.Errorf("Expected plain template for the chartless slide, got %s", got[0])
	}
	if got[1] != "chart-slide" {
		t.Errorf("Expected chart template for the chart slide, got %s", got[1])
	}
}

func TestAssignTemplates_UnknownThemeGroup(t *testing.T) {
	app := newTestAppWithDB(t)

	writeLayoutGroup(t, app.settings.LayoutsDir, "modern", "", "title-slide.html")

	saved, err := app.SavePresentation(database.Presentation{
		Title:   "Orphan",
		Outline: []deck.OutlineItem{{ID: "s1", Title: "Intro"}},
		Theme:   config.Theme{Name: "missing-group"},
	})
	if err != nil {
		t.Fatalf("SavePresentation failed: %v", err)
	}

	if _, err := app.AssignTemplates(saved.ID); err == nil {
		t.Error("Expected error for a theme naming an unknown layout group")
	}
}

func TestExportToPdf_WithoutService(t *testing.T) {
	app := newTestApp(t)

	result := app.ExportToPdf("http://localhost:8642/pdf-maker?id=x", "Deck")
	if result.Success {
		t.Error("Expected failure without export service")
	}
}

func TestListArtifacts_EmptyDataDir(t *testing.T) {
	app := newTestAppWithDB(t)

	artifacts, err := app.ListArtifacts()
	if err != nil {
		t.Fatalf("ListArtifacts failed: %v", err)
	}
	// The sqlite database file is not an artifact.
	if len(artifacts) != 0 {
		t.Errorf("Expected no artifacts, got %d", len(artifacts))
	}
}
