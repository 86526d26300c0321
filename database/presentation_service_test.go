package database

import (
	"database/sql"
	"testing"

	"slidesmith/config"
	"slidesmith/deck"
)

// newTestDB initializes a migrated database in a temp directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(t.TempDir())
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func samplePresentation() Presentation {
	return Presentation{
		Title: "Q3 Review",
		Outline: []deck.OutlineItem{
			{ID: "s1", Title: "Opening", Index: 0},
			{ID: "s2", Title: "Revenue", Index: 1, ChartRefs: []string{"rev"}},
		},
		Charts: []deck.ChartConfig{
			{
				ID:   "rev",
				Type: deck.ChartBar,
				Series: []deck.Series{
					{Label: "2025", Categories: []string{"Q1", "Q2"}, Values: []float64{3.1, 3.4}},
				},
			},
		},
		Theme: config.Theme{Name: "professional"},
	}
}

func TestPresentationService_SaveAndLoad(t *testing.T) {
	svc := NewPresentationService(newTestDB(t))

	saved, err := svc.Save(samplePresentation())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Save should assign an id")
	}
	if saved.CreatedAt == 0 || saved.UpdatedAt == 0 {
		t.Error("Save should set timestamps")
	}

	loaded, err := svc.Load(saved.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Title != "Q3 Review" {
		t.Errorf("unexpected title: %q", loaded.Title)
	}
	if len(loaded.Outline) != 2 || loaded.Outline[1].ChartRefs[0] != "rev" {
		t.Errorf("outline round trip broken: %+v", loaded.Outline)
	}
	if len(loaded.Charts) != 1 || loaded.Charts[0].Type != deck.ChartBar {
		t.Errorf("chart round trip broken: %+v", loaded.Charts)
	}
	if loaded.Theme.Name != "professional" {
		t.Errorf("theme round trip broken: %+v", loaded.Theme)
	}
}

func TestPresentationService_SaveUpdatesExisting(t *testing.T) {
	svc := NewPresentationService(newTestDB(t))

	saved, err := svc.Save(samplePresentation())
	if err != nil {
		t.Fatal(err)
	}

	saved.Title = "Q3 Review (final)"
	if _, err := svc.Save(saved); err != nil {
		t.Fatalf("update Save failed: %v", err)
	}

	all, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 presentation after update, got %d", len(all))
	}
	if all[0].Title != "Q3 Review (final)" {
		t.Errorf("update not applied: %q", all[0].Title)
	}
}

func TestPresentationService_SaveRequiresTitle(t *testing.T) {
	svc := NewPresentationService(newTestDB(t))

	p := samplePresentation()
	p.Title = ""
	if _, err := svc.Save(p); err == nil {
		t.Error("expected error for missing title")
	}
}

func TestPresentationService_LoadMissing(t *testing.T) {
	svc := NewPresentationService(newTestDB(t))
	if _, err := svc.Load("nope"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestPresentationService_Delete(t *testing.T) {
	svc := NewPresentationService(newTestDB(t))

	saved, err := svc.Save(samplePresentation())
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(saved.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Load(saved.ID); err == nil {
		t.Error("Load should fail after Delete")
	}
	if err := svc.Delete(saved.ID); err == nil {
		t.Error("second Delete should report not found")
	}
}

func TestInitDB_Idempotent(t *testing.T) {
	dir := t.TempDir()
	db, err := InitDB(dir)
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	// rerunning migrations against an existing database is a no-op
	db2, err := InitDB(dir)
	if err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}
	defer db2.Close()

	var count int
	if err := db2.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != len(GetMigrations()) {
		t.Errorf("expected %d applied migrations, got %d", len(GetMigrations()), count)
	}
}
