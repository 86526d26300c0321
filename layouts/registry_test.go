package layouts

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeGroup creates a group directory with the given template files and
// optional settings.json content.
func writeGroup(t *testing.T, root, id string, templates []string, settings string) {
	t.Helper()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range templates {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<section class=\"slide\"></section>"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if settings != "" {
		if err := os.WriteFile(filepath.Join(dir, "settings.json"), []byte(settings), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRegistry_Groups(t *testing.T) {
	root := t.TempDir()
	writeGroup(t, root, "professional", []string{"title-slide.html", "chart-slide.html", "bullet-point-slide.html"},
		`{"description": "Clean corporate layouts", "ordered": false, "default": true}`)
	writeGroup(t, root, "classic", []string{"title-slide.html", "content-slide.html"}, "")

	reg := NewRegistry(root, func(msg string) { t.Log(msg) })
	groups, err := reg.Groups()
	if err != nil {
		t.Fatalf("Groups failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	// sorted by id
	if groups[0].ID != "classic" || groups[1].ID != "professional" {
		t.Errorf("unexpected group order: %v, %v", groups[0].ID, groups[1].ID)
	}

	pro := groups[1]
	if pro.Description != "Clean corporate layouts" {
		t.Errorf("settings description not applied: %q", pro.Description)
	}
	if !pro.Default || pro.Ordered {
		t.Errorf("settings flags not applied: default=%v ordered=%v", pro.Default, pro.Ordered)
	}
	wantSlides := []string{"bullet-point-slide", "chart-slide", "title-slide"}
	if !reflect.DeepEqual(pro.Slides, wantSlides) {
		t.Errorf("expected slides %v, got %v", wantSlides, pro.Slides)
	}

	// synthesized settings for the group without settings.json
	classic := groups[0]
	if classic.Description != "classic presentation layouts" {
		t.Errorf("expected synthesized description, got %q", classic.Description)
	}
	if classic.Ordered || classic.Default {
		t.Error("synthesized settings should default ordered=false default=false")
	}
}

func TestRegistry_EmptyGroupExcluded(t *testing.T) {
	root := t.TempDir()
	writeGroup(t, root, "usable", []string{"title-slide.html"}, "")
	// settings only, no templates
	writeGroup(t, root, "empty", nil, `{"description": "nothing here"}`)
	// hidden and test files do not count as templates
	writeGroup(t, root, "junk", []string{".hidden.html", "slide.test.html"}, "")

	reg := NewRegistry(root, nil)
	groups, err := reg.Groups()
	if err != nil {
		t.Fatalf("Groups failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != "usable" {
		t.Errorf("expected only the usable group, got %v", groups)
	}
}

func TestRegistry_GroupsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeGroup(t, root, "modern", []string{"title-slide.html"}, "")

	reg := NewRegistry(root, nil)
	first, err := reg.Groups()
	if err != nil {
		t.Fatal(err)
	}

	// catalog is memoized: later filesystem changes do not leak in
	writeGroup(t, root, "late", []string{"title-slide.html"}, "")
	second, err := reg.Groups()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Groups must be idempotent between calls")
	}
}

func TestRegistry_DefaultGroup(t *testing.T) {
	root := t.TempDir()
	writeGroup(t, root, "alpha", []string{"title-slide.html"}, "")
	writeGroup(t, root, "beta", []string{"title-slide.html"}, `{"default": true}`)

	reg := NewRegistry(root, nil)
	def, err := reg.DefaultGroup()
	if err != nil {
		t.Fatalf("DefaultGroup failed: %v", err)
	}
	if def.ID != "beta" {
		t.Errorf("expected flagged default group, got %q", def.ID)
	}
}

func TestRegistry_UnknownGroup(t *testing.T) {
	root := t.TempDir()
	writeGroup(t, root, "alpha", []string{"title-slide.html"}, "")

	reg := NewRegistry(root, nil)
	if _, err := reg.Group("nope"); err == nil {
		t.Error("expected error for unknown group id")
	}
}

// An ordered group applies its declared sequence strictly: cycling past the
// end and truncating at the outline length, never reordering by content.
func TestLayoutGroup_TemplatesForOrdered(t *testing.T) {
	g := LayoutGroup{
		ID:      "stepwise",
		Ordered: true,
		Slides:  []string{"title-slide", "bullet-point-slide", "footer-slide"},
	}

	got := g.TemplatesFor(5, []bool{true, true, true, true, true})
	want := []string{"title-slide", "bullet-point-slide", "footer-slide", "title-slide", "bullet-point-slide"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLayoutGroup_TemplatesForUnordered(t *testing.T) {
	g := LayoutGroup{
		ID:     "freeform",
		Slides: []string{"bullet-point-slide", "chart-slide", "title-slide"},
	}

	got := g.TemplatesFor(3, []bool{false, true, false})
	want := []string{"bullet-point-slide", "chart-slide", "bullet-point-slide"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLayoutGroup_TemplatesForEmpty(t *testing.T) {
	g := LayoutGroup{ID: "empty"}
	if got := g.TemplatesFor(3, nil); got != nil {
		t.Errorf("expected nil for empty group, got %v", got)
	}
	g = LayoutGroup{ID: "x", Slides: []string{"title-slide"}}
	if got := g.TemplatesFor(0, nil); got != nil {
		t.Errorf("expected nil for zero slides, got %v", got)
	}
}
