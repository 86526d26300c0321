// Package layouts enumerates the slide layout template families available
// to the page renderer. The catalog is filesystem-driven: one subdirectory
// per group under a configured root, template files beside an optional
// settings.json.
package layouts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const settingsFileName = "settings.json"

// GroupSettings is the optional per-group settings document.
type GroupSettings struct {
	Description string `json:"description"`
	Ordered     bool   `json:"ordered"`
	Default     bool   `json:"default"`
}

// LayoutGroup is a named family of slide layout templates.
type LayoutGroup struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Ordered     bool     `json:"ordered"`
	Default     bool     `json:"default"`
	Slides      []string `json:"slides"` // template names in declared sequence
}

// TemplatesFor assigns a template name to each of n slides. hasChart marks
// slides carrying a chart binding; its length must be n.
//
// Ordered groups apply the declared sequence strictly, cycling when the
// outline is longer than the sequence and truncating at exactly n,
// regardless of content shape. Unordered groups pick a best-fit template
// per slide: chart slides get a chart template when the group has one.
func (g LayoutGroup) TemplatesFor(n int, hasChart []bool) []string {
	if n <= 0 || len(g.Slides) == 0 {
		return nil
	}

	out := make([]string, n)
	if g.Ordered {
		for i := 0; i < n; i++ {
			out[i] = g.Slides[i%len(g.Slides)]
		}
		return out
	}

	chartTemplate, plainTemplate := "", ""
	for _, name := range g.Slides {
		if strings.Contains(name, "chart") {
			if chartTemplate == "" {
				chartTemplate = name
			}
		} else if plainTemplate == "" {
			plainTemplate = name
		}
	}
	if plainTemplate == "" {
		plainTemplate = g.Slides[0]
	}

	for i := 0; i < n; i++ {
		if i < len(hasChart) && hasChart[i] && chartTemplate != "" {
			out[i] = chartTemplate
		} else {
			out[i] = plainTemplate
		}
	}
	return out
}

// Registry scans a root directory once and exposes the discovered groups
// as an immutable slice.
type Registry struct {
	root   string
	logger func(string)

	once   sync.Once
	groups []LayoutGroup
	err    error
}

// NewRegistry creates a registry over the given catalog root. The scan
// happens lazily on first use and is memoized.
func NewRegistry(root string, logger func(string)) *Registry {
	return &Registry{root: root, logger: logger}
}

// Groups returns every group with at least one usable template, sorted by
// id. Groups with zero template files are never surfaced.
func (r *Registry) Groups() ([]LayoutGroup, error) {
	r.once.Do(func() {
		r.groups, r.err = scanCatalog(r.root, r.logger)
	})
	return r.groups, r.err
}

// Group returns the group with the given id.
func (r *Registry) Group(id string) (LayoutGroup, error) {
	groups, err := r.Groups()
	if err != nil {
		return LayoutGroup{}, err
	}
	for _, g := range groups {
		if g.ID == id {
			return g, nil
		}
	}
	return LayoutGroup{}, fmt.Errorf("unknown layout group: %s", id)
}

// DefaultGroup returns the group flagged default, or the first group when
// none is flagged.
func (r *Registry) DefaultGroup() (LayoutGroup, error) {
	groups, err := r.Groups()
	if err != nil {
		return LayoutGroup{}, err
	}
	if len(groups) == 0 {
		return LayoutGroup{}, fmt.Errorf("layout catalog is empty: %s", r.root)
	}
	for _, g := range groups {
		if g.Default {
			return g, nil
		}
	}
	return groups[0], nil
}

func scanCatalog(root string, logger func(string)) ([]LayoutGroup, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout catalog %s: %w", root, err)
	}

	var groups []LayoutGroup
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		group, ok, err := scanGroup(root, entry.Name())
		if err != nil {
			if logger != nil {
				logger(fmt.Sprintf("[LAYOUTS] skipping group %s: %v", entry.Name(), err))
			}
			continue
		}
		if ok {
			groups = append(groups, group)
		}
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

func scanGroup(root, id string) (LayoutGroup, bool, error) {
	dir := filepath.Join(root, id)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return LayoutGroup{}, false, err
	}

	var slides []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == settingsFileName {
			continue
		}
		if strings.Contains(name, ".test.") || strings.HasSuffix(strings.TrimSuffix(name, filepath.Ext(name)), "_test") {
			continue
		}
		if filepath.Ext(name) != ".html" {
			continue
		}
		slides = append(slides, strings.TrimSuffix(name, ".html"))
	}

	// never surface an empty group
	if len(slides) == 0 {
		return LayoutGroup{}, false, nil
	}
	sort.Strings(slides)

	settings := GroupSettings{
		Description: id + " presentation layouts",
	}
	raw, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err == nil {
		if err := json.Unmarshal(raw, &settings); err != nil {
			return LayoutGroup{}, false, fmt.Errorf("invalid %s: %w", settingsFileName, err)
		}
		if settings.Description == "" {
			settings.Description = id + " presentation layouts"
		}
	}

	return LayoutGroup{
		ID:          id,
		Description: settings.Description,
		Ordered:     settings.Ordered,
		Default:     settings.Default,
		Slides:      slides,
	}, true, nil
}
