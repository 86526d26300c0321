// Package deck holds the normalized presentation model: outlines, chart
// definitions and the per-slide render model the page renderer consumes.
package deck

import "fmt"

// ChartType enumerates the supported chart shapes.
type ChartType string

const (
	ChartPie  ChartType = "pie"
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
)

// Valid reports whether t is a known chart type.
func (t ChartType) Valid() bool {
	switch t {
	case ChartPie, ChartBar, ChartLine:
		return true
	}
	return false
}

// Series is one labeled data series with aligned categories and values.
type Series struct {
	Label      string    `json:"label"`
	Categories []string  `json:"categories"`
	Values     []float64 `json:"values"`
}

// ChartConfig is a chart definition referenced from outline items.
type ChartConfig struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Type   ChartType `json:"type"`
	Series []Series  `json:"series"`
}

// Validate checks the chart type and that every series shares the same
// category cardinality with aligned values.
func (c ChartConfig) Validate() error {
	if !c.Type.Valid() {
		return fmt.Errorf("chart %s: unknown type %q", c.ID, c.Type)
	}
	if len(c.Series) == 0 {
		return fmt.Errorf("chart %s: no series", c.ID)
	}
	want := len(c.Series[0].Categories)
	for _, s := range c.Series {
		if len(s.Categories) != want {
			return fmt.Errorf("chart %s: series %q has %d categories, expected %d", c.ID, s.Label, len(s.Categories), want)
		}
		if len(s.Values) != len(s.Categories) {
			return fmt.Errorf("chart %s: series %q has %d values for %d categories", c.ID, s.Label, len(s.Values), len(s.Categories))
		}
	}
	return nil
}

// OutlineItem is one slide's logical description before rendering.
// ChartRefs entries may be empty, meaning no chart assigned yet.
type OutlineItem struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Index     int      `json:"index"`
	Body      string   `json:"body,omitempty"`
	ChartRefs []string `json:"chartRefs,omitempty"`
}

// SlideModel is the normalized per-slide render model. Chart is nil for
// slides without a chart panel.
type SlideModel struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Index int          `json:"index"`
	Body  string       `json:"body,omitempty"`
	Chart *ChartConfig `json:"chart,omitempty"`
}
