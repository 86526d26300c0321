// Package renderer composes the URL the export engine navigates to. It is
// pure addressing: the page behind the URL lays the deck out at a native
// 1280x720 with every network resource resolvable without interaction.
package renderer

import (
	"fmt"
	"net/url"
	"strings"
)

// Native deck geometry. The exported PDF page matches it exactly.
const (
	PageWidthPx  = 1280
	PageHeightPx = 720
)

// pdfMakerRoute is the route serving the full rasterizable deck.
const pdfMakerRoute = "/pdf-maker"

// PageRenderer resolves presentation ids to navigable deck URLs.
type PageRenderer struct {
	baseURL string
}

// New creates a renderer against the given base URL (scheme://host:port).
func New(baseURL string) *PageRenderer {
	return &PageRenderer{baseURL: strings.TrimRight(baseURL, "/")}
}

// URLFor returns the deterministic URL rendering the whole deck for the
// given presentation id.
func (r *PageRenderer) URLFor(presentationID string) (string, error) {
	if presentationID == "" {
		return "", fmt.Errorf("presentation id is required")
	}
	u, err := url.Parse(r.baseURL + pdfMakerRoute)
	if err != nil {
		return "", fmt.Errorf("invalid renderer base URL %q: %w", r.baseURL, err)
	}
	q := u.Query()
	q.Set("id", presentationID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
