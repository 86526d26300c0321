package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"slidesmith/deck"
)

// HandoutService generates printable A4 outline handouts with maroto:
// one numbered entry per slide with its chart summary. No browser round
// trip is involved, so handouts work even without Chrome installed.
type HandoutService struct {
	dataDir string
}

// NewHandoutService creates a new HandoutService instance
func NewHandoutService(dataDir string) *HandoutService {
	return &HandoutService{dataDir: dataDir}
}

// ExportHandout writes the handout PDF for the resolved slides and
// returns its path.
func (s *HandoutService) ExportHandout(slides []deck.SlideModel, title string) (string, error) {
	data, err := s.GenerateHandout(slides, title)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	outPath := filepath.Join(s.dataDir, SanitizeFilename(title)+" - handout.pdf")
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write handout file: %w", err)
	}
	return outPath, nil
}

// GenerateHandout builds the handout PDF in memory.
func (s *HandoutService) GenerateHandout(slides []deck.SlideModel, title string) ([]byte, error) {
	if len(slides) == 0 {
		return nil, fmt.Errorf("deck has no slides")
	}

	cfg := marotoconfig.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithDefaultFont(&props.Font{
			Family: fontfamily.Arial,
			Size:   10,
		}).
		Build()

	m := maroto.New(cfg)

	s.addHeader(m, title)
	for i, slide := range slides {
		s.addSlideEntry(m, i+1, slide)
	}

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate handout: %w", err)
	}
	return document.GetBytes(), nil
}

// addHeader adds the handout title and timestamp
func (s *HandoutService) addHeader(m core.Maroto, title string) {
	m.AddRow(20,
		col.New(12).Add(
			text.New(title, props.Text{
				Family: fontfamily.Arial,
				Size:   18,
				Style:  fontstyle.Bold,
				Align:  align.Center,
				Color:  &props.Color{Red: 59, Green: 130, Blue: 246},
			}),
		),
	)

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	m.AddRow(8,
		col.New(12).Add(
			text.New(fmt.Sprintf("Generated: %s", timestamp), props.Text{
				Family: fontfamily.Arial,
				Size:   9,
				Align:  align.Center,
				Color:  &props.Color{Red: 100, Green: 116, Blue: 139},
			}),
		),
	)

	m.AddRow(5)
}

// addSlideEntry adds one numbered outline entry
func (s *HandoutService) addSlideEntry(m core.Maroto, number int, slide deck.SlideModel) {
	m.AddRow(8,
		col.New(12).Add(
			text.New(fmt.Sprintf("%d. %s", number, slide.Title), props.Text{
				Family: fontfamily.Arial,
				Size:   12,
				Style:  fontstyle.Bold,
			}),
		),
	)

	if slide.Body != "" {
		m.AddRow(8,
			col.New(12).Add(
				text.New(slide.Body, props.Text{
					Family: fontfamily.Arial,
					Size:   9,
				}),
			),
		)
	}

	if slide.Chart != nil {
		caption := slide.Chart.Title
		if caption == "" {
			caption = slide.Chart.ID
		}
		m.AddRow(6,
			col.New(12).Add(
				text.New(fmt.Sprintf("Chart: %s (%s, %d series)", caption, slide.Chart.Type, len(slide.Chart.Series)), props.Text{
					Family: fontfamily.Arial,
					Size:   9,
					Color:  &props.Color{Red: 100, Green: 116, Blue: 139},
				}),
			),
		)
	}

	m.AddRow(3)
}
