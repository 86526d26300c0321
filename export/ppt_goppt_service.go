package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ppt "github.com/VantageDataChat/GoPPT"

	"slidesmith/config"
	"slidesmith/deck"
)

// GoPPTService generates native PowerPoint decks with GoPPT (pure Go).
type GoPPTService struct {
	dataDir string
}

// NewGoPPTService creates a new GoPPT service
func NewGoPPTService(dataDir string) *GoPPTService {
	return &GoPPTService{dataDir: dataDir}
}

// Slide geometry constants, 16:9 widescreen.
const (
	emuPerInch = 914400

	pptxMarginLeft = int64(0.4 * emuPerInch)

	pptxContentWidth = int64(9.2 * emuPerInch)
	pptxSlideWidth   = int64(10.0 * emuPerInch)
	pptxSlideHeight  = int64(5.625 * emuPerInch)

	pptxFontTitle     = 36
	pptxFontHeading   = 28
	pptxFontBody      = 14
	pptxFontSmall     = 12
	pptxFontTableHead = 11
	pptxFontTableCell = 10
	pptxFontFooter    = 9
)

// helper: create a solid fill
func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

// helper: set paragraph alignment to center
func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// accentColor returns the theme accent as an ARGB string, defaulting to
// the stock blue when the theme does not override it.
func accentColor(theme config.Theme) string {
	if c, ok := theme.Colors["accent"]; ok {
		c = strings.TrimPrefix(c, "#")
		if len(c) == 6 {
			return "FF" + strings.ToUpper(c)
		}
	}
	return "FF3B82F6"
}

// ExportToPptx renders the resolved slides into a PPTX file under the
// managed data directory and returns its path.
func (s *GoPPTService) ExportToPptx(slides []deck.SlideModel, theme config.Theme, title string) (string, error) {
	data, err := s.GeneratePptx(slides, theme, title)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	outPath := filepath.Join(s.dataDir, SanitizeFilename(title)+".pptx")
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write PPTX file: %w", err)
	}
	return outPath, nil
}

// GeneratePptx builds the deck in memory.
func (s *GoPPTService) GeneratePptx(slides []deck.SlideModel, theme config.Theme, title string) ([]byte, error) {
	if len(slides) == 0 {
		return nil, fmt.Errorf("deck has no slides")
	}

	p := ppt.New()
	p.GetDocumentProperties().Title = title
	p.GetDocumentProperties().Creator = "SlideSmith"

	accent := accentColor(theme)
	s.addTitleSlide(p, title, accent)
	for _, slide := range slides {
		s.addContentSlide(p, slide, accent)
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create PPT writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to save PPT: %w", err)
	}
	return buf.Bytes(), nil
}

// addTitleSlide fills the deck's opening slide.
func (s *GoPPTService) addTitleSlide(p *ppt.Presentation, title, accent string) {
	slide := p.GetActiveSlide()

	topBar := slide.CreateRichTextShape()
	topBar.SetOffsetX(0).SetOffsetY(0)
	topBar.SetWidth(pptxSlideWidth).SetHeight(int64(0.15 * emuPerInch))
	topBar.SetFill(solidFill(accent))

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(pptxMarginLeft).SetOffsetY(int64(1.8 * emuPerInch))
	titleShape.SetWidth(pptxContentWidth).SetHeight(int64(1.0 * emuPerInch))
	tr := titleShape.CreateTextRun(title)
	tr.GetFont().SetSize(pptxFontTitle).SetBold(true).SetColor(ppt.NewColor("FF1E40AF"))
	alignCenter(titleShape.GetActiveParagraph())

	tsShape := slide.CreateRichTextShape()
	tsShape.SetOffsetX(pptxMarginLeft).SetOffsetY(int64(3.2 * emuPerInch))
	tsShape.SetWidth(pptxContentWidth).SetHeight(int64(0.4 * emuPerInch))
	tsTr := tsShape.CreateTextRun(time.Now().Format("January 2, 2006"))
	tsTr.GetFont().SetSize(pptxFontSmall).SetColor(ppt.NewColor("FF94A3B8"))
	alignCenter(tsShape.GetActiveParagraph())

	bottomBar := slide.CreateRichTextShape()
	bottomBar.SetOffsetX(0).SetOffsetY(int64(5.5 * emuPerInch))
	bottomBar.SetWidth(pptxSlideWidth).SetHeight(int64(0.125 * emuPerInch))
	bottomBar.SetFill(solidFill(accent))
}

// addContentSlide renders one resolved slide: title header, body text and
// the chart's series as a compact table when a chart is bound.
func (s *GoPPTService) addContentSlide(p *ppt.Presentation, model deck.SlideModel, accent string) {
	slide := p.CreateSlide()
	s.addSlideHeader(slide, model.Title, accent)

	bodyY := 1.1
	if model.Body != "" {
		bodyShape := slide.CreateRichTextShape()
		bodyShape.SetOffsetX(pptxMarginLeft).SetOffsetY(int64(bodyY * emuPerInch))
		bodyShape.SetWidth(pptxContentWidth).SetHeight(int64(1.4 * emuPerInch))

		for i, line := range strings.Split(model.Body, "\n") {
			if i > 0 {
				bodyShape.CreateParagraph()
			}
			tr := bodyShape.CreateTextRun(line)
			tr.GetFont().SetSize(pptxFontBody).SetColor(ppt.NewColor("FF334155"))
		}
		bodyY += 1.5
	}

	if model.Chart != nil {
		s.addChartTable(slide, model.Chart, bodyY, accent)
	}
}

// addSlideHeader adds a consistent header to content slides
func (s *GoPPTService) addSlideHeader(slide *ppt.Slide, title, accent string) {
	topBar := slide.CreateRichTextShape()
	topBar.SetOffsetX(0).SetOffsetY(0)
	topBar.SetWidth(pptxSlideWidth).SetHeight(int64(0.08 * emuPerInch))
	topBar.SetFill(solidFill(accent))

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(pptxMarginLeft).SetOffsetY(int64(0.3 * emuPerInch))
	titleShape.SetWidth(pptxContentWidth).SetHeight(int64(0.6 * emuPerInch))
	tr := titleShape.CreateTextRun(title)
	tr.GetFont().SetSize(pptxFontHeading).SetBold(true).SetColor(ppt.NewColor("FF1E40AF"))
}

// addChartTable renders a chart's series as header + value rows. Native
// chart shapes are out of reach for a text-run based writer, so the data
// travels as a table with the chart title and type noted above it.
func (s *GoPPTService) addChartTable(slide *ppt.Slide, chart *deck.ChartConfig, startY float64, accent string) {
	captionShape := slide.CreateRichTextShape()
	captionShape.SetOffsetX(pptxMarginLeft).SetOffsetY(int64(startY * emuPerInch))
	captionShape.SetWidth(pptxContentWidth).SetHeight(int64(0.35 * emuPerInch))
	caption := chart.Title
	if caption == "" {
		caption = chart.ID
	}
	capTr := captionShape.CreateTextRun(fmt.Sprintf("%s (%s)", caption, chart.Type))
	capTr.GetFont().SetSize(pptxFontBody).SetBold(true).SetColor(ppt.NewColor("FF475569"))

	if len(chart.Series) == 0 {
		return
	}

	headerY := startY + 0.45
	headerShape := slide.CreateRichTextShape()
	headerShape.SetOffsetX(pptxMarginLeft).SetOffsetY(int64(headerY * emuPerInch))
	headerShape.SetWidth(pptxContentWidth).SetHeight(int64(0.35 * emuPerInch))
	headerShape.SetFill(solidFill(accent))
	headerTr := headerShape.CreateTextRun(strings.Join(chart.Series[0].Categories, "    │    "))
	headerTr.GetFont().SetSize(pptxFontTableHead).SetBold(true).SetColor(ppt.ColorWhite)
	alignCenter(headerShape.GetActiveParagraph())

	rowY := headerY + 0.35
	for i, series := range chart.Series {
		rowShape := slide.CreateRichTextShape()
		rowShape.SetOffsetX(pptxMarginLeft).SetOffsetY(int64(rowY * emuPerInch))
		rowShape.SetWidth(pptxContentWidth).SetHeight(int64(0.3 * emuPerInch))
		if i%2 == 0 {
			rowShape.SetFill(solidFill("FFF8FAFC"))
		} else {
			rowShape.SetFill(solidFill("FFF1F5F9"))
		}

		cells := make([]string, 0, len(series.Values)+1)
		if series.Label != "" {
			cells = append(cells, series.Label)
		}
		for _, v := range series.Values {
			cells = append(cells, fmt.Sprintf("%g", v))
		}
		rowTr := rowShape.CreateTextRun(strings.Join(cells, "    │    "))
		rowTr.GetFont().SetSize(pptxFontTableCell).SetColor(ppt.NewColor("FF334155"))
		alignCenter(rowShape.GetActiveParagraph())

		rowY += 0.3
	}
}
