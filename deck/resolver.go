package deck

import "fmt"

// ResolveSlides joins an outline with its companion chart dataset into the
// per-slide render models. Outline order is preserved exactly; slides
// without a chart reference (or with an empty reference) resolve with a
// nil chart. A reference to a chart id missing from the dataset is an
// error naming the slide.
//
// The resolver only joins by id. Number formatting and unit handling are
// render-time concerns.
func ResolveSlides(outline []OutlineItem, charts []ChartConfig) ([]SlideModel, error) {
	byID := make(map[string]ChartConfig, len(charts))
	for _, c := range charts {
		if c.ID == "" {
			continue
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		byID[c.ID] = c
	}

	slides := make([]SlideModel, 0, len(outline))
	for i, item := range outline {
		slide := SlideModel{
			ID:    item.ID,
			Title: item.Title,
			Index: i,
			Body:  item.Body,
		}

		for _, ref := range item.ChartRefs {
			if ref == "" {
				// no chart assigned yet, render without a chart panel
				continue
			}
			cfg, ok := byID[ref]
			if !ok {
				return nil, fmt.Errorf("slide %d (%s): chart %q not found in dataset", i, item.Title, ref)
			}
			chart := cfg
			slide.Chart = &chart
			break
		}

		slides = append(slides, slide)
	}

	return slides, nil
}

// HasChartFlags returns the per-slide chart presence vector, in order.
// The layout registry uses it for best-fit template selection.
func HasChartFlags(slides []SlideModel) []bool {
	flags := make([]bool, len(slides))
	for i, s := range slides {
		flags[i] = s.Chart != nil
	}
	return flags
}
