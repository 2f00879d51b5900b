package structurer

import "github.com/ishitak12/pdfstruct/internal/docmodel"

// Chart placeholder descriptions. Chart content is never parsed, only
// detected and counted.
const (
	ChartImageDescription  = "Chart image detected"
	ChartVectorDescription = "Chart (vector or non-extractable)"
)

// DetectCharts emits one chart item per embedded raster image on the page.
// A page with no raster images still yields a single placeholder item,
// signalling a likely vector or non-extractable chart; the result is never
// empty. An image source error counts as zero images.
func (s *Structurer) DetectCharts(imgs ImageSource, page int, st State) []docmodel.ContentItem {
	count := 0
	if imgs != nil {
		n, err := imgs.ImageCount(page)
		if err != nil {
			s.log.Debug("image detection failed", "page", page, "error", err)
		} else {
			count = n
		}
	}

	if count <= 0 {
		return []docmodel.ContentItem{
			docmodel.NewChart(st.sectionLabel(), st.subSectionRef(), ChartVectorDescription),
		}
	}
	items := make([]docmodel.ContentItem, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, docmodel.NewChart(st.sectionLabel(), st.subSectionRef(), ChartImageDescription))
	}
	return items
}
