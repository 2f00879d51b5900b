package structurer

import (
	"sort"
	"strings"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
)

// State carries the current section and sub-section labels across blocks
// and across pages. The zero value means no heading seen yet. Each
// classifier call returns the next state; callers must thread it forward
// in page order.
type State struct {
	Section    string
	SubSection string
}

func (s State) sectionLabel() string {
	if s.Section == "" {
		return docmodel.UnknownSection
	}
	return s.Section
}

func (s State) subSectionRef() *string {
	if s.SubSection == "" {
		return nil
	}
	sub := s.SubSection
	return &sub
}

// ClassifyPage partitions one page's blocks into section headings,
// sub-section headings, and paragraphs, and returns the paragraphs plus the
// updated State. Heading blocks are consumed: they update State and are not
// emitted. Blocks with missing font metrics classify as paragraphs (size 0
// matches no heading rule).
func (s *Structurer) ClassifyPage(blocks []TextBlock, st State) ([]docmodel.ContentItem, State) {
	// Reading order: top to bottom, left to right. The only ordering
	// signal; no column detection.
	ordered := make([]TextBlock, len(blocks))
	copy(ordered, blocks)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Top != ordered[j].Top {
			return ordered[i].Top < ordered[j].Top
		}
		return ordered[i].X0 < ordered[j].X0
	})

	var paragraphs []docmodel.ContentItem
	for _, b := range ordered {
		text := strings.TrimSpace(b.Text)
		if text == "" {
			continue
		}

		switch {
		case s.isSectionHeading(b):
			st.Section = text
			st.SubSection = ""
		case s.isSubSectionHeading(b, text):
			st.SubSection = text
		default:
			paragraphs = append(paragraphs, docmodel.NewParagraph(st.sectionLabel(), st.subSectionRef(), text))
		}
	}
	return paragraphs, st
}

func (s *Structurer) isSectionHeading(b TextBlock) bool {
	if b.MaxFontSize >= s.cfg.SectionFontMin {
		return true
	}
	return b.Bold && b.MaxFontSize >= s.cfg.SectionBoldFontMin
}

// isSubSectionHeading is only consulted after the section rules miss, so
// the upper bounds here keep the bands disjoint rather than re-checking
// section conditions.
func (s *Structurer) isSubSectionHeading(b TextBlock, text string) bool {
	if b.MaxFontSize >= s.cfg.SubSectionFontMin && b.MaxFontSize < s.cfg.SectionFontMin {
		return true
	}
	if b.Bold && b.MaxFontSize >= s.cfg.SubSectionBoldFontMin && b.MaxFontSize < s.cfg.SubSectionFontMin {
		return true
	}
	// Bold and short catches sub-headings typeset at body-text size.
	return b.Bold && len(strings.Fields(text)) <= s.cfg.SubSectionMaxWords
}
