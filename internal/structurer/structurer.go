// Package structurer converts raw page geometry into a structured document:
// it classifies text blocks into headings and paragraphs, resolves tables
// through a chain of extraction strategies, and emits chart placeholders.
package structurer

import (
	"fmt"
	"log/slog"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
)

// Config holds the heuristic thresholds driving classification and table
// reconstruction. The defaults reproduce the tuned values; tests perturb
// them without touching algorithm logic.
type Config struct {
	SectionFontMin        float64 // font size at which any block is a section heading
	SectionBoldFontMin    float64 // bold blocks at this size are section headings
	SubSectionFontMin     float64 // lower bound of the sub-section font band
	SubSectionBoldFontMin float64 // lower bound of the bold sub-section band
	SubSectionMaxWords    int     // bold blocks this short are sub-section headings

	YTolerance float64 // vertical jitter tolerated when clustering words into rows
	ColGap     float64 // horizontal gap treated as a skipped table column
}

// DefaultConfig returns the tuned thresholds.
func DefaultConfig() Config {
	return Config{
		SectionFontMin:        16,
		SectionBoldFontMin:    14,
		SubSectionFontMin:     13,
		SubSectionBoldFontMin: 11.5,
		SubSectionMaxWords:    4,
		YTolerance:            3,
		ColGap:                20,
	}
}

// TextBlock is a geometrically contiguous run of text on a page, the unit
// the heading classifier operates on. Produced fresh per page and consumed
// immediately.
type TextBlock struct {
	Text        string
	X0, Top     float64
	X1, Bottom  float64
	MaxFontSize float64
	Bold        bool
}

// PositionedWord is the minimal word projection consumed by the
// word-cluster table builder.
type PositionedWord struct {
	Text string
	X0   float64
	Top  float64
}

// TableMode selects a structured table detection strategy.
type TableMode string

const (
	ModeLattice TableMode = "lattice" // ruling-line based
	ModeStream  TableMode = "stream"  // whitespace based
	ModeAuto    TableMode = "auto"    // detector's own choice
)

// BlockSource yields the text blocks of a page.
type BlockSource interface {
	Blocks(page int) ([]TextBlock, error)
}

// TableSource yields zero or more raw table grids for a page. Cells are
// untyped and possibly nil; they are sanitized at the boundary before
// entering the document.
type TableSource interface {
	Tables(page int, mode TableMode) ([][][]any, error)
}

// WordSource yields the positioned words of a page.
type WordSource interface {
	Words(page int) ([]PositionedWord, error)
}

// ImageSource reports how many embedded raster images a page carries.
type ImageSource interface {
	ImageCount(page int) (int, error)
}

// Source bundles the collaborators for one document. Tables is the primary
// structured extractor (lattice, retried as stream); Backup is an
// independent second detector tried before geometric reconstruction.
// Nil collaborators are treated as producing nothing.
type Source struct {
	PageCount int
	Blocks    BlockSource
	Tables    TableSource
	Backup    TableSource
	Words     WordSource
	Images    ImageSource
}

// Structurer runs the per-page structuring pipeline.
type Structurer struct {
	cfg Config
	log *slog.Logger
}

// New creates a Structurer. A nil logger falls back to slog.Default.
func New(cfg Config, log *slog.Logger) *Structurer {
	if log == nil {
		log = slog.Default()
	}
	return &Structurer{cfg: cfg, log: log}
}

// Convert processes every page in order and assembles the document.
// Pages must be processed strictly sequentially: a heading on one page
// labels paragraphs on the next, so State is threaded through each
// classifier call by ownership transfer.
func (s *Structurer) Convert(src Source) (*docmodel.Document, error) {
	doc := &docmodel.Document{Pages: []docmodel.Page{}}
	if src.Blocks == nil {
		return nil, fmt.Errorf("structurer: no block source")
	}

	var st State
	for page := 1; page <= src.PageCount; page++ {
		blocks, err := src.Blocks.Blocks(page)
		if err != nil {
			return nil, fmt.Errorf("extract blocks for page %d: %w", page, err)
		}

		var paragraphs []docmodel.ContentItem
		paragraphs, st = s.ClassifyPage(blocks, st)

		content := make([]docmodel.ContentItem, 0, len(paragraphs)+2)
		content = append(content, paragraphs...)
		content = append(content, s.ResolveTables(src, page, st)...)
		content = append(content, s.DetectCharts(src.Images, page, st)...)

		doc.Pages = append(doc.Pages, docmodel.Page{PageNumber: page, Content: content})
	}
	return doc, nil
}
