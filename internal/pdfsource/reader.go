// Package pdfsource implements the geometry collaborators the structurer
// consumes: text blocks, positioned words, structured table grids, and
// image presence, extracted from a PDF file.
package pdfsource

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ishitak12/pdfstruct/internal/structurer"
)

// Geometry tolerances for fragment grouping. Line and block grouping
// operate in top-coordinate space (y grows downward).
const (
	lineTolerance  = 2.0 // fragments within this vertical distance share a line
	blockGapFactor = 1.8 // lines closer than factor*fontSize belong to one block
	wordJoinGap    = 1.0 // fragments closer than this merge into one word
	defaultHeight  = 792 // US letter fallback when no MediaBox is resolvable
)

// Reader extracts page geometry from one PDF file. It is not safe for
// concurrent use; each conversion opens its own Reader.
type Reader struct {
	file *os.File
	pdf  *pdflib.Reader
	ctx  *model.Context
	log  *slog.Logger

	pages map[int][]fragment
}

// fragment is one text show operation: a run of glyphs with a single font.
type fragment struct {
	text string
	x    float64
	top  float64
	w    float64
	size float64
	bold bool
}

// Open reads and validates a PDF. Validation failure is the caller's
// whole-document error: no partial extraction is attempted.
func Open(path string, log *slog.Logger) (*Reader, error) {
	if log == nil {
		log = slog.Default()
	}
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	vf, err := os.Open(path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer vf.Close()
	ctx, err := api.ReadValidateAndOptimize(vf, model.NewDefaultConfiguration())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("validate pdf: %w", err)
	}

	return &Reader{
		file:  f,
		pdf:   reader,
		ctx:   ctx,
		log:   log,
		pages: make(map[int][]fragment),
	}, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// PageCount returns the number of pages.
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// Source bundles this reader's collaborators for the structurer.
func (r *Reader) Source() structurer.Source {
	return structurer.Source{
		PageCount: r.PageCount(),
		Blocks:    r,
		Tables:    &gridExtractor{r: r},
		Backup:    &alignmentDetector{r: r},
		Words:     r,
		Images:    r,
	}
}

// fragments parses and caches the text content of a page, converted to
// top-coordinate space.
func (r *Reader) fragments(page int) []fragment {
	if frags, ok := r.pages[page]; ok {
		return frags
	}
	var frags []fragment
	if page >= 1 && page <= r.pdf.NumPage() {
		p := r.pdf.Page(page)
		if !p.V.IsNull() {
			height := pageHeight(p)
			for _, t := range p.Content().Text {
				frags = append(frags, fragment{
					text: t.S,
					x:    t.X,
					top:  height - t.Y,
					w:    t.W,
					size: t.FontSize,
					bold: isBoldFont(t.Font),
				})
			}
		}
	}
	r.pages[page] = frags
	return frags
}

// Blocks groups a page's fragments into lines and adjacent lines into
// blocks, and reports each block with its dominant font metrics.
func (r *Reader) Blocks(page int) ([]structurer.TextBlock, error) {
	lines := groupLines(r.fragments(page))
	if len(lines) == 0 {
		return nil, nil
	}

	var blocks []structurer.TextBlock
	current := lines[0]
	flush := func(l line) {
		blocks = append(blocks, structurer.TextBlock{
			Text:        l.text(),
			X0:          l.x0,
			Top:         l.top,
			X1:          l.x1,
			Bottom:      l.bottom,
			MaxFontSize: l.maxSize,
			Bold:        l.bold,
		})
	}
	for _, next := range lines[1:] {
		gap := next.top - current.bottom
		if gap <= blockGapFactor*current.maxSize && sameStyle(current, next) {
			current = current.merge(next)
			continue
		}
		flush(current)
		current = next
	}
	flush(current)
	return blocks, nil
}

// Words splits a page's fragments into individual positioned words.
func (r *Reader) Words(page int) ([]structurer.PositionedWord, error) {
	var words []structurer.PositionedWord
	for _, l := range groupLines(r.fragments(page)) {
		for _, w := range l.words() {
			words = append(words, structurer.PositionedWord{Text: w.text, X0: w.x, Top: l.top})
		}
	}
	return words, nil
}

// ImageCount reports the number of image XObjects referenced by a page.
func (r *Reader) ImageCount(page int) (int, error) {
	if r.ctx == nil || r.ctx.Optimize == nil {
		return 0, nil
	}
	return len(pdfcpu.ImageObjNrs(r.ctx, page)), nil
}

// line is an ordered run of fragments sharing a baseline.
type line struct {
	frags   []fragment
	top     float64
	bottom  float64
	x0, x1  float64
	maxSize float64
	bold    bool
}

func newLine(f fragment) line {
	bottom := f.top + f.size
	if f.size == 0 {
		bottom = f.top
	}
	return line{
		frags:   []fragment{f},
		top:     f.top,
		bottom:  bottom,
		x0:      f.x,
		x1:      f.x + f.w,
		maxSize: f.size,
		bold:    f.bold,
	}
}

func (l line) add(f fragment) line {
	l.frags = append(l.frags, f)
	if f.top < l.top {
		l.top = f.top
	}
	if b := f.top + f.size; b > l.bottom {
		l.bottom = b
	}
	if f.x < l.x0 {
		l.x0 = f.x
	}
	if e := f.x + f.w; e > l.x1 {
		l.x1 = e
	}
	if f.size > l.maxSize {
		l.maxSize = f.size
	}
	l.bold = l.bold || f.bold
	return l
}

func (l line) merge(other line) line {
	for _, f := range other.frags {
		l = l.add(f)
	}
	return l
}

// text joins the line's fragments left to right, separating them with a
// space unless they abut.
func (l line) text() string {
	var sb strings.Builder
	var lastEnd float64
	for i, f := range l.frags {
		if i > 0 && f.x-lastEnd > wordJoinGap && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.text)
		lastEnd = f.x + f.w
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

type word struct {
	text string
	x    float64
}

// words splits the line into space-separated words, estimating the start
// of each word by distributing fragment width over its runes.
func (l line) words() []word {
	var out []word
	var cur strings.Builder
	var curX float64
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, word{text: cur.String(), x: curX})
			cur.Reset()
		}
	}

	var lastEnd float64
	for i, f := range l.frags {
		if i > 0 && f.x-lastEnd > wordJoinGap {
			flush()
		}
		runes := []rune(f.text)
		if len(runes) == 0 {
			lastEnd = f.x + f.w
			continue
		}
		perRune := f.w / float64(len(runes))
		for j, rn := range runes {
			if rn == ' ' || rn == '\t' {
				flush()
				continue
			}
			if cur.Len() == 0 {
				curX = f.x + perRune*float64(j)
			}
			cur.WriteRune(rn)
		}
		lastEnd = f.x + f.w
	}
	flush()
	return out
}

// groupLines clusters fragments by baseline and orders lines top to
// bottom, fragments left to right.
func groupLines(frags []fragment) []line {
	if len(frags) == 0 {
		return nil
	}
	sorted := make([]fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].top != sorted[j].top {
			return sorted[i].top < sorted[j].top
		}
		return sorted[i].x < sorted[j].x
	})

	var lines []line
	cur := newLine(sorted[0])
	for _, f := range sorted[1:] {
		if f.top-cur.top <= lineTolerance {
			cur = cur.add(f)
			continue
		}
		lines = append(lines, sortLine(cur))
		cur = newLine(f)
	}
	lines = append(lines, sortLine(cur))
	return lines
}

func sortLine(l line) line {
	sort.SliceStable(l.frags, func(i, j int) bool { return l.frags[i].x < l.frags[j].x })
	return l
}

// sameStyle keeps heading lines out of adjacent body-text blocks so a
// title directly above a paragraph stays a block of its own.
func sameStyle(a, b line) bool {
	if a.maxSize == 0 || b.maxSize == 0 {
		return true
	}
	ratio := a.maxSize / b.maxSize
	return ratio > 0.8 && ratio < 1.25
}

func isBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy")
}

// pageHeight resolves the page's MediaBox height, walking up the page tree
// when the attribute is inherited.
func pageHeight(p pdflib.Page) float64 {
	node := p.V
	for !node.IsNull() {
		mb := node.Key("MediaBox")
		if !mb.IsNull() && mb.Len() >= 4 {
			if h := mb.Index(3).Float64() - mb.Index(1).Float64(); h > 0 {
				return h
			}
		}
		node = node.Key("Parent")
	}
	return defaultHeight
}
