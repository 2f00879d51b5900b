package pdfsource

import (
	"sort"

	"github.com/ishitak12/pdfstruct/internal/structurer"
)

// Grid detection tolerances.
const (
	rulingThickness   = 2.0 // rects at most this thick count as ruling lines
	boundaryTolerance = 2.0 // boundary coordinates within this distance merge
	minGridRows       = 2
	minGridCols       = 2
	streamRowTol      = 3.0  // row clustering tolerance for stream detection
	streamColTol      = 5.0  // column start alignment tolerance
	streamMinRows     = 3    // stream tables need this many aligned rows
	streamMinSupport  = 0.55 // fraction of rows that must populate a column
)

// gridExtractor is the primary structured table source. Lattice mode
// rebuilds the cell grid from drawn ruling lines; stream mode infers column
// boundaries from word-start alignment across rows.
type gridExtractor struct {
	r *Reader
}

func (g *gridExtractor) Tables(page int, mode structurer.TableMode) ([][][]any, error) {
	switch mode {
	case structurer.ModeStream:
		return g.streamTables(page)
	default:
		return g.latticeTables(page)
	}
}

// latticeTables rebuilds tables from ruling-line geometry. Every rect in
// the content stream contributes boundary coordinates: thin rects as one
// ruling, boxes as their four edges.
func (g *gridExtractor) latticeTables(page int) ([][][]any, error) {
	if page < 1 || page > g.r.pdf.NumPage() {
		return nil, nil
	}
	p := g.r.pdf.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}
	height := pageHeight(p)

	var xs, ys []float64
	for _, rect := range p.Content().Rect {
		w := rect.Max.X - rect.Min.X
		h := rect.Max.Y - rect.Min.Y
		// Convert to top-coordinate space.
		top := height - rect.Max.Y
		bottom := height - rect.Min.Y
		switch {
		case h <= rulingThickness:
			ys = append(ys, (top+bottom)/2)
			xs = append(xs, rect.Min.X, rect.Max.X)
		case w <= rulingThickness:
			xs = append(xs, (rect.Min.X+rect.Max.X)/2)
			ys = append(ys, top, bottom)
		default:
			xs = append(xs, rect.Min.X, rect.Max.X)
			ys = append(ys, top, bottom)
		}
	}

	colBounds := clusterCoords(xs, boundaryTolerance)
	rowBounds := clusterCoords(ys, boundaryTolerance)
	if len(rowBounds) < minGridRows+1 || len(colBounds) < minGridCols+1 {
		return nil, nil
	}

	words, err := g.r.Words(page)
	if err != nil {
		return nil, err
	}
	grid := fillGrid(rowBounds, colBounds, words)
	if grid == nil {
		return nil, nil
	}
	return [][][]any{grid}, nil
}

// streamTables infers one whitespace-aligned table from word positions.
// Column starts that repeat across enough rows become column boundaries.
func (g *gridExtractor) streamTables(page int) ([][][]any, error) {
	words, err := g.r.Words(page)
	if err != nil {
		return nil, err
	}
	rows := clusterRows(words, streamRowTol)
	if len(rows) < streamMinRows {
		return nil, nil
	}

	// Collect column-start candidates from every row.
	var starts []float64
	for _, row := range rows {
		for _, w := range row {
			starts = append(starts, w.X0)
		}
	}
	var colStarts []float64
	for _, c := range clusterCoords(starts, streamColTol) {
		support := 0
		for _, row := range rows {
			for _, w := range row {
				if w.X0 >= c-streamColTol && w.X0 <= c+streamColTol {
					support++
					break
				}
			}
		}
		if float64(support) >= streamMinSupport*float64(len(rows)) {
			colStarts = append(colStarts, c)
		}
	}
	if len(colStarts) < minGridCols {
		return nil, nil
	}

	grid := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(colStarts))
		for _, w := range row {
			col := columnFor(colStarts, w.X0)
			if cells[col] != "" {
				cells[col] += " "
			}
			cells[col] += w.Text
		}
		out := make([]any, len(cells))
		for i, c := range cells {
			out[i] = c
		}
		grid = append(grid, out)
	}
	return [][][]any{grid}, nil
}

// fillGrid assigns words to the cells bounded by the given row and column
// coordinates and returns nil when no word lands inside the grid.
func fillGrid(rowBounds, colBounds []float64, words []structurer.PositionedWord) [][]any {
	nRows := len(rowBounds) - 1
	nCols := len(colBounds) - 1
	cells := make([][]string, nRows)
	for i := range cells {
		cells[i] = make([]string, nCols)
	}

	populated := false
	for _, w := range words {
		row := intervalFor(rowBounds, w.Top)
		col := intervalFor(colBounds, w.X0)
		if row < 0 || col < 0 {
			continue
		}
		if cells[row][col] != "" {
			cells[row][col] += " "
		}
		cells[row][col] += w.Text
		populated = true
	}
	if !populated {
		return nil
	}

	grid := make([][]any, nRows)
	for i, row := range cells {
		grid[i] = make([]any, nCols)
		for j, c := range row {
			grid[i][j] = c
		}
	}
	return grid
}

// clusterCoords merges nearby coordinates and returns one representative
// per cluster, ascending.
func clusterCoords(coords []float64, tol float64) []float64 {
	if len(coords) == 0 {
		return nil
	}
	sorted := make([]float64, len(coords))
	copy(sorted, coords)
	sort.Float64s(sorted)

	var out []float64
	start := sorted[0]
	prev := sorted[0]
	for _, v := range sorted[1:] {
		if v-prev > tol {
			out = append(out, (start+prev)/2)
			start = v
		}
		prev = v
	}
	out = append(out, (start+prev)/2)
	return out
}

// clusterRows groups words into rows by vertical proximity, rows ordered
// top to bottom and words left to right.
func clusterRows(words []structurer.PositionedWord, tol float64) [][]structurer.PositionedWord {
	if len(words) == 0 {
		return nil
	}
	sorted := make([]structurer.PositionedWord, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })

	var rows [][]structurer.PositionedWord
	cur := []structurer.PositionedWord{sorted[0]}
	curTop := sorted[0].Top
	for _, w := range sorted[1:] {
		if w.Top-curTop > tol {
			rows = append(rows, sortRow(cur))
			cur = nil
			curTop = w.Top
		}
		cur = append(cur, w)
	}
	rows = append(rows, sortRow(cur))
	return rows
}

func sortRow(row []structurer.PositionedWord) []structurer.PositionedWord {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X0 < row[j].X0 })
	return row
}

// intervalFor returns the index i with bounds[i] <= v < bounds[i+1], or -1.
func intervalFor(bounds []float64, v float64) int {
	for i := 0; i < len(bounds)-1; i++ {
		if v >= bounds[i] && v < bounds[i+1] {
			return i
		}
	}
	return -1
}

// columnFor returns the rightmost column whose start is at or left of x.
func columnFor(starts []float64, x float64) int {
	col := 0
	for i, s := range starts {
		if x >= s-streamColTol {
			col = i
		}
	}
	return col
}
