package pdfsource

import (
	"github.com/ishitak12/pdfstruct/internal/structurer"
)

// Alignment detector thresholds.
const (
	bandGap       = 40.0 // vertical gap that splits word clusters
	alignMinRows  = 2
	alignMinCols  = 2
	minConfidence = 0.5 // fraction of words that must sit on a column start
	alignStartTol = 4.0
)

// alignmentDetector is the backup structured table source: an independent
// detector that clusters words into vertically dense bands and accepts a
// band as a table when enough of its words share column start positions.
// Grounded on alignment-pattern detection rather than ruling lines, so it
// can find tables the grid extractor misses and vice versa.
type alignmentDetector struct {
	r *Reader
}

func (d *alignmentDetector) Tables(page int, _ structurer.TableMode) ([][][]any, error) {
	words, err := d.r.Words(page)
	if err != nil {
		return nil, err
	}

	var tables [][][]any
	for _, band := range splitBands(words) {
		if grid := d.detectInBand(band); grid != nil {
			tables = append(tables, grid)
		}
	}
	return tables, nil
}

// splitBands groups words into clusters separated by large vertical gaps.
func splitBands(words []structurer.PositionedWord) [][]structurer.PositionedWord {
	rows := clusterRows(words, streamRowTol)
	if len(rows) == 0 {
		return nil
	}

	var bands [][]structurer.PositionedWord
	var cur []structurer.PositionedWord
	var lastTop float64
	for i, row := range rows {
		if i > 0 && row[0].Top-lastTop > bandGap {
			bands = append(bands, cur)
			cur = nil
		}
		cur = append(cur, row...)
		lastTop = row[0].Top
	}
	bands = append(bands, cur)
	return bands
}

// detectInBand accepts a band as a table when it has enough rows, enough
// repeated column starts, and a high enough share of words aligned to
// those starts.
func (d *alignmentDetector) detectInBand(band []structurer.PositionedWord) [][]any {
	rows := clusterRows(band, streamRowTol)
	if len(rows) < alignMinRows {
		return nil
	}

	var starts []float64
	for _, row := range rows {
		for _, w := range row {
			starts = append(starts, w.X0)
		}
	}
	clustered := clusterCoords(starts, alignStartTol)

	// A column must be populated by more than one row to count.
	var colStarts []float64
	for _, c := range clustered {
		support := 0
		for _, row := range rows {
			for _, w := range row {
				if w.X0 >= c-alignStartTol && w.X0 <= c+alignStartTol {
					support++
					break
				}
			}
		}
		if support >= alignMinRows {
			colStarts = append(colStarts, c)
		}
	}
	if len(colStarts) < alignMinCols {
		return nil
	}

	aligned := 0
	for _, w := range band {
		for _, c := range colStarts {
			if w.X0 >= c-alignStartTol && w.X0 <= c+alignStartTol {
				aligned++
				break
			}
		}
	}
	if float64(aligned) < minConfidence*float64(len(band)) {
		return nil
	}

	grid := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(colStarts))
		for _, w := range row {
			col := columnForTol(colStarts, w.X0, alignStartTol)
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
	return grid
}

func columnForTol(starts []float64, x, tol float64) int {
	col := 0
	for i, s := range starts {
		if x >= s-tol {
			col = i
		}
	}
	return col
}
