package structurer

import (
	"math"
	"sort"
	"strings"
)

type positionedCell struct {
	x0   float64
	text string
}

// BuildTableFromWords reconstructs a table from raw word positions: words
// are clustered into rows by quantized vertical position, then each row is
// split into columns wherever the horizontal gap between neighbouring words
// exceeds colGap. Returns nil for empty input.
//
// A gap inserts exactly one empty cell regardless of its width, so several
// adjacent empty columns (or an empty leading column) collapse into one and
// can misalign the grid. That is a known limit of the heuristic, kept as is.
func BuildTableFromWords(words []PositionedWord, yTolerance, colGap float64) [][]string {
	if len(words) == 0 {
		return nil
	}
	if yTolerance <= 0 {
		yTolerance = DefaultConfig().YTolerance
	}
	if colGap <= 0 {
		colGap = DefaultConfig().ColGap
	}

	// Quantize tops so baselines within the tolerance share a row key.
	rows := make(map[float64][]positionedCell)
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		key := math.Round(w.Top/yTolerance) * yTolerance
		rows[key] = append(rows[key], positionedCell{x0: w.X0, text: text})
	}
	if len(rows) == 0 {
		return nil
	}

	keys := make([]float64, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	table := make([][]string, 0, len(keys))
	for _, k := range keys {
		cells := rows[k]
		sort.Slice(cells, func(i, j int) bool { return cells[i].x0 < cells[j].x0 })

		row := make([]string, 0, len(cells))
		lastX := math.Inf(-1)
		for i, c := range cells {
			if i > 0 && c.x0-lastX > colGap {
				row = append(row, "")
			}
			row = append(row, c.text)
			lastX = c.x0
		}
		table = append(table, row)
	}
	return table
}
