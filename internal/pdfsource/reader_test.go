package pdfsource

import (
	"reflect"
	"testing"

	"github.com/ishitak12/pdfstruct/internal/structurer"
)

func TestIsBoldFont(t *testing.T) {
	tests := []struct {
		font string
		want bool
	}{
		{"Helvetica-Bold", true},
		{"Arial-BoldMT", true},
		{"ARIALBOLD", true},
		{"Roboto-Black", true},
		{"Helvetica", false},
		{"Times-Italic", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isBoldFont(tt.font); got != tt.want {
			t.Errorf("isBoldFont(%q) = %v, want %v", tt.font, got, tt.want)
		}
	}
}

func TestGroupLines(t *testing.T) {
	frags := []fragment{
		{text: "world", x: 40, top: 100.5, w: 30, size: 10},
		{text: "Hello", x: 10, top: 100, w: 28, size: 10},
		{text: "Below", x: 10, top: 120, w: 30, size: 10},
	}
	lines := groupLines(frags)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := lines[0].text(); got != "Hello world" {
		t.Errorf("first line = %q", got)
	}
	if got := lines[1].text(); got != "Below" {
		t.Errorf("second line = %q", got)
	}
}

func TestLineText_AbuttingFragmentsConcatenate(t *testing.T) {
	// Kerned runs split by the writer but visually contiguous must not
	// grow a space.
	l := newLine(fragment{text: "Re", x: 10, top: 50, w: 12, size: 10})
	l = l.add(fragment{text: "venue", x: 22.4, top: 50, w: 28, size: 10})
	if got := sortLine(l).text(); got != "Revenue" {
		t.Errorf("got %q, want %q", got, "Revenue")
	}
}

func TestLineWords_SplitsOnSpaces(t *testing.T) {
	l := newLine(fragment{text: "Total 42", x: 0, top: 10, w: 40, size: 10})
	words := sortLine(l).words()
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d: %v", len(words), words)
	}
	if words[0].text != "Total" || words[1].text != "42" {
		t.Errorf("words = %v", words)
	}
	if words[1].x <= words[0].x {
		t.Errorf("second word not to the right of first: %v", words)
	}
}

func TestClusterCoords(t *testing.T) {
	got := clusterCoords([]float64{10, 10.5, 11, 50, 51, 200}, 2)
	want := []float64{10.5, 50.5, 200}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClusterRows(t *testing.T) {
	words := []structurer.PositionedWord{
		{Text: "b", X0: 50, Top: 10},
		{Text: "a", X0: 0, Top: 11},
		{Text: "c", X0: 0, Top: 30},
	}
	rows := clusterRows(words, 3)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0].Text != "a" || rows[0][1].Text != "b" {
		t.Errorf("first row = %v", rows[0])
	}
}

func TestFillGrid(t *testing.T) {
	rowBounds := []float64{0, 20, 40}
	colBounds := []float64{0, 100, 200}
	words := []structurer.PositionedWord{
		{Text: "r1c1", X0: 10, Top: 5},
		{Text: "r1c2", X0: 110, Top: 5},
		{Text: "r2c1", X0: 10, Top: 25},
		{Text: "extra", X0: 50, Top: 25},
	}
	grid := fillGrid(rowBounds, colBounds, words)
	if grid == nil {
		t.Fatal("expected grid")
	}
	if grid[0][0] != "r1c1" || grid[0][1] != "r1c2" {
		t.Errorf("row 0 = %v", grid[0])
	}
	// Two words in one cell join with a space.
	if grid[1][0] != "r2c1 extra" {
		t.Errorf("row 1 col 0 = %v", grid[1][0])
	}
}

func TestFillGrid_NoWordsInside(t *testing.T) {
	grid := fillGrid([]float64{0, 10}, []float64{0, 10}, []structurer.PositionedWord{
		{Text: "far", X0: 500, Top: 500},
	})
	if grid != nil {
		t.Errorf("expected nil grid, got %v", grid)
	}
}

func TestAlignmentDetector_SplitBands(t *testing.T) {
	words := []structurer.PositionedWord{
		{Text: "a", X0: 0, Top: 10},
		{Text: "b", X0: 0, Top: 20},
		{Text: "far", X0: 0, Top: 200},
	}
	bands := splitBands(words)
	if len(bands) != 2 {
		t.Fatalf("expected 2 bands, got %d", len(bands))
	}
	if len(bands[0]) != 2 || len(bands[1]) != 1 {
		t.Errorf("band sizes = %d, %d", len(bands[0]), len(bands[1]))
	}
}

func TestAlignmentDetector_DetectInBand(t *testing.T) {
	d := &alignmentDetector{}

	t.Run("aligned columns form a table", func(t *testing.T) {
		band := []structurer.PositionedWord{
			{Text: "Name", X0: 0, Top: 10}, {Text: "Qty", X0: 100, Top: 10},
			{Text: "Apple", X0: 0, Top: 25}, {Text: "3", X0: 100, Top: 25},
			{Text: "Pear", X0: 0, Top: 40}, {Text: "7", X0: 100, Top: 40},
		}
		grid := d.detectInBand(band)
		if grid == nil {
			t.Fatal("expected table")
		}
		if len(grid) != 3 || len(grid[0]) != 2 {
			t.Fatalf("grid shape = %dx%d", len(grid), len(grid[0]))
		}
		if grid[1][0] != "Apple" || grid[1][1] != "3" {
			t.Errorf("row 1 = %v", grid[1])
		}
	})

	t.Run("prose does not form a table", func(t *testing.T) {
		band := []structurer.PositionedWord{
			{Text: "Scattered", X0: 0, Top: 10},
			{Text: "words", X0: 63, Top: 10},
			{Text: "with", X0: 17, Top: 25},
			{Text: "ragged", X0: 44, Top: 25},
			{Text: "margins", X0: 88, Top: 40},
		}
		if grid := d.detectInBand(band); grid != nil {
			t.Errorf("expected no table, got %v", grid)
		}
	})

	t.Run("single row rejected", func(t *testing.T) {
		band := []structurer.PositionedWord{
			{Text: "a", X0: 0, Top: 10}, {Text: "b", X0: 100, Top: 10},
		}
		if grid := d.detectInBand(band); grid != nil {
			t.Errorf("expected no table, got %v", grid)
		}
	})
}
