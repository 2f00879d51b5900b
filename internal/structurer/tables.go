package structurer

import (
	"fmt"
	"strings"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
)

// ReconstructedDescription marks tables rebuilt from word positions as
// lower-confidence than structured extractor results.
const ReconstructedDescription = "Reconstructed from word positions"

// ResolveTables returns the table items for a page, trying strategies of
// decreasing reliability and stopping at the first that yields at least one
// non-empty table:
//
//  1. the primary structured source in lattice mode, retried in stream mode
//     when lattice finds nothing;
//  2. the independent backup detector;
//  3. geometric reconstruction from word positions.
//
// It never fails: any strategy error counts as zero tables from that
// strategy and the next one is attempted.
func (s *Structurer) ResolveTables(src Source, page int, st State) []docmodel.ContentItem {
	if tables := s.primaryTables(src.Tables, page); len(tables) > 0 {
		return s.tableItems(tables, st, nil)
	}
	if tables := s.backupTables(src.Backup, page); len(tables) > 0 {
		return s.tableItems(tables, st, nil)
	}
	return s.reconstructTables(src.Words, page, st)
}

// primaryTables runs the lattice/stream strategy. An error from either call
// abandons the whole strategy; only an empty lattice result triggers the
// stream retry.
func (s *Structurer) primaryTables(ts TableSource, page int) [][][]string {
	if ts == nil {
		return nil
	}
	raw, err := ts.Tables(page, ModeLattice)
	if err != nil {
		s.log.Debug("structured table extraction failed", "page", page, "mode", ModeLattice, "error", err)
		return nil
	}
	if len(raw) == 0 {
		raw, err = ts.Tables(page, ModeStream)
		if err != nil {
			s.log.Debug("structured table extraction failed", "page", page, "mode", ModeStream, "error", err)
			return nil
		}
	}
	return sanitizeAll(raw)
}

func (s *Structurer) backupTables(ts TableSource, page int) [][][]string {
	if ts == nil {
		return nil
	}
	raw, err := ts.Tables(page, ModeAuto)
	if err != nil {
		s.log.Debug("backup table extraction failed", "page", page, "error", err)
		return nil
	}
	return sanitizeAll(raw)
}

func (s *Structurer) reconstructTables(ws WordSource, page int, st State) []docmodel.ContentItem {
	if ws == nil {
		return nil
	}
	words, err := ws.Words(page)
	if err != nil {
		s.log.Debug("word extraction failed", "page", page, "error", err)
		return nil
	}
	rows := BuildTableFromWords(words, s.cfg.YTolerance, s.cfg.ColGap)
	if len(rows) == 0 {
		return nil
	}
	desc := ReconstructedDescription
	return []docmodel.ContentItem{
		docmodel.NewTable(st.sectionLabel(), st.subSectionRef(), &desc, rows),
	}
}

func (s *Structurer) tableItems(tables [][][]string, st State, description *string) []docmodel.ContentItem {
	items := make([]docmodel.ContentItem, 0, len(tables))
	for _, rows := range tables {
		items = append(items, docmodel.NewTable(st.sectionLabel(), st.subSectionRef(), description, rows))
	}
	return items
}

func sanitizeAll(raw [][][]any) [][][]string {
	var tables [][][]string
	for _, grid := range raw {
		rows := SanitizeTable(grid)
		if len(rows) > 0 {
			tables = append(tables, rows)
		}
	}
	return tables
}

// SanitizeTable normalizes a raw extractor grid to the canonical table
// shape: every cell becomes a trimmed string, and nil cells become empty
// strings, never a null-like value. Ragged rows are kept ragged.
func SanitizeTable(grid [][]any) [][]string {
	rows := make([][]string, 0, len(grid))
	for _, rawRow := range grid {
		row := make([]string, len(rawRow))
		for i, cell := range rawRow {
			if cell == nil {
				continue
			}
			switch v := cell.(type) {
			case string:
				row[i] = strings.TrimSpace(v)
			default:
				row[i] = strings.TrimSpace(fmt.Sprint(v))
			}
		}
		rows = append(rows, row)
	}
	return rows
}
