package export

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
)

// ErrNoTables reports a document with nothing to export.
var ErrNoTables = errors.New("document contains no tables")

// TablesXLSX returns an XLSX workbook with one sheet per page that carries
// tables. Tables on the same page are stacked with a blank separator row;
// reconstructed tables keep their description as a marker row.
func TablesXLSX(doc *docmodel.Document) ([]byte, error) {
	f := excelize.NewFile()

	wrote := false
	first := true
	for _, page := range doc.Pages {
		row := 1
		sheet := fmt.Sprintf("Page %d", page.PageNumber)
		sheetReady := false

		for _, item := range page.Content {
			if item.Type != docmodel.TypeTable {
				continue
			}
			if !sheetReady {
				if first {
					// Rename the workbook's default sheet for the first page.
					if err := f.SetSheetName("Sheet1", sheet); err != nil {
						return nil, err
					}
					first = false
				} else if _, err := f.NewSheet(sheet); err != nil {
					return nil, err
				}
				sheetReady = true
			}

			if item.Description != nil {
				cell, _ := excelize.CoordinatesToCellName(1, row)
				if err := f.SetCellValue(sheet, cell, *item.Description); err != nil {
					return nil, err
				}
				row++
			}
			for _, cells := range item.TableData {
				for col, v := range cells {
					cell, _ := excelize.CoordinatesToCellName(col+1, row)
					if err := f.SetCellValue(sheet, cell, v); err != nil {
						return nil, err
					}
				}
				row++
			}
			row++ // separator between tables
			wrote = true
		}
	}
	if !wrote {
		return nil, ErrNoTables
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
