// Package export renders stored documents into secondary formats:
// a Markdown rendition with an HTML preview, and an XLSX workbook of the
// extracted tables.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
)

// Markdown renders the document as GitHub-flavored Markdown. Section and
// sub-section headings are emitted once, when the label changes.
func Markdown(doc *docmodel.Document) string {
	var sb strings.Builder
	var lastSection, lastSub string

	for _, page := range doc.Pages {
		for _, item := range page.Content {
			if item.Section != lastSection {
				fmt.Fprintf(&sb, "# %s\n\n", item.Section)
				lastSection = item.Section
				lastSub = ""
			}
			sub := ""
			if item.SubSection != nil {
				sub = *item.SubSection
			}
			if sub != "" && sub != lastSub {
				fmt.Fprintf(&sb, "## %s\n\n", sub)
			}
			lastSub = sub

			switch item.Type {
			case docmodel.TypeParagraph:
				sb.WriteString(item.Text)
				sb.WriteString("\n\n")
			case docmodel.TypeTable:
				writeMarkdownTable(&sb, item.TableData)
			case docmodel.TypeChart:
				if item.Description != nil {
					fmt.Fprintf(&sb, "*%s (page %d)*\n\n", *item.Description, page.PageNumber)
				}
			}
		}
	}
	return sb.String()
}

// writeMarkdownTable emits a GFM table, padding ragged rows to the widest
// row and escaping pipes.
func writeMarkdownTable(sb *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return
	}

	writeRow := func(row []string) {
		sb.WriteString("|")
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(row) {
				cell = strings.ReplaceAll(row[i], "|", "\\|")
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sb.WriteString("|")
	for i := 0; i < width; i++ {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	sb.WriteString("\n")
}

// PreviewHTML converts the document's Markdown rendition to an HTML
// fragment for the preview endpoint.
func PreviewHTML(doc *docmodel.Document) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return buf.Bytes(), nil
}
