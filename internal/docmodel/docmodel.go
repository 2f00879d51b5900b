package docmodel

import (
	"encoding/json"
	"fmt"
)

// Content item types.
const (
	TypeParagraph = "paragraph"
	TypeTable     = "table"
	TypeChart     = "chart"
)

// UnknownSection labels content seen before any section heading.
const UnknownSection = "Unknown"

// Document is the root of a structured document.
type Document struct {
	Pages []Page `json:"pages"`
}

// Page holds the ordered content of one source page.
type Page struct {
	PageNumber int           `json:"page_number"`
	Content    []ContentItem `json:"content"`
}

// ContentItem is one entry in a page's content list: a paragraph, a table,
// or a chart placeholder. Which payload fields are meaningful depends on Type;
// MarshalJSON emits only the keys belonging to each variant.
type ContentItem struct {
	Type       string
	Section    string
	SubSection *string

	// Paragraph payload.
	Text string

	// Table/chart payload. Description is nil for structured table results,
	// set for reconstructed tables and always set for charts. TableData is
	// nil for charts.
	Description *string
	TableData   [][]string
}

// NewParagraph builds a paragraph item.
func NewParagraph(section string, subSection *string, text string) ContentItem {
	return ContentItem{
		Type:       TypeParagraph,
		Section:    section,
		SubSection: subSection,
		Text:       text,
	}
}

// NewTable builds a table item. Rows must already be sanitized.
func NewTable(section string, subSection *string, description *string, rows [][]string) ContentItem {
	return ContentItem{
		Type:        TypeTable,
		Section:     section,
		SubSection:  subSection,
		Description: description,
		TableData:   rows,
	}
}

// NewChart builds a chart placeholder item.
func NewChart(section string, subSection *string, description string) ContentItem {
	return ContentItem{
		Type:        TypeChart,
		Section:     section,
		SubSection:  subSection,
		Description: &description,
	}
}

func (c ContentItem) MarshalJSON() ([]byte, error) {
	switch c.Type {
	case TypeParagraph:
		return json.Marshal(struct {
			Type       string  `json:"type"`
			Section    string  `json:"section"`
			SubSection *string `json:"sub_section"`
			Text       string  `json:"text"`
		}{c.Type, c.Section, c.SubSection, c.Text})
	case TypeTable:
		rows := c.TableData
		if rows == nil {
			rows = [][]string{}
		}
		return json.Marshal(struct {
			Type        string     `json:"type"`
			Section     string     `json:"section"`
			SubSection  *string    `json:"sub_section"`
			Description *string    `json:"description"`
			TableData   [][]string `json:"table_data"`
		}{c.Type, c.Section, c.SubSection, c.Description, rows})
	case TypeChart:
		return json.Marshal(struct {
			Type        string  `json:"type"`
			Section     string  `json:"section"`
			SubSection  *string `json:"sub_section"`
			Description *string `json:"description"`
			TableData   any     `json:"table_data"`
		}{c.Type, c.Section, c.SubSection, c.Description, nil})
	}
	return nil, fmt.Errorf("unknown content item type %q", c.Type)
}

func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        string     `json:"type"`
		Section     string     `json:"section"`
		SubSection  *string    `json:"sub_section"`
		Text        string     `json:"text"`
		Description *string    `json:"description"`
		TableData   [][]string `json:"table_data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Type = raw.Type
	c.Section = raw.Section
	c.SubSection = raw.SubSection
	c.Text = raw.Text
	c.Description = raw.Description
	c.TableData = raw.TableData
	return nil
}

// Tables returns the table items of the document in page order.
func (d *Document) Tables() []ContentItem {
	var out []ContentItem
	for _, p := range d.Pages {
		for _, item := range p.Content {
			if item.Type == TypeTable {
				out = append(out, item)
			}
		}
	}
	return out
}
