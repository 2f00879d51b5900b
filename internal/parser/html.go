package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
	"github.com/ishitak12/pdfstruct/internal/structurer"
)

// HTMLConverter maps markup onto the document structure: h1 becomes the
// section, h2-h6 the sub-section, table elements become table items, and
// img elements become chart placeholders. Output is a single logical page.
type HTMLConverter struct{}

func (p *HTMLConverter) Convert(r io.Reader, filename string) (*docmodel.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var (
		section string
		sub     string
		content = []docmodel.ContentItem{}
	)
	label := func() string {
		if section == "" {
			return docmodel.UnknownSection
		}
		return section
	}
	subRef := func() *string {
		if sub == "" {
			return nil
		}
		s := sub
		return &s
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				text := textContent(n)
				if text != "" {
					if level == 1 {
						section = text
						sub = ""
					} else {
						sub = text
					}
				}
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "table":
				rows := tableRows(n)
				if len(rows) > 0 {
					content = append(content, docmodel.NewTable(label(), subRef(), nil, rows))
				}
				return
			case "img":
				content = append(content, docmodel.NewChart(label(), subRef(), structurer.ChartImageDescription))
				return
			case "p", "li", "blockquote":
				if t := textContent(n); t != "" {
					content = append(content, docmodel.NewParagraph(label(), subRef(), t))
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	return &docmodel.Document{
		Pages: []docmodel.Page{{PageNumber: 1, Content: content}},
	}, nil
}

// tableRows flattens tr/td markup into sanitized rows.
func tableRows(table *html.Node) [][]string {
	var raw [][]any
	var findRows func(*html.Node)
	findRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row []any
			var findCells func(*html.Node)
			findCells = func(c *html.Node) {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, textContent(c))
					return
				}
				for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
					findCells(cc)
				}
			}
			findCells(n)
			if len(row) > 0 {
				raw = append(raw, row)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findRows(c)
		}
	}
	findRows(table)
	return structurer.SanitizeTable(raw)
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
