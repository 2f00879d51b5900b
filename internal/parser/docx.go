package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
)

// DOCXConverter maps a Word document onto the same structure: Heading1
// styles become sections, deeper heading styles become sub-sections, and
// everything else becomes paragraphs. DOCX carries explicit styles, so no
// font heuristics are needed. Output is a single logical page.
type DOCXConverter struct{}

func (p *DOCXConverter) Convert(r io.Reader, filename string) (*docmodel.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "pdfstruct-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
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

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		switch level := docxHeadingLevel(para); {
		case level == 1:
			section = text
			sub = ""
		case level > 1:
			sub = text
		default:
			content = append(content, docmodel.NewParagraph(label(), subRef(), text))
		}
	}

	return &docmodel.Document{
		Pages: []docmodel.Page{{PageNumber: 1, Content: content}},
	}, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	for level := 1; level <= 6; level++ {
		if style == fmt.Sprintf("heading%d", level) {
			return level
		}
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
