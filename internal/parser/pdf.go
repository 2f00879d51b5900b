package parser

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
	"github.com/ishitak12/pdfstruct/internal/pdfsource"
	"github.com/ishitak12/pdfstruct/internal/structurer"
)

// PDFConverter runs the full structuring pipeline: geometry extraction,
// heading classification, table resolution, chart detection.
type PDFConverter struct {
	cfg structurer.Config
	log *slog.Logger
}

func (p *PDFConverter) Convert(r io.Reader, filename string) (*docmodel.Document, error) {
	// The PDF readers need a seekable file of known size, so we write to a
	// temp file first.
	tmp, err := os.CreateTemp("", "pdfstruct-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	src, err := pdfsource.Open(tmpPath, p.log)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	defer src.Close()

	doc, err := structurer.New(p.cfg, p.log).Convert(src.Source())
	if err != nil {
		return nil, fmt.Errorf("structure pdf: %w", err)
	}
	return doc, nil
}
