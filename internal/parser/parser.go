package parser

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
	"github.com/ishitak12/pdfstruct/internal/structurer"
)

// Converter turns raw document bytes into a structured Document.
type Converter interface {
	Convert(r io.Reader, filename string) (*docmodel.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".html": true,
	".htm":  true,
}

// Factory builds converters sharing the heuristic configuration.
type Factory struct {
	cfg structurer.Config
	log *slog.Logger
}

func NewFactory(cfg structurer.Config, log *slog.Logger) *Factory {
	if log == nil {
		log = slog.Default()
	}
	return &Factory{cfg: cfg, log: log}
}

// ForFile returns the appropriate converter for a filename.
func (f *Factory) ForFile(filename string) (Converter, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFConverter{cfg: f.cfg, log: f.log}, nil
	case ".docx":
		return &DOCXConverter{}, nil
	case ".html", ".htm":
		return &HTMLConverter{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
