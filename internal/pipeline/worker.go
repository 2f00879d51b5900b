package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
	"github.com/ishitak12/pdfstruct/internal/docstore"
	"github.com/ishitak12/pdfstruct/internal/parser"
)

// Worker processes a single conversion job.
type Worker struct {
	converters *parser.Factory
	store      *docstore.Store
	log        *slog.Logger
}

func NewWorker(converters *parser.Factory, store *docstore.Store, log *slog.Logger) *Worker {
	return &Worker{
		converters: converters,
		store:      store,
		log:        log,
	}
}

// Process runs the full conversion pipeline for a job. Conversion either
// fully succeeds (document stored, job completed) or fully fails; a failed
// job never stores a partial document.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: pick a converter.
	job.SetStatus(StatusParsing, "parsing")
	conv, err := w.converters.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	data := job.FileData()
	job.SetContentHash(ContentHashHex(data))

	// Phase 2: structure the document.
	job.SetStatus(StatusStructuring, "structuring")
	doc, err := conv.Convert(bytes.NewReader(data), job.Filename)
	if err != nil {
		log.Error("conversion failed", "error", err)
		job.AddError(fmt.Sprintf("convert: %s", err))
		job.SetStatus(StatusFailed, "structuring")
		return
	}

	paragraphs, tables, charts := countItems(doc)
	job.SetCounts(len(doc.Pages), paragraphs, tables, charts)
	log.Info("structured document",
		"pages", len(doc.Pages),
		"paragraphs", paragraphs,
		"tables", tables,
		"charts", charts,
	)

	// Phase 3: persist.
	job.SetStatus(StatusStoring, "storing")
	rec := docstore.Record{
		DocID:       job.DocID,
		Filename:    job.Filename,
		Title:       job.Title,
		ContentHash: job.ContentHash,
		CreatedAt:   time.Now(),
	}
	if err := w.store.Save(ctx, rec, doc); err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
}

func countItems(doc *docmodel.Document) (paragraphs, tables, charts int) {
	for _, page := range doc.Pages {
		for _, item := range page.Content {
			switch item.Type {
			case docmodel.TypeParagraph:
				paragraphs++
			case docmodel.TypeTable:
				tables++
			case docmodel.TypeChart:
				charts++
			}
		}
	}
	return paragraphs, tables, charts
}
