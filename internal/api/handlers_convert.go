package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ishitak12/pdfstruct/internal/docstore"
	"github.com/ishitak12/pdfstruct/internal/parser"
	"github.com/ishitak12/pdfstruct/internal/pipeline"
)

type upload struct {
	filename string
	title    string
	docID    string
	data     []byte
}

// readUpload parses the multipart form and applies filename and size checks.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	// Limit total request size, with extra headroom for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return upload{}, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return upload{}, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return upload{}, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return upload{}, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return upload{}, false
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = pipeline.ContentHashHex(data)[:16]
	}

	return upload{
		filename: filename,
		title:    r.FormValue("title"),
		docID:    docID,
		data:     data,
	}, true
}

// handleConvert converts an uploaded document synchronously and returns the
// structured result. The document is also persisted under its doc ID.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	conv, err := s.converters.ForFile(up.filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := conv.Convert(bytes.NewReader(up.data), up.filename)
	if err != nil {
		s.log.Error("conversion failed", "filename", up.filename, "error", err)
		jsonError(w, "conversion failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	rec := docstore.Record{
		DocID:       up.docID,
		Filename:    up.filename,
		Title:       up.title,
		ContentHash: pipeline.ContentHashHex(up.data),
		CreatedAt:   time.Now(),
	}
	if err := s.orchestrator.Store().Save(r.Context(), rec, doc); err != nil {
		s.log.Error("store failed", "doc_id", up.docID, "error", err)
		jsonError(w, "failed to store document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":   up.docID,
		"filename": up.filename,
		"document": doc,
	})
}

// handleConvertAsync queues a conversion and returns a job handle.
func (s *Server) handleConvertAsync(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        uuid.NewString(),
		DocID:     up.docID,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Filename:  up.filename,
		Title:     up.title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(up.data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/convert/%s/status", job.ID),
	})
}

func (s *Server) handleConvertStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"doc_id":   snap.DocID,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
