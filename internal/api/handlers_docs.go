package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ishitak12/pdfstruct/internal/docstore"
	"github.com/ishitak12/pdfstruct/internal/export"
)

// handleListDocuments lists stored documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	recs, err := s.orchestrator.Store().List(r.Context())
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []docstore.Record{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": recs})
}

// handleGetDocument returns a stored document with its metadata.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	rec, doc, err := s.orchestrator.Store().Get(r.Context(), docID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":   rec.DocID,
		"filename": rec.Filename,
		"title":    rec.Title,
		"document": doc,
	})
}

// handleDeleteDocument removes a stored document.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.orchestrator.Store().Delete(r.Context(), docID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}

// handlePreviewDocument renders the document as an HTML page.
func (s *Server) handlePreviewDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	_, doc, err := s.orchestrator.Store().Get(r.Context(), docID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	html, err := export.PreviewHTML(doc)
	if err != nil {
		jsonError(w, "failed to render preview: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// handleDocumentTables exports the document's tables as a spreadsheet.
func (s *Server) handleDocumentTables(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	_, doc, err := s.orchestrator.Store().Get(r.Context(), docID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			jsonError(w, "document not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	data, err := export.TablesXLSX(doc)
	if err != nil {
		if errors.Is(err, export.ErrNoTables) {
			jsonError(w, "document contains no tables", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to export tables: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", docID+"-tables.xlsx"))
	w.Write(data)
}
