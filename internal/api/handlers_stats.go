package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/ishitak12/pdfstruct/internal/parser"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	exts := make([]string, 0, len(parser.SupportedExtensions))
	for ext := range parser.SupportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"queue_depth":          s.orchestrator.QueueDepth(),
		"supported_extensions": exts,
	})
}
