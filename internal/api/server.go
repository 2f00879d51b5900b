package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ishitak12/pdfstruct/internal/config"
	"github.com/ishitak12/pdfstruct/internal/parser"
	"github.com/ishitak12/pdfstruct/internal/pipeline"
)

// Server is the HTTP API server for pdfstruct.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	converters   *parser.Factory
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, converters *parser.Factory, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		converters:   converters,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/convert", s.handleConvert)
		r.Post("/api/convert/async", s.handleConvertAsync)
		r.Get("/api/convert/{jobID}/status", s.handleConvertStatus)
		r.Get("/api/stats", s.handleStats)

		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
		r.Get("/api/documents/{docID}/preview", s.handlePreviewDocument)
		r.Get("/api/documents/{docID}/tables.xlsx", s.handleDocumentTables)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
