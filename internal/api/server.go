package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/specdoc/internal/compose"
	"github.com/dgallion1/specdoc/internal/config"
	"github.com/dgallion1/specdoc/internal/pipeline"
)

// Server is the HTTP API server for specdoc.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	builder      *compose.Builder
	newDoc       pipeline.DocumentFactory
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. builder and newDoc
// serve the synchronous build path; the orchestrator serves the async one.
func NewServer(orch *pipeline.Orchestrator, builder *compose.Builder, newDoc pipeline.DocumentFactory, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		builder:      builder,
		newDoc:       newDoc,
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
		r.Use(AuthMiddleware(s.cfg.SpecdocAPIKey, s.log))

		r.Post("/api/documents", s.handleBuildDocument)
		r.Post("/api/documents/async", s.handleBuildDocumentAsync)
		r.Get("/api/documents/{jobID}/status", s.handleJobStatus)
		r.Get("/api/documents/{jobID}/result", s.handleJobResult)

		r.Post("/api/preview", s.handlePreview)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
