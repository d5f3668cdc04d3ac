package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"shotfold/internal/config"
	"shotfold/internal/pipeline"
)

// Server is the HTTP conversion service.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	conv         *pipeline.Converter
	log          *slog.Logger
	srv          config.Server
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, conv *pipeline.Converter, log *slog.Logger, srv config.Server) *Server {
	s := &Server{
		orchestrator: orch,
		conv:         conv,
		log:          log,
		srv:          srv,
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

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(RequireAPIKey(s.srv.APIKey))

		r.Post("/api/convert", s.handleConvert)
		r.Post("/api/convert/batch", s.handleBatchConvert)
		r.Get("/api/convert/{jobID}/status", s.handleJobStatus)
		r.Get("/api/convert/{jobID}/result", s.handleJobResult)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
