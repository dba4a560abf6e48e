// Package api implements the HTTP server surface.
//
// The server exposes a stateless transform endpoint plus a small
// document CRUD surface backed by a [store.Store]. All responses are
// JSON; errors carry a machine-readable code from [errors.Code].
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ghostify/pkg/buildinfo"
	"github.com/matzehuels/ghostify/pkg/pipeline"
	"github.com/matzehuels/ghostify/pkg/store"
)

// Server is the HTTP API server for ghostify.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	store  store.Store
	log    *log.Logger

	// MaxBodyBytes bounds the size of uploaded documents.
	MaxBodyBytes int64

	// CacheTTL overrides the pipeline's default cache TTL when
	// positive.
	CacheTTL time.Duration
}

// DefaultMaxBodyBytes limits document uploads to 32 MiB.
const DefaultMaxBodyBytes = 32 << 20

// NewServer creates and configures the HTTP server.
// A nil logger falls back to [log.Default].
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:       runner,
		store:        st,
		log:          logger,
		MaxBodyBytes: DefaultMaxBodyBytes,
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
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/ghost", s.handleGhost)

		r.Route("/documents", func(r chi.Router) {
			r.Post("/", s.handleCreateDocument)
			r.Get("/", s.handleListDocuments)
			r.Get("/{docID}", s.handleGetDocument)
			r.Delete("/{docID}", s.handleDeleteDocument)
			r.Post("/{docID}/ghost", s.handleGhostDocument)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}
