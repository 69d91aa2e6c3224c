// Package proxy is the admin gateway: a thin HTTP layer that fronts
// the zemdocs core API, keeping the bearer token server-side and
// exposing browser-friendly routes under /api.
package proxy

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/felipegalvaoz/zemdocs-admin/internal/empresa"
)

// Server holds the gateway dependencies.
type Server struct {
	svc      *empresa.Service
	origins  []string
	listsize int
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAllowedOrigins sets the CORS allow list.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.origins = origins
	}
}

// NewServer creates the gateway over the empresa facade.
func NewServer(svc *empresa.Service, opts ...ServerOption) *Server {
	s := &Server{
		svc:      svc,
		origins:  []string{"http://localhost:3000"},
		listsize: 1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/empresas", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/stats", s.handleStats)
		r.Get("/cnpj/{cnpj}", s.handleGetByCNPJ)
		r.Get("/consultar-cnpj/{cnpj}", s.handleLookup)
		r.Post("/criar-por-cnpj/{cnpj}", s.handleCreateFromCNPJ)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}
