package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/plaintext/internal/config"
	"github.com/dgallion1/plaintext/internal/serializer/plain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolvers hands out a translation resolver for a requested locale.
type Resolvers interface {
	Resolver(locale string) plain.TranslationResolver
}

// Server is the HTTP API server for plaintext.
type Server struct {
	router    chi.Router
	resolvers Resolvers
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server. With nil resolvers
// translatable components render as the empty string.
func NewServer(resolvers Resolvers, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		resolvers: resolvers,
		log:       log,
		cfg:       cfg,
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
	r.Handle("/metrics", promhttp.Handler())

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/plain", s.handlePlain)
		r.Post("/api/plain/batch", s.handleBatchPlain)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// serializer returns the plain serializer to use for locale.
func (s *Server) serializer(locale string) *plain.Serializer {
	if s.resolvers == nil {
		return plain.Default
	}
	return plain.New(s.resolvers.Resolver(locale))
}
