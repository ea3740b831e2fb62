// Package api provides the HTTP API server and handlers for the StudyDeck application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/studydeckapp/studydeck-server/internal/config"
	"github.com/studydeckapp/studydeck-server/internal/ratelimit"
	"github.com/studydeckapp/studydeck-server/internal/service"
	"github.com/studydeckapp/studydeck-server/internal/store"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Card     *service.CardService
	Session  *service.SessionService
	Progress *service.ProgressService
	Search   *service.SearchService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	config       *config.Config
	store        *store.Store
	services     *Services
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
	writeLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st *store.Store, services *Services, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	writeLimiter := ratelimit.New(cfg.Limits.WriteRPS, cfg.Limits.WriteBurst)
	router.Use(WriteRateLimitMiddleware(writeLimiter, logger))

	humaConfig := huma.DefaultConfig(cfg.Server.Name+" API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		config:       cfg,
		store:        st,
		services:     services,
		router:       router,
		api:          api,
		logger:       logger,
		writeLimiter: writeLimiter,
	}

	s.registerHealthRoutes()
	s.registerCardRoutes()
	s.registerSessionRoutes()
	s.registerProgressRoutes()
	if services.Search != nil {
		s.registerSearchRoutes()
	}

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources (the rate limiter's eviction
// loop). The store and search index are owned by their providers.
func (s *Server) Close() {
	s.writeLimiter.Stop()
}

// MessageResponse contains a simple status message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps a message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}
