// Package api provides the HTTP API server and handlers for the Passage
// application.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/passageapp/passage-server/internal/config"
	"github.com/passageapp/passage-server/internal/http/response"
	"github.com/passageapp/passage-server/internal/ratelimit"
	"github.com/passageapp/passage-server/internal/store"
	"github.com/passageapp/passage-server/internal/validation"

	"log/slog"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       store.Store
	services    *Services
	validator   *validation.Validator
	router      *chi.Mux
	api         huma.API
	logger      *slog.Logger
	rateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st store.Store, services *Services, logger *slog.Logger) *Server {
	s := &Server{
		store:       st,
		services:    services,
		validator:   validation.New(),
		router:      chi.NewRouter(),
		logger:      logger,
		rateLimiter: ratelimit.New(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Passage API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// Clients send trailing-slash paths; routes are registered without the
	// slash.
	s.router.Use(middleware.StripSlashes)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Use(RateLimitMiddleware(s.rateLimiter, s.logger))

	// Fallbacks outside huma's dispatch still answer in the envelope shape.
	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "resource not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, "method "+r.Method+" not allowed", s.logger)
	})
}

// setupRoutes registers all huma operations.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerBookRoutes()
	s.registerParagraphRoutes()
	s.registerUserRoutes()
	s.registerEventRoutes()
	s.registerFeedRoutes()
}
