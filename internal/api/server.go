package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/resilience-scorecard/internal/catalog"
	"github.com/terra-clan/resilience-scorecard/internal/config"
	"github.com/terra-clan/resilience-scorecard/internal/models"
	"github.com/terra-clan/resilience-scorecard/internal/validation"
)

// CatalogSource provides the catalog currently in use
type CatalogSource interface {
	Current() (*models.Catalog, error)
	Issues() []catalog.Issue
}

// Deliverer hands an assembled report to the delivery service
type Deliverer interface {
	Send(ctx context.Context, payload models.ReportPayload) (*models.DeliveryReceipt, error)
}

// Server represents the HTTP API server
type Server struct {
	config    config.ServerConfig
	router    *chi.Mux
	catalogs  CatalogSource
	deliverer Deliverer
	emailOpts []validation.EmailOption
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, catalogs CatalogSource, deliverer Deliverer) *Server {
	s := &Server{
		config:    cfg.Server,
		catalogs:  catalogs,
		deliverer: deliverer,
	}
	if !cfg.Validation.BlockPersonalEmail {
		s.emailOpts = append(s.emailOpts, validation.AllowPersonalDomains())
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// CORS configuration for the browser questionnaire
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check (outside versioned API)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	// API v1 routes, all served from one catalog snapshot per request
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limitBody(maxBodyBytes))
		r.Use(s.requireCatalog)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.handleGetCatalog)
			r.Get("/categories", s.handleListCategories)
			r.Get("/questions", s.handleFindQuestions)
		})

		r.Post("/questions", s.handleSelectQuestions)
		r.Post("/score", s.handleScore)
		r.Post("/submit", s.handleSubmit)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
