// Package ui serves the model workbench's JSON API.
package ui

import (
	"context"
	"errors"
	"net/http"
	"time"

	"modelbench/app"
	"modelbench/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Services bundles the application services the handlers call
type Services struct {
	Accounts *app.AccountService
	Datasets *app.DatasetService
	Training *app.TrainingService
	History  *app.HistoryService
}

// Server is the HTTP server for the workbench API
type Server struct {
	services      Services
	logger        *internal.Logger
	maxUploadSize int64
	router        *chi.Mux
	server        *http.Server
}

// NewServer creates a server. maxUploadSize bounds a single dataset file.
func NewServer(services Services, maxUploadSize int64, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		services:      services,
		logger:        logger,
		maxUploadSize: maxUploadSize,
		router:        chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.NotFound(s.handleNotFound)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Accounts
		r.Post("/login", s.handleLogin)
		r.Post("/signup", s.handleSignup)

		// Catalog
		r.Get("/models", s.handleListModels)

		// Datasets and training
		r.Post("/datasets/preview", s.handlePreview)
		r.Post("/models/{model}/train", s.handleTrain)

		// Saved runs
		r.Get("/history/{username}/comparisons", s.handleComparisons)
		r.Delete("/history/{username}", s.handleClearHistory)
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening for HTTP requests. It returns nil after Shutdown.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("starting server", "addr", addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("shutting down server")
	return s.server.Shutdown(ctx)
}
