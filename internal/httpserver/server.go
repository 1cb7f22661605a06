// ABOUTME: HTTP server exposing the bird journal as a JSON API plus a GeoJSON map feed.
// ABOUTME: Builds the chi router, middleware stack, and graceful start/stop.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/2389-research/birdlog/internal/logger"
	"github.com/2389-research/birdlog/internal/models"
	"github.com/2389-research/birdlog/internal/storage"
)

// Deps are the shared dependencies handed to every handler.
type Deps struct {
	Birds      storage.BirdStore
	Logger     logger.Logger
	DefaultLoc models.Location
	Version    string
	StartTime  time.Time
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http   *http.Server
	logger logger.Logger
}

// NewRouter builds the router with middleware and all routes registered.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.StartTime.IsZero() {
		d.StartTime = time.Now()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(accessLog(d.Logger))

	r.Get("/healthz", healthz(d))

	r.Route("/api", func(r chi.Router) {
		r.Route("/birds", func(r chi.Router) {
			r.Get("/", listBirds(d))
			r.Post("/", createBird(d))
			r.Get("/{id}", getBird(d))
			r.Put("/{id}", updateBird(d))
			r.Delete("/{id}", deleteBird(d))
		})
		r.Get("/map", mapMarkers(d))
		r.Get("/near", nearBirds(d))
	})

	return r
}

// New builds the HTTP server listening on addr.
func New(addr string, d Deps) *Server {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}

	s := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:   s,
		logger: d.Logger,
	}
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
