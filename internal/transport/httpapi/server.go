// Package httpapi exposes the pipeline over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/va2ai/bvaapi2/internal/metrics"
	"github.com/va2ai/bvaapi2/internal/model"
	"github.com/va2ai/bvaapi2/internal/pipeline"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Server serves the JSON API.
type Server struct {
	pipeline *pipeline.Pipeline
	cfg      model.ServerConfig
	logger   *zap.Logger
	srv      *http.Server
}

// NewServer creates a Server around an assembled pipeline.
func NewServer(p *pipeline.Pipeline, cfg model.ServerConfig, logger *zap.Logger) *Server {
	s := &Server{
		pipeline: p,
		cfg:      cfg,
		logger:   logger,
	}
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Router builds the route tree. Exposed separately so tests can drive the
// handlers without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/search", s.handleSearch)
	r.Get("/case", s.handleCase)
	r.Get("/case/text", s.handleCaseText)
	r.Post("/batch/search", s.handleBatchSearch)
	r.Get("/analyze/text", s.handleAnalyzeText)

	return r
}

// Start serves until the context is canceled, then drains connections within
// the shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	return s.srv.Shutdown(shutdownCtx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"service": "bvaapi",
		"version": Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"endpoints": []string{
			"POST /search",
			"GET /case",
			"GET /case/text",
			"POST /batch/search",
			"GET /analyze/text",
			"GET /health",
			"GET /metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": Version})
}
