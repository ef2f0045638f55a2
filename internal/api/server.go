// Package api serves the game over HTTP: a JSON API for levels, attempts
// and player statistics, a websocket stream of game events and Prometheus
// metrics.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/pattern-island/internal/game"
)

// Server holds the HTTP handlers.
type Server struct {
	game     *game.Service
	metrics  *Metrics
	registry *prometheus.Registry
	log      *log.Logger
}

// NewServer creates a server with its own metrics registry.
func NewServer(svc *game.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	reg := prometheus.NewRegistry()
	return &Server{
		game:     svc,
		metrics:  NewMetrics(reg),
		registry: reg,
		log:      logger.WithPrefix("http"),
	}
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/levels", s.handleLevels)
		r.Get("/levels/{id}", s.handleLevel)
		r.Get("/players/{profile}/stats", s.handleStats)
		r.Post("/players/{profile}/attempts", s.handleStartAttempt)
		r.Post("/attempts/{id}/choose", s.handleChoose)
		r.Post("/attempts/{id}/hint", s.handleHint)
		r.Get("/events", s.handleEvents)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, feeding metrics from
// the game's event bus meanwhile.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	go s.metrics.Run(ctx, s.game.Bus())

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.observeRequest(r.Method, route, status, time.Since(start))

		level := log.DebugLevel
		if status >= http.StatusInternalServerError {
			level = log.ErrorLevel
		}
		s.log.Log(level, "request", "method", r.Method, "path", r.URL.Path, "status", status,
			"bytes", ww.BytesWritten(), "elapsed", time.Since(start))
	})
}
