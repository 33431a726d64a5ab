// Package httpapi exposes the service over HTTP: the aggregated activity
// feed consumed by the chart renderer, a JWT-protected sync trigger, and the
// usual health and metrics endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/config"
	"github.com/dmitrijs2005/slackpulse/internal/logging"
	"github.com/dmitrijs2005/slackpulse/internal/models"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/counts"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SyncRunner triggers one sync pass. *syncer.Controller satisfies it; the
// app layer may wrap it with snapshot export.
type SyncRunner interface {
	RunPass(ctx context.Context, userIDs []string) (*models.SyncSummary, error)
}

// Server is the HTTP API server.
type Server struct {
	cfg        *config.Config
	logger     logging.Logger
	users      users.Repository
	counts     counts.Repository
	runner     SyncRunner
	httpServer *http.Server
}

// NewServer wires the router. registry may carry sync metrics; pass a fresh
// one when metrics are not wanted.
func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	usersRepo users.Repository,
	countsRepo counts.Repository,
	runner SyncRunner,
	registry *prometheus.Registry,
) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		users:  usersRepo,
		counts: countsRepo,
		runner: runner,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/activity", s.handleActivity)
		api.Post("/login", s.handleLogin)

		api.Group(func(protected chi.Router) {
			protected.Use(s.authMiddleware)
			protected.Post("/sync", s.handleSync)
		})
	})

	s.httpServer = &http.Server{
		Addr:              cfg.EndpointAddrHTTP,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s
}

// Handler returns the configured router. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddrHTTP)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
