package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"groupme/internal/config"
	"groupme/internal/core"
)

const defaultAddr = ":8080"

// HTTPServer exposes /metrics and /health on a separate listener.
type HTTPServer struct {
	Logger *slog.Logger
	Config *config.Config
	DB     core.DB
	Events core.EventPublisher

	server *http.Server
}

func (s *HTTPServer) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "metrics.HTTPServer")

	addr := s.Config.MetricsAddr
	if addr == "" {
		addr = defaultAddr
	}

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: time.Second,
	}
	return nil
}

func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewMux()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.Check(r.Context()); err != nil {
			s.Logger.Error("Health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return r
}

// Check reports the database and, when it supports it, the event publisher.
func (s *HTTPServer) Check(ctx context.Context) error {
	checks := []core.HealthChecker{s.DB}
	if checker, ok := s.Events.(core.HealthChecker); ok {
		checks = append(checks, checker)
	}

	var errs []error
	for _, check := range checks {
		errs = append(errs, check.HealthCheck(ctx))
	}
	return errors.Join(errs...)
}

func (s *HTTPServer) Run(ctx context.Context) error {
	s.Logger.Info("Starting metrics server", "addr", s.server.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
