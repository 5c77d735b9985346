// Package api serves the optional HTTP endpoint that runs beside the poller:
// Prometheus metrics, health probes and a small read-only JSON API.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/awb-tracker/internal/api/handlers"
	"github.com/donaldgifford/awb-tracker/internal/api/middleware"
	"github.com/donaldgifford/awb-tracker/internal/dhl"
)

const shutdownTimeout = 10 * time.Second

// Tracker is what the API reads from the running poller.
type Tracker interface {
	handlers.ReadinessChecker
	handlers.StatusProvider
}

// Server wraps the Echo instance serving metrics and the status API.
type Server struct {
	echo *echo.Echo
	log  *slog.Logger
}

// NewServer builds the router. rl may be nil when no rate limiter is in use.
func NewServer(version string, tracker Tracker, rl *dhl.RateLimiter, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Recovery(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(tracker)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaAPI := humaecho.New(e, huma.DefaultConfig("AWB Tracker", version))
	handlers.RegisterStatusRoutes(humaAPI, handlers.NewStatusHandler(tracker))
	handlers.RegisterQuotaRoutes(humaAPI, handlers.NewQuotaHandler(rl))

	return &Server{echo: e, log: log}
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.echo.Listener = ln

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start("")
	}()
	s.log.Info("metrics server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving metrics: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down metrics server: %w", err)
	}
	s.log.Info("metrics server stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}
