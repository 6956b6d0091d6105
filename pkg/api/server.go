// Package api serves the stash operations over HTTP.
//
// All routes under /api/v1 require the X-API-Key header. PNG files travel as raw
// request and response bodies; passphrases travel in the X-Passphrase header.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssargent/pngstash/pkg/logging"
)

const defaultShutdownTimeout = 10 * time.Second

// NewRouter builds the routing tree. Metrics are registered with reg and
// exposed unauthenticated at /metrics.
func NewRouter(svc IStash, config ServerConfig, logger logging.Logger, reg *prometheus.Registry) http.Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	metrics := NewMetrics(reg)
	server := NewServer(svc, config, metrics, logger)

	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{headerRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Post("/encode", metrics.InstrumentHandler("POST", "/api/v1/encode", server.handleEncode))
		r.Post("/decode", metrics.InstrumentHandler("POST", "/api/v1/decode", server.handleDecode))
		r.Post("/remove", metrics.InstrumentHandler("POST", "/api/v1/remove", server.handleRemove))
		r.Post("/chunks", metrics.InstrumentHandler("POST", "/api/v1/chunks", server.handleChunks))
	})

	return r
}

// StartServer listens on config.Bind:config.Port and serves until ctx is cancelled
func StartServer(ctx context.Context, svc IStash, config ServerConfig, logger logging.Logger) error {
	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, svc, config, logger)
}

// Serve runs the API on ln. When ctx is cancelled the server stops accepting
// connections and waits up to ShutdownTimeout for in-flight requests.
func Serve(ctx context.Context, ln net.Listener, svc IStash, config ServerConfig, logger logging.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &http.Server{
		Handler:           NewRouter(svc, config, logger, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting pngstash REST API server on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Shutting down API server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
