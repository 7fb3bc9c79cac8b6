// Package ui provides the sqlmark annotation HTTP service: a thin JSON
// adapter over the pure annotation core.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leapstack-labs/sqlmark/pkg/annotate"
	"golang.org/x/sync/errgroup"
)

// Server is the annotation HTTP server.
type Server struct {
	host        string
	port        int
	icons       annotate.IconSet
	diagnostics bool
	logger      *slog.Logger
}

// Config holds configuration for the annotation server.
type Config struct {
	Host        string
	Port        int
	Icons       annotate.IconSet
	Diagnostics bool
	Logger      *slog.Logger
}

// NewServer creates a new annotation server instance.
func NewServer(cfg Config) *Server {
	icons := cfg.Icons
	if icons == nil {
		icons = annotate.DefaultIcons()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		host:        cfg.Host,
		port:        cfg.Port,
		icons:       icons,
		diagnostics: cfg.Diagnostics,
		logger:      logger,
	}
}

// Routes returns the HTTP handler for the service.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/api/health", s.Health)
	r.Post("/api/annotate", s.Annotate)

	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	s.logger.Info("starting annotation server", "addr", fmt.Sprintf("http://%s", addr))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down annotation server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
