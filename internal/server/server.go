package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schoolhub/schoolhub/internal/bootstrap"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
)

// Server wraps the HTTP server and the wired application
type Server struct {
	app  *bootstrap.App
	http *http.Server
}

// New creates a server around an initialized application
func New(app *bootstrap.App) *Server {
	return &Server{
		app: app,
		http: &http.Server{
			Addr:         ":" + app.Config.Server.Port,
			Handler:      app.Router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Run starts the server and blocks until shutdown completes
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.app.Shutdown()
	logger.Info().Msg("Server stopped")
	return nil
}
