package api

import (
	"context"
	"net/http"
	"time"

	"cashflow-mcp/internal/config"
	"cashflow-mcp/internal/dataset"

	jsoniter "github.com/json-iterator/go"
	"github.com/justinas/alice"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const shutdownTimeout = 15 * time.Second

// Server serves the dataset service over HTTP.
type Server struct {
	httpServer *http.Server
}

// New wires routes and middlewares. Middlewares run in the listed order, outermost first.
func New(cfg config.HTTP, svc *dataset.Service) *Server {
	rt := NewRouter(WithRoutes(Routes(svc)...))

	middlewares := []alice.Constructor{
		RequestLogger(),
		Recover(),
		Cors(cfg.AllowedOrigins),
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address(),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", s.httpServer.Addr).Msg("HTTP server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, "http server")
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("Shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http shutdown")
	}
	log.Info().Msg("HTTP server stopped")
	return nil
}
