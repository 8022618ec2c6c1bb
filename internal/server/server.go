package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-feedback/internal/config"
	"github.com/MKhiriev/go-feedback/internal/handler"
	"github.com/MKhiriev/go-feedback/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoHTTPServer
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Str("func", "*server.RunServer").Msg("error running server")
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

// run serves until ctx is done or the listener fails, then shuts the server
// down.
func (s *server) run(ctx context.Context) error {
	addr, errCh, err := s.httpServer.start()
	if err != nil {
		return err
	}
	s.logger.Info().Str("address", addr.String()).Msg("Launching HTTP server")

	select {
	case <-ctx.Done():
		s.Shutdown()
		s.logger.Info().Msg("server Shutdown gracefully")
		return nil
	case err = <-errCh:
		return err
	}
}
