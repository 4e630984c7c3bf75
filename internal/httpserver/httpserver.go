package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ocai-community/eventfeed/internal/api"
	"github.com/ocai-community/eventfeed/internal/config"
	"github.com/ocai-community/eventfeed/internal/router"
	"github.com/ocai-community/eventfeed/internal/upstream"
)

type Server struct {
	http   *http.Server
	logger zerolog.Logger
}

func NewServer(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	client, err := upstream.New(cfg.Upstream, logger)
	if err != nil {
		if !errors.Is(err, upstream.ErrMissingConfig) {
			return nil, err
		}
		// Diagnostic endpoints still serve; event endpoints report the
		// missing configuration per request.
		logger.Warn().Msg("upstream not configured, event endpoints will return errors")
		client = nil
	}

	h := api.NewHandlers(cfg, client, logger)
	mux := router.New(h, logger)

	return &Server{
		http: &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
	}, nil
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
