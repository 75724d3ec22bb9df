package http

import (
	"context"

	http_router "github.com/lintang-b-s/pathcompare/pkg/http/router"
	"github.com/lintang-b-s/pathcompare/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/pathcompare/pkg/http/server"
	"github.com/lintang-b-s/pathcompare/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. serve the api until ctx is done. returns once the server shut down.
func (s *Server) Use(
	ctx context.Context,
	cfg util.Config,
	pathCompareService controllers.PathCompareService,
	reg *prometheus.Registry,
) error {
	config := http_server.Config{
		Port:    cfg.ApiPort,
		Timeout: cfg.ApiTimeout,
	}

	server := http_router.NewAPI(s.Log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx, config, pathCompareService, reg)
	})

	return g.Wait()
}
