package main

import (
	"time"

	"github.com/lintang-b-s/pathcompare/pkg/engine"
	"github.com/lintang-b-s/pathcompare/pkg/http"
	"github.com/lintang-b-s/pathcompare/pkg/http/usecases"
	"github.com/lintang-b-s/pathcompare/pkg/pathcompare"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the path comparison of single users over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.load(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signalContext()
			defer stop()

			eng, err := engine.NewEngine(ctx, cfg, log)
			if err != nil {
				log.Error("building the routing engine failed", zap.Error(err))
				return err
			}
			routingEngine := eng.GetRoutingEngine()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			pathCompareService := usecases.NewPathCompareService(log,
				pathcompare.NewPipelineFromConfig(cfg, routingEngine, log), routingEngine)

			api := http.NewServer(log)
			if err := api.Use(ctx, cfg, pathCompareService, reg); err != nil {
				log.Error("api server stopped", zap.Error(err))
				return err
			}
			log.Info("pathcompare server stopped")
			return nil
		},
	}

	fs := cmd.Flags()
	fs.AddFlagSet(graphFlags())
	fs.Int("api_port", 6060, "port of the HTTP API")
	fs.Duration("api_timeout", 60*time.Second, "upper bound on handling one request")
	fs.Int("path_cache_size", 1<<16, "shortest paths kept in the cache")
	return cmd
}
