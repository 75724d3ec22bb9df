package main

import (
	"context"
	"time"

	"github.com/lintang-b-s/pathcompare/pkg/batch"
	"github.com/lintang-b-s/pathcompare/pkg/pathcompare"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compare every user of a dataset and write the metrics table",
		Example: `  pathcompare run --graph_file ./data/milano.osm.pbf --graph_area Milano --dataset ./data/MilanoData.csv
  pathcompare run --dataset_format rome --dataset ./data/taxi_february.txt.bz2 --sample_fraction 0.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.load(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signalContext()
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			if cfg.MetricsAddr != "" {
				exporter := batch.NewMetricsExporter(cfg.MetricsAddr, reg, log)
				if _, err := exporter.Start(); err != nil {
					log.Error("starting the metrics exporter failed", zap.Error(err))
					return err
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					exporter.Shutdown(shutdownCtx)
				}()
			}

			eng, partition, err := batch.LoadInputs(ctx, cfg, log)
			if err != nil {
				log.Error("loading inputs failed", zap.Error(err))
				return err
			}

			routingEngine := eng.GetRoutingEngine()
			runner := batch.NewRunner(
				pathcompare.NewPipelineFromConfig(cfg, routingEngine, log),
				routingEngine,
				batch.Config{
					NumOfProcess: cfg.NumOfProcess,
					GraphArea:    cfg.GraphArea,
					OutputDir:    cfg.OutputDir,
					RoutesDir:    cfg.RoutesDir,
				},
				batch.NewMetrics(reg),
				log,
			)

			summary, err := runner.Run(ctx, partition)
			if err != nil {
				log.Error("batch failed", zap.Error(err))
				return err
			}
			if summary.Cancelled {
				log.Warn("batch interrupted, partial results written", zap.String("metricsFile", summary.MetricsFile))
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.AddFlagSet(graphFlags())
	fs.String("dataset", "", "dataset file, or the directory of cab traces for the sanfrancisco format")
	fs.String("dataset_format", "generic", "generic, rome or sanfrancisco")
	fs.String("separator", ",", "field separator of the generic format")
	fs.Bool("strict", false, "fail on the first malformed row instead of dropping it")
	fs.Float64("sample_fraction", 1, "fraction of the dataset rows to keep")
	fs.Uint64("sample_seed", 1, "seed of the row sampling")
	fs.IntP("num_of_process", "j", 4, "users processed concurrently")
	fs.Int("path_cache_size", 1<<16, "shortest paths kept in the cache")
	fs.String("output_dir", ".", "directory of the metrics and failures files")
	fs.String("routes_dir", "", "write one GeoJSON file of routes per user here")
	fs.String("metrics_addr", "", "serve prometheus metrics on this host:port while the batch runs")
	return cmd
}
