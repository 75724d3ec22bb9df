package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lintang-b-s/pathcompare/pkg/logger"
	"github.com/lintang-b-s/pathcompare/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	v          *viper.Viper
	configFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "pathcompare",
		Short: "Compare GPS trajectories with road network shortest paths",
		Long: `pathcompare cleans the GPS trajectory of every user, detects the stay points, routes each leg between
consecutive stays over an OpenStreetMap road network and scores how much of the observed route the shortest path
reproduces (Jaccard index of the route nodes and length difference).`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./data/config.yaml or ./config.yaml)")

	rootCmd.AddCommand(a.newRunCmd(), a.newServeCmd())
	return rootCmd
}

// graphFlags. options shared by run and serve.
func graphFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("graph", pflag.ContinueOnError)
	fs.String("graph_file", "", "OpenStreetMap extract (.osm.pbf, .osm or .xml) of the area")
	fs.String("graph_area", "", "name of the area, used in output file names")
	fs.String("mode", "drive", "travel mode: drive, walk, bike or all")
	fs.String("weight", "length", "shortest path weight: length or travel_time")
	fs.Float64("max_speed_kmh", 500, "fixes implying a faster speed are dropped")
	fs.Float64("compression_radius_km", 0.1, "consecutive fixes within this radius are merged")
	fs.Float64("stop_radius_factor", 0.3, "stop radius as a fraction of spatial_radius_km")
	fs.Float64("min_stop_minutes", 10, "minimum dwell time of a stay point")
	fs.Float64("spatial_radius_km", 0.2, "stay point radius")
	fs.Float64("no_data_for_minutes", 0, "a gap between fixes longer than this ends a stay, 0 disables it")
	fs.Duration("route_timeout", 30*time.Second, "timeout of one shortest path query")
	fs.String("log_level", "info", "debug, info, warn or error")
	return fs
}

// load. config file, then env vars, then flags that were set explicitly.
func (a *app) load(cmd *cobra.Command) (util.Config, *zap.Logger, error) {
	if err := util.ReadConfig(a.v, a.configFile); err != nil {
		return util.Config{}, nil, err
	}
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return util.Config{}, nil, err
	}
	cfg, err := util.LoadConfig(a.v)
	if err != nil {
		return util.Config{}, nil, err
	}

	log, err := logger.NewWithLevel(cfg.LogLevel)
	if err != nil {
		return util.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		log.Info("config file loaded", zap.String("path", used))
	}
	return cfg, log, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
