package batch

import (
	"context"

	"github.com/lintang-b-s/pathcompare/pkg/dataset"
	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/engine"
	"github.com/lintang-b-s/pathcompare/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DatasetOptions. dataset loader options taken from cfg.
func DatasetOptions(cfg util.Config) dataset.Options {
	opts := dataset.DefaultOptions()
	opts.Format = cfg.DatasetFormat
	if cfg.Separator != "" {
		opts.Separator = []rune(cfg.Separator)[0]
	}
	opts.Strict = cfg.Strict
	opts.SampleFraction = cfg.SampleFraction
	opts.SampleSeed = cfg.SampleSeed
	return opts
}

// LoadInputs. build the road network and read the dataset concurrently, then partition the dataset by user.
func LoadInputs(ctx context.Context, cfg util.Config, logger *zap.Logger) (*engine.Engine,
	map[string][]*da.GPSPoint, error) {
	var (
		eng *engine.Engine
		ds  *dataset.Dataset
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		eng, err = engine.NewEngine(gctx, cfg, logger)
		return err
	})
	g.Go(func() error {
		var err error
		ds, err = dataset.Load(gctx, cfg.Dataset, DatasetOptions(cfg), logger)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return eng, dataset.Partition(ds.Points), nil
}
