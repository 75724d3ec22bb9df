package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/pathcompare/pkg/costfunction"
	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/engine/routing"
	"github.com/lintang-b-s/pathcompare/pkg/osmparser"
	"github.com/lintang-b-s/pathcompare/pkg/spatialindex"
	"github.com/lintang-b-s/pathcompare/pkg/util"
	"go.uber.org/zap"
)

type Engine struct {
	routingEngine *routing.RoutingEngine
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

// NewEngine. parse the road network of cfg.GraphFile and build the read-only routing engine shared by every worker.
func NewEngine(ctx context.Context, cfg util.Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting shortest path engine...")

	mode, err := osmparser.ParseTravelMode(cfg.Mode)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid travel mode")
	}

	logger.Info("Reading openstreetmap road network from ", zap.String("graphFilePath", cfg.GraphFile),
		zap.String("area", cfg.GraphArea), zap.String("mode", cfg.Mode))
	start := time.Now()
	graph, err := osmparser.NewOSMParser(mode).Parse(ctx, cfg.GraphFile, logger)
	if err != nil {
		return nil, fmt.Errorf("parse road network: %w", err)
	}
	logger.Info("road network parsed", zap.Duration("took", time.Since(start)))

	return NewEngineDirect(graph, cfg.Weight, cfg.PathCacheSize, cfg.RouteTimeout, logger)
}

// NewEngineDirect. build the engine over an already constructed graph.
// only the largest strongly connected component is kept so every pair of vertices is mutually reachable.
func NewEngineDirect(graph *datastructure.Graph, weight string, pathCacheSize int, routeTimeout time.Duration,
	logger *zap.Logger) (*Engine, error) {
	costFunction, err := costfunction.NewCostFunction(weight)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid weight")
	}
	if graph.NumberOfVertices() == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "road network has no vertices")
	}

	numVertices := graph.NumberOfVertices()
	graph, _ = graph.KeepLargestSCC()
	logger.Info("kept the largest strongly connected component",
		zap.String("vertices", humanize.Comma(int64(graph.NumberOfVertices()))),
		zap.String("edges", humanize.Comma(int64(graph.NumberOfEdges()))),
		zap.String("droppedVertices", humanize.Comma(int64(numVertices-graph.NumberOfVertices()))))

	bb := graph.GetBoundingBox()
	logger.Info("road network bounding box",
		zap.Float64("minLat", bb.GetMinLat()), zap.Float64("minLon", bb.GetMinLon()),
		zap.Float64("maxLat", bb.GetMaxLat()), zap.Float64("maxLon", bb.GetMaxLon()))

	rtree := spatialindex.NewRtree()
	rtree.Build(graph, logger)

	pathCache, err := lru.New[routing.PathCacheKey, routing.PathCacheValue](pathCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create path cache: %w", err)
	}

	return &Engine{
		routingEngine: routing.NewRoutingEngine(graph, rtree, logger, pathCache, costFunction, routeTimeout),
	}, nil
}
