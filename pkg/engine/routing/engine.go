package routing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/spatialindex"
	"github.com/lintang-b-s/pathcompare/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type PathCacheKey struct {
	s, t da.Index
}

func NewPathCacheKey(s, t da.Index) PathCacheKey {
	return PathCacheKey{s: s, t: t}
}

type PathCacheValue struct {
	path []da.Index
	cost float64
}

func (v PathCacheValue) GetPath() []da.Index {
	return v.path
}

func (v PathCacheValue) GetCost() float64 {
	return v.cost
}

type RoutingEngine struct {
	graph        *da.Graph
	rtree        *spatialindex.Rtree
	logger       *zap.Logger
	pathCache    *lru.Cache[PathCacheKey, PathCacheValue]
	bufPool      sync.Pool
	inflight     singleflight.Group
	costFunction CostFunction
	routeTimeout time.Duration
}

var _ RoadGraph = (*RoutingEngine)(nil)

func NewRoutingEngine(graph *da.Graph, rtree *spatialindex.Rtree, logger *zap.Logger,
	pathCache *lru.Cache[PathCacheKey, PathCacheValue], costFunction CostFunction,
	routeTimeout time.Duration) *RoutingEngine {
	e := &RoutingEngine{
		graph:        graph,
		rtree:        rtree,
		logger:       logger,
		pathCache:    pathCache,
		costFunction: costFunction,
		routeTimeout: routeTimeout,
	}
	e.BuildBufferPool()
	return e
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

func (re *RoutingEngine) BuildBufferPool() {
	re.bufPool = sync.Pool{
		New: func() any {
			return NewSearchStorage[da.Index](STORAGE_INITIAL_SIZE)
		},
	}
}

func (re *RoutingEngine) NearestNode(lat, lon float64) (da.Index, error) {
	return re.rtree.NearestNode(lat, lon)
}

func (re *RoutingEngine) NearestNodes(lats, lons []float64) ([]da.Index, error) {
	return re.rtree.NearestNodes(lats, lons)
}

// ShortestPath. vertices of the minimum cost path from s to t, both included.
func (re *RoutingEngine) ShortestPath(ctx context.Context, s, t da.Index) ([]da.Index, error) {
	res, err := re.search(ctx, s, t)
	if err != nil {
		return nil, err
	}
	path := make([]da.Index, len(res.GetPath()))
	copy(path, res.GetPath())
	return path, nil
}

// ShortestPathLength. cost of the ShortestPath(s,t) path, rounded half to even.
func (re *RoutingEngine) ShortestPathLength(ctx context.Context, s, t da.Index) (int, error) {
	res, err := re.search(ctx, s, t)
	if err != nil {
		return 0, err
	}
	return util.RoundToInt(res.GetCost()), nil
}

// search. cached point-to-point query. concurrent callers asking for the same pair share one search.
func (re *RoutingEngine) search(ctx context.Context, s, t da.Index) (PathCacheValue, error) {
	n := da.Index(re.graph.NumberOfVertices())
	if s >= n || t >= n {
		return PathCacheValue{}, fmt.Errorf("%w: source %d, target %d, number of vertices %d", ErrVertexOutOfRange, s, t, n)
	}

	key := NewPathCacheKey(s, t)
	if val, ok := re.pathCache.Get(key); ok {
		return val, nil
	}

	flightKey := strconv.FormatUint(uint64(s), 10) + ":" + strconv.FormatUint(uint64(t), 10)
	v, err, _ := re.inflight.Do(flightKey, func() (interface{}, error) {
		return re.runQuery(ctx, s, t)
	})
	if err != nil {
		return PathCacheValue{}, err
	}
	return v.(PathCacheValue), nil
}

func (re *RoutingEngine) runQuery(ctx context.Context, s, t da.Index) (PathCacheValue, error) {
	if s == t {
		val := PathCacheValue{path: []da.Index{s}, cost: 0}
		re.pathCache.Add(NewPathCacheKey(s, t), val)
		return val, nil
	}

	queryCtx := ctx
	if re.routeTimeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, re.routeTimeout)
		defer cancel()
	}

	storage := re.bufPool.Get().(*SearchStorage[da.Index])
	defer re.bufPool.Put(storage)

	dijkstra := NewDijkstra(re.graph, re.costFunction, storage)
	cost, path, err := dijkstra.ShortestPath(queryCtx, s, t)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		re.logger.Warn("shortest path query timed out",
			zap.Uint32("source", uint32(s)), zap.Uint32("target", uint32(t)),
			zap.Int("settledNodes", dijkstra.GetNumSettledNodes()))
		return PathCacheValue{}, fmt.Errorf("%w: source %d, target %d after %v", ErrRouteTimeout, s, t, re.routeTimeout)
	case errors.Is(err, ErrNoPath):
		return PathCacheValue{}, fmt.Errorf("%w: source %d, target %d", ErrNoPath, s, t)
	case err != nil:
		return PathCacheValue{}, err
	}

	val := PathCacheValue{path: path, cost: cost}
	re.pathCache.Add(NewPathCacheKey(s, t), val)
	return val, nil
}
