package routing

import (
	"context"

	"github.com/lintang-b-s/pathcompare/pkg/costfunction"
	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
)

type CostFunction interface {
	GetWeight(e costfunction.EdgeAttributes) float64
	Name() string
}

// RoadGraph. read-only view of the road network used to snap coordinates and route between nodes.
// implementations must be safe for concurrent use.
type RoadGraph interface {
	NearestNode(lat, lon float64) (datastructure.Index, error)
	NearestNodes(lats, lons []float64) ([]datastructure.Index, error)
	ShortestPath(ctx context.Context, s, t datastructure.Index) ([]datastructure.Index, error)
	ShortestPathLength(ctx context.Context, s, t datastructure.Index) (int, error)
}
