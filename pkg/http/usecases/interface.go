package usecases

import (
	"context"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/pathcompare"
)

type Pipeline interface {
	Compare(ctx context.Context, user string, raw []*datastructure.GPSPoint) (pathcompare.Result, error)
}

type RoutingEngine interface {
	GetVertexCoordinates(u datastructure.Index) (float64, float64)
	RouteDistance(route []datastructure.Index) float64
}
