package routing

import (
	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
)

func (re *RoutingEngine) GetHaversineDistanceFromUtoV(u, v datastructure.Index) float64 {
	return re.graph.GetHaversineDistanceFromUtoV(u, v)
}

func (re *RoutingEngine) GetVertexCoordinates(u datastructure.Index) (float64, float64) {
	return re.graph.GetVertexCoordinates(u)
}

// RouteDistance. length in meters of a route given as consecutive vertices.
// consecutive vertices not joined by an edge (leg boundaries of an observed route) count as the straight line between them.
func (re *RoutingEngine) RouteDistance(route []datastructure.Index) float64 {
	dist := 0.0
	for i := 1; i < len(route); i++ {
		u, v := route[i-1], route[i]
		if u == v {
			continue
		}
		if e, ok := re.graph.FindOutEdge(u, v); ok {
			dist += e.GetLength()
		} else {
			dist += re.graph.GetHaversineDistanceFromUtoV(u, v) * 1000
		}
	}
	return dist
}
