package spatialindex

import (
	"errors"
	"math"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var ErrEmptyIndex = errors.New("spatial index is empty")

// candidates whose projected distance is within this relative slack of the closest one
// are re-ranked by great-circle distance.
const rerankSlack = 1e-3

type Rtree struct {
	tr *rtree.RTreeG[datastructure.Index]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. insert every graph vertex as a point leaf
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	n := graph.NumberOfVertices()
	step := max(n/10, 1)
	graph.ForVertices(func(v *datastructure.Vertex) {
		if int(v.GetID())%step == 0 {
			log.Info("Building R-tree spatial index...", zap.Float64("progress", 100*float64(v.GetID())/float64(n)))
		}
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(p, p, v.GetID())
	})

	log.Info("R-tree spatial index built.", zap.Int("items", rt.tr.Len()))
}

func (rt *Rtree) Insert(lat, lon float64, id datastructure.Index) {
	p := [2]float64{lon, lat}
	rt.tr.Insert(p, p, id)
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// projectedDist. squared equirectangular distance in degrees, longitude scaled at the query latitude.
// for a box it is the distance to the closest point of the box, a lower bound for every item inside.
func projectedDist(qLat, qLon, lonScale float64, min, max [2]float64) float64 {
	dLon := 0.0
	if qLon < min[0] {
		dLon = min[0] - qLon
	} else if qLon > max[0] {
		dLon = qLon - max[0]
	}
	dLat := 0.0
	if qLat < min[1] {
		dLat = min[1] - qLat
	} else if qLat > max[1] {
		dLat = qLat - max[1]
	}
	dLon *= lonScale
	return dLon*dLon + dLat*dLat
}

// NearestNode. vertex closest to (qLat, qLon) by great-circle distance, ties resolved to the lowest id.
func (rt *Rtree) NearestNode(qLat, qLon float64) (datastructure.Index, error) {
	if rt.tr.Len() == 0 {
		return datastructure.INVALID_VERTEX_ID, ErrEmptyIndex
	}
	lonScale := geo.LonScale(qLat)

	best := datastructure.INVALID_VERTEX_ID
	bestDist := math.Inf(1)
	firstProj := -1.0
	rt.tr.Nearby(
		func(min, max [2]float64, data datastructure.Index, item bool) float64 {
			return projectedDist(qLat, qLon, lonScale, min, max)
		},
		func(min, max [2]float64, data datastructure.Index, dist float64) bool {
			if firstProj < 0 {
				firstProj = dist
			} else if dist > firstProj*(1+rerankSlack)*(1+rerankSlack)+datastructure.EPS*datastructure.EPS {
				return false
			}
			d := geo.CalculateHaversineDistance(qLat, qLon, min[1], min[0])
			if d < bestDist || (d == bestDist && data < best) {
				best, bestDist = data, d
			}
			return true
		},
	)
	return best, nil
}

// NearestNodes. NearestNode for each query point, in order.
func (rt *Rtree) NearestNodes(lats, lons []float64) ([]datastructure.Index, error) {
	if len(lats) != len(lons) {
		return nil, errors.New("lats and lons must have the same length")
	}
	nodes := make([]datastructure.Index, len(lats))
	for i := range lats {
		id, err := rt.NearestNode(lats[i], lons[i])
		if err != nil {
			return nil, err
		}
		nodes[i] = id
	}
	return nodes, nil
}
