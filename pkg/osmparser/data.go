package osmparser

import "github.com/lintang-b-s/pathcompare/pkg/datastructure"

type Edge struct {
	from     uint32
	to       uint32
	weight   float64 // second
	distance float64 // meter
	edgeID   uint32
}

func (e *Edge) GetFrom() datastructure.Index {
	return datastructure.Index(e.from)
}

func (e *Edge) GetTo() datastructure.Index {
	return datastructure.Index(e.to)
}

func (e *Edge) GetWeight() float64 {
	return e.weight
}

func (e *Edge) GetDistance() float64 {
	return e.distance
}

func NewEdge(from, to uint32, weight, distance float64, edgeID uint32) Edge {
	return Edge{
		from:     from,
		to:       to,
		weight:   weight,
		distance: distance,
		edgeID:   edgeID,
	}
}

type NodeType int

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

type node struct {
	id    int64
	coord NodeCoord
}

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

func (n NodeCoord) GetLat() float64 {
	return n.lat
}

func (n NodeCoord) GetLon() float64 {
	return n.lon
}
