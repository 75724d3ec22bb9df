package osmparser

import (
	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
)

// BuildGraph. build the csr road graph from the scanned edges. vertex coordinates come from the accepted osm nodes.
func (p *OsmParser) BuildGraph(scannedEdges []Edge, numV uint32) *datastructure.Graph {
	var (
		outEdges [][]*datastructure.OutEdge = make([][]*datastructure.OutEdge, numV)
		inEdges  [][]*datastructure.InEdge  = make([][]*datastructure.InEdge, numV)
		vertices []*datastructure.Vertex    = make([]*datastructure.Vertex, numV)
	)

	for v := datastructure.Index(0); v < datastructure.Index(numV); v++ {
		osmId := p.nodeToOsmId[v]
		coord := p.acceptedNodeMap[osmId]
		vertices[v] = datastructure.NewVertexWithOsmId(coord.lat, coord.lon, v, osmId)
	}

	edgeId := datastructure.Index(0)
	for _, e := range scannedEdges {
		u := datastructure.Index(e.from)
		v := datastructure.Index(e.to)

		outEdges[u] = append(outEdges[u], datastructure.NewOutEdge(edgeId, v, e.weight, e.distance))
		inEdges[v] = append(inEdges[v], datastructure.NewInEdge(edgeId, u, e.weight, e.distance))
		edgeId++
	}

	return datastructure.NewGraph(vertices, outEdges, inEdges)
}
