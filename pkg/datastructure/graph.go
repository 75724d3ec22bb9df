package datastructure

import (
	"math"

	"github.com/lintang-b-s/pathcompare/pkg/geo"
)

type Index uint32

type Vertex struct {
	lat      float64
	lon      float64
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	firstIn  Index // index of the first inEdge of this vertex in the flattened graph.inEdges array
	id       Index
	osmId    int64
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

func NewVertexWithOsmId(lat, lon float64, id Index, osmId int64) *Vertex {
	return &Vertex{
		lat:   lat,
		lon:   lon,
		id:    id,
		osmId: osmId,
	}
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetOsmID() int64 {
	return v.osmId
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetFirstOut() Index {
	return v.firstOut
}

func (v *Vertex) GetFirstIn() Index {
	return v.firstIn
}

// outedge (u,head)
type OutEdge struct {
	weight float64 // second
	dist   float64 // meter
	edgeId Index
	head   Index
}

// inedge (tail,v)
type InEdge struct {
	weight float64 // second
	dist   float64 // meter
	edgeId Index
	tail   Index
}

func NewOutEdge(edgeId, head Index, weight, dist float64) *OutEdge {
	return &OutEdge{
		edgeId: edgeId,
		head:   head,
		weight: weight,
		dist:   dist,
	}
}

func NewInEdge(edgeId, tail Index, weight, dist float64) *InEdge {
	return &InEdge{
		edgeId: edgeId,
		tail:   tail,
		weight: weight,
		dist:   dist,
	}
}

func (e *OutEdge) GetWeight() float64 {
	return e.weight
}

func (e *OutEdge) GetLength() float64 {
	return e.dist
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *OutEdge) GetEdgeId() Index {
	return e.edgeId
}

func (e *InEdge) GetWeight() float64 {
	return e.weight
}

func (e *InEdge) GetLength() float64 {
	return e.dist
}

func (e *InEdge) GetTail() Index {
	return e.tail
}

func (e *InEdge) GetEdgeId() Index {
	return e.edgeId
}

// Graph. static road network graph in compressed sparse row layout (can't add new edges).
// vertices has one extra sentinel vertex so that the out/in edges of u are [first(u), first(u+1)).
// safe for concurrent reads.
type Graph struct {
	vertices []*Vertex
	outEdges []*OutEdge
	inEdges  []*InEdge

	// strongly connected components
	sccs    []Index // verticeId -> sccId
	numSCCs int

	boundingBox *BoundingBox
}

// NewGraph. flatten per-vertex adjacency lists into the csr arrays.
// len(outEdges) == len(inEdges) == len(vertices).
func NewGraph(vertices []*Vertex, outEdges [][]*OutEdge, inEdges [][]*InEdge) *Graph {
	n := len(vertices)
	g := &Graph{
		vertices: make([]*Vertex, n+1),
		outEdges: make([]*OutEdge, 0),
		inEdges:  make([]*InEdge, 0),
	}

	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for v := 0; v < n; v++ {
		vertex := vertices[v]
		vertex.id = Index(v)
		vertex.firstOut = Index(len(g.outEdges))
		vertex.firstIn = Index(len(g.inEdges))
		g.outEdges = append(g.outEdges, outEdges[v]...)
		g.inEdges = append(g.inEdges, inEdges[v]...)
		g.vertices[v] = vertex

		minLat = math.Min(minLat, vertex.lat)
		minLon = math.Min(minLon, vertex.lon)
		maxLat = math.Max(maxLat, vertex.lat)
		maxLon = math.Max(maxLon, vertex.lon)
	}

	// sentinel
	g.vertices[n] = &Vertex{
		id:       Index(n),
		firstOut: Index(len(g.outEdges)),
		firstIn:  Index(len(g.inEdges)),
	}

	if n > 0 {
		g.boundingBox = NewBoundingBox(minLat, minLon, maxLat, maxLon)
	} else {
		g.boundingBox = NewBoundingBox(0, 0, 0, 0)
	}
	return g
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	return g.vertices[u].lat, g.vertices[u].lon
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.vertices[u+1].firstOut - g.vertices[u].firstOut
}

func (g *Graph) GetInDegree(u Index) Index {
	return g.vertices[u+1].firstIn - g.vertices[u].firstIn
}

func (g *Graph) GetOutEdge(e Index) *OutEdge {
	return g.outEdges[e]
}

func (g *Graph) GetInEdge(e Index) *InEdge {
	return g.inEdges[e]
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *OutEdge)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(g.outEdges[e])
	}
}

func (g *Graph) ForInEdgesOf(v Index, handle func(e *InEdge)) {
	for e := g.vertices[v].firstIn; e < g.vertices[v+1].firstIn; e++ {
		handle(g.inEdges[e])
	}
}

// ForVertices. iterate all vertices except the sentinel
func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for v := 0; v < g.NumberOfVertices(); v++ {
		handle(g.vertices[v])
	}
}

// FindOutEdge. return the shortest (by dist) outEdge u->v.
func (g *Graph) FindOutEdge(u, v Index) (*OutEdge, bool) {
	var best *OutEdge
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		if g.outEdges[e].head == v && (best == nil || g.outEdges[e].dist < best.dist) {
			best = g.outEdges[e]
		}
	}
	return best, best != nil
}

func (g *Graph) GetHaversineDistanceFromUtoV(u, v Index) float64 {
	return geo.CalculateHaversineDistance(g.vertices[u].lat, g.vertices[u].lon, g.vertices[v].lat, g.vertices[v].lon)
}

func (g *Graph) GetSCCOfAVertex(u Index) Index {
	return g.sccs[u]
}

func (g *Graph) NumberOfSCCs() int {
	return g.numSCCs
}

func (g *Graph) setSCCs(sccs []Index, numSCCs int) {
	g.sccs = sccs
	g.numSCCs = numSCCs
}

// InducedSubgraph. return the subgraph induced by vertices with keep[v] == true, re-indexed from 0 in the
// original order, and the old->new vertex id mapping (INVALID_VERTEX_ID for dropped vertices).
func (g *Graph) InducedSubgraph(keep []bool) (*Graph, []Index) {
	n := g.NumberOfVertices()
	oldToNew := make([]Index, n)
	newN := 0
	for v := 0; v < n; v++ {
		if keep[v] {
			oldToNew[v] = Index(newN)
			newN++
		} else {
			oldToNew[v] = INVALID_VERTEX_ID
		}
	}

	vertices := make([]*Vertex, 0, newN)
	outEdges := make([][]*OutEdge, newN)
	inEdges := make([][]*InEdge, newN)

	edgeId := Index(0)
	for u := 0; u < n; u++ {
		if !keep[u] {
			continue
		}
		old := g.vertices[u]
		nu := oldToNew[u]
		vertices = append(vertices, NewVertexWithOsmId(old.lat, old.lon, nu, old.osmId))

		g.ForOutEdgesOf(Index(u), func(e *OutEdge) {
			nv := oldToNew[e.head]
			if nv == INVALID_VERTEX_ID {
				return
			}
			outEdges[nu] = append(outEdges[nu], NewOutEdge(edgeId, nv, e.weight, e.dist))
			inEdges[nv] = append(inEdges[nv], NewInEdge(edgeId, nu, e.weight, e.dist))
			edgeId++
		})
	}

	return NewGraph(vertices, outEdges, inEdges), oldToNew
}
