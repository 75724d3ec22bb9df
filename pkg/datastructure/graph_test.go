package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEdge struct {
	from, to Index
	dist     float64
}

func buildTestGraph(n int, edges []testEdge) *Graph {
	vertices := make([]*Vertex, n)
	for i := 0; i < n; i++ {
		vertices[i] = NewVertexWithOsmId(float64(i)*0.001, float64(i)*0.001, Index(i), int64(100+i))
	}
	outEdges := make([][]*OutEdge, n)
	inEdges := make([][]*InEdge, n)
	for id, e := range edges {
		outEdges[e.from] = append(outEdges[e.from], NewOutEdge(Index(id), e.to, e.dist/10, e.dist))
		inEdges[e.to] = append(inEdges[e.to], NewInEdge(Index(id), e.from, e.dist/10, e.dist))
	}
	return NewGraph(vertices, outEdges, inEdges)
}

func TestNewGraph(t *testing.T) {
	g := buildTestGraph(4, []testEdge{
		{0, 1, 10}, {0, 2, 20}, {1, 2, 5}, {2, 3, 7}, {3, 0, 1},
	})

	assert.Equal(t, 4, g.NumberOfVertices())
	assert.Equal(t, 5, g.NumberOfEdges())

	testCases := []struct {
		name      string
		u         Index
		wantHeads []Index
		wantTails []Index
	}{
		{
			name:      "vertex with two outgoing edges",
			u:         0,
			wantHeads: []Index{1, 2},
			wantTails: []Index{3},
		},
		{
			name:      "vertex with two incoming edges",
			u:         2,
			wantHeads: []Index{3},
			wantTails: []Index{0, 1},
		},
		{
			name:      "last vertex bounded by the sentinel",
			u:         3,
			wantHeads: []Index{0},
			wantTails: []Index{2},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			heads := make([]Index, 0)
			g.ForOutEdgesOf(tt.u, func(e *OutEdge) {
				heads = append(heads, e.GetHead())
			})
			tails := make([]Index, 0)
			g.ForInEdgesOf(tt.u, func(e *InEdge) {
				tails = append(tails, e.GetTail())
			})
			assert.ElementsMatch(t, tt.wantHeads, heads)
			assert.ElementsMatch(t, tt.wantTails, tails)
			assert.Equal(t, Index(len(tt.wantHeads)), g.GetOutDegree(tt.u))
			assert.Equal(t, Index(len(tt.wantTails)), g.GetInDegree(tt.u))
		})
	}
}

func TestFindOutEdge(t *testing.T) {
	g := buildTestGraph(2, []testEdge{{0, 1, 30}, {0, 1, 12}})

	e, ok := g.FindOutEdge(0, 1)
	require.True(t, ok)
	assert.Equal(t, 12.0, e.GetLength())

	_, ok = g.FindOutEdge(1, 0)
	assert.False(t, ok)
}

func TestInducedSubgraph(t *testing.T) {
	g := buildTestGraph(4, []testEdge{
		{0, 1, 10}, {1, 2, 10}, {2, 3, 10}, {3, 1, 10},
	})

	sub, oldToNew := g.InducedSubgraph([]bool{false, true, true, true})

	require.Equal(t, 3, sub.NumberOfVertices())
	assert.Equal(t, 3, sub.NumberOfEdges())
	assert.Equal(t, []Index{INVALID_VERTEX_ID, 0, 1, 2}, oldToNew)
	assert.Equal(t, int64(101), sub.GetVertex(0).GetOsmID())

	lat, lon := sub.GetVertexCoordinates(2)
	assert.InDelta(t, 0.003, lat, 1e-12)
	assert.InDelta(t, 0.003, lon, 1e-12)
}

func TestBoundingBox(t *testing.T) {
	g := buildTestGraph(3, []testEdge{{0, 1, 1}})
	minLat, minLon := g.GetBoundingBox().GetMinCoord()
	maxLat, maxLon := g.GetBoundingBox().GetMaxCoord()
	assert.Equal(t, 0.0, minLat)
	assert.Equal(t, 0.0, minLon)
	assert.InDelta(t, 0.002, maxLat, 1e-12)
	assert.InDelta(t, 0.002, maxLon, 1e-12)
}
