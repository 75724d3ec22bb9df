package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunKosaraju(t *testing.T) {
	testCases := []struct {
		name            string
		n               int
		edges           []testEdge
		wantNumSCCs     int
		wantLargestSize int
		sameComponent   [][2]Index
	}{
		{
			name:            "single cycle",
			n:               3,
			edges:           []testEdge{{0, 1, 1}, {1, 2, 1}, {2, 0, 1}},
			wantNumSCCs:     1,
			wantLargestSize: 3,
			sameComponent:   [][2]Index{{0, 1}, {1, 2}},
		},
		{
			name:            "chain without back edges",
			n:               3,
			edges:           []testEdge{{0, 1, 1}, {1, 2, 1}},
			wantNumSCCs:     3,
			wantLargestSize: 1,
		},
		{
			name: "two cycles joined by a one way edge",
			n:    5,
			edges: []testEdge{
				{0, 1, 1}, {1, 0, 1},
				{1, 2, 1},
				{2, 3, 1}, {3, 4, 1}, {4, 2, 1},
			},
			wantNumSCCs:     2,
			wantLargestSize: 3,
			sameComponent:   [][2]Index{{0, 1}, {2, 4}},
		},
		{
			name:            "isolated vertex",
			n:               3,
			edges:           []testEdge{{0, 1, 1}, {1, 0, 1}},
			wantNumSCCs:     2,
			wantLargestSize: 2,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := buildTestGraph(tt.n, tt.edges)
			g.RunKosaraju()

			assert.Equal(t, tt.wantNumSCCs, g.NumberOfSCCs())
			_, size := g.LargestSCC()
			assert.Equal(t, tt.wantLargestSize, size)
			for _, pair := range tt.sameComponent {
				assert.Equal(t, g.GetSCCOfAVertex(pair[0]), g.GetSCCOfAVertex(pair[1]))
			}
		})
	}
}

func TestRunKosarajuLongPath(t *testing.T) {
	n := 200000
	edges := make([]testEdge, 0, 2*n)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, testEdge{Index(i), Index(i + 1), 1}, testEdge{Index(i + 1), Index(i), 1})
	}
	g := buildTestGraph(n, edges)
	g.RunKosaraju()
	assert.Equal(t, 1, g.NumberOfSCCs())
}

func TestKeepLargestSCC(t *testing.T) {
	g := buildTestGraph(5, []testEdge{
		{0, 1, 1}, {1, 0, 1},
		{1, 2, 1},
		{2, 3, 1}, {3, 4, 1}, {4, 2, 1},
	})

	sub, oldToNew := g.KeepLargestSCC()

	require.Equal(t, 3, sub.NumberOfVertices())
	assert.Equal(t, 3, sub.NumberOfEdges())
	assert.Equal(t, INVALID_VERTEX_ID, oldToNew[0])
	assert.Equal(t, INVALID_VERTEX_ID, oldToNew[1])
	assert.Equal(t, Index(0), oldToNew[2])
	assert.Equal(t, 1, sub.NumberOfSCCs())
}
