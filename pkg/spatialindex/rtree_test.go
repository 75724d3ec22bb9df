package spatialindex

import (
	"testing"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildGridGraph(rows, cols int, spacing float64) *datastructure.Graph {
	n := rows * cols
	vertices := make([]*datastructure.Vertex, 0, n)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			vertices = append(vertices, datastructure.NewVertex(45+float64(r)*spacing, 9+float64(c)*spacing,
				datastructure.Index(len(vertices))))
		}
	}
	return datastructure.NewGraph(vertices, make([][]*datastructure.OutEdge, n), make([][]*datastructure.InEdge, n))
}

func TestNearestNode(t *testing.T) {
	g := buildGridGraph(10, 10, 0.001)
	rt := NewRtree()
	rt.Build(g, zap.NewNop())
	require.Equal(t, 100, rt.Len())

	testCases := []struct {
		name string
		lat  float64
		lon  float64
		want datastructure.Index
	}{
		{
			name: "exact vertex",
			lat:  45.003,
			lon:  9.004,
			want: 34,
		},
		{
			name: "slightly off a vertex",
			lat:  45.00502,
			lon:  9.00698,
			want: 57,
		},
		{
			name: "outside the grid",
			lat:  44.9,
			lon:  8.9,
			want: 0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rt.NearestNode(tt.lat, tt.lon)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNearestNodeScalesLongitude(t *testing.T) {
	rt := NewRtree()
	// 0.0008 degree east is shorter on the ground than 0.0007 degree north at latitude 45
	rt.Insert(45.0, 9.0008, 1)
	rt.Insert(45.0007, 9.0, 2)

	got, err := rt.NearestNode(45.0, 9.0)
	require.NoError(t, err)
	assert.Equal(t, datastructure.Index(1), got)
}

func TestNearestNodeTie(t *testing.T) {
	rt := NewRtree()
	rt.Insert(45.0, 9.0, 7)
	rt.Insert(45.0, 9.0, 3)
	rt.Insert(45.0, 9.0, 5)

	got, err := rt.NearestNode(45.0001, 9.0)
	require.NoError(t, err)
	assert.Equal(t, datastructure.Index(3), got)
}

func TestNearestNodes(t *testing.T) {
	g := buildGridGraph(3, 3, 0.01)
	rt := NewRtree()
	rt.Build(g, zap.NewNop())

	got, err := rt.NearestNodes([]float64{45.0, 45.02, 45.011}, []float64{9.0, 9.02, 9.009})
	require.NoError(t, err)
	assert.Equal(t, []datastructure.Index{0, 8, 4}, got)

	_, err = rt.NearestNodes([]float64{45.0}, []float64{})
	assert.Error(t, err)
}

func TestNearestNodeEmpty(t *testing.T) {
	rt := NewRtree()
	_, err := rt.NearestNode(45, 9)
	assert.ErrorIs(t, err, ErrEmptyIndex)
}
