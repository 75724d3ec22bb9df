package routing

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/lintang-b-s/pathcompare/pkg/costfunction"
	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDijkstraRetrievePath(t *testing.T) {
	// 0 -> 1 -> 2 -> 3 -> 4 -> 5, plus a long 0 -> 5 edge
	coords := [][2]float64{{45.0, 9.0}, {45.001, 9.0}, {45.002, 9.0}, {45.003, 9.0}, {45.004, 9.0}, {45.005, 9.0}}
	adjList := [][]pairEdge{
		{newPairEdge(1, 10, 1), newPairEdge(5, 100, 1)},
		{newPairEdge(2, 10, 1)},
		{newPairEdge(3, 10, 1)},
		{newPairEdge(4, 10, 1)},
		{newPairEdge(5, 10, 1)},
		{},
	}
	g := buildGraph(coords, adjList)

	dijkstra := NewDijkstra(g, costfunction.NewLengthCostFunction(), NewSearchStorage[da.Index](16))
	cost, path, err := dijkstra.ShortestPath(context.Background(), 0, 5)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, cost, 1e-9)
	assert.Equal(t, []da.Index{0, 1, 2, 3, 4, 5}, path)
}

func TestDijkstraMatchesFloydWarshall(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		n := 2 + rng.Intn(7)
		coords := make([][2]float64, n)
		for i := range coords {
			coords[i] = [2]float64{45.0 + float64(i)*0.001, 9.0}
		}

		dist := make([][]float64, n)
		for i := range dist {
			dist[i] = make([]float64, n)
			for j := range dist[i] {
				if i != j {
					dist[i][j] = math.Inf(1)
				}
			}
		}
		adjList := make([][]pairEdge, n)
		for u := 0; u < n; u++ {
			for v := 0; v < n; v++ {
				if u == v || rng.Float64() > 0.35 {
					continue
				}
				w := float64(1 + rng.Intn(500))
				adjList[u] = append(adjList[u], newPairEdge(v, w, w))
				dist[u][v] = w
			}
		}
		edgeWeight := make([][]float64, n)
		for i := range dist {
			edgeWeight[i] = append([]float64(nil), dist[i]...)
		}

		for k := 0; k < n; k++ {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if dist[i][k]+dist[k][j] < dist[i][j] {
						dist[i][j] = dist[i][k] + dist[k][j]
					}
				}
			}
		}

		re := newTestEngine(t, buildGraph(coords, adjList), costfunction.NewLengthCostFunction(), time.Second)
		for s := 0; s < n; s++ {
			for tt := 0; tt < n; tt++ {
				path, err := re.ShortestPath(context.Background(), da.Index(s), da.Index(tt))
				if math.IsInf(dist[s][tt], 1) {
					assert.ErrorIs(t, err, ErrNoPath)
					continue
				}
				require.NoError(t, err)
				require.NotEmpty(t, path)
				assert.Equal(t, da.Index(s), path[0])
				assert.Equal(t, da.Index(tt), path[len(path)-1])

				sum := 0.0
				for i := 0; i+1 < len(path); i++ {
					sum += edgeWeight[path[i]][path[i+1]]
				}
				assert.InDelta(t, dist[s][tt], sum, 1e-9)

				length, err := re.ShortestPathLength(context.Background(), da.Index(s), da.Index(tt))
				require.NoError(t, err)
				assert.Equal(t, int(dist[s][tt]), length)
			}
		}
	}
}
