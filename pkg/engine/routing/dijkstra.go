package routing

import (
	"context"

	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/util"
)

type Dijkstra struct {
	graph        *da.Graph
	costFunction CostFunction

	info *SearchStorage[da.Index]
	pq   *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph, costFunction CostFunction, info *SearchStorage[da.Index]) *Dijkstra {
	return &Dijkstra{
		graph:        graph,
		costFunction: costFunction,
		info:         info,
		pq:           da.NewFourAryHeap[da.Index](),
	}
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}

// ShortestPath. point-to-point dijkstra from s to t, stops as soon as t is settled.
// returns the cost of the path and its vertices (s first, t last). s == t gives [s].
func (us *Dijkstra) ShortestPath(ctx context.Context, s, t da.Index) (float64, []da.Index, error) {
	us.info.Reset()
	us.pq.Clear()
	us.numSettledNodes = 0

	sNode := da.NewPriorityQueueNode(0, s)
	us.pq.Insert(sNode)
	us.info.Set(s, NewVertexInfo(0, newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID), sNode))

	for !us.pq.IsEmpty() {
		if us.numSettledNodes%CANCEL_CHECK_INTERVAL == 0 && util.StopConcurrentOperation(ctx) {
			return da.INF_WEIGHT, nil, ctx.Err()
		}

		if us.graphSearchUni() == t {
			return us.info.Get(t).GetDist(), us.retrievePath(s, t), nil
		}
		us.numSettledNodes++
	}

	return da.INF_WEIGHT, nil, ErrNoPath
}

// graphSearchUni. settle the vertex with the smallest tentative distance and relax its outEdges.
func (us *Dijkstra) graphSearchUni() da.Index {
	queryKey, _ := us.pq.ExtractMin()
	uId := queryKey.GetItem()
	uInfo := us.info.Get(uId)
	uInfo.Scan()

	us.graph.ForOutEdgesOf(uId, func(outArc *da.OutEdge) {
		vId := outArc.GetHead()

		newDist := uInfo.GetDist() + us.costFunction.GetWeight(outArc)
		if da.Ge(newDist, da.INF_WEIGHT) {
			return
		}

		vAlreadyLabelled := us.info.IsLabelled(vId)
		if vAlreadyLabelled {
			vInfo := us.info.Get(vId)
			if vInfo.IsScanned() || newDist >= vInfo.GetDist() {
				// newDist is not better, do nothing
				return
			}

			vInfo.UpdateDist(newDist)
			vInfo.UpdateParent(newVertexEdgePair(uId, outArc.GetEdgeId()))
			us.pq.DecreaseKey(vInfo.GetHeapNode(), newDist)
			return
		}

		vNode := da.NewPriorityQueueNode(newDist, vId)
		us.pq.Insert(vNode)
		us.info.Set(vId, NewVertexInfo(newDist, newVertexEdgePair(uId, outArc.GetEdgeId()), vNode))
	})

	return uId
}

func (us *Dijkstra) retrievePath(s, t da.Index) []da.Index {
	path := make([]da.Index, 0, 16)
	for cur := t; cur != s; {
		path = append(path, cur)
		parent := us.info.Get(cur).GetParent()
		cur = parent.getVertex()
	}
	path = append(path, s)
	return util.ReverseG(path)
}
