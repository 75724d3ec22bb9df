package routing

import (
	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
)

type vertexEdgePair struct {
	vertex da.Index
	edge   da.Index
}

func (ve *vertexEdgePair) getVertex() da.Index {
	return ve.vertex
}

func newVertexEdgePair(vertex, edge da.Index) vertexEdgePair {
	return vertexEdgePair{
		vertex: vertex,
		edge:   edge,
	}
}

type VertexInfo[T comparable] struct {
	dist     float64
	parent   vertexEdgePair
	scanned  bool // est dist from s to this v is equal to shortest path cost, and contained in shortest path tree
	heapNode *da.PriorityQueueNode[T]
}

func NewVertexInfo[T comparable](dist float64, parent vertexEdgePair, hnode *da.PriorityQueueNode[T]) *VertexInfo[T] {
	return &VertexInfo[T]{
		dist:     dist,
		parent:   parent,
		heapNode: hnode,
	}
}

func (vi *VertexInfo[T]) GetDist() float64 {
	return vi.dist
}

func (vi *VertexInfo[T]) UpdateDist(d float64) {
	vi.dist = d
}

func (vi *VertexInfo[T]) UpdateParent(par vertexEdgePair) {
	vi.parent = par
}

func (vi *VertexInfo[T]) Scan() {
	vi.scanned = true
}

func (vi *VertexInfo[T]) IsScanned() bool {
	return vi.scanned
}

func (vi *VertexInfo[T]) GetParent() vertexEdgePair {
	return vi.parent
}

func (vi *VertexInfo[T]) GetHeapNode() *da.PriorityQueueNode[T] {
	return vi.heapNode
}

func newInfWeightVertexInfo[T comparable]() *VertexInfo[T] {
	return NewVertexInfo[T](da.INF_WEIGHT, newVertexEdgePair(da.INVALID_VERTEX_ID, da.INVALID_EDGE_ID), nil)
}
