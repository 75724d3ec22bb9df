package routing

import (
	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
)

// SearchStorage. labels of the vertices touched by one query.
// a point-to-point search between nearby stops only labels a small part of a city graph,
// so labels live in a map instead of a slice of NumberOfVertices entries. storages are reused through a sync.Pool.
type SearchStorage[T comparable] struct {
	infos map[da.Index]*VertexInfo[T]
}

func NewSearchStorage[T comparable](size int) *SearchStorage[T] {
	return &SearchStorage[T]{
		infos: make(map[da.Index]*VertexInfo[T], size),
	}
}

// Get. label of id, an unlabelled vertex has infinite distance.
func (s *SearchStorage[T]) Get(id da.Index) *VertexInfo[T] {
	val, ok := s.infos[id]
	if !ok {
		return newInfWeightVertexInfo[T]()
	}
	return val
}

func (s *SearchStorage[T]) IsLabelled(id da.Index) bool {
	_, ok := s.infos[id]
	return ok
}

func (s *SearchStorage[T]) Set(id da.Index, info *VertexInfo[T]) {
	s.infos[id] = info
}

func (s *SearchStorage[T]) Len() int {
	return len(s.infos)
}

func (s *SearchStorage[T]) Reset() {
	clear(s.infos)
}
