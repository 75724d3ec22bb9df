package datastructure

import (
	"github.com/lintang-b-s/pathcompare/pkg/util"
)

type dfsFrame struct {
	v Index
	e Index // next edge offset to visit
}

// RunKosaraju. runs kosaraju's algorithm to find strongly connected components (SCCs) of the road graph.
// both dfs passes use an explicit stack, city-sized graphs overflow a recursive one.
func (g *Graph) RunKosaraju() {
	n := Index(g.NumberOfVertices())

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := Index(0); v < n; v++ {
		if !visited[v] {
			g.dfs(v, &order, visited, false)
		}
	}

	order = util.ReverseG[Index](order)

	visited = make([]bool, n)
	sccs := make([]Index, n)
	numSCCs := 0
	for _, v := range order {
		if visited[v] {
			continue
		}
		component := make([]Index, 0, 10)
		g.dfs(v, &component, visited, true)
		for _, u := range component {
			sccs[u] = Index(numSCCs)
		}
		numSCCs++
	}

	g.setSCCs(sccs, numSCCs)
}

// dfs. iterative dfs from root, appends vertices to output in post-order.
// reversed traverses inEdges (transpose graph).
func (g *Graph) dfs(root Index, output *[]Index, visited []bool, reversed bool) {
	stack := []dfsFrame{{v: root, e: g.firstEdge(root, reversed)}}
	visited[root] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		end := g.firstEdge(top.v+1, reversed)
		if top.e >= end {
			*output = append(*output, top.v)
			stack = stack[:len(stack)-1]
			continue
		}

		var next Index
		if reversed {
			next = g.inEdges[top.e].tail
		} else {
			next = g.outEdges[top.e].head
		}
		top.e++

		if !visited[next] {
			visited[next] = true
			stack = append(stack, dfsFrame{v: next, e: g.firstEdge(next, reversed)})
		}
	}
}

func (g *Graph) firstEdge(v Index, reversed bool) Index {
	if reversed {
		return g.vertices[v].firstIn
	}
	return g.vertices[v].firstOut
}

// LargestSCC. return the id of the strongly connected component with the most vertices, ties to the smallest id.
// RunKosaraju must be called first.
func (g *Graph) LargestSCC() (Index, int) {
	sizes := make([]int, g.numSCCs)
	for _, c := range g.sccs {
		sizes[c]++
	}
	best, bestSize := Index(0), 0
	for c, size := range sizes {
		if size > bestSize {
			best, bestSize = Index(c), size
		}
	}
	return best, bestSize
}

// KeepLargestSCC. run kosaraju and return the subgraph induced by the largest strongly connected component.
// any two vertices of the returned graph are mutually reachable.
func (g *Graph) KeepLargestSCC() (*Graph, []Index) {
	if g.NumberOfVertices() == 0 {
		return g, []Index{}
	}
	g.RunKosaraju()
	largest, _ := g.LargestSCC()
	keep := make([]bool, g.NumberOfVertices())
	for v := range keep {
		keep[v] = g.sccs[v] == largest
	}
	sub, oldToNew := g.InducedSubgraph(keep)
	sub.RunKosaraju()
	return sub, oldToNew
}
