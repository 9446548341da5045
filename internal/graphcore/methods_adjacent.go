// File: methods_adjacent.go
// Role: neighborhood queries (Neighbors, NeighborIDs) and adjacency helpers.
package graphcore

import "sort"

// Neighbors lists all edges touching id.
//   - Directed edges: only those with e.From==id.
//   - Undirected edges: both directions, loop appears once.
//
// Sorted by Edge.ID for deterministic pricing/Dijkstra relaxation order.
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.muVert.RLock()
	if _, ok := g.vertices[id]; !ok {
		g.muVert.RUnlock()
		return nil, ErrVertexNotFound
	}
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	var out []*Edge
	for _, edgeSet := range g.adjacencyList[id] {
		for eid := range edgeSet {
			e := g.edges[eid]
			if e.Directed && e.From != id {
				continue
			}
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

//–– adjacency helpers ––––––––––––––––––––––––––––––––––––––––––––––––––––––

// ensureAdjacency guarantees the presence of nested maps for (from,to).
// Must be called under muEdgeAdj write lock.
func ensureAdjacency(g *Graph, from, to string) {
	if g.adjacencyList[from] == nil {
		g.adjacencyList[from] = make(map[string]map[string]struct{})
	}
	if g.adjacencyList[from][to] == nil {
		g.adjacencyList[from][to] = make(map[string]struct{})
	}
}

// removeAdjacency deletes e.ID from both directions (mirrors for undirected).
// Must be called under muEdgeAdj write lock.
func removeAdjacency(g *Graph, e *Edge) {
	if m := g.adjacencyList[e.From][e.To]; m != nil {
		delete(m, e.ID)
	}
	if !e.Directed && e.From != e.To {
		if m := g.adjacencyList[e.To][e.From]; m != nil {
			delete(m, e.ID)
		}
	}
}
