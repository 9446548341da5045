// File: clone.go
// Role: deep-copy a Graph so a caller can layer scratch vertices/edges onto
// it (maxflow's feasibility pre-check) without mutating the shared original.
package graphcore

import "sync/atomic"

// Clone returns a deep copy of g: every vertex (with its own Metadata map)
// and every edge, preserving edge IDs and the graph's construction-time
// flags. Grounded on the teacher's flow.CloneEmpty, generalized to also
// copy edges since maxflow needs a scratch graph to add super-source/sink
// wiring onto, not an empty shell to rebuild from a capacity map.
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	g.muEdgeAdj.RLock()
	defer g.muVert.RUnlock()
	defer g.muEdgeAdj.RUnlock()

	clone := &Graph{
		directed:      g.directed,
		weighted:      g.weighted,
		allowLoops:    g.allowLoops,
		nextEdgeID:    atomic.LoadUint64(&g.nextEdgeID),
		vertices:      make(map[string]*Vertex, len(g.vertices)),
		edges:         make(map[string]*Edge, len(g.edges)),
		adjacencyList: make(map[string]map[string]map[string]struct{}, len(g.vertices)),
	}

	for id, v := range g.vertices {
		meta := make(map[string]interface{}, len(v.Metadata))
		for k, mv := range v.Metadata {
			meta[k] = mv
		}
		clone.vertices[id] = &Vertex{ID: id, Metadata: meta}
	}

	for eid, e := range g.edges {
		copied := *e
		clone.edges[eid] = &copied
	}

	for from, tos := range g.adjacencyList {
		inner := make(map[string]map[string]struct{}, len(tos))
		for to, ids := range tos {
			idset := make(map[string]struct{}, len(ids))
			for id := range ids {
				idset[id] = struct{}{}
			}
			inner[to] = idset
		}
		clone.adjacencyList[from] = inner
	}

	return clone
}
