package kshortest

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/railflow/internal/graphcore"
)

// Finder runs repeated Dijkstra searches with weight inflation against one
// underlying graph. It holds no per-call state between Find invocations;
// each Find starts from a fresh inflation overlay, matching spec.md §4.4's
// "after each commodity, weights are reset to baseline".
type Finder struct {
	g *graphcore.Graph
}

// New wraps g for repeated k-shortest-path queries.
func New(g *graphcore.Graph) *Finder {
	return &Finder{g: g}
}

// Find returns up to k shortest source-to-target paths. The first path is
// the true shortest path under baseline edge weights; each subsequent
// search runs against weights where every edge of previously returned
// paths has been incremented by 1, so the result tends toward distinct
// paths without excluding duplicates outright (spec.md §4.4). Inflation
// never removes an edge, so a reachable target yields exactly k paths
// (possibly repeating one another) and an unreachable one yields none.
func (f *Finder) Find(source, target string, k int) ([]Path, error) {
	if source == "" {
		return nil, ErrEmptySource
	}
	if target == "" {
		return nil, ErrEmptyTarget
	}
	if k < 1 {
		return nil, ErrBadK
	}
	if !f.g.HasVertex(source) {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotFound, source)
	}

	inflate := make(map[string]int64)
	paths := make([]Path, 0, k)
	for i := 0; i < k; i++ {
		p, ok, err := f.shortestPath(source, target, inflate)
		if err != nil {
			return paths, err
		}
		if !ok {
			break
		}
		paths = append(paths, p)
		for _, eid := range p.EdgeIDs {
			inflate[eid]++
		}
	}

	return paths, nil
}

// shortestPath runs one Dijkstra pass with inflate applied on top of each
// edge's baseline weight, and reports whether target was reached.
func (f *Finder) shortestPath(source, target string, inflate map[string]int64) (Path, bool, error) {
	dist := map[string]int64{source: 0}
	prevEdge := make(map[string]*graphcore.Edge)
	visited := make(map[string]bool)

	pq := nodePQ{{id: source, dist: 0}}
	heap.Init(&pq)

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u, d := item.id, item.dist
		if visited[u] {
			continue
		}
		visited[u] = true
		if u == target {
			break
		}

		neighbors, err := f.g.Neighbors(u)
		if err != nil {
			return Path{}, false, err
		}
		for _, e := range neighbors {
			v := e.To
			if visited[v] {
				continue
			}
			w := e.Weight + inflate[e.ID]
			nd := d + w
			if best, ok := dist[v]; !ok || nd < best {
				dist[v] = nd
				prevEdge[v] = e
				heap.Push(&pq, &nodeItem{id: v, dist: nd})
			}
		}
	}

	if _, ok := dist[target]; !ok || !visited[target] {
		return Path{}, false, nil
	}

	return reconstruct(source, target, dist[target], prevEdge), true, nil
}

func reconstruct(source, target string, weight int64, prevEdge map[string]*graphcore.Edge) Path {
	var nodes []string
	var edgeIDs []string
	cur := target
	for cur != source {
		e := prevEdge[cur]
		edgeIDs = append([]string{e.ID}, edgeIDs...)
		nodes = append([]string{cur}, nodes...)
		cur = e.From
	}
	nodes = append([]string{source}, nodes...)

	return Path{Nodes: nodes, EdgeIDs: edgeIDs, Weight: weight}
}
