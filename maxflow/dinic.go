package maxflow

import (
	"fmt"

	"github.com/katalvlaran/railflow/internal/graphcore"
)

// MaxFlow computes the maximum flow from source to sink in g using Dinic's
// algorithm (level graph + blocking flow), adapted from the teacher's
// flow.Dinic: same BFS-level / DFS-blocking-flow shape, but driven directly
// off internal/graphcore.Graph's Capacity field (rather than overloading
// Weight) and returning only the flow value, since callers here only need
// the number, not a reconstructed residual graph.
func MaxFlow(g *graphcore.Graph, source, sink string, opts ...Option) (float64, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if !g.HasVertex(source) {
		return 0, ErrSourceNotFound
	}
	if !g.HasVertex(sink) {
		return 0, ErrSinkNotFound
	}

	capMap, err := buildCapMap(g, o)
	if err != nil {
		return 0, err
	}

	var maxFlow float64
	for {
		if err := o.Ctx.Err(); err != nil {
			return maxFlow, err
		}

		level := bfsLevels(capMap, source)
		if level[sink] < 0 {
			break
		}

		next := buildLevelAdjacency(capMap, level)
		iter := make(map[string]int, len(next))
		for {
			if err := o.Ctx.Err(); err != nil {
				return maxFlow, err
			}
			pushed := dfsBlockingPush(capMap, next, iter, source, sink, inf)
			if pushed <= o.Epsilon {
				break
			}
			maxFlow += pushed
		}
	}

	return maxFlow, nil
}

const inf = 1e18

// buildCapMap aggregates parallel edges into capMap[u][v] = total capacity,
// discarding self-loops and capacities at or below epsilon.
func buildCapMap(g *graphcore.Graph, o Options) (map[string]map[string]float64, error) {
	vertices := g.Vertices()
	capMap := make(map[string]map[string]float64, len(vertices))
	for _, u := range vertices {
		capMap[u] = make(map[string]float64)
	}

	for _, u := range vertices {
		neighbors, err := g.Neighbors(u)
		if err != nil {
			return nil, err
		}
		for _, e := range neighbors {
			if e.From == e.To {
				continue
			}
			c := float64(e.Capacity)
			if c < -o.Epsilon {
				return nil, fmt.Errorf("maxflow: negative capacity on edge %q->%q: %g", e.From, e.To, c)
			}
			capMap[u][e.To] += c
		}
	}
	for u := range capMap {
		for v, c := range capMap[u] {
			if c <= o.Epsilon {
				delete(capMap[u], v)
			}
		}
	}

	return capMap, nil
}

func bfsLevels(capMap map[string]map[string]float64, source string) map[string]int {
	level := make(map[string]int, len(capMap))
	for u := range capMap {
		level[u] = -1
	}
	level[source] = 0
	queue := []string{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for v, c := range capMap[u] {
			if c > 0 && level[v] < 0 {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}

	return level
}

func buildLevelAdjacency(capMap map[string]map[string]float64, level map[string]int) map[string][]string {
	next := make(map[string][]string, len(capMap))
	for u, nbrs := range capMap {
		for v, c := range nbrs {
			if c > 0 && level[v] == level[u]+1 {
				next[u] = append(next[u], v)
			}
		}
	}

	return next
}

// dfsBlockingPush pushes flow along the level graph, advancing each
// vertex's iterator past exhausted edges so repeated calls within one
// blocking-flow phase never re-walk a dead end.
func dfsBlockingPush(capMap map[string]map[string]float64, next map[string][]string, iter map[string]int, u, sink string, available float64) float64 {
	if u == sink {
		return available
	}
	for i := iter[u]; i < len(next[u]); i++ {
		iter[u] = i + 1
		v := next[u][i]
		capUV := capMap[u][v]
		if capUV <= 0 {
			continue
		}
		send := available
		if capUV < send {
			send = capUV
		}
		if send <= 0 {
			continue
		}
		pushed := dfsBlockingPush(capMap, next, iter, v, sink, send)
		if pushed > 0 {
			capMap[u][v] -= pushed
			capMap[v][u] += pushed

			return pushed
		}
	}

	return 0
}
