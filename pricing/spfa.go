package pricing

import (
	"fmt"
	"math"

	"github.com/katalvlaran/railflow/internal/graphcore"
)

// spfa is the queue-based Bellman-Ford-Moore variant: only vertices whose
// distance just improved are re-examined, instead of relaxing every edge
// every round. A vertex re-entering the queue more times than there are
// vertices proves a negative cycle, the standard SPFA termination check.
func spfa(core *graphcore.Graph, source, target string, weight map[string]float64) (Path, bool, error) {
	if !core.HasVertex(source) {
		return Path{}, false, fmt.Errorf("%w: %q", ErrSourceNotFound, source)
	}

	vertexCount := core.VertexCount()
	dist := map[string]float64{source: 0}
	prevEdge := make(map[string]*graphcore.Edge)
	inQueue := map[string]bool{source: true}
	relaxCount := map[string]int{source: 1}
	queue := []string{source}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		inQueue[u] = false

		neighbors, err := core.Neighbors(u)
		if err != nil {
			return Path{}, false, err
		}
		for _, e := range neighbors {
			v := e.To
			nd := dist[u] + weight[e.ID]
			if cur, ok := dist[v]; !ok || nd < cur-epsilon {
				dist[v] = nd
				prevEdge[v] = e
				if !inQueue[v] {
					relaxCount[v]++
					if relaxCount[v] > vertexCount {
						return Path{}, false, ErrNegativeCycle
					}
					inQueue[v] = true
					queue = append(queue, v)
				}
			}
		}
	}

	dt, ok := dist[target]
	if !ok || math.IsInf(dt, 1) {
		return Path{}, false, nil
	}

	return reconstruct(source, target, dt, prevEdge), true, nil
}
