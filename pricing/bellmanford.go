package pricing

import (
	"fmt"
	"math"

	"github.com/katalvlaran/railflow/internal/graphcore"
)

// bellmanFord finds a minimum-weight source-to-target path under weight,
// tolerating negative edges (but not negative cycles). Classic |V|-1
// relaxation rounds over the full edge list, with one extra round to
// detect a still-improvable edge (a negative cycle reachable from source).
func bellmanFord(core *graphcore.Graph, source, target string, weight map[string]float64) (Path, bool, error) {
	if !core.HasVertex(source) {
		return Path{}, false, fmt.Errorf("%w: %q", ErrSourceNotFound, source)
	}

	vertices := core.Vertices()
	edges := core.Edges()

	dist := make(map[string]float64, len(vertices))
	prevEdge := make(map[string]*graphcore.Edge, len(vertices))
	for _, v := range vertices {
		dist[v] = math.Inf(1)
	}
	dist[source] = 0

	for i := 0; i < len(vertices)-1; i++ {
		changed := false
		for _, e := range edges {
			du := dist[e.From]
			if math.IsInf(du, 1) {
				continue
			}
			nd := du + weight[e.ID]
			if nd < dist[e.To]-epsilon {
				dist[e.To] = nd
				prevEdge[e.To] = e
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for _, e := range edges {
		du := dist[e.From]
		if math.IsInf(du, 1) {
			continue
		}
		if du+weight[e.ID] < dist[e.To]-epsilon {
			return Path{}, false, ErrNegativeCycle
		}
	}

	dt := dist[target]
	if math.IsInf(dt, 1) {
		return Path{}, false, nil
	}

	return reconstruct(source, target, dt, prevEdge), true, nil
}
