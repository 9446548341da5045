package pricing

import "github.com/katalvlaran/railflow/internal/graphcore"

// reweight computes w'(e) = w(e) - sum_{R touches e} y_R for every edge in
// core, using restrictionDuals (master.DualValues.Restriction) and
// edgeToConstraint (ten.Network.EdgeToConstraint). Edges touching no active
// constraint keep their baseline weight unchanged.
func reweight(core *graphcore.Graph, restrictionDuals map[int]float64, edgeToConstraint map[string][]int) map[string]float64 {
	edges := core.Edges()
	weights := make(map[string]float64, len(edges))
	for _, e := range edges {
		w := float64(e.Weight)
		for _, ci := range edgeToConstraint[e.ID] {
			w -= restrictionDuals[ci]
		}
		weights[e.ID] = w
	}

	return weights
}
