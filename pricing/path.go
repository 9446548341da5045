package pricing

import "github.com/katalvlaran/railflow/internal/graphcore"

// reconstruct walks prevEdge back from target to source, mirroring
// kshortest.reconstruct but keeping the float64 reduced-cost weight.
func reconstruct(source, target string, weight float64, prevEdge map[string]*graphcore.Edge) Path {
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
