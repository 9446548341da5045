package maxflow

import (
	"github.com/katalvlaran/railflow/ten"
)

const (
	superSource = "__maxflow_super_source__"
	superSink   = "__maxflow_super_sink__"
)

// CheckFeasible runs the arc-formulation necessary-condition pre-check
// described in this package's doc comment: a combined super-source/sink
// flow problem over a scratch clone of net's graph (the shared TEN is
// never mutated). feasible is false only when the flow value falls strictly
// below len(net.Commodities), a hard proof no arc IP could route every
// commodity; a true result is not a feasibility guarantee, only the
// absence of this cheap disproof.
func CheckFeasible(net *ten.Network, opts ...Option) (feasible bool, flow float64, err error) {
	scratch := net.Core().Clone()

	for _, comm := range net.Commodities {
		if _, err := scratch.AddEdge(superSource, ten.SourceID(comm.ID), 0, 1); err != nil {
			return false, 0, err
		}
		if _, err := scratch.AddEdge(ten.SinkID(comm.ID), superSink, 0, 1); err != nil {
			return false, 0, err
		}
	}

	flow, err = MaxFlow(scratch, superSource, superSink, opts...)
	if err != nil {
		return false, flow, err
	}

	return flow >= float64(len(net.Commodities))-DefaultEpsilon, flow, nil
}
