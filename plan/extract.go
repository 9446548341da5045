package plan

import (
	"github.com/katalvlaran/railflow/master"
	"github.com/katalvlaran/railflow/ten"
	"github.com/katalvlaran/railflow/trackgraph"
)

// Extract builds the per-commodity Result from the master's chosen
// assignments, in commodity order. dropped names commodities excluded
// before the LP was built (spec.md §4.10's starting-cell-collision edge
// case); any order entry absent from both dropped and assignments is
// reported StatusInfeasible.
func Extract(net *ten.Network, order []string, assignments map[string]master.Assignment, dropped map[string]bool) Result {
	result := make(Result, len(order))
	for _, id := range order {
		if dropped[id] {
			result[id] = CommodityPlan{Status: StatusDropped}
			continue
		}
		a, ok := assignments[id]
		if !ok {
			result[id] = CommodityPlan{Status: StatusInfeasible}
			continue
		}
		result[id] = CommodityPlan{
			Cells:  cellSequence(net, a.Path.Nodes),
			Status: StatusOK,
			Score:  a.Cost,
		}
	}

	return result
}

// cellSequence walks nodes in time order, skipping any name that is not a
// TEN face node (the pseudo source/sink connectors), and collapses runs of
// consecutive nodes belonging to the same cell into one emission.
func cellSequence(net *ten.Network, nodes []string) []trackgraph.Cell {
	var cells []trackgraph.Cell
	for _, name := range nodes {
		node, err := ten.ParseNode(name)
		if err != nil {
			continue
		}
		cell := net.Face(node.FaceIdx).Cell
		if n := len(cells); n > 0 && cells[n-1] == cell {
			continue
		}
		cells = append(cells, cell)
	}

	return cells
}
