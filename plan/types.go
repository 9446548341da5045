// Package plan implements spec.md §4.10: for each commodity, walk the
// chosen path's TEN nodes in time order, collapse consecutive (in, out)
// face visits of the same cell into one cell emission, and drop the
// pseudo source/sink nodes, producing {k: [cell_0, ..., cell_T]}.
//
// Two edge cases from spec.md §4.10 are carried as explicit Result fields
// rather than silently folded into the cell sequence:
//   - a commodity sharing its starting cell with another at layer 0 is
//     dropped upstream (solver's build step) and reported here as
//     StatusDropped with no cells;
//   - a path that reaches its target before the horizon needs no special
//     handling at all: the target's face node is immediately followed by
//     the absorbing sink pseudo-node, so the walk simply stops emitting.
package plan

import "github.com/katalvlaran/railflow/trackgraph"

// Status reports how a commodity's plan was resolved, per spec.md §6's
// Output: "a status (ok, dropped, infeasible)".
type Status int

const (
	// StatusOK means a path was chosen and a cell sequence extracted.
	StatusOK Status = iota
	// StatusDropped means the commodity was removed before the LP was
	// built (e.g. a starting-cell collision with another commodity at
	// layer 0).
	StatusDropped
	// StatusInfeasible means no assignment exists for this commodity
	// despite it not being dropped (the solver found no route).
	StatusInfeasible
)

// String renders the canonical lowercase status name spec.md §6 uses.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDropped:
		return "dropped"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// CommodityPlan is one commodity's extracted route: the ordered cell
// sequence (empty unless Status is StatusOK), its status, and its score
// (the path's hop-count cost, spec.md §6's "sum of path lengths").
type CommodityPlan struct {
	Cells  []trackgraph.Cell
	Status Status
	Score  float64
}

// Result maps commodity ID to its extracted plan.
type Result map[string]CommodityPlan
