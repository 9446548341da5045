// Package gridio decodes spec.md §6's external input shapes — a row-major
// grid of 16-bit rail-cell codes and a list of agent records — into the
// trackgraph.Graph and []ten.Commodity that solver.Solve consumes.
// Grounded on the teacher's gridgraph package: the same rectangular-grid
// validation and row-major (r,c) indexing convention, adapted from
// gridgraph's plain-integer land/water cells to railflow's bit-coded rail
// cells (trackgraph.Build owns the actual bit decoding; gridio owns
// turning agent records into commodities against the resulting graph).
package gridio

import (
	"errors"

	"github.com/katalvlaran/railflow/celldecode"
	"github.com/katalvlaran/railflow/trackgraph"
)

// ErrInvalidAgent reports spec.md §7's *InvalidAgent* error kind: an
// agent's start or target cell is empty in the decoded grid, or its speed
// falls outside the schema's 0 < s <= 1 range.
var ErrInvalidAgent = errors.New("gridio: agent references an empty cell or invalid speed")

// Grid is the raw row-major rail-cell input of spec.md §6: shape
// (H_grid, W), bit ordering N,E,S,W, 0 meaning no rail.
type Grid [][]uint16

// Agent is one routing request as spec.md §6 defines it: a starting
// position and heading, a target, and a speed that is recorded but not
// used by the optimization core (assume 1).
type Agent struct {
	ID        string
	Start     trackgraph.Cell
	Direction celldecode.Direction
	Target    trackgraph.Cell
	Speed     float64
}
