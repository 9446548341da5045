// Package ten builds the time-expanded network (TEN) from a track graph: one
// time-indexed copy of every face node per layer, move and waiting edges
// between consecutive layers, per-commodity source/sink connectors, and the
// constraint lists lifted from the track graph's position/swap constraints
// (spec.md §4.3). A node is a (FaceIndex, Time) pair; its graph vertex ID
// is the compact string "f<idx>_t<t>" rather than the full face name, and
// all searches over the TEN address vertices by that string.
package ten

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/railflow/celldecode"
	"github.com/katalvlaran/railflow/internal/graphcore"
	"github.com/katalvlaran/railflow/trackgraph"
)

// ErrZeroHorizon indicates a caller supplied a non-positive horizon.
var ErrZeroHorizon = errors.New("ten: horizon must be >= 1")

// ErrUnknownCell indicates a commodity referenced a cell with no face nodes.
var ErrUnknownCell = errors.New("ten: cell has no face nodes in the track graph")

// ErrMalformedNodeName indicates a string did not match the "f<idx>_t<t>"
// TEN vertex-ID convention (or named a pseudo source/sink node, which
// ParseNode never produces since those have no FaceIdx).
var ErrMalformedNodeName = errors.New("ten: malformed TEN node name")

// Node is a time-expanded-network vertex: face index faceIdx at time step T.
type Node struct {
	FaceIdx int
	T       int
}

// String renders the TEN vertex ID "f<idx>_t<t>".
func (n Node) String() string {
	return fmt.Sprintf("f%d_t%d", n.FaceIdx, n.T)
}

// ParseNode recovers a Node from the name Node.String() produces; the
// inverse lookup the plan extractor uses to turn a path's walked vertex IDs
// back into (face index, time), mirroring trackgraph.ParseFace.
func ParseNode(name string) (Node, error) {
	if !strings.HasPrefix(name, "f") {
		return Node{}, fmt.Errorf("%w: %q", ErrMalformedNodeName, name)
	}
	parts := strings.SplitN(name[1:], "_t", 2)
	if len(parts) != 2 {
		return Node{}, fmt.Errorf("%w: %q", ErrMalformedNodeName, name)
	}
	faceIdx, errIdx := strconv.Atoi(parts[0])
	t, errT := strconv.Atoi(parts[1])
	if errIdx != nil || errT != nil {
		return Node{}, fmt.Errorf("%w: %q", ErrMalformedNodeName, name)
	}

	return Node{FaceIdx: faceIdx, T: t}, nil
}

// Commodity is one agent's routing request: a start cell (with optional
// initial heading gating which out-face it may depart from) and a target
// cell it must reach by some time `t >= 1`.
type Commodity struct {
	ID         string
	Start      trackgraph.Cell
	Target     trackgraph.Cell
	InitialDir *celldecode.Direction
}

// SourceID and SinkID return the pseudo-node vertex IDs for commodity k,
// s_k and t_k in spec.md §4.3.
func SourceID(commodityID string) string { return "src_" + commodityID }
func SinkID(commodityID string) string   { return "sink_" + commodityID }

// ConstraintSet is a time-lifted constraint: the set of TEN edge IDs that
// may not be used by more than one accepted path, together with the track-
// graph constraint it was lifted from (for diagnostics).
type ConstraintSet struct {
	SourceCells []trackgraph.Cell
	T           int
	EdgeIDs     []string
}

// Network is the assembled time-expanded graph plus its lifted constraints
// and the edge-to-constraint index spec.md §4.3's build_constraints contract
// requires.
type Network struct {
	core    *graphcore.Graph
	Horizon int

	faceOf  []trackgraph.Face // FaceIdx -> Face
	idxOf   map[string]int    // Face.String() -> FaceIdx

	Constraints      []ConstraintSet
	EdgeToConstraint map[string][]int // TEN edge ID -> indices into Constraints

	Commodities []Commodity
}

// Core exposes the underlying directed graph.
func (n *Network) Core() *graphcore.Graph { return n.core }

// DefaultHorizon implements spec.md §4.3's conservative upper bound
// `4*2*(W+H_grid+20)`.
func DefaultHorizon(width, height int) int {
	return 4 * 2 * (width + height + 20)
}
