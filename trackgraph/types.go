// Package trackgraph assembles a directed graph of cell-face nodes from a
// rail grid, per spec.md §4.2: eight face nodes per non-empty cell
// ({N,E,S,W}×{in,out}), internal edges wired from the decoded transition
// map, external edges to geometric neighbors, and the two constraint
// families (position, swap) that the time-expanded network later lifts
// across time layers.
package trackgraph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/railflow/celldecode"
)

// ErrMalformedFaceName indicates a string did not match the "(r,c)_D_side"
// face-node naming convention.
var ErrMalformedFaceName = errors.New("trackgraph: malformed face node name")

// ErrNonRectangularGrid indicates the input grid's rows differ in length.
var ErrNonRectangularGrid = errors.New("trackgraph: grid rows must all have the same length")

// ErrEmptyGrid indicates the input grid has no rows or no columns.
var ErrEmptyGrid = errors.New("trackgraph: grid must have at least one row and one column")

// Cell is a grid coordinate, row-major: 0 <= R < Height, 0 <= C < Width.
type Cell struct {
	R, C int
}

// Step returns the neighboring cell reached by moving one step in d.
func (c Cell) Step(d celldecode.Direction) Cell {
	switch d {
	case celldecode.N:
		return Cell{c.R - 1, c.C}
	case celldecode.S:
		return Cell{c.R + 1, c.C}
	case celldecode.E:
		return Cell{c.R, c.C + 1}
	case celldecode.W:
		return Cell{c.R, c.C - 1}
	default:
		return c
	}
}

// Side distinguishes the two halves of a face node: the arrival half (In)
// and the departure half (Out).
type Side int8

const (
	In Side = iota
	Out
)

func (s Side) String() string {
	if s == In {
		return "in"
	}

	return "out"
}

// Face is a (cell, direction, side) triple: one of the eight nodes a
// non-empty cell contributes to the track graph.
type Face struct {
	Cell Cell
	Dir  celldecode.Direction
	Side Side
}

// String renders the deterministic face-node name used as the graphcore
// vertex ID, e.g. "(2,3)_N_in".
func (f Face) String() string {
	return fmt.Sprintf("(%d,%d)_%s_%s", f.Cell.R, f.Cell.C, f.Dir, f.Side)
}

// ParseFace recovers a Face from the name Face.String() produces; it is the
// inverse lookup the time-expanded network and plan extractor use to turn a
// graphcore vertex ID back into (cell, direction, side).
func ParseFace(name string) (Face, error) {
	open := strings.IndexByte(name, '(')
	closeIdx := strings.IndexByte(name, ')')
	if open != 0 || closeIdx < 0 {
		return Face{}, fmt.Errorf("%w: %q", ErrMalformedFaceName, name)
	}
	coords := strings.SplitN(name[open+1:closeIdx], ",", 2)
	if len(coords) != 2 {
		return Face{}, fmt.Errorf("%w: %q", ErrMalformedFaceName, name)
	}
	r, errR := strconv.Atoi(coords[0])
	c, errC := strconv.Atoi(coords[1])
	if errR != nil || errC != nil {
		return Face{}, fmt.Errorf("%w: %q", ErrMalformedFaceName, name)
	}

	rest := strings.TrimPrefix(name[closeIdx+1:], "_")
	tail := strings.SplitN(rest, "_", 2)
	if len(tail) != 2 {
		return Face{}, fmt.Errorf("%w: %q", ErrMalformedFaceName, name)
	}
	dir, ok := parseDirection(tail[0])
	if !ok {
		return Face{}, fmt.Errorf("%w: %q", ErrMalformedFaceName, name)
	}
	side, ok := parseSide(tail[1])
	if !ok {
		return Face{}, fmt.Errorf("%w: %q", ErrMalformedFaceName, name)
	}

	return Face{Cell: Cell{R: r, C: c}, Dir: dir, Side: side}, nil
}

func parseDirection(s string) (celldecode.Direction, bool) {
	for _, d := range celldecode.AllDirections {
		if d.String() == s {
			return d, true
		}
	}

	return 0, false
}

func parseSide(s string) (Side, bool) {
	switch s {
	case "in":
		return In, true
	case "out":
		return Out, true
	default:
		return 0, false
	}
}

// ConstraintSet is a set of graphcore edge IDs, deduplicated and owned by
// the track graph; the TEN lifts one time-indexed copy of each constraint
// per time layer (see ten.Build).
type ConstraintSet struct {
	// Cells records which grid cell(s) the constraint governs, purely for
	// diagnostics (e.g. reporting which cell's siding was contested).
	Cells []Cell
	// EdgeIDs are the track-graph edge IDs that participate. The TEN
	// re-derives, for each time layer t, the corresponding TEN edge
	// (u_t->v_{t+1}) from each track-graph edge (u->v).
	EdgeIDs []string
}
