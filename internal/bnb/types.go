// Package bnb implements a binary-variable branch-and-bound search over an
// LP relaxation solved by internal/simplex, used by master.solve_ip() for
// the restricted master's integrality pass (spec.md §4.6) and by solver's
// arc-formulation alternative (SPEC_FULL.md §4.9). Grounded on the
// teacher's tsp.bbEngine: a dedicated engine struct (not closures) holding
// search state explicitly, deterministic depth-first branching, an
// admissible bound pruning the search, and a soft node/time budget checked
// at every search node.
package bnb

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/railflow/internal/simplex"
)

// ErrNodeLimit indicates the search exhausted its node budget before
// proving optimality; any incumbent found so far is discarded, since an
// unproven incumbent is not a trustworthy answer for an exact solver.
var ErrNodeLimit = errors.New("bnb: node limit reached before optimality proven")

// ErrTimeLimit indicates the search exhausted its time budget before
// proving optimality, for the same reason ErrNodeLimit discards its
// incumbent.
var ErrTimeLimit = errors.New("bnb: time limit reached before optimality proven")

// ErrNoFeasibleSolution indicates no integral assignment satisfies every
// row. Unreachable when every row is simplex.LE with RHS >= 0 (the all-
// zero assignment is always feasible then); relevant once a caller mixes
// in simplex.EQ rows, as solver's arc-formulation does.
var ErrNoFeasibleSolution = errors.New("bnb: no feasible integral solution")

// DefaultMaxNodes bounds search nodes absent an explicit override.
const DefaultMaxNodes = 200_000

const epsilon = 1e-6

// Problem is a 0/1 integer program: minimize Cost^T x subject to the given
// rows (the same constraint shape internal/simplex accepts; a variable's
// upper bound of 1 is expected to already be encoded as a Row, matching
// master's per-commodity unit-flow row), x in {0,1}^NumVars.
type Problem struct {
	NumVars   int
	Rows      []simplex.Row
	Cost      []float64
	MaxNodes  int           // 0 selects DefaultMaxNodes
	TimeLimit time.Duration // 0 disables the deadline
}

// Solution is a proven-optimal 0/1 assignment.
type Solution struct {
	X         []int
	Objective float64
}

func validate(p Problem) error {
	for i, r := range p.Rows {
		if len(r.Coeffs) != p.NumVars {
			return fmt.Errorf("bnb: row %d has %d coefficients, want %d", i, len(r.Coeffs), p.NumVars)
		}
	}
	if len(p.Cost) != p.NumVars {
		return fmt.Errorf("bnb: cost vector has %d entries, want %d", len(p.Cost), p.NumVars)
	}

	return nil
}
