package bnb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/railflow/internal/bnb"
	"github.com/katalvlaran/railflow/internal/simplex"
)

func TestSolveRootRelaxationAlreadyIntegral(t *testing.T) {
	// Same shape as the shared-restriction LP test in internal/simplex:
	// the continuous relaxation is already 0/1, so no branching occurs.
	p := bnb.Problem{
		NumVars: 2,
		Rows: []simplex.Row{
			{Coeffs: []float64{1, 1}, RHS: 1},
			{Coeffs: []float64{1, 0}, RHS: 1},
			{Coeffs: []float64{0, 1}, RHS: 1},
		},
		Cost: []float64{-2, -1},
	}
	sol, err := bnb.Solve(p)
	require.NoError(t, err)
	require.Equal(t, []int{1, 0}, sol.X)
	require.InDelta(t, -2.0, sol.Objective, 1e-6)
}

func TestSolveKnapsackRequiresBranching(t *testing.T) {
	// A capacity row ties the two variables together tightly enough that
	// the LP relaxation picks a fractional x1 (x1=0.5, x2=1); only x1=0
	// restores integrality feasibly (x1=1,x2=1 busts the capacity row).
	p := bnb.Problem{
		NumVars: 2,
		Rows: []simplex.Row{
			{Coeffs: []float64{2, 3}, RHS: 4},
			{Coeffs: []float64{1, 0}, RHS: 1},
			{Coeffs: []float64{0, 1}, RHS: 1},
		},
		Cost: []float64{-3, -5},
	}
	sol, err := bnb.Solve(p)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, sol.X)
	require.InDelta(t, -5.0, sol.Objective, 1e-6)
}

func TestSolveRejectsMismatchedShapes(t *testing.T) {
	p := bnb.Problem{
		NumVars: 2,
		Rows:    []simplex.Row{{Coeffs: []float64{1}, RHS: 1}},
		Cost:    []float64{1, 1},
	}
	_, err := bnb.Solve(p)
	require.Error(t, err)
}
