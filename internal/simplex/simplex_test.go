package simplex_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/railflow/internal/simplex"
)

func TestSolveSingleBoundedVariable(t *testing.T) {
	// minimize -x1 s.t. x1 <= 1, x1 >= 0 -> optimum x1=1, objective=-1.
	p := simplex.Problem{
		NumVars: 1,
		Rows:    []simplex.Row{{Coeffs: []float64{1}, RHS: 1}},
		Cost:    []float64{-1},
	}
	sol, err := simplex.Solve(p)
	require.NoError(t, err)
	require.InDelta(t, 1.0, sol.X[0], 1e-9)
	require.InDelta(t, -1.0, sol.Objective, 1e-9)
	require.InDelta(t, -1.0, sol.Duals[0], 1e-9)
}

func TestSolveTwoCommoditySharedConstraint(t *testing.T) {
	// Two free variables share one restriction row; each also bounded by
	// its own commodity row. Cheaper-per-unit x1 should win the shared slot.
	p := simplex.Problem{
		NumVars: 2,
		Rows: []simplex.Row{
			{Coeffs: []float64{1, 1}, RHS: 1}, // shared restriction
			{Coeffs: []float64{1, 0}, RHS: 1}, // commodity 0's row
			{Coeffs: []float64{0, 1}, RHS: 1}, // commodity 1's row
		},
		Cost: []float64{-2, -1},
	}
	sol, err := simplex.Solve(p)
	require.NoError(t, err)
	require.InDelta(t, 1.0, sol.X[0], 1e-9)
	require.InDelta(t, 0.0, sol.X[1], 1e-9)
	require.InDelta(t, -2.0, sol.Objective, 1e-9)
}

func TestSolveRejectsNegativeRHS(t *testing.T) {
	p := simplex.Problem{
		NumVars: 1,
		Rows:    []simplex.Row{{Coeffs: []float64{1}, RHS: -1}},
		Cost:    []float64{1},
	}
	_, err := simplex.Solve(p)
	require.ErrorIs(t, err, simplex.ErrNegativeRHS)
}

func TestSolveEqualityRowPicksCheaperVariable(t *testing.T) {
	// minimize 2x1+3x2 s.t. x1+x2=4 (EQ), x1<=3 (LE) -> x1=3,x2=1,obj=9.
	p := simplex.Problem{
		NumVars: 2,
		Rows: []simplex.Row{
			{Coeffs: []float64{1, 1}, RHS: 4, Kind: simplex.EQ},
			{Coeffs: []float64{1, 0}, RHS: 3},
		},
		Cost: []float64{2, 3},
	}
	sol, err := simplex.Solve(p)
	require.NoError(t, err)
	require.InDelta(t, 3.0, sol.X[0], 1e-6)
	require.InDelta(t, 1.0, sol.X[1], 1e-6)
	require.InDelta(t, 9.0, sol.Objective, 1e-6)
}

func TestSolveContradictoryEqualitiesAreInfeasible(t *testing.T) {
	p := simplex.Problem{
		NumVars: 1,
		Rows: []simplex.Row{
			{Coeffs: []float64{1}, RHS: 1, Kind: simplex.EQ},
			{Coeffs: []float64{1}, RHS: 2, Kind: simplex.EQ},
		},
		Cost: []float64{0},
	}
	_, err := simplex.Solve(p)
	require.ErrorIs(t, err, simplex.ErrInfeasible)
}

func TestSolveTrivialZeroCost(t *testing.T) {
	p := simplex.Problem{
		NumVars: 2,
		Rows:    []simplex.Row{{Coeffs: []float64{1, 1}, RHS: 1}},
		Cost:    []float64{0, 0},
	}
	sol, err := simplex.Solve(p)
	require.NoError(t, err)
	require.InDelta(t, 0.0, sol.Objective, 1e-9)
}
