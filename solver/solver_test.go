package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/railflow/celldecode"
	"github.com/katalvlaran/railflow/plan"
	"github.com/katalvlaran/railflow/solver"
	"github.com/katalvlaran/railflow/ten"
	"github.com/katalvlaran/railflow/trackgraph"
)

const straightEW uint16 = (1 << 8) | (4 << 0)

func corridor(t *testing.T, cells int) *trackgraph.Graph {
	t.Helper()
	row := make([]uint16, cells)
	for i := range row {
		row[i] = straightEW
	}
	tg, err := trackgraph.Build([][]uint16{row})
	require.NoError(t, err)

	return tg
}

func TestSolveColumnGenerationStraightCorridor(t *testing.T) {
	tg := corridor(t, 3)
	comm := ten.Commodity{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}}

	result, err := solver.Solve(tg, []ten.Commodity{comm})
	require.NoError(t, err)
	require.Equal(t, plan.StatusOK, result["k0"].Status)
	require.Equal(t, float64(2), result["k0"].Score)
	require.Equal(t, []trackgraph.Cell{{R: 0, C: 0}, {R: 0, C: 1}, {R: 0, C: 2}}, result["k0"].Cells)
}

func TestSolveArcFormulationStraightCorridor(t *testing.T) {
	tg := corridor(t, 3)
	comm := ten.Commodity{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}}

	result, err := solver.Solve(tg, []ten.Commodity{comm}, solver.WithMethod(solver.ArcFormulation))
	require.NoError(t, err)
	require.Equal(t, plan.StatusOK, result["k0"].Status)
	require.Equal(t, float64(2), result["k0"].Score)
	require.Equal(t, []trackgraph.Cell{{R: 0, C: 0}, {R: 0, C: 1}, {R: 0, C: 2}}, result["k0"].Cells)
}

func TestSolveDropsStartingCellCollision(t *testing.T) {
	tg := corridor(t, 3)
	commodities := []ten.Commodity{
		{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}},
		{ID: "k1", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}},
	}

	result, err := solver.Solve(tg, commodities)
	require.NoError(t, err)
	require.Equal(t, plan.StatusOK, result["k0"].Status)
	require.Equal(t, plan.StatusDropped, result["k1"].Status)
	require.Empty(t, result["k1"].Cells)
}

func TestSolveUnknownMethodErrors(t *testing.T) {
	tg := corridor(t, 3)
	comm := ten.Commodity{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}}

	_, err := solver.Solve(tg, []ten.Commodity{comm}, solver.WithMethod(solver.Method(99)))
	require.ErrorIs(t, err, solver.ErrUnknownMethod)
}

func TestSolveHonorsCancelledContext(t *testing.T) {
	tg := corridor(t, 3)
	comm := ten.Commodity{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Solve(tg, []ten.Commodity{comm}, solver.WithContext(ctx), solver.WithMethod(solver.ArcFormulation))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolveUseDirectionMismatchIsInfeasibleUnlessDisabled(t *testing.T) {
	tg := corridor(t, 3)
	south := celldecode.S
	comm := ten.Commodity{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}, InitialDir: &south}

	_, err := solver.Solve(tg, []ten.Commodity{comm})
	require.Error(t, err)

	result, err := solver.Solve(tg, []ten.Commodity{comm}, solver.WithUseDirection(false))
	require.NoError(t, err)
	require.Equal(t, plan.StatusOK, result["k0"].Status)
}

func TestMethodString(t *testing.T) {
	require.Equal(t, "column-generation", solver.ColumnGeneration.String())
	require.Equal(t, "arc-formulation", solver.ArcFormulation.String())
	require.Equal(t, "unknown", solver.Method(99).String())
}
