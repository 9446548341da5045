package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/railflow/celldecode"
	"github.com/katalvlaran/railflow/plan"
	"github.com/katalvlaran/railflow/solver"
	"github.com/katalvlaran/railflow/ten"
	"github.com/katalvlaran/railflow/trackgraph"
)

// deadEndStub decodes (per celldecode's dead-end normalization) to a single
// transition {W: [W]}: a cell reachable only from the west that forces an
// arriving agent to reverse and leave the way it came, rather than a cell
// with no usable transition at all.
const deadEndStub uint16 = 1 << 8

// allWayCell permits every turn except a direct 180-degree reversal: a full
// four-way crossing.
const allWayCell uint16 = 0x7BDE

func buildGraph(t *testing.T, grid [][]uint16) *trackgraph.Graph {
	t.Helper()
	tg, err := trackgraph.Build(grid)
	require.NoError(t, err)

	return tg
}

// TestScenarioStraightCorridor is the golden path: one agent, one track,
// no conflicts, score equal to its hop count.
func TestScenarioStraightCorridor(t *testing.T) {
	tg := corridor(t, 3)
	comm := ten.Commodity{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}}

	result, err := solver.Solve(tg, []ten.Commodity{comm})
	require.NoError(t, err)
	require.Equal(t, plan.StatusOK, result["k0"].Status)
	require.Equal(t, float64(2), result["k0"].Score)
}

// TestScenarioHeadOnNoSidingInfeasibleWithTightHorizon places two agents on
// a three-cell single-track corridor approaching head-on. The corridor has
// no siding, so whichever agent is scheduled second must wait a full layer
// for the interior of the middle cell to clear. A horizon equal to the bare
// minimum hop distance (3 edges: enter, cross, leave) leaves no room for
// that wait, so the second commodity has no feasible path at all.
func TestScenarioHeadOnNoSidingInfeasibleWithTightHorizon(t *testing.T) {
	tg := corridor(t, 3)
	east := ten.Commodity{ID: "east", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}}
	west := ten.Commodity{ID: "west", Start: trackgraph.Cell{R: 0, C: 2}, Target: trackgraph.Cell{R: 0, C: 0}}

	_, err := solver.Solve(tg, []ten.Commodity{east, west}, solver.WithHorizon(3), solver.WithMethod(solver.ColumnGeneration))
	require.Error(t, err)
}

// TestScenarioHeadOnSwapResolvedByColumnGeneration is the same head-on pair
// with one extra layer of horizon: one agent now has enough room to wait
// out the conflict, so both reach their targets, at a combined cost above
// the conflict-free minimum (3 hops apiece).
func TestScenarioHeadOnSwapResolvedByColumnGeneration(t *testing.T) {
	tg := corridor(t, 3)
	east := ten.Commodity{ID: "east", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}}
	west := ten.Commodity{ID: "west", Start: trackgraph.Cell{R: 0, C: 2}, Target: trackgraph.Cell{R: 0, C: 0}}

	result, err := solver.Solve(tg, []ten.Commodity{east, west}, solver.WithHorizon(4), solver.WithMethod(solver.ColumnGeneration))
	require.NoError(t, err)
	require.Equal(t, plan.StatusOK, result["east"].Status)
	require.Equal(t, plan.StatusOK, result["west"].Status)
	require.Greater(t, result["east"].Score+result["west"].Score, float64(6))
}

// TestScenarioHeadOnSwapResolvedByArcFormulation re-solves the same head-on
// pair via the arc-formulation method, confirming both solve paths agree
// that a wait resolves the conflict.
func TestScenarioHeadOnSwapResolvedByArcFormulation(t *testing.T) {
	tg := corridor(t, 3)
	east := ten.Commodity{ID: "east", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}}
	west := ten.Commodity{ID: "west", Start: trackgraph.Cell{R: 0, C: 2}, Target: trackgraph.Cell{R: 0, C: 0}}

	result, err := solver.Solve(tg, []ten.Commodity{east, west}, solver.WithHorizon(4), solver.WithMethod(solver.ArcFormulation))
	require.NoError(t, err)
	require.Equal(t, plan.StatusOK, result["east"].Status)
	require.Equal(t, plan.StatusOK, result["west"].Status)
	require.Greater(t, result["east"].Score+result["west"].Score, float64(6))
}

// TestScenarioDeadEndUTurn sends a single agent down a two-cell spur ending
// in a dead-end stub and back to its own starting cell, exercising
// celldecode's dead-end normalization end to end: without it, the stub
// cell's only transition would be wired to the wrong arrival face and the
// agent could never turn around.
func TestScenarioDeadEndUTurn(t *testing.T) {
	tg := buildGraph(t, [][]uint16{{straightEW, deadEndStub}})
	comm := ten.Commodity{
		ID:         "k0",
		Start:      trackgraph.Cell{R: 0, C: 0},
		Target:     trackgraph.Cell{R: 0, C: 0},
		InitialDir: dirPtr(celldecode.E),
	}

	result, err := solver.Solve(tg, []ten.Commodity{comm})
	require.NoError(t, err)
	cp := result["k0"]
	require.Equal(t, plan.StatusOK, cp.Status)
	require.Equal(t, float64(3), cp.Score)
	require.Equal(t, []trackgraph.Cell{{R: 0, C: 0}, {R: 0, C: 1}, {R: 0, C: 0}}, cp.Cells)
}

// TestScenarioColumnGenerationConvergesOnGridWithThreeAgents runs three
// agents crossing a 5x5 open grid of four-way crossings, confirming the
// column-generation loop converges (adds columns until pricing finds no
// improving path, then solves the integer model) without error on a
// larger, genuinely two-dimensional instance.
func TestScenarioColumnGenerationConvergesOnGridWithThreeAgents(t *testing.T) {
	grid := make([][]uint16, 5)
	for r := range grid {
		grid[r] = make([]uint16, 5)
		for c := range grid[r] {
			grid[r][c] = allWayCell
		}
	}
	tg := buildGraph(t, grid)

	commodities := []ten.Commodity{
		{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 4, C: 4}, InitialDir: dirPtr(celldecode.E)},
		{ID: "k1", Start: trackgraph.Cell{R: 0, C: 4}, Target: trackgraph.Cell{R: 4, C: 0}, InitialDir: dirPtr(celldecode.W)},
		{ID: "k2", Start: trackgraph.Cell{R: 4, C: 0}, Target: trackgraph.Cell{R: 0, C: 4}, InitialDir: dirPtr(celldecode.N)},
	}

	result, err := solver.Solve(tg, commodities, solver.WithMethod(solver.ColumnGeneration))
	require.NoError(t, err)
	for _, id := range []string{"k0", "k1", "k2"} {
		require.Equal(t, plan.StatusOK, result[id].Status, "commodity %s", id)
	}
}

func dirPtr(d celldecode.Direction) *celldecode.Direction { return &d }
