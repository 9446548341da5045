package maxflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/railflow/internal/graphcore"
	"github.com/katalvlaran/railflow/maxflow"
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

// s->a(2)->t(2) carries 2; s->b(3)->t(1) carries min(3,1)=1; total 3.
func TestMaxFlowTwoPathNetwork(t *testing.T) {
	g := graphcore.NewGraph(graphcore.WithWeighted())
	_, err := g.AddEdge("s", "a", 0, 2)
	require.NoError(t, err)
	_, err = g.AddEdge("a", "t", 0, 2)
	require.NoError(t, err)
	_, err = g.AddEdge("s", "b", 0, 3)
	require.NoError(t, err)
	_, err = g.AddEdge("b", "t", 0, 1)
	require.NoError(t, err)

	flow, err := maxflow.MaxFlow(g, "s", "t")
	require.NoError(t, err)
	require.InDelta(t, 3.0, flow, 1e-6)
}

func TestMaxFlowUnknownVertices(t *testing.T) {
	g := graphcore.NewGraph(graphcore.WithWeighted())
	_, err := g.AddEdge("a", "b", 0, 1)
	require.NoError(t, err)

	_, err = maxflow.MaxFlow(g, "missing", "b")
	require.ErrorIs(t, err, maxflow.ErrSourceNotFound)

	_, err = maxflow.MaxFlow(g, "a", "missing")
	require.ErrorIs(t, err, maxflow.ErrSinkNotFound)
}

func TestCheckFeasibleSingleCommodityCorridor(t *testing.T) {
	tg := corridor(t, 3)
	comm := ten.Commodity{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}}
	net, err := ten.Build(tg, 6, 1, []ten.Commodity{comm})
	require.NoError(t, err)

	feasible, flow, err := maxflow.CheckFeasible(net)
	require.NoError(t, err)
	require.True(t, feasible)
	require.InDelta(t, 1.0, flow, 1e-6)
}

// With horizon pinned exactly to the 2-hop minimum, two commodities sharing
// the only straight-line route cannot stagger in time: their paths collapse
// onto the same two capacity-1 edges, so the combined max flow tops out at
// 1 even though 2 commodities need to get through.
func TestCheckFeasibleDetectsTimeCriticalBottleneck(t *testing.T) {
	tg := corridor(t, 3)
	commodities := []ten.Commodity{
		{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}},
		{ID: "k1", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}},
	}
	net, err := ten.Build(tg, 2, 1, commodities)
	require.NoError(t, err)

	feasible, flow, err := maxflow.CheckFeasible(net)
	require.NoError(t, err)
	require.False(t, feasible)
	require.InDelta(t, 1.0, flow, 1e-6)
}

func TestCheckFeasibleDoesNotMutateSharedNetwork(t *testing.T) {
	tg := corridor(t, 3)
	comm := ten.Commodity{ID: "k0", Start: trackgraph.Cell{R: 0, C: 0}, Target: trackgraph.Cell{R: 0, C: 2}}
	net, err := ten.Build(tg, 6, 1, []ten.Commodity{comm})
	require.NoError(t, err)

	before := net.Core().EdgeCount()
	_, _, err = maxflow.CheckFeasible(net)
	require.NoError(t, err)
	require.Equal(t, before, net.Core().EdgeCount())
}
