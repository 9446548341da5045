package graphcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/railflow/internal/graphcore"
)

func TestAddEdgeAndNeighbors(t *testing.T) {
	g := graphcore.NewGraph(graphcore.WithWeighted())
	_, err := g.AddEdge("A", "B", 3, 1)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "C", 5, 1)
	require.NoError(t, err)

	require.True(t, g.HasVertex("A"))
	require.True(t, g.HasEdge("A", "B"))
	require.False(t, g.HasEdge("B", "A"))

	neighbors, err := g.Neighbors("A")
	require.NoError(t, err)
	require.Len(t, neighbors, 2)
}

func TestSelfLoopRequiresOption(t *testing.T) {
	g := graphcore.NewGraph()
	_, err := g.AddEdge("A", "A", 0, 1)
	require.ErrorIs(t, err, graphcore.ErrLoopNotAllowed)

	g2 := graphcore.NewGraph(graphcore.WithLoops())
	id, err := g2.AddEdge("A", "A", 0, 1)
	require.NoError(t, err)
	require.NotEmpty(t, id)
}

func TestEdgesDeterministicOrder(t *testing.T) {
	g := graphcore.NewGraph()
	for i := 0; i < 5; i++ {
		_, _ = g.AddEdge("A", "B", 0, 1)
	}
	edges := g.Edges()
	require.Len(t, edges, 5)
	for i := 1; i < len(edges); i++ {
		require.Less(t, edges[i-1].ID, edges[i].ID)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := graphcore.NewGraph()
	eid, _ := g.AddEdge("A", "B", 0, 1)
	require.NoError(t, g.RemoveEdge(eid))
	require.False(t, g.HasEdge("A", "B"))
	require.ErrorIs(t, g.RemoveEdge(eid), graphcore.ErrEdgeNotFound)
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	g := graphcore.NewGraph(graphcore.WithWeighted())
	_, err := g.AddEdge("A", "B", 2, 1)
	require.NoError(t, err)

	clone := g.Clone()
	_, err = clone.AddEdge("B", "C", 1, 1)
	require.NoError(t, err)

	require.True(t, clone.HasEdge("B", "C"))
	require.False(t, g.HasEdge("B", "C"), "mutating the clone must not affect the original")
	require.Equal(t, g.EdgeCount()+1, clone.EdgeCount())
}
