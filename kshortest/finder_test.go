package kshortest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/railflow/internal/graphcore"
	"github.com/katalvlaran/railflow/kshortest"
)

func diamond(t *testing.T) *graphcore.Graph {
	t.Helper()
	g := graphcore.NewGraph(graphcore.WithWeighted())
	_, err := g.AddEdge("A", "B", 1, 1)
	require.NoError(t, err)
	_, err = g.AddEdge("A", "C", 1, 1)
	require.NoError(t, err)
	_, err = g.AddEdge("B", "D", 1, 1)
	require.NoError(t, err)
	_, err = g.AddEdge("C", "D", 1, 1)
	require.NoError(t, err)

	return g
}

func TestFindSingleShortestPath(t *testing.T) {
	g := diamond(t)
	f := kshortest.New(g)
	paths, err := f.Find("A", "D", 1)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	require.Equal(t, int64(2), paths[0].Weight)
	require.Equal(t, []string{"A", "D"}, []string{paths[0].Nodes[0], paths[0].Nodes[len(paths[0].Nodes)-1]})
}

func TestFindInflationYieldsDistinctSecondPath(t *testing.T) {
	g := diamond(t)
	f := kshortest.New(g)
	paths, err := f.Find("A", "D", 2)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	require.NotEqual(t, paths[0].EdgeIDs, paths[1].EdgeIDs)
}

func TestFindKeepsReturningPathsEvenWhenDuplicated(t *testing.T) {
	// A diamond only has two distinct A->D routes, but target never becomes
	// unreachable as weights inflate, so Find keeps returning k paths;
	// duplicate-filtering is explicitly left to the caller (spec.md §4.4).
	g := diamond(t)
	f := kshortest.New(g)
	paths, err := f.Find("A", "D", 5)
	require.NoError(t, err)
	require.Len(t, paths, 5)
}

func TestFindFewerThanKWhenTargetBecomesUnreachable(t *testing.T) {
	g := graphcore.NewGraph(graphcore.WithWeighted())
	_, err := g.AddEdge("A", "B", 1, 1)
	require.NoError(t, err)
	f := kshortest.New(g)
	paths, err := f.Find("A", "Z", 3)
	require.NoError(t, err)
	require.Empty(t, paths)
}

func TestFindRejectsBadInput(t *testing.T) {
	g := diamond(t)
	f := kshortest.New(g)
	_, err := f.Find("", "D", 1)
	require.ErrorIs(t, err, kshortest.ErrEmptySource)
	_, err = f.Find("A", "D", 0)
	require.ErrorIs(t, err, kshortest.ErrBadK)
	_, err = f.Find("Z", "D", 1)
	require.ErrorIs(t, err, kshortest.ErrSourceNotFound)
}
