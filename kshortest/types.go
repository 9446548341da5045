// Package kshortest finds up to k shortest paths between a source and a
// target vertex, using repeated Dijkstra runs with weight inflation on the
// previously found path (spec.md §4.4): grounded on the lazy-decrease-key,
// min-heap Dijkstra shape of the teacher's dijkstra package, generalized
// from a single-source-to-all-vertices run into a single-pair, repeated
// run with an inflation overlay instead of mutating the graph itself.
package kshortest

import (
	"errors"
	"math"
)

// ErrEmptySource indicates an empty source vertex ID was supplied.
var ErrEmptySource = errors.New("kshortest: source vertex ID is empty")

// ErrEmptyTarget indicates an empty target vertex ID was supplied.
var ErrEmptyTarget = errors.New("kshortest: target vertex ID is empty")

// ErrSourceNotFound indicates the source vertex does not exist in the graph.
var ErrSourceNotFound = errors.New("kshortest: source vertex not found")

// ErrBadK indicates a non-positive k was requested.
var ErrBadK = errors.New("kshortest: k must be >= 1")

// unreachable is the sentinel distance for a vertex Dijkstra never settles.
const unreachable = int64(math.MaxInt64)

// Path is one source-to-target path: the ordered vertex IDs visited and the
// graphcore edge IDs traversed, together with its weight under the baseline
// (uninflated) edge weights.
type Path struct {
	Nodes   []string
	EdgeIDs []string
	Weight  int64
}
