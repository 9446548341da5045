// Package pricing implements spec.md §4.7's pricing subproblem: reweight
// every TEN edge by the restriction duals the master problem reports, then
// search each commodity's source-to-sink connector for a minimum-weight
// path under the reweighted graph. A commodity's minimum weight W*_k beating
// its threshold sigma_k (master.DualValues.Commodity[k], already corrected
// for the base-path elimination master performs internally) means that
// path has negative reduced cost and is worth adding as a new column.
//
// Grounded on the teacher's dijkstra package for the repeated single-pair
// shortest-path shape (kshortest.Finder generalizes the same teacher code
// for non-negative weights); Bellman-Ford and SPFA themselves have no
// teacher analogue since dijkstra only handles non-negative weights, so
// they are written from scratch in the same style (plain-map distance/
// predecessor tables, graphcore.Graph as the substrate, deterministic
// relaxation order via graphcore's sorted Edges()/Neighbors()) — see
// DESIGN.md for the full grounding note.
//
// Sign convention: the master package reports restriction duals y_R <= 0
// (internal/simplex's dual convention for a <=-row minimization problem).
// Reweighting subtracts them: w'(e) = w(e) - sum_{R touches e} y_R, the
// reduced-cost sign c_p - y^T a_p that master's thresholds are derived
// from. With y_R <= 0 this never lowers an edge below its baseline weight;
// both supported algorithms nonetheless accept negative edge weights.
package pricing

import (
	"errors"
)

// ErrSourceNotFound indicates a commodity's source connector is missing
// from the TEN — build() would have failed first, so this only surfaces
// a caller wiring a Pricer to the wrong Network.
var ErrSourceNotFound = errors.New("pricing: source vertex not found")

// ErrNegativeCycle indicates the reweighted graph contains a negative-
// weight cycle. The TEN's layered, forward-only time structure rules this
// out in practice; both algorithms still detect it defensively rather than
// looping or returning a silently wrong distance.
var ErrNegativeCycle = errors.New("pricing: negative-weight cycle detected")

const epsilon = 1e-9

// Algorithm selects which negative-weight-tolerant shortest-path search
// pricing runs per commodity.
type Algorithm int

const (
	// BellmanFord runs the classic |V|-1 round relaxation.
	BellmanFord Algorithm = iota
	// SPFA runs the queue-based Bellman-Ford-Moore variant, which in
	// practice relaxes far fewer edges on sparse, mostly-acyclic graphs
	// like the TEN.
	SPFA
)

// Options configures a Pricer, following the functional-options pattern of
// the teacher's dijkstra package.
type Options struct {
	Algorithm Algorithm
}

// Option mutates an Options during construction.
type Option func(*Options)

// WithAlgorithm selects the shortest-path algorithm pricing uses.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) { o.Algorithm = a }
}

// DefaultOptions returns Bellman-Ford as the default algorithm.
func DefaultOptions() Options {
	return Options{Algorithm: BellmanFord}
}

// Path is one source-to-target path found under the reweighted graph.
// Weight is the reduced-cost total, not the physical cost. Master takes a
// column's cost from kshortest.Path.Weight, so a caller registering the
// path as a column sets that to the sum of its edges' baseline TEN weights.
type Path struct {
	Nodes   []string
	EdgeIDs []string
	Weight  float64
}
