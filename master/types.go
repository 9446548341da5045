// Package master implements the restricted master problem of spec.md §4.6:
// a set-partitioning-style LP/IP over binary path variables x_{k,p}, one
// per candidate path per commodity, with a unit-flow row per commodity and
// a restriction row per active constraint set.
//
// Reformulation note: internal/simplex requires every row to start
// RHS >= 0 under the all-slack basis (no Phase I), which rules out
// representing the unit-flow equality Σ_p x_{k,p} = 1 directly. Instead,
// each commodity's initsol-provided starting path is kept as an implicit,
// non-decision "base" variable: x_{base_k} = 1 - Σ_{p ∈ free(k)} x_{k,p}.
// Substituting this into the unit-flow row turns it into
// Σ_{free(k)} x_{k,p} ≤ 1, exactly the shape internal/simplex accepts, and
// substituting it into every restriction row R shifts that row's
// coefficients by -1 for every free variable of a commodity whose base
// path touches R (switching off the base path frees R, regardless of
// which replacement path is chosen) and its RHS by -1 if some base path
// already occupies R. This is mathematically identical to the
// original equality formulation, just reparameterized to fit a Phase-I-
// free solver.
package master

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/railflow/initsol"
	"github.com/katalvlaran/railflow/kshortest"
	"github.com/katalvlaran/railflow/ten"
)

// ErrUnknownCommodity indicates a column batch named a commodity absent
// from the network the Master was built from.
var ErrUnknownCommodity = errors.New("master: unknown commodity")

// ErrDuplicateBatch indicates add_column's entire batch consisted of
// paths already registered for their commodity (spec.md §4.6: "raise if
// the batch adds only duplicates").
var ErrDuplicateBatch = errors.New("master: column batch contained only duplicate paths")

// variable is one free (non-base) candidate path for a commodity.
type variable struct {
	commodityID string
	path        kshortest.Path
	cost        float64 // p.Weight, per spec.md §4.6
	key         string  // edge-sequence dedupe key
}

// Master holds the restricted master problem's variables and constraints.
type Master struct {
	net *ten.Network

	order          []string       // commodity IDs, in build order
	commodityIndex map[string]int // commodity ID -> index into order

	basePath    map[string]kshortest.Path // commodity ID -> eliminated base path
	baseCost    map[string]float64
	baseTouches map[string]map[int]bool // commodity ID -> constraint index -> touched

	vars        []variable                 // free variables, index = column index
	keysByComm  map[string]map[string]bool // commodity ID -> edge-sequence key -> present
	activeConstraints map[int]bool         // constraint index -> active (touched by any variable)
}

// DualValues holds the dual vector spec.md §4.6/§4.7 requires, already
// corrected for the base-path elimination so pricing can use spec.md
// §4.7's reduced-cost formula (W*_k < σ_k) without knowing about it.
type DualValues struct {
	// Restriction duals, non-positive, indexed by the same constraint
	// index as ten.Network.Constraints (only active constraints carry a
	// nonzero dual; inactive ones are implicitly 0 — no row exists yet).
	Restriction map[int]float64
	// Commodity thresholds sigma_k, indexed by commodity ID, already
	// shifted back by the eliminated base path's cost.
	Commodity map[string]float64
}

// Assignment is one commodity's chosen path plus its hop-count cost.
type Assignment struct {
	Path kshortest.Path
	Cost float64
}

func edgeKey(edgeIDs []string) string {
	key := ""
	for i, e := range edgeIDs {
		if i > 0 {
			key += "|"
		}
		key += e
	}

	return key
}

// pathCost is spec.md §4.6's cost(p): the sum of edge weights along p, i.e.
// its number of time-respecting hops. The zero-weight source/sink
// connector edges (ten/build.go's wireCommodity) are included in
// p.EdgeIDs but contribute 0 to p.Weight, so this is NOT len(p.EdgeIDs).
func pathCost(p kshortest.Path) float64 {
	return float64(p.Weight)
}

func touchedConstraints(net *ten.Network, p kshortest.Path) map[int]bool {
	touched := make(map[int]bool)
	for _, eid := range p.EdgeIDs {
		for _, ci := range net.EdgeToConstraint[eid] {
			touched[ci] = true
		}
	}

	return touched
}

// Build instantiates the master problem from one base path per commodity,
// per spec.md §4.6's build(initial_solution).
func Build(net *ten.Network, initial *initsol.Result) (*Master, error) {
	m := &Master{
		net:               net,
		order:             append([]string(nil), initial.Order...),
		commodityIndex:     make(map[string]int, len(initial.Order)),
		basePath:          make(map[string]kshortest.Path, len(initial.Order)),
		baseCost:          make(map[string]float64, len(initial.Order)),
		baseTouches:       make(map[string]map[int]bool, len(initial.Order)),
		keysByComm:        make(map[string]map[string]bool, len(initial.Order)),
		activeConstraints: make(map[int]bool),
	}

	for i, id := range initial.Order {
		path, ok := initial.Paths[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q missing from initial solution", ErrUnknownCommodity, id)
		}
		m.commodityIndex[id] = i
		m.basePath[id] = path
		m.baseCost[id] = pathCost(path)
		touched := touchedConstraints(net, path)
		m.baseTouches[id] = touched
		for ci := range touched {
			m.activeConstraints[ci] = true
		}
		m.keysByComm[id] = map[string]bool{edgeKey(path.EdgeIDs): true}
	}

	return m, nil
}
