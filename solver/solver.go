package solver

import (
	"fmt"

	"github.com/katalvlaran/railflow/master"
	"github.com/katalvlaran/railflow/plan"
	"github.com/katalvlaran/railflow/ten"
	"github.com/katalvlaran/railflow/trackgraph"
)

// Solve runs the full pipeline: drop starting-cell collisions (spec.md
// §4.10's edge case), build the TEN over the admissible commodities, then
// dispatch to column generation or the arc-formulation alternative per
// cfg.Method, and extract the final per-commodity cell-sequence plan.
func Solve(tg *trackgraph.Graph, commodities []ten.Commodity, opts ...Option) (plan.Result, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	horizon := cfg.Horizon
	if horizon <= 0 {
		horizon = ten.DefaultHorizon(tg.Width, tg.Height)
	}

	order := make([]string, len(commodities))
	for i, c := range commodities {
		order[i] = c.ID
	}

	admissible, dropped := dropStartCollisions(commodities)
	if !cfg.UseDirection {
		admissible = stripInitialDir(admissible)
	}

	net, err := ten.Build(tg, horizon, cfg.WaitWeight, admissible)
	if err != nil {
		return nil, err
	}

	var assignments map[string]master.Assignment
	switch cfg.Method {
	case ColumnGeneration:
		assignments, err = solveColumnGeneration(net, cfg)
	case ArcFormulation:
		assignments, err = solveArcFormulation(net, cfg)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, cfg.Method)
	}
	if err != nil {
		return nil, err
	}

	return plan.Extract(net, order, assignments, dropped), nil
}

// dropStartCollisions implements spec.md §4.10's "multiple agents sharing
// a starting cell at layer 0" edge case: a commodity's source connector
// only wires into time layer 0 (ten.Build), so two commodities starting in
// the same cell cannot both depart at t=0 and cannot delay below t=0 to
// make room for each other — the collision is infeasible by construction,
// not just by LP outcome. The first commodity (by input order) is kept;
// the rest are dropped before the TEN is even built for them.
func dropStartCollisions(commodities []ten.Commodity) ([]ten.Commodity, map[string]bool) {
	seen := make(map[trackgraph.Cell]bool, len(commodities))
	dropped := make(map[string]bool)
	admissible := make([]ten.Commodity, 0, len(commodities))
	for _, c := range commodities {
		if seen[c.Start] {
			dropped[c.ID] = true
			continue
		}
		seen[c.Start] = true
		admissible = append(admissible, c)
	}

	return admissible, dropped
}

// stripInitialDir clears every commodity's InitialDir, letting its source
// connector wire to every out-face of its starting cell regardless of
// whichever heading the caller decoded, per cfg.UseDirection == false.
func stripInitialDir(commodities []ten.Commodity) []ten.Commodity {
	out := make([]ten.Commodity, len(commodities))
	for i, c := range commodities {
		c.InitialDir = nil
		out[i] = c
	}

	return out
}
