package solver

import (
	"sort"
	"strings"

	"github.com/katalvlaran/railflow/internal/bnb"
	"github.com/katalvlaran/railflow/internal/graphcore"
	"github.com/katalvlaran/railflow/internal/simplex"
	"github.com/katalvlaran/railflow/kshortest"
	"github.com/katalvlaran/railflow/master"
	"github.com/katalvlaran/railflow/maxflow"
	"github.com/katalvlaran/railflow/ten"
)

// arcVar is one binary variable f_{k,e} of spec.md §4.9: commodity k may or
// may not use TEN edge e.
type arcVar struct {
	commodityID string
	edge        *graphcore.Edge
}

// classifyEdges splits the TEN's core edges into the shared pool (move and
// waiting edges, relevant to every commodity) and each commodity's own
// source/sink connector edges (relevant only to that commodity), per
// spec.md §4.9's "excluding irrelevant source/sink connectors of other
// commodities".
func classifyEdges(core *graphcore.Graph) (shared []*graphcore.Edge, ownedBy map[string][]*graphcore.Edge) {
	ownedBy = make(map[string][]*graphcore.Edge)
	for _, e := range core.Edges() {
		switch {
		case strings.HasPrefix(e.From, "src_"):
			id := strings.TrimPrefix(e.From, "src_")
			ownedBy[id] = append(ownedBy[id], e)
		case strings.HasPrefix(e.To, "sink_"):
			id := strings.TrimPrefix(e.To, "sink_")
			ownedBy[id] = append(ownedBy[id], e)
		default:
			shared = append(shared, e)
		}
	}

	return shared, ownedBy
}

func buildArcVariables(net *ten.Network) []arcVar {
	shared, ownedBy := classifyEdges(net.Core())

	var vars []arcVar
	for _, comm := range net.Commodities {
		vars = append(vars, wrap(comm.ID, ownedBy[comm.ID])...)
		vars = append(vars, wrap(comm.ID, shared)...)
	}

	return vars
}

func wrap(commodityID string, edges []*graphcore.Edge) []arcVar {
	vars := make([]arcVar, len(edges))
	for i, e := range edges {
		vars[i] = arcVar{commodityID: commodityID, edge: e}
	}

	return vars
}

// vertexFlow accumulates, per commodity, the variable columns whose edge
// flows into (in) or out of (out) a given TEN vertex.
type vertexFlow struct {
	in  []int
	out []int
}

func buildFlowIndex(vars []arcVar) map[string]map[string]*vertexFlow {
	idx := make(map[string]map[string]*vertexFlow)
	for j, v := range vars {
		byVertex := idx[v.commodityID]
		if byVertex == nil {
			byVertex = make(map[string]*vertexFlow)
			idx[v.commodityID] = byVertex
		}
		if byVertex[v.edge.From] == nil {
			byVertex[v.edge.From] = &vertexFlow{}
		}
		byVertex[v.edge.From].out = append(byVertex[v.edge.From].out, j)
		if byVertex[v.edge.To] == nil {
			byVertex[v.edge.To] = &vertexFlow{}
		}
		byVertex[v.edge.To].in = append(byVertex[v.edge.To].in, j)
	}

	return idx
}

// conservationRows builds one EQ row per (commodity, touched vertex), per
// spec.md §4.9's "flow conservation per node, with external supply +1 at
// s_k, -1 at t_k, 0 elsewhere": inflow - outflow = -supply(v).
func conservationRows(net *ten.Network, numVars int, flowIdx map[string]map[string]*vertexFlow) []simplex.Row {
	var rows []simplex.Row
	for _, comm := range net.Commodities {
		byVertex := flowIdx[comm.ID]
		vertices := make([]string, 0, len(byVertex))
		for v := range byVertex {
			vertices = append(vertices, v)
		}
		sort.Strings(vertices)

		for _, v := range vertices {
			fi := byVertex[v]
			coeffs := make([]float64, numVars)
			for _, j := range fi.in {
				coeffs[j]++
			}
			for _, j := range fi.out {
				coeffs[j]--
			}

			var supply float64
			switch v {
			case ten.SourceID(comm.ID):
				supply = 1
			case ten.SinkID(comm.ID):
				supply = -1
			}
			rows = append(rows, simplex.Row{Coeffs: coeffs, RHS: -supply, Kind: simplex.EQ})
		}
	}

	return rows
}

// capacityRows builds one LE row per shared edge with Σ_k f_{k,e} <= 1
// (spec.md §4.9's capacity constraint); a connector edge belongs to only
// one commodity, so its own {0,1} bound already enforces its capacity and
// needs no extra row.
func capacityRows(vars []arcVar, numVars int) []simplex.Row {
	byEdge := make(map[string][]int)
	var order []string
	for j, v := range vars {
		if _, seen := byEdge[v.edge.ID]; !seen {
			order = append(order, v.edge.ID)
		}
		byEdge[v.edge.ID] = append(byEdge[v.edge.ID], j)
	}
	sort.Strings(order)

	var rows []simplex.Row
	for _, eid := range order {
		js := byEdge[eid]
		if len(js) < 2 {
			continue
		}
		coeffs := make([]float64, numVars)
		for _, j := range js {
			coeffs[j] = 1
		}
		rows = append(rows, simplex.Row{Coeffs: coeffs, RHS: 1})
	}

	return rows
}

// constraintRows builds one LE row per active position/swap constraint set
// (spec.md §4.9's "Σ_k Σ_{e∈P} f_{k,e} <= 1" and "Swap: analogous"),
// covering both since net.Constraints already lifts position and swap
// constraints into the same representation.
func constraintRows(net *ten.Network, vars []arcVar, numVars int) []simplex.Row {
	byConstraint := make(map[int][]int)
	for j, v := range vars {
		for _, ci := range net.EdgeToConstraint[v.edge.ID] {
			byConstraint[ci] = append(byConstraint[ci], j)
		}
	}
	order := make([]int, 0, len(byConstraint))
	for ci := range byConstraint {
		order = append(order, ci)
	}
	sort.Ints(order)

	rows := make([]simplex.Row, 0, len(order))
	for _, ci := range order {
		coeffs := make([]float64, numVars)
		for _, j := range byConstraint[ci] {
			coeffs[j] = 1
		}
		rows = append(rows, simplex.Row{Coeffs: coeffs, RHS: 1})
	}

	return rows
}

func arcCost(vars []arcVar) []float64 {
	cost := make([]float64, len(vars))
	for j, v := range vars {
		cost[j] = float64(v.edge.Weight)
	}

	return cost
}

// solveArcFormulation implements spec.md §4.9: a single IP over per-
// commodity, per-edge binary variables, with maxflow.CheckFeasible as a
// cheap necessary-condition pre-check (SPEC_FULL.md §2) before paying for
// the full branch-and-bound search.
func solveArcFormulation(net *ten.Network, cfg Config) (map[string]master.Assignment, error) {
	if err := checkCancel(cfg.Ctx); err != nil {
		return nil, err
	}

	feasible, _, err := maxflow.CheckFeasible(net)
	if err != nil {
		return nil, err
	}
	if !feasible {
		return nil, ErrInfeasible
	}

	vars := buildArcVariables(net)
	numVars := len(vars)
	flowIdx := buildFlowIndex(vars)

	var rows []simplex.Row
	rows = append(rows, conservationRows(net, numVars, flowIdx)...)
	rows = append(rows, capacityRows(vars, numVars)...)
	rows = append(rows, constraintRows(net, vars, numVars)...)

	problem := bnb.Problem{NumVars: numVars, Rows: rows, Cost: arcCost(vars)}
	sol, err := bnb.Solve(problem)
	if err != nil {
		return nil, err
	}

	return extractArcAssignments(net, vars, sol), nil
}

// extractArcAssignments walks each commodity's chosen unit-flow edges from
// s_k to t_k. Conservation plus unit capacity guarantee the chosen edges
// form a simple path (no branching), and every TEN edge strictly advances
// time, so the walk cannot cycle.
func extractArcAssignments(net *ten.Network, vars []arcVar, sol bnb.Solution) map[string]master.Assignment {
	chosenFrom := make(map[string]map[string]*graphcore.Edge, len(net.Commodities))
	cost := make(map[string]float64, len(net.Commodities))
	for j, x := range sol.X {
		if x != 1 {
			continue
		}
		v := vars[j]
		if chosenFrom[v.commodityID] == nil {
			chosenFrom[v.commodityID] = make(map[string]*graphcore.Edge)
		}
		chosenFrom[v.commodityID][v.edge.From] = v.edge
		cost[v.commodityID] += float64(v.edge.Weight)
	}

	result := make(map[string]master.Assignment, len(net.Commodities))
	for _, comm := range net.Commodities {
		from := chosenFrom[comm.ID]
		if from == nil {
			continue
		}

		sink := ten.SinkID(comm.ID)
		nodes := []string{ten.SourceID(comm.ID)}
		var edgeIDs []string
		cur := nodes[0]
		for cur != sink {
			e, ok := from[cur]
			if !ok {
				break
			}
			edgeIDs = append(edgeIDs, e.ID)
			cur = e.To
			nodes = append(nodes, cur)
		}

		result[comm.ID] = master.Assignment{
			Path: kshortest.Path{Nodes: nodes, EdgeIDs: edgeIDs},
			Cost: cost[comm.ID],
		}
	}

	return result
}
