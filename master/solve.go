package master

import (
	"sort"

	"github.com/katalvlaran/railflow/internal/bnb"
	"github.com/katalvlaran/railflow/internal/simplex"
)

func (m *Master) activeConstraintOrder() []int {
	order := make([]int, 0, len(m.activeConstraints))
	for ci := range m.activeConstraints {
		order = append(order, ci)
	}
	sort.Ints(order)

	return order
}

// varTouches caches, for every current free variable, which constraints
// its path touches; built fresh per solve since vars only grow between
// solves (add_column), never shrink, and the set is cheap to recompute.
func (m *Master) varTouches() []map[int]bool {
	touches := make([]map[int]bool, len(m.vars))
	for j, v := range m.vars {
		touches[j] = touchedConstraints(m.net, v.path)
	}

	return touches
}

// buildRows assembles the <=-only row set described in types.go's package
// doc: one row per active restriction (coefficient touches_R(p)-
// touches_R(base_k) per free variable, RHS reduced by 1 if some base path
// already occupies R), followed by one row per commodity (coefficient 1
// for its own free variables, RHS 1).
func (m *Master) buildRows(touches []map[int]bool) ([]simplex.Row, []int) {
	constraintOrder := m.activeConstraintOrder()
	rows := make([]simplex.Row, 0, len(constraintOrder)+len(m.order))

	for _, ci := range constraintOrder {
		coeffs := make([]float64, len(m.vars))
		rhs := 1.0
		for _, id := range m.order {
			if m.baseTouches[id][ci] {
				rhs--
			}
		}
		for j, v := range m.vars {
			var c float64
			if touches[j][ci] {
				c++
			}
			if m.baseTouches[v.commodityID][ci] {
				c--
			}
			coeffs[j] = c
		}
		rows = append(rows, simplex.Row{Coeffs: coeffs, RHS: rhs})
	}

	for _, id := range m.order {
		coeffs := make([]float64, len(m.vars))
		for j, v := range m.vars {
			if v.commodityID == id {
				coeffs[j] = 1
			}
		}
		rows = append(rows, simplex.Row{Coeffs: coeffs, RHS: 1})
	}

	return rows, constraintOrder
}

func (m *Master) cost() []float64 {
	cost := make([]float64, len(m.vars))
	for j, v := range m.vars {
		cost[j] = v.cost - m.baseCost[v.commodityID]
	}

	return cost
}

func (m *Master) baseCostTotal() float64 {
	var total float64
	for _, id := range m.order {
		total += m.baseCost[id]
	}

	return total
}

// SolveRelaxation solves the LP relaxation and returns the corrected dual
// vector plus the true objective value (the eliminated base paths' cost
// is folded back in). Dual correction for commodity k accounts for the
// restriction rows the eliminated base path itself touches: adopting a
// new path frees those rows too, so a candidate's pricing threshold must
// include their shadow price, not just the commodity row's own dual.
func (m *Master) SolveRelaxation() (DualValues, float64, error) {
	touches := m.varTouches()
	rows, constraintOrder := m.buildRows(touches)
	problem := simplex.Problem{NumVars: len(m.vars), Rows: rows, Cost: m.cost()}

	sol, err := simplex.Solve(problem)
	if err != nil {
		return DualValues{}, 0, err
	}

	duals := DualValues{Restriction: make(map[int]float64, len(constraintOrder)), Commodity: make(map[string]float64, len(m.order))}
	for i, ci := range constraintOrder {
		duals.Restriction[ci] = sol.Duals[i]
	}
	for i, id := range m.order {
		rowDual := sol.Duals[len(constraintOrder)+i]
		var baseOccupancy float64
		for ci := range m.baseTouches[id] {
			baseOccupancy += duals.Restriction[ci]
		}
		duals.Commodity[id] = m.baseCost[id] + rowDual - baseOccupancy
	}

	return duals, m.baseCostTotal() + sol.Objective, nil
}

// SolveIP solves the integer model and reports the chosen path per
// commodity: whichever free variable (if any) is 1 in the optimal 0/1
// solution, or the eliminated base path if none was chosen (the
// commodity row's binding slack — i.e. the base path stays selected).
func (m *Master) SolveIP() (map[string]Assignment, float64, error) {
	touches := m.varTouches()
	rows, _ := m.buildRows(touches)
	problem := bnb.Problem{NumVars: len(m.vars), Rows: rows, Cost: m.cost()}

	sol, err := bnb.Solve(problem)
	if err != nil {
		return nil, 0, err
	}

	chosen := make(map[string]int, len(m.order)) // commodity ID -> chosen var index, or -1 for base
	for _, id := range m.order {
		chosen[id] = -1
	}
	for j, x := range sol.X {
		if x == 1 {
			chosen[m.vars[j].commodityID] = j
		}
	}

	result := make(map[string]Assignment, len(m.order))
	for _, id := range m.order {
		if j := chosen[id]; j >= 0 {
			result[id] = Assignment{Path: m.vars[j].path, Cost: m.vars[j].cost}
		} else {
			result[id] = Assignment{Path: m.basePath[id], Cost: m.baseCost[id]}
		}
	}

	return result, m.baseCostTotal() + sol.Objective, nil
}
