package bnb

import (
	"math"
	"time"

	"github.com/katalvlaran/railflow/internal/simplex"
)

// fixState is one variable's branch state: unfixed, or fixed to 0 or 1.
type fixState int8

const (
	unfixed fixState = -1
	fixedTo0 fixState = 0
	fixedTo1 fixState = 1
)

// engine holds all search data and policy, mirroring the teacher's
// dedicated bbEngine: explicit fields instead of captured closures, so
// search state stays predictable across the recursive dfs calls.
type engine struct {
	n    int
	rows []simplex.Row
	cost []float64

	maxNodes int
	nodes    int

	useDeadline bool
	deadline    time.Time

	fixed []fixState

	bestX    []int
	bestObj  float64
	foundAny bool

	limitHit bool
}

// budgetExceeded performs a cheap, exact node-count check and
// (only when a deadline is configured) a wall-clock check. Unlike the
// teacher's sparse every-4096-nodes sampling, bnb trees in this package are
// small enough (commodity counts and path-pool sizes bounded by solver's
// column-generation loop) that checking every node costs nothing material.
func (e *engine) budgetExceeded() bool {
	e.nodes++
	if e.nodes > e.maxNodes {
		return true
	}
	if e.useDeadline && time.Now().After(e.deadline) {
		return true
	}

	return false
}

// relax solves the LP relaxation of the current fixed assignment: columns
// fixed to 1 are folded into the row RHS and objective constant instead of
// being solved for, columns fixed to 0 are simply dropped, and only the
// remaining free columns are handed to internal/simplex. Returns the
// values of every variable (fixed or solved), the objective bound, and
// whether the reduced problem is feasible at all (a fixed-to-1 assignment
// alone can already exceed a row's RHS).
func (e *engine) relax() (values []float64, bound float64, feasible bool) {
	free := make([]int, 0, e.n)
	for i, fs := range e.fixed {
		if fs == unfixed {
			free = append(free, i)
		}
	}

	var constant float64
	for i, fs := range e.fixed {
		if fs == fixedTo1 {
			constant += e.cost[i]
		}
	}

	reducedRows := make([]simplex.Row, len(e.rows))
	for ri, row := range e.rows {
		var fixedContribution float64
		for i, fs := range e.fixed {
			if fs == fixedTo1 {
				fixedContribution += row.Coeffs[i]
			}
		}
		rhs := row.RHS - fixedContribution
		if row.Kind == simplex.LE {
			if rhs < -epsilon {
				return nil, 0, false
			}
			if rhs < 0 {
				rhs = 0
			}
		}

		coeffs := make([]float64, len(free))
		for j, orig := range free {
			coeffs[j] = row.Coeffs[orig]
		}
		reducedRows[ri] = simplex.Row{Coeffs: coeffs, RHS: rhs, Kind: row.Kind}
	}

	reducedCost := make([]float64, len(free))
	for j, orig := range free {
		reducedCost[j] = e.cost[orig]
	}

	sol, err := simplex.Solve(simplex.Problem{NumVars: len(free), Rows: reducedRows, Cost: reducedCost})
	if err != nil {
		return nil, 0, false
	}

	values = make([]float64, e.n)
	for i, fs := range e.fixed {
		if fs == fixedTo1 {
			values[i] = 1
		}
	}
	for j, orig := range free {
		values[orig] = sol.X[j]
	}

	return values, constant + sol.Objective, true
}

// firstFractional returns the index of the first free (unfixed) variable
// whose relaxed value is not within epsilon of an integer, matching
// Bland's-rule-style determinism: always branch on the lowest index, which
// both keeps search reproducible and avoids any tie-breaking ambiguity.
func (e *engine) firstFractional(values []float64) (int, bool) {
	for i, fs := range e.fixed {
		if fs != unfixed {
			continue
		}
		v := values[i]
		if v > epsilon && v < 1-epsilon {
			return i, true
		}
	}

	return -1, false
}

// search is the core recursive DFS: solve the relaxation at this node,
// prune by bound, and either record an integral incumbent or branch on the
// first fractional free variable (try fixedTo1 before fixedTo0, since a
// path or arc already favored by the LP is more likely part of the
// eventual optimum and tightens the incumbent sooner).
func (e *engine) search() {
	if e.limitHit {
		return
	}
	if e.budgetExceeded() {
		e.limitHit = true

		return
	}

	values, bound, feasible := e.relax()
	if !feasible {
		return
	}
	if e.foundAny && bound >= e.bestObj-epsilon {
		return
	}

	j, hasFractional := e.firstFractional(values)
	if !hasFractional {
		var obj float64
		x := make([]int, e.n)
		for i, v := range values {
			if v > 0.5 {
				x[i] = 1
				obj += e.cost[i]
			}
		}
		if !e.foundAny || obj < e.bestObj-epsilon {
			e.bestObj = obj
			e.bestX = x
			e.foundAny = true
		}

		return
	}

	e.fixed[j] = fixedTo1
	e.search()
	e.fixed[j] = fixedTo0
	e.search()
	e.fixed[j] = unfixed
}

// Solve runs the branch-and-bound search to proven optimality.
func Solve(p Problem) (Solution, error) {
	if err := validate(p); err != nil {
		return Solution{}, err
	}

	maxNodes := p.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	e := &engine{
		n:        p.NumVars,
		rows:     p.Rows,
		cost:     p.Cost,
		maxNodes: maxNodes,
		fixed:    make([]fixState, p.NumVars),
		bestObj:  math.Inf(1),
	}
	for i := range e.fixed {
		e.fixed[i] = unfixed
	}
	if p.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(p.TimeLimit)
	}

	e.search()

	if e.limitHit {
		if e.useDeadline && time.Now().After(e.deadline) {
			return Solution{}, ErrTimeLimit
		}

		return Solution{}, ErrNodeLimit
	}
	if !e.foundAny {
		return Solution{}, ErrNoFeasibleSolution
	}

	return Solution{X: e.bestX, Objective: e.bestObj}, nil
}
