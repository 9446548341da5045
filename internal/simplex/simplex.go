// Package simplex implements a dense-tableau primal simplex for the
// restricted master problem's LP relaxation (spec.md §4.6): minimize c^T x
// subject to A x <= b, x >= 0, with b >= 0 guaranteed by the caller so the
// all-slack basis is primal feasible and no Phase I is required. Grounded
// on the dense, row-major, bounds-checked matrix conventions of the
// teacher's matrix package (flat backing storage, explicit Rows/Cols,
// fail-fast on shape mismatches) adapted here into a single mutable
// tableau rather than a general-purpose Matrix type, since the simplex
// only ever needs one (m+1)x(n+m+1) buffer.
//
// Rows also support an Equality Kind for the arc-formulation's per-node
// flow-conservation constraints (SPEC_FULL.md §4.9), which a <=-only solver
// cannot express. An EQ row gets a Big-M artificial column instead of a
// free slack, so the all-slack basis stays a valid starting point even for
// callers that mix LE and EQ rows; callers that stay LE-only (master) pay
// nothing extra and keep the Phase-I-free guarantee above.
package simplex

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeRHS indicates a constraint row's right-hand side was negative,
// which would make the all-slack starting basis infeasible; callers must
// guarantee b >= 0 (true of every master-problem row by construction).
var ErrNegativeRHS = errors.New("simplex: constraint RHS must be non-negative")

// ErrUnbounded indicates the entering column had no limiting row, which
// cannot happen for a well-formed master-problem LP (every structural
// variable is bounded via its commodity's unit-flow row) and signals a
// caller bug if it ever triggers.
var ErrUnbounded = errors.New("simplex: problem is unbounded")

// ErrIterationLimit indicates the simplex failed to reach optimality within
// MaxIterations pivots, most likely due to degenerate cycling.
var ErrIterationLimit = errors.New("simplex: iteration limit reached")

// ErrInfeasible indicates an Equality row could not be satisfied: its
// Big-M artificial variable remained positive at optimality. Only EQ rows
// can produce this error; a problem built entirely from LE rows with
// b >= 0 is always feasible at the all-slack basis.
var ErrInfeasible = errors.New("simplex: problem is infeasible")

const epsilon = 1e-9

// DefaultMaxIterations bounds simplex pivots absent an explicit override.
const DefaultMaxIterations = 10_000

// bigM is the Big-M penalty applied to artificial variables introduced for
// Equality rows. Path hop-counts and flow values in this module's callers
// are small integers, so bigM need only be comfortably larger than any
// achievable objective value.
const bigM = 1e7

// RowKind distinguishes an ordinary <= constraint (the default, needing no
// artificial variable since the all-slack basis already satisfies it) from
// an Equality constraint (needs a Big-M artificial variable, since no slack
// can certify feasibility at the start).
type RowKind int

const (
	LE RowKind = iota
	EQ
)

// Problem is a minimization LP: minimize Cost^T x subject to, for each row,
// Coeffs^T x <= RHS (Kind LE) or Coeffs^T x == RHS (Kind EQ); x >= 0. LE
// rows require no Phase I (the all-slack basis is feasible provided
// RHS >= 0, enforced by Solve); EQ rows are handled via Big-M artificial
// variables, so only master's LP (LE-only by construction, see
// internal/simplex's package doc) gets the Phase-I-free guarantee.
type Problem struct {
	NumVars       int
	Rows          []Row
	Cost          []float64
	MaxIterations int // 0 selects DefaultMaxIterations
}

// Row is one constraint, either <= (LE, the default zero value) or == (EQ).
type Row struct {
	Coeffs []float64 // length NumVars
	RHS    float64
	Kind   RowKind
}

// Solution is an optimal basic feasible solution: structural variable
// values, the objective value, and one dual value per row, non-positive
// per the <=-constraint convention (binding rows have a strictly negative
// dual; slack rows have dual 0).
type Solution struct {
	X         []float64
	Objective float64
	Duals     []float64
}

// Solve runs the primal simplex to optimality. Every LE row must have
// RHS >= 0 so its slack can start in the basis; Solve returns
// ErrNegativeRHS otherwise. EQ rows may have any RHS sign: they are
// sign-normalized and start from a Big-M artificial variable.
func Solve(p Problem) (Solution, error) {
	n := p.NumVars
	m := len(p.Rows)
	for i, r := range p.Rows {
		if len(r.Coeffs) != n {
			return Solution{}, fmt.Errorf("simplex: row %d has %d coefficients, want %d", i, len(r.Coeffs), n)
		}
		if r.Kind == LE && r.RHS < 0 {
			return Solution{}, fmt.Errorf("%w: row %d RHS=%g", ErrNegativeRHS, i, r.RHS)
		}
	}
	if len(p.Cost) != n {
		return Solution{}, fmt.Errorf("simplex: cost vector has %d entries, want %d", len(p.Cost), n)
	}

	maxIter := p.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	t := newTableau(n, m, p.Rows, p.Cost)

	for iter := 0; iter < maxIter; iter++ {
		enter, ok := t.chooseEnteringColumn()
		if !ok {
			return t.extractSolution(n, m)
		}

		leaveRow, ok := t.chooseLeavingRow(enter)
		if !ok {
			return Solution{}, ErrUnbounded
		}

		t.pivot(leaveRow, enter)
	}

	return Solution{}, ErrIterationLimit
}

// tableau is the (m+1) x (n+m+1) dense buffer: columns [0,n) structural,
// [n,n+m) one slack-or-artificial column per row, column n+m the RHS; row m
// is the objective (reduced costs). basis[i] names which column is basic in
// row i. An LE row's column n+i is a genuine free slack (cost 0); an EQ
// row's column n+i is a Big-M artificial (cost bigM), since no slack can
// certify feasibility for an equality at the all-zero structural start.
type tableau struct {
	rows, cols int
	data       []float64
	basis      []int
	cost       []float64 // original objective coefficients, length n; kept
	                      // separately because the tableau's own objective
	                      // row is overwritten with reduced costs by pivot.
	artificial []bool // artificial[n+i] true iff row i's column n+i is an
	                   // EQ row's Big-M artificial rather than a free slack.
}

func newTableau(n, m int, rowsIn []Row, cost []float64) *tableau {
	cols := n + m + 1
	rows := m + 1
	costCopy := make([]float64, n)
	copy(costCopy, cost)
	t := &tableau{rows: rows, cols: cols, data: make([]float64, rows*cols), basis: make([]int, m), cost: costCopy, artificial: make([]bool, cols)}

	for i, r := range rowsIn {
		sign := 1.0
		if r.RHS < 0 {
			// Normalize an EQ row's sign so its RHS is non-negative before
			// adding the artificial column; an LE row is never negative
			// here since Solve already rejected that case.
			sign = -1
		}
		for j := 0; j < n; j++ {
			t.set(i, j, sign*r.Coeffs[j])
		}
		t.set(i, n+i, 1) // slack-or-artificial i identity
		t.set(i, cols-1, sign*r.RHS)
		t.basis[i] = n + i
		if r.Kind == EQ {
			t.artificial[n+i] = true
		}
	}
	for j := 0; j < n; j++ {
		t.set(rows-1, j, cost[j])
	}
	for i := 0; i < m; i++ {
		if t.artificial[n+i] {
			t.set(rows-1, n+i, bigM)
		}
	}

	t.canonicalize()

	return t
}

// canonicalize zeroes the objective row's reduced cost for every initially
// basic column. A no-op for LE-only problems, since slack columns start at
// cost 0; required once a Big-M artificial (nonzero cost) starts basic, so
// the objective row reflects reduced costs relative to the current basis
// rather than raw costs.
func (t *tableau) canonicalize() {
	objRow := t.rows - 1
	for i := 0; i < t.rows-1; i++ {
		factor := t.at(objRow, t.basis[i])
		if factor == 0 {
			continue
		}
		for j := 0; j < t.cols; j++ {
			t.set(objRow, j, t.at(objRow, j)-factor*t.at(i, j))
		}
	}
}

func (t *tableau) at(i, j int) float64    { return t.data[i*t.cols+j] }
func (t *tableau) set(i, j int, v float64) { t.data[i*t.cols+j] = v }

// chooseEnteringColumn applies Dantzig's rule: the structural or slack
// column with the most negative reduced cost in the objective row.
func (t *tableau) chooseEnteringColumn() (int, bool) {
	objRow := t.rows - 1
	best := -epsilon
	col := -1
	for j := 0; j < t.cols-1; j++ {
		v := t.at(objRow, j)
		if v < best {
			best = v
			col = j
		}
	}

	return col, col >= 0
}

// chooseLeavingRow runs the minimum-ratio test, breaking ties on the
// smallest basic-variable column index (Bland's rule) to guard against
// cycling on degenerate tableaus.
func (t *tableau) chooseLeavingRow(enter int) (int, bool) {
	best := math.Inf(1)
	row := -1
	for i := 0; i < t.rows-1; i++ {
		a := t.at(i, enter)
		if a <= epsilon {
			continue
		}
		ratio := t.at(i, t.cols-1) / a
		if ratio < best-epsilon || (ratio < best+epsilon && (row == -1 || t.basis[i] < t.basis[row])) {
			best = ratio
			row = i
		}
	}

	return row, row >= 0
}

// pivot performs Gauss-Jordan elimination around (leaveRow, enter) across
// every row including the objective row.
func (t *tableau) pivot(leaveRow, enter int) {
	pivotVal := t.at(leaveRow, enter)
	for j := 0; j < t.cols; j++ {
		t.set(leaveRow, j, t.at(leaveRow, j)/pivotVal)
	}
	for i := 0; i < t.rows; i++ {
		if i == leaveRow {
			continue
		}
		factor := t.at(i, enter)
		if factor == 0 {
			continue
		}
		for j := 0; j < t.cols; j++ {
			t.set(i, j, t.at(i, j)-factor*t.at(leaveRow, j))
		}
	}
	t.basis[leaveRow] = enter
}

func (t *tableau) extractSolution(n, m int) (Solution, error) {
	x := make([]float64, n)
	for i, b := range t.basis {
		if b < n {
			x[b] = t.at(i, t.cols-1)
		} else if t.artificial[b] && t.at(i, t.cols-1) > epsilon {
			// An EQ row's artificial remained basic and positive: the
			// equality could not be driven to exact satisfaction, so the
			// problem has no feasible point.
			return Solution{}, ErrInfeasible
		}
	}

	objRow := t.rows - 1
	duals := make([]float64, m)
	for i := 0; i < m; i++ {
		duals[i] = -t.at(objRow, n+i)
	}

	var obj float64
	for j := 0; j < n; j++ {
		obj += x[j] * t.cost[j]
	}

	return Solution{X: x, Objective: obj, Duals: duals}, nil
}
