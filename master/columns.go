package master

import "github.com/katalvlaran/railflow/kshortest"

// AddColumn registers new candidate paths per spec.md §4.6's add_column:
// for each (commodity, path) pair, silently reject it if its edge
// sequence duplicates an already-registered path for that commodity
// (including the eliminated base path itself), otherwise append a new
// free variable and activate any restriction its path newly touches.
// Returns the count of genuinely new columns; if batch is non-empty but
// every entry was a duplicate, returns ErrDuplicateBatch.
func (m *Master) AddColumn(batch map[string]kshortest.Path) (int, error) {
	added := 0
	for id, p := range batch {
		if _, ok := m.commodityIndex[id]; !ok {
			return added, ErrUnknownCommodity
		}

		key := edgeKey(p.EdgeIDs)
		if m.keysByComm[id][key] {
			continue
		}
		m.keysByComm[id][key] = true

		m.vars = append(m.vars, variable{commodityID: id, path: p, cost: pathCost(p), key: key})
		for ci := range touchedConstraints(m.net, p) {
			m.activeConstraints[ci] = true
		}
		added++
	}

	if added == 0 && len(batch) > 0 {
		return 0, ErrDuplicateBatch
	}

	return added, nil
}

// ActiveConstraints returns the sorted indices of constraints currently
// touched by some registered variable (base or free), matching spec.md
// §4.6's "active_constraints()" used by the orchestration loop.
func (m *Master) ActiveConstraints() []int {
	return m.activeConstraintOrder()
}
