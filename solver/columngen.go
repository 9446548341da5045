package solver

import (
	"errors"

	"github.com/katalvlaran/railflow/initsol"
	"github.com/katalvlaran/railflow/kshortest"
	"github.com/katalvlaran/railflow/master"
	"github.com/katalvlaran/railflow/pricing"
	"github.com/katalvlaran/railflow/ten"
)

// solveColumnGeneration runs spec.md §4.8's loop verbatim:
//
//	paths <- initial_feasible_solution()
//	master.build(paths)
//	loop:
//	   master.solve_relaxation()
//	   duals <- master.dual_values()
//	   (new, improved) <- pricing.columns_to_add(duals, ...)
//	   if not improved: break
//	   master.add_column(new)
//	master.solve_ip()
//	return master.extract_solution()
//
// against the explicit state machine of spec.md §4.11: Built→Relaxed once
// up front, then Relaxed→Priced/Priced→Relaxed each round a pricing call
// finds improving columns, Priced→Done when it finds none, or
// Relaxed→Done if MaxColumnGenRounds cuts the loop short first. Either
// Done path is followed by the one terminal solve_ip() spec.md §4.11
// associates with reaching Done.
func solveColumnGeneration(net *ten.Network, cfg Config) (map[string]master.Assignment, error) {
	initial, err := initsol.Generate(net, 0, initsol.WithBatchSize(cfg.KShortest))
	if err != nil {
		return nil, err
	}

	m, err := master.Build(net, initial)
	if err != nil {
		return nil, err
	}

	pr := pricing.New(net, pricing.WithAlgorithm(cfg.PricingAlgorithm))
	sm := newStateMachine()
	if err := sm.transition(StateRelaxed); err != nil {
		return nil, err
	}

	for round := 0; ; round++ {
		if err := checkCancel(cfg.Ctx); err != nil {
			return nil, err
		}

		duals, _, err := m.SolveRelaxation()
		if err != nil {
			return nil, err
		}

		if cfg.MaxColumnGenRounds > 0 && round >= cfg.MaxColumnGenRounds {
			if err := sm.transition(StateDone); err != nil {
				return nil, err
			}

			break
		}

		if err := sm.transition(StatePriced); err != nil {
			return nil, err
		}

		if err := checkCancel(cfg.Ctx); err != nil {
			return nil, err
		}

		batch, err := pr.Price(duals)
		if err != nil {
			return nil, err
		}

		if len(batch) == 0 {
			if err := sm.transition(StateDone); err != nil {
				return nil, err
			}

			break
		}

		columns := make(map[string]kshortest.Path, len(batch))
		for id, r := range batch {
			var weight int64
			for _, eid := range r.Path.EdgeIDs {
				if e, err := net.Core().GetEdge(eid); err == nil {
					weight += e.Weight
				}
			}
			columns[id] = kshortest.Path{Nodes: r.Path.Nodes, EdgeIDs: r.Path.EdgeIDs, Weight: weight}
		}
		if _, err := m.AddColumn(columns); err != nil {
			if !errors.Is(err, master.ErrDuplicateBatch) {
				return nil, err
			}
			if err := sm.transition(StateDone); err != nil {
				return nil, err
			}

			break
		}

		if err := sm.transition(StateRelaxed); err != nil {
			return nil, err
		}
	}

	assignments, _, err := m.SolveIP()
	if err != nil {
		return nil, err
	}

	return assignments, nil
}
