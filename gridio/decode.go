package gridio

import (
	"fmt"

	"github.com/katalvlaran/railflow/ten"
	"github.com/katalvlaran/railflow/trackgraph"
)

// Decode builds the track graph from grid (propagating trackgraph.Build's
// ErrEmptyGrid/ErrNonRectangularGrid, spec.md §7's *InvalidGrid* kind
// unchanged) and turns agents into commodities against it, validating each
// agent's start and target cell per spec.md §7's *InvalidAgent* kind.
// Commodity.InitialDir is always populated from the agent's decoded
// heading; solver.Config's UseDirection option decides whether a solve
// actually honors it.
func Decode(grid Grid, agents []Agent) (*trackgraph.Graph, []ten.Commodity, error) {
	tg, err := trackgraph.Build(grid)
	if err != nil {
		return nil, nil, err
	}

	commodities := make([]ten.Commodity, len(agents))
	for i, a := range agents {
		if err := validateAgent(tg, a); err != nil {
			return nil, nil, err
		}

		dir := a.Direction
		commodities[i] = ten.Commodity{
			ID:         a.ID,
			Start:      a.Start,
			Target:     a.Target,
			InitialDir: &dir,
		}
	}

	return tg, commodities, nil
}

func validateAgent(tg *trackgraph.Graph, a Agent) error {
	if !tg.HasCell(a.Start) {
		return fmt.Errorf("%w: agent %q start %v is empty", ErrInvalidAgent, a.ID, a.Start)
	}
	if !tg.HasCell(a.Target) {
		return fmt.Errorf("%w: agent %q target %v is empty", ErrInvalidAgent, a.ID, a.Target)
	}
	if a.Speed <= 0 || a.Speed > 1 {
		return fmt.Errorf("%w: agent %q speed %g outside (0,1]", ErrInvalidAgent, a.ID, a.Speed)
	}

	return nil
}
