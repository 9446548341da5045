package solver

import (
	"encoding/json"
	"io"

	"github.com/katalvlaran/railflow/gridio"
	"github.com/katalvlaran/railflow/plan"
)

// DumpStats summarizes a solve's outcome across every commodity.
type DumpStats struct {
	TotalScore float64 `json:"total_score"`
	Dispatched int     `json:"dispatched"`
	Dropped    int     `json:"dropped"`
	Infeasible int     `json:"infeasible"`
}

// DumpRecord is spec.md §6's optional persistence shape: "JSON dump of
// {agents, grid, paths, score, stats}".
type DumpRecord struct {
	Agents []gridio.Agent         `json:"agents"`
	Grid   gridio.Grid            `json:"grid"`
	Paths  map[string][][2]int    `json:"paths"`
	Status map[string]string      `json:"status"`
	Score  map[string]float64     `json:"score"`
	Stats  DumpStats              `json:"stats"`
}

// DumpJSON writes result, plus the grid and agents that produced it, as a
// DumpRecord, matching spec.md §6's Persistence note.
func DumpJSON(w io.Writer, grid gridio.Grid, agents []gridio.Agent, result plan.Result) error {
	rec := DumpRecord{
		Agents: agents,
		Grid:   grid,
		Paths:  make(map[string][][2]int, len(result)),
		Status: make(map[string]string, len(result)),
		Score:  make(map[string]float64, len(result)),
	}

	for id, cp := range result {
		cells := make([][2]int, len(cp.Cells))
		for i, c := range cp.Cells {
			cells[i] = [2]int{c.R, c.C}
		}
		rec.Paths[id] = cells
		rec.Status[id] = cp.Status.String()
		rec.Score[id] = cp.Score
		rec.Stats.TotalScore += cp.Score
		switch cp.Status {
		case plan.StatusOK:
			rec.Stats.Dispatched++
		case plan.StatusDropped:
			rec.Stats.Dropped++
		case plan.StatusInfeasible:
			rec.Stats.Infeasible++
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rec)
}
