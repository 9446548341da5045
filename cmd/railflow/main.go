// Command railflow demonstrates solving a multi-agent rail routing problem
// end to end: decode a grid and agent list with gridio, solve with solver,
// and print each commodity's resulting plan. This is a demonstration
// harness, not the product surface described in spec.md §1's Non-goals —
// the actual simulator/executor integration remains external.
//
// Scenario: a single-track, five-cell east-west corridor with no siding.
// Two agents approach from opposite ends; one must wait a layer for the
// other to clear the shared cells before it can proceed.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/katalvlaran/railflow/celldecode"
	"github.com/katalvlaran/railflow/gridio"
	"github.com/katalvlaran/railflow/solver"
	"github.com/katalvlaran/railflow/trackgraph"
)

const straightEW uint16 = (1 << 8) | (4 << 0)

func main() {
	// 1) Build the corridor grid.
	grid := gridio.Grid{
		{straightEW, straightEW, straightEW, straightEW, straightEW},
	}

	// 2) Two head-on agents.
	agents := []gridio.Agent{
		{ID: "east", Start: trackgraph.Cell{R: 0, C: 0}, Direction: celldecode.E, Target: trackgraph.Cell{R: 0, C: 4}, Speed: 1},
		{ID: "west", Start: trackgraph.Cell{R: 0, C: 4}, Direction: celldecode.W, Target: trackgraph.Cell{R: 0, C: 0}, Speed: 1},
	}

	// 3) Decode, solve, and print the plan per commodity.
	tg, commodities, err := gridio.Decode(grid, agents)
	if err != nil {
		log.Fatalf("decode: %v", err)
	}

	result, err := solver.Solve(tg, commodities)
	if err != nil {
		log.Fatalf("solve: %v", err)
	}

	for _, a := range agents {
		cp := result[a.ID]
		fmt.Printf("%s: %s (score %.0f)\n", a.ID, cp.Status, cp.Score)
		for _, c := range cp.Cells {
			fmt.Printf("  (%d,%d)\n", c.R, c.C)
		}
	}

	if err := solver.DumpJSON(os.Stdout, grid, agents, result); err != nil {
		log.Fatalf("dump: %v", err)
	}
}
