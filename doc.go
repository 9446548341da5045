// Package railflow solves multi-agent rail routing over a time-expanded
// network: decode a grid and a set of agents, build conflict-free paths
// that respect single-track occupancy and no-swap constraints, and report
// each agent's plan.
//
// Under the hood, everything is organized under focused subpackages:
//
//	celldecode/ — 16-bit rail-cell transition codes -> per-direction moves
//	trackgraph/ — grid -> face-node graph, plus position/swap constraints
//	ten/        — time expansion of a track graph into a layered network
//	kshortest/  — repeated shortest-path search with weight inflation
//	initsol/    — greedy initial feasible solution, one path per commodity
//	master/     — column-generation restricted master problem
//	pricing/    — negative-reduced-cost column search
//	maxflow/    — feasibility pre-check for the arc-formulation method
//	internal/   — shared LP (simplex) and branch-and-bound substrate
//	solver/     — orchestrates the above behind one entry point, Solve
//	gridio/     — decodes external grid/agent input into solver types
//	plan/       — extracts per-commodity cell sequences from a solve
//
// See cmd/railflow for a worked example wiring gridio, solver, and plan
// together end to end.
package railflow
