package trackgraph

import (
	"sort"

	"github.com/katalvlaran/railflow/celldecode"
	"github.com/katalvlaran/railflow/internal/graphcore"
)

// Graph is the face-node track graph built from a rail grid, together with
// the position and swap constraint sets that govern which edges may be
// occupied simultaneously once the graph is lifted into a time-expanded
// network.
type Graph struct {
	core *graphcore.Graph

	Height, Width int

	// nonEmpty[c] is true iff cell c decoded to at least one transition and
	// therefore owns face nodes.
	nonEmpty map[Cell]bool

	PositionConstraints []ConstraintSet
	SwapConstraints      []ConstraintSet
}

// Core exposes the underlying directed graph for callers (ten, kshortest,
// maxflow) that operate on face nodes generically.
func (g *Graph) Core() *graphcore.Graph { return g.core }

// HasCell reports whether c decoded to a non-empty transition set and so
// contributes face nodes to the graph.
func (g *Graph) HasCell(c Cell) bool { return g.nonEmpty[c] }

// Build decodes every cell of grid and assembles the face-node track graph:
// internal edges per cell from celldecode.Decode, external edges to
// geometric neighbors gated by which out-directions a cell actually uses,
// and the position/swap constraint sets spec.md §4.2 and §4.6 require.
func Build(grid []([]uint16)) (*Graph, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	width := len(grid[0])
	for _, row := range grid {
		if len(row) != width {
			return nil, ErrNonRectangularGrid
		}
	}

	g := &Graph{
		core:     graphcore.NewGraph(graphcore.WithDirected(true), graphcore.WithWeighted()),
		Height:   len(grid),
		Width:    width,
		nonEmpty: make(map[Cell]bool),
	}

	decoded := make(map[Cell]celldecode.Transitions)
	for r, row := range grid {
		for c, bits := range row {
			cell := Cell{R: r, C: c}
			t := celldecode.Decode(bits)
			if len(t) == 0 {
				continue
			}
			decoded[cell] = t
			g.nonEmpty[cell] = true
		}
	}

	cells := make([]Cell, 0, len(g.nonEmpty))
	for cell := range g.nonEmpty {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].R != cells[j].R {
			return cells[i].R < cells[j].R
		}
		return cells[i].C < cells[j].C
	})

	// Create all eight face nodes for every non-empty cell up front, so
	// external-edge wiring can always find both endpoints regardless of
	// which direction is visited first.
	for _, cell := range cells {
		for _, d := range allDirections {
			if err := g.core.AddVertex(Face{cell, d, In}.String()); err != nil {
				return nil, err
			}
			if err := g.core.AddVertex(Face{cell, d, Out}.String()); err != nil {
				return nil, err
			}
		}
	}

	// usedOut[cell] records which out-directions that cell's internal edges
	// actually target, which gates whether an external edge is wired toward
	// the corresponding neighbor face.
	usedOut := make(map[Cell]map[celldecode.Direction]bool)
	for _, cell := range cells {
		t := decoded[cell]
		used := make(map[celldecode.Direction]bool, 4)
		// Deterministic iteration: sort incoming directions, then outgoing.
		ins := sortedKeys(t)
		var edgeIDs []string
		for _, dIn := range ins {
			outs := append([]celldecode.Direction(nil), t[dIn]...)
			sort.Slice(outs, func(i, j int) bool { return outs[i] < outs[j] })
			for _, dOut := range outs {
				from := Face{cell, dIn.Opposite(), In}.String()
				to := Face{cell, dOut, Out}.String()
				eid, err := g.core.AddEdge(from, to, 1, 1)
				if err != nil {
					return nil, err
				}
				edgeIDs = append(edgeIDs, eid)
				used[dOut] = true
			}
		}
		usedOut[cell] = used
		g.PositionConstraints = append(g.PositionConstraints, ConstraintSet{
			Cells:   []Cell{cell},
			EdgeIDs: edgeIDs,
		})
	}

	// External edges: out(c,d) -> in(c',d) whenever c uses d as an exit and
	// c' = step(c,d) is in-bounds and non-empty.
	extEdge := make(map[[2]string]string) // (from,to) -> edge id, for swap lookups

	for _, cell := range cells {
		used := usedOut[cell]
		for _, d := range allDirections {
			if !used[d] {
				continue
			}
			neigh := cell.Step(d)
			if !g.inBounds(neigh) || !g.nonEmpty[neigh] {
				continue
			}
			from := Face{cell, d, Out}.String()
			to := Face{neigh, d, In}.String()
			eid, err := g.core.AddEdge(from, to, 0, 1)
			if err != nil {
				return nil, err
			}
			extEdge[[2]string{from, to}] = eid
		}
	}

	// Swap constraints: one per unordered grid-adjacent cell pair, visited
	// via each cell's E and S steps so every pair is considered exactly once.
	for _, cell := range cells {
		for _, d := range []celldecode.Direction{celldecode.E, celldecode.S} {
			neigh := cell.Step(d)
			if !g.inBounds(neigh) || !g.nonEmpty[neigh] {
				continue
			}
			opp := d.Opposite()
			var ids []string
			if eid, ok := extEdge[[2]string{Face{cell, d, Out}.String(), Face{neigh, d, In}.String()}]; ok {
				ids = append(ids, eid)
			}
			if eid, ok := extEdge[[2]string{Face{neigh, opp, Out}.String(), Face{cell, opp, In}.String()}]; ok {
				ids = append(ids, eid)
			}
			if len(ids) == 0 {
				continue
			}
			g.SwapConstraints = append(g.SwapConstraints, ConstraintSet{
				Cells:   []Cell{cell, neigh},
				EdgeIDs: ids,
			})
		}
	}

	return g, nil
}

func (g *Graph) inBounds(c Cell) bool {
	return c.R >= 0 && c.R < g.Height && c.C >= 0 && c.C < g.Width
}

var allDirections = celldecode.AllDirections

func sortedKeys(t celldecode.Transitions) []celldecode.Direction {
	ks := make([]celldecode.Direction, 0, len(t))
	for d := range t {
		ks = append(ks, d)
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i] < ks[j] })

	return ks
}
