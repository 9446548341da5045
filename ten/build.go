package ten

import (
	"github.com/katalvlaran/railflow/celldecode"
	"github.com/katalvlaran/railflow/internal/graphcore"
	"github.com/katalvlaran/railflow/trackgraph"
)

// Build assembles the time-expanded network over layers 0..horizon from a
// track graph: one move edge per track-graph edge per layer transition, one
// waiting self-loop per face per layer transition (weight waitWeight), a
// source/sink pair per commodity wired per spec.md §4.3, and the time-lifted
// position/swap constraints with their edge-to-constraint index.
func Build(tg *trackgraph.Graph, horizon int, waitWeight int64, commodities []Commodity) (*Network, error) {
	if horizon < 1 {
		return nil, ErrZeroHorizon
	}

	names := tg.Core().Vertices()
	faceOf := make([]trackgraph.Face, len(names))
	idxOf := make(map[string]int, len(names))
	cellFaces := make(map[trackgraph.Cell][]int)
	for i, name := range names {
		f, err := trackgraph.ParseFace(name)
		if err != nil {
			return nil, err
		}
		faceOf[i] = f
		idxOf[name] = i
		cellFaces[f.Cell] = append(cellFaces[f.Cell], i)
	}

	core := graphcore.NewGraph(graphcore.WithDirected(true), graphcore.WithWeighted())
	for idx := range names {
		for t := 0; t <= horizon; t++ {
			if err := core.AddVertex(Node{FaceIdx: idx, T: t}.String()); err != nil {
				return nil, err
			}
		}
	}

	n := &Network{
		core:             core,
		Horizon:          horizon,
		faceOf:           faceOf,
		idxOf:            idxOf,
		EdgeToConstraint: make(map[string][]int),
		Commodities:      commodities,
	}

	// Move edges: one per track-graph edge, per layer transition t->t+1.
	trackEdges := tg.Core().Edges()
	moveEdgeIDs := make(map[string][]string, len(trackEdges))
	for _, te := range trackEdges {
		fromIdx, toIdx := idxOf[te.From], idxOf[te.To]
		ids := make([]string, horizon)
		for t := 0; t < horizon; t++ {
			u := Node{FaceIdx: fromIdx, T: t}.String()
			v := Node{FaceIdx: toIdx, T: t + 1}.String()
			eid, err := core.AddEdge(u, v, 1, 1)
			if err != nil {
				return nil, err
			}
			ids[t] = eid
		}
		moveEdgeIDs[te.ID] = ids
	}

	// Waiting self-loops, one per face per layer transition.
	waitEdgeIDs := make([][]string, len(names))
	for idx := range names {
		waitEdgeIDs[idx] = make([]string, horizon)
		for t := 0; t < horizon; t++ {
			u := Node{FaceIdx: idx, T: t}.String()
			v := Node{FaceIdx: idx, T: t + 1}.String()
			eid, err := core.AddEdge(u, v, waitWeight, 1)
			if err != nil {
				return nil, err
			}
			waitEdgeIDs[idx][t] = eid
		}
	}

	for _, comm := range commodities {
		if err := wireCommodity(core, idxOf, tg, horizon, comm); err != nil {
			return nil, err
		}
	}

	for _, pc := range tg.PositionConstraints {
		faceIdxs := cellFaces[pc.Cells[0]]
		for t := 0; t < horizon; t++ {
			edgeIDs := make([]string, 0, len(pc.EdgeIDs)+len(faceIdxs))
			for _, eid := range pc.EdgeIDs {
				edgeIDs = append(edgeIDs, moveEdgeIDs[eid][t])
			}
			for _, fi := range faceIdxs {
				edgeIDs = append(edgeIDs, waitEdgeIDs[fi][t])
			}
			n.addConstraint(ConstraintSet{SourceCells: pc.Cells, T: t, EdgeIDs: edgeIDs})
		}
	}

	for _, sc := range tg.SwapConstraints {
		for t := 0; t < horizon; t++ {
			edgeIDs := make([]string, 0, len(sc.EdgeIDs))
			for _, eid := range sc.EdgeIDs {
				edgeIDs = append(edgeIDs, moveEdgeIDs[eid][t])
			}
			n.addConstraint(ConstraintSet{SourceCells: sc.Cells, T: t, EdgeIDs: edgeIDs})
		}
	}

	return n, nil
}

func (n *Network) addConstraint(cs ConstraintSet) {
	idx := len(n.Constraints)
	n.Constraints = append(n.Constraints, cs)
	for _, eid := range cs.EdgeIDs {
		n.EdgeToConstraint[eid] = append(n.EdgeToConstraint[eid], idx)
	}
}

func wireCommodity(core *graphcore.Graph, idxOf map[string]int, tg *trackgraph.Graph, horizon int, comm Commodity) error {
	if !tg.HasCell(comm.Start) || !tg.HasCell(comm.Target) {
		return ErrUnknownCell
	}

	srcID, sinkID := SourceID(comm.ID), SinkID(comm.ID)
	if err := core.AddVertex(srcID); err != nil {
		return err
	}
	if err := core.AddVertex(sinkID); err != nil {
		return err
	}

	for _, d := range celldecode.AllDirections {
		if comm.InitialDir != nil && d != *comm.InitialDir {
			continue
		}
		name := trackgraph.Face{Cell: comm.Start, Dir: d, Side: trackgraph.Out}.String()
		idx, ok := idxOf[name]
		if !ok {
			continue
		}
		if _, err := core.AddEdge(srcID, Node{FaceIdx: idx, T: 0}.String(), 0, 1); err != nil {
			return err
		}
	}

	for _, d := range celldecode.AllDirections {
		name := trackgraph.Face{Cell: comm.Target, Dir: d, Side: trackgraph.In}.String()
		idx, ok := idxOf[name]
		if !ok {
			continue
		}
		for t := 1; t <= horizon; t++ {
			if _, err := core.AddEdge(Node{FaceIdx: idx, T: t}.String(), sinkID, 0, 1); err != nil {
				return err
			}
		}
	}

	return nil
}

// Face looks up the track-graph face a TEN face index corresponds to; used
// by the plan extractor to translate a chosen path back into cells.
func (n *Network) Face(faceIdx int) trackgraph.Face { return n.faceOf[faceIdx] }
