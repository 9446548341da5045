// Package initsol greedily assembles one feasible path per commodity to
// seed the master problem, per spec.md §4.5: request batches of candidate
// paths from the k-shortest-path finder, accept the first candidate whose
// edges share no active constraint with an already-accepted path, and
// widen the search (more candidates, via the finder's built-in weight
// inflation) when a batch yields nothing compatible.
package initsol

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/railflow/kshortest"
	"github.com/katalvlaran/railflow/ten"
)

// DefaultBatchSize is the number of candidate paths requested per k-SP
// attempt absent an override (spec.md §4.5: "Request up to 5 shortest
// paths", and spec.md §6's `k_shortest` config default).
const DefaultBatchSize = 5

// Option configures a Generate call.
type Option func(*options)

type options struct {
	batchSize int
}

// WithBatchSize overrides the number of candidates requested per k-SP
// attempt, wiring solver.Config's `k_shortest` option through to the
// finder without disturbing the common Generate(net, maxAttempts) call.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// DefaultMaxAttempts bounds how many batches of batchSize candidates are
// requested per commodity before giving up.
const DefaultMaxAttempts = 20

// ErrInfeasible is returned (wrapped with the offending commodity ID) when
// no compatible candidate path was found within the iteration cap.
var ErrInfeasible = errors.New("initsol: no feasible path found within iteration cap")

// Result is one accepted path per commodity, plus the order in which
// commodities were resolved (their processing order, which is also their
// master-problem build order).
type Result struct {
	Paths map[string]kshortest.Path
	Order []string
}

// Generate builds an initial feasible solution for every commodity of net.
// maxAttempts <= 0 selects DefaultMaxAttempts. Commodities are processed in
// the order net.Commodities lists them; an already-accepted commodity's
// path edges occupy every constraint they touch for the remainder of the
// run, so later commodities' candidates must avoid all prior occupancy.
func Generate(net *ten.Network, maxAttempts int, opts ...Option) (*Result, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	o := options{batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(&o)
	}

	finder := kshortest.New(net.Core())
	occupied := make(map[int]bool)
	result := &Result{Paths: make(map[string]kshortest.Path, len(net.Commodities))}

	for _, comm := range net.Commodities {
		src, sink := ten.SourceID(comm.ID), ten.SinkID(comm.ID)
		accepted, ok, err := resolveCommodity(finder, src, sink, maxAttempts, o.batchSize, net.EdgeToConstraint, occupied)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: commodity %q", ErrInfeasible, comm.ID)
		}

		markOccupied(accepted, net.EdgeToConstraint, occupied)
		result.Paths[comm.ID] = accepted
		result.Order = append(result.Order, comm.ID)
	}

	return result, nil
}

func resolveCommodity(finder *kshortest.Finder, src, sink string, maxAttempts, batchSize int, edgeToConstraint map[string][]int, occupied map[int]bool) (kshortest.Path, bool, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		k := attempt * batchSize
		paths, err := finder.Find(src, sink, k)
		if err != nil {
			return kshortest.Path{}, false, err
		}

		start := (attempt - 1) * batchSize
		if start >= len(paths) {
			// The finder ran out of distinct-enough candidates entirely.
			return kshortest.Path{}, false, nil
		}
		end := len(paths)
		if end > attempt*batchSize {
			end = attempt * batchSize
		}

		for _, p := range paths[start:end] {
			if compatible(p, edgeToConstraint, occupied) {
				return p, true, nil
			}
		}
	}

	return kshortest.Path{}, false, nil
}

func compatible(p kshortest.Path, edgeToConstraint map[string][]int, occupied map[int]bool) bool {
	for _, eid := range p.EdgeIDs {
		for _, ci := range edgeToConstraint[eid] {
			if occupied[ci] {
				return false
			}
		}
	}

	return true
}

func markOccupied(p kshortest.Path, edgeToConstraint map[string][]int, occupied map[int]bool) {
	for _, eid := range p.EdgeIDs {
		for _, ci := range edgeToConstraint[eid] {
			occupied[ci] = true
		}
	}
}
