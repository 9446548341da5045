// Package maxflow is a thin adapter over the teacher's flow.Dinic (level
// graph + blocking flow) used two ways: MaxFlow runs Dinic directly over an
// internal/graphcore.Graph, and CheckFeasible wraps it with the
// arc-formulation's necessary-condition pre-check from SPEC_FULL.md §2: a
// combined super-source wired to every commodity's TEN source connector
// (capacity 1 each) and a combined super-sink wired from every commodity's
// sink connector (capacity 1 each) bounds the best case a K-commodity arc
// IP could ever achieve. If the max flow from super-source to super-sink is
// below K, no integer arc solution can route all K commodities, so the
// caller can report Infeasible without paying for the full binary IP.
//
// This is a necessary, not sufficient, condition (it ignores which
// commodity uses which unit of capacity and every position/swap
// restriction), matching the "fast feasibility pre-check" role SPEC_FULL.md
// assigns it rather than a full feasibility certificate.
package maxflow

import (
	"context"
	"errors"
)

// ErrSourceNotFound indicates the requested source vertex is absent.
var ErrSourceNotFound = errors.New("maxflow: source vertex not found")

// ErrSinkNotFound indicates the requested sink vertex is absent.
var ErrSinkNotFound = errors.New("maxflow: sink vertex not found")

// DefaultEpsilon is the capacity-rounding tolerance below which a residual
// edge is treated as exhausted, matching the teacher's flow.FlowOptions.
const DefaultEpsilon = 1e-9

// Options configures a Dinic run, following the teacher's FlowOptions
// shape (context for cancellation, epsilon for float comparisons).
type Options struct {
	Ctx     context.Context
	Epsilon float64
}

// Option mutates an Options during construction.
type Option func(*Options)

// WithContext threads a cancellation context through the Dinic BFS/DFS loop.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Ctx = ctx }
}

// DefaultOptions returns the zero-value options, normalized.
func DefaultOptions() Options {
	o := Options{}
	o.normalize()

	return o
}

func (o *Options) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
}
