// Package solver orchestrates spec.md §4.8's column-generation loop and
// §4.9's arc-formulation alternative behind one entry point, Solve, plus
// the explicit four-state machine of spec.md §4.11. Config carries spec.md
// §6's full configuration surface (horizon, method, use_direction,
// k_shortest, pricing_algorithm); Solve itself takes an already-decoded
// track graph and commodity list (see gridio for turning a raw grid and
// agent list into these), and additionally owns the starting-cell-
// collision filter of spec.md §4.10 and the method dispatch.
package solver

import (
	"context"
	"errors"

	"github.com/katalvlaran/railflow/initsol"
	"github.com/katalvlaran/railflow/pricing"
)

// ErrUnknownMethod indicates a Config named a Method outside the two
// defined constants.
var ErrUnknownMethod = errors.New("solver: unknown method")

// ErrInfeasible reports spec.md §7's *Infeasible* error kind: the arc
// formulation's maxflow.CheckFeasible pre-check found the network could
// not carry every admissible commodity at once.
var ErrInfeasible = errors.New("solver: network infeasible for the admissible commodity set")

// Method selects the orchestration strategy of spec.md §4.8/§4.9.
type Method int

const (
	// ColumnGeneration is the default: iterative LP relaxation, pricing,
	// and a terminal IP solve over only the columns actually generated.
	ColumnGeneration Method = iota
	// ArcFormulation solves a single IP directly over per-commodity,
	// per-edge binary variables; no pricing loop, no initial solution.
	ArcFormulation
)

// String renders the canonical config name from spec.md §6.
func (m Method) String() string {
	switch m {
	case ColumnGeneration:
		return "column-generation"
	case ArcFormulation:
		return "arc-formulation"
	default:
		return "unknown"
	}
}

// Config holds solver.Solve's tunables, per spec.md §6's configuration
// surface (`horizon`, `method`, `use_direction`, `k_shortest`,
// `pricing_algorithm`).
type Config struct {
	// Horizon is the TEN's layer count; 0 selects spec.md §4.3's
	// conservative default, ten.DefaultHorizon(tg.Width, tg.Height).
	Horizon int
	// UseDirection gates whether a commodity's InitialDir (set by the
	// caller, typically gridio decoding an agent's facing) restricts its
	// source connector to one out-face; false lets it depart via any
	// out-face of its starting cell regardless of InitialDir.
	UseDirection        bool
	Method              Method
	KShortest           int
	PricingAlgorithm    pricing.Algorithm
	MaxColumnGenRounds  int // 0 means unbounded: loop until pricing converges
	WaitWeight          int64
	Ctx                 context.Context
}

// Option configures a Config.
type Option func(*Config)

// WithHorizon overrides the TEN's layer count.
func WithHorizon(h int) Option {
	return func(c *Config) { c.Horizon = h }
}

// WithUseDirection toggles whether a commodity's InitialDir restricts its
// departure face.
func WithUseDirection(use bool) Option {
	return func(c *Config) { c.UseDirection = use }
}

// WithMethod selects the orchestration strategy.
func WithMethod(m Method) Option {
	return func(c *Config) { c.Method = m }
}

// WithKShortest overrides the number of candidates initsol requests per
// batch, wiring spec.md §6's `k_shortest` option through to initsol.
func WithKShortest(k int) Option {
	return func(c *Config) { c.KShortest = k }
}

// WithPricingAlgorithm selects pricing's negative-weight shortest-path
// algorithm, per spec.md §6's `pricing_algorithm` option.
func WithPricingAlgorithm(a pricing.Algorithm) Option {
	return func(c *Config) { c.PricingAlgorithm = a }
}

// WithMaxColumnGenRounds bounds the column-generation loop's round count;
// reaching the bound is treated as spec.md §4.11's Relaxed→Done transition
// (terminal IP solve over whatever columns have been added so far) rather
// than as an error.
func WithMaxColumnGenRounds(n int) Option {
	return func(c *Config) { c.MaxColumnGenRounds = n }
}

// WithWaitWeight overrides the TEN waiting self-loop edge weight.
func WithWaitWeight(w int64) Option {
	return func(c *Config) { c.WaitWeight = w }
}

// WithContext wires a cancellation token checked at spec.md §5's
// suspension points (after each LP solve, after each pricing batch).
func WithContext(ctx context.Context) Option {
	return func(c *Config) { c.Ctx = ctx }
}

// DefaultConfig returns column generation with the pack's defaults: auto
// horizon, InitialDir honored, Bellman-Ford pricing.
func DefaultConfig() Config {
	return Config{
		UseDirection:     true,
		Method:           ColumnGeneration,
		KShortest:        initsol.DefaultBatchSize,
		PricingAlgorithm: pricing.BellmanFord,
		WaitWeight:       1,
		Ctx:              context.Background(),
	}
}

func checkCancel(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
