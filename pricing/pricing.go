package pricing

import (
	"fmt"

	"github.com/katalvlaran/railflow/master"
	"github.com/katalvlaran/railflow/ten"
)

// Pricer reweights a fixed TEN's edges per pricing round and searches each
// commodity's source-to-sink connector for a new candidate column.
type Pricer struct {
	net  *ten.Network
	opts Options
}

// New wraps net for repeated pricing rounds against the master's duals.
func New(net *ten.Network, opts ...Option) *Pricer {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Pricer{net: net, opts: o}
}

// Result is one commodity's priced-out candidate.
type Result struct {
	Path   Path
	Weight float64
}

// Price reweights every TEN edge via duals.Restriction, then for each
// commodity in pr.net.Commodities runs a minimum-weight source-to-sink
// search under the reweighted graph. A commodity is included in the
// returned batch only when its minimum weight W* is strictly below its
// threshold duals.Commodity[k] (spec.md §4.7's W*_k < sigma_k test); a
// commodity with no known threshold (absent from the master's current
// commodity set) or no reachable path is silently skipped, matching
// solver's "price, then stop when the batch is empty" convergence check.
func (pr *Pricer) Price(duals master.DualValues) (map[string]Result, error) {
	weight := reweight(pr.net.Core(), duals.Restriction, pr.net.EdgeToConstraint)

	out := make(map[string]Result)
	for _, comm := range pr.net.Commodities {
		threshold, known := duals.Commodity[comm.ID]
		if !known {
			continue
		}

		source := ten.SourceID(comm.ID)
		sink := ten.SinkID(comm.ID)

		path, ok, err := pr.search(source, sink, weight)
		if err != nil {
			return nil, fmt.Errorf("pricing commodity %q: %w", comm.ID, err)
		}
		if !ok {
			continue
		}
		if path.Weight < threshold-epsilon {
			out[comm.ID] = Result{Path: path, Weight: path.Weight}
		}
	}

	return out, nil
}

func (pr *Pricer) search(source, sink string, weight map[string]float64) (Path, bool, error) {
	if pr.opts.Algorithm == SPFA {
		return spfa(pr.net.Core(), source, sink, weight)
	}

	return bellmanFord(pr.net.Core(), source, sink, weight)
}
