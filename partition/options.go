package partition

import "github.com/katalvlaran/dantzig/core"

// Predicate selects a constraint or variable of p by index.
type Predicate func(p *core.Problem, index int) bool

// options collects the tunables of Partition.
type options struct {
	masterPred Predicate
	skipPred   Predicate
}

// Option adjusts how Partition walks the incidence.
type Option func(*options)

// WithMasterPredicate forces every matching constraint into the master
// border before connectivity is computed: such constraints neither join a
// block nor conduct connectivity between other constraints.
func WithMasterPredicate(pred Predicate) Option {
	return func(o *options) { o.masterPred = pred }
}

// WithSkipPredicate makes matching variables non-conducting: their columns
// do not merge constraints. The variables themselves are still labeled
// from whatever blocks their constraints end up in. Callers refining a
// partial assignment skip the variables that are already linking.
func WithSkipPredicate(pred Predicate) Option {
	return func(o *options) { o.skipPred = pred }
}
