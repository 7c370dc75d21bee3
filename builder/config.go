// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"

	"github.com/katalvlaran/dantzig/core"
)

// builderConfig is the single source of truth for all builder knobs.
// It is resolved once per Build call and passed by value inside the
// build state; constructors never mutate it.
type builderConfig struct {
	// Problem name, used in diagnostics and structure-file headers.
	name string

	// RNG for stochastic constructors; nil means no randomness.
	rng *rand.Rand

	// Variable type for every generated variable.
	vtype core.VarType

	// Row sense and right-hand side for every generated constraint.
	sense core.Sense
	rhs   float64

	// Coefficient generator, drawn once per nonzero. Receives the
	// (possibly nil) config RNG so seeded builds stay reproducible.
	coefFn func(*rand.Rand) float64

	// Name prefixes for block variables and block constraints.
	// Empty values resolve to the defaults below.
	varPrefix  string
	consPrefix string
}

// Deterministic defaults.
const (
	defaultVarPrefix  = "x"
	defaultConsPrefix = "c"
	defaultRHS        = 1.0
	defaultCoef       = 1.0
)

// newBuilderConfig constructs a config with deterministic defaults and
// applies all options in order, later overriding earlier. Empty string
// fields resolve to defaults here so constructors stay branch-free.
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		vtype:      core.VarContinuous,
		sense:      core.SenseLE,
		rhs:        defaultRHS,
		coefFn:     func(*rand.Rand) float64 { return defaultCoef },
		varPrefix:  defaultVarPrefix,
		consPrefix: defaultConsPrefix,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.varPrefix == "" {
		cfg.varPrefix = defaultVarPrefix
	}
	if cfg.consPrefix == "" {
		cfg.consPrefix = defaultConsPrefix
	}

	return cfg
}

// varSpan is a half-open range [lo, hi) of variable indices making up
// one intended block of the layout.
type varSpan struct {
	lo, hi int
}

// buildState is threaded through the constructors of one Build call.
// It carries the immutable config, the block layout produced so far and
// the name counters that keep repeated constructors collision-free.
type buildState struct {
	cfg    builderConfig
	blocks []varSpan // intended blocks, in creation order

	nLinkRows   int // rows named link<j>
	nLinkVars   int // variables named z<j>
	nSingletons int // rows named s<j>
	nRandomRows int // rows named r<j>
}

// coef draws one coefficient from the configured generator.
func (st *buildState) coef() float64 {
	return st.cfg.coefFn(st.cfg.rng)
}
