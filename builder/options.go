// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"

	"github.com/katalvlaran/dantzig/core"
)

// Option customizes a Build call by mutating the builderConfig before
// construction begins. Option constructors validate and panic on
// meaningless inputs; the constructors themselves never panic.
// Complexity: applying N options costs O(N).
type Option func(*builderConfig)

// WithName sets the problem name recorded on the built problem.
func WithName(name string) Option {
	return func(c *builderConfig) { c.name = name }
}

// WithSeed creates a seeded RNG for stochastic constructors and random
// coefficient generators. Use this in tests to lock outcomes.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit RNG. Panics on nil; prefer WithSeed for
// reproducible runs.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithVarType sets the type of every generated variable. The default is
// core.VarContinuous; binary types turn the generated unit rows into
// set-like flavors.
func WithVarType(t core.VarType) Option {
	return func(c *builderConfig) { c.vtype = t }
}

// WithSense sets the sense of every generated row. The default is
// core.SenseLE.
func WithSense(s core.Sense) Option {
	return func(c *builderConfig) { c.sense = s }
}

// WithRHS sets the right-hand side of every generated row. The default
// is 1.
func WithRHS(rhs float64) Option {
	return func(c *builderConfig) { c.rhs = rhs }
}

// WithCoefFn overrides the per-nonzero coefficient generator. The
// function receives the (possibly nil) config RNG and must draw from it
// alone to preserve determinism. Panics on nil.
func WithCoefFn(fn func(*rand.Rand) float64) Option {
	if fn == nil {
		panic("builder: WithCoefFn(nil)")
	}
	return func(c *builderConfig) { c.coefFn = fn }
}

// WithPrefix sets the name prefixes for block variables and block
// constraints. Empty values mean "use defaults" ("x" and "c"), not an
// error. Structural names (link<j>, z<j>, s<j>, r<j>) are fixed.
func WithPrefix(varPrefix, consPrefix string) Option {
	return func(c *builderConfig) {
		c.varPrefix, c.consPrefix = varPrefix, consPrefix
	}
}
