// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/katalvlaran/dantzig/core"
)

// Constructor applies one deterministic construction step to the problem
// under the shared build state. Constructors must:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Register variables and rows in a stable, documented order.
//   - Extend st.blocks and the name counters for the constructors that
//     follow in the same Build call.
type Constructor func(p *core.Problem, st *buildState) error

// Build creates a new problem, resolves the builder configuration from
// bopts and applies all constructors in order. Any constructor error is
// wrapped with "Build: %w" and returned immediately; no partial cleanup
// is attempted.
//
// Determinism: the same options, seed and constructor order produce an
// identical problem.
//
// Errors: wraps constructor errors via %w; branch with errors.Is against
// the builder sentinels (ErrBadShape, ErrSpanRange, ErrNoLayout, ...).
func Build(bopts []Option, cons ...Constructor) (*core.Problem, error) {
	cfg := newBuilderConfig(bopts...)

	p := core.NewProblem(core.WithName(cfg.name))
	st := &buildState{cfg: cfg}

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(p, st); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	return p, nil
}

// =============================================================================
// Constructor factories - implemented in impl_*.go
// =============================================================================

// BlockDiagonal lays down the diagonal skeleton: `blocks` groups of
// `varsPerBlock` fresh variables, each covered by `conssPerBlock` rows
// over that group alone. Implemented in impl_block_diagonal.go.
// Complexity: O(blocks·(varsPerBlock+conssPerBlock)).
//func BlockDiagonal(blocks, conssPerBlock, varsPerBlock int) Constructor

// LinkingConss adds k rows each spanning `span` consecutive blocks of
// the existing layout. Implemented in impl_linking_conss.go.
// Complexity: O(k·span).
//func LinkingConss(k, span int) Constructor

// LinkingVars adds k fresh variables stitched into two blocks each via
// one coupling row per touched block. Implemented in impl_linking_vars.go.
// Complexity: O(k).
//func LinkingVars(k int) Constructor

// SingletonConss adds k one-nonzero rows over existing variables,
// round-robin. Implemented in impl_singleton.go.
// Complexity: O(k).
//func SingletonConss(k int) Constructor

// RandomConss adds k Bernoulli rows over all existing variables; rng
// required. Implemented in impl_random_conss.go.
// Complexity: O(k·NVars).
//func RandomConss(k int, density float64) Constructor
