// SPDX-License-Identifier: MIT

package builder

import "errors"

// Sentinel errors for constructor validation. Callers branch with
// errors.Is; implementations attach context via %w wrapping and never
// stringify parameters into the sentinels themselves.
var (
	// ErrBadShape indicates a count parameter (blocks, rows, variables,
	// k) below the allowed minimum for the requested constructor.
	ErrBadShape = errors.New("builder: shape parameter too small")

	// ErrSpanRange indicates a coupling span outside [2, blocks], or a
	// coupling constructor facing a layout with fewer than two blocks.
	ErrSpanRange = errors.New("builder: span out of range")

	// ErrNoLayout indicates a constructor that couples against existing
	// structure ran before any structure existed (no BlockDiagonal in
	// the same Build call, or no variables at all).
	ErrNoLayout = errors.New("builder: no layout to couple against")

	// ErrInvalidProbability indicates a density outside the closed
	// interval [0,1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrNeedRandSource indicates a stochastic constructor was invoked
	// without an RNG; set WithSeed or WithRand.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrConstructFailed indicates the build could not proceed at all:
	// a nil constructor, or a name registration rejected by core.
	ErrConstructFailed = errors.New("builder: construction failed")
)
