// SPDX-License-Identifier: MIT

// Package builder constructs synthetic problems with a known block
// structure, for tests, benchmarks and examples of the detection
// pipeline. A builder run composes Constructor closures over one
// core.Problem; the layout each constructor leaves behind (which
// variable range belongs to which intended block) is shared with the
// constructors that follow, so coupling patterns can be layered on a
// diagonal skeleton in a single call.
//
// The package offers the following components:
//
//   - Build(bopts, cons...): the single orchestrator. Resolves options
//     into an immutable config, creates the problem, applies the
//     constructors in order and wraps the first failure.
//   - Topology constructors:
//     – BlockDiagonal(blocks, conssPerBlock, varsPerBlock): the diagonal
//     skeleton; every later constructor couples against its layout.
//     – LinkingConss(k, span): rows across `span` consecutive blocks,
//     the bordered/staircase coupling pattern.
//     – LinkingVars(k): fresh variables stitched into two blocks each,
//     the arrowhead coupling pattern.
//     – SingletonConss(k): one-nonzero rows over existing variables.
//     – RandomConss(k, density): Bernoulli rows over all variables,
//     rng required.
//   - Options: WithName, WithSeed, WithRand, WithVarType, WithSense,
//     WithRHS, WithCoefFn, WithPrefix.
//
// Guarantees:
//
//   - Determinism: the same options, seed and constructor order produce
//     an identical problem, entry for entry.
//   - Constructors validate parameters early and return sentinel errors;
//     they never panic. Validation panics are confined to option
//     constructors (WithRand(nil), WithCoefFn(nil)).
//   - Names are deterministic: block variables x<b>_<i>, block rows
//     c<b>_<j> (prefixes configurable), linking rows link<j>, linking
//     variables z<j> with coupling rows z<j>_b<k>, singletons s<j>,
//     random rows r<j>. Counters persist across repeated constructors
//     within one Build call, so names never collide.
//
// Complexity: one Build call costs the sum of its constructors;
// BlockDiagonal is O(blocks·(varsPerBlock+conssPerBlock)), RandomConss
// is O(k·NVars), the rest are linear in k.
package builder
