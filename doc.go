// Package dantzig is your in-memory toolkit for detecting, modeling and
// exchanging block structures in mixed-integer programs — from incidence
// primitives to pluggable detectors, scores and structure files.
//
// 🚀 What is dantzig?
//
//	A modular structure-detection library that brings together:
//		• Core primitives: variables, constraints, sparse incidence, row flavors
//		• Partitioning: union-find connectivity with master/skip predicates
//		• Classification: index classifiers with roles, subsets & ceilings
//		• Decompositions: write-once models, partial candidates, scored pools
//		• Detection: a propagation engine composing detectors round by round
//		• Scoring: border area, block density, max-white, or your own
//		• Structure files: DEC, BLK, CLUSTER and nested NDEC round trips
//
// ✨ Why choose dantzig?
//
//   - Determinism first – same problem, options and seeds ⇒ same pool,
//     sequential or parallel
//   - Rock-solid contracts – sentinel errors, write-once models, panics
//     reserved for programmer error
//   - Extensible – register your own detectors, classifiers and scores
//     alongside the built-ins
//
// Everything is organized under flat subpackages:
//
//	core/      — Problem, variables, constraints, flavors & incidence
//	partition/ — union-find connectivity blocks over the incidence
//	classify/  — var/cons classifiers, roles, subsets, reduction
//	decomp/    — labels, decompositions, candidates, scored pools
//	detect/    — detectors and the propagation engine
//	score/     — decomposition quality measures & registry
//	decfmt/    — DEC / BLK / CLUSTER / NDEC readers and writers
//	params/    — detection parameter store (viper-backed)
//	builder/   — deterministic synthetic problems for tests & benches
//
// Quick ASCII example — a bordered 2-block structure:
//
//	        x1 x2 │ x3 x4 │
//	   c1 │  ■  ■ │       │
//	   c2 │       │  ■  ■ │
//	   ───┼───────┼───────┤
//	   m1 │  ■    │  ■    │   ← master row couples the blocks
//
// Dive into examples/ for end-to-end detection pipelines and structure
// file round trips.
//
//	go get github.com/katalvlaran/dantzig
package dantzig
