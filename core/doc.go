// Package core defines the Problem model every detector, classifier and
// file adapter in dantzig operates on: an ordered catalog of variables and
// constraints with stable 0-based indices and the sparse bipartite incidence
// between them.
//
// What:
//
//   - Problem holds variables and constraints in insertion order; indices
//     never change once assigned.
//   - Each constraint carries its incident variable list, coefficients, a
//     sense (≤ / ≥ / =) and a right-hand side.
//   - ConsFlavor derives structural constraint classes (set partitioning,
//     set packing, set covering, cardinality, varbound, knapsack, linear)
//     from the coefficient pattern, the only coefficient information the
//     detection core ever consumes.
//   - VarConss is the incidence transpose, maintained incrementally so that
//     reads never trigger lazy construction.
//
// Why:
//
//   - Block-structure detection needs exactly one thing from a solver's
//     problem: the incidence graph plus a handful of coefficient-role
//     predicates. Problem is that narrow boundary, so detectors never talk
//     to a host framework directly.
//
// Concurrency:
//
//   - Problem is not safe for concurrent mutation. Once building completes
//     it is read-only by convention and safe for concurrent readers; the
//     detection engine relies on this.
//
// Errors:
//
//   - ErrEmptyName      - variable or constraint name is the empty string.
//   - ErrDuplicateName  - variable or constraint name already registered.
//   - ErrIndexRange     - variable or constraint index out of range.
package core
