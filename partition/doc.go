// Package partition splits a problem's constraints into connectivity
// blocks: two constraints land in the same block exactly when they share
// a variable, transitively. It is the workhorse behind the connected
// detector and usable on its own for a quick structure probe.
//
// What:
//
//   - UnionFind - a disjoint-set forest over constraint indices whose
//     representative is always the smallest member, so Find(i) <= i holds
//     for every compressed index.
//   - Partition - labels every constraint and variable of a problem:
//     constraints get a 1-based block number (numbered by first
//     appearance in constraint order), forced-master constraints the
//     master label, and zero-incidence constraints the ignored sentinel.
//     Variables follow their constraints: one block means membership,
//     several mean linking, none means master.
//
// Why:
//
// Block-diagonal structure is what decomposition solvers feed on. The
// partitioner finds the finest such structure in near-linear time; the
// master predicate lets a caller carve coupling rows out of the incidence
// before connectivity is computed, which is how set-partitioning masters
// are separated from their assignment blocks.
//
// Complexity: O((m + nnz) * α(m)) time, O(m + n) extra space, for m
// constraints, n variables and nnz incidence entries.
//
// Errors:
//
//   - ErrNilProblem   - Partition(nil).
//   - ErrSingleBlock  - fewer than two blocks found; the caller decides
//     whether to flip its master policy and retry.
package partition
