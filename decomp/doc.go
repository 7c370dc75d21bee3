// Package decomp defines the decomposition data model shared by every
// detector, score and file adapter: the Label tagged union, the finalized
// Decomposition, the in-progress Candidate, and the score-ordered Pool.
//
// What:
//
//   - Label says where one constraint or variable lives: still open, in the
//     master/linking border, a linking variable spanning blocks, inside
//     block k, or ignored (the partitioner's sentinel for zero-incidence
//     rows). No sentinel integers - the kind is explicit.
//   - Decomposition is the finalized result: per-block constraint and
//     variable subsets, linking sets, lookup labels, and a derived shape
//     (diagonal / bordered / arrowhead, staircase by explicit override).
//     Its setters are write-once; Validate checks the partition invariant
//     (every index in exactly one subset, declared block count matched, no
//     empty block).
//   - Candidate is a partial decomposition under refinement: bookings are
//     recorded tentatively, committed by Flush, and candidates fork by
//     Clone so a parent is never mutated by child exploration
//     (copy-on-branch).
//   - Pool collects finalized decompositions ordered by score, guarded for
//     concurrent append/read.
//
// Lifecycle:
//
//	open → booked → flushed → finished → finalized (ToDecomposition) → pooled
//
// A candidate with zero open elements and no pending bookings is finished;
// converting an unfinished candidate is a programming error and panics, as
// is booking an element that is already assigned.
//
// Errors:
//
//   - ErrNotFinalized  - Validate on a decomposition with unset parts.
//   - ErrBlockCount    - declared block count does not match the subsets.
//   - ErrNotPartition  - an index is missing or appears in two subsets.
//   - ErrEmptyBlock    - a block without constraints invalidates the whole
//     decomposition (a detection failure, never silently dropped).
package decomp
