// Package detect drives block-structure detection: detectors refine
// partial decomposition candidates, the engine schedules them over
// rounds, and finished candidates are scored into a pool.
//
// What:
//
//   - Detector - one refinement strategy. Propagate takes a candidate and
//     returns zero or more refined candidates; zero with a nil error is
//     the ordinary "did not find" outcome, never a failure.
//   - Registry - the detectors of one session, in registration order,
//     names unique. DefaultRegistry wires the connected-blocks detector
//     plus class detectors over the standard classifiers.
//   - ConnectedBlocks - partitions the open part of a candidate into
//     connectivity blocks, forcing set-like rows to the master border
//     when the setppcmaster parameter says so, and retrying once with
//     the flipped policy if the first attempt finds fewer than two
//     blocks.
//   - VarClasses / ConsClasses - enumerate subsets of a classifier's
//     classes as linking/master splits and emit one candidate per
//     productive subset. Classifiers exposing more classes than the
//     configured ceiling (a tighter one for large problems) are skipped.
//   - Engine - breadth-first expansion: every round sends the frontier
//     through every detector, deduplicates results by fingerprint,
//     finalizes finished candidates, completes the stragglers after the
//     last round, scores everything and pools it.
//
// Concurrency:
//
// Candidates fork by Clone and a detector never mutates its input, so
// propagation is safe to fan out. With detection/parallelism > 1 (or the
// WithParallelism engine option) the engine runs the (candidate,
// detector) jobs of a round on that many workers and merges results in
// job order, which keeps the outcome identical to the sequential run.
// The pool and the fingerprint set are only touched by the merging
// goroutine.
//
// All engine loops honor ctx: cancellation aborts between propagation
// steps with the pool built so far, never mid-flush.
package detect
