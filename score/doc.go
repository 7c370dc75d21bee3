// Package score ranks finalized decompositions.
//
// A scoring function maps a problem and one of its decompositions to a
// value in [0,1], higher meaning better suited for column-generation
// decomposition. Functions are registered by name in an explicit Registry
// (no package-global state; one registry per detection session) and
// looked up by full or short name. Registering two scores under one name
// is a programming error and panics.
//
// Built-in scores:
//
//   - borderarea   - rewards a small master border.
//   - blockdensity - rewards dense block interiors.
//   - maxwhite     - rewards a large white (uncovered) matrix area, the
//     classic measure combining both.
package score
