// SPDX-License-Identifier: MIT

// Package decfmt reads and writes block-structure files.
//
// Four formats are supported:
//
//   - DEC: constraint-based sections (NBLOCKS, BLOCK i, MASTERCONSS),
//     the native exchange format. ReadDEC returns a finalized
//     decomposition, ReadDECCandidate a partial one that detection can
//     keep refining.
//   - BLK: variable-based sections; constraints follow their variables.
//   - CLUSTER: one "<vertex> <partition>" pair per line, as emitted by
//     graph partitioners. WithVertexMap folds duplicated hyperedge
//     vertices back onto original constraints.
//   - NDEC: a versioned YAML document of recursively nested
//     decompositions.
//
// Malformed input is reported as *ParseError carrying the offending
// line, column and source text; ParseError.Detail renders the line with
// a caret under the error column. Readers never register partial
// results: on error the returned decomposition is nil.
package decfmt
