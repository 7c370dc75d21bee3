// SPDX-License-Identifier: MIT

// Package classify assigns problem indices to named classes and turns
// those classes into detection hints.
//
// A Classifier maps every index of a fixed universe (the variables or the
// constraints of one problem) to at most one class. Classes carry a name,
// a description and a Role - the decomposition fate suggested for their
// members (all/linking/master/block). The propagation engine enumerates
// subsets of classes (GetAllSubsets) as candidate linking/master splits,
// so classifiers are deliberately small: ReduceClasses merges the tiniest
// classes when a classifier grows past the configured ceiling, and
// RemoveEmptyClasses keeps class indices contiguous.
//
// Concrete builders ship for the usual structural classifications:
//
//   - ConssByFlavor        - one class per constraint flavor; set-like
//     flavors are born with the master role.
//   - ConssByNNonzeros     - one class per distinct row size.
//   - ConssByNameDigitFree - one class per digit-stripped name stem.
//   - VarsByType           - one class per variable domain class.
//   - VarsByObjSign        - negative / zero / positive objective
//     coefficient.
//
// Classifiers are plain data and not safe for concurrent mutation;
// concurrent readers are fine once building is done.
package classify
