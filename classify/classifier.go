// SPDX-License-Identifier: MIT

package classify

import (
	"fmt"
	"sort"
)

// Unclassified is the assignment value of an index that belongs to no
// class.
const Unclassified = -1

// classMeta is the per-class record. Member counts are maintained on
// every Assign so reduction never rescans the universe.
type classMeta struct {
	name string
	desc string
	role Role
	size int
}

// Classifier maps every index of a 0..N-1 universe to at most one of a
// small set of named classes. Class indices stay contiguous in [0,C).
type Classifier struct {
	name       string
	kind       Kind
	universe   int
	classes    []classMeta
	assignment []int
}

// NewVarClassifier creates an empty classifier over a variable universe
// of the given size.
func NewVarClassifier(name string, universe int) *Classifier {
	return newClassifier(name, KindVar, universe)
}

// NewConsClassifier creates an empty classifier over a constraint
// universe of the given size.
func NewConsClassifier(name string, universe int) *Classifier {
	return newClassifier(name, KindCons, universe)
}

func newClassifier(name string, kind Kind, universe int) *Classifier {
	if universe < 0 {
		panic(fmt.Sprintf("classify: %s: negative universe %d", name, universe))
	}
	assignment := make([]int, universe)
	for i := range assignment {
		assignment[i] = Unclassified
	}
	return &Classifier{name: name, kind: kind, universe: universe, assignment: assignment}
}

// Name returns the classifier name used in provenance and logs.
func (c *Classifier) Name() string { return c.name }

// Kind returns the universe kind (variables or constraints).
func (c *Classifier) Kind() Kind { return c.kind }

// Universe returns the index universe size N.
func (c *Classifier) Universe() int { return c.universe }

// NClasses returns the current number of classes C.
func (c *Classifier) NClasses() int { return len(c.classes) }

// AddClass appends a new empty class and returns its index.
func (c *Classifier) AddClass(name, desc string, role Role) int {
	c.classes = append(c.classes, classMeta{name: name, desc: desc, role: role})
	return len(c.classes) - 1
}

// ClassName returns the name of class ci.
func (c *Classifier) ClassName(ci int) string { return c.classes[c.mustClass(ci)].name }

// ClassDescription returns the description of class ci.
func (c *Classifier) ClassDescription(ci int) string { return c.classes[c.mustClass(ci)].desc }

// ClassRole returns the decomposition role of class ci.
func (c *Classifier) ClassRole(ci int) Role { return c.classes[c.mustClass(ci)].role }

// SetClassRole retags class ci. Unlike assignments this is freely
// rewritable; roles are hints, not structure.
func (c *Classifier) SetClassRole(ci int, role Role) {
	c.classes[c.mustClass(ci)].role = role
}

// ClassSize returns the current member count of class ci.
func (c *Classifier) ClassSize(ci int) int { return c.classes[c.mustClass(ci)].size }

// Assign maps index to class ci, overwriting any prior assignment
// (last write wins). Passing Unclassified removes the mapping. Panics
// when index is outside the universe or ci outside [-1, C).
func (c *Classifier) Assign(index, ci int) {
	if index < 0 || index >= c.universe {
		panic(fmt.Sprintf("classify: %s: index %d out of universe [0,%d)", c.name, index, c.universe))
	}
	if ci < Unclassified || ci >= len(c.classes) {
		panic(fmt.Sprintf("classify: %s: class %d out of range [-1,%d)", c.name, ci, len(c.classes)))
	}
	if old := c.assignment[index]; old != Unclassified {
		c.classes[old].size--
	}
	c.assignment[index] = ci
	if ci != Unclassified {
		c.classes[ci].size++
	}
}

// ClassOf returns the class of index, or Unclassified.
func (c *Classifier) ClassOf(index int) int {
	if index < 0 || index >= c.universe {
		panic(fmt.Sprintf("classify: %s: index %d out of universe [0,%d)", c.name, index, c.universe))
	}
	return c.assignment[index]
}

// IsClassified reports whether index belongs to a class.
func (c *Classifier) IsClassified(index int) bool { return c.ClassOf(index) != Unclassified }

// GetAllSubsets enumerates every subset of the selected class indices by
// iterative doubling, 2^k subsets including the empty one. The selected
// classes must exist; k is expected to stay single-digit because
// classifiers are capped before propagation.
func (c *Classifier) GetAllSubsets(selected ...int) [][]int {
	for _, ci := range selected {
		c.mustClass(ci)
	}
	subsets := make([][]int, 1, 1<<len(selected))
	subsets[0] = []int{}
	for _, ci := range selected {
		n := len(subsets)
		for i := 0; i < n; i++ {
			next := make([]int, len(subsets[i]), len(subsets[i])+1)
			copy(next, subsets[i])
			subsets = append(subsets, append(next, ci))
		}
	}
	return subsets
}

// DuplicateOf reports whether both classifiers induce the same partition
// of the same universe, ignoring class identities, names and roles. The
// check is symmetric: a bijection between class indices must explain
// every assignment in both directions, and an index classified on one
// side only breaks equivalence immediately.
func (c *Classifier) DuplicateOf(other *Classifier) bool {
	if other == nil || c.kind != other.kind || c.universe != other.universe {
		return false
	}
	fwd := make([]int, len(c.classes))
	bwd := make([]int, len(other.classes))
	for i := range fwd {
		fwd[i] = Unclassified
	}
	for i := range bwd {
		bwd[i] = Unclassified
	}
	for i := 0; i < c.universe; i++ {
		a, b := c.assignment[i], other.assignment[i]
		if (a == Unclassified) != (b == Unclassified) {
			return false
		}
		if a == Unclassified {
			continue
		}
		if fwd[a] == Unclassified {
			fwd[a] = b
		} else if fwd[a] != b {
			return false
		}
		if bwd[b] == Unclassified {
			bwd[b] = a
		} else if bwd[b] != a {
			return false
		}
	}
	return true
}

// ReduceClasses merges the smallest classes into one synthetic "merged"
// class so that at most maxNumber classes remain, and returns the old→new
// class remapping. It returns nil without touching the classifier when
// the count is already within bound, or when it exceeds twice the target
// (merging that much is considered unreliable). Surviving classes keep
// their relative order; the merged class comes last.
func (c *Classifier) ReduceClasses(maxNumber int) []int {
	if maxNumber < 1 {
		panic(fmt.Sprintf("classify: %s: ReduceClasses(%d): target must be positive", c.name, maxNumber))
	}
	n := len(c.classes)
	if n <= maxNumber || n > 2*maxNumber {
		return nil
	}

	// Pick the victims: smallest by member count, lowest index first.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return c.classes[order[a]].size < c.classes[order[b]].size
	})
	merge := make([]bool, n)
	for _, ci := range order[:n-maxNumber+1] {
		merge[ci] = true
	}

	remap := make([]int, n)
	merged := classMeta{name: "merged", role: RoleAll}
	var survivors []classMeta
	for ci, meta := range c.classes {
		if merge[ci] {
			remap[ci] = maxNumber - 1
			merged.size += meta.size
			if merged.desc != "" {
				merged.desc += ", "
			}
			merged.desc += meta.name
			continue
		}
		remap[ci] = len(survivors)
		survivors = append(survivors, meta)
	}
	merged.desc = "merged: " + merged.desc
	c.classes = append(survivors, merged)

	for i, a := range c.assignment {
		if a != Unclassified {
			c.assignment[i] = remap[a]
		}
	}
	return remap
}

// RemoveEmptyClasses compacts out classes without members, shifting
// higher class indices down and remapping every assignment. Returns the
// number of classes removed.
func (c *Classifier) RemoveEmptyClasses() int {
	remap := make([]int, len(c.classes))
	var kept []classMeta
	removed := 0
	for ci, meta := range c.classes {
		if meta.size == 0 {
			remap[ci] = Unclassified
			removed++
			continue
		}
		remap[ci] = len(kept)
		kept = append(kept, meta)
	}
	if removed == 0 {
		return 0
	}
	c.classes = kept
	for i, a := range c.assignment {
		if a != Unclassified {
			c.assignment[i] = remap[a]
		}
	}
	return removed
}

func (c *Classifier) mustClass(ci int) int {
	if ci < 0 || ci >= len(c.classes) {
		panic(fmt.Sprintf("classify: %s: class %d out of range [0,%d)", c.name, ci, len(c.classes)))
	}
	return ci
}
