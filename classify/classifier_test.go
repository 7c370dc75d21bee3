// SPDX-License-Identifier: MIT

package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dantzig/classify"
)

func TestClassifier_AssignLastWriteWins(t *testing.T) {
	c := classify.NewVarClassifier("demo", 5)
	assert.Equal(t, "demo", c.Name())
	assert.Equal(t, classify.KindVar, c.Kind())
	assert.Equal(t, 5, c.Universe())
	assert.Equal(t, 0, c.NClasses())

	a := c.AddClass("a", "first", classify.RoleAll)
	b := c.AddClass("b", "second", classify.RoleMaster)
	require.Equal(t, 0, a)
	require.Equal(t, 1, b)
	assert.Equal(t, "a", c.ClassName(a))
	assert.Equal(t, "second", c.ClassDescription(b))
	assert.Equal(t, classify.RoleMaster, c.ClassRole(b))

	for i := 0; i < 5; i++ {
		assert.False(t, c.IsClassified(i))
		assert.Equal(t, classify.Unclassified, c.ClassOf(i))
	}

	c.Assign(0, a)
	c.Assign(1, a)
	c.Assign(2, b)
	assert.Equal(t, 2, c.ClassSize(a))
	assert.Equal(t, 1, c.ClassSize(b))

	// Reassignment overwrites silently and keeps counts consistent.
	c.Assign(1, b)
	assert.Equal(t, 1, c.ClassSize(a))
	assert.Equal(t, 2, c.ClassSize(b))
	assert.Equal(t, b, c.ClassOf(1))

	// Unclassifying works the same way.
	c.Assign(1, classify.Unclassified)
	assert.Equal(t, 1, c.ClassSize(b))
	assert.False(t, c.IsClassified(1))

	c.SetClassRole(a, classify.RoleLinking)
	assert.Equal(t, classify.RoleLinking, c.ClassRole(a))
}

func TestClassifier_AssignGuards(t *testing.T) {
	c := classify.NewConsClassifier("guards", 3)
	a := c.AddClass("a", "", classify.RoleAll)

	require.Panics(t, func() { c.Assign(3, a) })
	require.Panics(t, func() { c.Assign(-1, a) })
	require.Panics(t, func() { c.Assign(0, 1) })
	require.Panics(t, func() { c.Assign(0, -2) })
	require.Panics(t, func() { c.ClassOf(3) })
	require.Panics(t, func() { c.ClassName(1) })
	require.Panics(t, func() { classify.NewVarClassifier("neg", -1) })
}

func TestClassifier_GetAllSubsets(t *testing.T) {
	c := classify.NewVarClassifier("subsets", 1)
	a := c.AddClass("a", "", classify.RoleAll)
	b := c.AddClass("b", "", classify.RoleAll)
	d := c.AddClass("d", "", classify.RoleAll)

	subsets := c.GetAllSubsets(a, b, d)
	require.Len(t, subsets, 8)

	// The empty subset appears exactly once.
	empty := 0
	for _, s := range subsets {
		if len(s) == 0 {
			empty++
		}
	}
	assert.Equal(t, 1, empty)

	// Iterative doubling order: each class doubles what came before.
	assert.Equal(t, [][]int{
		{}, {a}, {b}, {a, b}, {d}, {a, d}, {b, d}, {a, b, d},
	}, subsets)

	// Zero selected classes still yields the empty subset.
	assert.Equal(t, [][]int{{}}, c.GetAllSubsets())

	require.Panics(t, func() { c.GetAllSubsets(3) })
}

func TestClassifier_DuplicateOf(t *testing.T) {
	build := func(assign []int, nclasses int) *classify.Classifier {
		c := classify.NewVarClassifier("x", len(assign))
		for i := 0; i < nclasses; i++ {
			c.AddClass("c", "", classify.RoleAll)
		}
		for i, ci := range assign {
			if ci != classify.Unclassified {
				c.Assign(i, ci)
			}
		}
		return c
	}

	t.Run("same partition, permuted class ids", func(t *testing.T) {
		a := build([]int{0, 0, 1, 1, 2}, 3)
		b := build([]int{2, 2, 0, 0, 1}, 3)
		assert.True(t, a.DuplicateOf(b))
		assert.True(t, b.DuplicateOf(a))
	})

	t.Run("partial classification matches", func(t *testing.T) {
		a := build([]int{0, classify.Unclassified, 1, classify.Unclassified, 0}, 2)
		b := build([]int{1, classify.Unclassified, 0, classify.Unclassified, 1}, 2)
		assert.True(t, a.DuplicateOf(b))
		assert.True(t, b.DuplicateOf(a))
	})

	t.Run("classified on one side only", func(t *testing.T) {
		a := build([]int{0, 0, 1, 1, 1}, 2)
		b := build([]int{0, 0, 1, 1, classify.Unclassified}, 2)
		assert.False(t, a.DuplicateOf(b))
		assert.False(t, b.DuplicateOf(a))
	})

	t.Run("one class split in the other", func(t *testing.T) {
		// a's class 0 covers what b splits into 0 and 1. The check must
		// fail in both directions, not only when the split side drives.
		a := build([]int{0, 0, 0, 1, 1}, 2)
		b := build([]int{0, 0, 1, 2, 2}, 3)
		assert.False(t, a.DuplicateOf(b))
		assert.False(t, b.DuplicateOf(a))
	})

	t.Run("different universe or kind", func(t *testing.T) {
		a := build([]int{0, 0}, 1)
		b := build([]int{0, 0, 0}, 1)
		assert.False(t, a.DuplicateOf(b))
		assert.False(t, a.DuplicateOf(nil))

		conss := classify.NewConsClassifier("y", 2)
		conss.AddClass("c", "", classify.RoleAll)
		conss.Assign(0, 0)
		conss.Assign(1, 0)
		assert.False(t, a.DuplicateOf(conss))
	})
}

func TestClassifier_ReduceClasses(t *testing.T) {
	build := func() *classify.Classifier {
		c := classify.NewConsClassifier("reduce", 10)
		// Sizes: c0=4, c1=3, c2=1, c3=2, c4=0.
		c.AddClass("big", "", classify.RoleAll)
		c.AddClass("mid", "", classify.RoleMaster)
		c.AddClass("tiny", "", classify.RoleAll)
		c.AddClass("small", "", classify.RoleAll)
		c.AddClass("empty", "", classify.RoleAll)
		for i, ci := range []int{0, 0, 0, 0, 1, 1, 1, 2, 3, 3} {
			c.Assign(i, ci)
		}
		return c
	}

	t.Run("no-op within bound", func(t *testing.T) {
		c := build()
		assert.Nil(t, c.ReduceClasses(5))
		assert.Equal(t, 5, c.NClasses())
	})

	t.Run("no-op beyond double the target", func(t *testing.T) {
		c := build()
		assert.Nil(t, c.ReduceClasses(2))
		assert.Equal(t, 5, c.NClasses())
	})

	t.Run("merges the smallest classes", func(t *testing.T) {
		c := build()
		remap := c.ReduceClasses(3)
		// empty(0), tiny(1) and small(2) merge; big and mid survive.
		require.Equal(t, []int{0, 1, 2, 2, 2}, remap)
		require.Equal(t, 3, c.NClasses())
		assert.Equal(t, "big", c.ClassName(0))
		assert.Equal(t, "mid", c.ClassName(1))
		assert.Equal(t, "merged", c.ClassName(2))
		assert.Equal(t, classify.RoleMaster, c.ClassRole(1))
		assert.Equal(t, 4, c.ClassSize(0))
		assert.Equal(t, 3, c.ClassSize(1))
		assert.Equal(t, 3, c.ClassSize(2))
		assert.Equal(t, 2, c.ClassOf(7))
		assert.Equal(t, 2, c.ClassOf(9))
	})

	t.Run("positive target required", func(t *testing.T) {
		c := build()
		require.Panics(t, func() { c.ReduceClasses(0) })
	})
}

func TestClassifier_RemoveEmptyClasses(t *testing.T) {
	c := classify.NewVarClassifier("compact", 6)
	a := c.AddClass("a", "", classify.RoleAll)
	c.AddClass("b", "", classify.RoleLinking)
	d := c.AddClass("d", "", classify.RoleAll)
	c.Assign(0, a)
	c.Assign(1, d)
	c.Assign(2, d)

	// b never got members; a loses its only member again.
	c.Assign(0, d)

	removed := c.RemoveEmptyClasses()
	assert.Equal(t, 2, removed)
	require.Equal(t, 1, c.NClasses())
	assert.Equal(t, "d", c.ClassName(0))
	assert.Equal(t, 3, c.ClassSize(0))
	for _, i := range []int{0, 1, 2} {
		assert.Equal(t, 0, c.ClassOf(i))
	}

	// Idempotent once compact.
	assert.Equal(t, 0, c.RemoveEmptyClasses())
}
