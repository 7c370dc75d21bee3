// SPDX-License-Identifier: MIT

package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dantzig/classify"
	"github.com/katalvlaran/dantzig/core"
)

// mixedProblem builds a little model exercising several flavors:
//
//	part:  b0+b1+b2 = 1          setpartitioning
//	pack:  b0+b1    <= 1         setpacking
//	knap:  2b0+3b1+b2 <= 4       knapsack
//	lin:   b0+z     <= 2         varbound (2 vars)
//
// with binary b0..b2 and continuous z, objective only on b0 and z.
func mixedProblem(t *testing.T) *core.Problem {
	t.Helper()
	p := core.NewProblem(core.WithName("mixed"))
	for _, name := range []string{"b0", "b1", "b2"} {
		_, err := p.AddVariable(name, core.VarBinary)
		require.NoError(t, err)
	}
	z, err := p.AddVariable("z", core.VarContinuous)
	require.NoError(t, err)
	p.SetObjCoef(0, -1)
	p.SetObjCoef(z, 2.5)

	_, err = p.AddConstraint("part", core.SenseEQ, 1,
		core.Entry{Var: 0, Coef: 1}, core.Entry{Var: 1, Coef: 1}, core.Entry{Var: 2, Coef: 1})
	require.NoError(t, err)
	_, err = p.AddConstraint("pack", core.SenseLE, 1,
		core.Entry{Var: 0, Coef: 1}, core.Entry{Var: 1, Coef: 1})
	require.NoError(t, err)
	_, err = p.AddConstraint("knap", core.SenseLE, 4,
		core.Entry{Var: 0, Coef: 2}, core.Entry{Var: 1, Coef: 3}, core.Entry{Var: 2, Coef: 1})
	require.NoError(t, err)
	_, err = p.AddConstraint("lin", core.SenseLE, 2,
		core.Entry{Var: 0, Coef: 1}, core.Entry{Var: z, Coef: 1})
	require.NoError(t, err)
	return p
}

func TestConssByFlavor(t *testing.T) {
	p := mixedProblem(t)
	c := classify.ConssByFlavor(p)

	require.Equal(t, classify.KindCons, c.Kind())
	require.Equal(t, 4, c.Universe())
	// setpartitioning, setpacking, knapsack, varbound - in row order.
	require.Equal(t, 4, c.NClasses())
	assert.Equal(t, "setpartitioning", c.ClassName(c.ClassOf(0)))
	assert.Equal(t, "setpacking", c.ClassName(c.ClassOf(1)))
	assert.Equal(t, "knapsack", c.ClassName(c.ClassOf(2)))
	assert.Equal(t, "varbound", c.ClassName(c.ClassOf(3)))

	// Set-like classes carry the master role, the rest stay free.
	assert.Equal(t, classify.RoleMaster, c.ClassRole(c.ClassOf(0)))
	assert.Equal(t, classify.RoleMaster, c.ClassRole(c.ClassOf(1)))
	assert.Equal(t, classify.RoleAll, c.ClassRole(c.ClassOf(2)))
	assert.Equal(t, classify.RoleAll, c.ClassRole(c.ClassOf(3)))

	for i := 0; i < 4; i++ {
		assert.True(t, c.IsClassified(i))
	}
}

func TestConssByNNonzeros(t *testing.T) {
	p := mixedProblem(t)
	c := classify.ConssByNNonzeros(p)

	// Row sizes 3,2,3,2 fold into two classes.
	require.Equal(t, 2, c.NClasses())
	assert.Equal(t, "nnz=3", c.ClassName(c.ClassOf(0)))
	assert.Equal(t, "nnz=2", c.ClassName(c.ClassOf(1)))
	assert.Equal(t, c.ClassOf(0), c.ClassOf(2))
	assert.Equal(t, c.ClassOf(1), c.ClassOf(3))
	assert.Equal(t, 2, c.ClassSize(c.ClassOf(0)))
	assert.Equal(t, 2, c.ClassSize(c.ClassOf(1)))
}

func TestConssByNameDigitFree(t *testing.T) {
	p := core.NewProblem(core.WithName("families"))
	for _, name := range []string{"u", "v"} {
		_, err := p.AddVariable(name, core.VarContinuous)
		require.NoError(t, err)
	}
	for _, name := range []string{"cap1", "cap2", "bal7", "cap10", "bal8"} {
		_, err := p.AddConstraint(name, core.SenseLE, 1,
			core.Entry{Var: 0, Coef: 1}, core.Entry{Var: 1, Coef: 1})
		require.NoError(t, err)
	}
	c := classify.ConssByNameDigitFree(p)

	// cap1/cap2/cap10 share the "cap" stem, bal7/bal8 the "bal" stem.
	require.Equal(t, 2, c.NClasses())
	assert.Equal(t, "cap", c.ClassName(c.ClassOf(0)))
	assert.Equal(t, "bal", c.ClassName(c.ClassOf(2)))
	assert.Equal(t, c.ClassOf(0), c.ClassOf(3))
	assert.Equal(t, c.ClassOf(2), c.ClassOf(4))
	assert.Equal(t, 3, c.ClassSize(c.ClassOf(0)))
	assert.Equal(t, 2, c.ClassSize(c.ClassOf(2)))
	assert.Equal(t, classify.RoleAll, c.ClassRole(c.ClassOf(0)))
}

func TestVarsByType(t *testing.T) {
	p := mixedProblem(t)
	c := classify.VarsByType(p)

	require.Equal(t, classify.KindVar, c.Kind())
	require.Equal(t, 2, c.NClasses())
	assert.Equal(t, "binary", c.ClassName(c.ClassOf(0)))
	assert.Equal(t, "continuous", c.ClassName(c.ClassOf(3)))
	assert.Equal(t, 3, c.ClassSize(c.ClassOf(0)))
	assert.Equal(t, 1, c.ClassSize(c.ClassOf(3)))
}

func TestVarsByObjSign(t *testing.T) {
	p := mixedProblem(t)
	c := classify.VarsByObjSign(p)

	// b0 negative, b1/b2 zero, z positive - encounter order fixes ids.
	require.Equal(t, 3, c.NClasses())
	assert.Equal(t, "obj<0", c.ClassName(c.ClassOf(0)))
	assert.Equal(t, "obj=0", c.ClassName(c.ClassOf(1)))
	assert.Equal(t, "obj=0", c.ClassName(c.ClassOf(2)))
	assert.Equal(t, "obj>0", c.ClassName(c.ClassOf(3)))
	assert.Equal(t, 2, c.ClassSize(c.ClassOf(1)))
}

func TestBuilders_TypePartitionsAreDuplicates(t *testing.T) {
	p := mixedProblem(t)

	// Same partition built twice is a duplicate of itself; a different
	// classification of the same universe is not.
	a := classify.VarsByType(p)
	b := classify.VarsByType(p)
	assert.True(t, a.DuplicateOf(b))

	s := classify.VarsByObjSign(p)
	assert.False(t, a.DuplicateOf(s))
}
