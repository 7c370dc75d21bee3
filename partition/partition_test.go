package partition_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
	"github.com/katalvlaran/dantzig/partition"
)

// chainProblem builds the canonical two-component fixture:
//
//	c1 = {v1,v2}, c2 = {v2,v3}, c3 = {v4}, c4 = {v4,v5}
//
// c1-c2 chain through v2, c3-c4 chain through v4, no bridge between them.
func chainProblem(t *testing.T) *core.Problem {
	t.Helper()
	p := core.NewProblem(core.WithName("chain"))
	for _, name := range []string{"v1", "v2", "v3", "v4", "v5"} {
		_, err := p.AddVariable(name, core.VarContinuous)
		require.NoError(t, err)
	}
	add := func(name string, vars ...int) {
		entries := make([]core.Entry, len(vars))
		for i, v := range vars {
			entries[i] = core.Entry{Var: v, Coef: 1}
		}
		_, err := p.AddConstraint(name, core.SenseLE, 10, entries...)
		require.NoError(t, err)
	}
	add("c1", 0, 1)
	add("c2", 1, 2)
	add("c3", 3)
	add("c4", 3, 4)
	return p
}

func TestUnionFind_RepresentativeNeverGrows(t *testing.T) {
	u := partition.NewUnionFind(8)
	require.Equal(t, 8, u.Len())

	for i := 0; i < 8; i++ {
		assert.Equal(t, i, u.Find(i))
	}

	u.Union(5, 2)
	u.Union(7, 5)
	u.Union(3, 6)

	// The smallest member always represents its set.
	assert.Equal(t, 2, u.Find(5))
	assert.Equal(t, 2, u.Find(7))
	assert.Equal(t, 3, u.Find(6))
	assert.True(t, u.Same(2, 7))
	assert.False(t, u.Same(2, 3))

	// After compression every representative is <= its index.
	u.Union(0, 7)
	for i := 0; i < 8; i++ {
		assert.LessOrEqual(t, u.Find(i), i, "index %d", i)
	}
}

func TestUnionFind_Guards(t *testing.T) {
	require.Panics(t, func() { partition.NewUnionFind(-1) })
	u := partition.NewUnionFind(3)
	require.Panics(t, func() { u.Find(3) })
	require.Panics(t, func() { u.Union(0, -1) })
}

func TestPartition_TwoIndependentBlocks(t *testing.T) {
	p := chainProblem(t)

	res, err := partition.Partition(p)
	require.NoError(t, err)
	require.Equal(t, 2, res.NBlocks)

	want := []decomp.Label{
		decomp.InBlock(1), decomp.InBlock(1), // c1, c2
		decomp.InBlock(2), decomp.InBlock(2), // c3, c4
	}
	assert.Equal(t, want, res.ConsLabel)

	assert.Equal(t, []decomp.Label{
		decomp.InBlock(1), decomp.InBlock(1), decomp.InBlock(1),
		decomp.InBlock(2), decomp.InBlock(2),
	}, res.VarLabel)
}

func TestPartition_MasterForcedConstraint(t *testing.T) {
	p := chainProblem(t)

	forceC1 := func(p *core.Problem, i int) bool { return p.ConsName(i) == "c1" }
	res, err := partition.Partition(p, partition.WithMasterPredicate(forceC1))
	require.NoError(t, err)
	require.Equal(t, 2, res.NBlocks)

	assert.Equal(t, decomp.Master(), res.ConsLabel[0])
	assert.Equal(t, decomp.InBlock(1), res.ConsLabel[1])
	assert.Equal(t, decomp.InBlock(2), res.ConsLabel[2])
	assert.Equal(t, decomp.InBlock(2), res.ConsLabel[3])

	// v1 is referenced only by the forced-master row, so it leaves the
	// blocks for the border.
	assert.Equal(t, decomp.Master(), res.VarLabel[0])
	assert.Equal(t, decomp.InBlock(1), res.VarLabel[1])
	assert.Equal(t, decomp.InBlock(1), res.VarLabel[2])
}

func TestPartition_SingleBlockFails(t *testing.T) {
	p := core.NewProblem()
	for i := 0; i < 3; i++ {
		_, err := p.AddVariable(fmt.Sprintf("x%d", i), core.VarContinuous)
		require.NoError(t, err)
	}
	// x1 bridges both rows: one component only.
	_, err := p.AddConstraint("r1", core.SenseLE, 1,
		core.Entry{Var: 0, Coef: 1}, core.Entry{Var: 1, Coef: 1})
	require.NoError(t, err)
	_, err = p.AddConstraint("r2", core.SenseLE, 1,
		core.Entry{Var: 1, Coef: 1}, core.Entry{Var: 2, Coef: 1})
	require.NoError(t, err)

	res, err := partition.Partition(p)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, partition.ErrSingleBlock)

	// Forcing everything to master leaves zero blocks, still the same
	// policy outcome.
	all := func(*core.Problem, int) bool { return true }
	_, err = partition.Partition(p, partition.WithMasterPredicate(all))
	assert.ErrorIs(t, err, partition.ErrSingleBlock)
}

func TestPartition_ZeroIncidenceRowIsIgnored(t *testing.T) {
	p := chainProblem(t)
	_, err := p.AddConstraint("empty", core.SenseEQ, 0)
	require.NoError(t, err)

	res, err := partition.Partition(p)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NBlocks)
	assert.Equal(t, decomp.Ignored(), res.ConsLabel[4])
}

func TestPartition_SkipPredicateCutsBridges(t *testing.T) {
	p := chainProblem(t)
	// Bridge both components through a new variable.
	vb, err := p.AddVariable("bridge", core.VarContinuous)
	require.NoError(t, err)
	_, err = p.AddConstraint("b1", core.SenseLE, 1,
		core.Entry{Var: 1, Coef: 1}, core.Entry{Var: vb, Coef: 1})
	require.NoError(t, err)
	_, err = p.AddConstraint("b2", core.SenseLE, 1,
		core.Entry{Var: 3, Coef: 1}, core.Entry{Var: vb, Coef: 1})
	require.NoError(t, err)

	_, err = partition.Partition(p)
	assert.ErrorIs(t, err, partition.ErrSingleBlock)

	// Declaring the bridge variable non-conducting restores two blocks,
	// and the variable itself comes out linking.
	skip := func(p *core.Problem, v int) bool { return p.VarName(v) == "bridge" }
	res, err := partition.Partition(p, partition.WithSkipPredicate(skip))
	require.NoError(t, err)
	assert.Equal(t, 2, res.NBlocks)
	assert.Equal(t, decomp.Linking(), res.VarLabel[vb])
}

func TestPartition_NilProblem(t *testing.T) {
	res, err := partition.Partition(nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, partition.ErrNilProblem)
}

func TestPartition_Deterministic(t *testing.T) {
	p := chainProblem(t)
	first, err := partition.Partition(p)
	require.NoError(t, err)
	second, err := partition.Partition(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
