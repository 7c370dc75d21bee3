package detect_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
	"github.com/katalvlaran/dantzig/detect"
	"github.com/katalvlaran/dantzig/params"
)

// chainProblem has two connected components: c1-c2 share v2, c3-c4 share
// v4, and nothing ties the halves together.
func chainProblem(t *testing.T) *core.Problem {
	t.Helper()
	p := core.NewProblem(core.WithName("chain"))
	v := addVars(t, p, "v1", "v2", "v3", "v4", "v5")
	addRow(t, p, "c1", core.SenseLE, 5, v[0], v[1])
	addRow(t, p, "c2", core.SenseLE, 5, v[1], v[2])
	addRow(t, p, "c3", core.SenseLE, 5, v[3])
	addRow(t, p, "c4", core.SenseLE, 5, v[3], v[4])
	return p
}

// signature renders a decomposition's full labeling for equality checks.
func signature(p *core.Problem, d *decomp.Decomposition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/%d:", d.Type(), d.NBlocks())
	for i := 0; i < p.NConss(); i++ {
		sb.WriteString(d.ConsLabel(i).String())
		sb.WriteByte(';')
	}
	for v := 0; v < p.NVars(); v++ {
		sb.WriteString(d.VarLabel(v).String())
		sb.WriteByte(';')
	}
	return sb.String()
}

func TestEngine_RunFindsDiagonal(t *testing.T) {
	p := chainProblem(t)
	pool, err := detect.NewEngine(p).Run(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, pool.Len(), 2)

	best, sc, ok := pool.Best()
	require.True(t, ok)
	assert.Equal(t, decomp.TypeDiagonal, best.Type())
	assert.Equal(t, 2, best.NBlocks())
	assert.InDelta(t, 0.5, sc, 1e-9)

	require.NotEmpty(t, best.History())
	assert.Contains(t, best.History()[0], "connected")
}

func TestEngine_PoolHoldsNoDuplicates(t *testing.T) {
	// Several classifiers of the chain problem coincide (all variables
	// share one type and one objective sign), so without fingerprint
	// deduplication the same labeling would be pooled repeatedly.
	p := chainProblem(t)
	pool, err := detect.NewEngine(p).Run(context.Background())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, d := range pool.Decompositions() {
		sig := signature(p, d)
		assert.False(t, seen[sig], "duplicate decomposition %s", sig)
		seen[sig] = true
	}
}

func TestEngine_ParallelMatchesSequential(t *testing.T) {
	p := chainProblem(t)

	sequential, err := detect.NewEngine(p).Run(context.Background())
	require.NoError(t, err)

	store := params.NewStore()
	store.Set(params.KeyParallelism, 4)
	parallel, err := detect.NewEngine(p, detect.WithParams(store)).Run(context.Background())
	require.NoError(t, err)

	// The engine option bypasses the store, which still says one worker.
	pinned, err := detect.NewEngine(p, detect.WithParallelism(4)).Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, sequential.Len(), parallel.Len())
	require.Equal(t, sequential.Len(), pinned.Len())
	seq := sequential.Decompositions()
	par := parallel.Decompositions()
	pin := pinned.Decompositions()
	for i := range seq {
		assert.Equal(t, signature(p, seq[i]), signature(p, par[i]), "pool position %d", i)
		assert.Equal(t, signature(p, seq[i]), signature(p, pin[i]), "pool position %d", i)
	}
}

func TestEngine_MaxRoundsBoundsExpansion(t *testing.T) {
	p := chainProblem(t)

	store := params.NewStore()
	store.Set(params.KeyMaxRounds, 1)
	pool, err := detect.NewEngine(p, detect.WithParams(store)).Run(context.Background())
	require.NoError(t, err)
	// One round pools only the connected-blocks result; the class
	// splits stay partial and never grow a block to complete around.
	assert.Equal(t, 1, pool.Len())

	store = params.NewStore()
	store.Set(params.KeyMaxRounds, 0)
	pool, err = detect.NewEngine(p, detect.WithParams(store)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, pool.Len())
	_, _, ok := pool.Best()
	assert.False(t, ok)
}

func TestEngine_ScoreSelection(t *testing.T) {
	p := chainProblem(t)

	store := params.NewStore()
	store.Set(params.KeyScore, "borderarea")
	pool, err := detect.NewEngine(p, detect.WithParams(store)).Run(context.Background())
	require.NoError(t, err)
	best, sc, ok := pool.Best()
	require.True(t, ok)
	assert.Equal(t, decomp.TypeDiagonal, best.Type())
	assert.InDelta(t, 1.0, sc, 1e-9) // empty border

	// Short names resolve too.
	store = params.NewStore()
	store.Set(params.KeyScore, "bar")
	pool, err = detect.NewEngine(p, detect.WithParams(store)).Run(context.Background())
	require.NoError(t, err)
	_, sc, ok = pool.Best()
	require.True(t, ok)
	assert.InDelta(t, 1.0, sc, 1e-9)
}

func TestEngine_UnknownScore(t *testing.T) {
	store := params.NewStore()
	store.Set(params.KeyScore, "nope")

	pool, err := detect.NewEngine(chainProblem(t), detect.WithParams(store)).Run(context.Background())
	assert.ErrorIs(t, err, detect.ErrUnknownScore)
	assert.Nil(t, pool)
}

func TestEngine_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool, err := detect.NewEngine(chainProblem(t)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, pool)
	assert.Equal(t, 0, pool.Len())
}

func TestEngine_CustomDetectorLineup(t *testing.T) {
	p := chainProblem(t)
	store := params.NewStore()

	reg := detect.NewRegistry()
	reg.Register(detect.NewConnectedBlocks(store))

	pool, err := detect.NewEngine(p,
		detect.WithParams(store),
		detect.WithDetectors(reg),
	).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, pool.Len())
	best, _, ok := pool.Best()
	require.True(t, ok)
	assert.Equal(t, decomp.TypeDiagonal, best.Type())
}
