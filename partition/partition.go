package partition

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
)

var (
	// ErrNilProblem is returned when Partition receives a nil problem.
	ErrNilProblem = errors.New("partition: nil problem")

	// ErrSingleBlock is returned when connectivity yields fewer than two
	// blocks, i.e. no exploitable structure.
	ErrSingleBlock = errors.New("partition: fewer than two connected blocks")
)

// Result is the labeling produced by Partition. Blocks are numbered 1..N
// in order of first appearance over ascending constraint indices.
type Result struct {
	// ConsLabel holds one label per constraint: a block, master for
	// constraints matching the master predicate, ignored for constraints
	// without incidence entries.
	ConsLabel []decomp.Label

	// VarLabel holds one label per variable: the single block whose
	// constraints reference it, linking when several blocks do, master
	// when none does.
	VarLabel []decomp.Label

	// NBlocks is the number of blocks found, always >= 2 on success.
	NBlocks int
}

// Partition computes the connectivity blocks of p under the given options
// and labels every constraint and variable. It fails with ErrSingleBlock
// when fewer than two blocks emerge; forced-master and ignored constraints
// never count as blocks.
func Partition(p *core.Problem, opts ...Option) (*Result, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := p.NConss()
	excluded := make([]decomp.Label, m) // open = participates in connectivity
	for i := 0; i < m; i++ {
		switch {
		case p.ConsSize(i) == 0:
			excluded[i] = decomp.Ignored()
		case o.masterPred != nil && o.masterPred(p, i):
			excluded[i] = decomp.Master()
		}
	}

	// Union along variable columns: the first participating constraint of
	// each column absorbs the rest.
	uf := NewUnionFind(m)
	for v := 0; v < p.NVars(); v++ {
		if o.skipPred != nil && o.skipPred(p, v) {
			continue
		}
		first := -1
		for _, ci := range p.VarConss(v) {
			if !excluded[ci].IsOpen() {
				continue
			}
			if first < 0 {
				first = ci
				continue
			}
			uf.Union(first, ci)
		}
	}

	// Number the blocks by first appearance in constraint order.
	consLabel := make([]decomp.Label, m)
	blockOfRoot := make([]int, m)
	nblocks := 0
	for i := 0; i < m; i++ {
		if !excluded[i].IsOpen() {
			consLabel[i] = excluded[i]
			continue
		}
		root := uf.Find(i)
		if blockOfRoot[root] == 0 {
			nblocks++
			blockOfRoot[root] = nblocks
		}
		consLabel[i] = decomp.InBlock(blockOfRoot[root])
	}
	if nblocks < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrSingleBlock, nblocks)
	}

	varLabel := make([]decomp.Label, p.NVars())
	for v := range varLabel {
		first, several := 0, false
		for _, ci := range p.VarConss(v) {
			b, ok := consLabel[ci].Block()
			if !ok {
				continue
			}
			if first == 0 {
				first = b
			} else if b != first {
				several = true
				break
			}
		}
		switch {
		case several:
			varLabel[v] = decomp.Linking()
		case first != 0:
			varLabel[v] = decomp.InBlock(first)
		default:
			varLabel[v] = decomp.Master()
		}
	}

	return &Result{ConsLabel: consLabel, VarLabel: varLabel, NBlocks: nblocks}, nil
}
