package score

import (
	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
)

// borderCells returns the number of matrix cells covered by the border:
// full rows for linking constraints, full columns for border variables,
// their intersection counted once.
func borderCells(p *core.Problem, d *decomp.Decomposition) int {
	lc := len(d.LinkingConss())
	lv := len(d.LinkingVars())
	return lc*p.NVars() + lv*p.NConss() - lc*lv
}

// BorderArea scores how little of the matrix the border occupies:
// 1 - border cells / total cells. A diagonal decomposition scores 1.
func BorderArea(p *core.Problem, d *decomp.Decomposition) float64 {
	total := p.NConss() * p.NVars()
	if total == 0 {
		return 0
	}
	return 1 - float64(borderCells(p, d))/float64(total)
}

// BlockDensity scores the mean nonzero density of the block interiors:
// for each block, the number of incidences between its constraints and
// its own variables over the block area, averaged over blocks. Blocks
// without variables contribute zero.
func BlockDensity(p *core.Problem, d *decomp.Decomposition) float64 {
	nblocks := d.NBlocks()
	if nblocks == 0 {
		return 0
	}
	sum := 0.0
	for k := 1; k <= nblocks; k++ {
		area := len(d.BlockConss(k)) * len(d.BlockVars(k))
		if area == 0 {
			continue
		}
		nnz := 0
		for _, i := range d.BlockConss(k) {
			for _, v := range p.ConsVars(i) {
				if d.VarLabel(v) == decomp.InBlock(k) {
					nnz++
				}
			}
		}
		sum += float64(nnz) / float64(area)
	}
	return sum / float64(nblocks)
}

// MaxWhite scores the white area of the reordered matrix: the fraction
// of cells covered by neither a block nor the border. Small dense blocks
// with a thin border score high.
func MaxWhite(p *core.Problem, d *decomp.Decomposition) float64 {
	total := p.NConss() * p.NVars()
	if total == 0 {
		return 0
	}
	covered := borderCells(p, d)
	for k := 1; k <= d.NBlocks(); k++ {
		covered += len(d.BlockConss(k)) * len(d.BlockVars(k))
	}
	return 1 - float64(covered)/float64(total)
}
