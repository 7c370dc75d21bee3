// SPDX-License-Identifier: MIT

// impl_block_diagonal.go - implementation of BlockDiagonal.
//
// Contract:
//   - blocks ≥ 1, conssPerBlock ≥ 1, varsPerBlock ≥ 1 (else ErrBadShape).
//   - Block b (numbered after the blocks already in the layout) adds
//     variables <varPrefix><b>_0 .. <varPrefix><b>_<V-1>, then rows
//     <consPrefix><b>_0 .. <consPrefix><b>_<C-1>.
//   - Row 0 of each block covers all block variables (the anchor keeping
//     the block connected for any C); rows j ≥ 1 cover the pair
//     {j mod V, j+1 mod V}.
//   - Appends one varSpan per block to st.blocks.
//
// Determinism: names, supports and emission order depend only on the
// parameters and the layout size; coefficients on cfg.coefFn and the
// RNG state.

package builder

import (
	"fmt"

	"github.com/katalvlaran/dantzig/core"
)

const methodBlockDiagonal = "BlockDiagonal"

// BlockDiagonal returns a Constructor that lays down `blocks` mutually
// disjoint variable groups with block-local rows.
func BlockDiagonal(blocks, conssPerBlock, varsPerBlock int) Constructor {
	return func(p *core.Problem, st *buildState) error {
		if blocks < 1 {
			return fmt.Errorf("%s: blocks=%d < 1: %w", methodBlockDiagonal, blocks, ErrBadShape)
		}
		if conssPerBlock < 1 {
			return fmt.Errorf("%s: conssPerBlock=%d < 1: %w", methodBlockDiagonal, conssPerBlock, ErrBadShape)
		}
		if varsPerBlock < 1 {
			return fmt.Errorf("%s: varsPerBlock=%d < 1: %w", methodBlockDiagonal, varsPerBlock, ErrBadShape)
		}

		cfg := st.cfg
		for b := 0; b < blocks; b++ {
			// Block numbers continue the existing layout, 1-based.
			num := len(st.blocks) + 1

			lo := p.NVars()
			for i := 0; i < varsPerBlock; i++ {
				name := fmt.Sprintf("%s%d_%d", cfg.varPrefix, num, i)
				if _, err := p.AddVariable(name, cfg.vtype); err != nil {
					return fmt.Errorf("%s: variable %s: %w", methodBlockDiagonal, name, ErrConstructFailed)
				}
			}
			span := varSpan{lo: lo, hi: p.NVars()}

			for j := 0; j < conssPerBlock; j++ {
				var entries []core.Entry
				if j == 0 {
					// Anchor row over the whole block.
					for v := span.lo; v < span.hi; v++ {
						entries = append(entries, core.Entry{Var: v, Coef: st.coef()})
					}
				} else {
					u := span.lo + j%varsPerBlock
					w := span.lo + (j+1)%varsPerBlock
					entries = append(entries, core.Entry{Var: u, Coef: st.coef()})
					if w != u {
						entries = append(entries, core.Entry{Var: w, Coef: st.coef()})
					}
				}
				name := fmt.Sprintf("%s%d_%d", cfg.consPrefix, num, j)
				if _, err := p.AddConstraint(name, cfg.sense, cfg.rhs, entries...); err != nil {
					return fmt.Errorf("%s: row %s: %w", methodBlockDiagonal, name, ErrConstructFailed)
				}
			}

			st.blocks = append(st.blocks, span)
		}

		return nil
	}
}
