// SPDX-License-Identifier: MIT

// impl_linking_vars.go - implementation of LinkingVars.
//
// Contract:
//   - k ≥ 1 (else ErrBadShape); a non-empty layout (else ErrNoLayout);
//     at least two blocks (else ErrSpanRange).
//   - Variable j is named z<n> (n continues across calls) and touches
//     blocks n mod B and n+1 mod B through one coupling row per block:
//     z<n>_b<num> over {z<n>, first variable of the block}. Each row is
//     block-local apart from the shared variable, so labeling z<n> as
//     linking restores the diagonal.
//
// Determinism: supports depend only on the layout and the counters.

package builder

import (
	"fmt"

	"github.com/katalvlaran/dantzig/core"
)

const methodLinkingVars = "LinkingVars"

// LinkingVars returns a Constructor that couples pairs of blocks through
// k fresh shared variables.
func LinkingVars(k int) Constructor {
	return func(p *core.Problem, st *buildState) error {
		if k < 1 {
			return fmt.Errorf("%s: k=%d < 1: %w", methodLinkingVars, k, ErrBadShape)
		}
		nb := len(st.blocks)
		if nb == 0 {
			return fmt.Errorf("%s: %w", methodLinkingVars, ErrNoLayout)
		}
		if nb < 2 {
			return fmt.Errorf("%s: %d block cannot host a shared variable: %w", methodLinkingVars, nb, ErrSpanRange)
		}

		cfg := st.cfg
		for j := 0; j < k; j++ {
			n := st.nLinkVars
			st.nLinkVars++

			vname := fmt.Sprintf("z%d", n)
			zv, err := p.AddVariable(vname, cfg.vtype)
			if err != nil {
				return fmt.Errorf("%s: variable %s: %w", methodLinkingVars, vname, ErrConstructFailed)
			}

			for _, b := range []int{n % nb, (n + 1) % nb} {
				name := fmt.Sprintf("z%d_b%d", n, b+1)
				entries := []core.Entry{
					{Var: zv, Coef: st.coef()},
					{Var: st.blocks[b].lo, Coef: st.coef()},
				}
				if _, err := p.AddConstraint(name, cfg.sense, cfg.rhs, entries...); err != nil {
					return fmt.Errorf("%s: row %s: %w", methodLinkingVars, name, ErrConstructFailed)
				}
			}
		}

		return nil
	}
}
