// SPDX-License-Identifier: MIT

// impl_linking_conss.go - implementation of LinkingConss.
//
// Contract:
//   - k ≥ 1 (else ErrBadShape); a non-empty layout (else ErrNoLayout);
//     2 ≤ span ≤ len(layout) (else ErrSpanRange).
//   - Row j is named link<n> (n continues across calls) and covers the
//     first variable of each of `span` consecutive blocks starting at
//     block n mod (B-span+1), so k = B-1 with span = 2 yields the full
//     staircase coupling.
//
// Determinism: supports depend only on the layout and the counters.

package builder

import (
	"fmt"

	"github.com/katalvlaran/dantzig/core"
)

const (
	methodLinkingConss = "LinkingConss"
	minLinkSpan        = 2
)

// LinkingConss returns a Constructor that couples consecutive blocks of
// the existing layout with k spanning rows.
func LinkingConss(k, span int) Constructor {
	return func(p *core.Problem, st *buildState) error {
		if k < 1 {
			return fmt.Errorf("%s: k=%d < 1: %w", methodLinkingConss, k, ErrBadShape)
		}
		nb := len(st.blocks)
		if nb == 0 {
			return fmt.Errorf("%s: %w", methodLinkingConss, ErrNoLayout)
		}
		if span < minLinkSpan || span > nb {
			return fmt.Errorf("%s: span=%d outside [%d,%d]: %w", methodLinkingConss, span, minLinkSpan, nb, ErrSpanRange)
		}

		cfg := st.cfg
		starts := nb - span + 1
		for j := 0; j < k; j++ {
			n := st.nLinkRows
			st.nLinkRows++

			start := n % starts
			entries := make([]core.Entry, 0, span)
			for b := start; b < start+span; b++ {
				entries = append(entries, core.Entry{Var: st.blocks[b].lo, Coef: st.coef()})
			}

			name := fmt.Sprintf("link%d", n)
			if _, err := p.AddConstraint(name, cfg.sense, cfg.rhs, entries...); err != nil {
				return fmt.Errorf("%s: row %s: %w", methodLinkingConss, name, ErrConstructFailed)
			}
		}

		return nil
	}
}
