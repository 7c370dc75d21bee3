// SPDX-License-Identifier: MIT

// impl_random_conss.go - implementation of RandomConss.
//
// Contract:
//   - k ≥ 1 (else ErrBadShape); 0 ≤ density ≤ 1 (else
//     ErrInvalidProbability); a non-nil rng (else ErrNeedRandSource);
//     at least one registered variable (else ErrNoLayout).
//   - Row j is named r<n> (n continues across calls) and includes each
//     existing variable independently with probability density, in
//     ascending variable order. A row whose draw comes up empty is kept
//     empty; zero-incidence rows are a legitimate edge case downstream.
//
// Determinism: fixed per seed, options and call order.

package builder

import (
	"fmt"

	"github.com/katalvlaran/dantzig/core"
)

const (
	methodRandomConss = "RandomConss"
	minDensity        = 0.0
	maxDensity        = 1.0
)

// RandomConss returns a Constructor that adds k Bernoulli rows over all
// existing variables.
func RandomConss(k int, density float64) Constructor {
	return func(p *core.Problem, st *buildState) error {
		if k < 1 {
			return fmt.Errorf("%s: k=%d < 1: %w", methodRandomConss, k, ErrBadShape)
		}
		if density < minDensity || density > maxDensity {
			return fmt.Errorf("%s: density=%g: %w", methodRandomConss, density, ErrInvalidProbability)
		}
		if st.cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomConss, ErrNeedRandSource)
		}
		nv := p.NVars()
		if nv == 0 {
			return fmt.Errorf("%s: no variables to draw from: %w", methodRandomConss, ErrNoLayout)
		}

		cfg := st.cfg
		for j := 0; j < k; j++ {
			n := st.nRandomRows
			st.nRandomRows++

			var entries []core.Entry
			for v := 0; v < nv; v++ {
				if cfg.rng.Float64() < density {
					entries = append(entries, core.Entry{Var: v, Coef: st.coef()})
				}
			}

			name := fmt.Sprintf("r%d", n)
			if _, err := p.AddConstraint(name, cfg.sense, cfg.rhs, entries...); err != nil {
				return fmt.Errorf("%s: row %s: %w", methodRandomConss, name, ErrConstructFailed)
			}
		}

		return nil
	}
}
