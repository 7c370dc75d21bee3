// SPDX-License-Identifier: MIT

// impl_singleton.go - implementation of SingletonConss.
//
// Contract:
//   - k ≥ 1 (else ErrBadShape); at least one registered variable
//     (else ErrNoLayout).
//   - Row j is named s<n> (n continues across calls) and covers the
//     single variable n mod NVars. Singleton rows attach to whatever
//     block their variable ends up in without coupling anything.
//
// Determinism: supports depend only on NVars and the counters.

package builder

import (
	"fmt"

	"github.com/katalvlaran/dantzig/core"
)

const methodSingletonConss = "SingletonConss"

// SingletonConss returns a Constructor that adds k one-nonzero rows over
// the existing variables, round-robin.
func SingletonConss(k int) Constructor {
	return func(p *core.Problem, st *buildState) error {
		if k < 1 {
			return fmt.Errorf("%s: k=%d < 1: %w", methodSingletonConss, k, ErrBadShape)
		}
		nv := p.NVars()
		if nv == 0 {
			return fmt.Errorf("%s: no variables to bound: %w", methodSingletonConss, ErrNoLayout)
		}

		cfg := st.cfg
		for j := 0; j < k; j++ {
			n := st.nSingletons
			st.nSingletons++

			name := fmt.Sprintf("s%d", n)
			entry := core.Entry{Var: n % nv, Coef: st.coef()}
			if _, err := p.AddConstraint(name, cfg.sense, cfg.rhs, entry); err != nil {
				return fmt.Errorf("%s: row %s: %w", methodSingletonConss, name, ErrConstructFailed)
			}
		}

		return nil
	}
}
