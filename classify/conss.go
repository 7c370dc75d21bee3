// SPDX-License-Identifier: MIT

package classify

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/dantzig/core"
)

// ConssByFlavor classifies every constraint by its derived flavor, one
// class per flavor present, in first-encounter order. Set-like flavors
// (partitioning/packing/covering) get the master role: they are the rows
// the master-forcing policy carves out.
func ConssByFlavor(p *core.Problem) *Classifier {
	c := NewConsClassifier("consflavors", p.NConss())
	byFlavor := make(map[core.ConsFlavor]int)
	for i := 0; i < p.NConss(); i++ {
		fl := p.ConsFlavorOf(i)
		ci, ok := byFlavor[fl]
		if !ok {
			role := RoleAll
			if fl.IsSetLike() {
				role = RoleMaster
			}
			ci = c.AddClass(fl.String(), "constraints of flavor "+fl.String(), role)
			byFlavor[fl] = ci
		}
		c.Assign(i, ci)
	}
	return c
}

// ConssByNNonzeros classifies every constraint by its nonzero count, one
// class per distinct row size, in first-encounter order.
func ConssByNNonzeros(p *core.Problem) *Classifier {
	c := NewConsClassifier("consnnonzeros", p.NConss())
	bySize := make(map[int]int)
	for i := 0; i < p.NConss(); i++ {
		size := p.ConsSize(i)
		ci, ok := bySize[size]
		if !ok {
			ci = c.AddClass(fmt.Sprintf("nnz=%d", size),
				fmt.Sprintf("constraints with %d nonzeros", size), RoleAll)
			bySize[size] = ci
		}
		c.Assign(i, ci)
	}
	return c
}

// ConssByNameDigitFree classifies every constraint by its name with all
// decimal digits removed, so rows that differ only in an index ("cap1",
// "cap2") land in one class. Modeling languages emit row families this
// way; the surviving stems often mirror the intended structure.
func ConssByNameDigitFree(p *core.Problem) *Classifier {
	c := NewConsClassifier("consnamedigitfree", p.NConss())
	byStem := make(map[string]int)
	for i := 0; i < p.NConss(); i++ {
		stem := strings.Map(dropDigit, p.ConsName(i))
		ci, ok := byStem[stem]
		if !ok {
			ci = c.AddClass(stem, fmt.Sprintf("constraints named %q plus digits", stem), RoleAll)
			byStem[stem] = ci
		}
		c.Assign(i, ci)
	}
	return c
}

func dropDigit(r rune) rune {
	if r >= '0' && r <= '9' {
		return -1
	}
	return r
}
