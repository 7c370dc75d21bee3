// SPDX-License-Identifier: MIT

package classify

import (
	"github.com/katalvlaran/dantzig/core"
)

// VarsByType classifies every variable by its domain class (binary,
// integer, implicit, continuous), one class per type present, in
// first-encounter order.
func VarsByType(p *core.Problem) *Classifier {
	c := NewVarClassifier("vartypes", p.NVars())
	byType := make(map[core.VarType]int)
	for v := 0; v < p.NVars(); v++ {
		vt := p.VarType(v)
		ci, ok := byType[vt]
		if !ok {
			ci = c.AddClass(vt.String(), vt.String()+" variables", RoleAll)
			byType[vt] = ci
		}
		c.Assign(v, ci)
	}
	return c
}

// VarsByObjSign classifies every variable by the sign of its objective
// coefficient: "obj<0", "obj=0", "obj>0". Only signs that occur get a
// class.
func VarsByObjSign(p *core.Problem) *Classifier {
	c := NewVarClassifier("varobjsigns", p.NVars())
	bySign := make(map[int]int)
	for v := 0; v < p.NVars(); v++ {
		sign := 0
		switch coef := p.ObjCoef(v); {
		case coef < 0:
			sign = -1
		case coef > 0:
			sign = 1
		}
		ci, ok := bySign[sign]
		if !ok {
			name, desc := "obj=0", "variables without objective coefficient"
			switch sign {
			case -1:
				name, desc = "obj<0", "variables with negative objective coefficient"
			case 1:
				name, desc = "obj>0", "variables with positive objective coefficient"
			}
			ci = c.AddClass(name, desc, RoleAll)
			bySign[sign] = ci
		}
		c.Assign(v, ci)
	}
	return c
}
