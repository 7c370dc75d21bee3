package core

import (
	"fmt"
)

// Name returns the problem name ("" if none was set).
func (p *Problem) Name() string { return p.name }

// NVars returns the number of registered variables.
// Complexity: O(1).
func (p *Problem) NVars() int { return len(p.vars) }

// NConss returns the number of registered constraints.
// Complexity: O(1).
func (p *Problem) NConss() int { return len(p.conss) }

// Size returns NConss()+NVars(), the scale measure used by the detection
// ceilings for large problems.
func (p *Problem) Size() int { return len(p.conss) + len(p.vars) }

// AddVariable registers a new variable and returns its stable 0-based index.
//
// Errors:
//   - ErrEmptyName if name == "".
//   - ErrDuplicateName if a variable of that name exists.
//
// Complexity: O(1) amortized.
func (p *Problem) AddVariable(name string, vtype VarType) (int, error) {
	if name == "" {
		return -1, ErrEmptyName
	}
	if _, ok := p.varIndex[name]; ok {
		return -1, fmt.Errorf("core: variable %q: %w", name, ErrDuplicateName)
	}

	idx := len(p.vars)
	p.vars = append(p.vars, variable{name: name, vtype: vtype, rep: idx})
	p.varIndex[name] = idx

	return idx, nil
}

// AddConstraint registers a new row with the given sense, right-hand side
// and nonzero entries, and returns its stable 0-based index. The incidence
// transpose is maintained here so that later reads never mutate the Problem.
//
// A variable index outside [0, NVars) in entries is a programming error and
// panics; duplicate variable entries within one row are merged by summing
// their coefficients (entries summing to zero are dropped).
//
// Errors:
//   - ErrEmptyName / ErrDuplicateName as for AddVariable.
//
// Complexity: O(len(entries)) amortized.
func (p *Problem) AddConstraint(name string, sense Sense, rhs float64, entries ...Entry) (int, error) {
	if name == "" {
		return -1, ErrEmptyName
	}
	if _, ok := p.consIndex[name]; ok {
		return -1, fmt.Errorf("core: constraint %q: %w", name, ErrDuplicateName)
	}

	// 1. Merge duplicate variable entries, preserving first-seen order.
	seen := make(map[int]int, len(entries)) // var index → position in vars
	var (
		vars  []int
		coefs []float64
	)
	for _, e := range entries {
		if e.Var < 0 || e.Var >= len(p.vars) {
			panic(fmt.Sprintf("core: AddConstraint %q: variable index %d out of range [0,%d)", name, e.Var, len(p.vars)))
		}
		if pos, ok := seen[e.Var]; ok {
			coefs[pos] += e.Coef
			continue
		}
		seen[e.Var] = len(vars)
		vars = append(vars, e.Var)
		coefs = append(coefs, e.Coef)
	}

	// 2. Drop entries whose merged coefficient cancelled to exactly zero.
	if len(vars) > 0 {
		kept := 0
		for i := range vars {
			if coefs[i] != 0 {
				vars[kept] = vars[i]
				coefs[kept] = coefs[i]
				kept++
			}
		}
		vars = vars[:kept]
		coefs = coefs[:kept]
	}

	idx := len(p.conss)
	c := constraint{name: name, sense: sense, rhs: rhs, vars: vars, coefs: coefs}
	c.flavor = deriveFlavor(p, &c)
	p.conss = append(p.conss, c)
	p.consIndex[name] = idx

	// 3. Extend the transpose: each incident variable records this row.
	for _, v := range vars {
		p.vars[v].conss = append(p.vars[v].conss, idx)
	}

	return idx, nil
}

// MarkBranching flags constraint i as host bookkeeping (a branching row).
// Such rows are always excluded from detection graphs. Panics on an index
// out of range.
func (p *Problem) MarkBranching(i int) {
	p.conss[p.mustCons(i)].branching = true
}

// IsBranching reports whether constraint i is a host bookkeeping row.
func (p *Problem) IsBranching(i int) bool {
	return p.conss[p.mustCons(i)].branching
}

// SetRepresentative records that variable v is a copy of original variable
// rep (many copies may share one representative; the mapping is many-to-one
// and lossless). Panics if either index is out of range.
func (p *Problem) SetRepresentative(v, rep int) {
	p.vars[p.mustVar(v)].rep = p.mustVar(rep)
}

// Representative returns the original index variable v stands for; a
// variable with no recorded copy relation represents itself.
func (p *Problem) Representative(v int) int {
	return p.vars[p.mustVar(v)].rep
}

// VarName returns the name of variable v.
func (p *Problem) VarName(v int) string { return p.vars[p.mustVar(v)].name }

// VarType returns the domain class of variable v.
func (p *Problem) VarType(v int) VarType { return p.vars[p.mustVar(v)].vtype }

// SetObjCoef records the objective coefficient of variable v (0 unless
// set). Panics on an index out of range.
func (p *Problem) SetObjCoef(v int, coef float64) {
	p.vars[p.mustVar(v)].obj = coef
}

// ObjCoef returns the objective coefficient of variable v.
func (p *Problem) ObjCoef(v int) float64 { return p.vars[p.mustVar(v)].obj }

// VarByName returns the index of the named variable, or ErrIndexRange if it
// is unknown.
func (p *Problem) VarByName(name string) (int, error) {
	if idx, ok := p.varIndex[name]; ok {
		return idx, nil
	}

	return -1, fmt.Errorf("core: variable %q: %w", name, ErrIndexRange)
}

// ConsName returns the name of constraint i.
func (p *Problem) ConsName(i int) string { return p.conss[p.mustCons(i)].name }

// ConsByName returns the index of the named constraint, or ErrIndexRange if
// it is unknown.
func (p *Problem) ConsByName(name string) (int, error) {
	if idx, ok := p.consIndex[name]; ok {
		return idx, nil
	}

	return -1, fmt.Errorf("core: constraint %q: %w", name, ErrIndexRange)
}

// ConsSense returns the relation of constraint i.
func (p *Problem) ConsSense(i int) Sense { return p.conss[p.mustCons(i)].sense }

// ConsRHS returns the right-hand side of constraint i.
func (p *Problem) ConsRHS(i int) float64 { return p.conss[p.mustCons(i)].rhs }

// ConsSize returns the number of nonzeros in constraint i.
func (p *Problem) ConsSize(i int) int { return len(p.conss[p.mustCons(i)].vars) }

// ConsVars returns the incident variable indices of constraint i in
// insertion order. The returned slice is owned by the Problem: callers must
// not modify it.
func (p *Problem) ConsVars(i int) []int { return p.conss[p.mustCons(i)].vars }

// ConsCoefs returns the coefficients aligned with ConsVars(i). The returned
// slice is owned by the Problem: callers must not modify it.
func (p *Problem) ConsCoefs(i int) []float64 { return p.conss[p.mustCons(i)].coefs }

// VarConss returns the constraint indices variable v appears in, in row
// insertion order (the incidence transpose). The returned slice is owned by
// the Problem: callers must not modify it.
func (p *Problem) VarConss(v int) []int { return p.vars[p.mustVar(v)].conss }

// NNonzeros returns the total number of incidences (nonzeros) over all
// constraints. Complexity: O(NConss).
func (p *Problem) NNonzeros() int {
	total := 0
	for i := range p.conss {
		total += len(p.conss[i].vars)
	}

	return total
}

// mustVar validates a variable index, panicking on a programmer error.
func (p *Problem) mustVar(v int) int {
	if v < 0 || v >= len(p.vars) {
		panic(fmt.Sprintf("core: variable index %d out of range [0,%d)", v, len(p.vars)))
	}

	return v
}

// mustCons validates a constraint index, panicking on a programmer error.
func (p *Problem) mustCons(i int) int {
	if i < 0 || i >= len(p.conss) {
		panic(fmt.Sprintf("core: constraint index %d out of range [0,%d)", i, len(p.conss)))
	}

	return i
}
