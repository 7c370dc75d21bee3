package core

import "math"

// ConsFlavor is the structural class of a row, derived purely from its
// coefficient pattern, sense and right-hand side. Detection uses flavors in
// two places: the master-forcing heuristic of the partitioner (set-like rows
// couple blocks and may be forced into the master) and the flavor-based
// constraint classifier.
type ConsFlavor int8

const (
	// FlavorLinear is the fallback class for rows with no special structure.
	FlavorLinear ConsFlavor = iota
	// FlavorSetPartitioning is Σ x_i = 1 over binary variables with unit coefficients.
	FlavorSetPartitioning
	// FlavorSetPacking is Σ x_i ≤ 1 over binary variables with unit coefficients.
	FlavorSetPacking
	// FlavorSetCovering is Σ x_i ≥ 1 over binary variables with unit coefficients.
	FlavorSetCovering
	// FlavorCardinality is Σ x_i = k (integer k ≥ 2) over binary variables with unit coefficients.
	FlavorCardinality
	// FlavorVarbound is a two-nonzero row that is not set-like.
	FlavorVarbound
	// FlavorKnapsack is Σ a_i x_i ≤ b over binary variables with positive integer coefficients.
	FlavorKnapsack
)

// String returns the lowercase token used by classifiers and diagnostics.
func (f ConsFlavor) String() string {
	switch f {
	case FlavorSetPartitioning:
		return "setpartitioning"
	case FlavorSetPacking:
		return "setpacking"
	case FlavorSetCovering:
		return "setcovering"
	case FlavorCardinality:
		return "cardinality"
	case FlavorVarbound:
		return "varbound"
	case FlavorKnapsack:
		return "knapsack"
	case FlavorLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// IsSetLike reports whether the flavor has the all-binary, all-unit
// coefficient structure (set partitioning, packing, covering, cardinality).
// These are the rows the master-forcing pre-pass may pull out of the
// partitioning graph.
func (f ConsFlavor) IsSetLike() bool {
	switch f {
	case FlavorSetPartitioning, FlavorSetPacking, FlavorSetCovering, FlavorCardinality:
		return true
	default:
		return false
	}
}

// ConsFlavorOf returns the derived flavor of constraint i.
func (p *Problem) ConsFlavorOf(i int) ConsFlavor {
	return p.conss[p.mustCons(i)].flavor
}

// deriveFlavor classifies a row at registration time. The rules are checked
// most-specific first; the first match wins.
func deriveFlavor(p *Problem, c *constraint) ConsFlavor {
	if len(c.vars) == 0 {
		return FlavorLinear
	}

	// Collect the coefficient-role predicates once.
	allBinary := true
	allUnit := true
	allPosInt := true
	for k, v := range c.vars {
		if p.vars[v].vtype != VarBinary {
			allBinary = false
		}
		coef := c.coefs[k]
		if coef != 1 {
			allUnit = false
		}
		if coef <= 0 || coef != math.Trunc(coef) {
			allPosInt = false
		}
	}

	// Set-like rows: all-binary, all-unit.
	if allBinary && allUnit {
		switch {
		case c.sense == SenseEQ && c.rhs == 1:
			return FlavorSetPartitioning
		case c.sense == SenseLE && c.rhs == 1:
			return FlavorSetPacking
		case c.sense == SenseGE && c.rhs == 1:
			return FlavorSetCovering
		case c.sense == SenseEQ && c.rhs >= 2 && c.rhs == math.Trunc(c.rhs):
			return FlavorCardinality
		}
	}

	// Two-nonzero rows bound one variable against another.
	if len(c.vars) == 2 {
		return FlavorVarbound
	}

	// Knapsack rows: binary with positive integer weights under a capacity.
	if allBinary && allPosInt && c.sense == SenseLE {
		return FlavorKnapsack
	}

	return FlavorLinear
}
