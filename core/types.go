// Package core: central types for the problem incidence model.
//
// This file declares VarType, Sense, ConsFlavor, Entry, the Problem
// container, ProblemOption, and the package sentinel errors.
package core

import (
	"errors"
)

// Sentinel errors for problem construction and lookup.
var (
	// ErrEmptyName indicates a variable or constraint name was empty.
	ErrEmptyName = errors.New("core: name is empty")

	// ErrDuplicateName indicates the name is already registered.
	ErrDuplicateName = errors.New("core: duplicate name")

	// ErrIndexRange indicates a variable or constraint index out of range.
	ErrIndexRange = errors.New("core: index out of range")
)

// VarType describes the domain of a variable, mirroring the usual MIP
// variable classes.
type VarType int8

const (
	// VarBinary is a {0,1} variable.
	VarBinary VarType = iota
	// VarInteger is a general integer variable.
	VarInteger
	// VarImplicit is an implicitly integral variable.
	VarImplicit
	// VarContinuous is a continuous variable.
	VarContinuous
)

// String returns the lowercase token used in diagnostics and classifiers.
func (t VarType) String() string {
	switch t {
	case VarBinary:
		return "binary"
	case VarInteger:
		return "integer"
	case VarImplicit:
		return "implicit"
	case VarContinuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// Sense is the relation of a row to its right-hand side.
type Sense int8

const (
	// SenseLE is "≤ rhs".
	SenseLE Sense = iota
	// SenseGE is "≥ rhs".
	SenseGE
	// SenseEQ is "= rhs".
	SenseEQ
)

// String returns the conventional two-character token for the sense.
func (s Sense) String() string {
	switch s {
	case SenseLE:
		return "<="
	case SenseGE:
		return ">="
	case SenseEQ:
		return "=="
	default:
		return "??"
	}
}

// Entry is one nonzero of a constraint row: variable index plus coefficient.
type Entry struct {
	// Var is the 0-based index of the variable.
	Var int
	// Coef is the coefficient of the variable in this row.
	Coef float64
}

// variable is the internal per-variable record.
type variable struct {
	name  string
	vtype VarType
	obj   float64 // objective coefficient, 0 unless set
	conss []int   // incidence transpose: rows this variable appears in
	rep   int     // representative original index; rep == own index by default
}

// constraint is the internal per-constraint record.
type constraint struct {
	name      string
	sense     Sense
	rhs       float64
	vars      []int     // incident variable indices, in insertion order
	coefs     []float64 // coefficients aligned with vars
	branching bool      // host bookkeeping row, excluded from detection
	flavor    ConsFlavor
}

// Problem is the in-memory problem model: ordered variables and constraints
// with stable 0-based indices and incremental incidence in both directions.
//
// Build it with AddVariable/AddConstraint, then treat it as read-only.
type Problem struct {
	name  string
	vars  []variable
	conss []constraint

	varIndex  map[string]int // variable name → index
	consIndex map[string]int // constraint name → index
}

// ProblemOption configures a Problem at construction time.
type ProblemOption func(p *Problem)

// WithName sets a human-readable problem name used in diagnostics and
// structure-file headers.
func WithName(name string) ProblemOption {
	return func(p *Problem) { p.name = name }
}

// WithCapacity pre-sizes the internal catalogs for nvars variables and
// nconss constraints. Purely an allocation hint.
func WithCapacity(nvars, nconss int) ProblemOption {
	return func(p *Problem) {
		if nvars > 0 {
			p.vars = make([]variable, 0, nvars)
			p.varIndex = make(map[string]int, nvars)
		}
		if nconss > 0 {
			p.conss = make([]constraint, 0, nconss)
			p.consIndex = make(map[string]int, nconss)
		}
	}
}

// NewProblem creates an empty Problem with the given options.
// Complexity: O(1).
func NewProblem(opts ...ProblemOption) *Problem {
	p := &Problem{
		varIndex:  make(map[string]int),
		consIndex: make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}
