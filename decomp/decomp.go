package decomp

import (
	"fmt"

	"github.com/katalvlaran/dantzig/core"
)

// Write-once tracking bits, one per settable part.
const (
	partNBlocks uint8 = 1 << iota
	partBlockConss
	partBlockVars
	partLinkingConss
	partLinkingVars
	partConsLabels
	partVarLabels

	partAll = partNBlocks | partBlockConss | partBlockVars |
		partLinkingConss | partLinkingVars | partConsLabels | partVarLabels
)

// Decomposition is a finalized block structure of a problem: per-block
// constraint and variable subsets, the master/linking border, and the
// per-element lookup labels. Every structural part is set exactly once;
// a second write to the same part panics. A Decomposition is read-only
// after finalization and safe for concurrent reads.
type Decomposition struct {
	written uint8

	nblocks      int
	blockConss   [][]int
	blockVars    [][]int
	linkingConss []int
	linkingVars  []int

	consLabel []Label
	varLabel  []Label

	// nLinkingLabeled counts variables carrying the linking label. The
	// border set also holds master variables; only truly linking ones
	// drive the arrowhead shape.
	nLinkingLabeled int

	override   Type
	overridden bool

	history []string
}

// NewDecomposition returns an empty decomposition with every part unset.
func NewDecomposition() *Decomposition { return &Decomposition{} }

func (d *Decomposition) mark(part uint8, name string) {
	if d.written&part != 0 {
		panic("decomp: " + name + " called twice on the same decomposition")
	}
	d.written |= part
}

// SetNBlocks declares the number of blocks. Write-once; panics on reuse
// and for negative counts.
func (d *Decomposition) SetNBlocks(n int) {
	d.mark(partNBlocks, "SetNBlocks")
	if n < 0 {
		panic(fmt.Sprintf("decomp: SetNBlocks(%d): negative block count", n))
	}
	d.nblocks = n
}

// SetBlockConss assigns the per-block constraint subsets, indexed by
// block-1. The decomposition takes ownership of the slice. Write-once.
func (d *Decomposition) SetBlockConss(subsets [][]int) {
	d.mark(partBlockConss, "SetBlockConss")
	d.blockConss = subsets
}

// SetBlockVars assigns the per-block variable subsets, indexed by
// block-1. The decomposition takes ownership of the slice. Write-once.
func (d *Decomposition) SetBlockVars(subsets [][]int) {
	d.mark(partBlockVars, "SetBlockVars")
	d.blockVars = subsets
}

// SetLinkingConss assigns the master constraint set. Write-once.
func (d *Decomposition) SetLinkingConss(conss []int) {
	d.mark(partLinkingConss, "SetLinkingConss")
	d.linkingConss = conss
}

// SetLinkingVars assigns the border variable set, holding linking
// variables and variables of the master problem alike. Write-once.
func (d *Decomposition) SetLinkingVars(vars []int) {
	d.mark(partLinkingVars, "SetLinkingVars")
	d.linkingVars = vars
}

// SetConsLabels assigns the per-constraint lookup labels. Write-once.
func (d *Decomposition) SetConsLabels(labels []Label) {
	d.mark(partConsLabels, "SetConsLabels")
	d.consLabel = labels
}

// SetVarLabels assigns the per-variable lookup labels. Write-once.
func (d *Decomposition) SetVarLabels(labels []Label) {
	d.mark(partVarLabels, "SetVarLabels")
	d.varLabel = labels
	for _, l := range labels {
		if l.IsLinking() {
			d.nLinkingLabeled++
		}
	}
}

// BuildLookups derives both lookup label arrays from the subsets already
// set, using the problem's incidence to tell linking border variables
// (referenced by constraints of several blocks) from master ones. It
// counts as the write for SetConsLabels and SetVarLabels and panics when
// the subsets are missing or either lookup was set before.
func (d *Decomposition) BuildLookups(p *core.Problem) {
	const need = partBlockConss | partBlockVars | partLinkingConss | partLinkingVars
	if d.written&need != need {
		panic("decomp: BuildLookups before subsets are set")
	}
	consLabel := make([]Label, p.NConss())
	varLabel := make([]Label, p.NVars())
	for b, subset := range d.blockConss {
		for _, i := range subset {
			consLabel[i] = InBlock(b + 1)
		}
	}
	for b, subset := range d.blockVars {
		for _, v := range subset {
			varLabel[v] = InBlock(b + 1)
		}
	}
	for _, i := range d.linkingConss {
		consLabel[i] = Master()
	}
	for _, v := range d.linkingVars {
		first, several := 0, false
		for _, ci := range p.VarConss(v) {
			b, ok := consLabel[ci].Block()
			if !ok {
				continue
			}
			if first == 0 {
				first = b
			} else if b != first {
				several = true
				break
			}
		}
		if several {
			varLabel[v] = Linking()
		} else {
			varLabel[v] = Master()
		}
	}
	d.SetConsLabels(consLabel)
	d.SetVarLabels(varLabel)
}

// OverrideType pins the decomposition shape instead of deriving it from
// the border. Detectors that build staircase structures declare them
// here. Write-once; panics on reuse.
func (d *Decomposition) OverrideType(t Type) {
	if d.overridden {
		panic("decomp: OverrideType called twice on the same decomposition")
	}
	d.overridden = true
	d.override = t
}

// Finalized reports whether every structural part has been set.
func (d *Decomposition) Finalized() bool { return d.written == partAll }

// NBlocks returns the declared block count.
func (d *Decomposition) NBlocks() int { return d.nblocks }

// BlockConss returns the constraint subset of block k (1-based). The
// returned slice is owned by the decomposition.
func (d *Decomposition) BlockConss(k int) []int {
	d.mustBlock(k)
	return d.blockConss[k-1]
}

// BlockVars returns the variable subset of block k (1-based). The
// returned slice is owned by the decomposition.
func (d *Decomposition) BlockVars(k int) []int {
	d.mustBlock(k)
	return d.blockVars[k-1]
}

// LinkingConss returns the master constraint set.
func (d *Decomposition) LinkingConss() []int { return d.linkingConss }

// LinkingVars returns the border variable set.
func (d *Decomposition) LinkingVars() []int { return d.linkingVars }

// ConsLabel returns the lookup label of constraint i.
func (d *Decomposition) ConsLabel(i int) Label {
	if i < 0 || i >= len(d.consLabel) {
		panic(fmt.Sprintf("decomp: constraint index %d out of range [0,%d)", i, len(d.consLabel)))
	}
	return d.consLabel[i]
}

// VarLabel returns the lookup label of variable v.
func (d *Decomposition) VarLabel(v int) Label {
	if v < 0 || v >= len(d.varLabel) {
		panic(fmt.Sprintf("decomp: variable index %d out of range [0,%d)", v, len(d.varLabel)))
	}
	return d.varLabel[v]
}

// Type derives the decomposition shape from the border: linking variables
// make an arrowhead, master constraints alone a bordered structure, an
// empty border a diagonal. Master variables sitting in the border do not
// make an arrowhead. An OverrideType wins, and a decomposition that is
// not finalized is TypeUnknown.
func (d *Decomposition) Type() Type {
	if d.overridden {
		return d.override
	}
	if !d.Finalized() {
		return TypeUnknown
	}
	switch {
	case d.nLinkingLabeled > 0:
		return TypeArrowhead
	case len(d.linkingConss) > 0:
		return TypeBordered
	default:
		return TypeDiagonal
	}
}

// AddHistory appends one provenance line, e.g. the detector chain or the
// structure file a decomposition was read from.
func (d *Decomposition) AddHistory(line string) { d.history = append(d.history, line) }

// History returns the provenance lines in insertion order.
func (d *Decomposition) History() []string { return d.history }

// Validate checks the decomposition against the problem it was built for:
// all parts set, the declared block count matching the subsets, blocks and
// border forming an exact partition of both index universes, lookup labels
// consistent with the subsets, and no block without constraints.
func (d *Decomposition) Validate(p *core.Problem) error {
	if !d.Finalized() {
		return ErrNotFinalized
	}
	if len(d.blockConss) != d.nblocks || len(d.blockVars) != d.nblocks {
		return fmt.Errorf("%w: declared %d, got %d constraint and %d variable subsets",
			ErrBlockCount, d.nblocks, len(d.blockConss), len(d.blockVars))
	}
	if len(d.consLabel) != p.NConss() || len(d.varLabel) != p.NVars() {
		return fmt.Errorf("%w: lookup sizes %dx%d for a %dx%d problem",
			ErrNotPartition, len(d.consLabel), len(d.varLabel), p.NConss(), p.NVars())
	}
	if err := d.validateConss(p); err != nil {
		return err
	}
	return d.validateVars(p)
}

func (d *Decomposition) validateConss(p *core.Problem) error {
	seen := make([]bool, p.NConss())
	for b, subset := range d.blockConss {
		if len(subset) == 0 {
			return fmt.Errorf("%w: block %d has no constraints", ErrEmptyBlock, b+1)
		}
		for _, i := range subset {
			if i < 0 || i >= len(seen) {
				return fmt.Errorf("%w: constraint index %d out of range", ErrNotPartition, i)
			}
			if seen[i] {
				return fmt.Errorf("%w: constraint %d assigned twice", ErrNotPartition, i)
			}
			seen[i] = true
			if got := d.consLabel[i]; got != InBlock(b+1) {
				return fmt.Errorf("%w: constraint %d labeled %s, placed in block %d",
					ErrNotPartition, i, got, b+1)
			}
		}
	}
	for _, i := range d.linkingConss {
		if i < 0 || i >= len(seen) {
			return fmt.Errorf("%w: constraint index %d out of range", ErrNotPartition, i)
		}
		if seen[i] {
			return fmt.Errorf("%w: constraint %d assigned twice", ErrNotPartition, i)
		}
		seen[i] = true
		if got := d.consLabel[i]; !got.IsMaster() {
			return fmt.Errorf("%w: constraint %d labeled %s, placed in master",
				ErrNotPartition, i, got)
		}
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: constraint %d unassigned", ErrNotPartition, i)
		}
	}
	return nil
}

func (d *Decomposition) validateVars(p *core.Problem) error {
	seen := make([]bool, p.NVars())
	for b, subset := range d.blockVars {
		for _, v := range subset {
			if v < 0 || v >= len(seen) {
				return fmt.Errorf("%w: variable index %d out of range", ErrNotPartition, v)
			}
			if seen[v] {
				return fmt.Errorf("%w: variable %d assigned twice", ErrNotPartition, v)
			}
			seen[v] = true
			if got := d.varLabel[v]; got != InBlock(b+1) {
				return fmt.Errorf("%w: variable %d labeled %s, placed in block %d",
					ErrNotPartition, v, got, b+1)
			}
		}
	}
	for _, v := range d.linkingVars {
		if v < 0 || v >= len(seen) {
			return fmt.Errorf("%w: variable index %d out of range", ErrNotPartition, v)
		}
		if seen[v] {
			return fmt.Errorf("%w: variable %d assigned twice", ErrNotPartition, v)
		}
		seen[v] = true
		if got := d.varLabel[v]; !got.IsMaster() && !got.IsLinking() {
			return fmt.Errorf("%w: variable %d labeled %s, placed in border",
				ErrNotPartition, v, got)
		}
	}
	for v, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: variable %d unassigned", ErrNotPartition, v)
		}
	}
	return nil
}

// MustValidate is Validate for decomposition producers whose output is an
// internal invariant: it panics instead of returning the error.
func (d *Decomposition) MustValidate(p *core.Problem) {
	if err := d.Validate(p); err != nil {
		panic("decomp: " + err.Error())
	}
}

func (d *Decomposition) mustBlock(k int) {
	if k < 1 || k > d.nblocks {
		panic(fmt.Sprintf("decomp: block %d out of range [1,%d]", k, d.nblocks))
	}
}
