package decomp

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/katalvlaran/dantzig/core"
)

// booking is one tentative assignment awaiting Flush.
type booking struct {
	index int
	label Label
}

// Candidate is a partial decomposition under refinement. Detectors book
// assignments tentatively, commit them with Flush, and fork candidates
// with Clone before mutating so a parent survives child exploration
// untouched. A candidate is not safe for concurrent use; the engine gives
// each worker its own clone.
type Candidate struct {
	p *core.Problem

	consLabel []Label
	varLabel  []Label

	nblocks   int
	openConss int
	openVars  int

	pendingConss []booking
	pendingVars  []booking

	history []string
}

// NewCandidate returns a candidate for p with every constraint and
// variable open and no blocks allocated.
func NewCandidate(p *core.Problem) *Candidate {
	return &Candidate{
		p:         p,
		consLabel: make([]Label, p.NConss()),
		varLabel:  make([]Label, p.NVars()),
		openConss: p.NConss(),
		openVars:  p.NVars(),
	}
}

// Problem returns the problem this candidate decomposes.
func (c *Candidate) Problem() *core.Problem { return c.p }

// NBlocks returns the number of blocks allocated so far.
func (c *Candidate) NBlocks() int { return c.nblocks }

// AddBlock allocates a new block and returns its 1-based number.
func (c *Candidate) AddBlock() int {
	c.nblocks++
	return c.nblocks
}

// OpenConss returns the number of constraints still unassigned.
func (c *Candidate) OpenConss() int { return c.openConss }

// OpenVars returns the number of variables still unassigned.
func (c *Candidate) OpenVars() int { return c.openVars }

// OpenConsIndices returns the indices of all open constraints, ascending.
func (c *Candidate) OpenConsIndices() []int {
	out := make([]int, 0, c.openConss)
	for i, l := range c.consLabel {
		if l.IsOpen() {
			out = append(out, i)
		}
	}
	return out
}

// OpenVarIndices returns the indices of all open variables, ascending.
func (c *Candidate) OpenVarIndices() []int {
	out := make([]int, 0, c.openVars)
	for v, l := range c.varLabel {
		if l.IsOpen() {
			out = append(out, v)
		}
	}
	return out
}

// ConsLabel returns the committed label of constraint i. Pending bookings
// are not visible until Flush.
func (c *Candidate) ConsLabel(i int) Label {
	c.mustCons(i)
	return c.consLabel[i]
}

// VarLabel returns the committed label of variable v.
func (c *Candidate) VarLabel(v int) Label {
	c.mustVar(v)
	return c.varLabel[v]
}

// BookConsToMaster books constraint i for the master border.
func (c *Candidate) BookConsToMaster(i int) { c.bookCons(i, Master()) }

// BookConsToBlock books constraint i for block k. The block must have
// been allocated with AddBlock.
func (c *Candidate) BookConsToBlock(i, k int) {
	c.mustAllocated(k)
	c.bookCons(i, InBlock(k))
}

// BookConsIgnored books constraint i as excluded from detection, such as
// a constraint with no incidence entries. Ignored constraints fold into
// the master border at ToDecomposition.
func (c *Candidate) BookConsIgnored(i int) { c.bookCons(i, Ignored()) }

// BookVarToMaster books variable v for the master problem.
func (c *Candidate) BookVarToMaster(v int) { c.bookVar(v, Master()) }

// BookVarToLinking books variable v as linking between blocks.
func (c *Candidate) BookVarToLinking(v int) { c.bookVar(v, Linking()) }

// BookVarToBlock books variable v for block k. The block must have been
// allocated with AddBlock.
func (c *Candidate) BookVarToBlock(v, k int) {
	c.mustAllocated(k)
	c.bookVar(v, InBlock(k))
}

func (c *Candidate) bookCons(i int, l Label) {
	c.mustCons(i)
	if !c.consLabel[i].IsOpen() {
		panic(fmt.Sprintf("decomp: constraint %d already assigned %s, cannot book %s",
			i, c.consLabel[i], l))
	}
	c.pendingConss = append(c.pendingConss, booking{index: i, label: l})
}

func (c *Candidate) bookVar(v int, l Label) {
	c.mustVar(v)
	if !c.varLabel[v].IsOpen() {
		panic(fmt.Sprintf("decomp: variable %d already assigned %s, cannot book %s",
			v, c.varLabel[v], l))
	}
	c.pendingVars = append(c.pendingVars, booking{index: v, label: l})
}

// Pending returns the number of unflushed bookings.
func (c *Candidate) Pending() int { return len(c.pendingConss) + len(c.pendingVars) }

// Flush commits all pending bookings and returns the number applied.
// Booking the same element twice in one batch is a detector bug and
// panics at commit time.
func (c *Candidate) Flush() int {
	applied := 0
	for _, b := range c.pendingConss {
		if !c.consLabel[b.index].IsOpen() {
			panic(fmt.Sprintf("decomp: flush: constraint %d booked twice", b.index))
		}
		c.consLabel[b.index] = b.label
		c.openConss--
		applied++
	}
	for _, b := range c.pendingVars {
		if !c.varLabel[b.index].IsOpen() {
			panic(fmt.Sprintf("decomp: flush: variable %d booked twice", b.index))
		}
		c.varLabel[b.index] = b.label
		c.openVars--
		applied++
	}
	c.pendingConss = c.pendingConss[:0]
	c.pendingVars = c.pendingVars[:0]
	return applied
}

// IsFinished reports whether every element is assigned and no bookings
// are pending.
func (c *Candidate) IsFinished() bool {
	return c.openConss == 0 && c.openVars == 0 && c.Pending() == 0
}

// Clone returns a deep copy sharing only the problem reference.
func (c *Candidate) Clone() *Candidate {
	out := &Candidate{
		p:         c.p,
		consLabel: append([]Label(nil), c.consLabel...),
		varLabel:  append([]Label(nil), c.varLabel...),
		nblocks:   c.nblocks,
		openConss: c.openConss,
		openVars:  c.openVars,
	}
	if len(c.pendingConss) > 0 {
		out.pendingConss = append([]booking(nil), c.pendingConss...)
	}
	if len(c.pendingVars) > 0 {
		out.pendingVars = append([]booking(nil), c.pendingVars...)
	}
	if len(c.history) > 0 {
		out.history = append([]string(nil), c.history...)
	}
	return out
}

// AddHistory appends one provenance line, typically the name of the
// detector that refined this candidate.
func (c *Candidate) AddHistory(line string) { c.history = append(c.history, line) }

// History returns the provenance lines in insertion order.
func (c *Candidate) History() []string { return c.history }

// Fingerprint hashes the committed assignment so the engine can drop
// duplicate candidates. Pending bookings are not part of the hash; flush
// before fingerprinting.
func (c *Candidate) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(x int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		h.Write(buf[:])
	}
	write(c.nblocks)
	for _, l := range c.consLabel {
		write(int(l.kind))
		write(l.block)
	}
	for _, l := range c.varLabel {
		write(int(l.kind))
		write(l.block)
	}
	return h.Sum64()
}

// AssignOpenConssToMaster books every open constraint for the master
// border and flushes.
func (c *Candidate) AssignOpenConssToMaster() {
	for i, l := range c.consLabel {
		if l.IsOpen() {
			c.BookConsToMaster(i)
		}
	}
	c.Flush()
}

// AssignOpenVarsByBlocks resolves every open variable from the committed
// constraint assignment: a variable referenced by constraints of exactly
// one block joins that block, one referenced across several blocks
// becomes linking, and one referenced by no block constraint goes to the
// master problem. Master constraints do not bind a variable to a block.
func (c *Candidate) AssignOpenVarsByBlocks() {
	for v, l := range c.varLabel {
		if !l.IsOpen() {
			continue
		}
		first, several := 0, false
		for _, ci := range c.p.VarConss(v) {
			b, ok := c.consLabel[ci].Block()
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
		switch {
		case several:
			c.BookVarToLinking(v)
		case first != 0:
			c.BookVarToBlock(v, first)
		default:
			c.BookVarToMaster(v)
		}
	}
	c.Flush()
}

// ToDecomposition finalizes a finished candidate. Block numbers are
// compacted so that allocated-but-unused blocks vanish, ignored
// constraints fold into the master border, and master and linking
// variables merge into the border variable set. Converting an unfinished
// candidate is a programming error and panics; a structurally invalid
// result (e.g. a block left without constraints) is returned together
// with the validation error.
func (c *Candidate) ToDecomposition() (*Decomposition, error) {
	if !c.IsFinished() {
		panic(fmt.Sprintf("decomp: ToDecomposition on unfinished candidate (%d conss, %d vars open, %d pending)",
			c.openConss, c.openVars, c.Pending()))
	}

	// Compact block numbers, dropping blocks that hold nothing at all.
	used := make([]bool, c.nblocks+1)
	for _, l := range c.consLabel {
		if b, ok := l.Block(); ok {
			used[b] = true
		}
	}
	for _, l := range c.varLabel {
		if b, ok := l.Block(); ok {
			used[b] = true
		}
	}
	renum := make([]int, c.nblocks+1)
	nblocks := 0
	for b := 1; b <= c.nblocks; b++ {
		if used[b] {
			nblocks++
			renum[b] = nblocks
		}
	}

	blockConss := make([][]int, nblocks)
	blockVars := make([][]int, nblocks)
	var linkingConss, linkingVars []int
	consLabel := make([]Label, len(c.consLabel))
	varLabel := make([]Label, len(c.varLabel))

	for i, l := range c.consLabel {
		if b, ok := l.Block(); ok {
			nb := renum[b]
			blockConss[nb-1] = append(blockConss[nb-1], i)
			consLabel[i] = InBlock(nb)
			continue
		}
		linkingConss = append(linkingConss, i)
		consLabel[i] = Master()
	}
	for v, l := range c.varLabel {
		if b, ok := l.Block(); ok {
			nb := renum[b]
			blockVars[nb-1] = append(blockVars[nb-1], v)
			varLabel[v] = InBlock(nb)
			continue
		}
		linkingVars = append(linkingVars, v)
		if l.IsLinking() {
			varLabel[v] = Linking()
		} else {
			varLabel[v] = Master()
		}
	}

	d := NewDecomposition()
	d.SetNBlocks(nblocks)
	d.SetBlockConss(blockConss)
	d.SetBlockVars(blockVars)
	d.SetLinkingConss(linkingConss)
	d.SetLinkingVars(linkingVars)
	d.SetConsLabels(consLabel)
	d.SetVarLabels(varLabel)
	for _, line := range c.history {
		d.AddHistory(line)
	}
	if err := d.Validate(c.p); err != nil {
		return d, err
	}
	return d, nil
}

func (c *Candidate) mustCons(i int) {
	if i < 0 || i >= len(c.consLabel) {
		panic(fmt.Sprintf("decomp: constraint index %d out of range [0,%d)", i, len(c.consLabel)))
	}
}

func (c *Candidate) mustVar(v int) {
	if v < 0 || v >= len(c.varLabel) {
		panic(fmt.Sprintf("decomp: variable index %d out of range [0,%d)", v, len(c.varLabel)))
	}
}

func (c *Candidate) mustAllocated(k int) {
	if k < 1 || k > c.nblocks {
		panic(fmt.Sprintf("decomp: block %d not allocated (have %d)", k, c.nblocks))
	}
}
