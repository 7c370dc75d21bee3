package decomp

import "fmt"

// labelKind enumerates the assignment states of a constraint or variable.
// The zero value is kindOpen, so a freshly allocated label slice reads as
// "everything still open" without initialization.
type labelKind int8

const (
	kindOpen labelKind = iota
	kindMaster
	kindLinking
	kindBlock
	kindIgnored
)

// Label records where a single constraint or variable is assigned.
// Labels are small value types, comparable with ==, and the zero value
// is the open label.
type Label struct {
	kind  labelKind
	block int
}

// Open returns the unassigned label. It is also the zero value.
func Open() Label { return Label{} }

// Master returns the label of an element assigned to the master/linking
// border: a master constraint, or a variable appearing in no block.
func Master() Label { return Label{kind: kindMaster} }

// Linking returns the label of a variable spanning two or more blocks.
func Linking() Label { return Label{kind: kindLinking} }

// InBlock returns the label of an element assigned to block k.
// Block numbers start at 1; InBlock panics for k < 1.
func InBlock(k int) Label {
	if k < 1 {
		panic(fmt.Sprintf("decomp: InBlock(%d): block numbers start at 1", k))
	}
	return Label{kind: kindBlock, block: k}
}

// Ignored returns the sentinel label for elements excluded from detection,
// such as constraints with no incidence entries.
func Ignored() Label { return Label{kind: kindIgnored} }

// IsOpen reports whether the element is still unassigned.
func (l Label) IsOpen() bool { return l.kind == kindOpen }

// IsMaster reports whether the element is assigned to the master border.
func (l Label) IsMaster() bool { return l.kind == kindMaster }

// IsLinking reports whether the element is a linking variable.
func (l Label) IsLinking() bool { return l.kind == kindLinking }

// IsIgnored reports whether the element carries the ignored sentinel.
func (l Label) IsIgnored() bool { return l.kind == kindIgnored }

// Block returns the 1-based block number and true when the element is
// assigned to a block, and (0, false) otherwise.
func (l Label) Block() (int, bool) {
	if l.kind != kindBlock {
		return 0, false
	}
	return l.block, true
}

// String renders the label for logs and history lines.
func (l Label) String() string {
	switch l.kind {
	case kindOpen:
		return "open"
	case kindMaster:
		return "master"
	case kindLinking:
		return "linking"
	case kindBlock:
		return fmt.Sprintf("block:%d", l.block)
	case kindIgnored:
		return "ignored"
	default:
		return fmt.Sprintf("label(%d)", l.kind)
	}
}
