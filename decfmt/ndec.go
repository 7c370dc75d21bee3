// SPDX-License-Identifier: MIT

package decfmt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
)

// NDECVersion is the nested-document version this package reads and
// writes. A document declaring any other version fails wholesale.
const NDECVersion = 1

// ConsName is a constraint reference in a nested document, remembering
// where in the source it was read.
type ConsName struct {
	Name string
	Line int
	Col  int
}

// UnmarshalYAML captures the node's position alongside the name.
func (n *ConsName) UnmarshalYAML(node *yaml.Node) error {
	if err := node.Decode(&n.Name); err != nil {
		return err
	}
	n.Line, n.Col = node.Line, node.Column
	return nil
}

// MarshalYAML writes the bare name.
func (n ConsName) MarshalYAML() (interface{}, error) { return n.Name, nil }

// NestedBlock is one block of a nested decomposition. Its membership is
// the listed constraints; a block may instead be defined entirely by its
// own sub-decomposition, whose names then form the membership. When both
// are given, the sub-decomposition refines the listed constraints and
// may not reach outside them.
type NestedBlock struct {
	Conss  []ConsName           `yaml:"constraints,omitempty"`
	Nested *NestedDecomposition `yaml:"decomposition,omitempty"`
}

// NestedDecomposition is one level of the tree: master constraints plus
// blocks, each block optionally refined further.
type NestedDecomposition struct {
	MasterConss []ConsName    `yaml:"masterconstraints,omitempty"`
	Blocks      []NestedBlock `yaml:"blocks"`
}

// NestedDocument is a complete NDEC file.
type NestedDocument struct {
	Version   int                  `yaml:"version"`
	Name      string               `yaml:"name,omitempty"`
	Presolved bool                 `yaml:"presolved"`
	Root      *NestedDecomposition `yaml:"decomposition"`
}

// ReadNDEC parses a nested YAML document from r and validates it against
// p: exact version match, every name known, names claimed once per tree
// level, refinements staying inside their blocks.
func ReadNDEC(p *core.Problem, r io.Reader) (*NestedDocument, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return readNDEC(p, "", string(src))
}

// ReadNDECFile is ReadNDEC over a file path.
func ReadNDECFile(p *core.Problem, path string) (*NestedDocument, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return readNDEC(p, path, string(src))
}

func readNDEC(p *core.Problem, path, src string) (*NestedDocument, error) {
	var doc NestedDocument
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return nil, fmt.Errorf("decfmt: %s: %w", sourceName(path), err)
	}
	if doc.Version != NDECVersion {
		return nil, fmt.Errorf("%w: ndec version %d, supported %d", ErrVersion, doc.Version, NDECVersion)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("decfmt: %s: ndec document has no decomposition", sourceName(path))
	}
	lines := strings.Split(src, "\n")
	if _, err := checkNested(p, path, lines, doc.Root, nil); err != nil {
		return nil, err
	}
	return &doc, nil
}

// checkNested validates one tree level and returns its full constraint
// scope. A non-nil enclosing set restricts every name to the block being
// refined.
func checkNested(p *core.Problem, path string, lines []string, nd *NestedDecomposition, enclosing map[int]bool) (map[int]bool, error) {
	scope := make(map[int]bool)
	claim := func(ref ConsName) (int, error) {
		i, err := p.ConsByName(ref.Name)
		if err != nil {
			return 0, parseErrAt(path, lines, ref, fmt.Sprintf("unknown constraint %q", ref.Name))
		}
		if enclosing != nil && !enclosing[i] {
			return 0, parseErrAt(path, lines, ref, fmt.Sprintf("constraint %q outside its enclosing block", ref.Name))
		}
		if scope[i] {
			return 0, parseErrAt(path, lines, ref, fmt.Sprintf("constraint %q claimed twice", ref.Name))
		}
		scope[i] = true
		return i, nil
	}

	for _, ref := range nd.MasterConss {
		if _, err := claim(ref); err != nil {
			return nil, err
		}
	}
	for bi := range nd.Blocks {
		b := &nd.Blocks[bi]
		switch {
		case len(b.Conss) > 0:
			members := make(map[int]bool, len(b.Conss))
			for _, ref := range b.Conss {
				i, err := claim(ref)
				if err != nil {
					return nil, err
				}
				members[i] = true
			}
			if b.Nested != nil {
				if _, err := checkNested(p, path, lines, b.Nested, members); err != nil {
					return nil, err
				}
			}
		case b.Nested != nil:
			sub, err := checkNested(p, path, lines, b.Nested, enclosing)
			if err != nil {
				return nil, err
			}
			for i := range sub {
				if scope[i] {
					return nil, fmt.Errorf("decfmt: %s: ndec block %d overlaps an earlier sibling",
						sourceName(path), bi+1)
				}
				scope[i] = true
			}
		default:
			return nil, fmt.Errorf("decfmt: %s: ndec block %d is empty", sourceName(path), bi+1)
		}
	}
	return scope, nil
}

func parseErrAt(path string, lines []string, ref ConsName, msg string) error {
	return &ParseError{Path: path, Line: ref.Line, Col: ref.Col, Src: lineAt(lines, ref.Line), Msg: msg}
}

// Flatten resolves the document's top level into a finalized
// decomposition: the root's blocks become the block partition, nested
// refinements contributing only their membership. Constraints the tree
// never mentions join the master border and variables follow their
// constraints' blocks.
func (doc *NestedDocument) Flatten(p *core.Problem) (*decomp.Decomposition, error) {
	if doc.Version != NDECVersion {
		return nil, fmt.Errorf("%w: ndec version %d, supported %d", ErrVersion, doc.Version, NDECVersion)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("decfmt: ndec document has no decomposition")
	}
	if _, err := checkNested(p, "", nil, doc.Root, nil); err != nil {
		return nil, err
	}

	cand := decomp.NewCandidate(p)
	for range doc.Root.Blocks {
		cand.AddBlock()
	}
	for _, ref := range doc.Root.MasterConss {
		i, err := p.ConsByName(ref.Name)
		if err != nil {
			return nil, fmt.Errorf("decfmt: %w", err)
		}
		cand.BookConsToMaster(i)
	}
	for bi := range doc.Root.Blocks {
		members, err := blockMembership(p, &doc.Root.Blocks[bi])
		if err != nil {
			return nil, err
		}
		for _, i := range members {
			cand.BookConsToBlock(i, bi+1)
		}
	}
	cand.Flush()

	cand.AssignOpenConssToMaster()
	cand.AssignOpenVarsByBlocks()
	cand.AddHistory(fmt.Sprintf("ndec: %s (%d blocks)", docLabel(doc), len(doc.Root.Blocks)))
	d, err := cand.ToDecomposition()
	if err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return d, nil
}

// blockMembership resolves a block's constraint indices: its listed
// names, or the whole scope of its sub-decomposition when it has none.
func blockMembership(p *core.Problem, b *NestedBlock) ([]int, error) {
	if len(b.Conss) > 0 {
		out := make([]int, 0, len(b.Conss))
		for _, ref := range b.Conss {
			i, err := p.ConsByName(ref.Name)
			if err != nil {
				return nil, fmt.Errorf("decfmt: %w", err)
			}
			out = append(out, i)
		}
		return out, nil
	}
	var out []int
	for _, ref := range b.Nested.MasterConss {
		i, err := p.ConsByName(ref.Name)
		if err != nil {
			return nil, fmt.Errorf("decfmt: %w", err)
		}
		out = append(out, i)
	}
	for bi := range b.Nested.Blocks {
		sub, err := blockMembership(p, &b.Nested.Blocks[bi])
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

func docLabel(doc *NestedDocument) string {
	if doc.Name == "" {
		return "unnamed"
	}
	return doc.Name
}

// NewNestedDocument renders a finalized decomposition as a single-level
// document ready for WriteNDEC.
func NewNestedDocument(p *core.Problem, d *decomp.Decomposition) (*NestedDocument, error) {
	if !d.Finalized() {
		return nil, decomp.ErrNotFinalized
	}
	root := &NestedDecomposition{}
	for _, i := range d.LinkingConss() {
		root.MasterConss = append(root.MasterConss, ConsName{Name: p.ConsName(i)})
	}
	for k := 1; k <= d.NBlocks(); k++ {
		var blk NestedBlock
		for _, i := range d.BlockConss(k) {
			blk.Conss = append(blk.Conss, ConsName{Name: p.ConsName(i)})
		}
		root.Blocks = append(root.Blocks, blk)
	}
	return &NestedDocument{
		Version: NDECVersion,
		Name:    p.Name(),
		Root:    root,
	}, nil
}

// WriteNDEC writes doc as YAML, rejecting unsupported versions the same
// way the reader does.
func WriteNDEC(w io.Writer, doc *NestedDocument) error {
	if doc.Version != NDECVersion {
		return fmt.Errorf("%w: ndec version %d, supported %d", ErrVersion, doc.Version, NDECVersion)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		enc.Close()
		return fmt.Errorf("decfmt: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("decfmt: %w", err)
	}
	return nil
}

// WriteNDECFile is WriteNDEC over a file path.
func WriteNDECFile(path string, doc *NestedDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("decfmt: %w", err)
	}
	if err := WriteNDEC(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("decfmt: %w", err)
	}
	return nil
}
