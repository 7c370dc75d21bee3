// SPDX-License-Identifier: MIT

package decfmt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
)

// ReadBLK parses BLK text from r and resolves it into a finalized
// decomposition. BLK declares blocks by variable membership: a
// constraint whose listed variables sit in one block joins that block,
// one spanning several blocks joins the master border, and one touching
// no listed variable joins the master as well. Variables the file never
// mentions follow their constraints' blocks afterwards. A block that
// ends up without any constraint fails validation and the whole read
// errors.
func ReadBLK(p *core.Problem, r io.Reader) (*decomp.Decomposition, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return readBLK(p, "", string(src))
}

// ReadBLKFile is ReadBLK over a file path.
func ReadBLKFile(p *core.Problem, path string) (*decomp.Decomposition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return readBLK(p, path, string(src))
}

func readBLK(p *core.Problem, path, src string) (*decomp.Decomposition, error) {
	lines := strings.Split(src, "\n")
	f, err := blkParser.ParseString(path, src)
	if err != nil {
		return nil, syntaxError(path, lines, err)
	}
	if err := checkFlag(path, lines, f.Presolved, "PRESOLVED"); err != nil {
		return nil, err
	}
	n := f.NBlocks.Value
	if n < 0 {
		return nil, &ParseError{
			Path: path, Line: f.NBlocks.Pos.Line, Col: f.NBlocks.Pos.Column,
			Src: lineAt(lines, f.NBlocks.Pos.Line),
			Msg: fmt.Sprintf("negative block count %d", n),
		}
	}

	cand := decomp.NewCandidate(p)
	for k := 0; k < n; k++ {
		cand.AddBlock()
	}

	assigned := make(map[int]bool, p.NVars())
	filled := make([]bool, n+1)
	for _, sec := range f.Blocks {
		k := sec.Number.Value
		if k < 1 || k > n {
			return nil, &ParseError{
				Path: path, Line: sec.Number.Pos.Line, Col: sec.Number.Pos.Column,
				Src: lineAt(lines, sec.Number.Pos.Line),
				Msg: fmt.Sprintf("block %d outside 1..%d", k, n),
			}
		}
		for _, ref := range sec.Names {
			v, err := varRef(p, path, lines, ref, assigned)
			if err != nil {
				return nil, err
			}
			filled[k] = true
			cand.BookVarToBlock(v, k)
		}
	}
	for k := 1; k <= n; k++ {
		if !filled[k] {
			return nil, &ParseError{
				Path: path, Line: f.NBlocks.Pos.Line, Col: f.NBlocks.Pos.Column,
				Src: lineAt(lines, f.NBlocks.Pos.Line),
				Msg: fmt.Sprintf("block %d of %d has no variables", k, n),
			}
		}
	}
	cand.Flush()

	for i := 0; i < p.NConss(); i++ {
		first, several := 0, false
		for _, v := range p.ConsVars(i) {
			b, ok := cand.VarLabel(v).Block()
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
			cand.BookConsToMaster(i)
		case first != 0:
			cand.BookConsToBlock(i, first)
		}
	}
	cand.Flush()

	cand.AssignOpenConssToMaster()
	cand.AssignOpenVarsByBlocks()
	cand.AddHistory(fmt.Sprintf("blk: %s", sourceName(path)))
	d, err := cand.ToDecomposition()
	if err != nil {
		return nil, fmt.Errorf("decfmt: %s: %w", sourceName(path), err)
	}
	return d, nil
}

// varRef resolves one variable name token, rejecting unknown names and
// repeats.
func varRef(p *core.Problem, path string, lines []string, ref nameRef, assigned map[int]bool) (int, error) {
	v, err := p.VarByName(ref.Name)
	if err != nil {
		return 0, &ParseError{
			Path: path, Line: ref.Pos.Line, Col: ref.Pos.Column,
			Src: lineAt(lines, ref.Pos.Line),
			Msg: fmt.Sprintf("unknown variable %q", ref.Name),
		}
	}
	if assigned[v] {
		return 0, &ParseError{
			Path: path, Line: ref.Pos.Line, Col: ref.Pos.Column,
			Src: lineAt(lines, ref.Pos.Line),
			Msg: fmt.Sprintf("variable %q listed twice", ref.Name),
		}
	}
	assigned[v] = true
	return v, nil
}

// WriteBLK writes d's block variables in BLK format. Border variables
// are not representable in BLK; they stay unlisted and are re-derived
// when the file is read back.
func WriteBLK(w io.Writer, p *core.Problem, d *decomp.Decomposition) error {
	if !d.Finalized() {
		return decomp.ErrNotFinalized
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\\ %s, %d blocks, %s\n", problemLabel(p), d.NBlocks(), d.Type())
	fmt.Fprintln(bw, "PRESOLVED 0")
	fmt.Fprintf(bw, "NBLOCKS %d\n", d.NBlocks())
	for k := 1; k <= d.NBlocks(); k++ {
		fmt.Fprintf(bw, "BLOCK %d\n", k)
		for _, v := range d.BlockVars(k) {
			fmt.Fprintln(bw, p.VarName(v))
		}
	}
	return bw.Flush()
}

// WriteBLKFile is WriteBLK over a file path.
func WriteBLKFile(path string, p *core.Problem, d *decomp.Decomposition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("decfmt: %w", err)
	}
	if err := WriteBLK(f, p, d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("decfmt: %w", err)
	}
	return nil
}
