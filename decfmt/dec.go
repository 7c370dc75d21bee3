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

// sourceName renders a source path for history lines and wrapped errors.
func sourceName(path string) string {
	if path == "" {
		return "stream"
	}
	return path
}

// checkFlag validates an optional 0/1 file flag.
func checkFlag(path string, lines []string, v *intValue, keyword string) error {
	if v == nil || v.Value == 0 || v.Value == 1 {
		return nil
	}
	return &ParseError{
		Path: path, Line: v.Pos.Line, Col: v.Pos.Column,
		Src: lineAt(lines, v.Pos.Line),
		Msg: fmt.Sprintf("%s must be 0 or 1, got %d", keyword, v.Value),
	}
}

// ReadDECCandidate parses DEC text from r into a partial candidate over
// p. Listed constraints are booked into their blocks, MASTERCONSS names
// into the master border. Constraints the file never mentions follow the
// CONSDEFAULTMASTER flag (on when absent): on, they too are booked to
// the master; off, they stay open so detection can keep refining the
// candidate. Variables are always left open.
func ReadDECCandidate(p *core.Problem, r io.Reader) (*decomp.Candidate, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return readDECCandidate(p, "", string(src))
}

func readDECCandidate(p *core.Problem, path, src string) (*decomp.Candidate, error) {
	lines := strings.Split(src, "\n")
	f, err := decParser.ParseString(path, src)
	if err != nil {
		return nil, syntaxError(path, lines, err)
	}
	if err := checkFlag(path, lines, f.ConsDefaultMaster, "CONSDEFAULTMASTER"); err != nil {
		return nil, err
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

	assigned := make(map[int]bool, p.NConss())
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
			i, err := consRef(p, path, lines, ref, assigned)
			if err != nil {
				return nil, err
			}
			filled[k] = true
			cand.BookConsToBlock(i, k)
		}
	}
	for _, ref := range f.Master {
		i, err := consRef(p, path, lines, ref, assigned)
		if err != nil {
			return nil, err
		}
		cand.BookConsToMaster(i)
	}
	// NBLOCKS is a claim: a declared block the sections never fill
	// invalidates the whole file.
	for k := 1; k <= n; k++ {
		if !filled[k] {
			return nil, &ParseError{
				Path: path, Line: f.NBlocks.Pos.Line, Col: f.NBlocks.Pos.Column,
				Src: lineAt(lines, f.NBlocks.Pos.Line),
				Msg: fmt.Sprintf("block %d of %d has no constraints", k, n),
			}
		}
	}
	cand.Flush()

	if f.ConsDefaultMaster == nil || f.ConsDefaultMaster.Value == 1 {
		cand.AssignOpenConssToMaster()
	}
	cand.AddHistory(fmt.Sprintf("dec: %s", sourceName(path)))
	return cand, nil
}

// consRef resolves one constraint name token, rejecting unknown names and
// repeats.
func consRef(p *core.Problem, path string, lines []string, ref nameRef, assigned map[int]bool) (int, error) {
	i, err := p.ConsByName(ref.Name)
	if err != nil {
		return 0, &ParseError{
			Path: path, Line: ref.Pos.Line, Col: ref.Pos.Column,
			Src: lineAt(lines, ref.Pos.Line),
			Msg: fmt.Sprintf("unknown constraint %q", ref.Name),
		}
	}
	if assigned[i] {
		return 0, &ParseError{
			Path: path, Line: ref.Pos.Line, Col: ref.Pos.Column,
			Src: lineAt(lines, ref.Pos.Line),
			Msg: fmt.Sprintf("constraint %q listed twice", ref.Name),
		}
	}
	assigned[i] = true
	return i, nil
}

// ReadDEC parses DEC text from r and resolves it into a finalized
// decomposition: unmentioned constraints join the master border and
// variables follow their constraints' blocks, spanning ones becoming
// linking variables.
func ReadDEC(p *core.Problem, r io.Reader) (*decomp.Decomposition, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return readDEC(p, "", string(src))
}

// ReadDECFile is ReadDEC over a file path.
func ReadDECFile(p *core.Problem, path string) (*decomp.Decomposition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return readDEC(p, path, string(src))
}

func readDEC(p *core.Problem, path, src string) (*decomp.Decomposition, error) {
	cand, err := readDECCandidate(p, path, src)
	if err != nil {
		return nil, err
	}
	cand.AssignOpenConssToMaster()
	cand.AssignOpenVarsByBlocks()
	d, err := cand.ToDecomposition()
	if err != nil {
		return nil, fmt.Errorf("decfmt: %s: %w", sourceName(path), err)
	}
	return d, nil
}

// WriteDEC writes d in DEC format: a header comment, the PRESOLVED flag,
// NBLOCKS, one BLOCK section per block and the MASTERCONSS section.
// Ignored constraints were folded into the master during finalization
// and are written there.
func WriteDEC(w io.Writer, p *core.Problem, d *decomp.Decomposition) error {
	if !d.Finalized() {
		return decomp.ErrNotFinalized
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "\\ %s, %d blocks, %s\n", problemLabel(p), d.NBlocks(), d.Type())
	fmt.Fprintln(bw, "PRESOLVED 0")
	fmt.Fprintf(bw, "NBLOCKS %d\n", d.NBlocks())
	for k := 1; k <= d.NBlocks(); k++ {
		fmt.Fprintf(bw, "BLOCK %d\n", k)
		for _, i := range d.BlockConss(k) {
			fmt.Fprintln(bw, p.ConsName(i))
		}
	}
	fmt.Fprintln(bw, "MASTERCONSS")
	for _, i := range d.LinkingConss() {
		fmt.Fprintln(bw, p.ConsName(i))
	}
	return bw.Flush()
}

// WriteDECFile is WriteDEC over a file path.
func WriteDECFile(path string, p *core.Problem, d *decomp.Decomposition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("decfmt: %w", err)
	}
	if err := WriteDEC(f, p, d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("decfmt: %w", err)
	}
	return nil
}

func problemLabel(p *core.Problem) string {
	if p.Name() == "" {
		return "unnamed problem"
	}
	return p.Name()
}
