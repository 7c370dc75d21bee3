// SPDX-License-Identifier: MIT

package decfmt_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decfmt"
)

func exampleProblem() *core.Problem {
	p := core.NewProblem(core.WithName("supply"))
	for _, name := range []string{"v1", "v2", "v3", "v4"} {
		_, _ = p.AddVariable(name, core.VarContinuous)
	}
	add := func(name string, vars ...int) {
		entries := make([]core.Entry, len(vars))
		for i, v := range vars {
			entries[i] = core.Entry{Var: v, Coef: 1}
		}
		_, _ = p.AddConstraint(name, core.SenseLE, 10, entries...)
	}
	add("c1", 0, 1)
	add("c2", 2, 3)
	add("c3", 0, 2) // budget row across both pairs
	return p
}

// ExampleReadDEC reads a block assignment; the unlisted budget row
// defaults into the master border.
func ExampleReadDEC() {
	src := `NBLOCKS 2
BLOCK 1
c1
BLOCK 2
c2
`
	p := exampleProblem()
	d, err := decfmt.ReadDEC(p, strings.NewReader(src))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s with %d blocks, master row %s\n",
		d.Type(), d.NBlocks(), p.ConsName(d.LinkingConss()[0]))
	// Output:
	// bordered with 2 blocks, master row c3
}

// ExampleParseError shows the caret diagnostic for a name the problem
// does not know.
func ExampleParseError() {
	src := `NBLOCKS 1
BLOCK 1
bogus
`
	_, err := decfmt.ReadDEC(exampleProblem(), strings.NewReader(src))

	var perr *decfmt.ParseError
	if errors.As(err, &perr) {
		fmt.Println(perr.Detail())
	}
	// Output:
	// decfmt: input:3:1: unknown constraint "bogus"
	// bogus
	// ^
}
