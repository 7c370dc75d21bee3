// SPDX-License-Identifier: MIT

package builder_test

import (
	"fmt"

	"github.com/katalvlaran/dantzig/builder"
)

// ExampleBuild composes a diagonal skeleton with one coupling row and
// inspects the result.
func ExampleBuild() {
	p, err := builder.Build(nil,
		builder.BlockDiagonal(2, 2, 3),
		builder.LinkingConss(1, 2),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%d conss over %d vars\n", p.NConss(), p.NVars())

	i, _ := p.ConsByName("link0")
	fmt.Print("link0 couples:")
	for _, v := range p.ConsVars(i) {
		fmt.Printf(" %s", p.VarName(v))
	}
	fmt.Println()
	// Output:
	// 5 conss over 6 vars
	// link0 couples: x1_0 x2_0
}
