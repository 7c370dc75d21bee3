package detect_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/detect"
)

// ExampleEngine_Run detects the two independent chains hiding in a small
// problem and reports the best decomposition of the pool.
func ExampleEngine_Run() {
	p := core.NewProblem(core.WithName("chains"))
	for _, name := range []string{"v1", "v2", "v3", "v4", "v5"} {
		_, _ = p.AddVariable(name, core.VarContinuous)
	}
	add := func(name string, vars ...int) {
		entries := make([]core.Entry, len(vars))
		for i, v := range vars {
			entries[i] = core.Entry{Var: v, Coef: 1}
		}
		_, _ = p.AddConstraint(name, core.SenseLE, 5, entries...)
	}
	add("c1", 0, 1)
	add("c2", 1, 2)
	add("c3", 3)
	add("c4", 3, 4)

	pool, err := detect.NewEngine(p).Run(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	best, sc, ok := pool.Best()
	if !ok {
		fmt.Println("empty pool")
		return
	}
	fmt.Printf("%s with %d blocks (score %.2f)\n", best.Type(), best.NBlocks(), sc)
	// Output:
	// diagonal with 2 blocks (score 0.50)
}
