// Command example demonstrates the solver library on the N-queens
// problem: one column variable per row, AllDifferent across columns,
// and pairwise linear disequalities forbidding shared diagonals.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/radevgit/selen-sub002/internal/batch"
	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/solver"
)

// buildQueens posts one N-queens model for the given board size.
func buildQueens(n int32) *solver.Model {
	m := solver.NewModel()
	cols := make([]data.VarId, n)
	for i := range cols {
		cols[i] = m.NewInt(0, n-1)
	}
	m.PostAllDifferent(cols)
	for i := int32(0); i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := j - i
			m.PostLinearNeq([]data.Val{data.Int(1), data.Int(-1)}, []data.VarId{cols[i], cols[j]}, data.Int(d))
			m.PostLinearNeq([]data.Val{data.Int(1), data.Int(-1)}, []data.VarId{cols[i], cols[j]}, data.Int(-d))
		}
	}
	return m
}

func solveOne(n int32) {
	m := buildQueens(n)
	sol, err := m.Solve(solver.DefaultOptions())
	if err != nil {
		fmt.Printf("%d-queens: %v\n", n, err)
		return
	}
	fmt.Printf("%d-queens solution:\n", n)
	for i := int32(0); i < n; i++ {
		fmt.Printf("  row %d -> col %d\n", i, sol.Int(data.VarId(i)))
	}
}

// solvePortfolio solves several board sizes concurrently via
// internal/batch, one independent Model per size.
func solvePortfolio(sizes []int32) {
	builders := make([]batch.ModelBuilder, len(sizes))
	for i, n := range sizes {
		n := n
		builders[i] = func(int) *solver.Model { return buildQueens(n) }
	}
	results, err := batch.SolveAll(context.Background(), 0, builders, solver.DefaultOptions())
	if err != nil {
		fmt.Fprintln(os.Stderr, "portfolio solve failed:", err)
		return
	}
	for i, n := range sizes {
		fmt.Printf("portfolio %d-queens row 0 -> col %d\n", n, results[i].Int(0))
	}
}

func main() {
	solveOne(8)
	solvePortfolio([]int32{6, 8, 10, 12})
}
