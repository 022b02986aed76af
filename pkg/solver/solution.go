package solver

import "github.com/radevgit/selen-sub002/pkg/data"

// Solution is a snapshot of every variable's fixed value at the end of
// a successful Solve/SolveOptimize, decoupled from the Model's store so
// it stays valid even if the Model is solved again later.
type Solution struct {
	ints   map[data.VarId]int32
	floats map[data.VarId]float64
}

// Int returns the solved value of an integer variable. Behavior is
// undefined if id does not name an integer variable of the model this
// solution came from.
func (s Solution) Int(id data.VarId) int32 { return s.ints[id] }

// Float returns the solved value of a float variable.
func (s Solution) Float(id data.VarId) float64 { return s.floats[id] }
