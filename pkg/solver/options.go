package solver

// Direction is the optimization sense for SolveOptimize.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// LPSchedule controls how often the LP bounds-tightening bridge runs
// during search (resolved Open Question in SPEC_FULL.md §11).
type LPSchedule int

const (
	// LPEveryNode runs the LP bridge at every search node. Safer
	// default: LP tightening never changes the solution set (spec.md
	// P6), so running it more often only costs time, never
	// correctness.
	LPEveryNode LPSchedule = iota
	// LPRootOnly runs the LP bridge once, before the first branching
	// decision, trading pruning strength on deep trees for speed.
	LPRootOnly
)

// Options configures one Solve/SolveOptimize call. A plain struct with
// a Default constructor, per the teacher's DefaultSolverConfig/
// DefaultStrategyConfig convention (spec.md §6 is explicit that this
// is not a functional-options API).
type Options struct {
	MaxNodes  int64 // 0 = unlimited
	TimeoutMs int64 // 0 = unlimited

	// VarSelect/ValueSelect name a search.VarSelector/ValueSelector:
	// "first_unassigned", "mrv", "largest_domain" and
	// "min", "max", "mid", "split_low", "split_high" respectively.
	VarSelect   string
	ValueSelect string

	UseLP                bool
	LPFeasTol            float64
	LPOptTol             float64
	FloatPrecisionDigits int

	LPSchedule LPSchedule
}

// DefaultOptions returns MRV/min-value search, LP tightening on
// (every node), unlimited nodes and time, and FloatPrecisionDigits 6.
// No solve path reads FloatPrecisionDigits: float variables keep the
// step chosen when they are created.
func DefaultOptions() Options {
	return Options{
		VarSelect:            "mrv",
		ValueSelect:           "min",
		UseLP:                true,
		LPFeasTol:            1e-8,
		LPOptTol:             1e-8,
		FloatPrecisionDigits: 6,
		LPSchedule:           LPEveryNode,
	}
}
