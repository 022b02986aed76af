// Package meta implements the constraint metadata registry (spec.md
// §3's "constraint metadata" and §4.11/§4.10's uses of it): a side
// table, keyed by propagate.PropId, describing each posted
// constraint's kind, variables, and shape, used by the validator for
// arity/sanity checks and by the LP bridge to recognize which posted
// propagators contribute a linear row. Grounded on
// original_source/src/optimization/constraint_metadata.rs's
// ConstraintMetadata/ConstraintType/ConstraintData shape, adapted from
// a Rust enum-with-payload to a small tagged Go struct.
package meta

import (
	"github.com/radevgit/selen-sub002/internal/xslice"
	"github.com/radevgit/selen-sub002/pkg/data"
)

// Kind tags which propagator shape a Metadata entry describes.
type Kind string

const (
	KindLinearEq  Kind = "linear_eq"
	KindLinearLeq Kind = "linear_leq"
	KindLinearNeq Kind = "linear_neq"
	KindSum       Kind = "sum"
	KindProduct   Kind = "product"
	KindModulo    Kind = "modulo"
	KindAbs       Kind = "abs"
	KindMin       Kind = "min"
	KindMax       Kind = "max"
	KindBoolAnd   Kind = "bool_and"
	KindBoolOr    Kind = "bool_or"
	KindBoolNot   Kind = "bool_not"
	KindBoolXor   Kind = "bool_xor"
	KindElement   Kind = "element"
	KindCount     Kind = "count"
	KindTable     Kind = "table"
	KindLex       Kind = "lex"
	KindAllDiff   Kind = "all_different"
	KindGCC       Kind = "gcc"
	KindCumulative Kind = "cumulative"
)

// Linear carries the shape the LP bridge needs to extract a row:
// coefficients, the VarIds they multiply (already resolved past any
// view transform — see solver.Model's metadata recording), the
// relation, and the right-hand side. Non-linear metadata leaves this
// nil.
type Linear struct {
	Coeffs []data.Val
	Vars   []data.VarId
	Rel    string // "eq", "leq", "neq" — mirrors constraints.Relation's names
	RHS    data.Val
	IsInt  bool
}

// Metadata describes one posted propagator.
type Metadata struct {
	Kind     Kind
	Vars     []data.VarId
	Linear   *Linear // non-nil for linear eq/leq/neq; the LP bridge skips neq rows
	Divisors []data.VarId
}

// Registry maps propagate.PropId (by its integer value) to Metadata.
// It never holds propagator logic itself — only the description the
// validator and LP bridge need.
type Registry struct {
	entries []Metadata
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Record appends metadata for the propagator just posted; propagator
// ids are issued densely in posting order by propagate.Kernel, so a
// plain append keeps Registry's index aligned with PropId values as
// long as every Post call is paired with exactly one Record call.
func (r *Registry) Record(m Metadata) int {
	id := len(r.entries)
	r.entries = append(r.entries, m)
	return id
}

// Len returns the number of recorded entries.
func (r *Registry) Len() int { return len(r.entries) }

// Get returns the metadata recorded at id.
func (r *Registry) Get(id int) Metadata { return r.entries[id] }

// All returns every recorded entry, in posting order.
func (r *Registry) All() []Metadata { return r.entries }

// LinearSystem collects every recorded linear constraint, for the LP
// bridge's Extract step (spec.md §4.10 step 1).
func (r *Registry) LinearSystem() []Linear {
	var out []Linear
	for _, e := range r.entries {
		if e.Linear != nil {
			out = append(out, *e.Linear)
		}
	}
	return out
}

// AllVars returns every VarId referenced by any recorded entry
// (including divisors), deduplicated and sorted. Used by the validator
// to check variable references without scanning per-constraint.
func (r *Registry) AllVars() []data.VarId {
	var ids []data.VarId
	for _, e := range r.entries {
		ids = append(ids, e.Vars...)
		ids = append(ids, e.Divisors...)
	}
	if len(ids) == 0 {
		return nil
	}
	return xslice.Dedup(ids)
}
