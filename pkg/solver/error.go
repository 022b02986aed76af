package solver

import (
	"fmt"

	"github.com/radevgit/selen-sub002/pkg/data"
)

// ErrorKind tags the sum type spec.md §6/§7 requires at the library
// boundary.
type ErrorKind int

const (
	InvalidDomain ErrorKind = iota
	InvalidVariableReference
	InvalidConstraint
	ConflictingConstraints
	LimitReached
	Infeasible
	InternalNumericalError
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidDomain:
		return "InvalidDomain"
	case InvalidVariableReference:
		return "InvalidVariableReference"
	case InvalidConstraint:
		return "InvalidConstraint"
	case ConflictingConstraints:
		return "ConflictingConstraints"
	case LimitReached:
		return "LimitReached"
	case Infeasible:
		return "Infeasible"
	case InternalNumericalError:
		return "InternalNumericalError"
	default:
		return "Unknown"
	}
}

// Error is the single structured error type the solver surfaces,
// mirroring ConstraintViolationError's shape in
// gitrdm-gokando/pkg/minikanren/constraint_types.go: a Kind enum plus a
// human-readable Message and optional offending-entity fields.
type Error struct {
	Kind    ErrorKind
	Message string
	VarID   *data.VarId
	PropID  *data.PropId
}

func (e *Error) Error() string {
	if e.VarID != nil {
		return fmt.Sprintf("%s: %s (var %d)", e.Kind, e.Message, *e.VarID)
	}
	if e.PropID != nil {
		return fmt.Sprintf("%s: %s (constraint %d)", e.Kind, e.Message, *e.PropID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newVarError(kind ErrorKind, id data.VarId, msg string) *Error {
	return &Error{Kind: kind, Message: msg, VarID: &id}
}

func newPropError(kind ErrorKind, id data.PropId, msg string) *Error {
	return &Error{Kind: kind, Message: msg, PropID: &id}
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}
