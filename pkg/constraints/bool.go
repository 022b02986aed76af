package constraints

import (
	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

// Boolean propagators over 0/1 integer views. Naming follows the
// relational-arithmetic idiom in gitrdm-gokando/pkg/minikanren
// (Pluso/Timeso/LessThano) but as direct propagators rather than goals,
// since this solver has no unification layer to resume through.

// And enforces z == x && y.
type And struct{ X, Y, Z views.View }

func (c *And) TriggerVars() []data.VarId { return viewVars(c.X, c.Y, c.Z) }

func (c *And) Prune(s *domain.Store) error {
	xFixed, x1 := fixedBool(s, c.X)
	yFixed, y1 := fixedBool(s, c.Y)
	if xFixed && yFixed {
		return fixBool(s, c.Z, x1 && y1)
	}
	if xFixed && !x1 {
		return fixBool(s, c.Z, false)
	}
	if yFixed && !y1 {
		return fixBool(s, c.Z, false)
	}
	if zFixed, z1 := fixedBool(s, c.Z); zFixed {
		if z1 {
			if err := fixBool(s, c.X, true); err != nil {
				return err
			}
			return fixBool(s, c.Y, true)
		}
		if xFixed && x1 {
			return fixBool(s, c.Y, false)
		}
		if yFixed && y1 {
			return fixBool(s, c.X, false)
		}
	}
	return nil
}

// Or enforces z == x || y.
type Or struct{ X, Y, Z views.View }

func (c *Or) TriggerVars() []data.VarId { return viewVars(c.X, c.Y, c.Z) }

func (c *Or) Prune(s *domain.Store) error {
	xFixed, x1 := fixedBool(s, c.X)
	yFixed, y1 := fixedBool(s, c.Y)
	if xFixed && yFixed {
		return fixBool(s, c.Z, x1 || y1)
	}
	if xFixed && x1 {
		return fixBool(s, c.Z, true)
	}
	if yFixed && y1 {
		return fixBool(s, c.Z, true)
	}
	if zFixed, z1 := fixedBool(s, c.Z); zFixed {
		if !z1 {
			if err := fixBool(s, c.X, false); err != nil {
				return err
			}
			return fixBool(s, c.Y, false)
		}
		if xFixed && !x1 {
			return fixBool(s, c.Y, true)
		}
		if yFixed && !y1 {
			return fixBool(s, c.X, true)
		}
	}
	return nil
}

// Not enforces z == !x.
type Not struct{ X, Z views.View }

func (c *Not) TriggerVars() []data.VarId { return viewVars(c.X, c.Z) }

func (c *Not) Prune(s *domain.Store) error {
	if fixed, v := fixedBool(s, c.X); fixed {
		return fixBool(s, c.Z, !v)
	}
	if fixed, v := fixedBool(s, c.Z); fixed {
		return fixBool(s, c.X, !v)
	}
	return nil
}

// Xor enforces z == x != y (boolean exclusive-or).
type Xor struct{ X, Y, Z views.View }

func (c *Xor) TriggerVars() []data.VarId { return viewVars(c.X, c.Y, c.Z) }

func (c *Xor) Prune(s *domain.Store) error {
	xFixed, x1 := fixedBool(s, c.X)
	yFixed, y1 := fixedBool(s, c.Y)
	if xFixed && yFixed {
		return fixBool(s, c.Z, x1 != y1)
	}
	zFixed, z1 := fixedBool(s, c.Z)
	if xFixed && zFixed {
		return fixBool(s, c.Y, x1 != z1)
	}
	if yFixed && zFixed {
		return fixBool(s, c.X, y1 != z1)
	}
	return nil
}

func fixedBool(s *domain.Store, v views.View) (fixed bool, val bool) {
	if v.Min(s).AsFloat() != v.Max(s).AsFloat() {
		return false, false
	}
	return true, v.Min(s).AsFloat() != 0
}

func fixBool(s *domain.Store, v views.View, val bool) error {
	n := data.Int(0)
	if val {
		n = data.Int(1)
	}
	if _, ok := v.TrySetMin(s, n); !ok {
		return propagate.ErrFail
	}
	if _, ok := v.TrySetMax(s, n); !ok {
		return propagate.ErrFail
	}
	return nil
}
