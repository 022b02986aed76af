// Package domain implements the two concrete variable domains the solver
// operates on: Int, a sparse set over a contiguous integer universe, and
// Float, a closed interval with a fixed representable step. Both expose
// O(1) snapshot/restore so the search driver's trail (see package search)
// can undo a branch without walking removal history.
package domain

import "fmt"

// MaxDomainSize bounds the universe of a single integer domain. It exists
// to cap the worst-case per-variable allocation (spec budget: ~10^6).
const MaxDomainSize = 1_000_000

// Int is a sparse set over the contiguous universe [off, off+n-1].
//
// values[0:size] is the active domain; values[size:n] is the complement
// (removed values), kept in reverse-removal order. index maps a universe
// value to its current slot in values, so membership, removal, and
// "remove all but v" are all O(1); only removing the current min or max
// requires a bounded rescan of the active prefix to find the new bound.
type Int struct {
	off    int32
	n      int32
	values []int32
	index  []int32 // universe value - off -> slot in values
	size   int32
	min    int32
	max    int32
	empty  bool
}

// IntSnapshot is the O(1) restorable state of an Int domain.
type IntSnapshot struct {
	size  int32
	min   int32
	max   int32
	empty bool
}

// NewInt builds a sparse set over [min, max]. A swapped or oversized range
// produces an explicitly invalid (empty) domain rather than being
// silently canonicalized — the validator (package validate) is the one
// place modelling errors are meant to surface.
func NewInt(min, max int32) *Int {
	if min > max {
		return &Int{empty: true}
	}
	n := int64(max) - int64(min) + 1
	if n > MaxDomainSize {
		return &Int{empty: true}
	}
	d := &Int{
		off:    min,
		n:      int32(n),
		values: make([]int32, n),
		index:  make([]int32, n),
		size:   int32(n),
		min:    min,
		max:    max,
	}
	for i := int32(0); i < d.n; i++ {
		d.values[i] = min + i
		d.index[i] = i
	}
	return d
}

// NewIntFromValues builds a sparse set whose initial domain is exactly
// the (deduplicated) given values. The universe spans their min..max.
func NewIntFromValues(vals []int32) *Int {
	if len(vals) == 0 {
		return &Int{empty: true}
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	d := NewInt(lo, hi)
	if d.empty {
		return d
	}
	present := make([]bool, d.n)
	for _, v := range vals {
		present[v-d.off] = true
	}
	// Remove universe values that were not actually requested.
	for u := d.n - 1; u >= 0; u-- {
		if !present[u] {
			d.Remove(d.off + u)
		}
	}
	return d
}

func (d *Int) slot(v int32) int32 { return v - d.off }

// IsEmpty reports whether the domain currently has no values.
func (d *Int) IsEmpty() bool { return d.empty || d.size == 0 }

// Min returns the current minimum. Undefined if the domain is empty.
func (d *Int) Min() int32 { return d.min }

// Max returns the current maximum. Undefined if the domain is empty.
func (d *Int) Max() int32 { return d.max }

// Size returns the number of values currently present.
func (d *Int) Size() int { return int(d.size) }

// IsFixed reports whether exactly one value remains.
func (d *Int) IsFixed() bool { return d.size == 1 }

// Contains reports O(1) membership.
func (d *Int) Contains(v int32) bool {
	if d.empty || v < d.off || v >= d.off+d.n {
		return false
	}
	return d.index[d.slot(v)] < d.size
}

// exchange swaps the values stored in two slots of the values array,
// keeping index in sync.
func (d *Int) exchange(a, b int32) {
	va, vb := d.values[a], d.values[b]
	d.values[a], d.values[b] = vb, va
	d.index[d.slot(va)] = b
	d.index[d.slot(vb)] = a
}

// Remove deletes v from the domain. Returns true if v was present.
// Emptying the domain is signaled via IsEmpty(), not a panic: the caller
// (a propagator via the kernel) is expected to check it immediately.
func (d *Int) Remove(v int32) bool {
	if d.empty || !d.Contains(v) {
		return false
	}
	slot := d.index[d.slot(v)]
	last := d.size - 1
	d.exchange(slot, last)
	d.size--
	if d.size == 0 {
		d.empty = true
		return true
	}
	if v == d.min {
		d.min = d.rescanMin()
	}
	if v == d.max {
		d.max = d.rescanMax()
	}
	return true
}

func (d *Int) rescanMin() int32 {
	m := d.values[0]
	for i := int32(1); i < d.size; i++ {
		if d.values[i] < m {
			m = d.values[i]
		}
	}
	return m
}

func (d *Int) rescanMax() int32 {
	m := d.values[0]
	for i := int32(1); i < d.size; i++ {
		if d.values[i] > m {
			m = d.values[i]
		}
	}
	return m
}

// RemoveAllBut restricts the domain to {v}, in O(1) by moving v to slot 0.
func (d *Int) RemoveAllBut(v int32) {
	if d.empty || !d.Contains(v) {
		d.empty = true
		d.size = 0
		return
	}
	slot := d.index[d.slot(v)]
	d.exchange(slot, 0)
	d.size = 1
	d.min, d.max = v, v
}

// RemoveBelow removes every value strictly below t.
func (d *Int) RemoveBelow(t int32) {
	if d.empty || t <= d.min {
		return
	}
	if t > d.max {
		d.empty = true
		d.size = 0
		return
	}
	for i := int32(0); i < d.size; {
		if d.values[i] < t {
			d.exchange(i, d.size-1)
			d.size--
			if d.size == 0 {
				d.empty = true
				return
			}
			continue
		}
		i++
	}
	d.min = d.rescanMin()
}

// RemoveAbove removes every value strictly above t.
func (d *Int) RemoveAbove(t int32) {
	if d.empty || t >= d.max {
		return
	}
	if t < d.min {
		d.empty = true
		d.size = 0
		return
	}
	for i := int32(0); i < d.size; {
		if d.values[i] > t {
			d.exchange(i, d.size-1)
			d.size--
			if d.size == 0 {
				d.empty = true
				return
			}
			continue
		}
		i++
	}
	d.max = d.rescanMax()
}

// Iter calls f for every value currently in the domain. Order is
// insertion-independent; callers must not depend on it.
func (d *Int) Iter(f func(int32)) {
	if d.empty {
		return
	}
	for i := int32(0); i < d.size; i++ {
		f(d.values[i])
	}
}

// ComplementIter calls f for every value that has been removed.
func (d *Int) ComplementIter(f func(int32)) {
	if d.empty {
		for i := int32(0); i < d.n; i++ {
			f(d.values[i])
		}
		return
	}
	for i := d.size; i < d.n; i++ {
		f(d.values[i])
	}
}

// ToSlice materializes the active domain. Intended for tests and small
// domains (global constraints that need a concrete tuple set).
func (d *Int) ToSlice() []int32 {
	out := make([]int32, 0, d.size)
	d.Iter(func(v int32) { out = append(out, v) })
	return out
}

// Snapshot captures the O(1) restorable state.
func (d *Int) Snapshot() IntSnapshot {
	return IntSnapshot{size: d.size, min: d.min, max: d.max, empty: d.empty}
}

// Restore undoes every removal since the matching Snapshot: removals
// only swap slots inside the active prefix, so values[0:size] at
// snapshot time still holds the same set, and resetting the
// size/min/max boundary makes the removed values reappear in it.
func (d *Int) Restore(s IntSnapshot) {
	d.size = s.size
	d.min = s.min
	d.max = s.max
	d.empty = s.empty
}

func (d *Int) String() string {
	if d.empty {
		return "{}"
	}
	return fmt.Sprintf("Int[size=%d min=%d max=%d]", d.size, d.min, d.max)
}
