// Package xslice holds small generic slice helpers shared by the
// validator and the metadata registry's variable collector: dedup and
// deterministic sort over variable id lists (SPEC_FULL.md's DOMAIN
// STACK wiring for golang.org/x/exp/constraints and
// golang.org/x/exp/slices).
package xslice

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Dedup returns a sorted copy of vs with duplicates removed.
func Dedup[T constraints.Ordered](vs []T) []T {
	out := append([]T(nil), vs...)
	slices.Sort(out)
	return slices.Compact(out)
}

// Min returns the smallest element of a non-empty slice.
func Min[T constraints.Ordered](vs []T) T {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max returns the largest element of a non-empty slice.
func Max[T constraints.Ordered](vs []T) T {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
