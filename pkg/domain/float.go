package domain

import "math"

// FixedThreshold is the width below which a float domain is treated as a
// constant: once a variable's domain narrows past this point, every
// propagator should skip further writes to it (see SPEC_FULL.md's
// resolution of the "precision drift under chained equality" open
// question).
const FixedThreshold = 1e-9

// equalityTolerance governs Contains and the B3 "don't perturb an
// already-close value" guard.
const equalityTolerance = 1e-12

// defaultTargetSteps is the number of representable steps an adaptively
// sized float domain aims for.
const defaultTargetSteps = 1024.0

// Float is a closed interval [min, max] with a fixed positive step,
// chosen adaptively at construction so the lattice {min + k*step <= max}
// has on the order of a few hundred to a couple thousand representable
// points.
type Float struct {
	min, max float64
	step     float64
	empty    bool
}

// FloatSnapshot is the O(1) restorable state of a Float domain.
type FloatSnapshot struct {
	min, max float64
	empty    bool
}

// NewFloat builds an adaptively stepped float interval. As with Int, a
// swapped bound produces an explicitly empty domain for the validator to
// catch, rather than being silently canonicalized.
func NewFloat(min, max float64) *Float {
	if min > max || math.IsNaN(min) || math.IsNaN(max) {
		return &Float{empty: true}
	}
	return &Float{min: min, max: max, step: adaptiveStep(min, max)}
}

// NewFloatWithStep builds a float interval with an explicit step
// instead of the adaptive one.
func NewFloatWithStep(min, max, step float64) *Float {
	if min > max || step <= 0 {
		return &Float{empty: true}
	}
	return &Float{min: min, max: max, step: step}
}

func adaptiveStep(min, max float64) float64 {
	if math.IsInf(min, -1) || math.IsInf(max, 1) {
		return 1.0
	}
	span := max - min
	if span <= 0 {
		return math.SmallestNonzeroFloat64
	}
	raw := span / defaultTargetSteps
	if raw <= 0 {
		return math.SmallestNonzeroFloat64
	}
	// Round to the nearest power of two for stable floating-point
	// alignment across repeated next()/prev() advances.
	exp := math.Round(math.Log2(raw))
	return math.Pow(2, exp)
}

// IsEmpty reports whether min > max.
func (d *Float) IsEmpty() bool { return d.empty || d.min > d.max }

// Min returns the current lower bound.
func (d *Float) Min() float64 { return d.min }

// Max returns the current upper bound.
func (d *Float) Max() float64 { return d.max }

// Step returns the fixed step size chosen at construction.
func (d *Float) Step() float64 { return d.step }

// IsFixed reports whether the interval's width has narrowed to within
// FixedThreshold — the point at which the open question on precision
// drift says to stop writing to it.
func (d *Float) IsFixed() bool { return d.max-d.min <= FixedThreshold }

// Contains reports membership with tolerance step/2.
func (d *Float) Contains(v float64) bool {
	if d.IsEmpty() {
		return false
	}
	tol := d.step / 2
	if v < d.min-tol || v > d.max+tol {
		return false
	}
	steps := (v - d.min) / d.step
	return math.Abs(steps-math.Round(steps)) <= 0.5+equalityTolerance
}

// Next advances v by one step, falling back to the floating-point
// successor when the step is finer than the ULP at v, guaranteeing
// strict progress either way.
func (d *Float) Next(v float64) float64 {
	effective := d.step
	ulp := math.Nextafter(v, math.Inf(1)) - v
	if effective < ulp {
		return math.Nextafter(v, math.Inf(1))
	}
	return v + effective
}

// Prev retreats v by one step, with the same ULP fallback as Next.
func (d *Float) Prev(v float64) float64 {
	effective := d.step
	ulp := v - math.Nextafter(v, math.Inf(-1))
	if effective < ulp {
		return math.Nextafter(v, math.Inf(-1))
	}
	return v - effective
}

// Mid returns the step-aligned midpoint. When one bound is infinite the
// finite side is used +/-1; when both are infinite, 0.
func (d *Float) Mid() float64 {
	switch {
	case math.IsInf(d.min, -1) && math.IsInf(d.max, 1):
		return 0.0
	case math.IsInf(d.min, -1):
		return d.max - 1.0
	case math.IsInf(d.max, 1):
		return d.min + 1.0
	default:
		return d.RoundToStep(d.min + (d.max-d.min)/2)
	}
}

// RoundToStep snaps v to the nearest step-aligned point.
func (d *Float) RoundToStep(v float64) float64 {
	steps := math.Round((v - d.min) / d.step)
	return d.min + steps*d.step
}

// FloorToStep snaps v down to a step-aligned point.
func (d *Float) FloorToStep(v float64) float64 {
	steps := math.Floor((v - d.min) / d.step)
	return d.min + steps*d.step
}

// CeilToStep snaps v up to a step-aligned point.
func (d *Float) CeilToStep(v float64) float64 {
	steps := math.Ceil((v - d.min) / d.step)
	return d.min + steps*d.step
}

// Assign narrows the domain to the single step-aligned point nearest v.
func (d *Float) Assign(v float64) {
	r := d.RoundToStep(v)
	d.min, d.max = r, r
}

// RemoveBelow rounds inward (ceiling) so no value inside the removal
// region survives: soundness over permissiveness.
func (d *Float) RemoveBelow(t float64) {
	if d.IsEmpty() {
		return
	}
	if t <= d.min {
		return
	}
	d.min = d.CeilToStep(t)
}

// RemoveAbove rounds inward (floor).
func (d *Float) RemoveAbove(t float64) {
	if d.IsEmpty() {
		return
	}
	if t >= d.max {
		return
	}
	d.max = d.FloorToStep(t)
}

// Snapshot captures (min, max).
func (d *Float) Snapshot() FloatSnapshot {
	return FloatSnapshot{min: d.min, max: d.max, empty: d.empty}
}

// Restore returns the interval to a prior (min, max), bit for bit.
func (d *Float) Restore(s FloatSnapshot) {
	d.min, d.max, d.empty = s.min, s.max, s.empty
}
