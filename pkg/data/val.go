// Package data holds the value and identifier types shared across the
// solver: the tagged int/float union (Val) and the dense variable
// identifier (VarId).
package data

import (
	"fmt"
	"math"
)

// Kind tags which arm of a Val is populated.
type Kind uint8

const (
	// KindInt marks a Val carrying a 32-bit signed integer.
	KindInt Kind = iota
	// KindFloat marks a Val carrying a 64-bit IEEE-754 float.
	KindFloat
)

// Val is a tagged union of one int32 or one float64. Ordering and
// arithmetic across tags promote the integer to float.
type Val struct {
	kind Kind
	i    int32
	f    float64
}

// Int wraps an integer value.
func Int(v int32) Val { return Val{kind: KindInt, i: v} }

// Float wraps a float value.
func Float(v float64) Val { return Val{kind: KindFloat, f: v} }

// IsInt reports whether the value carries an integer.
func (v Val) IsInt() bool { return v.kind == KindInt }

// IsFloat reports whether the value carries a float.
func (v Val) IsFloat() bool { return v.kind == KindFloat }

// Kind returns the tag of the value.
func (v Val) Kind() Kind { return v.kind }

// AsInt returns the integer arm. Behavior is undefined if IsInt() is false.
func (v Val) AsInt() int32 { return v.i }

// AsFloat returns the value promoted to float64 regardless of tag.
func (v Val) AsFloat() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return float64(v.i)
}

// Add returns a + b. The result is float if either operand is float.
func (v Val) Add(o Val) Val {
	if v.kind == KindInt && o.kind == KindInt {
		return Int(v.i + o.i)
	}
	return Float(v.AsFloat() + o.AsFloat())
}

// Sub returns a - b.
func (v Val) Sub(o Val) Val {
	if v.kind == KindInt && o.kind == KindInt {
		return Int(v.i - o.i)
	}
	return Float(v.AsFloat() - o.AsFloat())
}

// Mul returns a * b.
func (v Val) Mul(o Val) Val {
	if v.kind == KindInt && o.kind == KindInt {
		return Int(v.i * o.i)
	}
	return Float(v.AsFloat() * o.AsFloat())
}

// Div returns a / b. Division of a nonzero value by zero yields signed
// infinity (a float), per spec; 0/0 yields NaN.
func (v Val) Div(o Val) Val {
	if o.AsFloat() == 0 {
		n := v.AsFloat()
		switch {
		case n > 0:
			return Float(math.Inf(1))
		case n < 0:
			return Float(math.Inf(-1))
		default:
			return Float(math.NaN())
		}
	}
	if v.kind == KindInt && o.kind == KindInt && v.i%o.i == 0 {
		return Int(v.i / o.i)
	}
	return Float(v.AsFloat() / o.AsFloat())
}

// Neg returns -a, preserving the tag.
func (v Val) Neg() Val {
	if v.kind == KindInt {
		return Int(-v.i)
	}
	return Float(-v.f)
}

// Cmp compares two values numerically, promoting ints to float when tags
// differ. Returns -1, 0, or 1.
func (v Val) Cmp(o Val) int {
	a, b := v.AsFloat(), o.AsFloat()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether v < o.
func (v Val) Less(o Val) bool { return v.Cmp(o) < 0 }

// Eq reports whether v == o, comparing numerically across tags.
func (v Val) Eq(o Val) bool { return v.Cmp(o) == 0 }

func (v Val) String() string {
	if v.kind == KindInt {
		return fmt.Sprintf("%d", v.i)
	}
	return fmt.Sprintf("%g", v.f)
}

// Mod returns a mod b. Modulo by zero yields NaN, per spec.
func (v Val) Mod(o Val) Val {
	if o.AsFloat() == 0 {
		return Float(math.NaN())
	}
	if v.kind == KindInt && o.kind == KindInt {
		return Int(v.i % o.i)
	}
	return Float(math.Mod(v.AsFloat(), o.AsFloat()))
}

// Abs returns |a|, preserving the tag.
func (v Val) Abs() Val {
	if v.kind == KindInt {
		if v.i < 0 {
			return Int(-v.i)
		}
		return v
	}
	return Float(math.Abs(v.f))
}

// VarId is a dense, append-only, stable index into a VarStore.
type VarId int

// PropId is an opaque index into a propagator kernel's registry.
type PropId int
