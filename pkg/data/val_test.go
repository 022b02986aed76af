package data

import (
	"math"
	"testing"
)

func TestValArithmeticPromotion(t *testing.T) {
	tests := []struct {
		name string
		a, b Val
		op   func(a, b Val) Val
		want Val
	}{
		{"int+int stays int", Int(2), Int(3), Val.Add, Int(5)},
		{"int+float promotes", Int(2), Float(1.5), Val.Add, Float(3.5)},
		{"float-float", Float(2.5), Float(1.0), Val.Sub, Float(1.5)},
		{"int*int", Int(3), Int(4), Val.Mul, Int(12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.op(tt.a, tt.b)
			if got.IsInt() != tt.want.IsInt() {
				t.Fatalf("kind mismatch: got %v want %v", got, tt.want)
			}
			if got.AsFloat() != tt.want.AsFloat() {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValDivisionByZero(t *testing.T) {
	if got := Int(5).Div(Int(0)); !math.IsInf(got.AsFloat(), 1) {
		t.Errorf("5/0 = %v, want +Inf", got)
	}
	if got := Int(-5).Div(Int(0)); !math.IsInf(got.AsFloat(), -1) {
		t.Errorf("-5/0 = %v, want -Inf", got)
	}
	if got := Int(0).Mod(Int(0)); !math.IsNaN(got.AsFloat()) {
		t.Errorf("0 mod 0 = %v, want NaN", got)
	}
}

func TestValEqualityAcrossTags(t *testing.T) {
	if !Int(4).Eq(Float(4.0)) {
		t.Errorf("Int(4) should equal Float(4.0)")
	}
	if !Int(4).Less(Float(4.5)) {
		t.Errorf("Int(4) should be less than Float(4.5)")
	}
}
