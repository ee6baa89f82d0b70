package guidance

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 5, Z: 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v, want {5 7 9}", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v, want {3 3 3}", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v, want {2 4 6}", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 0}
	if got := v.Length(); got != 5 {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := v.LengthXY(); got != 5 {
		t.Errorf("LengthXY = %v, want 5", got)
	}
}

func TestVec3NormalizedZero(t *testing.T) {
	v := Vec3{}
	if got := v.Normalized(); got != (Vec3{}) {
		t.Errorf("Normalized of zero vector = %v, want zero", got)
	}
}

func TestSafeSqrtNegative(t *testing.T) {
	if got := SafeSqrt(-1e-3); got != 0 {
		t.Errorf("SafeSqrt(negative) = %v, want 0", got)
	}
}

func TestIsZeroAndPositive(t *testing.T) {
	if !IsZero(1e-9) {
		t.Error("expected 1e-9 to be treated as zero")
	}
	if IsPositive(1e-9) {
		t.Error("expected 1e-9 to not be positive")
	}
	if !IsPositive(1.0) {
		t.Error("expected 1.0 to be positive")
	}
}

func TestConstrain(t *testing.T) {
	if got := Constrain(5, 0, 10); got != 5 {
		t.Errorf("Constrain(5,0,10) = %v, want 5", got)
	}
	if got := Constrain(-5, 0, 10); got != 0 {
		t.Errorf("Constrain(-5,0,10) = %v, want 0", got)
	}
	if got := Constrain(15, 0, 10); got != 10 {
		t.Errorf("Constrain(15,0,10) = %v, want 10", got)
	}
}

func TestBearingCD(t *testing.T) {
	cases := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"due east", Vec3{}, Vec3{X: 0, Y: 10}, 9000},
		{"due north", Vec3{}, Vec3{X: 10, Y: 0}, 0},
		{"due west", Vec3{}, Vec3{X: 0, Y: -10}, 27000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BearingCD(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-6 {
				t.Errorf("BearingCD = %v, want %v", got, tc.want)
			}
		})
	}
}
