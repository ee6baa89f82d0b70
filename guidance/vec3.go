package guidance

import "math"

// zeroTolerance mirrors AC_WPNav's is_zero/is_positive epsilon.
const zeroTolerance = 1e-6

// Vec3 is a position, velocity, or direction in the NEU frame, in
// centimetres (or cm/s, cm/s² depending on context).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the scalar (dot) product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the 3D Euclidean length of v.
func (v Vec3) Length() float64 {
	return SafeSqrt(v.Dot(v))
}

// LengthXY returns the horizontal (XY-plane) length of v.
func (v Vec3) LengthXY() float64 {
	return math.Hypot(v.X, v.Y)
}

// WithZ returns a copy of v with Z replaced.
func (v Vec3) WithZ(z float64) Vec3 {
	return Vec3{v.X, v.Y, z}
}

// Normalized returns v/|v|, or the zero vector if v is (near) zero length.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if IsZero(l) {
		return Vec3{}
	}
	return v.Scale(1.0 / l)
}

// SafeSqrt returns sqrt(max(x,0)), never producing NaN for negative input
// caused by floating point noise.
func SafeSqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Sqrt(x)
}

// IsZero reports whether x is within zeroTolerance of zero.
func IsZero(x float64) bool {
	return math.Abs(x) < zeroTolerance
}

// IsPositive reports whether x exceeds zeroTolerance.
func IsPositive(x float64) bool {
	return x > zeroTolerance
}

// Constrain clamps x to [lo, hi].
func Constrain(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// BearingCD returns the bearing from a to b in the XY plane, in
// centi-degrees, range [0, 36000).
func BearingCD(a, b Vec3) float64 {
	return RadiansToCentiDegrees(math.Atan2(b.Y-a.Y, b.X-a.X))
}

// RadiansToCentiDegrees converts radians to centi-degrees in [0, 36000).
func RadiansToCentiDegrees(rad float64) float64 {
	cd := rad * (18000.0 / math.Pi)
	if cd < 0 {
		cd += 36000.0
	}
	return cd
}
