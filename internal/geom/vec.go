package geom

import "math"

// Vec is a quantity in physical units (meters, m/s, newtons).
// Render-space coordinates use Point; the two only meet in Mapper.
type Vec struct {
	X, Y float64
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// Polar builds a vector from a magnitude and an angle in radians.
func Polar(mag, rad float64) Vec {
	return Vec{X: mag * math.Cos(rad), Y: mag * math.Sin(rad)}
}

func (v Vec) Add(w Vec) Vec { return Vec{X: v.X + w.X, Y: v.Y + w.Y} }

func (v Vec) Sub(w Vec) Vec { return Vec{X: v.X - w.X, Y: v.Y - w.Y} }

func (v Vec) Scale(s float64) Vec { return Vec{X: v.X * s, Y: v.Y * s} }

func (v Vec) Neg() Vec { return Vec{X: -v.X, Y: -v.Y} }

func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec) Dot(w Vec) float64 { return v.X*w.X + v.Y*w.Y }

// Unit returns the zero vector for zero-length input.
func (v Vec) Unit() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Angle is the direction in radians, in (-π, π].
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }

// AngleDeg is the direction in degrees normalised to [0, 360).
func (v Vec) AngleDeg() float64 {
	return NormalizeDeg(v.Angle() * 180 / math.Pi)
}

func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// NormalizeDeg folds an angle into [0, 360).
func NormalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 || d == 0 {
		return 0
	}
	return d
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }
