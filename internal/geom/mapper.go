package geom

import "math"

// Mapper is the affine transform from physical units to render space.
// With YDown false physical Y grows upward and is flipped; scenes that
// already measure downward (a box resting on a floor) set YDown.
type Mapper struct {
	Origin Point
	Scale  float64
	YDown  bool
}

func (m Mapper) ToRender(v Vec) Point {
	if m.YDown {
		return Point{X: m.Origin.X + v.X*m.Scale, Y: m.Origin.Y + v.Y*m.Scale}
	}
	return Point{X: m.Origin.X + v.X*m.Scale, Y: m.Origin.Y - v.Y*m.Scale}
}

// Length converts a physical distance to pixels.
func (m Mapper) Length(d float64) float64 { return d * m.Scale }

// FitScale picks the largest pixels-per-unit that fits extent into the
// available area, capped at max (max <= 0 means uncapped).
// Zero extents are ignored; if both are zero the cap (or 1) is returned.
func FitScale(extentX, extentY, availW, availH, max float64) float64 {
	s := math.Inf(1)
	if extentX > 0 {
		s = math.Min(s, availW/extentX)
	}
	if extentY > 0 {
		s = math.Min(s, availH/extentY)
	}
	if max > 0 {
		s = math.Min(s, max)
	}
	if math.IsInf(s, 1) || s <= 0 {
		return 1
	}
	return s
}
