package render

import (
	"image/color"
	"math"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/viz"
)

const (
	HeadLength = 10.0
	HeadAngle  = math.Pi / 6
)

// LengthFunc maps a physical magnitude to an arrow length in pixels. Every
// implementation is monotonic non-decreasing in |magnitude|.
type LengthFunc func(magnitude float64) float64

// Linear scales proportionally; max <= 0 leaves it unclamped.
func Linear(scale, max float64) LengthFunc {
	return func(m float64) float64 {
		return clampLen(math.Abs(m)*scale, max)
	}
}

// Sqrt compresses large magnitudes.
func Sqrt(scale, max float64) LengthFunc {
	return func(m float64) float64 {
		return clampLen(math.Sqrt(math.Abs(m))*scale, max)
	}
}

func clampLen(l, max float64) float64 {
	if math.IsNaN(l) {
		return 0
	}
	if max > 0 && l > max {
		return max
	}
	return l
}

// ArrowHead returns the two barb endpoints for an arrow ending at tip and
// travelling from from.
func ArrowHead(from, tip geom.Point) (geom.Point, geom.Point) {
	theta := math.Atan2(tip.Y-from.Y, tip.X-from.X)
	a := geom.P(tip.X-HeadLength*math.Cos(theta-HeadAngle), tip.Y-HeadLength*math.Sin(theta-HeadAngle))
	b := geom.P(tip.X-HeadLength*math.Cos(theta+HeadAngle), tip.Y-HeadLength*math.Sin(theta+HeadAngle))
	return a, b
}

// Arrow strokes a shaft and a two-stroke head. Zero-length arrows are skipped.
func Arrow(s viz.Surface, from, to geom.Point, c color.RGBA, width float64) {
	if from.Dist(to) < 1e-9 {
		return
	}
	a, b := ArrowHead(from, to)
	s.SetStroke(c, width)
	s.MoveTo(from)
	s.LineTo(to)
	s.MoveTo(a)
	s.LineTo(to)
	s.LineTo(b)
	s.Stroke()
}

// Vector draws an arrow from a render point along a physical direction
// (Y up), sized by lf, with an optional label past the tip. It returns the
// tip.
func Vector(s viz.Surface, from geom.Point, dir geom.Vec, magnitude float64, lf LengthFunc, c color.RGBA, label string) geom.Point {
	u := dir.Unit()
	l := lf(magnitude)
	tip := geom.P(from.X+u.X*l, from.Y-u.Y*l)
	if l < 1 {
		return tip
	}
	Arrow(s, from, tip, c, 2.5)
	if label != "" {
		viz.Label(s, geom.P(tip.X+u.X*8+4, tip.Y-u.Y*8+4), label, c, textSize)
	}
	return tip
}
