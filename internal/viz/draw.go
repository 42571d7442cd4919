package viz

import (
	"image/color"
	"math"

	"github.com/san-kum/physlab/internal/geom"
)

// Small helpers over Surface used by every renderer.

func Line(s Surface, a, b geom.Point, c color.RGBA, width float64) {
	s.SetStroke(c, width)
	s.MoveTo(a)
	s.LineTo(b)
	s.Stroke()
}

func DashedLine(s Surface, a, b geom.Point, c color.RGBA, width, on, off float64) {
	s.SetDash(on, off)
	Line(s, a, b, c, width)
	s.SetDash(0, 0)
}

func Polyline(s Surface, pts []geom.Point, c color.RGBA, width float64) {
	if len(pts) < 2 {
		return
	}
	s.SetStroke(c, width)
	s.MoveTo(pts[0])
	for _, p := range pts[1:] {
		s.LineTo(p)
	}
	s.Stroke()
}

func Circle(s Surface, center geom.Point, r float64, fill color.RGBA) {
	s.SetFill(fill)
	s.MoveTo(geom.P(center.X+r, center.Y))
	s.Arc(center, r, 0, 2*math.Pi)
	s.ClosePath()
	s.Fill()
}

func CircleOutline(s Surface, center geom.Point, r float64, c color.RGBA, width float64) {
	s.SetStroke(c, width)
	s.MoveTo(geom.P(center.X+r, center.Y))
	s.Arc(center, r, 0, 2*math.Pi)
	s.ClosePath()
	s.Stroke()
}

func Rect(s Surface, x, y, w, h float64, fill color.RGBA) {
	s.SetFill(fill)
	s.MoveTo(geom.P(x, y))
	s.LineTo(geom.P(x+w, y))
	s.LineTo(geom.P(x+w, y+h))
	s.LineTo(geom.P(x, y+h))
	s.ClosePath()
	s.Fill()
}

func Label(s Surface, p geom.Point, text string, c color.RGBA, size float64) {
	s.SetFill(c)
	s.Text(p, text, size)
}

// Dashes splits a-b into the visible pieces of an on/off dash pattern.
// walked is the pattern distance already covered by earlier segments of the
// same path and is advanced by the segment length.
func Dashes(a, b geom.Point, on, off float64, walked *float64) [][2]geom.Point {
	length := a.Dist(b)
	if on <= 0 || off <= 0 {
		*walked += length
		return [][2]geom.Point{{a, b}}
	}
	period := on + off
	var out [][2]geom.Point
	pos := 0.0
	for pos < length {
		phase := math.Mod(*walked+pos, period)
		if phase < on {
			end := math.Min(length, pos+on-phase)
			out = append(out, [2]geom.Point{a.Toward(b, pos), a.Toward(b, end)})
			pos = end
		} else {
			pos += period - phase
		}
	}
	*walked += length
	return out
}
