package geom

import "math"

// Point is a position on a drawing surface, in pixels, Y growing downward.
type Point struct {
	X, Y float64
}

func P(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Offset(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Toward moves length pixels from p in the direction of q.
func (p Point) Toward(q Point, length float64) Point {
	dx, dy := q.X-p.X, q.Y-p.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return p
	}
	return Point{X: p.X + dx/d*length, Y: p.Y + dy/d*length}
}

func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// ArcPoints flattens a circular arc into a polyline. Angles are in radians,
// measured clockwise on screen because render-space Y points down.
func ArcPoints(c Point, r, a0, a1 float64) []Point {
	span := math.Abs(a1 - a0)
	n := int(math.Ceil(span / (math.Pi / 24)))
	if r > 60 {
		n *= 2
	}
	if n < 4 {
		n = 4
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		pts[i] = Point{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)}
	}
	return pts
}

// ClipSegment clips a-b to the rectangle [0,w]x[0,h] (Liang-Barsky).
// ok is false when the segment lies entirely outside.
func ClipSegment(a, b Point, w, h float64) (Point, Point, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := b.X-a.X, b.Y-a.Y
	edges := [4][2]float64{
		{-dx, a.X},
		{dx, w - a.X},
		{-dy, a.Y},
		{dy, h - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return a, b, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return Point{X: a.X + t0*dx, Y: a.Y + t0*dy}, Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// SignedArea is the shoelace area of a closed polygon. It is negative when
// the vertices run counter-clockwise on screen.
func SignedArea(pts []Point) float64 {
	a := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}
