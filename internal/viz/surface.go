package viz

import (
	"image/color"

	"github.com/san-kum/physlab/internal/geom"
)

// Surface is a path-based 2D drawing target. Coordinates are render-space
// points with Y growing downward; Size reports the logical extent.
type Surface interface {
	Size() (w, h float64)
	Clear(bg color.RGBA)

	SetStroke(c color.RGBA, width float64)
	SetFill(c color.RGBA)
	// SetDash sets an on/off dash pattern for strokes. Zero disables it.
	SetDash(on, off float64)

	MoveTo(p geom.Point)
	LineTo(p geom.Point)
	// Arc continues the current path along a circle, angles in radians.
	Arc(c geom.Point, r, a0, a1 float64)
	ClosePath()

	// Stroke and Fill consume the current path.
	Stroke()
	Fill()

	Text(p geom.Point, s string, size float64)
}

// Subpath is one continuous run of a path.
type Subpath struct {
	Points []geom.Point
	Closed bool
}

// Path accumulates MoveTo/LineTo/Arc calls. Surfaces embed it and drain it in
// Stroke and Fill.
type Path struct {
	subs []Subpath
}

func (p *Path) MoveTo(pt geom.Point) {
	p.subs = append(p.subs, Subpath{Points: []geom.Point{pt}})
}

func (p *Path) LineTo(pt geom.Point) {
	if len(p.subs) == 0 {
		p.MoveTo(pt)
		return
	}
	last := &p.subs[len(p.subs)-1]
	last.Points = append(last.Points, pt)
}

func (p *Path) Arc(c geom.Point, r, a0, a1 float64) {
	for i, pt := range geom.ArcPoints(c, r, a0, a1) {
		if i == 0 && len(p.subs) == 0 {
			p.MoveTo(pt)
			continue
		}
		p.LineTo(pt)
	}
}

func (p *Path) ClosePath() {
	if len(p.subs) == 0 {
		return
	}
	p.subs[len(p.subs)-1].Closed = true
}

// Take returns the accumulated subpaths and starts a new path.
func (p *Path) Take() []Subpath {
	subs := p.subs
	p.subs = nil
	return subs
}

// Segments flattens a subpath into consecutive point pairs.
func (s Subpath) Segments() [][2]geom.Point {
	if len(s.Points) < 2 {
		return nil
	}
	segs := make([][2]geom.Point, 0, len(s.Points))
	for i := 1; i < len(s.Points); i++ {
		segs = append(segs, [2]geom.Point{s.Points[i-1], s.Points[i]})
	}
	if s.Closed {
		segs = append(segs, [2]geom.Point{s.Points[len(s.Points)-1], s.Points[0]})
	}
	return segs
}
