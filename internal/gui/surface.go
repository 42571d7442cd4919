package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/viz"
)

// Surface draws lab frames into a rectangle of the raylib window. Coordinates
// handed to it are relative to the rectangle's top-left corner.
type Surface struct {
	viz.Path
	X, Y, W, H float64

	stroke  color.RGBA
	width   float64
	fill    color.RGBA
	dashOn  float64
	dashOff float64
}

func NewSurface(x, y, w, h float64) *Surface {
	return &Surface{X: x, Y: y, W: w, H: h, stroke: rl.White, width: 1}
}

func (s *Surface) Size() (float64, float64) { return s.W, s.H }

func (s *Surface) Clear(bg color.RGBA) {
	rl.DrawRectangle(int32(s.X), int32(s.Y), int32(s.W), int32(s.H), bg)
}

func (s *Surface) SetStroke(c color.RGBA, width float64) {
	s.stroke = c
	s.width = width
	if s.width < 1 {
		s.width = 1
	}
}

func (s *Surface) SetFill(c color.RGBA) { s.fill = c }

func (s *Surface) SetDash(on, off float64) { s.dashOn, s.dashOff = on, off }

func (s *Surface) vec(p geom.Point) rl.Vector2 {
	return rl.NewVector2(float32(s.X+p.X), float32(s.Y+p.Y))
}

func (s *Surface) Stroke() {
	rl.BeginScissorMode(int32(s.X), int32(s.Y), int32(s.W), int32(s.H))
	defer rl.EndScissorMode()
	walked := 0.0
	for _, sub := range s.Take() {
		for _, seg := range sub.Segments() {
			for _, d := range viz.Dashes(seg[0], seg[1], s.dashOn, s.dashOff, &walked) {
				rl.DrawLineEx(s.vec(d[0]), s.vec(d[1]), float32(s.width), s.stroke)
			}
		}
	}
}

// Fill draws each closed subpath as a triangle fan. Every shape the labs
// fill (discs, arrowheads, blocks, lenses) is convex.
func (s *Surface) Fill() {
	rl.BeginScissorMode(int32(s.X), int32(s.Y), int32(s.W), int32(s.H))
	defer rl.EndScissorMode()
	for _, sub := range s.Take() {
		pts := sub.Points
		if len(pts) < 3 {
			continue
		}
		if geom.SignedArea(pts) > 0 {
			rev := make([]geom.Point, len(pts))
			for i, p := range pts {
				rev[len(pts)-1-i] = p
			}
			pts = rev
		}
		fan := make([]rl.Vector2, len(pts))
		for i, p := range pts {
			fan[i] = s.vec(p)
		}
		rl.DrawTriangleFan(fan, s.fill)
	}
}

func (s *Surface) Text(p geom.Point, text string, size float64) {
	if size <= 0 {
		size = 12
	}
	rl.DrawText(text, int32(s.X+p.X), int32(s.Y+p.Y-size), int32(size), s.fill)
}
