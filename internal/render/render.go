// Package render draws a lab frame onto a viz.Surface.
//
// Each lab has one Renderer. Per frame it draws, in order, static reference
// geometry (grid, axes, paths, markers), the moving object, labelled force
// or velocity arrows, then text annotations. Undefined model states draw a
// banner instead of geometry.
package render

import (
	"fmt"
	"image/color"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/viz"
)

// Frame is everything a renderer may look at for one draw.
type Frame struct {
	Model   physics.Model
	State   physics.State
	Derived physics.Quantities
	Time    float64
}

type Renderer interface {
	Render(s viz.Surface, f Frame)
}

type RendererFunc func(s viz.Surface, f Frame)

func (fn RendererFunc) Render(s viz.Surface, f Frame) { fn(s, f) }

// Draw clears the surface and renders one frame.
func Draw(s viz.Surface, r Renderer, f Frame) {
	s.Clear(Background)
	r.Render(s, f)
}

const (
	textSize  = 14
	smallText = 12
)

// Banner replaces the scene when the model has no defined state.
func Banner(s viz.Surface, title, detail string) {
	w, h := s.Size()
	viz.Label(s, geom.P(w/2-float64(len(title))*4, h/2), title, Red, 20)
	if detail != "" {
		viz.Label(s, geom.P(w/2-float64(len(detail))*3.5, h/2+28), detail, Muted, textSize)
	}
}

func mismatch(s viz.Surface, f Frame, want string) {
	got := "nil"
	if f.Model != nil {
		got = f.Model.Name()
	}
	Banner(s, "Nothing to draw", fmt.Sprintf("expected %s model, got %s", want, got))
}

// annotate writes derived quantities down the top-left corner.
func annotate(s viz.Surface, qs physics.Quantities, max int) {
	y := 24.0
	for i, q := range qs {
		if i >= max {
			break
		}
		viz.Label(s, geom.P(12, y), q.String(), Text, smallText)
		y += 18
	}
}

func grid(s viz.Surface, origin geom.Point, spacing float64, c color.RGBA) {
	w, h := s.Size()
	if spacing < 4 {
		return
	}
	for x := origin.X; x <= w; x += spacing {
		viz.Line(s, geom.P(x, 0), geom.P(x, h), c, 1)
	}
	for x := origin.X - spacing; x >= 0; x -= spacing {
		viz.Line(s, geom.P(x, 0), geom.P(x, h), c, 1)
	}
	for y := origin.Y; y <= h; y += spacing {
		viz.Line(s, geom.P(0, y), geom.P(w, y), c, 1)
	}
	for y := origin.Y - spacing; y >= 0; y -= spacing {
		viz.Line(s, geom.P(0, y), geom.P(w, y), c, 1)
	}
}
