package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/viz"
)

type Friction struct{}

func (Friction) Render(s viz.Surface, f Frame) {
	fr, ok := f.Model.(physics.Friction)
	if !ok {
		mismatch(s, f, "friction")
		return
	}
	st, _ := f.State.(physics.FrictionState)
	if st.Undefined {
		Banner(s, "No contact force", "mass and gravity must be positive")
		return
	}

	w, h := s.Size()
	floorY := h * 0.65
	// scene units are pixels measured downward from the floor
	m := geom.Mapper{Origin: geom.P(w/2, floorY), Scale: 1, YDown: true}

	floor := floorColor(fr.Surface.Name)
	viz.Rect(s, 0, floorY, w, h-floorY, viz.WithAlpha(floor, 0.35))
	viz.Line(s, geom.P(0, floorY), geom.P(w, floorY), floor, 3)
	for x := 0.0; x < w; x += 24 {
		viz.Line(s, geom.P(x, floorY+4), geom.P(x+12, floorY+16), viz.WithAlpha(floor, 0.6), 1)
	}

	side := 50 + fr.Mass
	center := m.ToRender(geom.V(0, -side/2))
	viz.Rect(s, center.X-side/2, center.Y-side/2, side, side, Blue)
	viz.Label(s, center.Offset(-14, 5), fmt.Sprintf("%gkg", fr.Mass), Text, smallText)

	vertical := Linear(0.5, 100)
	horizontal := Linear(0.8, 200)
	Vector(s, center, geom.V(0, -1), st.Weight, vertical, Purple, "W = mg")
	Vector(s, center.Offset(0, -side/2), geom.V(0, 1), st.Normal, vertical, Green, "N")
	Vector(s, center.Offset(side/2, 0), geom.V(1, 0), st.Applied, horizontal, Amber, "F_app")
	fl := "f_s"
	if st.Regime == physics.Moving {
		fl = "f_k"
	}
	Vector(s, m.ToRender(geom.V(-side/2, -4)), geom.V(-1, 0), st.Friction, horizontal, Red, fl)

	status := "Stationary"
	col := Amber
	if st.Regime == physics.Moving {
		status = fmt.Sprintf("Moving, a = %.2f m/s²", st.Accel)
		col = Green
		for i := 1; i <= 3; i++ {
			x := center.X - side/2 - float64(i)*14
			viz.Line(s, geom.P(x, center.Y-side/4), geom.P(x-8, center.Y-side/4), viz.WithAlpha(Muted, 1-0.25*float64(i)), 1)
		}
	}
	viz.Label(s, geom.P(w/2-float64(len(status))*3.5, h-30), status, col, textSize)
	viz.Label(s, geom.P(w-200, 24),
		fmt.Sprintf("%s  μs %.2f  μk %.2f", fr.Surface.Name, fr.Surface.Static, fr.Surface.Kinetic), Muted, smallText)
	viz.Label(s, geom.P(w-200, 42),
		fmt.Sprintf("max static %.1f N", math.Round(st.MaxStatic*10)/10), Muted, smallText)
	annotate(s, f.Derived, 5)
}

func floorColor(name string) color.RGBA {
	switch name {
	case "ice":
		return Cyan
	case "rubber":
		return Slate
	default:
		return Amber
	}
}
