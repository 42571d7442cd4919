package render

import (
	"fmt"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/viz"
)

// largest radius the scene is laid out for, in metres
const circularSceneRadius = 2.5

type Circular struct{}

func (Circular) Render(s viz.Surface, f Frame) {
	c, ok := f.Model.(physics.Circular)
	if !ok {
		mismatch(s, f, "circular")
		return
	}
	st, _ := f.State.(physics.CircularState)
	if !c.Defined() || st.Undefined {
		Banner(s, "Radius too small", "circular motion needs r > 0")
		return
	}

	w, h := s.Size()
	center := geom.P(w/2, h/2)
	scale := geom.FitScale(2*circularSceneRadius, 2*circularSceneRadius, w, h, 100)
	m := geom.Mapper{Origin: center, Scale: scale}
	r := m.Length(c.Radius)

	s.SetDash(4, 6)
	viz.CircleOutline(s, center, r, Axis, 1.5)
	s.SetDash(0, 0)
	viz.Circle(s, center, 4, Muted)

	puck := m.ToRender(st.Pos)
	viz.Line(s, center, puck, Slate, 1.5)
	viz.Circle(s, puck, 6+c.Mass, Amber)

	Vector(s, puck, st.Vel, c.Speed, Linear(8, 0), Green, "v")
	Vector(s, puck, st.Acc, c.CentripetalForce(), Sqrt(10, 100), Red, "Fc")

	viz.Label(s, center.Offset(8, -8), fmt.Sprintf("r = %.1f m", c.Radius), Muted, smallText)
	viz.Label(s, geom.P(w-170, 24), fmt.Sprintf("t = %.2f s", st.Time), Text, textSize)
	annotate(s, f.Derived, 5)
}
