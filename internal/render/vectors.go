package render

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/viz"
)

const vectorGrid = 50.0

type Vectors struct{}

func (Vectors) Render(s viz.Surface, f Frame) {
	v, ok := f.Model.(physics.Vectors)
	if !ok {
		mismatch(s, f, "vectors")
		return
	}
	st, _ := f.State.(physics.VectorState)

	w, h := s.Size()
	origin := geom.P(w/2, h/2)
	scale := geom.FitScale(2*160, 2*160, w, h, 1)
	m := geom.Mapper{Origin: origin, Scale: scale}

	grid(s, origin, vectorGrid*scale, GridLine)
	viz.Line(s, geom.P(0, origin.Y), geom.P(w, origin.Y), Axis, 1.5)
	viz.Line(s, geom.P(origin.X, 0), geom.P(origin.X, h), Axis, 1.5)
	viz.Label(s, geom.P(w-16, origin.Y-6), "x", Muted, smallText)
	viz.Label(s, geom.P(origin.X+6, 14), "y", Muted, smallText)

	tipA := m.ToRender(v.A)
	tipR := m.ToRender(st.R)
	viz.DashedLine(s, origin, m.ToRender(v.B), viz.WithAlpha(Green, 0.35), 1.5, 4, 4)

	Arrow(s, origin, tipA, Blue, 2.5)
	Arrow(s, tipA, tipR, Green, 2.5)
	Arrow(s, origin, tipR, Red, 3)

	if st.Magnitude > 0 {
		r := math.Min(30, m.Length(st.Magnitude)/2)
		s.SetStroke(Amber, 1.5)
		s.MoveTo(geom.P(origin.X+r, origin.Y))
		s.Arc(origin, r, 0, -st.AngleDeg*math.Pi/180)
		s.Stroke()
	}

	mid := func(a, b geom.Point) geom.Point { return geom.P((a.X+b.X)/2+6, (a.Y+b.Y)/2-6) }
	viz.Label(s, mid(origin, tipA), "A", Blue, textSize)
	viz.Label(s, mid(tipA, tipR), "B", Green, textSize)
	viz.Label(s, tipR.Offset(8, -8), "R", Red, textSize)

	viz.Label(s, geom.P(12, h-46), fmt.Sprintf("A = (%.0f, %.0f)  B = (%.0f, %.0f)", v.A.X, v.A.Y, v.B.X, v.B.Y), Muted, smallText)
	viz.Label(s, geom.P(12, h-26), fmt.Sprintf("R = (%.0f, %.0f)  |R| = %.1f  θ = %.1f°", st.R.X, st.R.Y, st.Magnitude, st.AngleDeg), Text, textSize)
}
