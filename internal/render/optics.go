package render

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/viz"
)

// the bench is laid out for a 700x400 view with the lens in the middle
const (
	benchW = 700.0
	benchH = 400.0
)

type Optics struct{}

func (Optics) Render(s viz.Surface, f Frame) {
	l, ok := f.Model.(physics.Lens)
	if !ok {
		mismatch(s, f, "optics")
		return
	}
	st, _ := f.State.(physics.LensState)

	w, h := s.Size()
	scale := geom.FitScale(benchW, benchH, w, h, 0)
	m := geom.Mapper{Origin: geom.P(w/2, h/2), Scale: scale}
	half := w / 2 / scale
	fl, p, ho := l.FocalLength, l.ObjectDistance, l.ObjectHeight

	viz.Line(s, geom.P(0, h/2), geom.P(w, h/2), Axis, 1)
	lensTop, lensBottom := m.ToRender(geom.V(0, 150)), m.ToRender(geom.V(0, -150))
	Arrow(s, lensBottom, lensTop, Cyan, 2)
	Arrow(s, lensTop, lensBottom, Cyan, 2)
	for _, x := range []float64{-2 * fl, -fl, fl, 2 * fl} {
		pt := m.ToRender(geom.V(x, 0))
		viz.Circle(s, pt, 3, Muted)
		name := "F"
		if math.Abs(x) > fl {
			name = "2F"
		}
		viz.Label(s, pt.Offset(-6, 18), name, Muted, smallText)
	}

	objBase, objTip := m.ToRender(geom.V(-p, 0)), m.ToRender(geom.V(-p, ho))
	Arrow(s, objBase, objTip, Blue, 3)

	lensHit := geom.V(0, ho)
	// ray 1: parallel to the axis, then through the far focal point
	viz.Line(s, objTip, m.ToRender(lensHit), Amber, 1.5)
	viz.Line(s, m.ToRender(lensHit), m.ToRender(extend(lensHit, geom.V(fl, 0), half)), Amber, 1.5)
	// ray 2: straight through the optical centre
	viz.Line(s, objTip, m.ToRender(extend(geom.V(-p, ho), geom.V(0, 0), half)), Pink, 1.5)

	caption := st.Description()
	switch {
	case st.Undefined:
		viz.Label(s, geom.P(w/2-110, h-50), "Rays are parallel (Image at ∞)", Muted, smallText)
	case st.Nature == physics.RealImage:
		Arrow(s, m.ToRender(geom.V(st.ImageDistance, 0)), m.ToRender(geom.V(st.ImageDistance, st.ImageHeight)), Red, 3)
	default:
		img := geom.V(st.ImageDistance, st.ImageHeight)
		s.SetDash(5, 5)
		viz.Line(s, m.ToRender(lensHit), m.ToRender(img), viz.WithAlpha(Amber, 0.6), 1)
		viz.Line(s, m.ToRender(geom.V(0, 0)), m.ToRender(img), viz.WithAlpha(Pink, 0.6), 1)
		s.SetDash(0, 0)
		base := m.ToRender(geom.V(st.ImageDistance, 0))
		s.SetDash(4, 3)
		Arrow(s, base, m.ToRender(img), viz.WithAlpha(Red, 0.7), 2.5)
		s.SetDash(0, 0)
	}

	col := Green
	if st.Undefined {
		col = Red
	}
	viz.Label(s, geom.P(12, 24), caption, col, textSize+2)
	viz.Label(s, geom.P(12, 44), fmt.Sprintf("f = %.0f cm  p = %.0f cm  h = %.0f cm", fl, p, ho), Muted, smallText)
	if !st.Undefined {
		viz.Label(s, geom.P(12, 62), fmt.Sprintf("q = %.1f cm  M = %.2f  h' = %.1f cm", st.ImageDistance, st.Magnification, st.ImageHeight), Text, smallText)
	}
}

// extend returns the point where the ray from a through b reaches x = ±limit
// in the direction of travel.
func extend(a, b geom.Vec, limit float64) geom.Vec {
	d := b.Sub(a)
	if d.X == 0 {
		return b
	}
	x := limit
	if d.X < 0 {
		x = -limit
	}
	t := (x - a.X) / d.X
	return a.Add(d.Scale(t))
}
