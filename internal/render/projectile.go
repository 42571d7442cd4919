package render

import (
	"fmt"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/viz"
)

const (
	ballRadius = 8.0
	pathStep   = 0.1
)

type Projectile struct{}

func (Projectile) Render(s viz.Surface, f Frame) {
	p, ok := f.Model.(physics.Projectile)
	if !ok {
		mismatch(s, f, "projectile")
		return
	}
	if !p.Defined() {
		Banner(s, "No trajectory", "gravity must be positive")
		return
	}
	st, _ := f.State.(physics.ProjectileState)

	w, h := s.Size()
	origin := geom.P(50, h-50)
	scale := geom.FitScale(p.Range()*1.2, p.MaxHeight()*2, w, h, 1.5)
	m := geom.Mapper{Origin: origin, Scale: scale}

	viz.Line(s, geom.P(0, origin.Y), geom.P(w, origin.Y), Axis, 2)
	viz.Line(s, geom.P(origin.X, origin.Y), geom.P(origin.X, 0), GridLine, 1)
	if p.Height > 0 {
		viz.Line(s, m.ToRender(geom.V(0, p.Height)), origin, Slate, 6)
	}

	path := p.Path(pathStep)
	pts := make([]geom.Point, len(path))
	for i, v := range path {
		pts[i] = m.ToRender(v)
	}
	s.SetDash(6, 6)
	viz.Polyline(s, pts, viz.WithAlpha(Muted, 0.6), 1.5)
	s.SetDash(0, 0)

	var trail []geom.Point
	for t := 0.0; t < st.Time; t += pathStep {
		trail = append(trail, m.ToRender(p.Evaluate(t).(physics.ProjectileState).Pos))
	}
	trail = append(trail, m.ToRender(st.Pos))
	viz.Polyline(s, trail, Blue, 2)

	apexT := 0.0
	if _, vy := p.Components(); vy > 0 {
		apexT = vy / p.Gravity
	}
	apex := m.ToRender(p.Evaluate(apexT).(physics.ProjectileState).Pos)
	viz.DashedLine(s, apex, geom.P(apex.X, origin.Y), Purple, 1, 3, 3)
	land := m.ToRender(geom.V(p.Range(), 0))
	viz.Line(s, land.Offset(0, -6), land.Offset(0, 6), Red, 2)

	ball := m.ToRender(st.Pos)
	viz.Circle(s, ball, ballRadius, Blue)
	if !st.Landed {
		Vector(s, ball, st.Vel, st.Vel.Len(), Linear(1.5, 90), Green, "v")
		Vector(s, ball, geom.V(st.Vel.X, 0), st.Vel.X, Linear(1.5, 90), viz.WithAlpha(Green, 0.5), "")
	}

	viz.Label(s, land.Offset(-30, 22), fmt.Sprintf("R = %.1f m", p.Range()), Red, smallText)
	viz.Label(s, apex.Offset(8, -12), fmt.Sprintf("H = %.1f m", p.MaxHeight()), Purple, smallText)
	viz.Label(s, geom.P(w-170, 24), fmt.Sprintf("t = %.2f s", st.Time), Text, textSize)
	viz.Label(s, geom.P(w-170, 42), fmt.Sprintf("x = %.1f m  y = %.1f m", st.Pos.X, st.Pos.Y), Muted, smallText)
	annotate(s, f.Derived, 3)
}
