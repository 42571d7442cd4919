package render

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/viz"
)

const (
	springCoils  = 12
	blockSize    = 40.0
	shmSceneHalf = 2.2
)

type SHM struct{}

func (SHM) Render(s viz.Surface, f Frame) {
	o, ok := f.Model.(physics.SHM)
	if !ok {
		mismatch(s, f, "shm")
		return
	}
	st, _ := f.State.(physics.SHMState)
	if !o.Defined() || st.Undefined {
		Banner(s, "No oscillation", "mass and spring constant must be positive")
		return
	}

	w, h := s.Size()
	wallX := 50.0
	eq := geom.P(w/2, h/2)
	scale := geom.FitScale(2*shmSceneHalf, 0, w-2*wallX, h, 100)
	m := geom.Mapper{Origin: eq, Scale: scale}

	viz.Line(s, geom.P(wallX, eq.Y-60), geom.P(wallX, eq.Y+60), Slate, 4)
	viz.Line(s, geom.P(wallX, eq.Y+blockSize/2), geom.P(w-wallX, eq.Y+blockSize/2), Axis, 2)
	viz.DashedLine(s, geom.P(eq.X, eq.Y-70), geom.P(eq.X, eq.Y+50), Muted, 1, 4, 4)
	for _, sign := range []float64{-1, 1} {
		x := m.ToRender(geom.V(sign*o.Amplitude, 0)).X
		viz.DashedLine(s, geom.P(x, eq.Y-50), geom.P(x, eq.Y+40), viz.WithAlpha(Purple, 0.6), 1, 2, 4)
	}
	viz.Label(s, geom.P(eq.X-4, eq.Y-76), "0", Muted, smallText)

	block := m.ToRender(geom.V(st.X, 0))
	spring(s, geom.P(wallX, eq.Y), geom.P(block.X-blockSize/2, eq.Y))
	viz.Rect(s, block.X-blockSize/2, block.Y-blockSize/2, blockSize, blockSize, Blue)
	viz.Label(s, block.Offset(-10, 5), fmt.Sprintf("%gkg", o.Mass), Text, smallText)

	top := block.Offset(0, -blockSize/2-10)
	if vpx := math.Abs(st.V) * scale; vpx > 1 {
		Vector(s, top, geom.V(st.V, 0), st.V, Linear(0.5*scale, 150), Green, "v")
	}
	bottom := block.Offset(0, blockSize/2+20)
	if apx := math.Abs(st.A) * scale; apx > 10 {
		Vector(s, bottom, geom.V(st.A, 0), st.A, Linear(0.1*scale, 150), Red, "a")
	}

	viz.Label(s, geom.P(w-190, 24), fmt.Sprintf("t = %.2f s", st.Time), Text, textSize)
	viz.Label(s, geom.P(w-190, 42), fmt.Sprintf("x = %+.2f m", st.X), Muted, smallText)
	viz.Label(s, geom.P(w-190, 60), fmt.Sprintf("KE %.1f J  PE %.1f J", st.Kinetic, st.Potential), Muted, smallText)
	annotate(s, f.Derived, 3)
}

// spring draws a zigzag between two points on the same horizontal line.
func spring(s viz.Surface, from, to geom.Point) {
	const amp = 10.0
	n := springCoils * 2
	lead := 10.0
	span := to.X - from.X - 2*lead
	s.SetStroke(Muted, 1.5)
	s.MoveTo(from)
	s.LineTo(from.Offset(lead, 0))
	for i := 1; i < n; i++ {
		y := amp
		if i%2 == 0 {
			y = -amp
		}
		s.LineTo(geom.P(from.X+lead+span*float64(i)/float64(n), from.Y+y))
	}
	s.LineTo(to.Offset(-lead, 0))
	s.LineTo(to)
	s.Stroke()
}
