package physics

import "github.com/san-kum/physlab/internal/geom"

// Vectors adds two planar vectors tip to tail.
type Vectors struct {
	A, B geom.Vec
}

type VectorState struct {
	A, B, R   geom.Vec
	Magnitude float64
	AngleDeg  float64
}

func (s VectorState) Values() []float64 {
	return []float64{s.A.X, s.A.Y, s.B.X, s.B.Y, s.R.X, s.R.Y, s.Magnitude, s.AngleDeg}
}

func (v Vectors) Name() string { return "vectors" }

func (v Vectors) Defined() bool { return v.A.IsFinite() && v.B.IsFinite() }

func (v Vectors) Resultant() geom.Vec { return v.A.Add(v.B) }

func (v Vectors) Evaluate() State {
	r := v.Resultant()
	return VectorState{A: v.A, B: v.B, R: r, Magnitude: r.Len(), AngleDeg: r.AngleDeg()}
}

func (v Vectors) Derive() Quantities {
	r := v.Resultant()
	return Quantities{
		quantity("rx", "Resultant x", "", r.X),
		quantity("ry", "Resultant y", "", r.Y),
		quantity("magnitude", "Magnitude", "", r.Len()),
		quantity("angle", "Direction", "°", r.AngleDeg()),
	}
}
