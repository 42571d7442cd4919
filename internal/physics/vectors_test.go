package physics

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/geom"
)

func TestVectorsCommutative(t *testing.T) {
	a, b := geom.V(150, 50), geom.V(50, 100)
	ab := Vectors{A: a, B: b}.Evaluate().(VectorState)
	ba := Vectors{A: b, B: a}.Evaluate().(VectorState)
	if ab.R != ba.R || ab.Magnitude != ba.Magnitude {
		t.Errorf("addition should commute: %v vs %v", ab.R, ba.R)
	}
}

func TestVectorsDefaults(t *testing.T) {
	s := Vectors{A: geom.V(150, 50), B: geom.V(50, 100)}.Evaluate().(VectorState)
	if s.R != geom.V(200, 150) {
		t.Errorf("expected (200,150), got %v", s.R)
	}
	if s.Magnitude != 250 {
		t.Errorf("expected magnitude 250, got %f", s.Magnitude)
	}
	want := math.Atan2(150, 200) * 180 / math.Pi
	if math.Abs(s.AngleDeg-want) > 1e-9 {
		t.Errorf("expected angle %f, got %f", want, s.AngleDeg)
	}
}

func TestVectorsAngleRange(t *testing.T) {
	s := Vectors{A: geom.V(-100, 0), B: geom.V(0, -30)}.Evaluate().(VectorState)
	if s.AngleDeg < 180 || s.AngleDeg >= 270 {
		t.Errorf("third quadrant angle expected, got %f", s.AngleDeg)
	}
	z := Vectors{}.Evaluate().(VectorState)
	if z.AngleDeg != 0 || z.Magnitude != 0 {
		t.Errorf("zero resultant should have angle 0, got %+v", z)
	}
}
