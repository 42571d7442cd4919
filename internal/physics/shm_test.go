package physics

import (
	"math"
	"testing"
)

func TestSHMBounded(t *testing.T) {
	s := SHM{Mass: 2, SpringConstant: 50, Amplitude: 1.2}
	for i := 0; i < 2000; i++ {
		st := s.Evaluate(float64(i) * 0.013).(SHMState)
		if math.Abs(st.X) > s.Amplitude+1e-12 {
			t.Fatalf("t=%f: |x| = %f exceeds amplitude", st.Time, math.Abs(st.X))
		}
		if e := st.Kinetic + st.Potential; math.Abs(e-s.Energy()) > 1e-9 {
			t.Fatalf("t=%f: energy %f, expected %f", st.Time, e, s.Energy())
		}
	}
}

func TestSHMVelocityExtremes(t *testing.T) {
	s := SHM{Mass: 2, SpringConstant: 50, Amplitude: 1}
	w := s.Omega()

	atEnd := s.Evaluate(0).(SHMState)
	if atEnd.V != 0 || atEnd.X != 1 {
		t.Errorf("expected rest at +A, got %+v", atEnd)
	}

	center := s.Evaluate(s.Period() / 4).(SHMState)
	if math.Abs(math.Abs(center.V)-w) > 1e-9 {
		t.Errorf("expected |v| = Aω = %f at center, got %f", w, center.V)
	}
	if math.Abs(center.X) > 1e-9 {
		t.Errorf("expected x = 0 at quarter period, got %f", center.X)
	}
}

func TestSHMPeriod(t *testing.T) {
	s := SHM{Mass: 2, SpringConstant: 50, Amplitude: 1}
	q := s.Derive()
	if T, _ := q.Get("period"); math.Abs(T-2*math.Pi/5) > 1e-12 {
		t.Errorf("expected 2π/5, got %f", T)
	}
}
