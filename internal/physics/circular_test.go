package physics

import (
	"math"
	"testing"
)

func TestCircularScenario(t *testing.T) {
	c := Circular{Mass: 2, Speed: 5, Radius: 1}
	q := c.Derive()

	if f, _ := q.Get("centripetal_force"); math.Abs(f-50) > 1e-9 {
		t.Errorf("expected 50 N, got %f", f)
	}
	if T, _ := q.Get("period"); math.Abs(T-1.2566) > 1e-4 {
		t.Errorf("expected period 1.2566 s, got %f", T)
	}
	if w, _ := q.Get("angular_velocity"); w != 5 {
		t.Errorf("expected ω = 5, got %f", w)
	}
}

func TestCircularStaysOnCircle(t *testing.T) {
	c := Circular{Mass: 1, Speed: 3, Radius: 1.5}
	for _, tm := range []float64{0, 0.3, 1, 10, 1000} {
		s := c.Evaluate(tm).(CircularState)
		if math.Abs(s.Pos.Len()-1.5) > 1e-9 {
			t.Errorf("t=%v: radius drifted to %f", tm, s.Pos.Len())
		}
		if math.Abs(s.Vel.Dot(s.Pos)) > 1e-9 {
			t.Errorf("t=%v: velocity not tangent", tm)
		}
	}
}

func TestCircularRebaseKeepsPosition(t *testing.T) {
	prev := Circular{Mass: 2, Speed: 5, Radius: 1}
	next := Circular{Mass: 2, Speed: 12, Radius: 1.8}.Rebase(prev, 3.3)

	a := prev.Evaluate(3.3).(CircularState)
	b := next.Evaluate(3.3).(CircularState)
	if math.Abs(a.Pos.AngleDeg()-b.Pos.AngleDeg()) > 1e-6 {
		t.Errorf("rebase should keep the angle: %f vs %f", a.Pos.AngleDeg(), b.Pos.AngleDeg())
	}
}

func TestCircularZeroRadius(t *testing.T) {
	c := Circular{Mass: 2, Speed: 5, Radius: 0}
	if c.Defined() {
		t.Fatal("zero radius should be undefined")
	}
	s := c.Evaluate(1).(CircularState)
	if !s.Undefined {
		t.Error("state should be flagged undefined")
	}
	for _, v := range s.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("undefined state leaked %v", v)
		}
	}
}
