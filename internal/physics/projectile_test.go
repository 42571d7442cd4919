package physics

import (
	"math"
	"testing"
)

func TestProjectileScenario(t *testing.T) {
	p := Projectile{Speed: 60, AngleDeg: 45, Gravity: StandardGravity}
	q := p.Derive()

	checks := []struct {
		name string
		want float64
	}{
		{"time_of_flight", 8.659},
		{"range", 367.3},
		{"max_height", 91.8},
	}
	for _, c := range checks {
		got, ok := q.Get(c.name)
		if !ok {
			t.Fatalf("%s should be defined", c.name)
		}
		if math.Abs(got-c.want) > 0.1 {
			t.Errorf("%s: expected %.2f, got %.3f", c.name, c.want, got)
		}
	}
}

func TestProjectileComplementaryAngles(t *testing.T) {
	for _, a := range []float64{15, 30, 40} {
		lo := Projectile{Speed: 40, AngleDeg: a, Gravity: StandardGravity}
		hi := Projectile{Speed: 40, AngleDeg: 90 - a, Gravity: StandardGravity}
		if math.Abs(lo.Range()-hi.Range()) > 1e-9 {
			t.Errorf("angle %v: ranges differ %f vs %f", a, lo.Range(), hi.Range())
		}
	}
}

func TestProjectileTerminalState(t *testing.T) {
	p := Projectile{Speed: 60, AngleDeg: 45, Gravity: StandardGravity}
	T, ok := p.Terminal()
	if !ok {
		t.Fatal("projectile should report a terminal time")
	}

	s := p.Evaluate(T + 100).(ProjectileState)
	if !s.Landed || s.Time != T {
		t.Errorf("expected landed state at %f, got %+v", T, s)
	}
	if s.Pos.Y != 0 || s.Pos.X != p.Range() {
		t.Errorf("terminal position should be exactly (R, 0), got %v", s.Pos)
	}

	if s := p.Evaluate(-3).(ProjectileState); s.Time != 0 || s.Pos.X != 0 {
		t.Errorf("negative time should evaluate at 0, got %+v", s)
	}
}

func TestProjectileDeterministic(t *testing.T) {
	p := Projectile{Speed: 33, AngleDeg: 61, Gravity: StandardGravity}
	if p.Evaluate(1.7) != p.Evaluate(1.7) {
		t.Error("evaluation should be deterministic")
	}
}

func TestProjectileLaunchHeight(t *testing.T) {
	p := Projectile{Speed: 0, AngleDeg: 45, Gravity: 10, Height: 20}
	if got := p.FlightTime(); math.Abs(got-2) > 1e-12 {
		t.Errorf("drop from 20 m should take 2 s, got %f", got)
	}
	if p.MaxHeight() != 20 {
		t.Errorf("max height should equal launch height, got %f", p.MaxHeight())
	}
}

func TestProjectilePathEndsOnGround(t *testing.T) {
	p := Projectile{Speed: 60, AngleDeg: 45, Gravity: StandardGravity}
	path := p.Path(0.1)
	last := path[len(path)-1]
	if last.Y != 0 || last.X != p.Range() {
		t.Errorf("path should end at landing point, got %v", last)
	}
	for i, v := range path {
		if v.Y < -1e-9 {
			t.Errorf("point %d below ground: %v", i, v)
		}
	}
}

func TestProjectileUndefined(t *testing.T) {
	p := Projectile{Speed: 10, AngleDeg: 45, Gravity: 0}
	if p.Defined() {
		t.Fatal("zero gravity should be undefined")
	}
	for _, q := range p.Derive() {
		if q.Defined {
			t.Errorf("%s should be undefined", q.Name)
		}
	}
	for _, v := range p.Evaluate(2).Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("undefined state leaked %v", v)
		}
	}
}
