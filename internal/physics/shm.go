package physics

import "math"

// SHM is an undamped mass on a spring released from rest at +Amplitude.
type SHM struct {
	Mass           float64 // kg
	SpringConstant float64 // N/m
	Amplitude      float64 // m
}

type SHMState struct {
	Time      float64
	X         float64
	V         float64
	A         float64
	Kinetic   float64
	Potential float64
	Undefined bool
}

func (s SHMState) Values() []float64 {
	return []float64{s.Time, s.X, s.V, s.A, s.Kinetic, s.Potential}
}

func (s SHM) Name() string { return "shm" }

func (s SHM) Defined() bool {
	return s.Mass > 0 && s.SpringConstant > 0 && finite(s.Amplitude)
}

func (s SHM) Omega() float64 {
	if !s.Defined() {
		return 0
	}
	return math.Sqrt(s.SpringConstant / s.Mass)
}

func (s SHM) Period() float64 { return 2 * math.Pi / s.Omega() }

func (s SHM) Energy() float64 { return 0.5 * s.SpringConstant * s.Amplitude * s.Amplitude }

func (s SHM) Terminal() (float64, bool) { return 0, false }

func (s SHM) Labels() []string { return []string{"t", "x", "v", "a", "ke", "pe"} }

func (s SHM) Evaluate(t float64) State {
	t = nonNegative(t)
	if !s.Defined() {
		return SHMState{Time: t, Undefined: true}
	}
	w := s.Omega()
	x := s.Amplitude * math.Cos(w*t)
	v := -s.Amplitude * w * math.Sin(w*t)
	return SHMState{
		Time:      t,
		X:         x,
		V:         v,
		A:         -w * w * x,
		Kinetic:   0.5 * s.Mass * v * v,
		Potential: 0.5 * s.SpringConstant * x * x,
	}
}

func (s SHM) Derive() Quantities {
	if !s.Defined() {
		return Quantities{
			undefined("angular_frequency", "Angular frequency", "rad/s"),
			undefined("period", "Period", "s"),
			undefined("frequency", "Frequency", "Hz"),
		}
	}
	w := s.Omega()
	return Quantities{
		quantity("angular_frequency", "Angular frequency", "rad/s", w),
		quantity("period", "Period", "s", s.Period()),
		quantity("frequency", "Frequency", "Hz", 1/s.Period()),
		quantity("max_speed", "Max speed", "m/s", s.Amplitude*w),
		quantity("max_accel", "Max acceleration", "m/s²", s.Amplitude*w*w),
		quantity("energy", "Total energy", "J", s.Energy()),
	}
}
