package physics

import (
	"math"

	"github.com/san-kum/physlab/internal/geom"
)

const minRadius = 1e-9

// Circular is uniform circular motion with angle θ(t) = Phase + ωt.
type Circular struct {
	Mass   float64 // kg
	Speed  float64 // m/s
	Radius float64 // m
	Phase  float64 // rad at t = 0
}

type CircularState struct {
	Time      float64
	Angle     float64
	Pos       geom.Vec
	Vel       geom.Vec
	Acc       geom.Vec
	Undefined bool
}

func (s CircularState) Values() []float64 {
	return []float64{s.Time, s.Angle, s.Pos.X, s.Pos.Y, s.Vel.X, s.Vel.Y}
}

func (c Circular) Name() string { return "circular" }

func (c Circular) Defined() bool {
	return c.Radius > minRadius && c.Mass > 0 && c.Speed >= 0 && finite(c.Speed+c.Phase)
}

func (c Circular) Omega() float64 {
	if !c.Defined() {
		return 0
	}
	return c.Speed / c.Radius
}

func (c Circular) CentripetalForce() float64 { return c.Mass * c.Speed * c.Speed / c.Radius }

func (c Circular) CentripetalAccel() float64 { return c.Speed * c.Speed / c.Radius }

func (c Circular) Period() float64 { return 2 * math.Pi * c.Radius / c.Speed }

func (c Circular) Terminal() (float64, bool) { return 0, false }

func (c Circular) Labels() []string { return []string{"t", "theta", "x", "y", "vx", "vy"} }

func (c Circular) angle(t float64) float64 { return c.Phase + c.Omega()*t }

func (c Circular) Evaluate(t float64) State {
	t = nonNegative(t)
	if !c.Defined() {
		return CircularState{Time: t, Undefined: true}
	}
	th := c.angle(t)
	r, v := c.Radius, c.Speed
	radial := geom.Polar(1, th)
	return CircularState{
		Time:  t,
		Angle: math.Mod(th, 2*math.Pi),
		Pos:   radial.Scale(r),
		Vel:   geom.V(-radial.Y, radial.X).Scale(v),
		Acc:   radial.Scale(-v * v / r),
	}
}

// Rebase returns c with its phase chosen so that, at time t, the body sits
// where prev had it. Used when speed or radius change mid-run.
func (c Circular) Rebase(prev Circular, t float64) Circular {
	if !prev.Defined() || !c.Defined() {
		return c
	}
	t = nonNegative(t)
	c.Phase = math.Mod(prev.angle(t)-c.Omega()*t, 2*math.Pi)
	return c
}

func (c Circular) Derive() Quantities {
	if !c.Defined() {
		return Quantities{
			undefined("centripetal_force", "Centripetal force", "N"),
			undefined("centripetal_accel", "Centripetal acceleration", "m/s²"),
			undefined("angular_velocity", "Angular velocity", "rad/s"),
			undefined("period", "Period", "s"),
			undefined("frequency", "Frequency", "Hz"),
		}
	}
	qs := Quantities{
		quantity("centripetal_force", "Centripetal force", "N", c.CentripetalForce()),
		quantity("centripetal_accel", "Centripetal acceleration", "m/s²", c.CentripetalAccel()),
		quantity("angular_velocity", "Angular velocity", "rad/s", c.Omega()),
	}
	if c.Speed == 0 {
		return append(qs,
			undefined("period", "Period", "s"),
			quantity("frequency", "Frequency", "Hz", 0))
	}
	return append(qs,
		quantity("period", "Period", "s", c.Period()),
		quantity("frequency", "Frequency", "Hz", 1/c.Period()))
}
