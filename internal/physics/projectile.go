package physics

import (
	"math"

	"github.com/san-kum/physlab/internal/geom"
)

type Projectile struct {
	Speed    float64 // m/s
	AngleDeg float64 // above horizontal
	Gravity  float64 // m/s²
	Height   float64 // launch height, m
}

type ProjectileState struct {
	Time   float64
	Pos    geom.Vec
	Vel    geom.Vec
	Acc    geom.Vec
	Landed bool
}

func (s ProjectileState) Values() []float64 {
	return []float64{s.Time, s.Pos.X, s.Pos.Y, s.Vel.X, s.Vel.Y}
}

func (p Projectile) Name() string { return "projectile" }

func (p Projectile) Defined() bool {
	return p.Gravity > 0 && p.Speed >= 0 && p.Height >= 0 && finite(p.Speed+p.AngleDeg+p.Height)
}

func (p Projectile) Components() (vx, vy float64) {
	rad := geom.Radians(p.AngleDeg)
	return p.Speed * math.Cos(rad), p.Speed * math.Sin(rad)
}

// FlightTime solves h + vy t - g t²/2 = 0 for the positive root.
func (p Projectile) FlightTime() float64 {
	if !p.Defined() {
		return 0
	}
	_, vy := p.Components()
	return (vy + math.Sqrt(vy*vy+2*p.Gravity*p.Height)) / p.Gravity
}

func (p Projectile) Range() float64 {
	vx, _ := p.Components()
	return vx * p.FlightTime()
}

func (p Projectile) MaxHeight() float64 {
	if !p.Defined() {
		return 0
	}
	_, vy := p.Components()
	if vy <= 0 {
		return p.Height
	}
	return p.Height + vy*vy/(2*p.Gravity)
}

func (p Projectile) Terminal() (float64, bool) { return p.FlightTime(), true }

func (p Projectile) Labels() []string { return []string{"t", "x", "y", "vx", "vy"} }

func (p Projectile) Evaluate(t float64) State {
	if !p.Defined() {
		return ProjectileState{Landed: true}
	}
	vx, vy := p.Components()
	T := p.FlightTime()
	t = math.Min(nonNegative(t), T)
	acc := geom.V(0, -p.Gravity)
	if t >= T {
		return ProjectileState{
			Time:   T,
			Pos:    geom.V(vx*T, 0),
			Vel:    geom.V(vx, vy-p.Gravity*T),
			Acc:    acc,
			Landed: true,
		}
	}
	return ProjectileState{
		Time: t,
		Pos:  geom.V(vx*t, p.Height+vy*t-0.5*p.Gravity*t*t),
		Vel:  geom.V(vx, vy-p.Gravity*t),
		Acc:  acc,
	}
}

// Path samples the trajectory every dt seconds, always ending on the landing
// point.
func (p Projectile) Path(dt float64) []geom.Vec {
	T := p.FlightTime()
	if dt <= 0 || T <= 0 {
		return []geom.Vec{geom.V(0, p.Height)}
	}
	n := int(math.Ceil(T / dt))
	pts := make([]geom.Vec, 0, n+1)
	for i := 0; i < n; i++ {
		pts = append(pts, p.Evaluate(float64(i)*dt).(ProjectileState).Pos)
	}
	return append(pts, p.Evaluate(T).(ProjectileState).Pos)
}

func (p Projectile) Derive() Quantities {
	if !p.Defined() {
		return Quantities{
			undefined("time_of_flight", "Time of flight", "s"),
			undefined("range", "Range", "m"),
			undefined("max_height", "Max height", "m"),
		}
	}
	vx, vy := p.Components()
	return Quantities{
		quantity("time_of_flight", "Time of flight", "s", p.FlightTime()),
		quantity("range", "Range", "m", p.Range()),
		quantity("max_height", "Max height", "m", p.MaxHeight()),
		quantity("vx", "Horizontal velocity", "m/s", vx),
		quantity("vy0", "Initial vertical velocity", "m/s", vy),
	}
}
