package physics

type Surface struct {
	Name    string
	Static  float64 // μs
	Kinetic float64 // μk
}

var Surfaces = []Surface{
	{Name: "wood", Static: 0.5, Kinetic: 0.3},
	{Name: "ice", Static: 0.1, Kinetic: 0.05},
	{Name: "rubber", Static: 0.9, Kinetic: 0.7},
}

// SurfaceAt returns Surfaces[i], falling back to the first entry.
func SurfaceAt(i int) Surface {
	if i < 0 || i >= len(Surfaces) {
		return Surfaces[0]
	}
	return Surfaces[i]
}

type Regime int

const (
	Stationary Regime = iota
	Moving
)

func (r Regime) String() string {
	if r == Moving {
		return "moving"
	}
	return "stationary"
}

// Friction is a block on a horizontal surface pushed by AppliedForce.
type Friction struct {
	Mass         float64 // kg
	AppliedForce float64 // N
	Gravity      float64 // m/s²
	Surface      Surface
}

type FrictionState struct {
	Regime    Regime
	Weight    float64
	Normal    float64
	Applied   float64
	Friction  float64
	MaxStatic float64
	Kinetic   float64
	Net       float64
	Accel     float64
	Undefined bool
}

func (s FrictionState) Values() []float64 {
	return []float64{float64(s.Regime), s.Normal, s.Applied, s.Friction, s.Net, s.Accel}
}

func (f Friction) Name() string { return "friction" }

func (f Friction) Defined() bool {
	return f.Mass > 0 && f.Gravity > 0 && f.AppliedForce >= 0 && finite(f.AppliedForce)
}

func (f Friction) Evaluate() State {
	if !f.Defined() {
		return FrictionState{Undefined: true}
	}
	n := f.Mass * f.Gravity
	s := FrictionState{
		Weight:    n,
		Normal:    n,
		Applied:   f.AppliedForce,
		MaxStatic: f.Surface.Static * n,
		Kinetic:   f.Surface.Kinetic * n,
	}
	if f.AppliedForce <= s.MaxStatic {
		s.Regime = Stationary
		s.Friction = f.AppliedForce
		return s
	}
	s.Regime = Moving
	s.Friction = s.Kinetic
	s.Net = f.AppliedForce - s.Kinetic
	s.Accel = s.Net / f.Mass
	return s
}

func (f Friction) Derive() Quantities {
	s, _ := f.Evaluate().(FrictionState)
	if s.Undefined {
		return Quantities{
			undefined("normal", "Normal force", "N"),
			undefined("friction", "Friction", "N"),
			undefined("acceleration", "Acceleration", "m/s²"),
		}
	}
	return Quantities{
		quantity("weight", "Weight", "N", s.Weight),
		quantity("normal", "Normal force", "N", s.Normal),
		quantity("max_static", "Max static friction", "N", s.MaxStatic),
		quantity("kinetic", "Kinetic friction", "N", s.Kinetic),
		quantity("friction", "Friction", "N", s.Friction),
		quantity("net_force", "Net force", "N", s.Net),
		quantity("acceleration", "Acceleration", "m/s²", s.Accel),
		quantity("moving", "Moving", "", float64(s.Regime)),
	}
}
