package lab

import (
	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/render"
)

// Definition is everything needed to build one lab.
type Definition struct {
	Name    string
	Title   string
	Summary string
	Params  []params.Spec
	Build   func(params.Values) physics.Model
	// Rebase carries continuity from the previous model into a rebuilt one
	// at simulated time t. Optional.
	Rebase   func(prev, next physics.Model, t float64) physics.Model
	Renderer render.Renderer

	TimeScale     float64
	AutoStart     bool
	ResetOnChange bool
}

var projectileDef = Definition{
	Name:    "projectile",
	Title:   "Projectile Motion",
	Summary: "Launch a ball and watch range, height and time of flight respond to speed and angle.",
	Params: []params.Spec{
		{Name: "speed", Label: "Initial velocity", Unit: "m/s", Min: 10, Max: 100, Step: 1, Default: 60},
		{Name: "angle", Label: "Launch angle", Unit: "°", Min: 10, Max: 90, Step: 1, Default: 45},
		{Name: "height", Label: "Launch height", Unit: "m", Min: 0, Max: 50, Step: 1, Default: 0},
		{Name: "gravity", Label: "Gravity", Unit: "m/s²", Min: 1, Max: 25, Step: 0.1, Default: physics.StandardGravity},
	},
	Build: func(v params.Values) physics.Model {
		return physics.Projectile{Speed: v["speed"], AngleDeg: v["angle"], Height: v["height"], Gravity: v["gravity"]}
	},
	Renderer:      render.Projectile{},
	TimeScale:     4,
	ResetOnChange: true,
}

var circularDef = Definition{
	Name:    "circular",
	Title:   "Circular Motion",
	Summary: "A puck on a string: centripetal force grows with speed squared and shrinks with radius.",
	Params: []params.Spec{
		{Name: "mass", Label: "Mass", Unit: "kg", Min: 1, Max: 10, Step: 0.5, Default: 2},
		{Name: "speed", Label: "Speed", Unit: "m/s", Min: 1, Max: 20, Step: 0.5, Default: 5},
		{Name: "radius", Label: "Radius", Unit: "m", Min: 0.5, Max: 2, Step: 0.1, Default: 1},
	},
	Build: func(v params.Values) physics.Model {
		return physics.Circular{Mass: v["mass"], Speed: v["speed"], Radius: v["radius"]}
	},
	Rebase: func(prev, next physics.Model, t float64) physics.Model {
		p, ok1 := prev.(physics.Circular)
		n, ok2 := next.(physics.Circular)
		if !ok1 || !ok2 {
			return next
		}
		return n.Rebase(p, t)
	},
	Renderer:  render.Circular{},
	TimeScale: 1,
	AutoStart: true,
}

var shmDef = Definition{
	Name:    "shm",
	Title:   "Simple Harmonic Motion",
	Summary: "A block on a spring oscillates with period 2π√(m/k), independent of amplitude.",
	Params: []params.Spec{
		{Name: "mass", Label: "Mass", Unit: "kg", Min: 1, Max: 10, Step: 0.5, Default: 2},
		{Name: "k", Label: "Spring constant", Unit: "N/m", Min: 10, Max: 200, Step: 10, Default: 50},
		{Name: "amplitude", Label: "Amplitude", Unit: "m", Min: 0.5, Max: 2, Step: 0.1, Default: 1},
	},
	Build: func(v params.Values) physics.Model {
		return physics.SHM{Mass: v["mass"], SpringConstant: v["k"], Amplitude: v["amplitude"]}
	},
	Renderer:  render.SHM{},
	TimeScale: 1,
	AutoStart: true,
}

var frictionDef = Definition{
	Name:    "friction",
	Title:   "Friction",
	Summary: "Push a block: it stays put until the applied force beats maximum static friction.",
	Params: []params.Spec{
		{Name: "mass", Label: "Mass", Unit: "kg", Min: 1, Max: 50, Step: 1, Default: 10},
		{Name: "force", Label: "Applied force", Unit: "N", Min: 0, Max: 500, Step: 5, Default: 0},
		{Name: "surface", Label: "Surface", Min: 0, Max: float64(len(physics.Surfaces) - 1), Step: 1, Default: 0, Choices: surfaceNames()},
	},
	Build: func(v params.Values) physics.Model {
		return physics.Friction{
			Mass:         v["mass"],
			AppliedForce: v["force"],
			Gravity:      physics.StandardGravity,
			Surface:      physics.SurfaceAt(int(v["surface"])),
		}
	},
	Renderer: render.Friction{},
}

var vectorsDef = Definition{
	Name:    "vectors",
	Title:   "Vector Addition",
	Summary: "Add two vectors tip to tail and read off the resultant's magnitude and direction.",
	Params: []params.Spec{
		{Name: "ax", Label: "A x", Min: -150, Max: 150, Step: 5, Default: 150},
		{Name: "ay", Label: "A y", Min: -150, Max: 150, Step: 5, Default: 50},
		{Name: "bx", Label: "B x", Min: -150, Max: 150, Step: 5, Default: 50},
		{Name: "by", Label: "B y", Min: -150, Max: 150, Step: 5, Default: 100},
	},
	Build: func(v params.Values) physics.Model {
		return physics.Vectors{A: geom.V(v["ax"], v["ay"]), B: geom.V(v["bx"], v["by"])}
	},
	Renderer: render.Vectors{},
}

var opticsDef = Definition{
	Name:    "optics",
	Title:   "Ray Optics",
	Summary: "Move an object along the bench of a converging lens and watch the image change nature.",
	Params: []params.Spec{
		{Name: "focal", Label: "Focal length", Unit: "cm", Min: 50, Max: 150, Step: 1, Default: 100},
		{Name: "distance", Label: "Object distance", Unit: "cm", Min: 10, Max: 300, Step: 1, Default: 200},
		{Name: "height", Label: "Object height", Unit: "cm", Min: 20, Max: 100, Step: 1, Default: 60},
	},
	Build: func(v params.Values) physics.Model {
		return physics.Lens{FocalLength: v["focal"], ObjectDistance: v["distance"], ObjectHeight: v["height"]}
	},
	Renderer: render.Optics{},
}

func surfaceNames() []string {
	names := make([]string, len(physics.Surfaces))
	for i, s := range physics.Surfaces {
		names[i] = s.Name
	}
	return names
}

// Catalog lists the built-in labs in menu order.
func Catalog() []Definition {
	return []Definition{vectorsDef, projectileDef, frictionDef, circularDef, shmDef, opticsDef}
}
