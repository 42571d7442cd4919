// Package physics provides the closed-form kinematic models behind each lab.
//
// Every model is a plain value built from the current parameters. Derived
// quantities come from [Model.Derive] and are recomputed by rebuilding the
// value, never cached:
//
//   - [Projectile]: launch under uniform gravity, optional launch height
//   - [Circular]: uniform circular motion
//   - [SHM]: undamped mass on a spring
//   - [Friction]: block on a surface under an applied force
//   - [Vectors]: two-vector addition
//   - [Lens]: thin converging lens
//
// Time-varying models implement [Dynamic]; the rest implement [Static].
// Degenerate configurations are reported through [Model.Defined] and the
// state's own flag rather than through errors, and never produce NaN or Inf
// in a state.
//
//	p := physics.Projectile{Speed: 60, AngleDeg: 45, Gravity: physics.StandardGravity}
//	s := p.Evaluate(2.5).(physics.ProjectileState)
package physics
