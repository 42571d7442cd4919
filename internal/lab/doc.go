// Package lab binds a kinematic model, its parameter store, a clock and a
// renderer into one interactive lab, and hosts at most one mounted lab at a
// time.
//
// Control flow per frame is owned by the host:
//
//	host := lab.NewHost(lab.NewRegistry(), log)
//	l, gen, _ := host.Mount("projectile")
//	l.Command(clock.Launch)
//	for host.Frame(gen, dt) {
//	    l.Draw(surface)
//	}
//
// Parameter changes flow through the store's listener: the model value is
// rebuilt, static labs redraw immediately onto an attached surface, and labs
// whose trajectory depends on the changed inputs reset their clock.
//
// # Thread Safety
//
// A Lab is not safe for concurrent use; the host goroutine owns it. Host
// itself may be called from any goroutine.
package lab
