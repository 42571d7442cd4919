package lab

import (
	"log/slog"

	"github.com/san-kum/physlab/internal/clock"
	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/viz"
)

type Lab struct {
	def     Definition
	store   *params.Store
	model   physics.Model
	clock   clock.State
	surface viz.Surface
	log     *slog.Logger
}

func New(def Definition, log *slog.Logger) *Lab {
	if log == nil {
		log = slog.Default()
	}
	l := &Lab{
		def:   def,
		store: params.NewStore(def.Params),
		log:   log.With("lab", def.Name),
	}
	l.model = def.Build(l.store.Values())
	l.clock = clock.Initial(l.Policy())
	l.store.OnChange(l.onChange)
	return l
}

func (l *Lab) onChange(name string, values params.Values) {
	prev := l.model
	next := l.def.Build(values)
	if l.def.Rebase != nil {
		next = l.def.Rebase(prev, next, l.clock.Time)
	}
	l.model = next

	switch {
	case l.def.ResetOnChange:
		l.clock = clock.Apply(l.clock, clock.Reset, l.Policy())
		l.log.Debug("clock reset by parameter change", "param", name, "value", values[name])
	default:
		if end, ok := l.terminal(); ok && l.clock.Time > end {
			l.clock.Time = end
			l.clock.Phase = clock.Terminal
		}
	}

	if l.Static() && l.surface != nil {
		l.Draw(l.surface)
	}
}

func (l *Lab) terminal() (float64, bool) {
	if d, ok := l.model.(physics.Dynamic); ok {
		return d.Terminal()
	}
	return 0, false
}

// Policy derives the clock policy from the definition and current model.
func (l *Lab) Policy() clock.Policy {
	p := clock.Policy{TimeScale: l.def.TimeScale, AutoStart: l.def.AutoStart}
	p.End, p.HasEnd = l.terminal()
	return p
}

func (l *Lab) Name() string { return l.def.Name }

func (l *Lab) Definition() Definition { return l.def }

func (l *Lab) Params() *params.Store { return l.store }

func (l *Lab) Model() physics.Model { return l.model }

func (l *Lab) Derived() physics.Quantities { return l.model.Derive() }

// Static reports whether the lab has no time dependence.
func (l *Lab) Static() bool {
	_, ok := l.model.(physics.Dynamic)
	return !ok
}

func (l *Lab) Set(name string, v float64) (float64, error) { return l.store.Set(name, v) }

func (l *Lab) Nudge(name string, steps int) (float64, error) { return l.store.Nudge(name, steps) }

func (l *Lab) Apply(values params.Values) error { return l.store.Apply(values) }

// Reset restores default parameters and the initial clock.
func (l *Lab) Reset() {
	l.store.Reset()
	l.clock = clock.Initial(l.Policy())
}

func (l *Lab) Command(c clock.Command) clock.State {
	if l.Static() {
		return l.clock
	}
	l.clock = clock.Apply(l.clock, c, l.Policy())
	return l.clock
}

// Advance ticks the clock by elapsed wall-clock seconds.
func (l *Lab) Advance(elapsed float64) clock.State {
	if l.Static() {
		return l.clock
	}
	l.clock = clock.Tick(l.clock, elapsed, l.Policy())
	return l.clock
}

func (l *Lab) Clock() clock.State { return l.clock }

// Frame evaluates the model at the current simulated time.
func (l *Lab) Frame() render.Frame {
	f := render.Frame{Model: l.model, Derived: l.model.Derive(), Time: l.clock.Time}
	switch m := l.model.(type) {
	case physics.Dynamic:
		f.State = m.Evaluate(l.clock.Time)
	case physics.Static:
		f.State = m.Evaluate()
	}
	return f
}

func (l *Lab) Draw(s viz.Surface) {
	render.Draw(s, l.def.Renderer, l.Frame())
}

// Attach keeps s as the lab's surface and draws on it. Static labs redraw on
// every parameter change; dynamic labs are redrawn by the host loop.
func (l *Lab) Attach(s viz.Surface) {
	l.surface = s
	if s != nil {
		l.Draw(s)
	}
}

func (l *Lab) Detach() { l.surface = nil }
