// Package clock is the simulation clock of a lab as pure functions over an
// explicit State. The host owns the state and calls Tick once per frame.
package clock

import "math"

type Phase int

const (
	Stopped Phase = iota
	Running
	Paused
	Terminal
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Terminal:
		return "finished"
	default:
		return "stopped"
	}
}

type State struct {
	Time  float64
	Phase Phase
}

// Policy describes how a lab's clock behaves.
type Policy struct {
	// TimeScale multiplies wall-clock seconds into simulated seconds.
	TimeScale float64
	// End is the terminal time; ignored unless HasEnd.
	End    float64
	HasEnd bool
	// AutoStart puts the clock straight into Running on mount and reset.
	AutoStart bool
}

func (p Policy) scale() float64 {
	if p.TimeScale <= 0 || math.IsNaN(p.TimeScale) {
		return 1
	}
	return p.TimeScale
}

// Initial is the state a freshly mounted lab starts in.
func Initial(p Policy) State {
	if p.AutoStart {
		return State{Phase: Running}
	}
	return State{Phase: Stopped}
}

// Tick advances simulated time by elapsed wall-clock seconds. Only a Running
// clock moves, time never decreases and never passes the terminal time.
func Tick(s State, elapsed float64, p Policy) State {
	if s.Phase != Running || !(elapsed > 0) || math.IsInf(elapsed, 0) {
		return s
	}
	s.Time += elapsed * p.scale()
	if p.HasEnd && s.Time >= p.End {
		s.Time = p.End
		s.Phase = Terminal
	}
	return s
}

type Command int

const (
	Launch Command = iota
	Pause
	Resume
	Restart
	Reset
	Toggle
)

func (c Command) String() string {
	switch c {
	case Launch:
		return "launch"
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	case Restart:
		return "restart"
	case Reset:
		return "reset"
	case Toggle:
		return "toggle"
	}
	return "unknown"
}

// ParseCommand accepts the names printed by Command.String.
func ParseCommand(name string) (Command, bool) {
	for c := Launch; c <= Toggle; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// Apply runs a user command. Commands that make no sense in the current phase
// leave the state unchanged.
func Apply(s State, c Command, p Policy) State {
	switch c {
	case Launch:
		if s.Phase == Stopped {
			return State{Phase: Running}
		}
	case Pause:
		if s.Phase == Running {
			s.Phase = Paused
		}
	case Resume:
		if s.Phase == Paused {
			s.Phase = Running
		}
	case Restart:
		return State{Phase: Running}
	case Reset:
		return Initial(p)
	case Toggle:
		switch s.Phase {
		case Stopped:
			return Apply(s, Launch, p)
		case Running:
			return Apply(s, Pause, p)
		case Paused:
			return Apply(s, Resume, p)
		case Terminal:
			return Apply(s, Restart, p)
		}
	}
	return s
}
