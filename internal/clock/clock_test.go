package clock

import "testing"

func TestParseCommand(t *testing.T) {
	for c := Launch; c <= Toggle; c++ {
		got, ok := ParseCommand(c.String())
		if !ok || got != c {
			t.Errorf("round trip failed for %v", c)
		}
	}
	if _, ok := ParseCommand("fly"); ok {
		t.Error("unknown command should not parse")
	}
}

func TestInitial(t *testing.T) {
	if Initial(Policy{}).Phase != Stopped {
		t.Error("default policy should start stopped")
	}
	if Initial(Policy{AutoStart: true}).Phase != Running {
		t.Error("auto-start policy should start running")
	}
}

func TestTickDefaultScale(t *testing.T) {
	s := Tick(State{Phase: Running}, 0.25, Policy{})
	if s.Time != 0.25 {
		t.Errorf("zero time scale should act as 1, got %f", s.Time)
	}
}
