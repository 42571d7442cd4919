package params

import (
	"errors"
	"math"
	"testing"
)

func testSpecs() []Spec {
	return []Spec{
		{Name: "mass", Label: "Mass", Unit: "kg", Min: 1, Max: 10, Step: 0.5, Default: 2},
		{Name: "angle", Label: "Angle", Unit: "°", Min: 10, Max: 90, Step: 1, Default: 45},
		{Name: "surface", Label: "Surface", Min: 0, Max: 2, Step: 1, Default: 0, Choices: []string{"wood", "ice", "rubber"}},
	}
}

func TestClamp(t *testing.T) {
	sp := testSpecs()[0]
	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{100, 10},
		{2.2, 2},
		{2.3, 2.5},
		{math.NaN(), 2},
		{math.Inf(1), 10},
	}
	for _, tt := range tests {
		if got := sp.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestStoreSetClampsAndNotifies(t *testing.T) {
	s := NewStore(testSpecs())

	var calls []string
	s.OnChange(func(name string, v Values) {
		calls = append(calls, name)
		if v[name] != s.Get(name) {
			t.Errorf("listener saw stale value for %s", name)
		}
	})

	got, err := s.Set("angle", 120)
	if err != nil {
		t.Fatal(err)
	}
	if got != 90 {
		t.Errorf("expected clamp to 90, got %v", got)
	}
	if _, err := s.Set("angle", 90); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 {
		t.Errorf("expected one notification for one real change, got %d", len(calls))
	}
}

func TestStoreUnknown(t *testing.T) {
	s := NewStore(testSpecs())
	if _, err := s.Set("speed", 3); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if err := s.Apply(Values{"mass": 3, "nope": 1}); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if s.Get("mass") != 2 {
		t.Error("failed Apply should not change anything")
	}
}

func TestStoreNudgeAndReset(t *testing.T) {
	s := NewStore(testSpecs())
	if v, _ := s.Nudge("mass", 3); v != 3.5 {
		t.Errorf("expected 3.5, got %v", v)
	}
	if v, _ := s.Nudge("surface", 5); v != 2 {
		t.Errorf("expected clamp to last choice, got %v", v)
	}
	s.Reset()
	if s.Get("mass") != 2 || s.Get("surface") != 0 {
		t.Errorf("reset should restore defaults, got %v", s.Values())
	}
}

func TestChoice(t *testing.T) {
	sp := testSpecs()[2]
	if sp.Choice(1) != "ice" {
		t.Errorf("expected ice, got %q", sp.Choice(1))
	}
	if sp.Format(2) != "rubber" {
		t.Errorf("expected rubber, got %q", sp.Format(2))
	}
}
