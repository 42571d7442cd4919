// Package params holds the adjustable inputs of a lab. The store is the only
// place values are validated: every write is clamped to the declared range
// and snapped to the step before listeners see it.
package params

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

var (
	ErrUnknownParam = errors.New("params: unknown parameter")
)

// Spec declares one parameter. Choices, when set, name the values
// Min, Min+Step, ... and the parameter is an enumeration.
type Spec struct {
	Name    string
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Choices []string
}

// Clamp maps any input onto a legal value. NaN becomes the default.
func (s Spec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		v = s.Default
	}
	v = math.Max(s.Min, math.Min(s.Max, v))
	if s.Step > 0 {
		n := math.Round((v - s.Min) / s.Step)
		v = s.Min + n*s.Step
		if v > s.Max {
			v -= s.Step
		}
		// trim float noise from repeated step arithmetic
		v = math.Round(v/s.Step*1e6) / 1e6 * s.Step
		v = math.Max(s.Min, math.Min(s.Max, v))
	}
	return v
}

// Choice returns the label of an enumerated value, or "".
func (s Spec) Choice(v float64) string {
	if len(s.Choices) == 0 {
		return ""
	}
	step := s.Step
	if step <= 0 {
		step = 1
	}
	i := int(math.Round((s.Clamp(v) - s.Min) / step))
	if i < 0 || i >= len(s.Choices) {
		return ""
	}
	return s.Choices[i]
}

// Fraction is the position of v inside [Min, Max], in [0, 1].
func (s Spec) Fraction(v float64) float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Clamp(v) - s.Min) / (s.Max - s.Min)
}

func (s Spec) Format(v float64) string {
	if c := s.Choice(v); c != "" {
		return c
	}
	if s.Unit == "" {
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("%g %s", v, s.Unit)
}

type Values map[string]float64

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

func (v Values) Names() []string {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Listener is told the parameter that changed and the full value set after
// the change.
type Listener func(name string, values Values)

type Store struct {
	mu        sync.Mutex
	specs     []Spec
	index     map[string]int
	values    Values
	listeners []Listener
}

func NewStore(specs []Spec) *Store {
	s := &Store{
		specs:  append([]Spec(nil), specs...),
		index:  make(map[string]int, len(specs)),
		values: make(Values, len(specs)),
	}
	for i, sp := range s.specs {
		s.index[sp.Name] = i
		s.values[sp.Name] = sp.Clamp(sp.Default)
	}
	return s
}

func (s *Store) Specs() []Spec { return append([]Spec(nil), s.specs...) }

func (s *Store) Spec(name string) (Spec, bool) {
	i, ok := s.index[name]
	if !ok {
		return Spec{}, false
	}
	return s.specs[i], true
}

func (s *Store) Get(name string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name]
}

func (s *Store) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Clone()
}

func (s *Store) OnChange(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Set clamps v, stores it and notifies listeners when the stored value
// actually changed. It returns the value that was stored.
func (s *Store) Set(name string, v float64) (float64, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	v = s.specs[i].Clamp(v)

	s.mu.Lock()
	old := s.values[name]
	s.values[name] = v
	snapshot := s.values.Clone()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if old != v {
		for _, l := range listeners {
			l(name, snapshot)
		}
	}
	return v, nil
}

// Nudge moves a parameter by whole steps. Parameters without a step move by
// one hundredth of their range.
func (s *Store) Nudge(name string, steps int) (float64, error) {
	sp, ok := s.Spec(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	step := sp.Step
	if step <= 0 {
		step = (sp.Max - sp.Min) / 100
	}
	return s.Set(name, s.Get(name)+float64(steps)*step)
}

// Apply sets several values; unknown names fail before anything changes.
func (s *Store) Apply(values Values) error {
	for _, name := range values.Names() {
		if _, ok := s.index[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownParam, name)
		}
	}
	for _, name := range values.Names() {
		if _, err := s.Set(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

// Reset restores every default.
func (s *Store) Reset() {
	for _, sp := range s.specs {
		_, _ = s.Set(sp.Name, sp.Default)
	}
}
