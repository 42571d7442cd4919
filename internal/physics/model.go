package physics

import (
	"fmt"
	"math"
)

const StandardGravity = 9.8

// Quantity is a named scalar shown next to a lab.
type Quantity struct {
	Name    string
	Label   string
	Unit    string
	Value   float64
	Defined bool
}

func (q Quantity) String() string {
	if !q.Defined {
		return fmt.Sprintf("%s: undefined", q.Label)
	}
	if q.Unit == "" {
		return fmt.Sprintf("%s: %.2f", q.Label, q.Value)
	}
	return fmt.Sprintf("%s: %.2f %s", q.Label, q.Value, q.Unit)
}

// Quantities keeps derivation order, which is also display order.
type Quantities []Quantity

func (qs Quantities) Get(name string) (float64, bool) {
	for _, q := range qs {
		if q.Name == name {
			return q.Value, q.Defined
		}
	}
	return 0, false
}

func (qs Quantities) Map() map[string]float64 {
	m := make(map[string]float64, len(qs))
	for _, q := range qs {
		if q.Defined {
			m[q.Name] = q.Value
		}
	}
	return m
}

func quantity(name, label, unit string, v float64) Quantity {
	return Quantity{Name: name, Label: label, Unit: unit, Value: v, Defined: finite(v)}
}

func undefined(name, label, unit string) Quantity {
	return Quantity{Name: name, Label: label, Unit: unit}
}

// State is a snapshot of a model, flattened for storage and plots.
type State interface {
	Values() []float64
}

type Model interface {
	Name() string
	Defined() bool
	Derive() Quantities
}

// Static models have no time dependence.
type Static interface {
	Model
	Evaluate() State
}

// Dynamic models are evaluated at a simulated time t >= 0. Negative t is
// treated as 0 and t past the terminal time yields the terminal state.
type Dynamic interface {
	Model
	Evaluate(t float64) State
	// Terminal reports the time at which motion ends, if any.
	Terminal() (float64, bool)
	Labels() []string
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func nonNegative(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	return t
}
