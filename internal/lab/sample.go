package lab

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/params"
	"github.com/san-kum/physlab/internal/physics"
)

// Timeline is a model evaluated on a fixed time grid.
type Timeline struct {
	Lab     string
	Params  params.Values
	Derived physics.Quantities
	Labels  []string
	Dt      float64
	Times   []float64
	Rows    [][]float64
}

// Column returns the series for one label, or nil.
func (tl *Timeline) Column(label string) []float64 {
	for i, l := range tl.Labels {
		if l != label {
			continue
		}
		col := make([]float64, len(tl.Rows))
		for j, row := range tl.Rows {
			if i < len(row) {
				col[j] = row[i]
			}
		}
		return col
	}
	return nil
}

// Sample evaluates the current model every dt seconds from 0 to duration,
// stopping early at the terminal time (which is always included). Static
// labs produce a single row. The lab's own clock is untouched.
func (l *Lab) Sample(dt, duration float64) *Timeline {
	tl := &Timeline{
		Lab:     l.def.Name,
		Params:  l.store.Values(),
		Derived: l.model.Derive(),
		Dt:      dt,
	}
	switch m := l.model.(type) {
	case physics.Dynamic:
		tl.Labels = m.Labels()
		if dt <= 0 {
			dt = 0.01
			tl.Dt = dt
		}
		end := duration
		if T, ok := m.Terminal(); ok && T < end {
			end = T
		}
		n := int(math.Floor(end/dt + 1e-9))
		for i := 0; i <= n; i++ {
			t := float64(i) * dt
			tl.Times = append(tl.Times, t)
			tl.Rows = append(tl.Rows, m.Evaluate(t).Values())
		}
		if last := float64(n) * dt; end-last > 1e-9 {
			tl.Times = append(tl.Times, end)
			tl.Rows = append(tl.Rows, m.Evaluate(end).Values())
		}
	case physics.Static:
		tl.Labels = staticLabels(l.def.Name, len(m.Evaluate().Values()))
		tl.Times = []float64{0}
		tl.Rows = [][]float64{m.Evaluate().Values()}
	}
	return tl
}

func staticLabels(name string, n int) []string {
	known := map[string][]string{
		"friction": {"regime", "normal", "applied", "friction", "net", "accel"},
		"vectors":  {"ax", "ay", "bx", "by", "rx", "ry", "magnitude", "angle"},
		"optics":   {"p", "q", "m", "hi"},
	}
	if l, ok := known[name]; ok && len(l) == n {
		return l
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("v%d", i)
	}
	return labels
}
