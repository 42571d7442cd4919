package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/san-kum/physlab/internal/lab"
	"github.com/san-kum/physlab/internal/params"
)

var ErrNoCandidate = errors.New("automation: no grid point defines the quantity")

// GridSearch tries every combination of parameter values and keeps the one
// whose derived quantity lands closest to Target.
type GridSearch struct {
	Lab      string
	Params   []string
	Ranges   [][]float64
	Quantity string
	Target   float64
	Base     map[string]float64
}

type GridResult struct {
	Params   params.Values
	Value    float64
	Distance float64
}

// combos expands the grid in Params order, the first parameter varying
// slowest.
func (g *GridSearch) combos() []params.Values {
	out := []params.Values{{}}
	for i, name := range g.Params {
		next := make([]params.Values, 0, len(out)*len(g.Ranges[i]))
		for _, cur := range out {
			for _, v := range g.Ranges[i] {
				c := cur.Clone()
				c[name] = v
				next = append(next, c)
			}
		}
		out = next
	}
	return out
}

// Search evaluates grid points concurrently, one lab per point. Ties keep
// the earlier point.
func (g *GridSearch) Search(ctx context.Context, registry *lab.Registry, log *slog.Logger) (*GridResult, error) {
	if len(g.Params) == 0 || len(g.Params) != len(g.Ranges) {
		return nil, fmt.Errorf("automation: grid needs one range per parameter, got %d params and %d ranges", len(g.Params), len(g.Ranges))
	}
	def, err := registry.Get(g.Lab)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	points := g.combos()
	results := make([]*GridResult, len(points))
	errs := make([]error, len(points))

	var wg sync.WaitGroup
	for i, p := range points {
		wg.Add(1)
		go func(idx int, p params.Values) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			l := lab.New(def, log)
			if err := l.Apply(g.Base); err != nil {
				errs[idx] = err
				return
			}
			if err := l.Apply(p); err != nil {
				errs[idx] = err
				return
			}
			v, ok := l.Derived().Get(g.Quantity)
			if !ok {
				return
			}
			results[idx] = &GridResult{Params: l.Params().Values(), Value: v, Distance: math.Abs(v - g.Target)}
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var best *GridResult
	for _, r := range results {
		if r != nil && (best == nil || r.Distance < best.Distance) {
			best = r
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCandidate, g.Quantity)
	}
	log.Debug("grid search done", "lab", g.Lab, "points", len(points), "quantity", g.Quantity, "value", best.Value)
	return best, nil
}
