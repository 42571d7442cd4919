package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physlab/internal/clock"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/lab"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/storage"
)

var (
	ErrUnknownPreset  = errors.New("automation: unknown preset")
	ErrUnknownCommand = errors.New("automation: unknown clock command")
	ErrExpectation    = errors.New("automation: expectation failed")
)

const (
	frameDt          = 1.0 / 60
	defaultTolerance = 0.05
	snapshotW        = 700
	snapshotH        = 400
)

// Scenario defines a scripted lab session
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep mounts one lab and drives it. Fields run in declaration
// order: preset, params, commands, advance, expect, sample, svg.
type ScenarioStep struct {
	Lab       string             `yaml:"lab"`
	Preset    string             `yaml:"preset"`
	Params    map[string]float64 `yaml:"params"`
	Commands  []string           `yaml:"commands"`
	Advance   float64            `yaml:"advance"`
	Expect    map[string]float64 `yaml:"expect"`
	Tolerance float64            `yaml:"tolerance"`
	Sample    *Sampling          `yaml:"sample"`
	SVG       string             `yaml:"svg"`
}

type Sampling struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Save     bool    `yaml:"save"`
}

type StepResult struct {
	Lab      string
	Clock    clock.State
	Derived  physics.Quantities
	Timeline *lab.Timeline
	RunID    string
	SVG      string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse scenario: %w", err)
	}
	return &scenario, nil
}

// Runner executes scenarios against a host. Store may be nil when no step
// saves a run.
type Runner struct {
	Host  *lab.Host
	Store *storage.Store
	Log   *slog.Logger
}

// RunScenario executes all steps in a scenario, returning the results of
// the steps that completed.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))
	defer r.Host.Unmount()

	for i, step := range scenario.Steps {
		log.Info("running step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "lab", step.Lab)
		res, err := r.runStep(ctx, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, *res)
	}
	return results, nil
}

func (r *Runner) runStep(ctx context.Context, step ScenarioStep) (*StepResult, error) {
	l, gen, err := r.Host.Mount(step.Lab)
	if err != nil {
		return nil, err
	}

	if step.Preset != "" {
		p := config.GetPreset(step.Lab, step.Preset)
		if p == nil {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, step.Lab, step.Preset)
		}
		if err := l.Apply(p.Params); err != nil {
			return nil, err
		}
	}
	if err := l.Apply(step.Params); err != nil {
		return nil, err
	}

	for _, name := range step.Commands {
		c, ok := clock.ParseCommand(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
		}
		l.Command(c)
	}

	for t := 0.0; t < step.Advance-1e-9; t += frameDt {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !r.Host.Frame(gen, math.Min(frameDt, step.Advance-t)) {
			return nil, lab.ErrNotMounted
		}
	}

	res := &StepResult{Lab: step.Lab, Clock: l.Clock(), Derived: l.Derived()}
	if err := checkExpect(res.Derived, step.Expect, step.Tolerance); err != nil {
		return nil, err
	}

	if step.Sample != nil {
		res.Timeline = l.Sample(step.Sample.Dt, step.Sample.Duration)
		if step.Sample.Save {
			if r.Store == nil {
				return nil, errors.New("automation: sample.save needs a store")
			}
			if err := r.Store.Init(); err != nil {
				return nil, err
			}
			if res.RunID, err = r.Store.Save(res.Timeline); err != nil {
				return nil, err
			}
		}
	}

	if step.SVG != "" {
		if err := writeSnapshot(l, step.SVG); err != nil {
			return nil, err
		}
		res.SVG = step.SVG
	}
	return res, nil
}

func checkExpect(derived physics.Quantities, expect map[string]float64, tol float64) error {
	if tol <= 0 {
		tol = defaultTolerance
	}
	for name, want := range expect {
		got, ok := derived.Get(name)
		if !ok {
			return fmt.Errorf("%w: %s is undefined", ErrExpectation, name)
		}
		if math.Abs(got-want) > tol {
			return fmt.Errorf("%w: %s = %.4f, want %.4f ± %g", ErrExpectation, name, got, want, tol)
		}
	}
	return nil
}

func writeSnapshot(l *lab.Lab, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	svg := export.NewSVG(snapshotW, snapshotH)
	l.Draw(svg)
	_, err = svg.WriteTo(f)
	return err
}

// ParameterSweep steps one parameter across a range and records a derived
// quantity at each value.
type ParameterSweep struct {
	Lab      string
	Param    string
	Min      float64
	Max      float64
	NumSteps int
	Quantity string
	Base     map[string]float64
}

type SweepResult struct {
	ParamValue float64
	Value      float64
	Defined    bool
}

// RunSweep executes a parameter sweep. Values are clamped by the lab's
// parameter store, so ParamValue reports the value actually used.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *lab.Registry, log *slog.Logger) ([]SweepResult, error) {
	def, err := registry.Get(sweep.Lab)
	if err != nil {
		return nil, err
	}
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("automation: sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	l := lab.New(def, log)
	if err := l.Apply(sweep.Base); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		used, err := l.Set(sweep.Param, sweep.Min+float64(i)*paramStep)
		if err != nil {
			return nil, err
		}
		v, ok := l.Derived().Get(sweep.Quantity)
		results = append(results, SweepResult{ParamValue: used, Value: v, Defined: ok})
	}
	return results, nil
}

// Best returns the sweep point with the largest defined value.
func Best(results []SweepResult) (SweepResult, bool) {
	var best SweepResult
	found := false
	for _, r := range results {
		if r.Defined && (!found || r.Value > best.Value) {
			best, found = r, true
		}
	}
	return best, found
}
