package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/automation"
	"github.com/san-kum/physlab/internal/clock"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/lab"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/san-kum/physlab/internal/viz"
)

func listLabs(cmd *cobra.Command, args []string) error {
	registry := lab.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAB\tTITLE\tPARAMETERS")
	for _, name := range registry.Names() {
		def, err := registry.Get(name)
		if err != nil {
			return err
		}
		specs := make([]string, 0, len(def.Params))
		for _, p := range def.Params {
			specs = append(specs, fmt.Sprintf("%s=%s [%g..%g]", p.Name, p.Format(p.Default), p.Min, p.Max))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, def.Title, strings.Join(specs, ", "))
	}
	return w.Flush()
}

// advanceTo launches l and moves its clock to simulated time t, stopping at
// the terminal time.
func advanceTo(l *lab.Lab, t float64) {
	if l.Static() || t <= 0 {
		return
	}
	l.Command(clock.Launch)
	scale := l.Policy().TimeScale
	if scale <= 0 {
		scale = 1
	}
	l.Advance(t / scale)
}

func evalLab(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	l, err := buildLab(cmd, cfg, args[0], stderrLogger())
	if err != nil {
		return err
	}
	advanceTo(l, at)

	fmt.Printf("lab: %s\n", l.Name())
	fmt.Printf("params: %s\n", formatValues(l.Params().Values()))
	if !l.Static() {
		c := l.Clock()
		fmt.Printf("clock: t=%.3fs %s\n", c.Time, c.Phase)
	}

	frame := l.Frame()
	if frame.State != nil {
		labels := stateLabels(l, len(frame.State.Values()))
		fmt.Println("\nstate:")
		for i, v := range frame.State.Values() {
			fmt.Printf("  %-10s %12.4f\n", labels[i], v)
		}
	}
	printDerived(frame.Derived)
	return nil
}

func stateLabels(l *lab.Lab, n int) []string {
	if m, ok := l.Model().(physics.Dynamic); ok && len(m.Labels()) == n {
		return m.Labels()
	}
	return l.Sample(0, 0).Labels
}

func printDerived(qs physics.Quantities) {
	fmt.Println("\nderived:")
	for _, q := range qs {
		fmt.Printf("  %s\n", q)
	}
}

func runLab(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := stderrLogger()
	l, err := buildLab(cmd, cfg, args[0], log)
	if err != nil {
		return err
	}

	fmt.Printf("sampling %s...\n", l.Name())
	start := time.Now()
	tl := l.Sample(cfg.Dt, cfg.Duration)
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("samples: %d\n", len(tl.Rows))
	if !noSave {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(tl)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	printDerived(tl.Derived)

	if len(tl.Rows) > 1 {
		label := primaryColumn(tl.Labels)
		fmt.Println()
		fmt.Println(asciigraph.Plot(tl.Column(label),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs time", label)),
		))
	}
	return nil
}

// primaryColumn picks the series most worth plotting: height for a
// projectile, displacement for everything else.
func primaryColumn(labels []string) string {
	for _, want := range []string{"y", "x"} {
		for _, l := range labels {
			if l == want {
				return l
			}
		}
	}
	for _, l := range labels {
		if l != "t" {
			return l
		}
	}
	return ""
}

func renderLab(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	l, err := buildLab(cmd, cfg, args[0], stderrLogger())
	if err != nil {
		return err
	}
	advanceTo(l, at)

	path := output
	if path == "" {
		path = l.Name() + ".svg"
	}
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

	svg := export.NewSVG(float64(width), float64(height))
	l.Draw(svg)
	if _, err := svg.WriteTo(f); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func watchLab(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := stderrLogger()
	host := lab.NewHost(lab.NewRegistry(), log)
	l, _, err := host.Mount(args[0])
	if err != nil {
		return err
	}
	defer host.Unmount()
	if err := applyParams(cmd, l, cfg); err != nil {
		return err
	}
	l.Command(clock.Launch)

	canvas := viz.NewCanvas(cellsW, cellsH)
	canvas.SetView(700, 400)
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(duration*float64(time.Second)))
	defer cancel()

	loop := &lab.Loop{
		Host:    host,
		FPS:     30,
		Surface: canvas,
		OnFrame: func(f render.Frame) {
			fmt.Print("\033[H\033[2J")
			fmt.Print(canvas.Render())
			fmt.Printf("%s  t=%.2fs  %s\n", l.Definition().Title, f.Time, l.Clock().Phase)
		},
	}
	err = loop.Run(ctx)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func sweepLab(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	registry := lab.NewRegistry()
	def, err := registry.Get(args[0])
	if err != nil {
		return err
	}
	l, err := buildLab(cmd, cfg, args[0], stderrLogger())
	if err != nil {
		return err
	}
	spec, ok := l.Params().Spec(args[1])
	if !ok {
		return fmt.Errorf("lab %s has no parameter %q", def.Name, args[1])
	}

	lo, hi := spec.Min, spec.Max
	if cmd.Flags().Changed("min") {
		lo, _ = cmd.Flags().GetFloat64("min")
	}
	if cmd.Flags().Changed("max") {
		hi, _ = cmd.Flags().GetFloat64("max")
	}
	steps, _ := cmd.Flags().GetInt("steps")

	sweep := &automation.ParameterSweep{
		Lab:      def.Name,
		Param:    spec.Name,
		Min:      lo,
		Max:      hi,
		NumSteps: steps,
		Quantity: args[2],
		Base:     l.Params().Values(),
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, registry, stderrLogger())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(spec.Name), strings.ToUpper(args[2]))
	values := make([]float64, 0, len(results))
	for _, r := range results {
		if !r.Defined {
			fmt.Fprintf(w, "%s\tundefined\n", spec.Format(r.ParamValue))
			continue
		}
		fmt.Fprintf(w, "%s\t%.4f\n", spec.Format(r.ParamValue), r.Value)
		values = append(values, r.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if best, ok := automation.Best(results); ok {
		fmt.Printf("\nlargest %s: %.4f at %s = %s\n", args[2], best.Value, spec.Name, spec.Format(best.ParamValue))
	}
	if len(values) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(values,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s vs %s", args[2], spec.Name)),
		))
	}
	return nil
}

func searchLab(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	target, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	if len(grids) == 0 {
		return errors.New("at least one --grid name=min:max:step is required")
	}
	log := stderrLogger()
	l, err := buildLab(cmd, cfg, args[0], log)
	if err != nil {
		return err
	}

	g := &automation.GridSearch{
		Lab:      l.Name(),
		Quantity: args[1],
		Target:   target,
		Base:     l.Params().Values(),
	}
	for _, spec := range grids {
		name, values, err := parseGrid(spec)
		if err != nil {
			return err
		}
		g.Params = append(g.Params, name)
		g.Ranges = append(g.Ranges, values)
	}

	best, err := g.Search(cmd.Context(), lab.NewRegistry(), log)
	if err != nil {
		return err
	}
	fmt.Printf("closest %s: %.4f (target %g, off by %.4f)\n", args[1], best.Value, target, best.Distance)
	for _, name := range g.Params {
		fmt.Printf("  %s = %g\n", name, best.Params[name])
	}
	return nil
}

// parseGrid reads name=min:max:step.
func parseGrid(s string) (string, []float64, error) {
	name, rng, ok := strings.Cut(s, "=")
	parts := strings.Split(rng, ":")
	if !ok || name == "" || len(parts) != 3 {
		return "", nil, fmt.Errorf("bad --grid %q, want name=min:max:step", s)
	}
	var nums [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return "", nil, fmt.Errorf("--grid %s: %w", name, err)
		}
		nums[i] = v
	}
	lo, hi, step := nums[0], nums[1], nums[2]
	if step <= 0 || hi < lo {
		return "", nil, fmt.Errorf("--grid %s: need min <= max and step > 0", name)
	}
	var values []float64
	for i := 0; ; i++ {
		v := lo + float64(i)*step
		if v > hi+1e-9 {
			break
		}
		values = append(values, v)
	}
	return name, values, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLAB\tTIME\tDURATION\tDT\tSTEPS\tPARAMS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%s\n",
			run.ID,
			run.Lab,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			formatValues(run.Params),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("lab: %s\n", meta.Lab)
	fmt.Printf("samples: %d\n\n", meta.Steps)

	labels := meta.Labels
	if column != "" {
		labels = []string{column}
	}
	plotted := 0
	for _, label := range labels {
		if label == "t" {
			continue
		}
		data, _, err := st.Column(meta.ID, label)
		if err != nil {
			return err
		}
		if len(data) < 2 {
			return fmt.Errorf("no data to plot")
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(label+" vs time"),
		))
		fmt.Println()
		plotted++
	}
	if plotted == 0 {
		fmt.Println("run has a single sample; nothing to plot")
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	xl, yl := xColumn, yColumn
	var cols []string
	for _, l := range meta.Labels {
		if l != "t" {
			cols = append(cols, l)
		}
	}
	if xl == "" && len(cols) > 0 {
		xl = primaryColumn(cols)
	}
	if yl == "" {
		for _, c := range cols {
			if c != xl {
				yl = c
				break
			}
		}
	}
	if xl == "" {
		return fmt.Errorf("run %s has no state columns", meta.ID)
	}

	xs, _, err := st.Column(meta.ID, xl)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("lab: %s\n\n", meta.Lab)

	freq, err := analysis.DominantFrequency(xs, meta.Dt)
	switch {
	case errors.Is(err, analysis.ErrTooShort):
		fmt.Println("run too short for a spectrum")
	case err != nil:
		return err
	default:
		ps := analysis.PowerSpectrum(xs)
		fmt.Println(asciigraph.Plot(ps[:max(2, len(ps)/4)],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", xl)),
		))
		fmt.Println()
		fmt.Printf("dominant frequency: %.4f Hz\n", freq)
		if freq > 0 {
			fmt.Printf("period: %.4f s\n", 1/freq)
		}
		if want, ok := analyticFrequency(meta.Derived); ok {
			fmt.Printf("analytic frequency: %.4f Hz (error %.2f%%)\n", want, 100*(freq-want)/want)
		}
	}

	if yl == "" {
		return nil
	}
	ys, _, err := st.Column(meta.ID, yl)
	if err != nil {
		return err
	}
	fmt.Printf("\nphase portrait: %s vs %s\n", yl, xl)
	fmt.Println(analysis.PhasePortraitToASCII(analysis.NewPhasePortrait(xl, xs, yl, ys), 70, 20))
	return nil
}

func analyticFrequency(derived map[string]float64) (float64, bool) {
	if f, ok := derived["frequency"]; ok && f > 0 {
		return f, true
	}
	if p, ok := derived["period"]; ok && p > 0 {
		return 1 / p, true
	}
	return 0, false
}

func formatValues(v map[string]float64) string {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%g", k, v[k])
	}
	return strings.Join(parts, " ")
}
