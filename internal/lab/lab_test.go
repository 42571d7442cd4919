package lab

import (
	"context"
	"errors"
	"image/color"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/san-kum/physlab/internal/clock"
	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/viz"
)

func quietLog() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// countingSurface counts clears, i.e. full redraws.
type countingSurface struct {
	viz.Path
	clears int
}

func (c *countingSurface) Size() (float64, float64)         { return 700, 400 }
func (c *countingSurface) Clear(color.RGBA)                 { c.clears++ }
func (c *countingSurface) SetStroke(color.RGBA, float64)    {}
func (c *countingSurface) SetFill(color.RGBA)               {}
func (c *countingSurface) SetDash(float64, float64)         {}
func (c *countingSurface) Stroke()                          { c.Take() }
func (c *countingSurface) Fill()                            { c.Take() }
func (c *countingSurface) Text(geom.Point, string, float64) {}

func mustLab(t *testing.T, name string) *Lab {
	t.Helper()
	def, err := NewRegistry().Get(name)
	if err != nil {
		t.Fatal(err)
	}
	return New(def, quietLog())
}

func TestRegistryUnknown(t *testing.T) {
	_, err := NewRegistry().Get("pendulum")
	if !errors.Is(err, ErrUnknownLab) {
		t.Errorf("expected ErrUnknownLab, got %v", err)
	}
}

func TestCatalogDefaults(t *testing.T) {
	for _, def := range Catalog() {
		t.Run(def.Name, func(t *testing.T) {
			l := New(def, quietLog())
			if l.Model().Name() != def.Name {
				t.Errorf("model name %q does not match lab %q", l.Model().Name(), def.Name)
			}
			if !l.Model().Defined() {
				t.Error("defaults should give a defined model")
			}
			for _, sp := range def.Params {
				if sp.Clamp(sp.Default) != sp.Default {
					t.Errorf("default of %s is not a legal value", sp.Name)
				}
			}
			if def.Renderer == nil {
				t.Error("missing renderer")
			}
		})
	}
}

func TestProjectileLabLifecycle(t *testing.T) {
	l := mustLab(t, "projectile")
	if l.Clock().Phase != clock.Stopped {
		t.Fatalf("projectile should wait for launch, got %v", l.Clock().Phase)
	}

	l.Command(clock.Launch)
	if s := l.Advance(0.5); math.Abs(s.Time-2) > 1e-12 {
		t.Errorf("time scale 4 should give t = 2, got %f", s.Time)
	}

	if _, err := l.Set("speed", 80); err != nil {
		t.Fatal(err)
	}
	if s := l.Clock(); s.Time != 0 || s.Phase != clock.Stopped {
		t.Errorf("changing speed should reset the flight, got %+v", s)
	}
	if v, _ := l.Derived().Get("range"); v < 600 {
		t.Errorf("derived range should follow the new speed, got %f", v)
	}

	l.Command(clock.Launch)
	s := l.Advance(100)
	if s.Phase != clock.Terminal {
		t.Fatalf("expected terminal phase, got %v", s.Phase)
	}
	st := l.Frame().State.(physics.ProjectileState)
	if !st.Landed || st.Pos.Y != 0 {
		t.Errorf("expected landed ball, got %+v", st)
	}

	if s := l.Command(clock.Toggle); s.Phase != clock.Running || s.Time != 0 {
		t.Errorf("toggle after landing should relaunch, got %+v", s)
	}
}

func TestCircularLabKeepsPuckOnParamChange(t *testing.T) {
	l := mustLab(t, "circular")
	if l.Clock().Phase != clock.Running {
		t.Fatal("circular lab should auto-start")
	}
	l.Advance(0.8)
	before := l.Frame().State.(physics.CircularState)

	if _, err := l.Set("speed", 12); err != nil {
		t.Fatal(err)
	}
	after := l.Frame().State.(physics.CircularState)
	if math.Abs(before.Pos.AngleDeg()-after.Pos.AngleDeg()) > 1e-6 {
		t.Errorf("puck jumped from %f° to %f°", before.Pos.AngleDeg(), after.Pos.AngleDeg())
	}
	if l.Clock().Time != 0.8 {
		t.Errorf("circular clock should keep running time, got %f", l.Clock().Time)
	}
}

func TestStaticLabRedrawsOnChange(t *testing.T) {
	l := mustLab(t, "optics")
	if !l.Static() {
		t.Fatal("optics should be static")
	}
	s := &countingSurface{}
	l.Attach(s)
	if s.clears != 1 {
		t.Fatalf("attach should draw once, got %d", s.clears)
	}
	if _, err := l.Set("distance", 100); err != nil {
		t.Fatal(err)
	}
	if s.clears != 2 {
		t.Errorf("parameter change should redraw, got %d draws", s.clears)
	}
	st := l.Frame().State.(physics.LensState)
	if !st.Undefined {
		t.Error("object at the focal point should form no image")
	}
	l.Detach()
	_, _ = l.Set("distance", 150)
	if s.clears != 2 {
		t.Error("detached surface should not be drawn")
	}
	if l.Advance(1).Time != 0 {
		t.Error("static labs have no clock")
	}
}

func TestLabReset(t *testing.T) {
	l := mustLab(t, "shm")
	_, _ = l.Set("k", 200)
	l.Advance(3)
	l.Reset()
	if l.Params().Get("k") != 50 {
		t.Errorf("reset should restore k, got %f", l.Params().Get("k"))
	}
	if s := l.Clock(); s.Time != 0 || s.Phase != clock.Running {
		t.Errorf("shm reset should restart at zero, got %+v", s)
	}
}

func TestHostGenerations(t *testing.T) {
	h := NewHost(NewRegistry(), quietLog())
	if _, _, err := h.Mount("nope"); !errors.Is(err, ErrUnknownLab) {
		t.Fatalf("expected ErrUnknownLab, got %v", err)
	}

	first, g1, err := h.Mount("shm")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Frame(g1, 0.1) || first.Clock().Time != 0.1 {
		t.Fatal("current generation should advance the lab")
	}

	_, g2, _ := h.Mount("circular")
	if g2 == g1 {
		t.Fatal("mount should issue a new generation")
	}
	if h.Frame(g1, 0.1) {
		t.Error("stale generation should be refused")
	}
	if first.Clock().Time != 0.1 {
		t.Error("unmounted lab should not advance")
	}

	h.Unmount()
	if h.Frame(g2, 0.1) {
		t.Error("frames after unmount should be refused")
	}
	if l, _ := h.Active(); l != nil {
		t.Error("no lab should be active")
	}
}

func TestLoopStopsOnUnmount(t *testing.T) {
	h := NewHost(NewRegistry(), quietLog())
	if _, _, err := h.Mount("shm"); err != nil {
		t.Fatal(err)
	}
	frames := 0
	lp := &Loop{Host: h, FPS: 200, Surface: &countingSurface{}, OnFrame: func(render.Frame) {
		frames++
		if frames == 3 {
			h.Unmount()
		}
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := lp.Run(ctx); !errors.Is(err, ErrNotMounted) {
		t.Errorf("expected ErrNotMounted, got %v", err)
	}
	if frames != 3 {
		t.Errorf("expected 3 frames before unmount, got %d", frames)
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	h := NewHost(NewRegistry(), quietLog())
	if _, _, err := h.Mount("circular"); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := (&Loop{Host: h, FPS: 100}).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if l, _ := h.Active(); l.Clock().Time <= 0 {
		t.Error("loop should have advanced the clock")
	}
}

func TestSample(t *testing.T) {
	l := mustLab(t, "projectile")
	tl := l.Sample(0.5, 100)
	T, _ := l.Model().(physics.Dynamic).Terminal()
	if got := tl.Times[len(tl.Times)-1]; got != T {
		t.Errorf("timeline should end at the landing time %f, got %f", T, got)
	}
	ys := tl.Column("y")
	if ys[len(ys)-1] != 0 {
		t.Errorf("last height should be 0, got %f", ys[len(ys)-1])
	}
	if l.Clock().Time != 0 {
		t.Error("sampling should not move the lab clock")
	}

	shm := mustLab(t, "shm").Sample(0.01, 1)
	if len(shm.Rows) != 101 {
		t.Errorf("expected 101 rows, got %d", len(shm.Rows))
	}

	fr := mustLab(t, "friction").Sample(0.1, 10)
	if len(fr.Rows) != 1 || fr.Labels[0] != "regime" {
		t.Errorf("static lab should give one labelled row, got %+v", fr)
	}
}
