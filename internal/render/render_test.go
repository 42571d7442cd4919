package render

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/physlab/internal/geom"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/viz"
)

// recorder is a Surface that keeps every point and label it receives.
type recorder struct {
	viz.Path
	w, h    float64
	clears  int
	strokes int
	fills   int
	points  []geom.Point
	texts   []string
}

func newRecorder() *recorder { return &recorder{w: 700, h: 400} }

func (r *recorder) Size() (float64, float64)      { return r.w, r.h }
func (r *recorder) Clear(color.RGBA)              { r.clears++ }
func (r *recorder) SetStroke(color.RGBA, float64) {}
func (r *recorder) SetFill(color.RGBA)            {}
func (r *recorder) SetDash(float64, float64)      {}

func (r *recorder) collect() {
	for _, sub := range r.Take() {
		r.points = append(r.points, sub.Points...)
	}
}

func (r *recorder) Stroke() { r.strokes++; r.collect() }
func (r *recorder) Fill()   { r.fills++; r.collect() }

func (r *recorder) Text(p geom.Point, s string, _ float64) {
	r.points = append(r.points, p)
	r.texts = append(r.texts, s)
}

func (r *recorder) hasText(sub string) bool {
	for _, t := range r.texts {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

func (r *recorder) finite(t *testing.T) {
	t.Helper()
	for _, p := range r.points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Fatalf("non-finite point reached the surface: %v", p)
		}
	}
}

func frameOf(m physics.Model, t float64) Frame {
	f := Frame{Model: m, Derived: m.Derive(), Time: t}
	switch mm := m.(type) {
	case physics.Dynamic:
		f.State = mm.Evaluate(t)
	case physics.Static:
		f.State = mm.Evaluate()
	}
	return f
}

func TestArrowHeadAngles(t *testing.T) {
	from, tip := geom.P(0, 0), geom.P(100, 0)
	a, b := ArrowHead(from, tip)
	for _, p := range []geom.Point{a, b} {
		if d := p.Dist(tip); math.Abs(d-HeadLength) > 1e-9 {
			t.Errorf("barb length %f, expected %f", d, HeadLength)
		}
		ang := math.Atan2(math.Abs(p.Y-tip.Y), tip.X-p.X)
		if math.Abs(ang-math.Pi/6) > 1e-9 {
			t.Errorf("barb angle %f, expected π/6", ang)
		}
	}
	if a.Y*b.Y >= 0 {
		t.Error("barbs should sit on opposite sides of the shaft")
	}
}

func TestLengthFuncsMonotonic(t *testing.T) {
	funcs := map[string]LengthFunc{
		"linear":         Linear(8, 0),
		"linear clamped": Linear(0.8, 200),
		"sqrt clamped":   Sqrt(10, 100),
	}
	for name, lf := range funcs {
		prev := -1.0
		for m := 0.0; m < 2000; m += 3.7 {
			l := lf(m)
			if l < prev {
				t.Errorf("%s: not monotonic at %f", name, m)
			}
			prev = l
		}
	}
	if got := Sqrt(10, 100)(50); math.Abs(got-math.Sqrt(50)*10) > 1e-9 {
		t.Errorf("sqrt length wrong: %f", got)
	}
	if got := Linear(0.8, 200)(1000); got != 200 {
		t.Errorf("expected clamp at 200, got %f", got)
	}
}

func TestDrawClearsFirst(t *testing.T) {
	r := newRecorder()
	Draw(r, Vectors{}, frameOf(physics.Vectors{A: geom.V(150, 50), B: geom.V(50, 100)}, 0))
	if r.clears != 1 {
		t.Errorf("expected one clear, got %d", r.clears)
	}
	if !r.hasText("|R| = 250.0") {
		t.Errorf("expected resultant annotation, got %v", r.texts)
	}
}

func TestRenderersStayFinite(t *testing.T) {
	tests := []struct {
		name     string
		renderer Renderer
		model    physics.Model
		t        float64
	}{
		{"projectile", Projectile{}, physics.Projectile{Speed: 60, AngleDeg: 45, Gravity: 9.8}, 3},
		{"projectile landed", Projectile{}, physics.Projectile{Speed: 60, AngleDeg: 45, Gravity: 9.8}, 100},
		{"projectile zero gravity", Projectile{}, physics.Projectile{Speed: 60, AngleDeg: 45}, 1},
		{"circular", Circular{}, physics.Circular{Mass: 2, Speed: 5, Radius: 1}, 0.7},
		{"circular zero radius", Circular{}, physics.Circular{Mass: 2, Speed: 5}, 0.7},
		{"shm", SHM{}, physics.SHM{Mass: 2, SpringConstant: 50, Amplitude: 1}, 0.4},
		{"friction", Friction{}, physics.Friction{Mass: 10, AppliedForce: 120, Gravity: 9.8, Surface: physics.SurfaceAt(1)}, 0},
		{"vectors zero", Vectors{}, physics.Vectors{}, 0},
		{"lens real", Optics{}, physics.Lens{FocalLength: 100, ObjectDistance: 200, ObjectHeight: 60}, 0},
		{"lens virtual", Optics{}, physics.Lens{FocalLength: 100, ObjectDistance: 50, ObjectHeight: 60}, 0},
		{"lens at focus", Optics{}, physics.Lens{FocalLength: 100, ObjectDistance: 100, ObjectHeight: 60}, 0},
		{"lens near focus", Optics{}, physics.Lens{FocalLength: 100, ObjectDistance: 100.001, ObjectHeight: 60}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRecorder()
			Draw(r, tt.renderer, frameOf(tt.model, tt.t))
			r.finite(t)
			if r.strokes+r.fills+len(r.texts) == 0 {
				t.Error("renderer drew nothing")
			}
		})
	}
}

func TestUndefinedBanners(t *testing.T) {
	r := newRecorder()
	Draw(r, Optics{}, frameOf(physics.Lens{FocalLength: 100, ObjectDistance: 100, ObjectHeight: 60}, 0))
	if !r.hasText("No Image Formed") || !r.hasText("Image at ∞") {
		t.Errorf("expected no-image captions, got %v", r.texts)
	}

	r = newRecorder()
	Draw(r, Circular{}, frameOf(physics.Circular{Mass: 1, Speed: 1}, 0))
	if r.strokes+r.fills != 0 {
		t.Error("undefined circular state should draw only a banner")
	}
}

func TestFrictionLabels(t *testing.T) {
	r := newRecorder()
	Draw(r, Friction{}, frameOf(physics.Friction{Mass: 10, AppliedForce: 40, Gravity: 9.8, Surface: physics.SurfaceAt(0)}, 0))
	for _, want := range []string{"W = mg", "N", "F_app", "f_s", "Stationary"} {
		if !r.hasText(want) {
			t.Errorf("missing label %q in %v", want, r.texts)
		}
	}

	r = newRecorder()
	Draw(r, Friction{}, frameOf(physics.Friction{Mass: 10, AppliedForce: 100, Gravity: 9.8, Surface: physics.SurfaceAt(0)}, 0))
	if !r.hasText("f_k") || !r.hasText("Moving") {
		t.Errorf("moving block should show kinetic friction, got %v", r.texts)
	}
}

func TestMismatchedModel(t *testing.T) {
	r := newRecorder()
	Draw(r, Projectile{}, frameOf(physics.SHM{Mass: 1, SpringConstant: 1, Amplitude: 1}, 0))
	if !r.hasText("Nothing to draw") {
		t.Errorf("expected mismatch banner, got %v", r.texts)
	}
}
