package physics

import (
	"math"
	"testing"
)

func TestLensSignConvention(t *testing.T) {
	tests := []struct {
		name        string
		p           float64
		nature      ImageNature
		orientation Orientation
		caption     string
	}{
		{"beyond 2f", 250, RealImage, Inverted, "Real & Inverted"},
		{"between f and 2f", 150, RealImage, Inverted, "Real & Inverted"},
		{"inside f", 50, VirtualImage, Upright, "Virtual & Upright"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Lens{FocalLength: 100, ObjectDistance: tt.p, ObjectHeight: 60}.Evaluate().(LensState)
			if s.Nature != tt.nature || s.Orientation != tt.orientation {
				t.Errorf("expected %v/%v, got %v/%v", tt.nature, tt.orientation, s.Nature, s.Orientation)
			}
			if s.Description() != tt.caption {
				t.Errorf("expected %q, got %q", tt.caption, s.Description())
			}
		})
	}
}

func TestLensDefaults(t *testing.T) {
	s := Lens{FocalLength: 100, ObjectDistance: 200, ObjectHeight: 60}.Evaluate().(LensState)
	if s.ImageDistance != 200 || s.Magnification != -1 || s.ImageHeight != -60 {
		t.Errorf("object at 2f should image at 2f, same size, got %+v", s)
	}
}

func TestLensAtFocus(t *testing.T) {
	l := Lens{FocalLength: 100, ObjectDistance: 100, ObjectHeight: 60}
	s := l.Evaluate().(LensState)
	if !s.Undefined || s.Description() != "No Image Formed" {
		t.Fatalf("object at focus should form no image, got %+v", s)
	}
	for _, v := range s.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("undefined state leaked %v", v)
		}
	}
	if _, ok := l.Derive().Get("image_distance"); ok {
		t.Error("image distance should be undefined at focus")
	}
}
