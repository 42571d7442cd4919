package physics

import "math"

type ImageNature int

const (
	NoImage ImageNature = iota
	RealImage
	VirtualImage
)

func (n ImageNature) String() string {
	switch n {
	case RealImage:
		return "real"
	case VirtualImage:
		return "virtual"
	default:
		return "none"
	}
}

type Orientation int

const (
	Upright Orientation = iota
	Inverted
)

func (o Orientation) String() string {
	if o == Inverted {
		return "inverted"
	}
	return "upright"
}

// Lens is a thin converging lens with the object on its left. Distances share
// one length unit (cm in the lab).
type Lens struct {
	FocalLength    float64
	ObjectDistance float64
	ObjectHeight   float64
}

type LensState struct {
	ObjectDistance float64
	ObjectHeight   float64
	ImageDistance  float64
	ImageHeight    float64
	Magnification  float64
	Nature         ImageNature
	Orientation    Orientation
	// Undefined is set when the object sits at the focal point and the
	// refracted rays leave parallel.
	Undefined bool
}

func (s LensState) Values() []float64 {
	return []float64{s.ObjectDistance, s.ImageDistance, s.Magnification, s.ImageHeight}
}

// Description is the caption shown under the diagram.
func (s LensState) Description() string {
	switch {
	case s.Undefined:
		return "No Image Formed"
	case s.Nature == RealImage:
		return "Real & Inverted"
	default:
		return "Virtual & Upright"
	}
}

func (l Lens) Name() string { return "optics" }

func (l Lens) Defined() bool {
	return l.FocalLength > 0 && l.ObjectDistance > 0 && finite(l.ObjectHeight) &&
		math.Abs(l.ObjectDistance-l.FocalLength) >= 1e-6*l.FocalLength
}

func (l Lens) Evaluate() State {
	s := LensState{ObjectDistance: l.ObjectDistance, ObjectHeight: l.ObjectHeight}
	if !l.Defined() {
		s.Undefined = true
		return s
	}
	p, f := l.ObjectDistance, l.FocalLength
	q := p * f / (p - f)
	m := -q / p
	s.ImageDistance = q
	s.Magnification = m
	s.ImageHeight = m * l.ObjectHeight
	if q > 0 {
		s.Nature = RealImage
	} else {
		s.Nature = VirtualImage
	}
	if m < 0 {
		s.Orientation = Inverted
	}
	return s
}

func (l Lens) Derive() Quantities {
	qs := Quantities{quantity("power", "Lens power", "1/cm", 1/l.FocalLength)}
	if l.FocalLength <= 0 {
		qs[0] = undefined("power", "Lens power", "1/cm")
	}
	s := l.Evaluate().(LensState)
	if s.Undefined {
		return append(qs,
			undefined("image_distance", "Image distance", "cm"),
			undefined("magnification", "Magnification", "×"),
			undefined("image_height", "Image height", "cm"))
	}
	return append(qs,
		quantity("image_distance", "Image distance", "cm", s.ImageDistance),
		quantity("magnification", "Magnification", "×", s.Magnification),
		quantity("image_height", "Image height", "cm", s.ImageHeight))
}
